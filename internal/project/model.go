// Package project manages portfolio projects, keyed by slug.
package project

// Project is one portfolio project. Slug is the primary key and never
// changes after creation; the tech and highlight lists are stored as JSON
// text columns.
type Project struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	RepoURL     *string  `json:"repoUrl,omitempty"`
	LiveURL     *string  `json:"liveUrl,omitempty"`
	Highlights  []string `json:"highlights"`
	ImagePath   *string  `json:"imagePath,omitempty"`
}

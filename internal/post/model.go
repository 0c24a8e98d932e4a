// Package post manages blog posts, keyed by slug.
package post

import "time"

// Post is one blog post. Body is rich HTML and is sanitized before storage;
// Published defaults to creation time when omitted.
type Post struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Body      string    `json:"body,omitempty"`
	Published time.Time `json:"published"`
}

// Package profile manages the single owner profile, its external links, and
// the skill list shown on the public site.
package profile

// Profile is the single owner profile row. The table holds at most one row
// with id 1; the admin UI edits it in place.
type Profile struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Tagline  string  `json:"tagline"`
	Summary  *string `json:"summary,omitempty"`
	Location *string `json:"location,omitempty"`
	Email    *string `json:"email,omitempty"`
	Github   *string `json:"github,omitempty"`
	Linkedin *string `json:"linkedin,omitempty"`
	Links    []Link  `json:"links"`
}

// Link is an external profile link (GitHub, LinkedIn, ...). Links are owned
// by the profile and replaced wholesale on profile update.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Skill is one skill row. Visibility and ordering are managed from the admin
// UI; the public profile only ever sees visible skill names.
type Skill struct {
	ID        int    `json:"id"`
	ProfileID int    `json:"profileId"`
	Name      string `json:"name"`
	IsVisible bool   `json:"isVisible"`
	SortOrder *int   `json:"order,omitempty"`
}

// PublicProfile is the shape served to the public site: profile scalars plus
// visible skill names in display order.
type PublicProfile struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Tagline  string   `json:"tagline"`
	Summary  *string  `json:"summary,omitempty"`
	Location *string  `json:"location,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Github   *string  `json:"github,omitempty"`
	Linkedin *string  `json:"linkedin,omitempty"`
	Skills   []string `json:"skills"`
	Links    []Link   `json:"links"`
}

// UpsertSkillRequest is the JSON body for skill create and update. Nil
// IsVisible on create defaults to visible; nil Order clears the explicit
// position on update.
type UpsertSkillRequest struct {
	Name      string `json:"name"`
	IsVisible *bool  `json:"isVisible"`
	Order     *int   `json:"order"`
}

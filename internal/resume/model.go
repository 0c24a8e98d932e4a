// Package resume manages the work history sections: experience, education,
// and certifications. All three use integer auto-increment keys and share
// the same admin CRUD shape.
package resume

import "time"

// Experience is one work history entry. A nil End means the role is current.
type Experience struct {
	ID         int        `json:"id"`
	Company    string     `json:"company"`
	Role       string     `json:"role"`
	Location   *string    `json:"location,omitempty"`
	Start      time.Time  `json:"start"`
	End        *time.Time `json:"end,omitempty"`
	Highlights []string   `json:"highlights"`
	Tech       []string   `json:"tech"`
}

// Education is one education entry.
type Education struct {
	ID      int       `json:"id"`
	School  string    `json:"school"`
	Degree  string    `json:"degree"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Details []string  `json:"details"`
}

// Certification is one certification entry. Issued and Expires are optional;
// certifications without an issue date sort oldest.
type Certification struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Issuer  *string    `json:"issuer,omitempty"`
	Issued  *time.Time `json:"issued,omitempty"`
	Expires *time.Time `json:"expires,omitempty"`
}

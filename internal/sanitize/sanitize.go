// Package sanitize provides HTML sanitization for user-generated content.
// Uses bluemonday to strip dangerous HTML (script tags, event handlers,
// javascript: URLs) before anything is stored in the database.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    *bluemonday.Policy
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once
)

func initPolicies() {
	policyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// HTML sanitizes rich-text content (blog post bodies), keeping safe formatting
// tags while stripping scripts and event handlers. Must be called on all
// user-provided HTML before storing it.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return ugcPolicy.Sanitize(input)
}

// Text strips all markup from a plain-text field (titles, excerpts, contact
// form input) so stored values never carry HTML.
func Text(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

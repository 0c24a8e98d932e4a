// Package auth implements the admin session authenticator: credential
// verification against the configured admin account, stateless sessions
// sealed into the "auth" cookie, and the middleware guarding admin routes.
//
// There is no server-side session table. The cookie carries the whole
// session, authenticated-encrypted, so tampering or truncation makes it
// unreadable rather than merely suspicious.
package auth

import (
	"time"
)

// RoleAdmin is the single role issued to the admin account.
const RoleAdmin = "Admin"

// Session is the authenticated state carried inside the auth cookie.
// A session always has exactly one identity and at least one role.
type Session struct {
	// Identity is the authenticated username.
	Identity string `json:"sub"`

	// Roles the identity holds. Never empty for a valid session.
	Roles []string `json:"roles"`

	// SID is a random per-login ID. CSRF tokens are bound to it, so a
	// re-login invalidates every token pair minted before it.
	SID string `json:"sid"`

	// IssuedAt is when the session was created.
	IssuedAt time.Time `json:"iat"`

	// ExpiresAt is the current inactivity deadline. Extended on each
	// validated request (sliding expiration).
	ExpiresAt time.Time `json:"exp"`
}

// HasRole reports whether the session holds the given role.
func (s *Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// LoginRequest is the JSON body of POST /api/admin/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// sessionCookieName is the HTTP cookie carrying the sealed session.
const sessionCookieName = "auth"

// contextKeySession is the Echo context key the validated session is
// stored under for downstream handlers.
const contextKeySession = "auth_session"

// RequireAdmin returns middleware that validates the session cookie,
// requires the Admin role, and injects the session into the request
// context. With sliding expiration enabled, every validated request
// re-seals the session with a fresh deadline and re-issues the cookie.
//
// Failures are returned as apperror values; the app error handler turns
// them into 401/403 JSON on /api paths and login/forbidden redirects
// elsewhere.
func RequireAdmin(service Service, secure bool, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := getSessionCookie(c)
			if token == "" {
				return apperror.NewUnauthorized("authentication required")
			}

			session := service.Validate(token)
			if session == nil {
				// Invalid or expired session -- clear the stale cookie.
				clearSessionCookie(c)
				return apperror.NewUnauthorized("authentication required")
			}

			if !session.HasRole(RoleAdmin) {
				return apperror.NewForbidden("admin role required")
			}

			// Sliding expiration: push the deadline out and re-issue.
			if refreshed, err := service.Refresh(session); err == nil {
				setSessionCookie(c, refreshed, secure, ttl)
			}

			c.Set(contextKeySession, session)
			return next(c)
		}
	}
}

// SessionBinding returns the CSRF binding resolver: the SID of the current
// valid session, or "" for anonymous requests. Wired into the CSRF
// middleware at startup so that package needs no auth import.
func SessionBinding(service Service) func(echo.Context) string {
	return func(c echo.Context) string {
		token := getSessionCookie(c)
		if token == "" {
			return ""
		}
		session := service.Validate(token)
		if session == nil {
			return ""
		}
		return session.SID
	}
}

// GetSession retrieves the authenticated session from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetSession(c echo.Context) *Session {
	session, ok := c.Get(contextKeySession).(*Session)
	if !ok {
		return nil
	}
	return session
}

// --- Cookie helpers ---

// getSessionCookie reads the sealed session from the cookie.
func getSessionCookie(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. HttpOnly (JS
// can't read it), Secure outside development, SameSite=Lax. MaxAge tracks
// the sliding TTL so the browser drops it when the session would expire.
func setSessionCookie(c echo.Context, value string, secure bool, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

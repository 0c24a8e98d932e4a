package passcode

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/middleware"
)

// grantCookieName is the HTTP-only cookie marking a passcode grant.
const grantCookieName = "case_access"

// Handler handles the passcode gate endpoints.
type Handler struct {
	service Service
	csrf    *middleware.CSRF
	secure  bool
	ttl     time.Duration
}

// NewHandler creates a new passcode handler. ttl is the absolute grant
// lifetime (12 hours by default, from config).
func NewHandler(service Service, csrf *middleware.CSRF, secure bool, ttl time.Duration) *Handler {
	return &Handler{service: service, csrf: csrf, secure: secure, ttl: ttl}
}

// loginRequest is the JSON body of POST /api/passcode/login.
type loginRequest struct {
	Code string `json:"code"`
}

// Login verifies the passcode and sets the grant cookie with an absolute
// 12-hour expiry (POST /api/passcode/login). Unlike the session cookie,
// the deadline never slides.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid payload")
	}

	grant, err := h.service.Login(req.Code)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     grantCookieName,
		Value:    grant,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().UTC().Add(h.ttl),
	})

	// Refresh the CSRF token alongside the grant, like the admin login
	// does, so the SPA always holds a current pair.
	if _, err := h.csrf.IssueToken(c); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// Check reports whether the grant cookie is present (GET /api/passcode/check).
// Presence is the whole check; the token is a capability, not an identity.
func (h *Handler) Check(c echo.Context) error {
	if !HasGrant(c) {
		return apperror.NewUnauthorized("passcode required")
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// Logout deletes the grant cookie unconditionally (POST /api/passcode/logout).
// Idempotent.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     grantCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// HasGrant reports whether the request carries a passcode grant cookie.
// Exported for handlers serving private case-study content.
func HasGrant(c echo.Context) bool {
	cookie, err := c.Cookie(grantCookieName)
	return err == nil && cookie.Value != ""
}

package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/middleware"
)

// Handler handles HTTP requests for admin authentication. Handlers are
// thin: they bind the request, call the service, and shape the response.
// No credential logic lives here.
type Handler struct {
	service Service
	csrf    *middleware.CSRF
	secure  bool
	ttl     time.Duration
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, csrf *middleware.CSRF, secure bool, ttl time.Duration) *Handler {
	return &Handler{service: service, csrf: csrf, secure: secure, ttl: ttl}
}

// Login processes POST /api/admin/auth/login. On success it sets the auth
// cookie and a fresh CSRF token for the SPA's subsequent writes. On failure
// it returns 401 with no cookies and no hint about which field was wrong.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid payload")
	}

	session, sealed, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		return err
	}

	// Cookies are only written after full verification succeeded.
	setSessionCookie(c, sealed, h.secure, h.ttl)
	if _, err := h.csrf.IssueToken(c); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"user": session.Identity})
}

// LoginNotAllowed answers GET/HEAD on the login path with 405 so an
// accidental browser navigation never looks like an API surface.
func (h *Handler) LoginNotAllowed(c echo.Context) error {
	return c.NoContent(http.StatusMethodNotAllowed)
}

// Me returns the current identity (GET /api/admin/auth/me). Also re-issues
// the CSRF token: the SPA calls this on load, before any write.
func (h *Handler) Me(c echo.Context) error {
	session := GetSession(c)
	if session == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	if _, err := h.csrf.IssueToken(c); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user":  session.Identity,
		"roles": session.Roles,
	})
}

// Logout clears the auth cookie (POST /api/admin/auth/logout). Idempotent:
// logging out twice is not an error, the cookie deletion instruction is
// simply repeated.
func (h *Handler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

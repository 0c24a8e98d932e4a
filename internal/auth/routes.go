package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/middleware"
)

// RegisterRoutes sets up the auth endpoints. Login is public (it mints the
// session) and brute-force rate-limited: 5 attempts per IP per minute. The
// admin group already carries RequireAdmin and CSRF validation, so me/logout
// are registered there.
func RegisterRoutes(e *echo.Echo, admin *echo.Group, h *Handler) {
	e.POST("/api/admin/auth/login", h.Login, middleware.RateLimit(5, time.Minute))

	// Block accidental GET/HEAD to the login endpoint.
	e.GET("/api/admin/auth/login", h.LoginNotAllowed)
	e.HEAD("/api/admin/auth/login", h.LoginNotAllowed)

	admin.GET("/auth/me", h.Me)
	admin.POST("/auth/logout", h.Logout)
}

package passcode

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/middleware"
)

// RegisterRoutes sets up the passcode gate endpoints. Login shares the same
// brute-force limit as the admin login: 5 attempts per IP per minute.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/api/passcode/login", h.Login, middleware.RateLimit(5, time.Minute))
	e.GET("/api/passcode/check", h.Check)
	e.POST("/api/passcode/logout", h.Logout)
}

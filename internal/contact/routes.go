package contact

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/middleware"
)

// RegisterRoutes sets up the contact form endpoint, rate-limited like the
// login endpoints to keep the mailbox usable.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/api/contact", h.Submit, middleware.RateLimit(5, time.Minute))
}

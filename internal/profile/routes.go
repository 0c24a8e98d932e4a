package profile

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up public and admin profile endpoints. The admin group
// already carries session and CSRF middleware.
func RegisterRoutes(e *echo.Echo, admin *echo.Group, h *Handler) {
	e.GET("/api/profile", h.Public)

	admin.GET("/profile", h.Get)
	admin.PUT("/profile", h.Update)

	admin.GET("/skills", h.ListSkills)
	admin.POST("/skills", h.CreateSkill)
	admin.PUT("/skills/:id", h.UpdateSkill)
	admin.DELETE("/skills/:id", h.DeleteSkill)
}

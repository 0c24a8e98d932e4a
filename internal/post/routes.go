package post

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up public and admin blog endpoints.
func RegisterRoutes(e *echo.Echo, admin *echo.Group, h *Handler) {
	e.GET("/api/blog", h.PublicList)

	admin.GET("/posts", h.List)
	admin.POST("/posts", h.Create)
	admin.PUT("/posts/:slug", h.Update)
	admin.DELETE("/posts/:slug", h.Delete)
}

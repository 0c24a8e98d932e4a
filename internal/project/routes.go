package project

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up public and admin project endpoints.
func RegisterRoutes(e *echo.Echo, admin *echo.Group, h *Handler) {
	e.GET("/api/projects", h.PublicList)

	admin.GET("/projects", h.List)
	admin.POST("/projects", h.Create)
	admin.PUT("/projects/:slug", h.Update)
	admin.DELETE("/projects/:slug", h.Delete)
	admin.POST("/projects/:slug/image", h.UploadImage)
	admin.DELETE("/projects/:slug/image", h.DeleteImage)
}

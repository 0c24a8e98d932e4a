package resume

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up public and admin resume endpoints.
func RegisterRoutes(e *echo.Echo, admin *echo.Group, h *Handler) {
	e.GET("/api/experience", h.PublicExperience)
	e.GET("/api/education", h.PublicEducation)
	e.GET("/api/certifications", h.PublicCertifications)

	admin.GET("/experience", h.ListExperience)
	admin.POST("/experience", h.CreateExperience)
	admin.PUT("/experience/:id", h.UpdateExperience)
	admin.DELETE("/experience/:id", h.DeleteExperience)

	admin.GET("/education", h.ListEducation)
	admin.POST("/education", h.CreateEducation)
	admin.PUT("/education/:id", h.UpdateEducation)
	admin.DELETE("/education/:id", h.DeleteEducation)

	admin.GET("/certifications", h.ListCertifications)
	admin.POST("/certifications", h.CreateCertification)
	admin.PUT("/certifications/:id", h.UpdateCertification)
	admin.DELETE("/certifications/:id", h.DeleteCertification)
}

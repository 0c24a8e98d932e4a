package resume

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// Handler handles HTTP requests for the resume sections.
type Handler struct {
	service Service
}

// NewHandler creates a new resume handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// idParam parses the :id route parameter.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperror.NewBadRequest("invalid id")
	}
	return id, nil
}

// --- Experience ---

// PublicExperience serves GET /api/experience.
func (h *Handler) PublicExperience(c echo.Context) error {
	items, err := h.service.PublicExperience(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListExperience serves GET /api/admin/experience.
func (h *Handler) ListExperience(c echo.Context) error {
	items, err := h.service.ListExperience(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateExperience serves POST /api/admin/experience.
func (h *Handler) CreateExperience(c echo.Context) error {
	var e Experience
	if err := c.Bind(&e); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	created, err := h.service.CreateExperience(c.Request().Context(), e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UpdateExperience serves PUT /api/admin/experience/:id.
func (h *Handler) UpdateExperience(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var e Experience
	if err := c.Bind(&e); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	updated, err := h.service.UpdateExperience(c.Request().Context(), id, e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteExperience serves DELETE /api/admin/experience/:id.
func (h *Handler) DeleteExperience(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteExperience(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Education ---

// PublicEducation serves GET /api/education.
func (h *Handler) PublicEducation(c echo.Context) error {
	items, err := h.service.PublicEducation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListEducation serves GET /api/admin/education.
func (h *Handler) ListEducation(c echo.Context) error {
	items, err := h.service.ListEducation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateEducation serves POST /api/admin/education.
func (h *Handler) CreateEducation(c echo.Context) error {
	var e Education
	if err := c.Bind(&e); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	created, err := h.service.CreateEducation(c.Request().Context(), e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UpdateEducation serves PUT /api/admin/education/:id.
func (h *Handler) UpdateEducation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var e Education
	if err := c.Bind(&e); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	updated, err := h.service.UpdateEducation(c.Request().Context(), id, e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteEducation serves DELETE /api/admin/education/:id.
func (h *Handler) DeleteEducation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteEducation(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Certifications ---

// PublicCertifications serves GET /api/certifications.
func (h *Handler) PublicCertifications(c echo.Context) error {
	items, err := h.service.PublicCertifications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListCertifications serves GET /api/admin/certifications.
func (h *Handler) ListCertifications(c echo.Context) error {
	items, err := h.service.ListCertifications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateCertification serves POST /api/admin/certifications.
func (h *Handler) CreateCertification(c echo.Context) error {
	var cert Certification
	if err := c.Bind(&cert); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	created, err := h.service.CreateCertification(c.Request().Context(), cert)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UpdateCertification serves PUT /api/admin/certifications/:id.
func (h *Handler) UpdateCertification(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var cert Certification
	if err := c.Bind(&cert); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	updated, err := h.service.UpdateCertification(c.Request().Context(), id, cert)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCertification serves DELETE /api/admin/certifications/:id.
func (h *Handler) DeleteCertification(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCertification(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package profile

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// Handler handles HTTP requests for the profile and skills.
type Handler struct {
	service Service
}

// NewHandler creates a new profile handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Public serves GET /api/profile.
func (h *Handler) Public(c echo.Context) error {
	p, err := h.service.Public(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Get serves GET /api/admin/profile.
func (h *Handler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update serves PUT /api/admin/profile.
func (h *Handler) Update(c echo.Context) error {
	var p Profile
	if err := c.Bind(&p); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	saved, err := h.service.Update(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

// ListSkills serves GET /api/admin/skills.
func (h *Handler) ListSkills(c echo.Context) error {
	skills, err := h.service.ListSkills(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skills)
}

// CreateSkill serves POST /api/admin/skills.
func (h *Handler) CreateSkill(c echo.Context) error {
	var req UpsertSkillRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	skill, err := h.service.CreateSkill(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skill)
}

// UpdateSkill serves PUT /api/admin/skills/:id.
func (h *Handler) UpdateSkill(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid skill id")
	}
	var req UpsertSkillRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	skill, err := h.service.UpdateSkill(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skill)
}

// DeleteSkill serves DELETE /api/admin/skills/:id.
func (h *Handler) DeleteSkill(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid skill id")
	}
	if err := h.service.DeleteSkill(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package post

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// Handler handles HTTP requests for blog posts.
type Handler struct {
	service Service
}

// NewHandler creates a new post handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// PublicList serves GET /api/blog.
func (h *Handler) PublicList(c echo.Context) error {
	posts, err := h.service.PublicList(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// List serves GET /api/admin/posts.
func (h *Handler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Create serves POST /api/admin/posts.
func (h *Handler) Create(c echo.Context) error {
	var p Post
	if err := c.Bind(&p); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	created, err := h.service.Create(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// Update serves PUT /api/admin/posts/:slug.
func (h *Handler) Update(c echo.Context) error {
	var p Post
	if err := c.Bind(&p); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	updated, err := h.service.Update(c.Request().Context(), c.Param("slug"), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete serves DELETE /api/admin/posts/:slug.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

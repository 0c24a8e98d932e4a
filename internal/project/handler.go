package project

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	service Service
	maxSize int64
}

// NewHandler creates a new project handler. maxSize bounds image uploads.
func NewHandler(service Service, maxSize int64) *Handler {
	return &Handler{service: service, maxSize: maxSize}
}

// PublicList serves GET /api/projects.
func (h *Handler) PublicList(c echo.Context) error {
	projects, err := h.service.PublicList(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// List serves GET /api/admin/projects.
func (h *Handler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Create serves POST /api/admin/projects.
func (h *Handler) Create(c echo.Context) error {
	var p Project
	if err := c.Bind(&p); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	created, err := h.service.Create(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// Update serves PUT /api/admin/projects/:slug.
func (h *Handler) Update(c echo.Context) error {
	var p Project
	if err := c.Bind(&p); err != nil {
		return apperror.NewValidation("invalid payload")
	}
	updated, err := h.service.Update(c.Request().Context(), c.Param("slug"), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete serves DELETE /api/admin/projects/:slug.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage serves POST /api/admin/projects/:slug/image. Expects a
// multipart form with a "file" field.
func (h *Handler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperror.NewBadRequest("missing file upload")
	}
	if fileHeader.Size > h.maxSize {
		return apperror.NewBadRequest("file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperror.NewBadRequest("unreadable file upload")
	}
	defer src.Close()

	// +1 so an oversized stream is detected even when the declared size lied.
	data, err := io.ReadAll(io.LimitReader(src, h.maxSize+1))
	if err != nil {
		return apperror.NewBadRequest("unreadable file upload")
	}
	if int64(len(data)) > h.maxSize {
		return apperror.NewBadRequest("file too large")
	}

	updated, err := h.service.SetImage(c.Request().Context(), c.Param("slug"), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteImage serves DELETE /api/admin/projects/:slug/image.
func (h *Handler) DeleteImage(c echo.Context) error {
	if err := h.service.RemoveImage(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

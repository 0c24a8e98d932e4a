// Package contact handles the public contact form. Submissions are emailed
// to the site owner when SMTP is configured and logged otherwise; the form
// never fails just because mail delivery is unavailable.
package contact

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/mailer"
)

// Request is the JSON body of POST /api/contact.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Handler handles contact form submissions.
type Handler struct {
	mailer mailer.Mailer
}

// NewHandler creates a new contact handler.
func NewHandler(m mailer.Mailer) *Handler {
	return &Handler{mailer: m}
}

// Submit serves POST /api/contact.
func (h *Handler) Submit(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid payload")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperror.NewValidation("Name, email, and message are required.")
	}

	subject := req.Subject
	if subject == "" {
		subject = "Portfolio contact from " + req.Name
	}

	if !h.mailer.IsConfigured() {
		// Tolerate missing SMTP: record the submission and report success.
		slog.Warn("contact submission received but mail is not configured",
			slog.String("name", req.Name), slog.String("email", req.Email))
		return c.JSON(http.StatusOK, map[string]any{"ok": true})
	}

	body := buildBody(req)
	if err := h.mailer.Send(c.Request().Context(), subject, body, req.Email); err != nil {
		// Delivery failure is ours to chase, not the visitor's.
		slog.Error("contact mail delivery failed", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// buildBody renders the contact email. All visitor input is escaped; the
// message body is user text, not HTML.
func buildBody(req Request) string {
	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2>")
	b.WriteString(fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email)))
	if req.Subject != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Subject:</strong> %s</p>", html.EscapeString(req.Subject)))
	}
	msg := strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>")
	b.WriteString(fmt.Sprintf("<p>%s</p>", msg))
	return b.String()
}

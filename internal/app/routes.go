package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/auth"
	"github.com/acampos/folio/internal/cache"
	"github.com/acampos/folio/internal/contact"
	"github.com/acampos/folio/internal/images"
	"github.com/acampos/folio/internal/mailer"
	"github.com/acampos/folio/internal/middleware"
	"github.com/acampos/folio/internal/passcode"
	"github.com/acampos/folio/internal/post"
	"github.com/acampos/folio/internal/profile"
	"github.com/acampos/folio/internal/project"
	"github.com/acampos/folio/internal/resume"
)

// RegisterRoutes builds all services and wires up every route. This is the
// single aggregation point: public reads, the passcode gate, the contact
// form, and the session-plus-CSRF protected admin group.
func (a *App) RegisterRoutes() {
	e := a.Echo
	cfg := a.Config
	secure := cfg.IsProduction()

	// Shared infrastructure.
	contentCache := cache.New(a.Redis, cache.DefaultTTL)
	imageStore := images.NewStore(cfg.Upload.UploadsPath, cfg.Upload.MaxSize)
	mail := mailer.New(cfg.SMTP)

	// Auth: session service first, because the CSRF binding derives from it.
	authService := auth.NewService(cfg.Auth)
	csrf := middleware.NewCSRF(cfg.Auth.SecretKey, secure, auth.SessionBinding(authService))

	// Everything under /api/admin (except login, registered directly on e)
	// requires a valid session and a CSRF token on mutations.
	admin := e.Group("/api/admin",
		auth.RequireAdmin(authService, secure, cfg.Auth.SessionTTL),
		csrf.Middleware(),
	)

	authHandler := auth.NewHandler(authService, csrf, secure, cfg.Auth.SessionTTL)
	auth.RegisterRoutes(e, admin, authHandler)

	passcodeService := passcode.NewService(cfg.Auth.PasscodeHash)
	passcodeHandler := passcode.NewHandler(passcodeService, csrf, secure, cfg.Auth.PasscodeTTL)
	passcode.RegisterRoutes(e, passcodeHandler)

	// Content features.
	profileService := profile.NewService(profile.NewRepository(a.DB), profile.NewSkillRepository(a.DB), contentCache)
	profile.RegisterRoutes(e, admin, profile.NewHandler(profileService))

	projectService := project.NewService(project.NewRepository(a.DB), imageStore, contentCache)
	project.RegisterRoutes(e, admin, project.NewHandler(projectService, cfg.Upload.MaxSize))

	postService := post.NewService(post.NewRepository(a.DB), contentCache)
	post.RegisterRoutes(e, admin, post.NewHandler(postService))

	resumeService := resume.NewService(
		resume.NewExperienceRepository(a.DB),
		resume.NewEducationRepository(a.DB),
		resume.NewCertificationRepository(a.DB),
		contentCache,
	)
	resume.RegisterRoutes(e, admin, resume.NewHandler(resumeService))

	contact.RegisterRoutes(e, contact.NewHandler(mail))

	// Uploaded project images.
	e.Static("/uploads", cfg.Upload.UploadsPath)

	// Health check endpoint for container orchestration.
	e.GET("/healthz", a.healthz)
}

// healthz reports process and database liveness.
func (a *App) healthz(c echo.Context) error {
	if err := a.DB.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "down"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/cache"
	"github.com/acampos/folio/internal/images"
	"github.com/acampos/folio/internal/sanitize"
)

// cacheKey holds the public project list in Redis.
const cacheKey = "public:projects"

// Service handles business logic for projects.
type Service interface {
	// PublicList returns all projects for the public site, cached.
	PublicList(ctx context.Context) ([]Project, error)

	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, p Project) (*Project, error)
	Update(ctx context.Context, slug string, p Project) (*Project, error)
	Delete(ctx context.Context, slug string) error

	// SetImage stores an uploaded image for the project and records its web
	// path, replacing any previous image.
	SetImage(ctx context.Context, slug, filename string, data []byte) (*Project, error)
	RemoveImage(ctx context.Context, slug string) error
}

// service implements Service.
type service struct {
	repo   Repository
	images *images.Store
	cache  *cache.Cache
}

// NewService creates a new project service.
func NewService(repo Repository, imgs *images.Store, c *cache.Cache) Service {
	return &service{repo: repo, images: imgs, cache: c}
}

// PublicList returns projects, consulting the cache first.
func (s *service) PublicList(ctx context.Context) ([]Project, error) {
	var cached []Project
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if projects == nil {
		projects = []Project{}
	}

	s.cache.SetJSON(ctx, cacheKey, projects)
	return projects, nil
}

// List returns projects for the admin UI, bypassing the cache.
func (s *service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if projects == nil {
		projects = []Project{}
	}
	return projects, nil
}

// Create inserts a project. A blank slug gets a random one; a taken slug is
// a conflict.
func (s *service) Create(ctx context.Context, p Project) (*Project, error) {
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	p.Title = sanitize.Text(p.Title)
	p.Description = sanitize.Text(p.Description)
	p.ImagePath = nil

	exists, err := s.repo.SlugExists(ctx, p.Slug)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if exists {
		return nil, apperror.NewConflict("slug exists")
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.cache.Delete(ctx, cacheKey)
	slog.Info("project created", slog.String("slug", p.Slug))
	return &p, nil
}

// Update modifies a project's content. The slug is fixed and the image is
// managed through its own endpoints.
func (s *service) Update(ctx context.Context, slug string, p Project) (*Project, error) {
	row, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	row.Title = sanitize.Text(p.Title)
	row.Description = sanitize.Text(p.Description)
	row.Tech = p.Tech
	row.RepoURL = p.RepoURL
	row.LiveURL = p.LiveURL
	row.Highlights = p.Highlights

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.cache.Delete(ctx, cacheKey)
	return row, nil
}

// Delete removes a project and its stored image.
func (s *service) Delete(ctx context.Context, slug string) error {
	row, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	if row.ImagePath != nil {
		s.images.Delete(*row.ImagePath)
	}

	s.cache.Delete(ctx, cacheKey)
	slog.Info("project deleted", slog.String("slug", slug))
	return nil
}

// SetImage validates and stores the upload, then swaps the recorded path.
// The old file is removed only after the new one is saved and recorded.
func (s *service) SetImage(ctx context.Context, slug, filename string, data []byte) (*Project, error) {
	row, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	webPath, err := s.images.Save(filename, data)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateImage(ctx, slug, &webPath); err != nil {
		s.images.Delete(webPath)
		return nil, apperror.NewInternal(err)
	}

	if row.ImagePath != nil && *row.ImagePath != webPath {
		s.images.Delete(*row.ImagePath)
	}
	row.ImagePath = &webPath

	s.cache.Delete(ctx, cacheKey)
	return row, nil
}

// RemoveImage clears the project's image. Idempotent.
func (s *service) RemoveImage(ctx context.Context, slug string) error {
	row, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if row.ImagePath == nil {
		return nil
	}

	if err := s.repo.UpdateImage(ctx, slug, nil); err != nil {
		return apperror.NewInternal(err)
	}
	s.images.Delete(*row.ImagePath)

	s.cache.Delete(ctx, cacheKey)
	return nil
}

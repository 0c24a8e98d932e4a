package post

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/cache"
	"github.com/acampos/folio/internal/sanitize"
)

// cacheKey holds the public blog list in Redis.
const cacheKey = "public:blog"

// Service handles business logic for blog posts.
type Service interface {
	// PublicList returns all posts for the public blog, cached, newest first.
	PublicList(ctx context.Context) ([]Post, error)

	List(ctx context.Context) ([]Post, error)
	Create(ctx context.Context, p Post) (*Post, error)
	Update(ctx context.Context, slug string, p Post) (*Post, error)
	Delete(ctx context.Context, slug string) error
}

// service implements Service.
type service struct {
	repo  Repository
	cache *cache.Cache
}

// NewService creates a new post service.
func NewService(repo Repository, c *cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

// PublicList returns posts, consulting the cache first.
func (s *service) PublicList(ctx context.Context) ([]Post, error) {
	var cached []Post
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if posts == nil {
		posts = []Post{}
	}

	s.cache.SetJSON(ctx, cacheKey, posts)
	return posts, nil
}

// List returns posts for the admin UI, bypassing the cache.
func (s *service) List(ctx context.Context) ([]Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if posts == nil {
		posts = []Post{}
	}
	return posts, nil
}

// Create inserts a post. A blank slug gets a random one; a zero published
// time defaults to now; a taken slug is a conflict.
func (s *service) Create(ctx context.Context, p Post) (*Post, error) {
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if p.Published.IsZero() {
		p.Published = time.Now().UTC()
	}
	p.Title = sanitize.Text(p.Title)
	p.Excerpt = sanitize.Text(p.Excerpt)
	p.Body = sanitize.HTML(p.Body)

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
	slog.Info("post created", slog.String("slug", p.Slug))
	return &p, nil
}

// Update modifies a post's content. A zero published time keeps the stored
// one; the slug is fixed.
func (s *service) Update(ctx context.Context, slug string, p Post) (*Post, error) {
	row, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	row.Title = sanitize.Text(p.Title)
	row.Excerpt = sanitize.Text(p.Excerpt)
	row.Body = sanitize.HTML(p.Body)
	if !p.Published.IsZero() {
		row.Published = p.Published
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.cache.Delete(ctx, cacheKey)
	return row, nil
}

// Delete removes a post.
func (s *service) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKey)
	slog.Info("post deleted", slog.String("slug", slug))
	return nil
}

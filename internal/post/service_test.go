package post

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/acampos/folio/internal/apperror"
)

// --- Mock Repository ---

// mockRepo implements Repository for testing.
type mockRepo struct {
	listFn       func(ctx context.Context) ([]Post, error)
	findBySlugFn func(ctx context.Context, slug string) (*Post, error)
	createFn     func(ctx context.Context, p *Post) error
	updateFn     func(ctx context.Context, p *Post) error
	deleteFn     func(ctx context.Context, slug string) error
	slugExistsFn func(ctx context.Context, slug string) (bool, error)
}

func (m *mockRepo) List(ctx context.Context) ([]Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRepo) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, apperror.NewNotFound("post not found")
}

func (m *mockRepo) Create(ctx context.Context, p *Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockRepo) Update(ctx context.Context, p *Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, slug string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, slug)
	}
	return nil
}

func (m *mockRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Create Tests ---

func TestCreate_DefaultsSlugAndPublished(t *testing.T) {
	var created *Post
	repo := &mockRepo{
		createFn: func(ctx context.Context, p *Post) error {
			created = p
			return nil
		},
	}
	svc := NewService(repo, nil)

	before := time.Now().UTC()
	got, err := svc.Create(context.Background(), Post{Title: "Untitled"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected the post to be created")
	}
	if len(got.Slug) != 32 || strings.Contains(got.Slug, "-") {
		t.Errorf("expected a generated 32-char slug, got %q", got.Slug)
	}
	if got.Published.Before(before) {
		t.Errorf("expected published to default to now, got %v", got.Published)
	}
}

func TestCreate_KeepsExplicitValues(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)

	published := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	got, err := svc.Create(context.Background(), Post{
		Slug:      "optimizing-tsql",
		Title:     "Title",
		Published: published,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Slug != "optimizing-tsql" {
		t.Errorf("expected the given slug, got %q", got.Slug)
	}
	if !got.Published.Equal(published) {
		t.Errorf("expected the given published time, got %v", got.Published)
	}
}

func TestCreate_SanitizesBodyButKeepsSafeHTML(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)

	got, err := svc.Create(context.Background(), Post{
		Title:   "Title <script>x</script>",
		Excerpt: "<em>short</em>",
		Body:    `<p>Hello</p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Title" {
		t.Errorf("expected a plain-text title, got %q", got.Title)
	}
	if strings.Contains(got.Excerpt, "<em>") {
		t.Errorf("expected a plain-text excerpt, got %q", got.Excerpt)
	}
	if !strings.Contains(got.Body, "<p>Hello</p>") {
		t.Errorf("expected safe markup kept in the body, got %q", got.Body)
	}
	if strings.Contains(got.Body, "<script>") {
		t.Errorf("expected scripts stripped from the body, got %q", got.Body)
	}
}

func TestCreate_SlugConflict(t *testing.T) {
	repo := &mockRepo{
		slugExistsFn: func(ctx context.Context, slug string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), Post{Slug: "taken", Title: "x"})
	assertAppError(t, err, http.StatusConflict)
}

// --- Update Tests ---

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)
	_, err := svc.Update(context.Background(), "missing", Post{Title: "x"})
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdate_ZeroPublishedKeepsStored(t *testing.T) {
	stored := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	repo := &mockRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*Post, error) {
			return &Post{Slug: slug, Title: "Old", Published: stored}, nil
		},
	}
	svc := NewService(repo, nil)

	got, err := svc.Update(context.Background(), "optimizing-tsql", Post{Title: "New"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Published.Equal(stored) {
		t.Errorf("expected the stored published time to be kept, got %v", got.Published)
	}
	if got.Title != "New" {
		t.Errorf("expected the title to change, got %q", got.Title)
	}
	if got.Slug != "optimizing-tsql" {
		t.Errorf("expected the slug to be immutable, got %q", got.Slug)
	}
}

// --- List Tests ---

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posts == nil {
		t.Error("expected an empty slice, not nil")
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}

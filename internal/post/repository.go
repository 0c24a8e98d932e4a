package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acampos/folio/internal/apperror"
)

// Repository defines data access for post rows.
type Repository interface {
	// List returns all posts, newest published first.
	List(ctx context.Context) ([]Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, slug string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// repository implements Repository with MariaDB queries.
type repository struct {
	db *sql.DB
}

// NewRepository creates a new post repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List returns posts ordered by published date descending.
func (r *repository) List(ctx context.Context) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slug, title, excerpt, body, published FROM posts ORDER BY published DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Published); err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindBySlug retrieves a post by slug.
func (r *repository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	p := &Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT slug, title, excerpt, body, published FROM posts WHERE slug = ?`, slug,
	).Scan(&p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Published)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying post: %w", err)
	}
	return p, nil
}

// Create inserts a new post row.
func (r *repository) Create(ctx context.Context, p *Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (slug, title, excerpt, body, published) VALUES (?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.Published,
	)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

// Update modifies an existing post. Existence is the caller's job.
func (r *repository) Update(ctx context.Context, p *Post) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, excerpt = ?, body = ?, published = ? WHERE slug = ?`,
		p.Title, p.Excerpt, p.Body, p.Published, p.Slug,
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	return nil
}

// Delete removes a post row.
func (r *repository) Delete(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("post not found")
	}
	return nil
}

// SlugExists reports whether a post with the given slug exists.
func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE slug = ?)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking post slug: %w", err)
	}
	return exists, nil
}

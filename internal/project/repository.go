package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/acampos/folio/internal/apperror"
)

// Repository defines data access for project rows.
type Repository interface {
	List(ctx context.Context) ([]Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, slug string) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	// UpdateImage sets or clears (nil) the stored image path.
	UpdateImage(ctx context.Context, slug string, imagePath *string) error
}

// repository implements Repository with MariaDB queries.
type repository struct {
	db *sql.DB
}

// NewRepository creates a new project repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const projectColumns = `slug, title, description, tech, repo_url, live_url, highlights, image_path`

// List returns all projects ordered by title.
func (r *repository) List(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// FindBySlug retrieves a project by slug.
func (r *repository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("project not found")
	}
	return p, err
}

// scanProject scans one project row, decoding the JSON list columns.
func scanProject(scan func(...any) error) (*Project, error) {
	p := &Project{}
	var techRaw, highlightsRaw []byte
	err := scan(&p.Slug, &p.Title, &p.Description, &techRaw, &p.RepoURL, &p.LiveURL, &highlightsRaw, &p.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}

	p.Tech = decodeList(techRaw)
	p.Highlights = decodeList(highlightsRaw)
	return p, nil
}

// Create inserts a new project row.
func (r *repository) Create(ctx context.Context, p *Project) error {
	techJSON, highlightsJSON, err := encodeLists(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (slug, title, description, tech, repo_url, live_url, highlights, image_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Description, techJSON, p.RepoURL, p.LiveURL, highlightsJSON, p.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// Update modifies an existing project. The slug and image path are not
// touched; the image has its own endpoint.
func (r *repository) Update(ctx context.Context, p *Project) error {
	techJSON, highlightsJSON, err := encodeLists(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, tech = ?, repo_url = ?, live_url = ?, highlights = ?
		 WHERE slug = ?`,
		p.Title, p.Description, techJSON, p.RepoURL, p.LiveURL, highlightsJSON, p.Slug,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// Delete removes a project row.
func (r *repository) Delete(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("project not found")
	}
	return nil
}

// SlugExists reports whether a project with the given slug exists.
func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE slug = ?)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking project slug: %w", err)
	}
	return exists, nil
}

// UpdateImage sets or clears the image path. Existence is the caller's job:
// a no-change update affects zero rows, same as a missing slug.
func (r *repository) UpdateImage(ctx context.Context, slug string, imagePath *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET image_path = ? WHERE slug = ?`, imagePath, slug)
	if err != nil {
		return fmt.Errorf("updating project image: %w", err)
	}
	return nil
}

// encodeLists marshals the JSON text columns, defaulting nil to [].
func encodeLists(p *Project) ([]byte, []byte, error) {
	if p.Tech == nil {
		p.Tech = []string{}
	}
	if p.Highlights == nil {
		p.Highlights = []string{}
	}
	techJSON, err := json.Marshal(p.Tech)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling tech list: %w", err)
	}
	highlightsJSON, err := json.Marshal(p.Highlights)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling highlights list: %w", err)
	}
	return techJSON, highlightsJSON, nil
}

// decodeList unmarshals a JSON text column, treating empty or corrupt values
// as an empty list.
func decodeList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

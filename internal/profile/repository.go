package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acampos/folio/internal/apperror"
)

// Repository defines data access for the profile row and its links.
type Repository interface {
	// Find returns the profile with its links, or NotFound when no profile
	// row exists yet.
	Find(ctx context.Context) (*Profile, error)

	// Upsert writes the profile scalars and replaces the link set in one
	// transaction. Creates the row when none exists.
	Upsert(ctx context.Context, p *Profile) error
}

// SkillRepository defines data access for skill rows.
type SkillRepository interface {
	List(ctx context.Context, profileID int) ([]Skill, error)
	VisibleNames(ctx context.Context, profileID int) ([]string, error)
	FindByID(ctx context.Context, id int) (*Skill, error)
	Create(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id int) error

	// NameExists reports whether another skill of the same profile already
	// uses name. excludeID skips the row being renamed (0 for create).
	NameExists(ctx context.Context, profileID int, name string, excludeID int) (bool, error)
}

// profileID is the fixed id of the single profile row.
const profileID = 1

// repository implements Repository with MariaDB queries.
type repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Find retrieves the profile and its links.
func (r *repository) Find(ctx context.Context) (*Profile, error) {
	p := &Profile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, title, tagline, summary, location, email, github, linkedin
		 FROM profiles WHERE id = ?`, profileID,
	).Scan(&p.ID, &p.Name, &p.Title, &p.Tagline, &p.Summary, &p.Location, &p.Email, &p.Github, &p.Linkedin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT label, url FROM links WHERE profile_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("listing profile links: %w", err)
	}
	defer rows.Close()

	p.Links = []Link{}
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.Label, &l.URL); err != nil {
			return nil, fmt.Errorf("scanning link row: %w", err)
		}
		p.Links = append(p.Links, l)
	}
	return p, rows.Err()
}

// Upsert writes scalars and replaces links transactionally.
func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning profile tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (id, name, title, tagline, summary, location, email, github, linkedin)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   name = VALUES(name), title = VALUES(title), tagline = VALUES(tagline),
		   summary = VALUES(summary), location = VALUES(location), email = VALUES(email),
		   github = VALUES(github), linkedin = VALUES(linkedin)`,
		profileID, p.Name, p.Title, p.Tagline, p.Summary, p.Location, p.Email, p.Github, p.Linkedin,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	p.ID = profileID

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("clearing profile links: %w", err)
	}
	for _, l := range p.Links {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO links (profile_id, label, url) VALUES (?, ?, ?)`,
			profileID, l.Label, l.URL,
		); err != nil {
			return fmt.Errorf("inserting profile link: %w", err)
		}
	}

	return tx.Commit()
}

// skillRepository implements SkillRepository with MariaDB queries.
type skillRepository struct {
	db *sql.DB
}

// NewSkillRepository creates a new skill repository.
func NewSkillRepository(db *sql.DB) SkillRepository {
	return &skillRepository{db: db}
}

// skillOrder sorts explicit positions first, unpositioned rows last, ties by
// name.
const skillOrder = `ORDER BY (sort_order IS NULL), sort_order, name`

// List returns all skills of a profile in display order.
func (r *skillRepository) List(ctx context.Context, profileID int) ([]Skill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, name, is_visible, sort_order FROM skills
		 WHERE profile_id = ? `+skillOrder, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Name, &s.IsVisible, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning skill row: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// VisibleNames returns visible skill names in display order, for the public
// profile shape.
func (r *skillRepository) VisibleNames(ctx context.Context, profileID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM skills WHERE profile_id = ? AND is_visible = true `+skillOrder,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("listing visible skills: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning skill name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindByID retrieves a skill by its auto-increment ID.
func (r *skillRepository) FindByID(ctx context.Context, id int) (*Skill, error) {
	s := &Skill{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, profile_id, name, is_visible, sort_order FROM skills WHERE id = ?`, id,
	).Scan(&s.ID, &s.ProfileID, &s.Name, &s.IsVisible, &s.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("skill not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying skill: %w", err)
	}
	return s, nil
}

// Create inserts a new skill row.
func (r *skillRepository) Create(ctx context.Context, s *Skill) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO skills (profile_id, name, is_visible, sort_order) VALUES (?, ?, ?, ?)`,
		s.ProfileID, s.Name, s.IsVisible, s.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("inserting skill: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting skill id: %w", err)
	}
	s.ID = int(id)
	return nil
}

// Update modifies an existing skill row. Existence is the caller's job
// (FindByID first): MySQL reports zero affected rows for a no-change update,
// so RowsAffected cannot distinguish "missing" from "identical".
func (r *skillRepository) Update(ctx context.Context, s *Skill) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE skills SET name = ?, is_visible = ?, sort_order = ? WHERE id = ?`,
		s.Name, s.IsVisible, s.SortOrder, s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating skill: %w", err)
	}
	return nil
}

// Delete removes a skill row.
func (r *skillRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting skill: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("skill not found")
	}
	return nil
}

// NameExists checks per-profile name uniqueness.
func (r *skillRepository) NameExists(ctx context.Context, profileID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM skills WHERE profile_id = ? AND name = ? AND id != ?)`,
		profileID, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking skill name: %w", err)
	}
	return exists, nil
}

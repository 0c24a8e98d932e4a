package resume

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/acampos/folio/internal/apperror"
)

// ExperienceRepository defines data access for experience rows.
type ExperienceRepository interface {
	// List returns experiences, most recent start first.
	List(ctx context.Context) ([]Experience, error)
	FindByID(ctx context.Context, id int) (*Experience, error)
	Create(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id int) error
}

// EducationRepository defines data access for education rows.
type EducationRepository interface {
	// List returns educations, most recent end first.
	List(ctx context.Context) ([]Education, error)
	FindByID(ctx context.Context, id int) (*Education, error)
	Create(ctx context.Context, e *Education) error
	Update(ctx context.Context, e *Education) error
	Delete(ctx context.Context, id int) error
}

// CertificationRepository defines data access for certification rows.
type CertificationRepository interface {
	// List returns certifications, most recently issued first; rows without
	// an issue date sort last.
	List(ctx context.Context) ([]Certification, error)
	FindByID(ctx context.Context, id int) (*Certification, error)
	Create(ctx context.Context, c *Certification) error
	Update(ctx context.Context, c *Certification) error
	Delete(ctx context.Context, id int) error
}

// --- Experience ---

type experienceRepository struct {
	db *sql.DB
}

// NewExperienceRepository creates a new experience repository.
func NewExperienceRepository(db *sql.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

const experienceColumns = "id, company, role, location, `start`, `end`, highlights, tech"

// List returns all experiences ordered by start date descending.
func (r *experienceRepository) List(ctx context.Context) ([]Experience, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+experienceColumns+` FROM experiences ORDER BY `+"`start`"+` DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing experiences: %w", err)
	}
	defer rows.Close()

	var items []Experience
	for rows.Next() {
		var e Experience
		var highlightsRaw, techRaw []byte
		if err := rows.Scan(&e.ID, &e.Company, &e.Role, &e.Location, &e.Start, &e.End, &highlightsRaw, &techRaw); err != nil {
			return nil, fmt.Errorf("scanning experience row: %w", err)
		}
		e.Highlights = decodeList(highlightsRaw)
		e.Tech = decodeList(techRaw)
		items = append(items, e)
	}
	return items, rows.Err()
}

// FindByID retrieves an experience by ID.
func (r *experienceRepository) FindByID(ctx context.Context, id int) (*Experience, error) {
	e := &Experience{}
	var highlightsRaw, techRaw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE id = ?`, id,
	).Scan(&e.ID, &e.Company, &e.Role, &e.Location, &e.Start, &e.End, &highlightsRaw, &techRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("experience not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying experience: %w", err)
	}
	e.Highlights = decodeList(highlightsRaw)
	e.Tech = decodeList(techRaw)
	return e, nil
}

// Create inserts a new experience row.
func (r *experienceRepository) Create(ctx context.Context, e *Experience) error {
	highlightsJSON, err := encodeList(e.Highlights)
	if err != nil {
		return err
	}
	techJSON, err := encodeList(e.Tech)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO experiences (company, role, location, `start`, `end`, highlights, tech) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.Company, e.Role, e.Location, e.Start, e.End, highlightsJSON, techJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting experience: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting experience id: %w", err)
	}
	e.ID = int(id)
	return nil
}

// Update modifies an existing experience row. Existence is the caller's job.
func (r *experienceRepository) Update(ctx context.Context, e *Experience) error {
	highlightsJSON, err := encodeList(e.Highlights)
	if err != nil {
		return err
	}
	techJSON, err := encodeList(e.Tech)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE experiences SET company = ?, role = ?, location = ?, `start` = ?, `end` = ?, highlights = ?, tech = ? WHERE id = ?",
		e.Company, e.Role, e.Location, e.Start, e.End, highlightsJSON, techJSON, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating experience: %w", err)
	}
	return nil
}

// Delete removes an experience row.
func (r *experienceRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting experience: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("experience not found")
	}
	return nil
}

// --- Education ---

type educationRepository struct {
	db *sql.DB
}

// NewEducationRepository creates a new education repository.
func NewEducationRepository(db *sql.DB) EducationRepository {
	return &educationRepository{db: db}
}

// List returns all educations ordered by end date descending.
func (r *educationRepository) List(ctx context.Context) ([]Education, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, school, degree, `+"`start`, `end`"+`, details FROM educations ORDER BY `+"`end`"+` DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing educations: %w", err)
	}
	defer rows.Close()

	var items []Education
	for rows.Next() {
		var e Education
		var detailsRaw []byte
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.Start, &e.End, &detailsRaw); err != nil {
			return nil, fmt.Errorf("scanning education row: %w", err)
		}
		e.Details = decodeList(detailsRaw)
		items = append(items, e)
	}
	return items, rows.Err()
}

// FindByID retrieves an education by ID.
func (r *educationRepository) FindByID(ctx context.Context, id int) (*Education, error) {
	e := &Education{}
	var detailsRaw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, school, degree, `+"`start`, `end`"+`, details FROM educations WHERE id = ?`, id,
	).Scan(&e.ID, &e.School, &e.Degree, &e.Start, &e.End, &detailsRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("education not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying education: %w", err)
	}
	e.Details = decodeList(detailsRaw)
	return e, nil
}

// Create inserts a new education row.
func (r *educationRepository) Create(ctx context.Context, e *Education) error {
	detailsJSON, err := encodeList(e.Details)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO educations (school, degree, `start`, `end`, details) VALUES (?, ?, ?, ?, ?)",
		e.School, e.Degree, e.Start, e.End, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting education: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting education id: %w", err)
	}
	e.ID = int(id)
	return nil
}

// Update modifies an existing education row. Existence is the caller's job.
func (r *educationRepository) Update(ctx context.Context, e *Education) error {
	detailsJSON, err := encodeList(e.Details)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE educations SET school = ?, degree = ?, `start` = ?, `end` = ?, details = ? WHERE id = ?",
		e.School, e.Degree, e.Start, e.End, detailsJSON, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating education: %w", err)
	}
	return nil
}

// Delete removes an education row.
func (r *educationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM educations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting education: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("education not found")
	}
	return nil
}

// --- Certification ---

type certificationRepository struct {
	db *sql.DB
}

// NewCertificationRepository creates a new certification repository.
func NewCertificationRepository(db *sql.DB) CertificationRepository {
	return &certificationRepository{db: db}
}

// List returns all certifications, newest issue date first with undated rows
// last.
func (r *certificationRepository) List(ctx context.Context) ([]Certification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, issuer, issued, expires FROM certifications
		 ORDER BY (issued IS NULL), issued DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing certifications: %w", err)
	}
	defer rows.Close()

	var items []Certification
	for rows.Next() {
		var c Certification
		if err := rows.Scan(&c.ID, &c.Name, &c.Issuer, &c.Issued, &c.Expires); err != nil {
			return nil, fmt.Errorf("scanning certification row: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a certification by ID.
func (r *certificationRepository) FindByID(ctx context.Context, id int) (*Certification, error) {
	c := &Certification{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, issuer, issued, expires FROM certifications WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Issuer, &c.Issued, &c.Expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("certification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying certification: %w", err)
	}
	return c, nil
}

// Create inserts a new certification row.
func (r *certificationRepository) Create(ctx context.Context, c *Certification) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO certifications (name, issuer, issued, expires) VALUES (?, ?, ?, ?)`,
		c.Name, c.Issuer, c.Issued, c.Expires,
	)
	if err != nil {
		return fmt.Errorf("inserting certification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting certification id: %w", err)
	}
	c.ID = int(id)
	return nil
}

// Update modifies an existing certification row. Existence is the caller's
// job.
func (r *certificationRepository) Update(ctx context.Context, c *Certification) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE certifications SET name = ?, issuer = ?, issued = ?, expires = ? WHERE id = ?`,
		c.Name, c.Issuer, c.Issued, c.Expires, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating certification: %w", err)
	}
	return nil
}

// Delete removes a certification row.
func (r *certificationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM certifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting certification: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("certification not found")
	}
	return nil
}

// encodeList marshals a JSON text column, defaulting nil to [].
func encodeList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshaling list column: %w", err)
	}
	return data, nil
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

// Package seed loads sample content into an empty database. Seeding is
// idempotent: the profile's scalars and links are overwritten, skill order is
// realigned without touching admin-set visibility, and every collection is
// upserted by natural key.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/post"
	"github.com/acampos/folio/internal/profile"
	"github.com/acampos/folio/internal/project"
	"github.com/acampos/folio/internal/resume"
)

// Seeder upserts sample content through the content repositories.
type Seeder struct {
	profiles       profile.Repository
	skills         profile.SkillRepository
	projects       project.Repository
	posts          post.Repository
	experiences    resume.ExperienceRepository
	educations     resume.EducationRepository
	certifications resume.CertificationRepository
}

// New creates a Seeder over the given database.
func New(db *sql.DB) *Seeder {
	return &Seeder{
		profiles:       profile.NewRepository(db),
		skills:         profile.NewSkillRepository(db),
		projects:       project.NewRepository(db),
		posts:          post.NewRepository(db),
		experiences:    resume.NewExperienceRepository(db),
		educations:     resume.NewEducationRepository(db),
		certifications: resume.NewCertificationRepository(db),
	}
}

// Run seeds all content sections and logs per-section insert counts.
func (s *Seeder) Run(ctx context.Context) error {
	p, err := s.seedProfile(ctx)
	if err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}
	skills, err := s.seedSkills(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("seeding skills: %w", err)
	}
	projects, err := s.seedProjects(ctx)
	if err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}
	posts, err := s.seedPosts(ctx)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	experience, err := s.seedExperience(ctx)
	if err != nil {
		return fmt.Errorf("seeding experience: %w", err)
	}
	education, err := s.seedEducation(ctx)
	if err != nil {
		return fmt.Errorf("seeding education: %w", err)
	}
	certifications, err := s.seedCertifications(ctx)
	if err != nil {
		return fmt.Errorf("seeding certifications: %w", err)
	}

	slog.Info("database seeded",
		slog.Int("skills", skills),
		slog.Int("projects", projects),
		slog.Int("posts", posts),
		slog.Int("experience", experience),
		slog.Int("education", education),
		slog.Int("certifications", certifications),
	)
	return nil
}

// seedProfile writes the sample profile, overwriting scalars and replacing
// links whether or not a row already exists.
func (s *Seeder) seedProfile(ctx context.Context) (*profile.Profile, error) {
	p := sampleProfile()
	if err := s.profiles.Upsert(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// seedSkills inserts missing skills as visible, ordered by list position, and
// realigns the order of existing ones without touching their visibility.
func (s *Seeder) seedSkills(ctx context.Context, profileID int) (int, error) {
	existing, err := s.skills.List(ctx, profileID)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]*profile.Skill, len(existing))
	for i := range existing {
		byName[existing[i].Name] = &existing[i]
	}

	added := 0
	for i, name := range sampleSkills() {
		order := i
		row, ok := byName[name]
		if !ok {
			skill := &profile.Skill{ProfileID: profileID, Name: name, IsVisible: true, SortOrder: &order}
			if err := s.skills.Create(ctx, skill); err != nil {
				return added, err
			}
			added++
			continue
		}
		if row.SortOrder == nil || *row.SortOrder != order {
			row.SortOrder = &order
			if err := s.skills.Update(ctx, row); err != nil {
				return added, err
			}
		}
	}
	return added, nil
}

// seedProjects upserts projects by slug.
func (s *Seeder) seedProjects(ctx context.Context) (int, error) {
	added := 0
	for _, p := range sampleProjects() {
		row, err := s.projects.FindBySlug(ctx, p.Slug)
		if isNotFound(err) {
			p := p
			if err := s.projects.Create(ctx, &p); err != nil {
				return added, err
			}
			added++
			continue
		}
		if err != nil {
			return added, err
		}

		row.Title = p.Title
		row.Description = p.Description
		row.Tech = p.Tech
		row.RepoURL = p.RepoURL
		row.LiveURL = p.LiveURL
		row.Highlights = p.Highlights
		if err := s.projects.Update(ctx, row); err != nil {
			return added, err
		}
	}
	return added, nil
}

// seedPosts upserts posts by slug.
func (s *Seeder) seedPosts(ctx context.Context) (int, error) {
	added := 0
	for _, p := range samplePosts() {
		row, err := s.posts.FindBySlug(ctx, p.Slug)
		if isNotFound(err) {
			p := p
			if p.Published.IsZero() {
				p.Published = time.Now().UTC()
			}
			if err := s.posts.Create(ctx, &p); err != nil {
				return added, err
			}
			added++
			continue
		}
		if err != nil {
			return added, err
		}

		row.Title = p.Title
		row.Excerpt = p.Excerpt
		if !p.Published.IsZero() {
			row.Published = p.Published
		}
		if err := s.posts.Update(ctx, row); err != nil {
			return added, err
		}
	}
	return added, nil
}

// seedExperience upserts by the company|role|start natural key.
func (s *Seeder) seedExperience(ctx context.Context) (int, error) {
	existing, err := s.experiences.List(ctx)
	if err != nil {
		return 0, err
	}
	key := func(e resume.Experience) string {
		return e.Company + "|" + e.Role + "|" + e.Start.Format("2006-01-02")
	}
	index := make(map[string]*resume.Experience, len(existing))
	for i := range existing {
		index[key(existing[i])] = &existing[i]
	}

	added := 0
	for _, e := range sampleExperience() {
		row, ok := index[key(e)]
		if !ok {
			e := e
			if err := s.experiences.Create(ctx, &e); err != nil {
				return added, err
			}
			added++
			continue
		}

		row.Location = e.Location
		row.End = e.End
		row.Highlights = e.Highlights
		row.Tech = e.Tech
		if err := s.experiences.Update(ctx, row); err != nil {
			return added, err
		}
	}
	return added, nil
}

// seedEducation upserts by the school|degree|end natural key.
func (s *Seeder) seedEducation(ctx context.Context) (int, error) {
	existing, err := s.educations.List(ctx)
	if err != nil {
		return 0, err
	}
	key := func(e resume.Education) string {
		return e.School + "|" + e.Degree + "|" + e.End.Format("2006-01-02")
	}
	index := make(map[string]*resume.Education, len(existing))
	for i := range existing {
		index[key(existing[i])] = &existing[i]
	}

	added := 0
	for _, e := range sampleEducation() {
		row, ok := index[key(e)]
		if !ok {
			e := e
			if err := s.educations.Create(ctx, &e); err != nil {
				return added, err
			}
			added++
			continue
		}

		row.Start = e.Start
		row.Details = e.Details
		if err := s.educations.Update(ctx, row); err != nil {
			return added, err
		}
	}
	return added, nil
}

// seedCertifications upserts by the name|issuer|issued natural key.
func (s *Seeder) seedCertifications(ctx context.Context) (int, error) {
	existing, err := s.certifications.List(ctx)
	if err != nil {
		return 0, err
	}
	key := func(c resume.Certification) string {
		issuer, issued := "null", "null"
		if c.Issuer != nil {
			issuer = *c.Issuer
		}
		if c.Issued != nil {
			issued = c.Issued.Format("2006-01-02")
		}
		return c.Name + "|" + issuer + "|" + issued
	}
	index := make(map[string]*resume.Certification, len(existing))
	for i := range existing {
		index[key(existing[i])] = &existing[i]
	}

	added := 0
	for _, c := range sampleCertifications() {
		row, ok := index[key(c)]
		if !ok {
			c := c
			if err := s.certifications.Create(ctx, &c); err != nil {
				return added, err
			}
			added++
			continue
		}

		row.Expires = c.Expires
		if err := s.certifications.Update(ctx, row); err != nil {
			return added, err
		}
	}
	return added, nil
}

// isNotFound reports whether err is the repositories' NotFound error.
func isNotFound(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}

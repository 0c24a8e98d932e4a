package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/cache"
	"github.com/acampos/folio/internal/sanitize"
)

// cacheKey holds the public profile shape in Redis.
const cacheKey = "public:profile"

// Service handles business logic for the profile and its skills.
type Service interface {
	// Public returns the cached public profile shape: scalars, links, and
	// visible skill names in display order.
	Public(ctx context.Context) (*PublicProfile, error)

	Get(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, p Profile) (*Profile, error)

	ListSkills(ctx context.Context) ([]Skill, error)
	CreateSkill(ctx context.Context, req UpsertSkillRequest) (*Skill, error)
	UpdateSkill(ctx context.Context, id int, req UpsertSkillRequest) (*Skill, error)
	DeleteSkill(ctx context.Context, id int) error
}

// service implements Service.
type service struct {
	repo   Repository
	skills SkillRepository
	cache  *cache.Cache
}

// NewService creates a new profile service.
func NewService(repo Repository, skills SkillRepository, c *cache.Cache) Service {
	return &service{repo: repo, skills: skills, cache: c}
}

// Public assembles the public profile, consulting the cache first.
func (s *service) Public(ctx context.Context) (*PublicProfile, error) {
	var cached PublicProfile
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	p, err := s.repo.Find(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.skills.VisibleNames(ctx, p.ID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	pub := &PublicProfile{
		ID:       p.ID,
		Name:     p.Name,
		Title:    p.Title,
		Tagline:  p.Tagline,
		Summary:  p.Summary,
		Location: p.Location,
		Email:    p.Email,
		Github:   p.Github,
		Linkedin: p.Linkedin,
		Skills:   names,
		Links:    p.Links,
	}
	s.cache.SetJSON(ctx, cacheKey, pub)
	return pub, nil
}

// Get returns the profile for the admin editor.
func (s *service) Get(ctx context.Context) (*Profile, error) {
	return s.repo.Find(ctx)
}

// Update validates and persists the profile, replacing its links, then
// invalidates the public cache.
func (s *service) Update(ctx context.Context, p Profile) (*Profile, error) {
	p.Name = sanitize.Text(p.Name)
	p.Title = sanitize.Text(p.Title)
	p.Tagline = sanitize.Text(p.Tagline)
	if p.Name == "" {
		return nil, apperror.NewValidation("name is required")
	}

	if err := s.repo.Upsert(ctx, &p); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("saving profile: %w", err))
	}

	s.cache.Delete(ctx, cacheKey)
	slog.Info("profile updated", slog.String("name", p.Name))
	return &p, nil
}

// ListSkills returns all skills in display order. NotFound when no profile
// exists yet.
func (s *service) ListSkills(ctx context.Context) ([]Skill, error) {
	p, err := s.repo.Find(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.skills.List(ctx, p.ID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if skills == nil {
		skills = []Skill{}
	}
	return skills, nil
}

// CreateSkill adds a skill. Names are unique per profile; a duplicate is a
// conflict, not a silent merge.
func (s *service) CreateSkill(ctx context.Context, req UpsertSkillRequest) (*Skill, error) {
	p, err := s.repo.Find(ctx)
	if err != nil {
		return nil, apperror.NewBadRequest("create a profile first")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}

	exists, err := s.skills.NameExists(ctx, p.ID, name, 0)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if exists {
		return nil, apperror.NewConflict("skill already exists")
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	skill := &Skill{ProfileID: p.ID, Name: name, IsVisible: visible, SortOrder: req.Order}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.cache.Delete(ctx, cacheKey)
	return skill, nil
}

// UpdateSkill renames, toggles, or reorders a skill. An empty name keeps the
// current one; a nil order clears the explicit position.
func (s *service) UpdateSkill(ctx context.Context, id int, req UpsertSkillRequest) (*Skill, error) {
	row, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != row.Name {
		dup, err := s.skills.NameExists(ctx, row.ProfileID, name, id)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		if dup {
			return nil, apperror.NewConflict("another skill already has that name")
		}
		row.Name = name
	}
	if req.IsVisible != nil {
		row.IsVisible = *req.IsVisible
	}
	row.SortOrder = req.Order

	if err := s.skills.Update(ctx, row); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cacheKey)
	return row, nil
}

// DeleteSkill removes a skill.
func (s *service) DeleteSkill(ctx context.Context, id int) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKey)
	return nil
}

package resume

import (
	"context"
	"strings"

	"github.com/acampos/folio/internal/apperror"
	"github.com/acampos/folio/internal/cache"
)

// Cache keys for the public resume sections.
const (
	cacheKeyExperience     = "public:experience"
	cacheKeyEducation      = "public:education"
	cacheKeyCertifications = "public:certifications"
)

// Service handles business logic for the resume sections.
type Service interface {
	PublicExperience(ctx context.Context) ([]Experience, error)
	PublicEducation(ctx context.Context) ([]Education, error)
	PublicCertifications(ctx context.Context) ([]Certification, error)

	ListExperience(ctx context.Context) ([]Experience, error)
	CreateExperience(ctx context.Context, e Experience) (*Experience, error)
	UpdateExperience(ctx context.Context, id int, e Experience) (*Experience, error)
	DeleteExperience(ctx context.Context, id int) error

	ListEducation(ctx context.Context) ([]Education, error)
	CreateEducation(ctx context.Context, e Education) (*Education, error)
	UpdateEducation(ctx context.Context, id int, e Education) (*Education, error)
	DeleteEducation(ctx context.Context, id int) error

	ListCertifications(ctx context.Context) ([]Certification, error)
	CreateCertification(ctx context.Context, c Certification) (*Certification, error)
	UpdateCertification(ctx context.Context, id int, c Certification) (*Certification, error)
	DeleteCertification(ctx context.Context, id int) error
}

// service implements Service.
type service struct {
	experiences    ExperienceRepository
	educations     EducationRepository
	certifications CertificationRepository
	cache          *cache.Cache
}

// NewService creates a new resume service.
func NewService(exp ExperienceRepository, edu EducationRepository, cert CertificationRepository, c *cache.Cache) Service {
	return &service{experiences: exp, educations: edu, certifications: cert, cache: c}
}

// --- Experience ---

// PublicExperience returns the experience list, cached.
func (s *service) PublicExperience(ctx context.Context) ([]Experience, error) {
	var cached []Experience
	if s.cache.GetJSON(ctx, cacheKeyExperience, &cached) {
		return cached, nil
	}
	items, err := s.ListExperience(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, cacheKeyExperience, items)
	return items, nil
}

// ListExperience returns all experiences, most recent first.
func (s *service) ListExperience(ctx context.Context) ([]Experience, error) {
	items, err := s.experiences.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if items == nil {
		items = []Experience{}
	}
	return items, nil
}

// CreateExperience inserts a new experience entry.
func (s *service) CreateExperience(ctx context.Context, e Experience) (*Experience, error) {
	if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Role) == "" {
		return nil, apperror.NewValidation("company and role are required")
	}
	if err := s.experiences.Create(ctx, &e); err != nil {
		return nil, apperror.NewInternal(err)
	}
	s.cache.Delete(ctx, cacheKeyExperience)
	return &e, nil
}

// UpdateExperience replaces an experience entry's fields.
func (s *service) UpdateExperience(ctx context.Context, id int, e Experience) (*Experience, error) {
	row, err := s.experiences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Company = e.Company
	row.Role = e.Role
	row.Location = e.Location
	row.Start = e.Start
	row.End = e.End
	row.Highlights = e.Highlights
	row.Tech = e.Tech

	if err := s.experiences.Update(ctx, row); err != nil {
		return nil, apperror.NewInternal(err)
	}
	s.cache.Delete(ctx, cacheKeyExperience)
	return row, nil
}

// DeleteExperience removes an experience entry.
func (s *service) DeleteExperience(ctx context.Context, id int) error {
	if err := s.experiences.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKeyExperience)
	return nil
}

// --- Education ---

// PublicEducation returns the education list, cached.
func (s *service) PublicEducation(ctx context.Context) ([]Education, error) {
	var cached []Education
	if s.cache.GetJSON(ctx, cacheKeyEducation, &cached) {
		return cached, nil
	}
	items, err := s.ListEducation(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, cacheKeyEducation, items)
	return items, nil
}

// ListEducation returns all education entries, most recent first.
func (s *service) ListEducation(ctx context.Context) ([]Education, error) {
	items, err := s.educations.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if items == nil {
		items = []Education{}
	}
	return items, nil
}

// CreateEducation inserts a new education entry.
func (s *service) CreateEducation(ctx context.Context, e Education) (*Education, error) {
	if strings.TrimSpace(e.School) == "" || strings.TrimSpace(e.Degree) == "" {
		return nil, apperror.NewValidation("school and degree are required")
	}
	if err := s.educations.Create(ctx, &e); err != nil {
		return nil, apperror.NewInternal(err)
	}
	s.cache.Delete(ctx, cacheKeyEducation)
	return &e, nil
}

// UpdateEducation replaces an education entry's fields.
func (s *service) UpdateEducation(ctx context.Context, id int, e Education) (*Education, error) {
	row, err := s.educations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row.School = e.School
	row.Degree = e.Degree
	row.Start = e.Start
	row.End = e.End
	row.Details = e.Details

	if err := s.educations.Update(ctx, row); err != nil {
		return nil, apperror.NewInternal(err)
	}
	s.cache.Delete(ctx, cacheKeyEducation)
	return row, nil
}

// DeleteEducation removes an education entry.
func (s *service) DeleteEducation(ctx context.Context, id int) error {
	if err := s.educations.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKeyEducation)
	return nil
}

// --- Certifications ---

// PublicCertifications returns the certification list, cached.
func (s *service) PublicCertifications(ctx context.Context) ([]Certification, error) {
	var cached []Certification
	if s.cache.GetJSON(ctx, cacheKeyCertifications, &cached) {
		return cached, nil
	}
	items, err := s.ListCertifications(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, cacheKeyCertifications, items)
	return items, nil
}

// ListCertifications returns all certifications, newest first.
func (s *service) ListCertifications(ctx context.Context) ([]Certification, error) {
	items, err := s.certifications.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if items == nil {
		items = []Certification{}
	}
	return items, nil
}

// CreateCertification inserts a new certification entry.
func (s *service) CreateCertification(ctx context.Context, c Certification) (*Certification, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if err := s.certifications.Create(ctx, &c); err != nil {
		return nil, apperror.NewInternal(err)
	}
	s.cache.Delete(ctx, cacheKeyCertifications)
	return &c, nil
}

// UpdateCertification replaces a certification entry's fields.
func (s *service) UpdateCertification(ctx context.Context, id int, c Certification) (*Certification, error) {
	row, err := s.certifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Name = c.Name
	row.Issuer = c.Issuer
	row.Issued = c.Issued
	row.Expires = c.Expires

	if err := s.certifications.Update(ctx, row); err != nil {
		return nil, apperror.NewInternal(err)
	}
	s.cache.Delete(ctx, cacheKeyCertifications)
	return row, nil
}

// DeleteCertification removes a certification entry.
func (s *service) DeleteCertification(ctx context.Context, id int) error {
	if err := s.certifications.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKeyCertifications)
	return nil
}

package services

import (
	"context"
	"regexp"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CourseService struct {
	courseRepo ports.CourseRepository
}

var _ ports.CourseService = (*CourseService)(nil)

func NewCourseService(courseRepo ports.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

func validateCourseParams(params ports.CourseParams) error {
	if params.Title == "" {
		return &domain.ValidationError{Field: "title", Reason: "required"}
	}
	if !slugPattern.MatchString(params.Slug) {
		return &domain.ValidationError{Field: "slug", Reason: "must be lowercase letters, digits and hyphens"}
	}
	if !params.Level.Valid() {
		return &domain.ValidationError{Field: "level", Reason: "unknown level"}
	}
	if params.Capacity <= 0 {
		return &domain.ValidationError{Field: "capacity", Reason: "must be positive"}
	}
	if params.PriceCents < 0 {
		return &domain.ValidationError{Field: "price_cents", Reason: "must not be negative"}
	}
	if len(params.Currency) != 3 {
		return &domain.ValidationError{Field: "currency", Reason: "must be a 3-letter code"}
	}
	return nil
}

func (s *CourseService) Get(ctx context.Context, id int64) (*domain.Course, error) {
	return s.courseRepo.FindByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, filter ports.CourseFilter) ([]domain.Course, int, error) {
	filter.Page, filter.PerPage = normalizePagination(filter.Page, filter.PerPage)
	return s.courseRepo.List(ctx, filter)
}

func (s *CourseService) Create(ctx context.Context, params ports.CourseParams) (*domain.Course, error) {
	if err := validateCourseParams(params); err != nil {
		return nil, err
	}
	return s.courseRepo.Create(ctx, domain.Course{
		Title:      params.Title,
		Slug:       params.Slug,
		Level:      params.Level,
		Capacity:   params.Capacity,
		PriceCents: params.PriceCents,
		Currency:   params.Currency,
		Active:     params.Active,
	})
}

func (s *CourseService) Update(ctx context.Context, id int64, params ports.CourseParams) (*domain.Course, error) {
	if err := validateCourseParams(params); err != nil {
		return nil, err
	}
	return s.courseRepo.Update(ctx, domain.Course{
		ID:         id,
		Title:      params.Title,
		Slug:       params.Slug,
		Level:      params.Level,
		Capacity:   params.Capacity,
		PriceCents: params.PriceCents,
		Currency:   params.Currency,
		Active:     params.Active,
	})
}

func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
	"github.com/hangang-korean/admin-service/internal/core/services"
	"github.com/hangang-korean/admin-service/test/mocks"
)

func validCourseParams() ports.CourseParams {
	return ports.CourseParams{
		Title:      "Beginner Korean A1",
		Slug:       "beginner-korean-a1",
		Level:      domain.LevelBeginner,
		Capacity:   12,
		PriceCents: 25000000,
		Currency:   "KRW",
		Active:     true,
	}
}

func TestCourseServiceCreate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ports.CourseParams)
		wantField string
	}{
		{"valid", func(p *ports.CourseParams) {}, ""},
		{"missing_title", func(p *ports.CourseParams) { p.Title = "" }, "title"},
		{"uppercase_slug", func(p *ports.CourseParams) { p.Slug = "Beginner-A1" }, "slug"},
		{"slug_with_spaces", func(p *ports.CourseParams) { p.Slug = "beginner a1" }, "slug"},
		{"slug_trailing_hyphen", func(p *ports.CourseParams) { p.Slug = "beginner-a1-" }, "slug"},
		{"unknown_level", func(p *ports.CourseParams) { p.Level = "Expert" }, "level"},
		{"zero_capacity", func(p *ports.CourseParams) { p.Capacity = 0 }, "capacity"},
		{"negative_price", func(p *ports.CourseParams) { p.PriceCents = -1 }, "price_cents"},
		{"bad_currency", func(p *ports.CourseParams) { p.Currency = "KRWX" }, "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockCourseRepository()
			service := services.NewCourseService(mockRepo)

			params := validCourseParams()
			tt.mutate(&params)

			course, err := service.Create(context.Background(), params)

			if tt.wantField != "" {
				var validationErr *domain.ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if validationErr.Field != tt.wantField {
					t.Errorf("expected field %q, got %q", tt.wantField, validationErr.Field)
				}
				if len(mockRepo.CreateCalls) != 0 {
					t.Error("repository should not be called on validation failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if course.ID == 0 {
				t.Error("created course should have an ID")
			}
			if course.Slug != params.Slug {
				t.Errorf("expected slug %q, got %q", params.Slug, course.Slug)
			}
		})
	}
}

func TestCourseServiceCreateDuplicateSlug(t *testing.T) {
	mockRepo := mocks.NewMockCourseRepository()
	service := services.NewCourseService(mockRepo)

	if _, err := service.Create(context.Background(), validCourseParams()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Create(context.Background(), validCourseParams())
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflictErr.Field != "slug" {
		t.Errorf("expected conflict on slug, got %q", conflictErr.Field)
	}
}

func TestCourseServiceUpdate(t *testing.T) {
	mockRepo := mocks.NewMockCourseRepository()
	seeded := mockRepo.SeedCourse(domain.Course{
		Title: "Old", Slug: "old", Level: domain.LevelBeginner, Capacity: 10, Currency: "KRW", Active: true,
	})
	service := services.NewCourseService(mockRepo)

	params := validCourseParams()
	course, err := service.Update(context.Background(), seeded.ID, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if course.Title != params.Title {
		t.Errorf("expected title %q, got %q", params.Title, course.Title)
	}

	_, err = service.Update(context.Background(), 999, params)
	var notFoundErr *domain.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCourseServiceListFilters(t *testing.T) {
	mockRepo := mocks.NewMockCourseRepository()
	mockRepo.SeedCourse(domain.Course{Slug: "a", Level: domain.LevelBeginner, Active: true})
	mockRepo.SeedCourse(domain.Course{Slug: "b", Level: domain.LevelBeginner, Active: false})
	mockRepo.SeedCourse(domain.Course{Slug: "c", Level: domain.LevelTOPIK, Active: true})
	service := services.NewCourseService(mockRepo)

	level := domain.LevelBeginner
	active := true
	courses, total, err := service.List(context.Background(), ports.CourseFilter{Level: &level, Active: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(courses) != 1 {
		t.Fatalf("expected exactly 1 active beginner course, got total=%d len=%d", total, len(courses))
	}
	if courses[0].Slug != "a" {
		t.Errorf("expected course a, got %q", courses[0].Slug)
	}
}

func TestCourseServiceDelete(t *testing.T) {
	mockRepo := mocks.NewMockCourseRepository()
	seeded := mockRepo.SeedCourse(domain.Course{Slug: "a", Level: domain.LevelBeginner, Capacity: 10})
	service := services.NewCourseService(mockRepo)

	if err := service.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mockRepo.DeleteCalls) != 1 || mockRepo.DeleteCalls[0] != seeded.ID {
		t.Errorf("expected delete call for %d, got %v", seeded.ID, mockRepo.DeleteCalls)
	}

	err := service.Delete(context.Background(), seeded.ID)
	var notFoundErr *domain.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
	"github.com/hangang-korean/admin-service/internal/core/services"
	"github.com/hangang-korean/admin-service/test/mocks"
)

type scheduleFixture struct {
	service  *services.ScheduleService
	schedule *mocks.MockScheduleRepository
	course   *mocks.MockCourseRepository
	user     *mocks.MockUserRepository
}

func newScheduleFixture() scheduleFixture {
	scheduleRepo := mocks.NewMockScheduleRepository()
	courseRepo := mocks.NewMockCourseRepository()
	userRepo := mocks.NewMockUserRepository()
	return scheduleFixture{
		service:  services.NewScheduleService(scheduleRepo, courseRepo, userRepo),
		schedule: scheduleRepo,
		course:   courseRepo,
		user:     userRepo,
	}
}

func validScheduleParams(courseID int64) ports.ScheduleParams {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return ports.ScheduleParams{
		CourseID:  courseID,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Location:  "Room 203",
	}
}

func TestScheduleServiceCreate(t *testing.T) {
	f := newScheduleFixture()
	course := f.course.SeedCourse(domain.Course{Slug: "a1", Level: domain.LevelBeginner, Capacity: 12, Active: true})

	schedule, err := f.service.Create(context.Background(), validScheduleParams(course.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schedule.Status != domain.ScheduleScheduled {
		t.Errorf("new schedule should default to scheduled, got %s", schedule.Status)
	}
	if schedule.Capacity != nil {
		t.Error("capacity should stay nil and inherit from the course")
	}
}

func TestScheduleServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *scheduleFixture, p *ports.ScheduleParams)
		wantField string
		notFound  bool
	}{
		{
			name:      "end_before_start",
			mutate:    func(f *scheduleFixture, p *ports.ScheduleParams) { p.EndTime = p.StartTime.Add(-time.Hour) },
			wantField: "end_time",
		},
		{
			name:      "end_equals_start",
			mutate:    func(f *scheduleFixture, p *ports.ScheduleParams) { p.EndTime = p.StartTime },
			wantField: "end_time",
		},
		{
			name:      "zero_capacity",
			mutate:    func(f *scheduleFixture, p *ports.ScheduleParams) { p.Capacity = intPtr(0) },
			wantField: "capacity",
		},
		{
			name:      "unknown_status",
			mutate:    func(f *scheduleFixture, p *ports.ScheduleParams) { p.Status = "postponed" },
			wantField: "status",
		},
		{
			name:     "missing_course",
			mutate:   func(f *scheduleFixture, p *ports.ScheduleParams) { p.CourseID = 999 },
			notFound: true,
		},
		{
			name: "teacher_not_a_teacher",
			mutate: func(f *scheduleFixture, p *ports.ScheduleParams) {
				admin := f.user.SeedUser(domain.User{Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.UserActive})
				p.TeacherID = &admin.ID
			},
			wantField: "teacher_id",
		},
		{
			name:     "teacher_missing",
			mutate:   func(f *scheduleFixture, p *ports.ScheduleParams) { p.TeacherID = int64Ptr(999) },
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScheduleFixture()
			course := f.course.SeedCourse(domain.Course{Slug: "a1", Level: domain.LevelBeginner, Capacity: 12, Active: true})

			params := validScheduleParams(course.ID)
			tt.mutate(&f, &params)

			_, err := f.service.Create(context.Background(), params)

			if tt.notFound {
				var notFoundErr *domain.NotFoundError
				if !errors.As(err, &notFoundErr) {
					t.Fatalf("expected NotFoundError, got %v", err)
				}
				return
			}

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, validationErr.Field)
			}
			if len(f.schedule.CreateCalls) != 0 {
				t.Error("repository should not be called on validation failure")
			}
		})
	}
}

func TestScheduleServiceCreateWithTeacher(t *testing.T) {
	f := newScheduleFixture()
	course := f.course.SeedCourse(domain.Course{Slug: "a1", Level: domain.LevelBeginner, Capacity: 12, Active: true})
	teacher := f.user.SeedUser(domain.User{Email: "teacher@example.com", Role: domain.RoleTeacher, Status: domain.UserActive})

	params := validScheduleParams(course.ID)
	params.TeacherID = &teacher.ID
	params.Capacity = intPtr(8)

	schedule, err := f.service.Create(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schedule.TeacherID == nil || *schedule.TeacherID != teacher.ID {
		t.Errorf("expected teacher %d, got %v", teacher.ID, schedule.TeacherID)
	}
	if schedule.Capacity == nil || *schedule.Capacity != 8 {
		t.Errorf("expected capacity override 8, got %v", schedule.Capacity)
	}
}

func TestScheduleServiceListByCourse(t *testing.T) {
	f := newScheduleFixture()
	f.schedule.SeedSchedule(domain.Schedule{CourseID: 1, Status: domain.ScheduleScheduled})
	f.schedule.SeedSchedule(domain.Schedule{CourseID: 1, Status: domain.ScheduleCancelled})
	f.schedule.SeedSchedule(domain.Schedule{CourseID: 2, Status: domain.ScheduleScheduled})

	courseID := int64(1)
	status := domain.ScheduleScheduled
	schedules, total, err := f.service.List(context.Background(), ports.ScheduleFilter{CourseID: &courseID, Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(schedules) != 1 {
		t.Fatalf("expected 1 scheduled occurrence for course 1, got total=%d len=%d", total, len(schedules))
	}
}

func TestScheduleServiceEffectiveCapacity(t *testing.T) {
	course := domain.Course{Capacity: 12}

	inherited := domain.Schedule{CourseID: 1}
	if got := inherited.EffectiveCapacity(&course); got != 12 {
		t.Errorf("expected inherited capacity 12, got %d", got)
	}

	override := domain.Schedule{CourseID: 1, Capacity: intPtr(8)}
	if got := override.EffectiveCapacity(&course); got != 8 {
		t.Errorf("expected override capacity 8, got %d", got)
	}
}

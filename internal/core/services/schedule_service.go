package services

import (
	"context"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type ScheduleService struct {
	scheduleRepo ports.ScheduleRepository
	courseRepo   ports.CourseRepository
	userRepo     ports.UserRepository
}

var _ ports.ScheduleService = (*ScheduleService)(nil)

func NewScheduleService(
	scheduleRepo ports.ScheduleRepository,
	courseRepo ports.CourseRepository,
	userRepo ports.UserRepository,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		courseRepo:   courseRepo,
		userRepo:     userRepo,
	}
}

func (s *ScheduleService) validateParams(ctx context.Context, params ports.ScheduleParams) error {
	if params.CourseID <= 0 {
		return &domain.ValidationError{Field: "course_id", Reason: "required"}
	}
	if !params.EndTime.After(params.StartTime) {
		return &domain.ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	if params.Capacity != nil && *params.Capacity <= 0 {
		return &domain.ValidationError{Field: "capacity", Reason: "must be positive"}
	}
	if params.Status != "" && !params.Status.Valid() {
		return &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}

	if _, err := s.courseRepo.FindByID(ctx, params.CourseID); err != nil {
		return err
	}

	if params.TeacherID != nil {
		teacher, err := s.userRepo.FindByID(ctx, *params.TeacherID)
		if err != nil {
			return err
		}
		if teacher.Role != domain.RoleTeacher {
			return &domain.ValidationError{Field: "teacher_id", Reason: "user is not a teacher"}
		}
	}
	return nil
}

func (s *ScheduleService) Get(ctx context.Context, id int64) (*domain.Schedule, error) {
	return s.scheduleRepo.FindByID(ctx, id)
}

func (s *ScheduleService) List(ctx context.Context, filter ports.ScheduleFilter) ([]domain.Schedule, int, error) {
	filter.Page, filter.PerPage = normalizePagination(filter.Page, filter.PerPage)
	return s.scheduleRepo.List(ctx, filter)
}

func (s *ScheduleService) Create(ctx context.Context, params ports.ScheduleParams) (*domain.Schedule, error) {
	if err := s.validateParams(ctx, params); err != nil {
		return nil, err
	}
	status := params.Status
	if status == "" {
		status = domain.ScheduleScheduled
	}
	return s.scheduleRepo.Create(ctx, domain.Schedule{
		CourseID:  params.CourseID,
		TeacherID: params.TeacherID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Location:  params.Location,
		Capacity:  params.Capacity,
		Status:    status,
	})
}

func (s *ScheduleService) Update(ctx context.Context, id int64, params ports.ScheduleParams) (*domain.Schedule, error) {
	if err := s.validateParams(ctx, params); err != nil {
		return nil, err
	}
	status := params.Status
	if status == "" {
		status = domain.ScheduleScheduled
	}
	return s.scheduleRepo.Update(ctx, domain.Schedule{
		ID:        id,
		CourseID:  params.CourseID,
		TeacherID: params.TeacherID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Location:  params.Location,
		Capacity:  params.Capacity,
		Status:    status,
	})
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	return s.scheduleRepo.Delete(ctx, id)
}

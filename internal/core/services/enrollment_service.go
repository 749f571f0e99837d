package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	defaultPerPage = 20
	maxPerPage     = 100
	maxNotesLength = 2000
)

// normalizePagination clamps page/per_page to sane bounds. Shared by
// every listing service in this package.
func normalizePagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// EnrollmentService enforces the enrollment lifecycle: creation with
// the schedule capacity invariant, the status transition table, and
// the independent payment axis. The capacity check itself lives in the
// repository so it shares a transaction with the insert.
type EnrollmentService struct {
	enrollmentRepo ports.EnrollmentRepository
}

var _ ports.EnrollmentService = (*EnrollmentService)(nil)

func NewEnrollmentService(enrollmentRepo ports.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo}
}

func (s *EnrollmentService) Create(ctx context.Context, params ports.CreateEnrollmentParams) (*domain.Enrollment, error) {
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	if !emailPattern.MatchString(params.Email) {
		return nil, &domain.ValidationError{Field: "email", Reason: "malformed address"}
	}
	if params.CourseID <= 0 {
		return nil, &domain.ValidationError{Field: "course_id", Reason: "required"}
	}
	if params.ScheduleID != nil && *params.ScheduleID <= 0 {
		return nil, &domain.ValidationError{Field: "schedule_id", Reason: "must be positive"}
	}
	if params.Source == "" {
		params.Source = domain.SourceAdmin
	}
	if !params.Source.Valid() {
		return nil, &domain.ValidationError{Field: "source", Reason: "unknown source"}
	}
	if len(params.Notes) > maxNotesLength {
		return nil, &domain.ValidationError{Field: "notes", Reason: "too long"}
	}
	if params.Name == "" {
		// A student created on the fly still needs a display name.
		params.Name = params.Email[:strings.Index(params.Email, "@")]
	}

	return s.enrollmentRepo.Create(ctx, params)
}

func (s *EnrollmentService) Get(ctx context.Context, id int64) (*domain.Enrollment, error) {
	return s.enrollmentRepo.FindByID(ctx, id)
}

// Approve moves pending -> approved. It is deliberately not idempotent:
// approving an already-approved enrollment fails with InvalidStateError.
func (s *EnrollmentService) Approve(ctx context.Context, id int64) (*domain.Enrollment, error) {
	current, err := s.enrollmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.EnrollmentPending {
		return nil, &domain.InvalidStateError{From: current.Status, To: domain.EnrollmentApproved}
	}
	return s.enrollmentRepo.TransitionStatus(ctx, id, domain.EnrollmentPending, domain.EnrollmentApproved)
}

// Cancel moves any non-terminal enrollment to cancelled.
func (s *EnrollmentService) Cancel(ctx context.Context, id int64) (*domain.Enrollment, error) {
	current, err := s.enrollmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, &domain.InvalidStateError{From: current.Status, To: domain.EnrollmentCancelled}
	}
	return s.enrollmentRepo.TransitionStatus(ctx, id, current.Status, domain.EnrollmentCancelled)
}

func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) (*domain.Enrollment, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	current, err := s.enrollmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, &domain.InvalidStateError{From: current.Status, To: status}
	}
	return s.enrollmentRepo.TransitionStatus(ctx, id, current.Status, status)
}

func (s *EnrollmentService) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Enrollment, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "payment_status", Reason: "unknown payment status"}
	}
	return s.enrollmentRepo.UpdatePaymentStatus(ctx, id, status)
}

func (s *EnrollmentService) List(ctx context.Context, filter ports.EnrollmentFilter) ([]domain.Enrollment, int, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	filter.Page, filter.PerPage = normalizePagination(filter.Page, filter.PerPage)
	return s.enrollmentRepo.List(ctx, filter)
}

package ports

import (
	"context"

	"github.com/hangang-korean/admin-service/internal/core/domain"
)

// Filters carry optional criteria plus pagination. Page is 1-based.

type UserFilter struct {
	Role    *domain.Role
	Status  *domain.UserStatus
	Page    int
	PerPage int
}

type CourseFilter struct {
	Level   *domain.CourseLevel
	Active  *bool
	Page    int
	PerPage int
}

type ScheduleFilter struct {
	CourseID *int64
	Status   *domain.ScheduleStatus
	Page     int
	PerPage  int
}

type EnrollmentFilter struct {
	Status     *domain.EnrollmentStatus
	CourseID   *int64
	ScheduleID *int64
	Page       int
	PerPage    int
}

// CreateEnrollmentParams is the input to enrollment creation. Email
// resolves to an existing user or creates a student on the fly.
type CreateEnrollmentParams struct {
	Email      string
	Name       string
	CourseID   int64
	ScheduleID *int64
	Notes      string
	Source     domain.EnrollmentSource
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, int, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, user domain.User) (*domain.User, error)
}

type CourseRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]domain.Course, int, error)
	Create(ctx context.Context, course domain.Course) (*domain.Course, error)
	Update(ctx context.Context, course domain.Course) (*domain.Course, error)
	// Delete removes the course, or deactivates it instead when
	// enrollments still reference it.
	Delete(ctx context.Context, id int64) error
}

type ScheduleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]domain.Schedule, int, error)
	Create(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error)
	Update(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

type EnrollmentRepository interface {
	// Create resolves the user by email (creating a student when
	// absent), verifies course and schedule references, enforces the
	// schedule capacity invariant under a row lock, inserts the
	// enrollment and its outbox event — all in one transaction.
	Create(ctx context.Context, params CreateEnrollmentParams) (*domain.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*domain.Enrollment, error)
	// TransitionStatus applies from -> to with a guard on the current
	// status, so concurrent transitions cannot both win.
	TransitionStatus(ctx context.Context, id int64, from, to domain.EnrollmentStatus) (*domain.Enrollment, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Enrollment, error)
	List(ctx context.Context, filter EnrollmentFilter) ([]domain.Enrollment, int, error)
}

type GalleryRepository interface {
	List(ctx context.Context) ([]domain.GalleryItem, error)
	Create(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error)
	Update(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error)
	// Delete removes the item and compacts sort_order so the remaining
	// items keep a dense 1..N ranking.
	Delete(ctx context.Context, id int64) error
	// Reorder rewrites sort_order to the 1-based position of each id in
	// ids. The id set must exactly match the stored items.
	Reorder(ctx context.Context, ids []int64) error
	FindByID(ctx context.Context, id int64) (*domain.GalleryItem, error)
}

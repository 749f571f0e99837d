package ports

import (
	"context"
	"time"

	"github.com/hangang-korean/admin-service/internal/core/domain"
)

type CreateUserParams struct {
	Email    string
	Name     string
	Role     domain.Role
	Password string
}

type UpdateUserParams struct {
	Name   *string
	Role   *domain.Role
	Status *domain.UserStatus
}

type CourseParams struct {
	Title      string
	Slug       string
	Level      domain.CourseLevel
	Capacity   int
	PriceCents int64
	Currency   string
	Active     bool
}

type ScheduleParams struct {
	CourseID  int64
	TeacherID *int64
	StartTime time.Time
	EndTime   time.Time
	Location  string
	Capacity  *int
	Status    domain.ScheduleStatus
}

type CreateGalleryItemParams struct {
	Title    string
	ImageURL string
	Caption  string
}

type UpdateGalleryItemParams struct {
	Title    *string
	ImageURL *string
	Caption  *string
}

type EnrollmentService interface {
	Create(ctx context.Context, params CreateEnrollmentParams) (*domain.Enrollment, error)
	Get(ctx context.Context, id int64) (*domain.Enrollment, error)
	Approve(ctx context.Context, id int64) (*domain.Enrollment, error)
	Cancel(ctx context.Context, id int64) (*domain.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) (*domain.Enrollment, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Enrollment, error)
	List(ctx context.Context, filter EnrollmentFilter) ([]domain.Enrollment, int, error)
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, int, error)
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (*domain.User, error)
}

type CourseService interface {
	Get(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]domain.Course, int, error)
	Create(ctx context.Context, params CourseParams) (*domain.Course, error)
	Update(ctx context.Context, id int64, params CourseParams) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
}

type ScheduleService interface {
	Get(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]domain.Schedule, int, error)
	Create(ctx context.Context, params ScheduleParams) (*domain.Schedule, error)
	Update(ctx context.Context, id int64, params ScheduleParams) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

type GalleryService interface {
	List(ctx context.Context) ([]domain.GalleryItem, error)
	Create(ctx context.Context, params CreateGalleryItemParams) (*domain.GalleryItem, error)
	Update(ctx context.Context, id int64, params UpdateGalleryItemParams) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

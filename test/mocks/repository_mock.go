// Package mocks provides in-memory implementations of the port
// interfaces for testing. Services depend on the ports, so a test can
// inject these instead of a real database, Redis or RabbitMQ.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository in memory.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	// Call tracking for verification
	FindByEmailCalls []string
	CreateCalls      []domain.User
	UpdateCalls      []domain.User

	// Error injection for testing error scenarios
	FindByIDError    error
	FindByEmailError error
	ListError        error
	CreateError      error
	UpdateError      error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]*domain.User)}
}

// SeedUser adds a user for test setup and returns it with an assigned ID.
func (m *MockUserRepository) SeedUser(user domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.ID] = &user
	return &user
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "user", ID: id}
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)
	m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "user"}
}

func (m *MockUserRepository) List(ctx context.Context, filter ports.UserFilter) ([]domain.User, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []domain.User
	for _, user := range m.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		matched = append(matched, *user)
	}
	return paginate(matched, filter.Page, filter.PerPage)
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, &domain.ConflictError{Resource: "user", Field: "email"}
		}
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, user)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	existing, ok := m.users[user.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "user", ID: user.ID}
	}
	user.CreatedAt = existing.CreatedAt
	m.users[user.ID] = &user
	copied := user
	return &copied, nil
}

// MockCourseRepository implements ports.CourseRepository in memory.
type MockCourseRepository struct {
	mu      sync.RWMutex
	courses map[int64]*domain.Course
	nextID  int64

	CreateCalls []domain.Course
	UpdateCalls []domain.Course
	DeleteCalls []int64

	FindByIDError error
	ListError     error
	CreateError   error
	UpdateError   error
	DeleteError   error
}

var _ ports.CourseRepository = (*MockCourseRepository)(nil)

func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{courses: make(map[int64]*domain.Course)}
}

func (m *MockCourseRepository) SeedCourse(course domain.Course) *domain.Course {
	m.mu.Lock()
	defer m.mu.Unlock()

	if course.ID == 0 {
		m.nextID++
		course.ID = m.nextID
	} else if course.ID > m.nextID {
		m.nextID = course.ID
	}
	m.courses[course.ID] = &course
	return &course
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	course, ok := m.courses[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "course", ID: id}
	}
	copied := *course
	return &copied, nil
}

func (m *MockCourseRepository) List(ctx context.Context, filter ports.CourseFilter) ([]domain.Course, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []domain.Course
	for _, course := range m.courses {
		if filter.Level != nil && course.Level != *filter.Level {
			continue
		}
		if filter.Active != nil && course.Active != *filter.Active {
			continue
		}
		matched = append(matched, *course)
	}
	return paginate(matched, filter.Page, filter.PerPage)
}

func (m *MockCourseRepository) Create(ctx context.Context, course domain.Course) (*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, course)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	for _, existing := range m.courses {
		if existing.Slug == course.Slug {
			return nil, &domain.ConflictError{Resource: "course", Field: "slug"}
		}
	}

	m.nextID++
	course.ID = m.nextID
	course.CreatedAt = time.Now()
	m.courses[course.ID] = &course
	copied := course
	return &copied, nil
}

func (m *MockCourseRepository) Update(ctx context.Context, course domain.Course) (*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, course)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	if _, ok := m.courses[course.ID]; !ok {
		return nil, &domain.NotFoundError{Resource: "course", ID: course.ID}
	}
	m.courses[course.ID] = &course
	copied := course
	return &copied, nil
}

func (m *MockCourseRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, ok := m.courses[id]; !ok {
		return &domain.NotFoundError{Resource: "course", ID: id}
	}
	delete(m.courses, id)
	return nil
}

// MockScheduleRepository implements ports.ScheduleRepository in memory.
type MockScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[int64]*domain.Schedule
	nextID    int64

	CreateCalls []domain.Schedule
	UpdateCalls []domain.Schedule
	DeleteCalls []int64

	FindByIDError error
	ListError     error
	CreateError   error
	UpdateError   error
	DeleteError   error
}

var _ ports.ScheduleRepository = (*MockScheduleRepository)(nil)

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{schedules: make(map[int64]*domain.Schedule)}
}

func (m *MockScheduleRepository) SeedSchedule(schedule domain.Schedule) *domain.Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()

	if schedule.ID == 0 {
		m.nextID++
		schedule.ID = m.nextID
	} else if schedule.ID > m.nextID {
		m.nextID = schedule.ID
	}
	m.schedules[schedule.ID] = &schedule
	return &schedule
}

func (m *MockScheduleRepository) FindByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	schedule, ok := m.schedules[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "schedule", ID: id}
	}
	copied := *schedule
	return &copied, nil
}

func (m *MockScheduleRepository) List(ctx context.Context, filter ports.ScheduleFilter) ([]domain.Schedule, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []domain.Schedule
	for _, schedule := range m.schedules {
		if filter.CourseID != nil && schedule.CourseID != *filter.CourseID {
			continue
		}
		if filter.Status != nil && schedule.Status != *filter.Status {
			continue
		}
		matched = append(matched, *schedule)
	}
	return paginate(matched, filter.Page, filter.PerPage)
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, schedule)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.nextID++
	schedule.ID = m.nextID
	schedule.CreatedAt = time.Now()
	m.schedules[schedule.ID] = &schedule
	copied := schedule
	return &copied, nil
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, schedule)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	if _, ok := m.schedules[schedule.ID]; !ok {
		return nil, &domain.NotFoundError{Resource: "schedule", ID: schedule.ID}
	}
	m.schedules[schedule.ID] = &schedule
	copied := schedule
	return &copied, nil
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, ok := m.schedules[id]; !ok {
		return &domain.NotFoundError{Resource: "schedule", ID: id}
	}
	delete(m.schedules, id)
	return nil
}

// paginate slices a full result set the way the SQL repositories do
// with LIMIT/OFFSET. The total is counted before slicing.
func paginate[T any](items []T, page, perPage int) ([]T, int, error) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	start := (page - 1) * perPage
	if start >= total {
		return nil, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return items[start:end], total, nil
}

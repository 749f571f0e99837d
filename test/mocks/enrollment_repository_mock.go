package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

// OutboxRecord captures an event the repository would have written to
// the outbox table.
type OutboxRecord struct {
	EventType string
	Event     ports.EnrollmentEvent
}

type mockCourse struct {
	capacity int
	active   bool
}

type mockSchedule struct {
	courseID int64
	capacity *int
}

// MockEnrollmentRepository implements ports.EnrollmentRepository in
// memory. Create reproduces the production transaction semantics under
// a single mutex: user upsert by email, reference checks, and the
// capacity check done atomically with the insert. That makes it safe
// to hammer from concurrent goroutines in tests.
type MockEnrollmentRepository struct {
	mu sync.Mutex

	enrollments map[int64]*domain.Enrollment
	usersByMail map[string]int64
	courses     map[int64]mockCourse
	schedules   map[int64]mockSchedule
	nextID      int64
	nextUserID  int64

	// Call tracking for verification
	CreateCalls     []ports.CreateEnrollmentParams
	TransitionCalls []domain.EnrollmentStatus
	OutboxRecords   []OutboxRecord

	// Error injection for testing error scenarios
	CreateError        error
	FindByIDError      error
	TransitionError    error
	UpdatePaymentError error
	ListError          error
}

var _ ports.EnrollmentRepository = (*MockEnrollmentRepository)(nil)

func NewMockEnrollmentRepository() *MockEnrollmentRepository {
	return &MockEnrollmentRepository{
		enrollments: make(map[int64]*domain.Enrollment),
		usersByMail: make(map[string]int64),
		courses:     make(map[int64]mockCourse),
		schedules:   make(map[int64]mockSchedule),
	}
}

// SeedCourse registers a course the mock will accept enrollments for.
func (m *MockEnrollmentRepository) SeedCourse(id int64, capacity int, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[id] = mockCourse{capacity: capacity, active: active}
}

// SeedSchedule registers a schedule. A nil capacity inherits the course
// capacity, same as the SQL schema.
func (m *MockEnrollmentRepository) SeedSchedule(id, courseID int64, capacity *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[id] = mockSchedule{courseID: courseID, capacity: capacity}
}

// SeedUser registers an existing user so Create resolves the email
// instead of minting a new user ID.
func (m *MockEnrollmentRepository) SeedUser(email string, id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersByMail[email] = id
	if id > m.nextUserID {
		m.nextUserID = id
	}
}

// SeedEnrollment adds an enrollment for test setup.
func (m *MockEnrollmentRepository) SeedEnrollment(e domain.Enrollment) *domain.Enrollment {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == 0 {
		m.nextID++
		e.ID = m.nextID
	} else if e.ID > m.nextID {
		m.nextID = e.ID
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	m.enrollments[e.ID] = &e
	return &e
}

// UserCount reports how many distinct users the mock knows about.
func (m *MockEnrollmentRepository) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.usersByMail)
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, params ports.CreateEnrollmentParams) (*domain.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, params)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	userID, ok := m.usersByMail[params.Email]
	if !ok {
		m.nextUserID++
		userID = m.nextUserID
		m.usersByMail[params.Email] = userID
	}

	course, ok := m.courses[params.CourseID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "course", ID: params.CourseID}
	}
	if !course.active {
		return nil, &domain.ValidationError{Field: "course_id", Reason: "course is not active"}
	}

	if params.ScheduleID != nil {
		scheduleID := *params.ScheduleID
		schedule, ok := m.schedules[scheduleID]
		if !ok {
			return nil, &domain.NotFoundError{Resource: "schedule", ID: scheduleID}
		}
		if schedule.courseID != params.CourseID {
			return nil, &domain.ValidationError{Field: "schedule_id", Reason: "schedule does not belong to course"}
		}

		capacity := course.capacity
		if schedule.capacity != nil {
			capacity = *schedule.capacity
		}

		taken := 0
		for _, e := range m.enrollments {
			if e.ScheduleID != nil && *e.ScheduleID == scheduleID && e.Status != domain.EnrollmentCancelled {
				taken++
			}
		}
		if taken >= capacity {
			return nil, &domain.CapacityExceededError{ScheduleID: scheduleID, Capacity: capacity}
		}
	}

	m.nextID++
	enrollment := domain.Enrollment{
		ID:            m.nextID,
		UserID:        userID,
		CourseID:      params.CourseID,
		ScheduleID:    params.ScheduleID,
		Status:        domain.EnrollmentPending,
		PaymentStatus: domain.PaymentUnpaid,
		Source:        params.Source,
		Notes:         params.Notes,
		EnrolledAt:    time.Now(),
	}
	m.enrollments[enrollment.ID] = &enrollment

	m.OutboxRecords = append(m.OutboxRecords, OutboxRecord{
		EventType: ports.EventEnrollmentCreated,
		Event: ports.EnrollmentEvent{
			EnrollmentID: enrollment.ID,
			UserID:       enrollment.UserID,
			CourseID:     enrollment.CourseID,
			ScheduleID:   enrollment.ScheduleID,
			Status:       string(enrollment.Status),
			Source:       string(enrollment.Source),
			OccurredAt:   enrollment.EnrolledAt,
		},
	})

	copied := enrollment
	return &copied, nil
}

func (m *MockEnrollmentRepository) FindByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	enrollment, ok := m.enrollments[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "enrollment", ID: id}
	}
	copied := *enrollment
	return &copied, nil
}

func (m *MockEnrollmentRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.EnrollmentStatus) (*domain.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TransitionCalls = append(m.TransitionCalls, to)

	if m.TransitionError != nil {
		return nil, m.TransitionError
	}

	enrollment, ok := m.enrollments[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "enrollment", ID: id}
	}
	if enrollment.Status != from {
		return nil, &domain.InvalidStateError{From: enrollment.Status, To: to}
	}
	enrollment.Status = to

	if to == domain.EnrollmentApproved {
		m.OutboxRecords = append(m.OutboxRecords, OutboxRecord{
			EventType: ports.EventEnrollmentApproved,
			Event: ports.EnrollmentEvent{
				EnrollmentID: enrollment.ID,
				UserID:       enrollment.UserID,
				CourseID:     enrollment.CourseID,
				ScheduleID:   enrollment.ScheduleID,
				Status:       string(enrollment.Status),
				Source:       string(enrollment.Source),
				OccurredAt:   time.Now(),
			},
		})
	}

	copied := *enrollment
	return &copied, nil
}

func (m *MockEnrollmentRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdatePaymentError != nil {
		return nil, m.UpdatePaymentError
	}

	enrollment, ok := m.enrollments[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "enrollment", ID: id}
	}
	enrollment.PaymentStatus = status
	copied := *enrollment
	return &copied, nil
}

func (m *MockEnrollmentRepository) List(ctx context.Context, filter ports.EnrollmentFilter) ([]domain.Enrollment, int, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []domain.Enrollment
	for _, e := range m.enrollments {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.CourseID != nil && e.CourseID != *filter.CourseID {
			continue
		}
		if filter.ScheduleID != nil && (e.ScheduleID == nil || *e.ScheduleID != *filter.ScheduleID) {
			continue
		}
		matched = append(matched, *e)
	}
	return paginate(matched, filter.Page, filter.PerPage)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type EnrollmentSQLRepository struct {
	db *sql.DB
}

var _ ports.EnrollmentRepository = (*EnrollmentSQLRepository)(nil)

func NewEnrollmentSQLRepository(db *sql.DB) *EnrollmentSQLRepository {
	return &EnrollmentSQLRepository{db: db}
}

const enrollmentColumns = "id, user_id, course_id, schedule_id, status, payment_status, source, COALESCE(notes, ''), enrolled_at"

func scanEnrollment(row rowScanner) (*domain.Enrollment, error) {
	var e domain.Enrollment
	var scheduleID sql.NullInt64
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &scheduleID, &e.Status, &e.PaymentStatus, &e.Source, &e.Notes, &e.EnrolledAt)
	if err != nil {
		return nil, err
	}
	if scheduleID.Valid {
		e.ScheduleID = &scheduleID.Int64
	}
	return &e, nil
}

// insertOutboxEvent writes an event row inside tx. A trigger on
// outbox_events notifies the relay, which publishes to RabbitMQ.
func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, evt ports.EnrollmentEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO outbox_events (id, event_type, payload) VALUES ($1, $2, $3)",
		uuid.NewString(), eventType, payload,
	)
	return err
}

// Create performs the whole enrollment intake in one transaction:
// user upsert by email, course/schedule reference checks, the capacity
// check under a row lock on the schedule, the insert, and the outbox
// event. The lock serializes concurrent creates per schedule, so two
// requests cannot both observe a free seat and both take it.
func (r *EnrollmentSQLRepository) Create(ctx context.Context, params ports.CreateEnrollmentParams) (*domain.Enrollment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, name, role, status)
         VALUES ($1, $2, 'student', 'active')
         ON CONFLICT (email) DO NOTHING
         RETURNING id`,
		params.Email, params.Name,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		// Email already registered; enroll the existing user.
		err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE email = $1", params.Email).Scan(&userID)
	}
	if err != nil {
		return nil, err
	}

	var courseCapacity int
	var courseActive bool
	err = tx.QueryRowContext(ctx,
		"SELECT capacity, active FROM courses WHERE id = $1", params.CourseID,
	).Scan(&courseCapacity, &courseActive)
	if err != nil {
		return nil, notFound(err, "course", params.CourseID)
	}
	if !courseActive {
		return nil, &domain.ValidationError{Field: "course_id", Reason: "course is not active"}
	}

	if params.ScheduleID != nil {
		scheduleID := *params.ScheduleID

		var scheduleCourseID int64
		var scheduleCapacity sql.NullInt64
		err = tx.QueryRowContext(ctx,
			"SELECT course_id, capacity FROM schedules WHERE id = $1 FOR UPDATE", scheduleID,
		).Scan(&scheduleCourseID, &scheduleCapacity)
		if err != nil {
			return nil, notFound(err, "schedule", scheduleID)
		}
		if scheduleCourseID != params.CourseID {
			return nil, &domain.ValidationError{Field: "schedule_id", Reason: "schedule does not belong to course"}
		}

		capacity := courseCapacity
		if scheduleCapacity.Valid {
			capacity = int(scheduleCapacity.Int64)
		}

		var taken int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM enrollments WHERE schedule_id = $1 AND status <> 'cancelled'", scheduleID,
		).Scan(&taken)
		if err != nil {
			return nil, err
		}
		if taken >= capacity {
			return nil, &domain.CapacityExceededError{ScheduleID: scheduleID, Capacity: capacity}
		}
	}

	enrollment := domain.Enrollment{
		UserID:        userID,
		CourseID:      params.CourseID,
		ScheduleID:    params.ScheduleID,
		Status:        domain.EnrollmentPending,
		PaymentStatus: domain.PaymentUnpaid,
		Source:        params.Source,
		Notes:         params.Notes,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO enrollments (user_id, course_id, schedule_id, status, payment_status, source, notes)
         VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
         RETURNING id, enrolled_at`,
		enrollment.UserID, enrollment.CourseID, nullInt64(enrollment.ScheduleID),
		enrollment.Status, enrollment.PaymentStatus, enrollment.Source, enrollment.Notes,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		return nil, err
	}

	err = insertOutboxEvent(ctx, tx, ports.EventEnrollmentCreated, ports.EnrollmentEvent{
		EnrollmentID: enrollment.ID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		ScheduleID:   enrollment.ScheduleID,
		Status:       string(enrollment.Status),
		Source:       string(enrollment.Source),
		OccurredAt:   enrollment.EnrolledAt,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentSQLRepository) FindByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	enrollment, err := scanEnrollment(r.db.QueryRowContext(ctx,
		"SELECT "+enrollmentColumns+" FROM enrollments WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "enrollment", id)
	}
	return enrollment, nil
}

// TransitionStatus applies from -> to guarded by the current status in
// the UPDATE itself, so a concurrent transition that already moved the
// row causes this one to fail rather than silently overwrite.
func (r *EnrollmentSQLRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.EnrollmentStatus) (*domain.Enrollment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	enrollment, err := scanEnrollment(tx.QueryRowContext(ctx,
		`UPDATE enrollments SET status = $3 WHERE id = $1 AND status = $2
         RETURNING `+enrollmentColumns,
		id, from, to,
	))
	if errors.Is(err, sql.ErrNoRows) {
		var current domain.EnrollmentStatus
		lookupErr := tx.QueryRowContext(ctx, "SELECT status FROM enrollments WHERE id = $1", id).Scan(&current)
		if lookupErr != nil {
			return nil, notFound(lookupErr, "enrollment", id)
		}
		return nil, &domain.InvalidStateError{From: current, To: to}
	}
	if err != nil {
		return nil, err
	}

	if to == domain.EnrollmentApproved {
		err = insertOutboxEvent(ctx, tx, ports.EventEnrollmentApproved, ports.EnrollmentEvent{
			EnrollmentID: enrollment.ID,
			UserID:       enrollment.UserID,
			CourseID:     enrollment.CourseID,
			ScheduleID:   enrollment.ScheduleID,
			Status:       string(enrollment.Status),
			Source:       string(enrollment.Source),
			OccurredAt:   time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (r *EnrollmentSQLRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Enrollment, error) {
	enrollment, err := scanEnrollment(r.db.QueryRowContext(ctx,
		`UPDATE enrollments SET payment_status = $2 WHERE id = $1
         RETURNING `+enrollmentColumns,
		id, status,
	))
	if err != nil {
		return nil, notFound(err, "enrollment", id)
	}
	return enrollment, nil
}

// List returns a page ordered by enrolled_at DESC with id as the
// tiebreaker, so pagination stays stable under concurrent inserts.
func (r *EnrollmentSQLRepository) List(ctx context.Context, filter ports.EnrollmentFilter) ([]domain.Enrollment, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		where += fmt.Sprintf(" AND course_id = $%d", len(args))
	}
	if filter.ScheduleID != nil {
		args = append(args, *filter.ScheduleID)
		where += fmt.Sprintf(" AND schedule_id = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM enrollments "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM enrollments %s ORDER BY enrolled_at DESC, id DESC LIMIT $%d OFFSET $%d",
		enrollmentColumns, where, len(args)-1, len(args),
	)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, err
		}
		enrollments = append(enrollments, *e)
	}
	return enrollments, total, rows.Err()
}

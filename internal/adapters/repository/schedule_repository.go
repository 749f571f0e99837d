package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type ScheduleSQLRepository struct {
	db *sql.DB
}

var _ ports.ScheduleRepository = (*ScheduleSQLRepository)(nil)

func NewScheduleSQLRepository(db *sql.DB) *ScheduleSQLRepository {
	return &ScheduleSQLRepository{db: db}
}

const scheduleColumns = "id, course_id, teacher_id, start_time, end_time, COALESCE(location, ''), capacity, status, created_at"

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var s domain.Schedule
	var teacherID sql.NullInt64
	var capacity sql.NullInt64
	err := row.Scan(&s.ID, &s.CourseID, &teacherID, &s.StartTime, &s.EndTime, &s.Location, &capacity, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if teacherID.Valid {
		s.TeacherID = &teacherID.Int64
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		s.Capacity = &c
	}
	return &s, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func (r *ScheduleSQLRepository) FindByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := scanSchedule(r.db.QueryRowContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedules WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "schedule", id)
	}
	return schedule, nil
}

func (r *ScheduleSQLRepository) List(ctx context.Context, filter ports.ScheduleFilter) ([]domain.Schedule, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		where += fmt.Sprintf(" AND course_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schedules "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM schedules %s ORDER BY start_time ASC, id ASC LIMIT $%d OFFSET $%d",
		scheduleColumns, where, len(args)-1, len(args),
	)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, total, rows.Err()
}

func (r *ScheduleSQLRepository) Create(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO schedules (course_id, teacher_id, start_time, end_time, location, capacity, status)
         VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
         RETURNING id, created_at`,
		schedule.CourseID, nullInt64(schedule.TeacherID), schedule.StartTime, schedule.EndTime,
		schedule.Location, nullInt(schedule.Capacity), schedule.Status,
	).Scan(&schedule.ID, &schedule.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleSQLRepository) Update(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE schedules SET course_id = $2, teacher_id = $3, start_time = $4, end_time = $5,
                              location = NULLIF($6, ''), capacity = $7, status = $8
         WHERE id = $1
         RETURNING created_at`,
		schedule.ID, schedule.CourseID, nullInt64(schedule.TeacherID), schedule.StartTime,
		schedule.EndTime, schedule.Location, nullInt(schedule.Capacity), schedule.Status,
	).Scan(&schedule.CreatedAt)
	if err != nil {
		return nil, notFound(err, "schedule", schedule.ID)
	}
	return &schedule, nil
}

// Delete hard-deletes an unreferenced schedule. One that already has
// enrollments is marked cancelled instead.
func (r *ScheduleSQLRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM enrollments WHERE schedule_id = $1)", id,
	).Scan(&referenced)
	if err != nil {
		return err
	}

	var result sql.Result
	if referenced {
		result, err = tx.ExecContext(ctx, "UPDATE schedules SET status = 'cancelled' WHERE id = $1", id)
	} else {
		result, err = tx.ExecContext(ctx, "DELETE FROM schedules WHERE id = $1", id)
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "schedule", ID: id}
	}

	return tx.Commit()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type CourseSQLRepository struct {
	db *sql.DB
}

var _ ports.CourseRepository = (*CourseSQLRepository)(nil)

func NewCourseSQLRepository(db *sql.DB) *CourseSQLRepository {
	return &CourseSQLRepository{db: db}
}

const courseColumns = "id, title, slug, level, capacity, price_cents, currency, active, created_at"

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Level, &c.Capacity, &c.PriceCents, &c.Currency, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseSQLRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := scanCourse(r.db.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "course", id)
	}
	return course, nil
}

func (r *CourseSQLRepository) List(ctx context.Context, filter ports.CourseFilter) ([]domain.Course, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if filter.Level != nil {
		args = append(args, string(*filter.Level))
		where += fmt.Sprintf(" AND level = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where += fmt.Sprintf(" AND active = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM courses %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		courseColumns, where, len(args)-1, len(args),
	)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *c)
	}
	return courses, total, rows.Err()
}

func (r *CourseSQLRepository) Create(ctx context.Context, course domain.Course) (*domain.Course, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO courses (title, slug, level, capacity, price_cents, currency, active)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		course.Title, course.Slug, course.Level, course.Capacity, course.PriceCents, course.Currency, course.Active,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &domain.ConflictError{Resource: "course", Field: "slug"}
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseSQLRepository) Update(ctx context.Context, course domain.Course) (*domain.Course, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE courses SET title = $2, slug = $3, level = $4, capacity = $5,
                            price_cents = $6, currency = $7, active = $8
         WHERE id = $1
         RETURNING created_at`,
		course.ID, course.Title, course.Slug, course.Level, course.Capacity,
		course.PriceCents, course.Currency, course.Active,
	).Scan(&course.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &domain.ConflictError{Resource: "course", Field: "slug"}
		}
		return nil, notFound(err, "course", course.ID)
	}
	return &course, nil
}

// Delete hard-deletes an unreferenced course. A course that still has
// enrollments is deactivated instead so history stays intact.
func (r *CourseSQLRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1)", id,
	).Scan(&referenced)
	if err != nil {
		return err
	}

	var result sql.Result
	if referenced {
		result, err = tx.ExecContext(ctx, "UPDATE courses SET active = FALSE WHERE id = $1", id)
	} else {
		result, err = tx.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "course", ID: id}
	}

	return tx.Commit()
}

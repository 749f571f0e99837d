package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type UserSQLRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserSQLRepository)(nil)

func NewUserSQLRepository(db *sql.DB) *UserSQLRepository {
	return &UserSQLRepository{db: db}
}

const userColumns = "id, email, name, role, status, COALESCE(password_hash, ''), created_at"

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserSQLRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

func (r *UserSQLRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		return nil, notFound(err, "user", 0)
	}
	return user, nil
}

func (r *UserSQLRepository) List(ctx context.Context, filter ports.UserFilter) ([]domain.User, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM users %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)-1, len(args),
	)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserSQLRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, role, status, password_hash)
         VALUES ($1, $2, $3, $4, NULLIF($5, ''))
         RETURNING id, created_at`,
		user.Email, user.Name, user.Role, user.Status, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &domain.ConflictError{Resource: "user", Field: "email"}
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserSQLRepository) Update(ctx context.Context, user domain.User) (*domain.User, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE users SET name = $2, role = $3, status = $4 WHERE id = $1
         RETURNING email, COALESCE(password_hash, ''), created_at`,
		user.ID, user.Name, user.Role, user.Status,
	).Scan(&user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err, "user", user.ID)
	}
	return &user, nil
}

// Package repository implements the repository ports against
// PostgreSQL using database/sql and lib/pq. Each entity gets its own
// repository struct; they all share one *sql.DB pool.
package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/hangang-korean/admin-service/internal/core/domain"
)

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func notFound(err error, resource string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

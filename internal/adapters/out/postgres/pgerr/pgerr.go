// Package pgerr classifies errors returned by the Postgres driver.
package pgerr

import (
	"errors"

	"foodorder/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation on constraint.
// An empty constraint matches any unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return errors.Is(err, gorm.ErrDuplicatedKey) && constraint == ""
	}
	return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

// Unavailable wraps a driver or transport failure of operation.
func Unavailable(operation string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewPersistenceUnavailableError(operation, err)
}

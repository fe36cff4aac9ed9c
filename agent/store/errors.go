package store

import (
	"errors"
	"fmt"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
	ErrIntegrity  = errors.New("integrity constraint violation")
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// classify wraps PostgreSQL constraint errors with a store sentinel so
// callers can tell them apart from connectivity failures.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		switch pgErr.Field('C') {
		case sqlStateUniqueViolation:
			return fmt.Errorf("%s: %w: %v", op, ErrDuplicate, err)
		case sqlStateForeignKeyViolation:
			return fmt.Errorf("%s: %w: %v", op, ErrForeignKey, err)
		default:
			return fmt.Errorf("%s: %w: %v", op, ErrIntegrity, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

package repo

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches, including lookups scoped to another owner.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert or update collides with the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// validID reports whether id is a well-formed UUID. Malformed ids can never match a row,
// so callers treat them as not found instead of sending them to Postgres.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

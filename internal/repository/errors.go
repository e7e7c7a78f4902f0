package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate signals a unique-constraint violation. Callers map it to a
// Conflict error. Surfacing it from the driver is what makes two concurrent
// inserts for the same key resolve to one success and one conflict.
var ErrDuplicate = errors.New("duplicate row")

const uniqueViolationCode = "23505"

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}

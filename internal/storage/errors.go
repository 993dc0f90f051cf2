package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced expense, share or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller does not own the record it tried to mutate:
	// a non-payer deleting an expense or a non-owner settling a share.
	ErrForbidden = errors.New("not permitted")

	// ErrAlreadySettled means the share was settled earlier. Settlement is one-way.
	ErrAlreadySettled = errors.New("share already settled")

	// ErrUserReferenced means the user still appears in group expenses or shares.
	ErrUserReferenced = errors.New("user is referenced by group expenses")

	// ErrDuplicate means a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("already exists")

	// ErrUnavailable wraps connectivity and integrity failures of the store.
	ErrUnavailable = errors.New("storage unavailable")
)

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

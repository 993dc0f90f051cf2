package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"

	"github.com/shalinipalla005/Walletwise/internal/auth"
	"github.com/shalinipalla005/Walletwise/internal/middleware"
	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// toConnectError maps ledger and storage errors onto Connect codes.
func toConnectError(err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, storage.ErrAlreadySettled), errors.Is(err, storage.ErrUserReferenced):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// callerID returns the authenticated user id.
func callerID(ctx context.Context) (int64, error) {
	id := middleware.GetUserID(ctx)
	if id <= 0 {
		return 0, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD field. Empty input yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, models.NewValidationError(field, fmt.Sprintf("%q is not a YYYY-MM-DD date", value))
	}
	return t, nil
}

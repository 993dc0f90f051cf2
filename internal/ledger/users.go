package ledger

import (
	"context"
	"log/slog"
	"net/mail"

	"github.com/shalinipalla005/Walletwise/internal/models"
)

// CreateUser registers a user. Emails are unique and stored lower-cased.
func (l *Ledger) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	user := models.NewUser(name, email)
	if user.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return nil, models.NewValidationError("email", "is not a valid address")
	}

	if err := l.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "User created", "user_id", user.ID)
	return user, nil
}

// GetUser returns a user by id.
func (l *Ledger) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return l.store.GetUserByID(ctx, id)
}

// GetUserByEmail returns a user by email, case-insensitively.
func (l *Ledger) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return l.store.GetUserByEmail(ctx, models.NewUser("", email).Email)
}

// ListUsers returns everyone an expense can be shared with, ordered by name.
func (l *Ledger) ListUsers(ctx context.Context) ([]*models.User, error) {
	return l.store.ListUsers(ctx)
}

// DeleteUser removes a user and their personal budgets and transactions.
// It fails with storage.ErrUserReferenced while any group expense, share or
// settlement still names the user.
func (l *Ledger) DeleteUser(ctx context.Context, id int64) error {
	if err := l.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "User deleted", "user_id", id)
	return nil
}

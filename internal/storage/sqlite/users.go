package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// CreateUser inserts a new user and sets its ID.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, created_at) VALUES (?, ?, ?)",
		user.Name, user.Email, user.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", user.Email, storage.ErrDuplicate)
		}
		return unavailable("create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return unavailable("read user id", err)
	}
	user.ID = id

	return nil
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get user by id", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE email = ?", email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get user by email", err)
	}
	return user, nil
}

// ListUsers returns every user ordered by name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, created_at FROM users ORDER BY name, id")
	if err != nil {
		return nil, unavailable("list users", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, unavailable("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate users", err)
	}

	return users, nil
}

// DeleteUser removes a user along with their budgets and transactions.
// Users that still appear in group expenses or settlements cannot be removed.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_expenses WHERE payer_id = ?)
		     OR EXISTS (SELECT 1 FROM expense_shares WHERE user_id = ?)
		     OR EXISTS (SELECT 1 FROM settlements WHERE from_user_id = ? OR to_user_id = ?)`,
		id, id, id, id,
	).Scan(&referenced)
	if err != nil {
		return unavailable("check user references", err)
	}
	if referenced {
		return fmt.Errorf("user %d: %w", id, storage.ErrUserReferenced)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", id, storage.ErrUserReferenced)
		}
		return unavailable("delete user", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return unavailable("read affected rows", err)
	} else if n == 0 {
		return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit transaction", err)
	}

	return nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var createdAt int64
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows ListGroupExpenses.
type ExpenseFilter struct {
	// Limit caps the number of expenses returned; zero means no limit.
	Limit int

	// IncludeSettled keeps expenses that are fully settled.
	IncludeSettled bool

	// Since drops expenses dated before it when non-zero.
	Since time.Time
}

// SettleRequest carries the optional settlement details recorded on a share.
type SettleRequest struct {
	ShareID   int64
	UserID    int64
	Method    string
	Reference string
}

// SettleResult reports what a settlement changed.
type SettleResult struct {
	Share          models.ExpenseShare
	ExpenseID      int64
	ExpenseSettled bool
	Settlement     models.Settlement
}

// LedgerStore defines the durable operations on group expenses.
// Every mutating method runs in a single transaction: either all rows are
// written or none are.
type LedgerStore interface {
	// CreateGroupExpense validates reconciliation, then persists the expense and
	// all shares atomically and returns the new expense ID.
	CreateGroupExpense(ctx context.Context, expense models.NewGroupExpense) (int64, error)

	// GetGroupExpense retrieves one expense with its shares.
	GetGroupExpense(ctx context.Context, expenseID int64) (*models.GroupExpense, error)

	// DeleteGroupExpense removes an expense and its shares. Returns ErrNotFound
	// for a missing id and ErrForbidden unless requestingUserID is the payer.
	DeleteGroupExpense(ctx context.Context, expenseID, requestingUserID int64) error

	// SettleShare marks a share settled and, in the same transaction, marks the
	// parent expense settled once no unsettled shares remain.
	SettleShare(ctx context.Context, req SettleRequest) (*SettleResult, error)

	// FindUnsettledShare returns the unsettled share owned by userID on expenseID.
	FindUnsettledShare(ctx context.Context, expenseID, userID int64) (*models.ExpenseShare, error)

	// ListGroupExpenses returns expenses the user paid for or holds a share in,
	// newest first, each with all of its shares.
	ListGroupExpenses(ctx context.Context, userID int64, filter ExpenseFilter) ([]*models.GroupExpense, error)

	// ListUnsettledForUser returns the user's unsettled shares on expenses paid by others.
	ListUnsettledForUser(ctx context.Context, userID int64) ([]models.UnsettledShare, error)

	// ListSettlements returns settlements where the user paid or was paid.
	ListSettlements(ctx context.Context, userID int64, limit int) ([]models.Settlement, error)
}

// UserStore defines persistence for the identity records the ledger references.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// FinanceStore defines persistence for budgets and personal transactions.
type FinanceStore interface {
	SetBudget(ctx context.Context, budget models.Budget) error
	GetBudget(ctx context.Context, userID int64, yearMonth, category string) (decimal.Decimal, bool, error)
	ListBudgets(ctx context.Context, userID int64, yearMonth string) ([]models.Budget, error)

	AddTransaction(ctx context.Context, txn *models.Transaction) error
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, txnID, userID int64) error
	ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]*models.Transaction, error)
	DistinctCategories(ctx context.Context, userID int64) ([]string, error)
}

// Store is the full storage backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger or service layers.
type Store interface {
	LedgerStore
	UserStore
	FinanceStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

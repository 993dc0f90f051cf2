package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shalinipalla005/Walletwise/internal/calculator"
	"github.com/shalinipalla005/Walletwise/internal/models"
)

// SetBudget creates or replaces the user's budget for a month. An empty
// category sets the overall monthly budget.
func (l *Ledger) SetBudget(ctx context.Context, budget models.Budget) error {
	budget.Category = strings.TrimSpace(budget.Category)
	if err := validateYearMonth(budget.YearMonth); err != nil {
		return err
	}
	if !budget.Amount.IsPositive() {
		return models.NewValidationError("amount", "must be greater than zero")
	}
	return l.store.SetBudget(ctx, budget)
}

// GetBudget returns the budget for a month and whether one is set.
func (l *Ledger) GetBudget(ctx context.Context, userID int64, yearMonth, category string) (decimal.Decimal, bool, error) {
	if err := validateYearMonth(yearMonth); err != nil {
		return decimal.Zero, false, err
	}
	return l.store.GetBudget(ctx, userID, yearMonth, strings.TrimSpace(category))
}

// ListBudgets returns every budget the user set for a month.
func (l *Ledger) ListBudgets(ctx context.Context, userID int64, yearMonth string) ([]models.Budget, error) {
	if err := validateYearMonth(yearMonth); err != nil {
		return nil, err
	}
	return l.store.ListBudgets(ctx, userID, yearMonth)
}

// AddTransaction records a personal income or expense.
func (l *Ledger) AddTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := normalizeTransaction(txn); err != nil {
		return err
	}
	return l.store.AddTransaction(ctx, txn)
}

// UpdateTransaction overwrites one of the user's transactions.
func (l *Ledger) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID <= 0 {
		return models.NewValidationError("id", "is required")
	}
	if err := normalizeTransaction(txn); err != nil {
		return err
	}
	return l.store.UpdateTransaction(ctx, txn)
}

// DeleteTransaction removes one of the user's transactions.
func (l *Ledger) DeleteTransaction(ctx context.Context, txnID, userID int64) error {
	return l.store.DeleteTransaction(ctx, txnID, userID)
}

// ListTransactions returns the user's transactions matching filter, newest first.
func (l *Ledger) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]*models.Transaction, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, models.NewValidationError("type", "must be Income or Expense")
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, models.NewValidationError("to", "must not be before from")
	}
	return l.store.ListTransactions(ctx, userID, filter)
}

// DistinctCategories lists the categories used in the user's transactions.
func (l *Ledger) DistinctCategories(ctx context.Context, userID int64) ([]string, error) {
	return l.store.DistinctCategories(ctx, userID)
}

func validateYearMonth(yearMonth string) error {
	if _, err := time.Parse(models.YearMonthLayout, yearMonth); err != nil {
		return models.NewValidationError("year_month", "must look like 2006-01")
	}
	return nil
}

func normalizeTransaction(txn *models.Transaction) error {
	txn.Category = strings.TrimSpace(txn.Category)
	txn.Description = strings.TrimSpace(txn.Description)

	if txn.UserID <= 0 {
		return models.NewValidationError("user_id", "is required")
	}
	if !txn.Amount.IsPositive() {
		return models.NewValidationError("amount", "must be greater than zero")
	}
	if !txn.Type.Valid() {
		return models.NewValidationError("type", "must be Income or Expense")
	}
	if txn.Date.IsZero() {
		return models.NewValidationError("date", "is required")
	}
	txn.Date = calculator.CivilDate(txn.Date)
	return nil
}

package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shalinipalla005/Walletwise/internal/calculator"
	"github.com/shalinipalla005/Walletwise/internal/events"
	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// CreateGroupExpense records an expense and its shares. Shares must reconcile
// with the amount; otherwise a *models.ValidationError is returned and nothing
// is written.
func (l *Ledger) CreateGroupExpense(ctx context.Context, in models.NewGroupExpense) (int64, error) {
	if strings.TrimSpace(in.Currency) == "" {
		in.Currency = l.defaultCurrency
	}

	id, err := l.store.CreateGroupExpense(ctx, in)
	l.metrics.LedgerOp("create", outcome(err))
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Group expense created",
		"expense_id", id,
		"payer_id", in.PayerID,
		"amount", in.Amount.String(),
		"shares", len(in.Shares))

	event := events.New(events.TypeExpenseCreated, in.PayerID, id)
	event.Amount = in.Amount
	event.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	l.publish(ctx, event)

	return id, nil
}

// CreateEqualSplitExpense records an expense split evenly between the payer and
// otherIDs. Any rounding remainder goes to the payer.
func (l *Ledger) CreateEqualSplitExpense(ctx context.Context, in models.NewGroupExpense, otherIDs []int64) (int64, error) {
	shares, err := calculator.EqualShares(in.Amount, in.PayerID, otherIDs)
	if err != nil {
		return 0, err
	}
	in.Shares = shares
	return l.CreateGroupExpense(ctx, in)
}

// GetGroupExpense returns an expense the user is involved in.
func (l *Ledger) GetGroupExpense(ctx context.Context, userID, expenseID int64) (*models.GroupExpense, error) {
	expense, err := l.store.GetGroupExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.Involves(userID) {
		return nil, storage.ErrNotFound
	}
	return expense, nil
}

// DeleteGroupExpense deletes an expense and its shares. It reports false when
// the expense does not exist or the user is not its payer; an error is
// returned only when the store fails.
func (l *Ledger) DeleteGroupExpense(ctx context.Context, expenseID, userID int64) (bool, error) {
	err := l.store.DeleteGroupExpense(ctx, expenseID, userID)
	l.metrics.LedgerOp("delete", outcome(err))
	if err != nil {
		if refused(err) {
			slog.InfoContext(ctx, "Group expense not deleted",
				"expense_id", expenseID,
				"user_id", userID,
				"reason", err)
			return false, nil
		}
		return false, err
	}

	slog.InfoContext(ctx, "Group expense deleted", "expense_id", expenseID, "user_id", userID)
	l.publish(ctx, events.New(events.TypeExpenseDeleted, userID, expenseID))

	return true, nil
}

// ListGroupExpenses returns expenses the user paid for or shares in, newest
// first. A limit of 0 returns everything.
func (l *Ledger) ListGroupExpenses(ctx context.Context, userID int64, limit int, includeSettled bool) ([]*models.GroupExpense, error) {
	if limit < 0 {
		return nil, models.NewValidationError("limit", "must not be negative")
	}
	return l.store.ListGroupExpenses(ctx, userID, storage.ExpenseFilter{
		Limit:          limit,
		IncludeSettled: includeSettled,
	})
}

// ListUnsettledForUser returns what the user still owes others.
func (l *Ledger) ListUnsettledForUser(ctx context.Context, userID int64) ([]models.UnsettledShare, error) {
	return l.store.ListUnsettledForUser(ctx, userID)
}

// ListSettlements returns the user's settlement history, newest first.
func (l *Ledger) ListSettlements(ctx context.Context, userID int64, limit int) ([]models.Settlement, error) {
	if limit < 0 {
		return nil, models.NewValidationError("limit", "must not be negative")
	}
	return l.store.ListSettlements(ctx, userID, limit)
}

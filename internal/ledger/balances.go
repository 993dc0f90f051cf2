package ledger

import (
	"context"

	"github.com/shalinipalla005/Walletwise/internal/calculator"
	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// BalanceSummary computes what the user owes and is owed across every
// expense they are involved in.
func (l *Ledger) BalanceSummary(ctx context.Context, userID int64) (calculator.BalanceSummary, error) {
	expenses, err := l.store.ListGroupExpenses(ctx, userID, storage.ExpenseFilter{IncludeSettled: true})
	if err != nil {
		return calculator.BalanceSummary{}, err
	}
	return calculator.CalculateBalanceSummary(userID, expenses), nil
}

// ExpenseStatistics summarizes the user's expenses over the last days days.
// Zero days uses the configured default window.
func (l *Ledger) ExpenseStatistics(ctx context.Context, userID int64, days int) (calculator.ExpenseStatistics, error) {
	if days < 0 {
		return calculator.ExpenseStatistics{}, models.NewValidationError("days", "must be positive")
	}
	if days == 0 {
		days = l.statsDays
	}

	since := calculator.WindowStart(l.now(), days)
	expenses, err := l.store.ListGroupExpenses(ctx, userID, storage.ExpenseFilter{
		IncludeSettled: true,
		Since:          since,
	})
	if err != nil {
		return calculator.ExpenseStatistics{}, err
	}
	return calculator.CalculateStatistics(userID, expenses, since, days), nil
}

// QuickStats returns the dashboard figures for a user.
func (l *Ledger) QuickStats(ctx context.Context, userID int64) (calculator.QuickStats, error) {
	expenses, err := l.store.ListGroupExpenses(ctx, userID, storage.ExpenseFilter{IncludeSettled: true})
	if err != nil {
		return calculator.QuickStats{}, err
	}
	recentSince := calculator.WindowStart(l.now(), calculator.DefaultStatsDays)
	return calculator.CalculateQuickStats(userID, expenses, recentSince), nil
}

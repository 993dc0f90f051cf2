package ledger

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shalinipalla005/Walletwise/internal/events"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// BulkResult summarizes a SettleMany call.
type BulkResult struct {
	SettledCount  int
	FailedCount   int
	SettledAmount decimal.Decimal
}

// SettleShare settles one share owned by userID. It reports false when the
// share does not exist, belongs to someone else, or is already settled.
func (l *Ledger) SettleShare(ctx context.Context, shareID, userID int64, method, reference string) (bool, error) {
	_, err := l.settle(ctx, storage.SettleRequest{
		ShareID:   shareID,
		UserID:    userID,
		Method:    method,
		Reference: reference,
	})
	if err != nil {
		if refused(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SettleMany settles the user's open share on each listed expense. Every id
// is attempted; an id without an open share for the user counts as a failure.
// Only a storage failure stops the batch, and the partial result is returned
// with the error.
func (l *Ledger) SettleMany(ctx context.Context, userID int64, expenseIDs []int64, method, reference string) (BulkResult, error) {
	result := BulkResult{SettledAmount: decimal.Zero}

	for _, expenseID := range expenseIDs {
		share, err := l.store.FindUnsettledShare(ctx, expenseID, userID)
		if err != nil {
			if refused(err) {
				result.FailedCount++
				continue
			}
			return result, err
		}

		res, err := l.settle(ctx, storage.SettleRequest{
			ShareID:   share.ID,
			UserID:    userID,
			Method:    method,
			Reference: reference,
		})
		if err != nil {
			if refused(err) {
				result.FailedCount++
				continue
			}
			return result, err
		}

		result.SettledCount++
		result.SettledAmount = result.SettledAmount.Add(res.Share.Amount)
	}

	slog.InfoContext(ctx, "Bulk settlement finished",
		"user_id", userID,
		"requested", len(expenseIDs),
		"settled", result.SettledCount,
		"failed", result.FailedCount,
		"amount", result.SettledAmount.StringFixed(2))

	return result, nil
}

func (l *Ledger) settle(ctx context.Context, req storage.SettleRequest) (*storage.SettleResult, error) {
	res, err := l.store.SettleShare(ctx, req)
	l.metrics.LedgerOp("settle", outcome(err))
	if err != nil {
		if refused(err) {
			slog.InfoContext(ctx, "Share not settled",
				"share_id", req.ShareID,
				"user_id", req.UserID,
				"reason", err)
		}
		return nil, err
	}

	l.metrics.Settled(res.Share.Amount.InexactFloat64())
	slog.InfoContext(ctx, "Share settled",
		"share_id", res.Share.ID,
		"expense_id", res.ExpenseID,
		"user_id", req.UserID,
		"expense_settled", res.ExpenseSettled)

	event := events.New(events.TypeShareSettled, req.UserID, res.ExpenseID)
	event.ShareID = res.Share.ID
	event.Amount = res.Share.Amount
	event.Currency = res.Settlement.Currency
	l.publish(ctx, event)

	if res.ExpenseSettled {
		l.metrics.LedgerOp("expense_settled", "ok")
		done := events.New(events.TypeExpenseSettled, res.Settlement.ToUserID, res.ExpenseID)
		done.Currency = res.Settlement.Currency
		l.publish(ctx, done)
	}

	return res, nil
}

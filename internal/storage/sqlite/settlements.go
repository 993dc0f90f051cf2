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

// SettleShare marks one share settled and, when it was the expense's last open
// share, marks the expense settled too. A settlement record is written in the
// same transaction.
func (s *SQLiteStore) SettleShare(ctx context.Context, req storage.SettleRequest) (*storage.SettleResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	share, err := scanShare(tx.QueryRowContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.name, s.amount, s.is_settled, s.settled_at,
		        s.settlement_method, s.settlement_reference
		 FROM expense_shares s JOIN users u ON u.id = s.user_id
		 WHERE s.id = ?`,
		req.ShareID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("share %d: %w", req.ShareID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get share", err)
	}
	if share.UserID != req.UserID {
		return nil, fmt.Errorf("share %d: %w", req.ShareID, storage.ErrForbidden)
	}
	if share.IsSettled {
		return nil, fmt.Errorf("share %d: %w", req.ShareID, storage.ErrAlreadySettled)
	}

	var payerID int64
	var currency string
	err = tx.QueryRowContext(ctx,
		"SELECT payer_id, currency FROM group_expenses WHERE id = ?", share.ExpenseID,
	).Scan(&payerID, &currency)
	if err != nil {
		return nil, unavailable("get expense for share", err)
	}

	now := s.now()
	res, err := tx.ExecContext(ctx,
		`UPDATE expense_shares
		 SET is_settled = 1, settled_at = ?, settlement_method = ?, settlement_reference = ?
		 WHERE id = ? AND is_settled = 0`,
		now.Unix(), nullString(req.Method), nullString(req.Reference), req.ShareID,
	)
	if err != nil {
		return nil, unavailable("update share", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, unavailable("read affected rows", err)
	} else if n == 0 {
		return nil, fmt.Errorf("share %d: %w", req.ShareID, storage.ErrAlreadySettled)
	}

	var open int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expense_shares WHERE expense_id = ? AND is_settled = 0", share.ExpenseID,
	).Scan(&open)
	if err != nil {
		return nil, unavailable("count open shares", err)
	}

	expenseSettled := open == 0
	if expenseSettled {
		if _, err := tx.ExecContext(ctx,
			"UPDATE group_expenses SET is_settled = 1, settled_at = ? WHERE id = ?",
			now.Unix(), share.ExpenseID,
		); err != nil {
			return nil, unavailable("update expense", err)
		}
	}

	settlement := models.Settlement{
		ExpenseID:  share.ExpenseID,
		ShareID:    share.ID,
		FromUserID: share.UserID,
		ToUserID:   payerID,
		Amount:     share.Amount,
		Currency:   currency,
		Method:     req.Method,
		Reference:  req.Reference,
		SettledAt:  time.Unix(now.Unix(), 0).UTC(),
	}
	res, err = tx.ExecContext(ctx,
		`INSERT INTO settlements
		 (expense_id, share_id, from_user_id, to_user_id, amount, currency, method, reference, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ExpenseID, settlement.ShareID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount.String(), settlement.Currency, nullString(settlement.Method),
		nullString(settlement.Reference), settlement.SettledAt.Unix(),
	)
	if err != nil {
		return nil, unavailable("insert settlement", err)
	}
	if settlement.ID, err = res.LastInsertId(); err != nil {
		return nil, unavailable("read settlement id", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("commit transaction", err)
	}

	share.IsSettled = true
	share.SettledAt = &settlement.SettledAt
	share.SettlementMethod = req.Method
	share.SettlementReference = req.Reference

	return &storage.SettleResult{
		Share:          *share,
		ExpenseID:      share.ExpenseID,
		ExpenseSettled: expenseSettled,
		Settlement:     settlement,
	}, nil
}

// FindUnsettledShare returns the user's open share on an expense.
func (s *SQLiteStore) FindUnsettledShare(ctx context.Context, expenseID, userID int64) (*models.ExpenseShare, error) {
	share, err := scanShare(s.db.QueryRowContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.name, s.amount, s.is_settled, s.settled_at,
		        s.settlement_method, s.settlement_reference
		 FROM expense_shares s JOIN users u ON u.id = s.user_id
		 WHERE s.expense_id = ? AND s.user_id = ? AND s.is_settled = 0`,
		expenseID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("open share on expense %d: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("find unsettled share", err)
	}
	return share, nil
}

// ListSettlements returns settlements the user paid or received, newest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, userID int64, limit int) ([]models.Settlement, error) {
	query := `SELECT id, expense_id, share_id, from_user_id, to_user_id, amount, currency, method, reference, settled_at
		 FROM settlements
		 WHERE from_user_id = ? OR to_user_id = ?
		 ORDER BY settled_at DESC, id DESC`
	args := []any{userID, userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list settlements", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var expenseID sql.NullInt64
		var method, reference sql.NullString
		var settledAt int64
		if err := rows.Scan(&st.ID, &expenseID, &st.ShareID, &st.FromUserID, &st.ToUserID,
			&st.Amount, &st.Currency, &method, &reference, &settledAt); err != nil {
			return nil, unavailable("scan settlement", err)
		}
		st.ExpenseID = expenseID.Int64
		st.Method = method.String
		st.Reference = reference.String
		st.SettledAt = time.Unix(settledAt, 0).UTC()
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate settlements", err)
	}

	return settlements, nil
}

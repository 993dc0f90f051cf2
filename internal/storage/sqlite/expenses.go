package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shalinipalla005/Walletwise/internal/calculator"
	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

const expenseColumns = `ge.id, ge.title, ge.amount, ge.payer_id, u.name, ge.category, ge.date,
	ge.description, ge.currency, ge.is_settled, ge.settled_at, ge.created_at`

// CreateGroupExpense validates and persists an expense with all of its shares
// in one transaction. The payer's own share is stored already settled.
func (s *SQLiteStore) CreateGroupExpense(ctx context.Context, in models.NewGroupExpense) (int64, error) {
	expense, err := calculator.NormalizeExpense(in)
	if err != nil {
		return 0, err
	}

	now := s.now()
	allSettled := true
	for _, sh := range expense.Shares {
		if sh.UserID != expense.PayerID {
			allSettled = false
			break
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	var settledAt any
	if allSettled {
		settledAt = now.Unix()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO group_expenses
		 (title, amount, payer_id, category, date, description, currency, is_settled, settled_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.Title, expense.Amount.String(), expense.PayerID, expense.Category,
		expense.Date.Format(models.DateLayout), nullString(expense.Description), expense.Currency,
		allSettled, settledAt, now.Unix(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, models.NewValidationError("payer_id", "references an unknown user")
		}
		return 0, unavailable("insert expense", err)
	}

	expenseID, err := res.LastInsertId()
	if err != nil {
		return 0, unavailable("read expense id", err)
	}

	for _, sh := range expense.Shares {
		if sh.UserID == expense.PayerID {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO expense_shares (expense_id, user_id, amount, is_settled, settled_at, settlement_method)
				 VALUES (?, ?, ?, 1, ?, ?)`,
				expenseID, sh.UserID, sh.Amount.String(), now.Unix(), models.PayerSettlementMethod,
			)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO expense_shares (expense_id, user_id, amount) VALUES (?, ?, ?)`,
				expenseID, sh.UserID, sh.Amount.String(),
			)
		}
		if err != nil {
			if isForeignKeyViolation(err) {
				return 0, models.NewValidationError("shares", fmt.Sprintf("user %d does not exist", sh.UserID))
			}
			return 0, unavailable("insert share", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, unavailable("commit transaction", err)
	}

	return expenseID, nil
}

// GetGroupExpense retrieves an expense by ID, including its shares.
func (s *SQLiteStore) GetGroupExpense(ctx context.Context, expenseID int64) (*models.GroupExpense, error) {
	tx, err := s.readTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM group_expenses ge JOIN users u ON u.id = ge.payer_id
		 WHERE ge.id = ?`,
		expenseID,
	)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get expense", err)
	}

	if err := loadShares(ctx, tx, []*models.GroupExpense{expense}); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteGroupExpense removes an expense and its shares. Only the payer may delete.
func (s *SQLiteStore) DeleteGroupExpense(ctx context.Context, expenseID, requestingUserID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	var payerID int64
	err = tx.QueryRowContext(ctx, "SELECT payer_id FROM group_expenses WHERE id = ?", expenseID).Scan(&payerID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("expense %d: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return unavailable("get expense payer", err)
	}
	if payerID != requestingUserID {
		return fmt.Errorf("expense %d: %w", expenseID, storage.ErrForbidden)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM group_expenses WHERE id = ?", expenseID); err != nil {
		return unavailable("delete expense", err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit transaction", err)
	}

	return nil
}

// ListGroupExpenses returns expenses the user paid for or holds a share in,
// newest first, with every share attached.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, userID int64, filter storage.ExpenseFilter) ([]*models.GroupExpense, error) {
	query := `SELECT ` + expenseColumns + `
		FROM group_expenses ge JOIN users u ON u.id = ge.payer_id
		WHERE (ge.payer_id = ? OR EXISTS (
			SELECT 1 FROM expense_shares s WHERE s.expense_id = ge.id AND s.user_id = ?))`
	args := []any{userID, userID}

	if !filter.IncludeSettled {
		query += " AND ge.is_settled = 0"
	}
	if !filter.Since.IsZero() {
		query += " AND ge.date >= ?"
		args = append(args, filter.Since.Format(models.DateLayout))
	}
	query += " ORDER BY ge.date DESC, ge.id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	tx, err := s.readTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list expenses", err)
	}

	var expenses []*models.GroupExpense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, unavailable("scan expense", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate expenses", err)
	}

	if err := loadShares(ctx, tx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// ListUnsettledForUser returns the user's open shares on expenses paid by
// someone else, newest first.
func (s *SQLiteStore) ListUnsettledForUser(ctx context.Context, userID int64) ([]models.UnsettledShare, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ge.id, ge.title, ge.amount, ge.currency, ge.payer_id, u.name,
		        s.id, s.amount, ge.date, ge.created_at
		 FROM expense_shares s
		 JOIN group_expenses ge ON ge.id = s.expense_id
		 JOIN users u ON u.id = ge.payer_id
		 WHERE s.user_id = ? AND s.is_settled = 0 AND ge.payer_id != ?
		 ORDER BY ge.date DESC, ge.id DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, unavailable("list unsettled shares", err)
	}
	defer rows.Close()

	var out []models.UnsettledShare
	for rows.Next() {
		var u models.UnsettledShare
		var date string
		var createdAt int64
		if err := rows.Scan(&u.ExpenseID, &u.Title, &u.TotalAmount, &u.Currency, &u.PayerID, &u.PayerName,
			&u.ShareID, &u.ShareAmount, &date, &createdAt); err != nil {
			return nil, unavailable("scan unsettled share", err)
		}
		if u.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		u.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate unsettled shares", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.GroupExpense, error) {
	e := &models.GroupExpense{}
	var date string
	var description sql.NullString
	var settledAt sql.NullInt64
	var createdAt int64

	if err := row.Scan(&e.ID, &e.Title, &e.Amount, &e.PayerID, &e.PayerName, &e.Category, &date,
		&description, &e.Currency, &e.IsSettled, &settledAt, &createdAt); err != nil {
		return nil, err
	}

	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	e.Date = d
	e.Description = description.String
	e.SettledAt = timePtr(settledAt)
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	return e, nil
}

// loadShares attaches shares to the given expenses with a single query.
func loadShares(ctx context.Context, tx *sql.Tx, expenses []*models.GroupExpense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[int64]*models.GroupExpense, len(expenses))
	ids := make([]int64, 0, len(expenses))
	for _, e := range expenses {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.name, s.amount, s.is_settled, s.settled_at,
		        s.settlement_method, s.settlement_reference
		 FROM expense_shares s JOIN users u ON u.id = s.user_id
		 WHERE s.expense_id IN (`+placeholders(len(ids))+`)
		 ORDER BY s.expense_id, s.id`,
		int64Args(ids)...,
	)
	if err != nil {
		return unavailable("load shares", err)
	}
	defer rows.Close()

	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return unavailable("scan share", err)
		}
		if e, ok := byID[share.ExpenseID]; ok {
			e.Shares = append(e.Shares, *share)
		}
	}
	if err := rows.Err(); err != nil {
		return unavailable("iterate shares", err)
	}

	return nil
}

func scanShare(row rowScanner) (*models.ExpenseShare, error) {
	sh := &models.ExpenseShare{}
	var settledAt sql.NullInt64
	var method, reference sql.NullString

	if err := row.Scan(&sh.ID, &sh.ExpenseID, &sh.UserID, &sh.UserName, &sh.Amount, &sh.IsSettled,
		&settledAt, &method, &reference); err != nil {
		return nil, err
	}

	sh.SettledAt = timePtr(settledAt)
	sh.SettlementMethod = method.String
	sh.SettlementReference = reference.String
	return sh, nil
}

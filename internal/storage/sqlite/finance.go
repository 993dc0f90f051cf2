package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// SetBudget creates or replaces a monthly budget. An empty category is the
// user's overall budget for the month.
func (s *SQLiteStore) SetBudget(ctx context.Context, budget models.Budget) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, year_month, category, amount)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, year_month, category) DO UPDATE SET amount = excluded.amount`,
		budget.UserID, budget.YearMonth, budget.Category, budget.Amount.String(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", budget.UserID, storage.ErrNotFound)
		}
		return unavailable("set budget", err)
	}
	return nil
}

// GetBudget returns the budget amount and whether one is set.
func (s *SQLiteStore) GetBudget(ctx context.Context, userID int64, yearMonth, category string) (decimal.Decimal, bool, error) {
	var amount decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT amount FROM budgets WHERE user_id = ? AND year_month = ? AND category = ?",
		userID, yearMonth, category,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, unavailable("get budget", err)
	}
	return amount, true, nil
}

// ListBudgets returns every budget the user set for a month.
func (s *SQLiteStore) ListBudgets(ctx context.Context, userID int64, yearMonth string) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, year_month, category, amount FROM budgets
		 WHERE user_id = ? AND year_month = ? ORDER BY category`,
		userID, yearMonth,
	)
	if err != nil {
		return nil, unavailable("list budgets", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.UserID, &b.YearMonth, &b.Category, &b.Amount); err != nil {
			return nil, unavailable("scan budget", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate budgets", err)
	}

	return budgets, nil
}

// AddTransaction records a personal income or expense and sets its ID.
func (s *SQLiteStore) AddTransaction(ctx context.Context, txn *models.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, amount, type, category, date, description, payment_method, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.UserID, txn.Amount.String(), string(txn.Type), nullString(txn.Category),
		txn.Date.Format(models.DateLayout), nullString(txn.Description),
		nullString(txn.PaymentMethod), nullString(txn.Tags), s.now().Unix(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", txn.UserID, storage.ErrNotFound)
		}
		return unavailable("add transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return unavailable("read transaction id", err)
	}
	txn.ID = id
	return nil
}

// UpdateTransaction overwrites a transaction owned by txn.UserID.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET amount = ?, type = ?, category = ?, date = ?, description = ?, payment_method = ?, tags = ?
		 WHERE id = ? AND user_id = ?`,
		txn.Amount.String(), string(txn.Type), nullString(txn.Category),
		txn.Date.Format(models.DateLayout), nullString(txn.Description),
		nullString(txn.PaymentMethod), nullString(txn.Tags), txn.ID, txn.UserID,
	)
	if err != nil {
		return unavailable("update transaction", err)
	}
	return requireAffected(res, fmt.Sprintf("transaction %d", txn.ID))
}

// DeleteTransaction removes a transaction owned by userID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, txnID, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", txnID, userID,
	)
	if err != nil {
		return unavailable("delete transaction", err)
	}
	return requireAffected(res, fmt.Sprintf("transaction %d", txnID))
}

// ListTransactions returns the user's transactions matching filter, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT id, user_id, amount, type, category, date, description, payment_method, tags
		FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.From.Format(models.DateLayout))
	}
	if !filter.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.To.Format(models.DateLayout))
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list transactions", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn := &models.Transaction{}
		var txnType, date string
		var category, description, method, tags sql.NullString
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.Amount, &txnType, &category, &date,
			&description, &method, &tags); err != nil {
			return nil, unavailable("scan transaction", err)
		}
		if txn.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		txn.Type = models.TransactionType(txnType)
		txn.Category = category.String
		txn.Description = description.String
		txn.PaymentMethod = method.String
		txn.Tags = tags.String
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate transactions", err)
	}

	return txns, nil
}

// DistinctCategories lists the categories the user has recorded transactions
// under. Transactions without a category are reported as "Uncategorized".
func (s *SQLiteStore) DistinctCategories(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT COALESCE(category, 'Uncategorized') AS c
		 FROM transactions WHERE user_id = ? ORDER BY c`,
		userID,
	)
	if err != nil {
		return nil, unavailable("list categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, unavailable("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate categories", err)
	}

	return categories, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return nil
}

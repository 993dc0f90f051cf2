package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes income from expense entries.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single-user ledger entry, never shared.
type Transaction struct {
	ID            int64
	UserID        int64
	Amount        decimal.Decimal
	Type          TransactionType
	Category      string
	Date          time.Time
	Description   string
	PaymentMethod string
	Tags          string
}

// TransactionFilter narrows ListTransactions. Empty fields match everything.
type TransactionFilter struct {
	From     time.Time
	To       time.Time
	Category string
	Type     TransactionType
}

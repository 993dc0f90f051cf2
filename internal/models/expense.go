package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency is used when an expense is created without a currency code.
	DefaultCurrency = "INR"

	// DefaultCategory is used when an expense is created without a category.
	DefaultCategory = "General"

	// PayerSettlementMethod marks the payer's own share, which is settled on creation.
	PayerSettlementMethod = "payer"

	// DateLayout is the persisted and wire format of expense dates.
	DateLayout = "2006-01-02"
)

// GroupExpense is a single shared outlay paid by one user and owed by several.
type GroupExpense struct {
	ID          int64
	Title       string
	Amount      decimal.Decimal
	PayerID     int64
	PayerName   string
	Category    string
	Date        time.Time
	Description string
	Currency    string

	// IsSettled is true iff every share is settled. It is maintained by the
	// store inside the same transaction as the share update.
	IsSettled bool
	SettledAt *time.Time

	CreatedAt time.Time

	Shares []ExpenseShare
}

// ShareFor returns the share owned by userID, if any.
func (e *GroupExpense) ShareFor(userID int64) (*ExpenseShare, bool) {
	for i := range e.Shares {
		if e.Shares[i].UserID == userID {
			return &e.Shares[i], true
		}
	}
	return nil, false
}

// Involves reports whether userID paid for or holds a share in the expense.
func (e *GroupExpense) Involves(userID int64) bool {
	if e.PayerID == userID {
		return true
	}
	_, ok := e.ShareFor(userID)
	return ok
}

// ExpenseShare is one participant's portion of a GroupExpense.
type ExpenseShare struct {
	ID        int64
	ExpenseID int64
	UserID    int64
	UserName  string
	Amount    decimal.Decimal

	IsSettled           bool
	SettledAt           *time.Time
	SettlementMethod    string
	SettlementReference string
}

// ShareInput is a proposed share used when creating an expense.
type ShareInput struct {
	UserID int64
	Amount decimal.Decimal
}

// NewGroupExpense holds the caller-supplied fields of an expense to create.
type NewGroupExpense struct {
	Title       string
	Amount      decimal.Decimal
	PayerID     int64
	Category    string
	Date        time.Time
	Description string
	Currency    string
	Shares      []ShareInput
}

// UnsettledShare is a row of a user's outstanding debts.
type UnsettledShare struct {
	ExpenseID   int64
	Title       string
	TotalAmount decimal.Decimal
	Currency    string
	PayerID     int64
	PayerName   string
	ShareID     int64
	ShareAmount decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records a debtor paying off one share to the expense payer.
// It is written in the same transaction that settles the share.
type Settlement struct {
	// ID is the unique identifier for the settlement.
	ID int64

	// ExpenseID is the group expense whose share was settled.
	ExpenseID int64

	// ShareID is the settled share.
	ShareID int64

	// FromUserID is the user who paid (debtor settling up).
	FromUserID int64

	// ToUserID is the user who received payment (the expense payer).
	ToUserID int64

	// Amount is the settled share amount.
	Amount decimal.Decimal

	Currency string

	// Method and Reference are free text, e.g. "UPI" and a transaction id.
	Method    string
	Reference string

	// SettledAt is when the settlement was recorded.
	SettledAt time.Time
}

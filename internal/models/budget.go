package models

import "github.com/shopspring/decimal"

// YearMonthLayout is the key format of budgets.
const YearMonthLayout = "2006-01"

// Budget is a per-user monthly spending ceiling. An empty Category is the
// overall budget for the month.
type Budget struct {
	UserID    int64
	YearMonth string
	Category  string
	Amount    decimal.Decimal
}

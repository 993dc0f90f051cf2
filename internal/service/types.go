package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as decimal strings ("12.50") and dates as YYYY-MM-DD.

type ShareInput struct {
	UserID int64           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type ExpenseShare struct {
	ID                  int64           `json:"id"`
	UserID              int64           `json:"user_id"`
	UserName            string          `json:"user_name"`
	Amount              decimal.Decimal `json:"amount"`
	IsSettled           bool            `json:"is_settled"`
	SettledAt           *time.Time      `json:"settled_at,omitempty"`
	SettlementMethod    string          `json:"settlement_method,omitempty"`
	SettlementReference string          `json:"settlement_reference,omitempty"`
}

type GroupExpense struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	PayerID     int64           `json:"payer_id"`
	PayerName   string          `json:"payer_name"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	Currency    string          `json:"currency"`
	IsSettled   bool            `json:"is_settled"`
	SettledAt   *time.Time      `json:"settled_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Shares      []ExpenseShare  `json:"shares"`
}

type UnsettledShare struct {
	ExpenseID   int64           `json:"expense_id"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	PayerID     int64           `json:"payer_id"`
	PayerName   string          `json:"payer_name"`
	ShareID     int64           `json:"share_id"`
	ShareAmount decimal.Decimal `json:"share_amount"`
	Date        string          `json:"date"`
}

type Counterparty struct {
	UserID int64           `json:"user_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type CategoryStat struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

type Settlement struct {
	ID         int64           `json:"id"`
	ExpenseID  int64           `json:"expense_id,omitempty"`
	ShareID    int64           `json:"share_id"`
	FromUserID int64           `json:"from_user_id"`
	ToUserID   int64           `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Method     string          `json:"method,omitempty"`
	Reference  string          `json:"reference,omitempty"`
	SettledAt  time.Time       `json:"settled_at"`
}

type Budget struct {
	YearMonth string          `json:"year_month"`
	Category  string          `json:"category,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

type Transaction struct {
	ID            int64           `json:"id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category,omitempty"`
	Date          string          `json:"date"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tags          string          `json:"tags,omitempty"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LedgerService messages.

// CreateGroupExpenseRequest records an expense paid by the caller. Either
// Shares or SplitEquallyWith is used; with SplitEquallyWith the amount is
// divided between the caller and the listed users.
type CreateGroupExpenseRequest struct {
	Title            string          `json:"title"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category,omitempty"`
	Date             string          `json:"date"`
	Description      string          `json:"description,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	Shares           []ShareInput    `json:"shares,omitempty"`
	SplitEquallyWith []int64         `json:"split_equally_with,omitempty"`
}

type CreateGroupExpenseResponse struct {
	ExpenseID int64 `json:"expense_id"`
}

type GetGroupExpenseRequest struct {
	ExpenseID int64 `json:"expense_id"`
}

type GetGroupExpenseResponse struct {
	Expense GroupExpense `json:"expense"`
}

type DeleteGroupExpenseRequest struct {
	ExpenseID int64 `json:"expense_id"`
}

type DeleteGroupExpenseResponse struct {
	Deleted bool `json:"deleted"`
}

type SettleShareRequest struct {
	ShareID   int64  `json:"share_id"`
	Method    string `json:"method,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type SettleShareResponse struct {
	Settled bool `json:"settled"`
}

type SettleManyRequest struct {
	ExpenseIDs []int64 `json:"expense_ids"`
	Method     string  `json:"method,omitempty"`
	Reference  string  `json:"reference,omitempty"`
}

type SettleManyResponse struct {
	SettledCount  int             `json:"settled_count"`
	FailedCount   int             `json:"failed_count"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
}

type ListGroupExpensesRequest struct {
	Limit          int  `json:"limit,omitempty"`
	IncludeSettled bool `json:"include_settled"`
}

type ListGroupExpensesResponse struct {
	Expenses []GroupExpense `json:"expenses"`
}

type ListUnsettledRequest struct{}

type ListUnsettledResponse struct {
	Shares []UnsettledShare `json:"shares"`
}

type BalanceSummaryRequest struct{}

type BalanceSummaryResponse struct {
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalShare      decimal.Decimal `json:"total_share"`
	TotalOwes       decimal.Decimal `json:"total_owes"`
	TotalOwedToUser decimal.Decimal `json:"total_owed_to_user"`
	NetBalance      decimal.Decimal `json:"net_balance"`
	OwesTo          []Counterparty  `json:"owes_to"`
	OwedBy          []Counterparty  `json:"owed_by"`
}

type ExpenseStatisticsRequest struct {
	Days int `json:"days,omitempty"`
}

type ExpenseStatisticsResponse struct {
	PeriodDays int             `json:"period_days"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryStat  `json:"categories"`
}

type QuickStatsRequest struct{}

type QuickStatsResponse struct {
	RecentExpenses        int             `json:"recent_expenses"`
	PendingToPay          decimal.Decimal `json:"pending_to_pay"`
	PendingToReceive      decimal.Decimal `json:"pending_to_receive"`
	NetBalance            decimal.Decimal `json:"net_balance"`
	TotalLifetimeExpenses int             `json:"total_lifetime_expenses"`
	TotalLifetimePaid     decimal.Decimal `json:"total_lifetime_paid"`
}

type ListSettlementsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

// FinanceService messages.

type SetBudgetRequest struct {
	Budget Budget `json:"budget"`
}

type SetBudgetResponse struct{}

type GetBudgetRequest struct {
	YearMonth string `json:"year_month"`
	Category  string `json:"category,omitempty"`
}

type GetBudgetResponse struct {
	Amount decimal.Decimal `json:"amount"`
	IsSet  bool            `json:"is_set"`
}

type ListBudgetsRequest struct {
	YearMonth string `json:"year_month"`
}

type ListBudgetsResponse struct {
	Budgets []Budget `json:"budgets"`
}

type AddTransactionRequest struct {
	Transaction Transaction `json:"transaction"`
}

type AddTransactionResponse struct {
	TransactionID int64 `json:"transaction_id"`
}

type UpdateTransactionRequest struct {
	Transaction Transaction `json:"transaction"`
}

type UpdateTransactionResponse struct{}

type DeleteTransactionRequest struct {
	TransactionID int64 `json:"transaction_id"`
}

type DeleteTransactionResponse struct{}

type ListTransactionsRequest struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// UserService messages.

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

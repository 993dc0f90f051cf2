package calculator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shopspring/decimal"
)

// ShareTolerance is the largest difference allowed between the sum of shares
// and the expense amount.
var ShareTolerance = decimal.New(1, -2)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// SharesTotal sums the proposed share amounts.
func SharesTotal(shares []models.ShareInput) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

// ValidateShares reports whether the shares reconcile to total within ShareTolerance.
func ValidateShares(total decimal.Decimal, shares []models.ShareInput) bool {
	return SharesTotal(shares).Sub(total).Abs().LessThanOrEqual(ShareTolerance)
}

// CheckShares is ValidateShares returning a ValidationError carrying both sums.
func CheckShares(total decimal.Decimal, shares []models.ShareInput) error {
	if ValidateShares(total, shares) {
		return nil
	}
	sum := SharesTotal(shares)
	return &models.ValidationError{
		Field:        "shares",
		Message:      "shares do not reconcile",
		SharesTotal:  &sum,
		ExpenseTotal: &total,
	}
}

// EqualSplit divides total evenly among count participants, rounded to 2 decimals.
// The caller assigns the rounding remainder with SelfRemainder.
func EqualSplit(total decimal.Decimal, count int) (decimal.Decimal, error) {
	if count <= 0 {
		return decimal.Zero, fmt.Errorf("must have at least one participant")
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2), nil
}

// SelfRemainder is what the designated "self" participant owes so that the
// shares sum exactly to total: total - perHead*(count-1).
func SelfRemainder(total, perHead decimal.Decimal, count int) decimal.Decimal {
	return total.Sub(perHead.Mul(decimal.NewFromInt(int64(count - 1))))
}

// EqualShares builds an equal split between self and others. Others get the
// rounded per-head amount; self absorbs the remainder.
func EqualShares(total decimal.Decimal, selfID int64, otherIDs []int64) ([]models.ShareInput, error) {
	count := len(otherIDs) + 1
	perHead, err := EqualSplit(total, count)
	if err != nil {
		return nil, err
	}
	if !perHead.IsPositive() {
		return nil, models.NewValidationError("amount", fmt.Sprintf("%s is too small to split %d ways", total.StringFixed(2), count))
	}

	shares := make([]models.ShareInput, 0, count)
	for _, id := range otherIDs {
		shares = append(shares, models.ShareInput{UserID: id, Amount: perHead})
	}
	shares = append(shares, models.ShareInput{UserID: selfID, Amount: SelfRemainder(total, perHead, count)})
	return shares, nil
}

// NormalizeExpense applies defaults and checks every creation precondition,
// reconciliation last. It returns the normalized copy.
func NormalizeExpense(e models.NewGroupExpense) (models.NewGroupExpense, error) {
	e.Title = strings.TrimSpace(e.Title)
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))

	if e.Title == "" {
		return e, models.NewValidationError("title", "must not be empty")
	}
	if !e.Amount.IsPositive() {
		return e, models.NewValidationError("amount", "must be positive")
	}
	if e.PayerID <= 0 {
		return e, models.NewValidationError("payer_id", "is required")
	}
	if e.Date.IsZero() {
		return e, models.NewValidationError("date", "is required")
	}
	e.Date = CivilDate(e.Date)
	if e.Category == "" {
		e.Category = models.DefaultCategory
	}
	if e.Currency == "" {
		e.Currency = models.DefaultCurrency
	} else if !currencyPattern.MatchString(e.Currency) {
		return e, models.NewValidationError("currency", fmt.Sprintf("%q is not a 3-letter currency code", e.Currency))
	}
	if len(e.Shares) == 0 {
		return e, models.NewValidationError("shares", "at least one share is required")
	}

	seen := make(map[int64]bool, len(e.Shares))
	for _, s := range e.Shares {
		if s.UserID <= 0 {
			return e, models.NewValidationError("shares", "every share needs a user")
		}
		if seen[s.UserID] {
			return e, models.NewValidationError("shares", fmt.Sprintf("user %d has more than one share", s.UserID))
		}
		seen[s.UserID] = true
		if !s.Amount.IsPositive() {
			return e, models.NewValidationError("shares", fmt.Sprintf("share of user %d must be positive", s.UserID))
		}
	}

	if err := CheckShares(e.Amount, e.Shares); err != nil {
		return e, err
	}
	return e, nil
}

// CivilDate drops the time of day, keeping the calendar date in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError describes input the ledger refuses before any write.
type ValidationError struct {
	Field   string
	Message string

	// SharesTotal and ExpenseTotal are set when shares do not reconcile.
	SharesTotal  *decimal.Decimal
	ExpenseTotal *decimal.Decimal
}

func (e *ValidationError) Error() string {
	if e.SharesTotal != nil && e.ExpenseTotal != nil {
		return fmt.Sprintf("shares do not reconcile: shares total %s, expense amount %s",
			e.SharesTotal.StringFixed(2), e.ExpenseTotal.StringFixed(2))
	}
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// ValidationReason identifies which business rule a candidate transaction broke.
type ValidationReason string

const (
	ReasonInvalidDescription ValidationReason = "INVALID_DESCRIPTION"
	ReasonInvalidMonth       ValidationReason = "INVALID_MONTH"
	ReasonInvalidYear        ValidationReason = "INVALID_YEAR"
	ReasonMissingUser        ValidationReason = "MISSING_USER"
	ReasonInvalidValue       ValidationReason = "INVALID_VALUE"
	ReasonMissingType        ValidationReason = "MISSING_TYPE"
)

// ValidationError reports the first business rule a candidate transaction broke.
type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a candidate transaction against the business rules.
// It is a pure function: no I/O, no side effects. Checks run in a fixed
// order and stop at the first failure, so error messages are deterministic:
// description, month, year, user, value, type.
//
// Whether the user reference resolves to an existing user is checked at the
// boundary before conversion, not here.
func Validate(t *domain.Transaction) *ValidationError {
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Reason: ReasonInvalidDescription, Message: "a valid description is required"}
	}
	if t.Month < 1 || t.Month > 12 {
		return &ValidationError{Reason: ReasonInvalidMonth, Message: "month must be between 1 and 12"}
	}
	if t.Year < 1000 || t.Year > 9999 {
		return &ValidationError{Reason: ReasonInvalidYear, Message: "year must have exactly four digits"}
	}
	if t.UserID == 0 {
		return &ValidationError{Reason: ReasonMissingUser, Message: "a user is required"}
	}
	if t.Value.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Reason: ReasonInvalidValue, Message: "value must be greater than zero"}
	}
	if t.Type != domain.TransactionTypeIncome && t.Type != domain.TransactionTypeExpense {
		return &ValidationError{Reason: ReasonMissingType, Message: "a transaction type is required"}
	}
	return nil
}

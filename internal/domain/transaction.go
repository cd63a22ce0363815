package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines whether a transaction moves money in or out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// ParseTransactionType converts a string into a TransactionType.
// Unknown strings fail explicitly instead of producing a zero value.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeIncome:
		return TransactionTypeIncome, nil
	case TransactionTypeExpense:
		return TransactionTypeExpense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// TransactionStatus defines the lifecycle state of a transaction.
// Only SETTLED transactions count toward a user's balance.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSettled   TransactionStatus = "SETTLED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// ParseTransactionStatus converts a string into a TransactionStatus.
// Unknown strings fail explicitly instead of producing a zero value.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionStatusPending:
		return TransactionStatusPending, nil
	case TransactionStatusSettled:
		return TransactionStatusSettled, nil
	case TransactionStatusCancelled:
		return TransactionStatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown transaction status %q", s)
	}
}

// Transaction represents a single financial entry (income or expense)
// for a given month and year, owned by exactly one user.
type Transaction struct {
	ID          int64             `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	Description string            `db:"description" json:"description"` // Non-empty text
	Month       int               `db:"month" json:"month"`             // 1-12
	Year        int               `db:"year" json:"year"`               // Four digits
	Value       decimal.Decimal   `db:"value" json:"value"`             // Strictly positive, NUMERIC(20, 2) in DB
	Type        TransactionType   `db:"type" json:"type"`               // INCOME or EXPENSE
	Status      TransactionStatus `db:"status" json:"status"`           // PENDING, SETTLED or CANCELLED
	UserID      int64             `db:"user_id" json:"user_id"`         // Foreign key to User, required
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`   // Timestamp of record creation
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`   // Timestamp of last update
}

// NewTransaction creates a new Transaction instance.
// Status always starts as PENDING regardless of caller intent.
func NewTransaction(
	description string,
	month, year int,
	value decimal.Decimal,
	txType TransactionType,
	userID int64,
) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		Description: description,
		Month:       month,
		Year:        year,
		Value:       value,
		Type:        txType,
		Status:      TransactionStatusPending,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionFilter describes search criteria for transactions.
// All fields are optional except UserID; provided fields are AND-combined.
type TransactionFilter struct {
	Description string // Case-insensitive substring match when non-empty
	Month       *int   // Exact match when set
	Year        *int   // Exact match when set
	UserID      int64  // Mandatory
}

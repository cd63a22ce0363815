package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// Create adds a new transaction record using the provided DBExecutor.
	Create(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// Update overwrites the record matched by transaction.ID.
	Update(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// Delete permanently removes the record matched by id.
	Delete(ctx context.Context, q DBExecutor, id int64) error
	// GetByID retrieves a transaction by its ID.
	GetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)
	// FindByFilter retrieves all transactions matching the filter, ordered by ID.
	FindByFilter(ctx context.Context, q DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, error)
	// SumByTypeAndStatus returns the sum of values of a user's transactions
	// with the given type and status. Zero when no rows match.
	SumByTypeAndStatus(ctx context.Context, q DBExecutor, userID int64, txType domain.TransactionType, status domain.TransactionStatus) (decimal.Decimal, error)
}

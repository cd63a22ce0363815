package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
// It is stateless; every method receives the DBExecutor to run against.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// Create inserts a new transaction record and assigns its ID.
func (r *TransactionRepository) Create(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (description, month, year, value, type, status, user_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.Description,
		transaction.Month,
		transaction.Year,
		transaction.Value,
		transaction.Type,
		transaction.Status,
		transaction.UserID,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Update overwrites the record matched by transaction.ID.
func (r *TransactionRepository) Update(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `UPDATE transactions
              SET description = $1, month = $2, year = $3, value = $4, type = $5, status = $6, user_id = $7, updated_at = $8
              WHERE id = $9`

	result, err := q.ExecContext(ctx, query,
		transaction.Description,
		transaction.Month,
		transaction.Year,
		transaction.Value,
		transaction.Type,
		transaction.Status,
		transaction.UserID,
		transaction.UpdatedAt,
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating transaction %d: %w", transaction.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete permanently removes the record matched by id.
func (r *TransactionRepository) Delete(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting transaction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// GetByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT id, description, month, year, value, type, status, user_id, created_at, updated_at
              FROM transactions WHERE id = $1`
	err := q.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID %d: %w", id, err)
	}
	return &transaction, nil
}

// FindByFilter retrieves all of a user's transactions matching the filter.
// Provided criteria are AND-combined; description matches case-insensitively
// as a substring. Results are ordered by ID ascending (insertion order).
func (r *TransactionRepository) FindByFilter(ctx context.Context, q repository.DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT id, description, month, year, value, type, status, user_id, created_at, updated_at
              FROM transactions WHERE user_id = $1`
	args := []interface{}{filter.UserID}

	if filter.Description != "" {
		args = append(args, "%"+filter.Description+"%")
		query += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	query += " ORDER BY id"

	transactions := []domain.Transaction{}
	if err := q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find transactions for user %d: %w", filter.UserID, err)
	}
	return transactions, nil
}

// SumByTypeAndStatus returns the sum of values of a user's transactions with
// the given type and status. COALESCE keeps the no-rows case at zero.
func (r *TransactionRepository) SumByTypeAndStatus(ctx context.Context, q repository.DBExecutor, userID int64, txType domain.TransactionType, status domain.TransactionStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(value), 0) FROM transactions
              WHERE user_id = $1 AND type = $2 AND status = $3`
	err := q.GetContext(ctx, &sum, query, userID, txType, status)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s/%s transactions for user %d: %w", txType, status, userID, err)
	}
	return sum, nil
}

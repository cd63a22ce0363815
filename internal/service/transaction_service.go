package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// TransactionService defines the business logic for financial transactions.
type TransactionService interface {
	Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
	ChangeStatus(ctx context.Context, transaction *domain.Transaction, status domain.TransactionStatus) (*domain.Transaction, error)
	FindByFilter(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
	FindByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ComputeBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// Create validates and persists a new transaction. Status is forced to
// PENDING regardless of what the caller supplied.
func (s *transactionService) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if verr := Validate(transaction); verr != nil {
		return nil, verr
	}
	transaction.Status = domain.TransactionStatusPending

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create: transaction controller does not implement DBExecutor")
	}

	if err := s.transactionRepo.Create(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create: failed to persist transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Update re-validates and overwrites an existing transaction.
// The transaction must already carry its identifier.
func (s *transactionService) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == 0 {
		return nil, util.ErrMissingID
	}
	if verr := Validate(transaction); verr != nil {
		return nil, verr
	}
	transaction.UpdatedAt = time.Now().UTC()

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update: transaction controller does not implement DBExecutor")
	}

	if err := s.transactionRepo.Update(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("update: failed to persist transaction %d: %w", transaction.ID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Delete permanently removes a transaction. Existence is the caller's
// concern; a miss surfaces as the repository's not-found error.
func (s *transactionService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return util.ErrMissingID
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete: transaction controller does not implement DBExecutor")
	}

	if err := s.transactionRepo.Delete(ctx, txExecutor, id); err != nil {
		return fmt.Errorf("delete: failed to delete transaction %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete: failed to commit transaction: %w", err)
	}

	return nil
}

// ChangeStatus sets the status and delegates to Update, so the full record
// is re-validated. Any status may be set from any other; there is no
// transition table.
func (s *transactionService) ChangeStatus(ctx context.Context, transaction *domain.Transaction, status domain.TransactionStatus) (*domain.Transaction, error) {
	transaction.Status = status
	return s.Update(ctx, transaction)
}

// FindByFilter returns all of a user's transactions matching the filter,
// in insertion order.
func (s *transactionService) FindByFilter(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.UserID == 0 {
		return nil, util.ErrInvalidInput
	}

	transactions, err := s.transactionRepo.FindByFilter(ctx, s.dbExecutor, filter)
	if err != nil {
		return nil, fmt.Errorf("find: failed to query transactions: %w", err)
	}
	return transactions, nil
}

// FindByID returns the transaction or util.ErrNotFound. A miss is not a
// validation failure; the boundary decides how to answer it.
func (s *transactionService) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("find: failed to get transaction %d: %w", id, err)
	}
	return transaction, nil
}

// ComputeBalance returns settled income minus settled expense for a user.
// PENDING and CANCELLED transactions never count.
func (s *transactionService) ComputeBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	income, err := s.transactionRepo.SumByTypeAndStatus(ctx, s.dbExecutor, userID,
		domain.TransactionTypeIncome, domain.TransactionStatusSettled)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance: failed to sum income for user %d: %w", userID, err)
	}

	expense, err := s.transactionRepo.SumByTypeAndStatus(ctx, s.dbExecutor, userID,
		domain.TransactionTypeExpense, domain.TransactionStatusSettled)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance: failed to sum expense for user %d: %w", userID, err)
	}

	return income.Sub(expense), nil
}

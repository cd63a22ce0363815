package repository

import (
	"context"

	"fintrack/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByEmail retrieves a user by their e-mail address.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// ExistsByEmail reports whether a user with the given e-mail exists.
	ExistsByEmail(ctx context.Context, q DBExecutor, email string) (bool, error)
}

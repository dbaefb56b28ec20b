package repositories

import (
	"context"
	"errors"

	"beautyshop/internal/models"
)

// ErrUserNotFound is returned when a user lookup matches nothing.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned by Create when the username or email is taken.
var ErrDuplicateUser = errors.New("duplicate username or email")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsername retrieves a single user by their exact (case-sensitive) username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByRefreshTokenHash retrieves the user whose stored refresh token
	// hash equals tokenHash. At most one user can match at any time.
	FindByRefreshTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// SetRefreshTokenHash overwrites the user's stored refresh token hash.
	// Passing nil clears it, ending the user's session server-side.
	SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, tokenHash *string) error
}

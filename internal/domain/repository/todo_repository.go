// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTodoNotFound is a domain-specific error returned when a todo is not found.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines the standard operations for todo persistence.
type TodoRepository interface {
	// Create persists a new todo entity to the storage.
	Create(ctx context.Context, todo *entity.Todo) error

	// FindByID retrieves a single todo by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error)

	// ListByOwner retrieves every todo joined to userID through the
	// ownership relation, ascending by position, then by creation time.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error)

	// Update applies the non-nil fields of changes to the todo row.
	Update(ctx context.Context, id uuid.UUID, changes entity.TodoChanges) error

	// SetPosition updates only the todo's position.
	SetPosition(ctx context.Context, id uuid.UUID, position int) error

	// Delete removes the todo row.
	Delete(ctx context.Context, id uuid.UUID) error
}

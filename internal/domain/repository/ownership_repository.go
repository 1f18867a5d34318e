// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// OwnershipRepository manages the user-to-todo ownership relation. The
// relation is created atomically with the todo, never transferred, and is
// the sole basis for authorizing todo mutations. A todo without an
// ownership row is inaccessible to every user.
type OwnershipRepository interface {
	// Create links a todo to its owning user. Exactly one link per todo.
	Create(ctx context.Context, userID, todoID uuid.UUID) error

	// Exists reports whether userID owns todoID.
	Exists(ctx context.Context, userID, todoID uuid.UUID) (bool, error)

	// CountOwned returns how many of the given todo IDs are owned by
	// userID. Used to validate reorder batches in a single query.
	CountOwned(ctx context.Context, userID uuid.UUID, todoIDs []uuid.UUID) (int64, error)

	// DeleteByTodoID removes the ownership link for a todo, so no dangling
	// rows survive a todo deletion.
	DeleteByTodoID(ctx context.Context, todoID uuid.UUID) error
}

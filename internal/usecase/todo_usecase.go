// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateTodoInput defines the data required to create a todo.
type CreateTodoInput struct {
	Description string
}

// UpdateTodoInput carries a partial update. Nil fields are left untouched,
// so a request may change the description, the completed flag, or both.
type UpdateTodoInput struct {
	Description *string
	Completed   *bool
}

// ReorderItem identifies one todo at its new list position, which is the
// item's index within the batch.
type ReorderItem struct {
	TodoID uuid.UUID
}

// ReorderTodosInput carries the full desired ordering of the caller's list.
type ReorderTodosInput struct {
	Todos []ReorderItem
}

// --- Output DTOs ---

// TodoOutput returns a single todo.
type TodoOutput struct {
	Todo *entity.Todo
}

// TodoListOutput returns the caller's todos in display order.
type TodoListOutput struct {
	Todos []*entity.Todo
}

// TodoUsecase defines the interface for todo-related business operations.
// Every operation is scoped to the authenticated user: todos belonging to
// other users behave as if the caller is simply not authorized to touch them.
type TodoUsecase interface {
	CreateTodo(ctx context.Context, userID uuid.UUID, input *CreateTodoInput) (*TodoOutput, error)
	GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*TodoOutput, error)
	ListTodos(ctx context.Context, userID uuid.UUID) (*TodoListOutput, error)
	UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, input *UpdateTodoInput) error
	DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error
	ReorderTodos(ctx context.Context, userID uuid.UUID, input *ReorderTodosInput) error
}

// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface.
type todoService struct {
	txManager     repository.TransactionManager
	todoRepo      repository.TodoRepository
	ownershipRepo repository.OwnershipRepository
	logger        *slog.Logger
}

// TodoServiceParams holds dependencies for todoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	TodoRepo      repository.TodoRepository
	OwnershipRepo repository.OwnershipRepository
	Logger        *slog.Logger
}

// NewTodoService is the constructor for todoService. It receives all dependencies as interfaces.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		txManager:     params.TxManager,
		todoRepo:      params.TodoRepo,
		ownershipRepo: params.OwnershipRepo,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTodo creates a todo and its ownership link in one transaction, so a
// todo can never exist without an owner.
func (srv *todoService) CreateTodo(ctx context.Context, userID uuid.UUID, input *usecase.CreateTodoInput) (*usecase.TodoOutput, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, domainerrors.ErrEmptyDescription
	}

	newTodo := &entity.Todo{
		Description: input.Description,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		todoRepo := repoFactory.TodoRepo()

		// Append to the end of the owner's current list.
		existing, err := todoRepo.ListByOwner(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list todos for position")
		}
		newTodo.Position = len(existing)

		if err := todoRepo.Create(ctx, newTodo); err != nil {
			return errors.Wrap(err, "failed to create todo")
		}

		if err := repoFactory.OwnershipRepo().Create(ctx, userID, newTodo.ID); err != nil {
			return errors.Wrap(err, "failed to create ownership link")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute todo creation transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTodoCreationFailed, err.Error())
	}

	srv.log(ctx).Debug("Todo created", slog.Any("userID", userID), slog.Any("todoID", newTodo.ID))

	return &usecase.TodoOutput{Todo: newTodo}, nil
}

// GetTodo returns a single todo the caller owns. The ownership check runs
// first, so unowned and nonexistent IDs produce the same error.
func (srv *todoService) GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*usecase.TodoOutput, error) {
	if err := srv.requireOwnership(ctx, userID, todoID); err != nil {
		return nil, err
	}

	todo, err := srv.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			// An ownership row without its todo. Treat it like any other
			// inaccessible ID.
			return nil, domainerrors.ErrNotTodoOwner
		}
		srv.log(ctx).Error("Failed to find todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find todo")
	}

	return &usecase.TodoOutput{Todo: todo}, nil
}

// ListTodos returns the caller's todos in display order. Todos owned by
// other users, or by nobody, never appear.
func (srv *todoService) ListTodos(ctx context.Context, userID uuid.UUID) (*usecase.TodoListOutput, error) {
	todos, err := srv.todoRepo.ListByOwner(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list todos")
	}

	return &usecase.TodoListOutput{Todos: todos}, nil
}

// UpdateTodo applies a partial update to a todo the caller owns. The
// ownership check precedes any existence check, so a caller probing another
// user's todo learns nothing beyond "not authorized".
func (srv *todoService) UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, input *usecase.UpdateTodoInput) error {
	if err := srv.requireOwnership(ctx, userID, todoID); err != nil {
		return err
	}

	changes := entity.TodoChanges{
		Description: input.Description,
		Completed:   input.Completed,
	}
	if changes.Empty() {
		// Nothing to change is still a success.
		return nil
	}

	if changes.Description != nil && strings.TrimSpace(*changes.Description) == "" {
		return domainerrors.ErrEmptyDescription
	}

	if err := srv.todoRepo.Update(ctx, todoID, changes); err != nil {
		srv.log(ctx).Error("Failed to update todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update todo")
	}

	srv.log(ctx).Debug("Todo updated", slog.Any("userID", userID), slog.Any("todoID", todoID))

	return nil
}

// DeleteTodo removes a todo the caller owns together with its ownership link.
func (srv *todoService) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	if err := srv.requireOwnership(ctx, userID, todoID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.OwnershipRepo().DeleteByTodoID(ctx, todoID); err != nil {
			return errors.Wrap(err, "failed to delete ownership link")
		}

		if err := repoFactory.TodoRepo().Delete(ctx, todoID); err != nil {
			return errors.Wrap(err, "failed to delete todo")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute todo deletion transaction", slog.Any("todoID", todoID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute todo deletion transaction")
	}

	srv.log(ctx).Debug("Todo deleted", slog.Any("userID", userID), slog.Any("todoID", todoID))

	return nil
}

// ReorderTodos rewrites the caller's list order: each todo's new position is
// its index in the batch. Ownership of every ID is verified inside the same
// transaction before any position changes, and a single failure rolls the
// whole batch back, so the list never ends up partially reordered.
func (srv *todoService) ReorderTodos(ctx context.Context, userID uuid.UUID, input *usecase.ReorderTodosInput) error {
	if len(input.Todos) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(input.Todos))
	seen := make(map[uuid.UUID]struct{}, len(input.Todos))
	for _, item := range input.Todos {
		if _, dup := seen[item.TodoID]; dup {
			return domainerrors.ErrInvalidInput.WrapMessage("duplicate todo id in reorder batch")
		}
		seen[item.TodoID] = struct{}{}
		ids = append(ids, item.TodoID)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		owned, err := repoFactory.OwnershipRepo().CountOwned(ctx, userID, ids)
		if err != nil {
			return errors.Wrap(err, "failed to verify batch ownership")
		}
		if owned != int64(len(ids)) {
			return errors.WithStack(domainerrors.ErrNotTodoOwner)
		}

		todoRepo := repoFactory.TodoRepo()
		for i, id := range ids {
			if err := todoRepo.SetPosition(ctx, id, i); err != nil {
				return errors.Wrap(err, "failed to set todo position")
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotTodoOwner) {
			srv.log(ctx).Warn("Reorder rejected, batch contains unowned todo", slog.Any("userID", userID))

			return domainerrors.ErrNotTodoOwner
		}
		srv.log(ctx).Error("Failed to execute reorder transaction", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute reorder transaction")
	}

	srv.log(ctx).Debug("Todos reordered", slog.Any("userID", userID), slog.Int("count", len(ids)))

	return nil
}

// requireOwnership maps "not owned" and "does not exist" to the same error
// so responses reveal nothing about other users' todo IDs.
func (srv *todoService) requireOwnership(ctx context.Context, userID, todoID uuid.UUID) error {
	owned, err := srv.ownershipRepo.Exists(ctx, userID, todoID)
	if err != nil {
		return errors.Wrap(err, "failed to check ownership")
	}
	if !owned {
		srv.log(ctx).Warn("Ownership check failed", slog.Any("userID", userID), slog.Any("todoID", todoID))

		return domainerrors.ErrNotTodoOwner
	}

	return nil
}

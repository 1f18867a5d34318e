package postgres

import (
	"context"

	"tasklist/internal/domain/entity"
	"tasklist/internal/domain/repository"
	"tasklist/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a todo repository backed by the given GORM handle.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoModel := model.FromTodoEntity(todo)

	if err := r.db.WithContext(ctx).Create(todoModel).Error; err != nil {
		return errors.Wrap(err, "failed to create todo")
	}

	*todo = *todoModel.ToEntity()

	return nil
}

func (r *todoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error) {
	var todoModel model.TodoModel

	err := r.db.WithContext(ctx).First(&todoModel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrTodoNotFound)
		}

		return nil, errors.Wrap(err, "failed to find todo by id")
	}

	return todoModel.ToEntity(), nil
}

// ListByOwner joins through user_todos so todos with no ownership row never
// surface, and orders by position first so reordered lists come back in the
// order the user chose.
func (r *todoRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error) {
	var todoModels []model.TodoModel

	err := r.db.WithContext(ctx).
		Joins("JOIN user_todos ON user_todos.todo_id = todos.id").
		Where("user_todos.user_id = ?", userID).
		Order("todos.position ASC, todos.created_at ASC").
		Find(&todoModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos by owner")
	}

	todos := make([]*entity.Todo, 0, len(todoModels))
	for i := range todoModels {
		todos = append(todos, todoModels[i].ToEntity())
	}

	return todos, nil
}

func (r *todoRepository) Update(ctx context.Context, id uuid.UUID, changes entity.TodoChanges) error {
	if changes.Empty() {
		return nil
	}

	columns := make(map[string]any, 2)
	if changes.Description != nil {
		columns["description"] = *changes.Description
	}
	if changes.Completed != nil {
		columns["completed"] = *changes.Completed
	}

	result := r.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update todo")
	}

	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrTodoNotFound)
	}

	return nil
}

func (r *todoRepository) SetPosition(ctx context.Context, id uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ?", id).
		Update("position", position)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update todo position")
	}

	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrTodoNotFound)
	}

	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TodoModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete todo")
	}

	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrTodoNotFound)
	}

	return nil
}

package postgres

import (
	"context"

	"tasklist/internal/domain/repository"
	"tasklist/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ownershipRepository struct {
	db *gorm.DB
}

// NewOwnershipRepository creates an ownership repository backed by the given GORM handle.
func NewOwnershipRepository(db *gorm.DB) repository.OwnershipRepository {
	return &ownershipRepository{db: db}
}

func (r *ownershipRepository) Create(ctx context.Context, userID, todoID uuid.UUID) error {
	link := model.UserTodoModel{
		UserID: userID,
		TodoID: todoID,
	}

	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "todo is already owned")
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(err, "user or todo does not exist")
		}

		return errors.Wrap(err, "failed to create ownership link")
	}

	return nil
}

func (r *ownershipRepository) Exists(ctx context.Context, userID, todoID uuid.UUID) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.UserTodoModel{}).
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check ownership")
	}

	return count > 0, nil
}

func (r *ownershipRepository) CountOwned(ctx context.Context, userID uuid.UUID, todoIDs []uuid.UUID) (int64, error) {
	if len(todoIDs) == 0 {
		return 0, nil
	}

	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.UserTodoModel{}).
		Where("user_id = ? AND todo_id IN ?", userID, todoIDs).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count owned todos")
	}

	return count, nil
}

func (r *ownershipRepository) DeleteByTodoID(ctx context.Context, todoID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Delete(&model.UserTodoModel{}, "todo_id = ?", todoID).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete ownership link")
	}

	return nil
}

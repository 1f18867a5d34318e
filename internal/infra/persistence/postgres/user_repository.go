package postgres

import (
	"context"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by the given GORM handle.
// The handle may be a plain connection or a transaction.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.FromUserEntity(user)

	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(domainerrors.ErrUsernameTaken)
		}

		return errors.Wrap(err, "failed to create user")
	}

	// Write back generated fields such as the id and timestamps.
	*user = *userModel.ToEntity()

	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.UserModel

	err := r.db.WithContext(ctx).First(&userModel, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return userModel.ToEntity(), nil
}

func (r *userRepository) FindByRefreshTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	var userModel model.UserModel

	err := r.db.WithContext(ctx).First(&userModel, "refresh_token_hash = ?", tokenHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by refresh token hash")
	}

	return userModel.ToEntity(), nil
}

// SetRefreshTokenHash stores the hash of the user's current refresh token.
// Passing nil clears the stored hash, ending the user's session.
func (r *userRepository) SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, tokenHash *string) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update refresh token hash")
	}

	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	return nil
}

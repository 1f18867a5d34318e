// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account from a unique username and a password.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.log(ctx).Warn("Registration rejected, username taken", slog.String("username", input.Username))

			return nil, domainerrors.ErrUsernameTaken
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies credentials and issues a fresh token pair. The new refresh
// token replaces whatever the user held before, so earlier sessions stop
// refreshing the moment this one starts.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password so the response never reveals
			// whether the username exists.
			srv.log(ctx).Warn("Login failed, unknown username", slog.String("username", input.Username))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	refreshTokenHash := srv.tokenService.HashToken(refreshToken)
	if err := srv.userRepo.SetRefreshTokenHash(ctx, user.ID, &refreshTokenHash); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated. A token that verifies cryptographically but no
// longer matches the user's stored value has been superseded by a newer login
// or a logout and is rejected.
func (srv *userService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	userID, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh rejected, token failed verification", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenStale
	}

	// The stored hash identifies at most one user. A token that verifies
	// cryptographically but matches no stored hash was superseded by a
	// newer login or cleared by logout.
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	user, err := srv.userRepo.FindByRefreshTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Refresh rejected, token superseded", slog.Any("userID", userID))

			return nil, domainerrors.ErrRefreshTokenStale
		}

		return nil, errors.Wrap(err, "failed to find user by refresh token hash")
	}

	if user.ID != userID {
		srv.log(ctx).Warn("Refresh rejected, token subject mismatch", slog.Any("userID", userID))

		return nil, domainerrors.ErrRefreshTokenStale
	}

	newAccessToken, err := srv.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	srv.log(ctx).Debug("Access token refreshed", slog.Any("userID", userID))

	return &usecase.RefreshOutput{AccessToken: newAccessToken}, nil
}

// Logout ends the user's session by clearing the stored refresh token hash.
// The operation is idempotent: logging out twice is still a success.
func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Attempting to log out", slog.Any("userID", userID))

	if err := srv.userRepo.SetRefreshTokenHash(ctx, userID, nil); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The access token outlived the account. Nothing to invalidate.
			return nil
		}
		srv.log(ctx).Error("Failed to clear refresh token", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Info("Successfully logged out", slog.Any("userID", userID))

	return nil
}

// Package impl contains the implementations of the usecase interfaces.
package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Signup orchestrates the complete registration process: uniqueness check,
// password hashing, user creation and token issuance.
func (srv *userService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Starting signup", "email", input.Email)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during signup", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	var registeredUser *entity.User

	// The uniqueness check and the insert run in one transaction so two
	// concurrent signups for the same email cannot both pass the check.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			// A user record was found, the email is taken.
			return domainerrors.ErrEmailTaken.WrapMessage("signup failed")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		newUser := &entity.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Role:         entity.RoleUser,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			// The unique index is the last word when two signups race.
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailTaken.WrapMessage("signup failed")
			}

			return errors.WithStack(err)
		}
		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.logger.Warn("Signup failed", "email", input.Email, "error", err.Error())

		return nil, err
	}

	token, err := srv.tokenService.GenerateToken(registeredUser.ID, registeredUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	srv.logger.Debug("User signed up successfully", "userID", registeredUser.ID)

	return &usecase.AuthOutput{Token: token, User: registeredUser}, nil
}

// Login verifies the credentials and issues a fresh session token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.logger.Debug("Starting login", "email", input.Email)

	var loggedInUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// Unknown email is reported as not-found, distinct from a
				// wrong password.
				return domainerrors.ErrUserNotFound.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		loggedInUser = user

		return nil
	})
	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err.Error())

		return nil, err
	}

	token, err := srv.tokenService.GenerateToken(loggedInUser.ID, loggedInUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	srv.logger.Debug("User logged in successfully", "userID", loggedInUser.ID)

	return &usecase.AuthOutput{Token: token, User: loggedInUser}, nil
}

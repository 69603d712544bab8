package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(txManager, hasher, tokenService, newDiscardLogger())

	return userServiceFixtures{
		service:      service,
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Signup_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrUserNotFound)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.tokenService.EXPECT().
		GenerateToken(mock.AnythingOfType("uuid.UUID"), entity.RoleUser).
		Return("signed.jwt.token", nil)

	output, err := fx.service.Signup(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, entity.RoleUser, output.User.Role)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
}

func TestUserService_Signup_EmailTaken(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "password123",
	}

	existing := &entity.User{ID: uuid.New(), Email: input.Email}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(existing, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Signup_DuplicateRace(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Name:     "Test User",
		Email:    "race@example.com",
		Password: "password123",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	// The pre-check passes but the insert loses the race to another signup
	// and trips the unique index.
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrUserNotFound)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Return(repository.ErrDuplicateEmail)

			return fn(mockFactory)
		})

	output, err := fx.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "password123",
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        input.Email,
		PasswordHash: "hashed_password",
		Role:         entity.RoleAdmin,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(user, nil)

			fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(true)

			return fn(mockFactory)
		})

	fx.tokenService.EXPECT().
		GenerateToken(user.ID, entity.RoleAdmin).
		Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrUserNotFound)

			return fn(mockFactory)
		})

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong",
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed_password",
		Role:         entity.RoleUser,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(user, nil)

			fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(false)

			return fn(mockFactory)
		})

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

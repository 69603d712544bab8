package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	txManager   *mockRepo.MockTransactionManager
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewCartService(txManager, cartRepo, productRepo, newDiscardLogger())

	return cartServiceFixtures{
		service:     service,
		txManager:   txManager,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func testProduct(name string, price string) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: 10,
	}
}

func TestCartService_GetCart_NoCartYet(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(nil, repository.ErrCartNotFound)

	resolved, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, userID, resolved.UserID)
	assert.Empty(t, resolved.Lines)
	assert.True(t, resolved.Subtotal.IsZero())
}

func TestCartService_GetCart_ResolvesLinesAndSubtotal(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	mouse := testProduct("Wireless Mouse", "10.00")
	keyboard := testProduct("Mechanical Keyboard", "2.50")

	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Lines: []entity.CartLine{
			{ProductID: mouse.ID, Quantity: 2},
			{ProductID: keyboard.ID, Quantity: 1},
		},
	}

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)

	fx.productRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{mouse.ID, keyboard.ID}).
		Return(map[uuid.UUID]*entity.Product{mouse.ID: mouse, keyboard.ID: keyboard}, nil)

	resolved, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	require.Len(t, resolved.Lines, 2)
	assert.Equal(t, "22.5", resolved.Subtotal.String())
}

func TestCartService_GetCart_DropsVanishedProducts(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	mouse := testProduct("Wireless Mouse", "10.00")
	goneID := uuid.New()

	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Lines: []entity.CartLine{
			{ProductID: mouse.ID, Quantity: 1},
			{ProductID: goneID, Quantity: 3},
		},
	}

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)

	// The second line's product was deleted from the catalog.
	fx.productRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{mouse.ID, goneID}).
		Return(map[uuid.UUID]*entity.Product{mouse.ID: mouse}, nil)

	resolved, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	require.Len(t, resolved.Lines, 1)
	assert.Equal(t, mouse.ID, resolved.Lines[0].Product.ID)
	assert.Equal(t, "10", resolved.Subtotal.String())
}

func TestCartService_AddToCart_CreatesCartLazily(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	mouse := testProduct("Wireless Mouse", "24.99")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, mouse.ID).
				Return(mouse, nil)

			mockCartRepo.EXPECT().
				FindByUserID(ctx, userID).
				Return(nil, repository.ErrCartNotFound)

			mockCartRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Cart")).
				Run(func(ctx context.Context, cart *entity.Cart) {
					cart.ID = uuid.New()
				}).
				Return(nil)

			mockCartRepo.EXPECT().
				Save(ctx, mock.AnythingOfType("*entity.Cart")).
				Return(nil)

			return fn(mockFactory)
		})

	fx.productRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{mouse.ID}).
		Return(map[uuid.UUID]*entity.Product{mouse.ID: mouse}, nil)

	resolved, err := fx.service.AddToCart(ctx, userID, mouse.ID)

	require.NoError(t, err)
	require.Len(t, resolved.Lines, 1)
	assert.Equal(t, 1, resolved.Lines[0].Quantity)
	assert.Equal(t, "24.99", resolved.Subtotal.String())
}

func TestCartService_AddToCart_MergesExistingLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	mouse := testProduct("Wireless Mouse", "24.99")

	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Lines:  []entity.CartLine{{ProductID: mouse.ID, Quantity: 1}},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, mouse.ID).
				Return(mouse, nil)

			mockCartRepo.EXPECT().
				FindByUserID(ctx, userID).
				Return(cart, nil)

			mockCartRepo.EXPECT().
				Save(ctx, mock.AnythingOfType("*entity.Cart")).
				Run(func(ctx context.Context, saved *entity.Cart) {
					require.Len(t, saved.Lines, 1)
					assert.Equal(t, 2, saved.Lines[0].Quantity)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.productRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{mouse.ID}).
		Return(map[uuid.UUID]*entity.Product{mouse.ID: mouse}, nil)

	resolved, err := fx.service.AddToCart(ctx, userID, mouse.ID)

	require.NoError(t, err)
	require.Len(t, resolved.Lines, 1)
	assert.Equal(t, 2, resolved.Lines[0].Quantity)
	assert.Equal(t, "49.98", resolved.Subtotal.String())
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(nil, repository.ErrProductNotFound)

			return fn(mockFactory)
		})

	resolved, err := fx.service.AddToCart(ctx, userID, productID)

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_RemoveFromCart_DropsLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	mouse := testProduct("Wireless Mouse", "24.99")
	keyboard := testProduct("Mechanical Keyboard", "89.90")

	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Lines: []entity.CartLine{
			{ProductID: mouse.ID, Quantity: 2},
			{ProductID: keyboard.ID, Quantity: 1},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			mockCartRepo.EXPECT().
				FindByUserID(ctx, userID).
				Return(cart, nil)

			mockCartRepo.EXPECT().
				Save(ctx, mock.AnythingOfType("*entity.Cart")).
				Run(func(ctx context.Context, saved *entity.Cart) {
					require.Len(t, saved.Lines, 1)
					assert.Equal(t, keyboard.ID, saved.Lines[0].ProductID)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.productRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{keyboard.ID}).
		Return(map[uuid.UUID]*entity.Product{keyboard.ID: keyboard}, nil)

	resolved, err := fx.service.RemoveFromCart(ctx, userID, mouse.ID)

	require.NoError(t, err)
	require.Len(t, resolved.Lines, 1)
	assert.Equal(t, "89.9", resolved.Subtotal.String())
}

func TestCartService_RemoveFromCart_NoCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			mockCartRepo.EXPECT().
				FindByUserID(ctx, userID).
				Return(nil, repository.ErrCartNotFound)

			return fn(mockFactory)
		})

	resolved, err := fx.service.RemoveFromCart(ctx, userID, productID)

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}

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

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service     usecase.ProductUsecase
	productRepo *mockRepo.MockProductRepository
}

func createTestProductService(t *testing.T) productServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewProductService(productRepo, newDiscardLogger())

	return productServiceFixtures{
		service:     service,
		productRepo: productRepo,
	}
}

func TestProductService_ListProducts(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	products := []*entity.Product{
		testProduct("Wireless Mouse", "24.99"),
		testProduct("Mechanical Keyboard", "89.90"),
	}

	fx.productRepo.EXPECT().List(ctx).Return(products, nil)

	got, err := fx.service.ListProducts(ctx)

	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, id).
		Return(nil, repository.ErrProductNotFound)

	got, err := fx.service.GetProduct(ctx, id)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	input := &usecase.ProductInput{
		Name:        "USB-C Hub",
		Price:       decimal.RequireFromString("39.50"),
		Description: "Seven-port hub",
		Stock:       80,
	}

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(ctx context.Context, product *entity.Product) {
			product.ID = uuid.New()
		}).
		Return(nil)

	got, err := fx.service.CreateProduct(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, input.Name, got.Name)
	assert.True(t, input.Price.Equal(got.Price))
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestProductService_CreateProduct_NegativePrice(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	input := &usecase.ProductInput{
		Name:  "Broken Listing",
		Price: decimal.RequireFromString("-1.00"),
	}

	got, err := fx.service.CreateProduct(ctx, input)

	require.Error(t, err)
	assert.Nil(t, got)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, "price must not be negative", appErr.Details())
}

func TestProductService_UpdateProduct_Success(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()
	input := &usecase.ProductInput{
		Name:  "Wireless Mouse v2",
		Price: decimal.RequireFromString("29.99"),
		Stock: 50,
	}

	stored := &entity.Product{
		ID:    id,
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	}

	fx.productRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, id).
		Return(stored, nil)

	got, err := fx.service.UpdateProduct(ctx, id, input)

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()
	input := &usecase.ProductInput{
		Name:  "Wireless Mouse v2",
		Price: decimal.RequireFromString("29.99"),
	}

	fx.productRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Product")).
		Return(repository.ErrProductNotFound)

	got, err := fx.service.UpdateProduct(ctx, id, input)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().
		Delete(ctx, id).
		Return(repository.ErrProductNotFound)

	err := fx.service.DeleteProduct(ctx, id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

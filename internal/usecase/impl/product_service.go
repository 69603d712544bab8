package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(productRepo repository.ProductRepository, logger *slog.Logger) usecase.ProductUsecase {
	return &productService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("get product failed")
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

func (srv *productService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.logger.Info("Product created", "productID", product.ID, "name", product.Name)

	return product, nil
}

func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
	}
	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("update product failed")
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	// Re-read so the response carries the stored timestamps.
	updated, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload updated product")
	}
	srv.logger.Info("Product updated", "productID", id)

	return updated, nil
}

func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("delete product failed")
		}

		return errors.Wrap(err, "failed to delete product")
	}
	srv.logger.Info("Product deleted", "productID", id)

	return nil
}

// validateProductInput covers the numeric rules the struct tags cannot
// express for decimal fields.
func validateProductInput(input *usecase.ProductInput) error {
	if input.Price.IsNegative() {
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}
	if input.Stock < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	}

	return nil
}

package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput defines the catalog fields an admin can set. The same shape
// serves create and full update.
type ProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
}

// ProductUsecase defines the interface for catalog operations. Reads are
// public; mutations are reachable only through the admin-gated routes.
type ProductUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

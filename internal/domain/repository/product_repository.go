package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product exists for the given id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products for the given ids, keyed by id.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error)

	// List returns all catalog products.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the checkout operation.
type OrderUsecase interface {
	// PlaceOrder snapshots the user's cart into an immutable order priced at
	// the current catalog prices and clears the cart, atomically.
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error)
}

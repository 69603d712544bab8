package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartMutationInput carries the product reference for cart add/remove calls.
type CartMutationInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// CartUsecase defines the cart operations for the authenticated user. Every
// operation returns the one normalized resolved-cart shape.
type CartUsecase interface {
	// GetCart returns the user's resolved cart. When no cart record exists an
	// empty resolved cart is returned and nothing is persisted.
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.ResolvedCart, error)

	// AddToCart lazily creates the cart and merges the product in: an existing
	// line is incremented by 1, otherwise a new line with quantity 1 appears.
	AddToCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.ResolvedCart, error)

	// RemoveFromCart drops the whole line for the product. A user without a
	// cart gets a not-found failure; removing an absent product is a no-op.
	RemoveFromCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.ResolvedCart, error)
}

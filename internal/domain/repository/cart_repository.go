package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when the user has no cart record yet.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines persistence for the per-user cart.
type CartRepository interface {
	// FindByUserID retrieves the user's cart, including its lines.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Create persists a new, possibly empty, cart for a user.
	Create(ctx context.Context, cart *entity.Cart) error

	// Save replaces the cart's line set with the entity's current lines.
	Save(ctx context.Context, cart *entity.Cart) error
}

package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// OrderRepository defines persistence for order snapshots. Orders are
// write-once: there is no update operation.
type OrderRepository interface {
	// Create persists a new order with its line snapshot.
	Create(ctx context.Context, order *entity.Order) error
}

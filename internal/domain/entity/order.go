package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a cart at checkout time. Line prices and
// the total are frozen when the order is created and never re-derived from the
// catalog afterwards.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Lines      []OrderLine     `json:"lines"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// OrderLine snapshots one cart line, keeping the product name and unit price
// as they were at checkout.
type OrderLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

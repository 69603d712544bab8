package model

import (
	"time"

	"github.com/google/uuid"
)

// CartModel mirrors the 'carts' table. The unique user id enforces the
// one-cart-per-user invariant at the storage level.
type CartModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []CartLineModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartLineModel mirrors the 'cart_lines' table. The composite primary key
// keeps a product to a single line per cart.
type CartLineModel struct {
	CartID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}

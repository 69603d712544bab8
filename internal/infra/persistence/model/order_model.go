package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Rows are written once at checkout
// and never updated.
type OrderModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt  time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table. Name and unit price are
// snapshots of the product at checkout time.
type OrderLineModel struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}

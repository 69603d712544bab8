package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"type:text"`
	Stock       int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

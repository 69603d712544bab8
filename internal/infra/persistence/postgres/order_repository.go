package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its line snapshot.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	orderM := toOrderModel(order)
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt

	return nil
}

func toOrderModel(o *entity.Order) *model.OrderModel {
	lineMs := make([]model.OrderLineModel, 0, len(o.Lines))
	for _, line := range o.Lines {
		lineMs = append(lineMs, model.OrderLineModel{
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	return &model.OrderModel{
		ID:         o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		Lines:      lineMs,
	}
}

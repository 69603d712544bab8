package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(txManager repository.TransactionManager, logger *slog.Logger) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		logger:    logger,
	}
}

// PlaceOrder snapshots the cart into an order and clears the cart. Both
// writes run in one transaction, so a failure never records an order while
// leaving the cart full, or the reverse.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	srv.logger.Info("Starting checkout", "userID", userID)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()
		orderRepo := repoFactory.NewOrderRepository()

		cart, err := cartRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartNotFound.WrapMessage("checkout failed")
			}

			return errors.Wrap(err, "failed to load cart")
		}

		ids := make([]uuid.UUID, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			ids = append(ids, line.ProductID)
		}
		products, err := productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return errors.Wrap(err, "failed to resolve cart products")
		}

		// Freeze name and unit price per line at checkout time. Lines whose
		// product left the catalog contribute nothing to the order.
		lines := make([]entity.OrderLine, 0, len(cart.Lines))
		total := decimal.Zero
		for _, line := range cart.Lines {
			product, ok := products[line.ProductID]
			if !ok {
				continue
			}
			lines = append(lines, entity.OrderLine{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		if len(lines) == 0 {
			return domainerrors.ErrCartEmpty.WrapMessage("checkout failed")
		}

		order = &entity.Order{
			UserID:     userID,
			Lines:      lines,
			TotalPrice: total,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.WithStack(err)
		}

		cart.Lines = nil

		return errors.WithStack(cartRepo.Save(ctx, cart))
	})
	if err != nil {
		srv.logger.Warn("Checkout failed", "userID", userID, "error", err.Error())

		return nil, err
	}
	srv.logger.Info("Order placed", "userID", userID, "orderID", order.ID, "total", order.TotalPrice)

	return order, nil
}

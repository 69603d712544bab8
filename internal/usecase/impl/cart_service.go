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

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	txManager repository.TransactionManager,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		txManager:   txManager,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the resolved cart without creating a record for users who
// have never added anything.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.ResolvedCart, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return entity.EmptyResolvedCart(userID), nil
		}

		return nil, errors.Wrap(err, "failed to load cart")
	}

	return srv.resolve(ctx, srv.productRepo, cart)
}

// AddToCart merges the product into the user's cart, creating the cart lazily.
func (srv *cartService) AddToCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.ResolvedCart, error) {
	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()

		// Adding requires an existing catalog product to resolve against.
		if _, err := productRepo.FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("add to cart failed")
			}

			return errors.Wrap(err, "failed to check product")
		}

		found, err := cartRepo.FindByUserID(ctx, userID)
		switch {
		case err == nil:
			cart = found
		case errors.Is(err, repository.ErrCartNotFound):
			cart = &entity.Cart{UserID: userID}
			if err := cartRepo.Create(ctx, cart); err != nil {
				return errors.WithStack(err)
			}
		default:
			return errors.Wrap(err, "failed to load cart")
		}

		cart.AddProduct(productID)

		return errors.WithStack(cartRepo.Save(ctx, cart))
	})
	if err != nil {
		srv.logger.Warn("Add to cart failed", "userID", userID, "productID", productID, "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("Product added to cart", "userID", userID, "productID", productID)

	return srv.resolve(ctx, srv.productRepo, cart)
}

// RemoveFromCart drops the product's line entirely. Quantity is not
// decremented.
func (srv *cartService) RemoveFromCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.ResolvedCart, error) {
	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		found, err := cartRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartNotFound.WrapMessage("remove from cart failed")
			}

			return errors.Wrap(err, "failed to load cart")
		}
		cart = found

		cart.RemoveProduct(productID)

		return errors.WithStack(cartRepo.Save(ctx, cart))
	})
	if err != nil {
		srv.logger.Warn("Remove from cart failed", "userID", userID, "productID", productID, "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("Product removed from cart", "userID", userID, "productID", productID)

	return srv.resolve(ctx, srv.productRepo, cart)
}

// resolve expands product references to full records and prices the cart at
// current catalog prices. Lines whose product has vanished from the catalog
// are dropped from the resolved view.
func (srv *cartService) resolve(ctx context.Context, productRepo repository.ProductRepository, cart *entity.Cart) (*entity.ResolvedCart, error) {
	ids := make([]uuid.UUID, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve cart products")
	}

	resolved := &entity.ResolvedCart{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Lines:    make([]entity.ResolvedCartLine, 0, len(cart.Lines)),
		Subtotal: decimal.Zero,
	}
	for _, line := range cart.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		resolved.Lines = append(resolved.Lines, entity.ResolvedCartLine{
			Product:  product,
			Quantity: line.Quantity,
		})
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		resolved.Subtotal = resolved.Subtotal.Add(lineTotal)
	}

	return resolved, nil
}

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

// cartRepository implements the repository.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByUserID retrieves the user's cart with its lines.
func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Lines").
		First(&cartM, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user id")
	}

	return toCartDomain(&cartM), nil
}

// Create persists a new cart for a user.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}

	cartM := toCartModel(cart)
	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		return errors.Wrap(err, "failed to create cart")
	}

	return nil
}

// Save replaces the stored line set with the entity's current lines. Callers
// mutating the cart run this through the transaction manager so the delete
// and re-insert land atomically.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	db := repo.db.WithContext(ctx)

	if err := db.Delete(&model.CartLineModel{}, "cart_id = ?", cart.ID).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart lines")
	}

	if len(cart.Lines) > 0 {
		lineMs := make([]model.CartLineModel, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			lineMs = append(lineMs, model.CartLineModel{
				CartID:    cart.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		if err := db.Create(&lineMs).Error; err != nil {
			return errors.Wrap(err, "failed to save cart lines")
		}
	}

	// Touch the cart row so updated_at reflects the mutation.
	if err := db.Model(&model.CartModel{}).Where("id = ?", cart.ID).
		Update("user_id", cart.UserID).Error; err != nil {
		return errors.Wrap(err, "failed to touch cart")
	}

	return nil
}

func toCartDomain(m *model.CartModel) *entity.Cart {
	lines := make([]entity.CartLine, 0, len(m.Lines))
	for _, lineM := range m.Lines {
		lines = append(lines, entity.CartLine{
			ProductID: lineM.ProductID,
			Quantity:  lineM.Quantity,
		})
	}

	return &entity.Cart{
		ID:     m.ID,
		UserID: m.UserID,
		Lines:  lines,
	}
}

func toCartModel(c *entity.Cart) *model.CartModel {
	lineMs := make([]model.CartLineModel, 0, len(c.Lines))
	for _, line := range c.Lines {
		lineMs = append(lineMs, model.CartLineModel{
			CartID:    c.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return &model.CartModel{
		ID:     c.ID,
		UserID: c.UserID,
		Lines:  lineMs,
	}
}

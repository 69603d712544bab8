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

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs retrieves products for the given ids, keyed by id. Missing ids are
// simply absent from the result map.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	result := make(map[uuid.UUID]*entity.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var productMs []model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	for i := range productMs {
		result[productMs[i].ID] = toProductDomain(&productMs[i])
	}

	return result, nil
}

// List returns all catalog products ordered by creation time.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	if err := repo.db.WithContext(ctx).Order("created_at").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	productM := toProductModel(product)
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return errors.Wrap(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := toProductModel(product)
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        productM.Name,
			"price":       productM.Price,
			"description": productM.Description,
			"stock":       productM.Stock,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by id.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func toProductDomain(m *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Stock:       m.Stock,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toProductModel(p *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
	}
}

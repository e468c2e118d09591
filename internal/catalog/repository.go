package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
)

// Repository exposes the customer-facing read paths over the menu tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListActiveCategories returns visible categories in display order.
func (r *Repository) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListActiveProductsByCategory returns visible products for one category,
// ordered by name.
func (r *Repository) ListActiveProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindActiveProduct loads one visible product without associations.
func (r *Repository) FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// LoadProductOptionGroups returns the option groups attached to the product,
// options included, both levels sorted by display order.
func (r *Repository) LoadProductOptionGroups(ctx context.Context, productID uuid.UUID) ([]models.OptionGroup, error) {
	var groups []models.OptionGroup
	err := r.db.WithContext(ctx).
		Joins("JOIN product_option_groups pog ON pog.option_group_id = option_groups.id").
		Where("pog.product_id = ?", productID).
		Order("option_groups.display_order ASC, option_groups.name ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.display_order ASC, options.name ASC")
		}).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
)

// Repository wires together product, option group, and option persistence.
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

// CreateProduct inserts the product without touching associations.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("OptionGroups").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct persists all scalar fields of the product.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("OptionGroups").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product and its option group links.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&models.ProductOptionGroup{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindProductByID loads the product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns every product ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceOptionGroups swaps the product's option group links for the given
// set.
func (r *Repository) ReplaceOptionGroups(ctx context.Context, productID uuid.UUID, groupIDs []uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductOptionGroup{}).Error; err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return nil
	}
	links := make([]models.ProductOptionGroup, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		links = append(links, models.ProductOptionGroup{ProductID: productID, OptionGroupID: groupID})
	}
	return tx.Create(&links).Error
}

// ListOptionGroupIDs returns the IDs of groups linked to the product.
func (r *Repository) ListOptionGroupIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.ProductOptionGroup{}).
		Where("product_id = ?", productID).
		Pluck("option_group_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateOptionGroup inserts the group without options.
func (r *Repository) CreateOptionGroup(ctx context.Context, group *models.OptionGroup) (*models.OptionGroup, error) {
	if err := r.db.WithContext(ctx).Omit("Options").Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateOptionGroup persists all scalar fields of the group.
func (r *Repository) UpdateOptionGroup(ctx context.Context, group *models.OptionGroup) (*models.OptionGroup, error) {
	if err := r.db.WithContext(ctx).Omit("Options").Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteOptionGroup removes the group, its options, and any product links.
func (r *Repository) DeleteOptionGroup(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("option_group_id = ?", id).Delete(&models.ProductOptionGroup{}).Error; err != nil {
		return err
	}
	if err := tx.Where("group_id = ?", id).Delete(&models.Option{}).Error; err != nil {
		return err
	}
	result := tx.Delete(&models.OptionGroup{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindOptionGroupByID loads the group with its options in display order.
func (r *Repository) FindOptionGroupByID(ctx context.Context, id uuid.UUID) (*models.OptionGroup, error) {
	var group models.OptionGroup
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.display_order ASC, options.name ASC")
		}).
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListOptionGroups returns every group with options, ordered by name.
func (r *Repository) ListOptionGroups(ctx context.Context) ([]models.OptionGroup, error) {
	var groups []models.OptionGroup
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.display_order ASC, options.name ASC")
		}).
		Order("name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateOption inserts the option.
func (r *Repository) CreateOption(ctx context.Context, option *models.Option) (*models.Option, error) {
	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// UpdateOption persists all fields of the option.
func (r *Repository) UpdateOption(ctx context.Context, option *models.Option) (*models.Option, error) {
	if err := r.db.WithContext(ctx).Save(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// DeleteOption removes the option.
func (r *Repository) DeleteOption(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Option{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindOptionByID loads one option.
func (r *Repository) FindOptionByID(ctx context.Context, id uuid.UUID) (*models.Option, error) {
	var option models.Option
	if err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// CountOptionGroups returns how many of the given group IDs exist.
func (r *Repository) CountOptionGroups(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OptionGroup{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

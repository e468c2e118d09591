package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

// Service exposes admin product and option management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	SetProductOptionGroups(ctx context.Context, productID uuid.UUID, groupIDs []uuid.UUID) (*ProductDTO, error)

	CreateOptionGroup(ctx context.Context, input CreateOptionGroupInput) (*OptionGroupDTO, error)
	UpdateOptionGroup(ctx context.Context, groupID uuid.UUID, input UpdateOptionGroupInput) (*OptionGroupDTO, error)
	DeleteOptionGroup(ctx context.Context, groupID uuid.UUID) error
	GetOptionGroup(ctx context.Context, groupID uuid.UUID) (*OptionGroupDTO, error)
	ListOptionGroups(ctx context.Context) ([]OptionGroupDTO, error)

	CreateOption(ctx context.Context, groupID uuid.UUID, input CreateOptionInput) (*OptionDTO, error)
	UpdateOption(ctx context.Context, optionID uuid.UUID, input UpdateOptionInput) (*OptionDTO, error)
	DeleteOption(ctx context.Context, optionID uuid.UUID) error
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo         *Repository
	txRunner     txRunner
	categoryRepo categoryLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, runner txRunner, categoryRepo categoryLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if runner == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, txRunner: runner, categoryRepo: categoryRepo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	dto := newProductDTO(*created, nil)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = name
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
		}
		product.BasePrice = *input.BasePrice
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return s.productDTOWithGroups(ctx, *updated)
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteProduct(ctx, productID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.productDTOWithGroups(ctx, *product)
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		groupIDs, err := s.repo.ListOptionGroupIDs(ctx, product.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product option groups")
		}
		out = append(out, newProductDTO(product, groupIDs))
	}
	return out, nil
}

// SetProductOptionGroups replaces the product's option group attachments with
// the given set. Every referenced group must exist.
func (s *service) SetProductOptionGroups(ctx context.Context, productID uuid.UUID, groupIDs []uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	unique := dedupe(groupIDs)
	count, err := s.repo.CountOptionGroups(ctx, unique)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check option groups")
	}
	if count != int64(len(unique)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more option groups do not exist")
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceOptionGroups(ctx, productID, unique)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace option groups")
	}
	dto := newProductDTO(*product, unique)
	return &dto, nil
}

func (s *service) CreateOptionGroup(ctx context.Context, input CreateOptionGroupInput) (*OptionGroupDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option group name is required")
	}

	group := &models.OptionGroup{
		Name:          name,
		IsRequired:    input.IsRequired,
		AllowMultiple: input.AllowMultiple,
		DisplayOrder:  input.DisplayOrder,
	}
	created, err := s.repo.CreateOptionGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert option group")
	}
	dto := newOptionGroupDTO(*created)
	return &dto, nil
}

func (s *service) UpdateOptionGroup(ctx context.Context, groupID uuid.UUID, input UpdateOptionGroupInput) (*OptionGroupDTO, error) {
	group, err := s.loadOptionGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option group name cannot be empty")
		}
		group.Name = name
	}
	if input.IsRequired != nil {
		group.IsRequired = *input.IsRequired
	}
	if input.AllowMultiple != nil {
		group.AllowMultiple = *input.AllowMultiple
	}
	if input.DisplayOrder != nil {
		group.DisplayOrder = *input.DisplayOrder
	}

	updated, err := s.repo.UpdateOptionGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update option group")
	}
	dto := newOptionGroupDTO(*updated)
	return &dto, nil
}

func (s *service) DeleteOptionGroup(ctx context.Context, groupID uuid.UUID) error {
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteOptionGroup(ctx, groupID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "option group not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete option group")
	}
	return nil
}

func (s *service) GetOptionGroup(ctx context.Context, groupID uuid.UUID) (*OptionGroupDTO, error) {
	group, err := s.loadOptionGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	dto := newOptionGroupDTO(*group)
	return &dto, nil
}

func (s *service) ListOptionGroups(ctx context.Context) ([]OptionGroupDTO, error) {
	groups, err := s.repo.ListOptionGroups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list option groups")
	}
	out := make([]OptionGroupDTO, 0, len(groups))
	for _, group := range groups {
		out = append(out, newOptionGroupDTO(group))
	}
	return out, nil
}

func (s *service) CreateOption(ctx context.Context, groupID uuid.UUID, input CreateOptionInput) (*OptionDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option name is required")
	}
	if input.AdditionalPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "additional price cannot be negative")
	}
	if _, err := s.loadOptionGroup(ctx, groupID); err != nil {
		return nil, err
	}

	option := &models.Option{
		GroupID:         groupID,
		Name:            name,
		AdditionalPrice: input.AdditionalPrice,
		DisplayOrder:    input.DisplayOrder,
	}
	created, err := s.repo.CreateOption(ctx, option)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert option")
	}
	dto := newOptionDTO(*created)
	return &dto, nil
}

func (s *service) UpdateOption(ctx context.Context, optionID uuid.UUID, input UpdateOptionInput) (*OptionDTO, error) {
	option, err := s.repo.FindOptionByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load option")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option name cannot be empty")
		}
		option.Name = name
	}
	if input.AdditionalPrice != nil {
		if input.AdditionalPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "additional price cannot be negative")
		}
		option.AdditionalPrice = *input.AdditionalPrice
	}
	if input.DisplayOrder != nil {
		option.DisplayOrder = *input.DisplayOrder
	}

	updated, err := s.repo.UpdateOption(ctx, option)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update option")
	}
	dto := newOptionDTO(*updated)
	return &dto, nil
}

func (s *service) DeleteOption(ctx context.Context, optionID uuid.UUID) error {
	if err := s.repo.DeleteOption(ctx, optionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete option")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

func (s *service) loadOptionGroup(ctx context.Context, groupID uuid.UUID) (*models.OptionGroup, error) {
	group, err := s.repo.FindOptionGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load option group")
	}
	return group, nil
}

func (s *service) productDTOWithGroups(ctx context.Context, product models.Product) (*ProductDTO, error) {
	groupIDs, err := s.repo.ListOptionGroupIDs(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product option groups")
	}
	dto := newProductDTO(product, groupIDs)
	return &dto, nil
}

func (s *service) ensureCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

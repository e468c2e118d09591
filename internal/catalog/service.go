package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

// Service exposes the customer-facing menu read operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListProducts(ctx context.Context, categoryID uuid.UUID) ([]ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProductOptions(ctx context.Context, productID uuid.UUID) ([]OptionGroupDTO, error)
}

type menuReader interface {
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	ListActiveProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error)
	FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	LoadProductOptionGroups(ctx context.Context, productID uuid.UUID) ([]models.OptionGroup, error)
}

type service struct {
	repo menuReader
}

// NewService constructs a catalog service instance.
func NewService(repo menuReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListActiveCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		out = append(out, newCategoryDTO(category))
	}
	return out, nil
}

func (s *service) ListProducts(ctx context.Context, categoryID uuid.UUID) ([]ProductDTO, error) {
	products, err := s.repo.ListActiveProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		out = append(out, newProductDTO(product))
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindActiveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	dto := newProductDTO(*product)
	return &dto, nil
}

// ListProductOptions returns the option groups attached to a visible product.
// A product with no groups returns an empty list, not an error.
func (s *service) ListProductOptions(ctx context.Context, productID uuid.UUID) ([]OptionGroupDTO, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	groups, err := s.repo.LoadProductOptionGroups(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product options")
	}
	out := make([]OptionGroupDTO, 0, len(groups))
	for _, group := range groups {
		out = append(out, newOptionGroupDTO(group))
	}
	return out, nil
}

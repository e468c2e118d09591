package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/internal/configurator"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

type optionLoader interface {
	FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	LoadProductOptionGroups(ctx context.Context, productID uuid.UUID) ([]models.OptionGroup, error)
}

// Source adapts the catalog repository to the configurator's read interface.
type Source struct {
	repo optionLoader
}

// NewSource builds the configurator-facing catalog source.
func NewSource(repo optionLoader) (*Source, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Source{repo: repo}, nil
}

func (s *Source) GetProduct(ctx context.Context, productID uuid.UUID) (configurator.Product, error) {
	product, err := s.repo.FindActiveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return configurator.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return configurator.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return configurator.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		ImageURL:    product.ImageURL,
	}, nil
}

func (s *Source) LoadProductOptions(ctx context.Context, productID uuid.UUID) ([]configurator.OptionGroup, error) {
	groups, err := s.repo.LoadProductOptionGroups(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]configurator.OptionGroup, 0, len(groups))
	for _, group := range groups {
		converted := configurator.OptionGroup{
			ID:            group.ID,
			Name:          group.Name,
			IsRequired:    group.IsRequired,
			AllowMultiple: group.AllowMultiple,
			DisplayOrder:  group.DisplayOrder,
			Options:       make([]configurator.Option, 0, len(group.Options)),
		}
		for _, opt := range group.Options {
			converted.Options = append(converted.Options, configurator.Option{
				ID:              opt.ID,
				Name:            opt.Name,
				AdditionalPrice: opt.AdditionalPrice,
				DisplayOrder:    opt.DisplayOrder,
			})
		}
		out = append(out, converted)
	}
	return out, nil
}

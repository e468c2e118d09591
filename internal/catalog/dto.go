package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
)

type CategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
}

type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

type OptionDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	DisplayOrder    int             `json:"display_order"`
}

type OptionGroupDTO struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	IsRequired    bool        `json:"is_required"`
	AllowMultiple bool        `json:"allow_multiple"`
	DisplayOrder  int         `json:"display_order"`
	Options       []OptionDTO `json:"options"`
}

func newCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		ImageURL:     category.ImageURL,
		DisplayOrder: category.DisplayOrder,
	}
}

func newProductDTO(product models.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		ImageURL:    product.ImageURL,
	}
}

func newOptionGroupDTO(group models.OptionGroup) OptionGroupDTO {
	dto := OptionGroupDTO{
		ID:            group.ID,
		Name:          group.Name,
		IsRequired:    group.IsRequired,
		AllowMultiple: group.AllowMultiple,
		DisplayOrder:  group.DisplayOrder,
		Options:       make([]OptionDTO, 0, len(group.Options)),
	}
	for _, opt := range group.Options {
		dto.Options = append(dto.Options, OptionDTO{
			ID:              opt.ID,
			Name:            opt.Name,
			AdditionalPrice: opt.AdditionalPrice,
			DisplayOrder:    opt.DisplayOrder,
		})
	}
	return dto
}

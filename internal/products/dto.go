package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
)

// ProductDTO is the admin-facing product payload.
type ProductDTO struct {
	ID             uuid.UUID       `json:"id"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	BasePrice      decimal.Decimal `json:"base_price"`
	ImageURL       *string         `json:"image_url,omitempty"`
	IsActive       bool            `json:"is_active"`
	OptionGroupIDs []uuid.UUID     `json:"option_group_ids"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OptionDTO is the admin-facing option payload.
type OptionDTO struct {
	ID              uuid.UUID       `json:"id"`
	GroupID         uuid.UUID       `json:"group_id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	DisplayOrder    int             `json:"display_order"`
}

// OptionGroupDTO is the admin-facing option group payload.
type OptionGroupDTO struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	IsRequired    bool        `json:"is_required"`
	AllowMultiple bool        `json:"allow_multiple"`
	DisplayOrder  int         `json:"display_order"`
	Options       []OptionDTO `json:"options"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID  *uuid.UUID
	Name        string
	Description *string
	BasePrice   decimal.Decimal
	ImageURL    *string
	IsActive    bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	BasePrice   *decimal.Decimal
	ImageURL    *string
	IsActive    *bool
}

// CreateOptionGroupInput holds the validated payload to create a group.
type CreateOptionGroupInput struct {
	Name          string
	IsRequired    bool
	AllowMultiple bool
	DisplayOrder  int
}

// UpdateOptionGroupInput holds optional mutation values for a group.
type UpdateOptionGroupInput struct {
	Name          *string
	IsRequired    *bool
	AllowMultiple *bool
	DisplayOrder  *int
}

// CreateOptionInput holds the validated payload to create an option.
type CreateOptionInput struct {
	Name            string
	AdditionalPrice decimal.Decimal
	DisplayOrder    int
}

// UpdateOptionInput holds optional mutation values for an option.
type UpdateOptionInput struct {
	Name            *string
	AdditionalPrice *decimal.Decimal
	DisplayOrder    *int
}

func newProductDTO(product models.Product, groupIDs []uuid.UUID) ProductDTO {
	if groupIDs == nil {
		groupIDs = []uuid.UUID{}
	}
	return ProductDTO{
		ID:             product.ID,
		CategoryID:     product.CategoryID,
		Name:           product.Name,
		Description:    product.Description,
		BasePrice:      product.BasePrice,
		ImageURL:       product.ImageURL,
		IsActive:       product.IsActive,
		OptionGroupIDs: groupIDs,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func newOptionDTO(option models.Option) OptionDTO {
	return OptionDTO{
		ID:              option.ID,
		GroupID:         option.GroupID,
		Name:            option.Name,
		AdditionalPrice: option.AdditionalPrice,
		DisplayOrder:    option.DisplayOrder,
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
		dto.Options = append(dto.Options, newOptionDTO(opt))
	}
	return dto
}

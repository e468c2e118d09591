package configurator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
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
	Selected        bool            `json:"selected"`
}

type OptionGroupDTO struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	IsRequired    bool        `json:"is_required"`
	AllowMultiple bool        `json:"allow_multiple"`
	DisplayOrder  int         `json:"display_order"`
	Options       []OptionDTO `json:"options"`
}

// SessionDTO is the full client-facing snapshot of a configuration session.
// TotalPrice and CanFinalize are derived on every render, never stored.
type SessionDTO struct {
	ID                uuid.UUID        `json:"id"`
	State             State            `json:"state"`
	Product           ProductDTO       `json:"product"`
	OptionGroups      []OptionGroupDTO `json:"option_groups"`
	SelectedOptionIDs []uuid.UUID      `json:"selected_option_ids"`
	Quantity          int              `json:"quantity"`
	TotalPrice        decimal.Decimal  `json:"total_price"`
	CanFinalize       bool             `json:"can_finalize"`
	MissingGroupIDs   []uuid.UUID      `json:"missing_group_ids,omitempty"`
}

// ResultDTO is the finalized configuration handed back to the caller.
type ResultDTO struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Quantity          int             `json:"quantity"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	SelectedOptionIDs []uuid.UUID     `json:"selected_option_ids"`
}

// QuoteRequest prices a configuration without opening a session.
type QuoteRequest struct {
	ProductID uuid.UUID   `json:"product_id" validate:"required"`
	OptionIDs []uuid.UUID `json:"option_ids"`
	Quantity  int         `json:"quantity"`
}

type QuoteDTO struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Quantity          int             `json:"quantity"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	CanFinalize       bool            `json:"can_finalize"`
	MissingGroupIDs   []uuid.UUID     `json:"missing_group_ids,omitempty"`
	SelectedOptionIDs []uuid.UUID     `json:"selected_option_ids"`
}

func newSessionDTO(v sessionView) SessionDTO {
	dto := SessionDTO{
		ID:                v.ID,
		State:             v.State,
		Product:           newProductDTO(v.Product),
		OptionGroups:      make([]OptionGroupDTO, 0, len(v.Groups)),
		SelectedOptionIDs: v.SelectedOptionIDs,
		Quantity:          v.Quantity,
		TotalPrice:        v.Total,
		CanFinalize:       v.CanFinalize,
		MissingGroupIDs:   v.Missing,
	}
	if dto.SelectedOptionIDs == nil {
		dto.SelectedOptionIDs = []uuid.UUID{}
	}

	selected := make(map[uuid.UUID]struct{}, len(v.SelectedOptionIDs))
	for _, id := range v.SelectedOptionIDs {
		selected[id] = struct{}{}
	}
	for _, group := range v.Groups {
		groupDTO := OptionGroupDTO{
			ID:            group.ID,
			Name:          group.Name,
			IsRequired:    group.IsRequired,
			AllowMultiple: group.AllowMultiple,
			DisplayOrder:  group.DisplayOrder,
			Options:       make([]OptionDTO, 0, len(group.Options)),
		}
		for _, opt := range group.Options {
			_, isSelected := selected[opt.ID]
			groupDTO.Options = append(groupDTO.Options, OptionDTO{
				ID:              opt.ID,
				Name:            opt.Name,
				AdditionalPrice: opt.AdditionalPrice,
				DisplayOrder:    opt.DisplayOrder,
				Selected:        isSelected,
			})
		}
		dto.OptionGroups = append(dto.OptionGroups, groupDTO)
	}
	return dto
}

func newProductDTO(p Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		ImageURL:    p.ImageURL,
	}
}

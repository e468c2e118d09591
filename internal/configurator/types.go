package configurator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the read-only snapshot a configuration session works against.
// It never changes for the lifetime of the session.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description *string
	BasePrice   decimal.Decimal
	ImageURL    *string
}

// OptionGroup is a bundle of options, ordered by display order. When
// IsRequired is set, at least one of its options must be selected before the
// configuration can be finalized. AllowMultiple switches the group between
// multi-select and single-select semantics.
type OptionGroup struct {
	ID            uuid.UUID
	Name          string
	IsRequired    bool
	AllowMultiple bool
	DisplayOrder  int
	Options       []Option
}

// Option is a single selectable choice. AdditionalPrice is zero or positive.
type Option struct {
	ID              uuid.UUID
	Name            string
	AdditionalPrice decimal.Decimal
	DisplayOrder    int
}

// Result is the derived outcome of a finalized configuration. It is handed to
// the caller (the cart collaborator); nothing here is persisted.
type Result struct {
	ProductID       uuid.UUID
	Quantity        int
	TotalPrice      decimal.Decimal
	SelectedOptions []uuid.UUID
}

// FindGroupForOption returns the group that owns the given option.
func FindGroupForOption(groups []OptionGroup, optionID uuid.UUID) (*OptionGroup, bool) {
	for i := range groups {
		for _, opt := range groups[i].Options {
			if opt.ID == optionID {
				return &groups[i], true
			}
		}
	}
	return nil, false
}

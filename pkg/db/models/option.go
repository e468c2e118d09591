package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"github.com/shopspring/decimal"
)

// Option is a single choice inside an OptionGroup. AdditionalPrice is added
// to the product base price when the option is selected; zero or positive.
type Option struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID         uuid.UUID       `gorm:"column:group_id;type:uuid;not null"`
	Name            string          `gorm:"column:name;not null"`
	AdditionalPrice decimal.Decimal `gorm:"column:additional_price;type:numeric(12,2);not null"`
	DisplayOrder    int             `gorm:"column:display_order;not null;default:0"`
}

// BeforeCreate assigns an ID when the caller did not provide one.
func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

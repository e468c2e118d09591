package models

import "github.com/google/uuid"

// ProductOptionGroup links products to the option groups they expose.
type ProductOptionGroup struct {
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	OptionGroupID uuid.UUID `gorm:"column:option_group_id;type:uuid;primaryKey"`
}

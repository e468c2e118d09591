package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/pkg/enums"
)

// Ingredient tracks kitchen inventory for the admin panel.
type Ingredient struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string               `gorm:"column:name;not null"`
	Unit         enums.IngredientUnit `gorm:"column:unit;type:ingredient_unit;not null"`
	CurrentStock decimal.Decimal      `gorm:"column:current_stock;type:numeric(12,3);not null"`
	MinimumStock decimal.Decimal      `gorm:"column:minimum_stock;type:numeric(12,3);not null"`
	CostPerUnit  decimal.Decimal      `gorm:"column:cost_per_unit;type:numeric(12,2);not null"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the caller did not provide one.
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

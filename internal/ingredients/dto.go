package ingredient

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
)

// IngredientDTO is the admin-facing ingredient payload.
type IngredientDTO struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Unit         enums.IngredientUnit `json:"unit"`
	CurrentStock decimal.Decimal      `json:"current_stock"`
	MinimumStock decimal.Decimal      `json:"minimum_stock"`
	CostPerUnit  decimal.Decimal      `json:"cost_per_unit"`
	LowStock     bool                 `json:"low_stock"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// CreateIngredientInput holds the validated payload to create an ingredient.
type CreateIngredientInput struct {
	Name         string
	Unit         enums.IngredientUnit
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	CostPerUnit  decimal.Decimal
}

// UpdateIngredientInput holds optional mutation values for an ingredient.
type UpdateIngredientInput struct {
	Name         *string
	Unit         *enums.IngredientUnit
	CurrentStock *decimal.Decimal
	MinimumStock *decimal.Decimal
	CostPerUnit  *decimal.Decimal
}

func newIngredientDTO(ingredient models.Ingredient) IngredientDTO {
	return IngredientDTO{
		ID:           ingredient.ID,
		Name:         ingredient.Name,
		Unit:         ingredient.Unit,
		CurrentStock: ingredient.CurrentStock,
		MinimumStock: ingredient.MinimumStock,
		CostPerUnit:  ingredient.CostPerUnit,
		LowStock:     ingredient.CurrentStock.LessThan(ingredient.MinimumStock),
		CreatedAt:    ingredient.CreatedAt,
		UpdatedAt:    ingredient.UpdatedAt,
	}
}

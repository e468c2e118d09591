package cron

import (
	"context"
	"fmt"

	ingredient "github.com/lacomanda/comanda-backend/internal/ingredients"
	"github.com/lacomanda/comanda-backend/pkg/logger"
)

const lowStockJobName = "low-stock-sweep"

type lowStockLister interface {
	ListLowStock(ctx context.Context) ([]ingredient.IngredientDTO, error)
}

// LowStockJobParams configures the inventory sweep.
type LowStockJobParams struct {
	Logger      *logger.Logger
	Ingredients lowStockLister
}

type lowStockJob struct {
	logg        *logger.Logger
	ingredients lowStockLister
}

// NewLowStockJob constructs the job that reports ingredients whose stock
// fell below the configured minimum.
func NewLowStockJob(params LowStockJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Ingredients == nil {
		return nil, fmt.Errorf("ingredient service required")
	}
	return &lowStockJob{
		logg:        params.Logger,
		ingredients: params.Ingredients,
	}, nil
}

func (j *lowStockJob) Name() string {
	return lowStockJobName
}

func (j *lowStockJob) Run(ctx context.Context) error {
	low, err := j.ingredients.ListLowStock(ctx)
	if err != nil {
		return fmt.Errorf("list low stock ingredients: %w", err)
	}
	if len(low) == 0 {
		j.logg.Info(ctx, "all ingredient stocks above minimum")
		return nil
	}

	for _, item := range low {
		itemCtx := j.logg.WithFields(ctx, map[string]any{
			"ingredient_id": item.ID.String(),
			"name":          item.Name,
			"unit":          item.Unit.String(),
			"current_stock": item.CurrentStock.String(),
			"minimum_stock": item.MinimumStock.String(),
		})
		j.logg.Warn(itemCtx, "ingredient below minimum stock")
	}
	j.logg.Info(j.logg.WithField(ctx, "count", len(low)), "low stock sweep complete")
	return nil
}

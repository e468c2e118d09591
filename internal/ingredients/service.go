package ingredient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

// Service exposes admin ingredient inventory operations.
type Service interface {
	CreateIngredient(ctx context.Context, input CreateIngredientInput) (*IngredientDTO, error)
	UpdateIngredient(ctx context.Context, ingredientID uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error)
	DeleteIngredient(ctx context.Context, ingredientID uuid.UUID) error
	GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*IngredientDTO, error)
	ListIngredients(ctx context.Context) ([]IngredientDTO, error)
	ListLowStock(ctx context.Context) ([]IngredientDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs an ingredient service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ingredient repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateIngredient(ctx context.Context, input CreateIngredientInput) (*IngredientDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name is required")
	}
	if !input.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredient unit").
			WithDetails(map[string]any{"unit": input.Unit.String()})
	}
	if input.CurrentStock.IsNegative() || input.MinimumStock.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}
	if input.CostPerUnit.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per unit cannot be negative")
	}

	ingredient := &models.Ingredient{
		Name:         name,
		Unit:         input.Unit,
		CurrentStock: input.CurrentStock,
		MinimumStock: input.MinimumStock,
		CostPerUnit:  input.CostPerUnit,
	}
	created, err := s.repo.Create(ctx, ingredient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert ingredient")
	}
	dto := newIngredientDTO(*created)
	return &dto, nil
}

func (s *service) UpdateIngredient(ctx context.Context, ingredientID uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error) {
	ingredient, err := s.loadIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name cannot be empty")
		}
		ingredient.Name = name
	}
	if input.Unit != nil {
		if !input.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredient unit").
				WithDetails(map[string]any{"unit": input.Unit.String()})
		}
		ingredient.Unit = *input.Unit
	}
	if input.CurrentStock != nil {
		if input.CurrentStock.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "current stock cannot be negative")
		}
		ingredient.CurrentStock = *input.CurrentStock
	}
	if input.MinimumStock != nil {
		if input.MinimumStock.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum stock cannot be negative")
		}
		ingredient.MinimumStock = *input.MinimumStock
	}
	if input.CostPerUnit != nil {
		if input.CostPerUnit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per unit cannot be negative")
		}
		ingredient.CostPerUnit = *input.CostPerUnit
	}

	updated, err := s.repo.Update(ctx, ingredient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update ingredient")
	}
	dto := newIngredientDTO(*updated)
	return &dto, nil
}

func (s *service) DeleteIngredient(ctx context.Context, ingredientID uuid.UUID) error {
	if err := s.repo.Delete(ctx, ingredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete ingredient")
	}
	return nil
}

func (s *service) GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*IngredientDTO, error) {
	ingredient, err := s.loadIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	dto := newIngredientDTO(*ingredient)
	return &dto, nil
}

func (s *service) ListIngredients(ctx context.Context) ([]IngredientDTO, error) {
	ingredients, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list ingredients")
	}
	return toDTOs(ingredients), nil
}

func (s *service) ListLowStock(ctx context.Context) ([]IngredientDTO, error) {
	ingredients, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list low stock ingredients")
	}
	return toDTOs(ingredients), nil
}

func (s *service) loadIngredient(ctx context.Context, ingredientID uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load ingredient")
	}
	return ingredient, nil
}

func toDTOs(ingredients []models.Ingredient) []IngredientDTO {
	out := make([]IngredientDTO, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, newIngredientDTO(ingredient))
	}
	return out
}

package ingredient

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lacomanda/comanda-backend/pkg/enums"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

const ingredientSchema = `
CREATE TABLE ingredients (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	unit TEXT NOT NULL,
	current_stock NUMERIC NOT NULL,
	minimum_stock NUMERIC NOT NULL,
	cost_per_unit NUMERIC NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range strings.Split(ingredientSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)
	return svc
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func assertCoded(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestService_CreateIngredientValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateIngredient(ctx, CreateIngredientInput{Name: " ", Unit: enums.IngredientUnitMass})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateIngredient(ctx, CreateIngredientInput{Name: "Flour", Unit: enums.IngredientUnit("bags")})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateIngredient(ctx, CreateIngredientInput{
		Name:         "Flour",
		Unit:         enums.IngredientUnitMass,
		CurrentStock: mustDecimal(t, "-1"),
	})
	assertCoded(t, err, pkgerrors.CodeValidation)

	created, err := svc.CreateIngredient(ctx, CreateIngredientInput{
		Name:         "Flour",
		Unit:         enums.IngredientUnitMass,
		CurrentStock: mustDecimal(t, "25.500"),
		MinimumStock: mustDecimal(t, "10.000"),
		CostPerUnit:  mustDecimal(t, "1.20"),
	})
	require.NoError(t, err)
	require.False(t, created.LowStock)
}

func TestService_UpdateIngredientPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateIngredient(ctx, CreateIngredientInput{
		Name:         "Mozzarella",
		Unit:         enums.IngredientUnitMass,
		CurrentStock: mustDecimal(t, "5.000"),
		MinimumStock: mustDecimal(t, "2.000"),
		CostPerUnit:  mustDecimal(t, "6.50"),
	})
	require.NoError(t, err)

	lowered := mustDecimal(t, "1.500")
	updated, err := svc.UpdateIngredient(ctx, created.ID, UpdateIngredientInput{CurrentStock: &lowered})
	require.NoError(t, err)
	require.True(t, updated.LowStock)
	require.Equal(t, "Mozzarella", updated.Name)

	_, err = svc.UpdateIngredient(ctx, uuid.New(), UpdateIngredientInput{})
	assertCoded(t, err, pkgerrors.CodeNotFound)
}

func TestService_ListLowStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seed := []struct {
		name    string
		current string
		minimum string
	}{
		{"Basil", "0.100", "0.500"},
		{"Flour", "25.000", "10.000"},
		{"Tomato Sauce", "1.000", "4.000"},
	}
	for _, row := range seed {
		_, err := svc.CreateIngredient(ctx, CreateIngredientInput{
			Name:         row.name,
			Unit:         enums.IngredientUnitMass,
			CurrentStock: mustDecimal(t, row.current),
			MinimumStock: mustDecimal(t, row.minimum),
			CostPerUnit:  mustDecimal(t, "1.00"),
		})
		require.NoError(t, err)
	}

	low, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	require.Equal(t, "Basil", low[0].Name)
	require.Equal(t, "Tomato Sauce", low[1].Name)
	require.True(t, low[0].LowStock)

	all, err := svc.ListIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestService_DeleteIngredient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateIngredient(ctx, CreateIngredientInput{
		Name:         "Oregano",
		Unit:         enums.IngredientUnitMass,
		CurrentStock: mustDecimal(t, "1.000"),
		MinimumStock: mustDecimal(t, "0.200"),
		CostPerUnit:  mustDecimal(t, "0.80"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteIngredient(ctx, created.ID))
	err = svc.DeleteIngredient(ctx, created.ID)
	assertCoded(t, err, pkgerrors.CodeNotFound)
}

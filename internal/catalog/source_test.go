package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

func TestSource_GetProductMapsModel(t *testing.T) {
	conn := openTestDB(t)
	source, err := NewSource(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	category := mustCreateCategory(t, conn, "Pizzas", 1, true)
	created := mustCreateProduct(t, conn, category.ID, "Margherita", "80.00", true)

	product, err := source.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, product.ID)
	require.True(t, product.BasePrice.Equal(mustDecimal(t, "80.00")))

	_, err = source.GetProduct(ctx, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSource_LoadProductOptionsMapsGroups(t *testing.T) {
	conn := openTestDB(t)
	source, err := NewSource(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	category := mustCreateCategory(t, conn, "Pizzas", 1, true)
	product := mustCreateProduct(t, conn, category.ID, "Margherita", "80.00", true)
	size := mustCreateOptionGroup(t, conn, "Size", true, false, 1)
	mustCreateOption(t, conn, size.ID, "Large", "15.00", 1)
	mustAttachGroup(t, conn, product.ID, size.ID)

	groups, err := source.LoadProductOptions(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "Size", groups[0].Name)
	require.True(t, groups[0].IsRequired)
	require.Len(t, groups[0].Options, 1)
	require.True(t, groups[0].Options[0].AdditionalPrice.Equal(mustDecimal(t, "15.00")))

	empty, err := source.LoadProductOptions(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, empty)
}

package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

type stubMenuReader struct {
	categories []models.Category
	products   []models.Product
	product    *models.Product
	err        error
}

func (s *stubMenuReader) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, s.err
}

func (s *stubMenuReader) ListActiveProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubMenuReader) FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubMenuReader) LoadProductOptionGroups(ctx context.Context, productID uuid.UUID) ([]models.OptionGroup, error) {
	return nil, s.err
}

func TestService_GetProductNotFound(t *testing.T) {
	svc, err := NewService(&stubMenuReader{err: gorm.ErrRecordNotFound})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestService_DependencyErrorsAreCoded(t *testing.T) {
	svc, err := NewService(&stubMenuReader{err: fmt.Errorf("connection refused")})
	require.NoError(t, err)

	_, err = svc.ListCategories(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())

	_, err = svc.GetProduct(context.Background(), uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestService_ListAndGetOverSQLite(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	category := mustCreateCategory(t, conn, "Pizzas", 1, true)
	product := mustCreateProduct(t, conn, category.ID, "Margherita", "80.00", true)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Equal(t, category.ID, categories[0].ID)

	products, err := svc.ListProducts(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.True(t, products[0].BasePrice.Equal(mustDecimal(t, "80.00")))

	dto, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, "Margherita", dto.Name)
}

func TestService_ListProductOptions(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	category := mustCreateCategory(t, conn, "Pizzas", 1, true)
	product := mustCreateProduct(t, conn, category.ID, "Margherita", "80.00", true)

	groups, err := svc.ListProductOptions(ctx, product.ID)
	require.NoError(t, err)
	require.Empty(t, groups)

	size := mustCreateOptionGroup(t, conn, "Size", true, false, 1)
	mustCreateOption(t, conn, size.ID, "Large", "15.00", 1)
	mustAttachGroup(t, conn, product.ID, size.ID)

	groups, err = svc.ListProductOptions(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Options, 1)

	_, err = svc.ListProductOptions(ctx, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

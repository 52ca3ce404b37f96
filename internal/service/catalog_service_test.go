package service

import (
	"context"
	"testing"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRequest(name string, price float64, stock int) *dto.ProductRequest {
	return &dto.ProductRequest{
		Name:        name,
		Description: name + " description",
		Price:       &price,
		Stock:       &stock,
	}
}

func TestCatalogService_CRUD(t *testing.T) {
	repos := testRepos(t)
	svc := NewCatalogService(repos, 50)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, productRequest("widget", 9.99, 5))
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget", got.Name)
	assert.Equal(t, 9.99, got.Price)

	updated, err := svc.UpdateProduct(ctx, product.ID, productRequest("widget v2", 12.5, 7))
	require.NoError(t, err)
	assert.Equal(t, "widget v2", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, 7, updated.Stock)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_NotFound(t *testing.T) {
	repos := testRepos(t)
	svc := NewCatalogService(repos, 50)
	ctx := context.Background()

	_, err := svc.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateProduct(ctx, "missing", productRequest("widget", 1, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, "missing"), domain.ErrNotFound)
}

func TestCatalogService_CreateValidation(t *testing.T) {
	repos := testRepos(t)
	svc := NewCatalogService(repos, 50)
	ctx := context.Background()

	empty := productRequest("   ", 1, 1)
	_, err := svc.CreateProduct(ctx, empty)
	assert.ErrorIs(t, err, domain.ErrValidation)

	negativePrice := productRequest("widget", -1, 1)
	_, err = svc.CreateProduct(ctx, negativePrice)
	assert.ErrorIs(t, err, domain.ErrValidation)

	negativeStock := productRequest("widget", 1, -1)
	_, err = svc.CreateProduct(ctx, negativeStock)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_SearchRequiresCriteria(t *testing.T) {
	repos := testRepos(t)
	svc := NewCatalogService(repos, 50)
	ctx := context.Background()

	_, err := svc.Search(ctx, &dto.SearchRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Search(ctx, &dto.SearchRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_SearchPriceBounds(t *testing.T) {
	repos := testRepos(t)
	svc := NewCatalogService(repos, 50)
	ctx := context.Background()

	negative := -1.0
	_, err := svc.Search(ctx, &dto.SearchRequest{MinPrice: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)

	min, max := 10.0, 5.0
	_, err = svc.Search(ctx, &dto.SearchRequest{MinPrice: &min, MaxPrice: &max})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_Search(t *testing.T) {
	repos := testRepos(t)
	svc := NewCatalogService(repos, 50)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productRequest("Coffee Grinder", 50, 5))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, productRequest("Tea Pot", 20, 5))
	require.NoError(t, err)

	results, err := svc.Search(ctx, &dto.SearchRequest{Name: "coffee"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Coffee Grinder", results[0].Product.Name)
}

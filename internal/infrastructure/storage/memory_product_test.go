package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/pkg/errs"
)

func seedProducts(t *testing.T) *memoryProductRepository {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryProductRepository().(*memoryProductRepository)
	err := repo.UpdateCatalog(context.Background(), entity.ProductCatalog{
		Source: "test",
		Products: []entity.Product{
			{ID: "1", Name: "Wireless Headphones", Category: "Electronics", Price: 199.99, Discount: 20, Rating: 4.5, Reviews: 120, InStock: true, CreatedAt: base},
			{ID: "2", Name: "Smart Watch Pro", Category: "Electronics", Price: 299.99, Rating: 4.8, Reviews: 89, InStock: true, CreatedAt: base.Add(time.Hour)},
			{ID: "3", Name: "Leather Backpack", Category: "Fashion", Price: 89.99, Discount: 15, Rating: 4.2, Reviews: 56, InStock: false, CreatedAt: base.Add(2 * time.Hour),
				Specs: map[string]string{"Material": "Full-grain leather"}},
			{ID: "4", Name: "Yoga Mat", Category: "Sports", Price: 29.99, Rating: 4.8, Reviews: 200, InStock: true, CreatedAt: base.Add(3 * time.Hour)},
		},
	})
	require.NoError(t, err)
	return repo
}

func TestMemoryProductGetByID(t *testing.T) {
	repo := seedProducts(t)
	ctx := context.Background()

	p, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Smart Watch Pro", p.Name)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}

func TestMemoryProductGetAllKeepsCatalogOrder(t *testing.T) {
	repo := seedProducts(t)

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids)
}

func TestMemoryProductList(t *testing.T) {
	repo := seedProducts(t)
	ctx := context.Background()

	t.Run("category filter", func(t *testing.T) {
		page, err := repo.List(ctx, entity.ProductFilter{Category: "electronics"})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("price ascending uses final price", func(t *testing.T) {
		page, err := repo.List(ctx, entity.ProductFilter{Sort: entity.SortPriceAsc})
		require.NoError(t, err)
		require.Len(t, page.Products, 4)
		assert.Equal(t, "4", page.Products[0].ID)
		assert.Equal(t, "2", page.Products[3].ID)
	})

	t.Run("rating ties broken by reviews", func(t *testing.T) {
		page, err := repo.List(ctx, entity.ProductFilter{Sort: entity.SortRating})
		require.NoError(t, err)
		assert.Equal(t, "4", page.Products[0].ID)
		assert.Equal(t, "2", page.Products[1].ID)
	})

	t.Run("newest first", func(t *testing.T) {
		page, err := repo.List(ctx, entity.ProductFilter{Sort: entity.SortNewest})
		require.NoError(t, err)
		assert.Equal(t, "4", page.Products[0].ID)
	})

	t.Run("in stock and on sale", func(t *testing.T) {
		page, err := repo.List(ctx, entity.ProductFilter{InStockOnly: true, OnSaleOnly: true})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "1", page.Products[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.List(ctx, entity.ProductFilter{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, page.Total)
		require.Len(t, page.Products, 2)
		assert.Equal(t, "2", page.Products[0].ID)

		page, err = repo.List(ctx, entity.ProductFilter{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
	})
}

func TestMemoryProductSearch(t *testing.T) {
	repo := seedProducts(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"headphones", []string{"1"}},
		{"smart watch", []string{"2"}},
		{"do you have any fashion", []string{"3"}},
		{"full-grain", []string{"3"}},
		{"electronics", []string{"1", "2"}},
		{"", nil},
		{"submarine", nil},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, err := repo.Search(ctx, tc.query)
			require.NoError(t, err)
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestMemoryProductCatalogLifecycle(t *testing.T) {
	repo := seedProducts(t)
	ctx := context.Background()

	catalog, err := repo.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", catalog.Source)

	require.NoError(t, repo.SaveProduct(ctx, entity.Product{ID: "5", Name: "Desk Lamp"}))
	all, _ := repo.GetAll(ctx)
	assert.Len(t, all, 5)

	require.NoError(t, repo.Clear(ctx))
	all, _ = repo.GetAll(ctx)
	assert.Empty(t, all)
	_, err = repo.GetCatalog(ctx)
	assert.ErrorIs(t, err, errs.ErrCatalogNotFound)
}

func TestLongestCommonSubstringLength(t *testing.T) {
	assert.Equal(t, 5, longestCommonSubstringLength("smartwatch", "watchsmart"))
	assert.Equal(t, 0, longestCommonSubstringLength("", "abc"))
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/infrastructure/fixtures"
	"github.com/yourusername/luxecart/internal/infrastructure/storage"
	"github.com/yourusername/luxecart/pkg/errs"
)

func TestProductFeatured(t *testing.T) {
	uc := NewProductUseCase(seededProducts(t), fixtures.CategoryImages)

	featured, err := uc.Featured(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, featured, 8)
	assert.Equal(t, "1", featured[0].ID)
	assert.Equal(t, "8", featured[7].ID)
}

func TestProductRelated(t *testing.T) {
	uc := NewProductUseCase(seededProducts(t), fixtures.CategoryImages)

	related, err := uc.Related(context.Background(), "1", 4)
	require.NoError(t, err)

	ids := make([]string, 0, len(related))
	for _, p := range related {
		assert.Equal(t, "Electronics", p.Category)
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"2", "7", "11"}, ids)

	limited, err := uc.Related(context.Background(), "1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = uc.Related(context.Background(), "missing", 4)
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}

func TestProductCategories(t *testing.T) {
	uc := NewProductUseCase(seededProducts(t), fixtures.CategoryImages)

	categories, err := uc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 5)

	assert.Equal(t, entity.Category{
		Name:  "Electronics",
		Slug:  "electronics",
		Count: 4,
		Image: fixtures.CategoryImages["Electronics"],
	}, categories[0])
	assert.Equal(t, "home-&-living", categories[2].Slug)
	assert.Equal(t, 2, categories[2].Count)
}

func TestProductListFilters(t *testing.T) {
	uc := NewProductUseCase(seededProducts(t), fixtures.CategoryImages)

	page, err := uc.List(context.Background(), entity.ProductFilter{
		Category:    "electronics",
		InStockOnly: true,
		Sort:        entity.SortPriceAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Products, 3)
	assert.Equal(t, "11", page.Products[0].ID)
}

func TestProductsAsText(t *testing.T) {
	uc := NewProductUseCase(seededProducts(t), fixtures.CategoryImages)

	text, err := uc.GetProductsAsText(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Wireless Noise-Cancelling Headphones - $239.99 (was $299.99, 20% off)")
	assert.Contains(t, text, "Portable Bluetooth Speaker - $116.99 (was $129.99, 10% off) [out of stock]")
	assert.Contains(t, text, "Capacity: 22L, Material: Full-grain leather")

	has, err := uc.HasProducts(context.Background())
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProductsAsTextEmptyCatalog(t *testing.T) {
	uc := NewProductUseCase(storage.NewMemoryProductRepository(), nil)

	_, err := uc.GetProductsAsText(context.Background())
	assert.Error(t, err)

	has, err := uc.HasProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, has)
}

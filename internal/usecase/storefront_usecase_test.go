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

func newStorefront(t *testing.T) StorefrontUseCase {
	t.Helper()

	products := NewProductUseCase(seededProducts(t), fixtures.CategoryImages)
	return NewStorefrontUseCase(products, storage.NewMemoryNewsletterRepository(), StorefrontContent{
		Features:     fixtures.Features(entity.DefaultPricing),
		Testimonials: fixtures.Testimonials(),
		Contact:      fixtures.Contact(),
	})
}

func TestStorefrontHome(t *testing.T) {
	home, err := newStorefront(t).Home(context.Background())
	require.NoError(t, err)

	assert.Len(t, home.Featured, FeaturedCount)
	assert.Len(t, home.Categories, 5)
	require.Len(t, home.Features, 4)
	assert.Equal(t, "On orders over $50", home.Features[0].Description)
	assert.NotEmpty(t, home.Testimonials)
}

func TestStorefrontSubscribe(t *testing.T) {
	sf := newStorefront(t)
	ctx := context.Background()

	sub, err := sf.Subscribe(ctx, "  jane@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", sub.Email)
	assert.False(t, sub.SubscribedAt.IsZero())

	_, err = sf.Subscribe(ctx, "JANE@example.com")
	assert.ErrorIs(t, err, errs.ErrAlreadySubscribed)

	_, err = sf.Subscribe(ctx, "jane")
	assert.ErrorIs(t, err, errs.ErrInvalidEmail)
}

func TestStorefrontContact(t *testing.T) {
	assert.Equal(t, "support@luxecart.com", newStorefront(t).Contact(context.Background()).Email)
}

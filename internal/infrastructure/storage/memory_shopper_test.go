package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
)

func TestMemoryShopperGetUnknownReturnsEmpty(t *testing.T) {
	repo := NewMemoryShopperRepository()

	s, err := repo.Get(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "new", s.ID)
	assert.Empty(t, s.Cart)
}

func TestMemoryShopperUpdateRollsBackOnError(t *testing.T) {
	repo := NewMemoryShopperRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "s1", func(s *entity.Shopper) error {
		s.Cart = append(s.Cart, entity.CartItem{Product: entity.Product{ID: "1"}, Quantity: 1})
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "s1", func(s *entity.Shopper) error {
		s.Cart[0].Quantity = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, s.Cart, 1)
	assert.Equal(t, 1, s.Cart[0].Quantity)
}

func TestMemoryShopperUpdateIsAtomic(t *testing.T) {
	repo := NewMemoryShopperRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, "s1", func(s *entity.Shopper) error {
				if idx := s.CartIndex("1"); idx >= 0 {
					s.Cart[idx].Quantity++
					return nil
				}
				s.Cart = append(s.Cart, entity.CartItem{Product: entity.Product{ID: "1"}, Quantity: 1})
				return nil
			})
		}()
	}
	wg.Wait()

	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, s.Cart, 1)
	assert.Equal(t, 50, s.Cart[0].Quantity)
}

func TestMemoryShopperDelete(t *testing.T) {
	repo := NewMemoryShopperRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "s1", func(s *entity.Shopper) error {
		s.Wishlist = append(s.Wishlist, entity.Product{ID: "1"})
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "s1"))

	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, s.Wishlist)
}

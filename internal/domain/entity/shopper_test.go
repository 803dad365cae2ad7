package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShopperMembership(t *testing.T) {
	s := &Shopper{
		ID:       "s1",
		Cart:     []CartItem{{Product: Product{ID: "1"}, Quantity: 1}},
		Wishlist: []Product{{ID: "1"}, {ID: "2"}},
		Compare:  []Product{{ID: "3"}},
	}

	assert.Equal(t, 0, s.CartIndex("1"))
	assert.Equal(t, -1, s.CartIndex("9"))
	assert.True(t, s.InWishlist("2"))
	assert.True(t, s.InCompare("3"))

	assert.True(t, s.RemoveFromWishlist("1"))
	assert.False(t, s.RemoveFromWishlist("1"))
	assert.Equal(t, []Product{{ID: "2"}}, s.Wishlist)

	assert.True(t, s.RemoveFromCompare("3"))
	assert.Empty(t, s.Compare)
}

func TestShopperCloneIsIndependent(t *testing.T) {
	s := &Shopper{ID: "s1", Cart: []CartItem{{Product: Product{ID: "1"}, Quantity: 1}}}
	c := s.Clone()
	c.Cart[0].Quantity = 5
	c.Wishlist = append(c.Wishlist, Product{ID: "x"})

	assert.Equal(t, 1, s.Cart[0].Quantity)
	assert.Empty(t, s.Wishlist)
}

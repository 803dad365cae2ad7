package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/infrastructure/storage"
	"github.com/yourusername/luxecart/pkg/errs"
)

type CartUseCaseSuite struct {
	suite.Suite
	ctx context.Context
	uc  CartUseCase
}

func (s *CartUseCaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.uc = NewCartUseCase(storage.NewMemoryShopperRepository(), seededProducts(s.T()), entity.DefaultPricing)
}

func TestCartUseCaseSuite(t *testing.T) {
	suite.Run(t, new(CartUseCaseSuite))
}

func (s *CartUseCaseSuite) TestAddMergesExistingLine() {
	_, err := s.uc.AddToCart(s.ctx, "s1", "10", 1)
	s.Require().NoError(err)
	_, err = s.uc.AddToCart(s.ctx, "s1", "4", 1)
	s.Require().NoError(err)
	cart, err := s.uc.AddToCart(s.ctx, "s1", "10", 2)
	s.Require().NoError(err)

	s.Require().Len(cart, 2)
	s.Equal("10", cart[0].ID)
	s.Equal(3, cart[0].Quantity)
	s.Equal("4", cart[1].ID)

	total, err := s.uc.TotalItems(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal(4, total)
}

func (s *CartUseCaseSuite) TestAddRejectsOutOfStockAndBadInput() {
	_, err := s.uc.AddToCart(s.ctx, "s1", "7", 1)
	s.ErrorIs(err, errs.ErrOutOfStock)

	_, err = s.uc.AddToCart(s.ctx, "s1", "404", 1)
	s.ErrorIs(err, errs.ErrProductNotFound)

	_, err = s.uc.AddToCart(s.ctx, "s1", "1", 0)
	s.ErrorIs(err, errs.ErrInvalidQuantity)

	cart, err := s.uc.GetCart(s.ctx, "s1")
	s.Require().NoError(err)
	s.Empty(cart)
}

func (s *CartUseCaseSuite) TestLineQuantityLimit() {
	tests := []struct {
		name    string
		start   int
		add     int
		update  int
		wantErr bool
		want    int
	}{
		{name: "add up to limit", start: entity.MaxLineQuantity - 1, add: 1, want: entity.MaxLineQuantity},
		{name: "add over limit", start: entity.MaxLineQuantity, add: 1, wantErr: true, want: entity.MaxLineQuantity},
		{name: "single add over limit", start: 0, add: entity.MaxLineQuantity + 1, wantErr: true},
		{name: "huge add on existing line", start: 1, add: math.MaxInt, wantErr: true, want: 1},
		{name: "update to limit", start: 1, update: entity.MaxLineQuantity, want: entity.MaxLineQuantity},
		{name: "update over limit", start: 1, update: entity.MaxLineQuantity + 1, wantErr: true, want: 1},
		{name: "update to max int", start: 2, update: math.MaxInt, wantErr: true, want: 2},
	}

	for i, tc := range tests {
		s.Run(tc.name, func() {
			sid := fmt.Sprintf("limit-%d", i)
			if tc.start > 0 {
				_, err := s.uc.AddToCart(s.ctx, sid, "1", tc.start)
				s.Require().NoError(err)
			}

			var err error
			if tc.update > 0 {
				_, err = s.uc.UpdateQuantity(s.ctx, sid, "1", tc.update)
			} else {
				_, err = s.uc.AddToCart(s.ctx, sid, "1", tc.add)
			}

			if tc.wantErr {
				s.ErrorIs(err, errs.ErrInvalidQuantity)
			} else {
				s.NoError(err)
			}

			total, err := s.uc.TotalItems(s.ctx, sid)
			s.Require().NoError(err)
			s.Equal(tc.want, total)

			totals, err := s.uc.Totals(s.ctx, sid)
			s.Require().NoError(err)
			s.GreaterOrEqual(totals.Total, 0.0)
		})
	}
}

func (s *CartUseCaseSuite) TestMoveWishlistRespectsLineLimit() {
	_, err := s.uc.AddToCart(s.ctx, "s1", "1", entity.MaxLineQuantity)
	s.Require().NoError(err)
	_, err = s.uc.AddToWishlist(s.ctx, "s1", "1")
	s.Require().NoError(err)

	err = s.uc.MoveWishlistToCart(s.ctx, "s1", "1")
	s.ErrorIs(err, errs.ErrInvalidQuantity)

	inWishlist, err := s.uc.IsInWishlist(s.ctx, "s1", "1")
	s.Require().NoError(err)
	s.True(inWishlist)
}

func (s *CartUseCaseSuite) TestUpdateQuantity() {
	_, err := s.uc.AddToCart(s.ctx, "s1", "10", 1)
	s.Require().NoError(err)

	cart, err := s.uc.UpdateQuantity(s.ctx, "s1", "10", 5)
	s.Require().NoError(err)
	s.Equal(5, cart[0].Quantity)

	cart, err = s.uc.UpdateQuantity(s.ctx, "s1", "10", 0)
	s.Require().NoError(err)
	s.Empty(cart)

	// Savatda bo'lmagan mahsulot uchun o'zgarish yo'q
	cart, err = s.uc.UpdateQuantity(s.ctx, "s1", "1", 3)
	s.Require().NoError(err)
	s.Empty(cart)
}

func (s *CartUseCaseSuite) TestRemoveAndClear() {
	_, _ = s.uc.AddToCart(s.ctx, "s1", "1", 1)
	_, _ = s.uc.AddToCart(s.ctx, "s1", "2", 1)

	cart, err := s.uc.RemoveFromCart(s.ctx, "s1", "1")
	s.Require().NoError(err)
	s.Require().Len(cart, 1)
	s.Equal("2", cart[0].ID)

	s.Require().NoError(s.uc.ClearCart(s.ctx, "s1"))
	cart, err = s.uc.GetCart(s.ctx, "s1")
	s.Require().NoError(err)
	s.Empty(cart)
}

func (s *CartUseCaseSuite) TestTotals() {
	totals, err := s.uc.Totals(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal(entity.Totals{}, totals)

	// Yoga Mat Pro $49.99: chegaradan past
	_, _ = s.uc.AddToCart(s.ctx, "s1", "10", 1)
	totals, err = s.uc.Totals(s.ctx, "s1")
	s.Require().NoError(err)
	totals = totals.Rounded()
	s.InDelta(49.99, totals.Subtotal, 0.001)
	s.InDelta(10.0, totals.Shipping, 0.001)
	s.InDelta(5.0, totals.Tax, 0.001)
	s.InDelta(64.99, totals.Total, 0.001)
	s.InDelta(0.01, totals.FreeShippingRemaining, 0.001)
	s.False(totals.FreeShipping)

	_, _ = s.uc.AddToCart(s.ctx, "s1", "10", 1)
	totals, err = s.uc.Totals(s.ctx, "s1")
	s.Require().NoError(err)
	s.True(totals.FreeShipping)
	s.Zero(totals.Shipping)
	s.Zero(totals.FreeShippingRemaining)
}

func (s *CartUseCaseSuite) TestWishlist() {
	added, err := s.uc.ToggleWishlist(s.ctx, "s1", "7")
	s.Require().NoError(err)
	s.True(added)

	_, err = s.uc.AddToWishlist(s.ctx, "s1", "7")
	s.Require().NoError(err)
	wishlist, err := s.uc.AddToWishlist(s.ctx, "s1", "3")
	s.Require().NoError(err)
	s.Len(wishlist, 2)

	in, err := s.uc.IsInWishlist(s.ctx, "s1", "7")
	s.Require().NoError(err)
	s.True(in)

	added, err = s.uc.ToggleWishlist(s.ctx, "s1", "7")
	s.Require().NoError(err)
	s.False(added)

	wishlist, err = s.uc.RemoveFromWishlist(s.ctx, "s1", "3")
	s.Require().NoError(err)
	s.Empty(wishlist)
}

func (s *CartUseCaseSuite) TestMoveWishlistToCart() {
	_, _ = s.uc.AddToWishlist(s.ctx, "s1", "3")
	_, _ = s.uc.AddToWishlist(s.ctx, "s1", "7")
	_, _ = s.uc.AddToCart(s.ctx, "s1", "3", 2)

	s.Require().NoError(s.uc.MoveWishlistToCart(s.ctx, "s1", "3"))

	cart, _ := s.uc.GetCart(s.ctx, "s1")
	s.Require().Len(cart, 1)
	s.Equal(3, cart[0].Quantity)

	s.ErrorIs(s.uc.MoveWishlistToCart(s.ctx, "s1", "7"), errs.ErrOutOfStock)
	s.ErrorIs(s.uc.MoveWishlistToCart(s.ctx, "s1", "1"), errs.ErrProductNotFound)

	wishlist, _ := s.uc.GetWishlist(s.ctx, "s1")
	s.Require().Len(wishlist, 1)
	s.Equal("7", wishlist[0].ID)
}

func (s *CartUseCaseSuite) TestCompareCap() {
	for _, id := range []string{"1", "2", "3", "4"} {
		added, err := s.uc.ToggleCompare(s.ctx, "s1", id)
		s.Require().NoError(err)
		s.True(added)
	}

	_, err := s.uc.ToggleCompare(s.ctx, "s1", "5")
	s.ErrorIs(err, errs.ErrCompareFull)
	_, err = s.uc.AddToCompare(s.ctx, "s1", "5")
	s.ErrorIs(err, errs.ErrCompareFull)

	// Mavjud mahsulotni qayta qo'shish xato emas
	list, err := s.uc.AddToCompare(s.ctx, "s1", "4")
	s.Require().NoError(err)
	s.Len(list, entity.MaxCompareItems)

	added, err := s.uc.ToggleCompare(s.ctx, "s1", "2")
	s.Require().NoError(err)
	s.False(added)

	list, err = s.uc.AddToCompare(s.ctx, "s1", "5")
	s.Require().NoError(err)
	s.Equal("5", list[len(list)-1].ID)

	list, err = s.uc.RemoveFromCompare(s.ctx, "s1", "1")
	s.Require().NoError(err)
	s.Len(list, 3)

	s.Require().NoError(s.uc.ClearCompare(s.ctx, "s1"))
	list, err = s.uc.GetCompare(s.ctx, "s1")
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *CartUseCaseSuite) TestSummary() {
	_, _ = s.uc.AddToCart(s.ctx, "s1", "1", 2)
	_, _ = s.uc.AddToCart(s.ctx, "s1", "2", 1)
	_, _ = s.uc.AddToWishlist(s.ctx, "s1", "3")
	_, _ = s.uc.ToggleCompare(s.ctx, "s1", "4")

	summary, err := s.uc.Summary(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal(entity.ShopperSummary{CartItems: 3, Wishlist: 1, Compare: 1}, summary)

	other, err := s.uc.Summary(s.ctx, "s2")
	s.Require().NoError(err)
	s.Equal(entity.ShopperSummary{}, other)
}

func (s *CartUseCaseSuite) TestConcurrentAdds() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.uc.AddToCart(s.ctx, "s1", "1", 1)
		}()
	}
	wg.Wait()

	cart, err := s.uc.GetCart(s.ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(cart, 1)
	s.Equal(50, cart[0].Quantity)
}

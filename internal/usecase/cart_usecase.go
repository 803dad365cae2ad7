package usecase

import (
	"context"
	"fmt"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

// CartUseCase savat, sevimlilar va taqqoslash ro'yxati
type CartUseCase interface {
	// AddToCart mahsulotni savatga qo'shish (bor bo'lsa miqdor oshadi).
	// Qator miqdori entity.MaxLineQuantity dan oshsa errs.ErrInvalidQuantity.
	AddToCart(ctx context.Context, shopperID, productID string, quantity int) ([]entity.CartItem, error)

	// UpdateQuantity miqdorni o'rnatish, 1 dan kichik bo'lsa qator o'chiriladi
	UpdateQuantity(ctx context.Context, shopperID, productID string, quantity int) ([]entity.CartItem, error)

	// RemoveFromCart qatorni o'chirish
	RemoveFromCart(ctx context.Context, shopperID, productID string) ([]entity.CartItem, error)

	// ClearCart savatni tozalash
	ClearCart(ctx context.Context, shopperID string) error

	// GetCart savat qatorlari
	GetCart(ctx context.Context, shopperID string) ([]entity.CartItem, error)

	// TotalItems barcha qatorlar miqdori yig'indisi
	TotalItems(ctx context.Context, shopperID string) (int, error)

	// Totals subtotal, yetkazish, soliq va jami
	Totals(ctx context.Context, shopperID string) (entity.Totals, error)

	AddToWishlist(ctx context.Context, shopperID, productID string) ([]entity.Product, error)
	RemoveFromWishlist(ctx context.Context, shopperID, productID string) ([]entity.Product, error)

	// ToggleWishlist qo'shilgan bo'lsa true
	ToggleWishlist(ctx context.Context, shopperID, productID string) (bool, error)
	IsInWishlist(ctx context.Context, shopperID, productID string) (bool, error)
	GetWishlist(ctx context.Context, shopperID string) ([]entity.Product, error)

	// MoveWishlistToCart sevimlilardan savatga o'tkazish
	MoveWishlistToCart(ctx context.Context, shopperID, productID string) error

	// ToggleCompare qo'shilgan bo'lsa true. Ro'yxat to'la bo'lsa errs.ErrCompareFull.
	ToggleCompare(ctx context.Context, shopperID, productID string) (bool, error)
	AddToCompare(ctx context.Context, shopperID, productID string) ([]entity.Product, error)
	RemoveFromCompare(ctx context.Context, shopperID, productID string) ([]entity.Product, error)
	ClearCompare(ctx context.Context, shopperID string) error
	GetCompare(ctx context.Context, shopperID string) ([]entity.Product, error)

	// Summary navbar hisoblagichlari
	Summary(ctx context.Context, shopperID string) (entity.ShopperSummary, error)
}

type cartUseCase struct {
	shopperRepo repository.ShopperRepository
	productRepo repository.ProductRepository
	pricing     entity.Pricing
}

// NewCartUseCase yangi CartUseCase yaratish
func NewCartUseCase(
	shopperRepo repository.ShopperRepository,
	productRepo repository.ProductRepository,
	pricing entity.Pricing,
) CartUseCase {
	return &cartUseCase{
		shopperRepo: shopperRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// AddToCart mahsulotni savatga qo'shish
func (u *cartUseCase) AddToCart(ctx context.Context, shopperID, productID string, quantity int) ([]entity.CartItem, error) {
	if quantity < 1 || quantity > entity.MaxLineQuantity {
		return nil, errs.ErrInvalidQuantity
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, fmt.Errorf("%w: %s", errs.ErrOutOfStock, product.Name)
	}

	shopper, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		return addLine(s, *product, quantity)
	})
	if err != nil {
		return nil, err
	}
	return shopper.Cart, nil
}

func addLine(s *entity.Shopper, product entity.Product, quantity int) error {
	idx := s.CartIndex(product.ID)
	if idx < 0 {
		s.Cart = append(s.Cart, entity.CartItem{Product: product, Quantity: quantity})
		return nil
	}
	if s.Cart[idx].Quantity > entity.MaxLineQuantity-quantity {
		return fmt.Errorf("%w: at most %d per item", errs.ErrInvalidQuantity, entity.MaxLineQuantity)
	}
	s.Cart[idx].Quantity += quantity
	return nil
}

// UpdateQuantity miqdorni o'rnatish
func (u *cartUseCase) UpdateQuantity(ctx context.Context, shopperID, productID string, quantity int) ([]entity.CartItem, error) {
	if quantity > entity.MaxLineQuantity {
		return nil, errs.ErrInvalidQuantity
	}

	shopper, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		idx := s.CartIndex(productID)
		if idx < 0 {
			return nil
		}
		if quantity < 1 {
			s.Cart = append(s.Cart[:idx], s.Cart[idx+1:]...)
			return nil
		}
		s.Cart[idx].Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shopper.Cart, nil
}

// RemoveFromCart qatorni o'chirish
func (u *cartUseCase) RemoveFromCart(ctx context.Context, shopperID, productID string) ([]entity.CartItem, error) {
	return u.UpdateQuantity(ctx, shopperID, productID, 0)
}

// ClearCart savatni tozalash
func (u *cartUseCase) ClearCart(ctx context.Context, shopperID string) error {
	_, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		s.Cart = nil
		return nil
	})
	return err
}

func (u *cartUseCase) GetCart(ctx context.Context, shopperID string) ([]entity.CartItem, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	return shopper.Cart, nil
}

// TotalItems barcha qatorlar miqdori yig'indisi
func (u *cartUseCase) TotalItems(ctx context.Context, shopperID string) (int, error) {
	cart, err := u.GetCart(ctx, shopperID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, item := range cart {
		total += item.Quantity
	}
	return total, nil
}

// Totals har safar savatdan qayta hisoblanadi
func (u *cartUseCase) Totals(ctx context.Context, shopperID string) (entity.Totals, error) {
	cart, err := u.GetCart(ctx, shopperID)
	if err != nil {
		return entity.Totals{}, err
	}
	return u.pricing.Compute(cart), nil
}

// AddToWishlist takroriy qo'shish o'zgarish qilmaydi
func (u *cartUseCase) AddToWishlist(ctx context.Context, shopperID, productID string) ([]entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	shopper, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		if !s.InWishlist(product.ID) {
			s.Wishlist = append(s.Wishlist, *product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shopper.Wishlist, nil
}

func (u *cartUseCase) RemoveFromWishlist(ctx context.Context, shopperID, productID string) ([]entity.Product, error) {
	shopper, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		s.RemoveFromWishlist(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shopper.Wishlist, nil
}

// ToggleWishlist bor bo'lsa o'chiradi, yo'q bo'lsa qo'shadi
func (u *cartUseCase) ToggleWishlist(ctx context.Context, shopperID, productID string) (bool, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}

	var added bool
	_, err = u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		if s.RemoveFromWishlist(product.ID) {
			added = false
			return nil
		}
		s.Wishlist = append(s.Wishlist, *product)
		added = true
		return nil
	})
	return added, err
}

func (u *cartUseCase) IsInWishlist(ctx context.Context, shopperID, productID string) (bool, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return false, err
	}
	return shopper.InWishlist(productID), nil
}

func (u *cartUseCase) GetWishlist(ctx context.Context, shopperID string) ([]entity.Product, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	return shopper.Wishlist, nil
}

// MoveWishlistToCart bitta dona savatga qo'shib, sevimlilardan olib tashlaydi
func (u *cartUseCase) MoveWishlistToCart(ctx context.Context, shopperID, productID string) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.InStock {
		return fmt.Errorf("%w: %s", errs.ErrOutOfStock, product.Name)
	}

	_, err = u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		if !s.RemoveFromWishlist(product.ID) {
			return fmt.Errorf("%w: %s not in wishlist", errs.ErrProductNotFound, product.ID)
		}
		return addLine(s, *product, 1)
	})
	return err
}

// ToggleCompare bor bo'lsa o'chiradi, yo'q bo'lsa qo'shadi
func (u *cartUseCase) ToggleCompare(ctx context.Context, shopperID, productID string) (bool, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}

	var added bool
	_, err = u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		if s.RemoveFromCompare(product.ID) {
			added = false
			return nil
		}
		if len(s.Compare) >= entity.MaxCompareItems {
			return errs.ErrCompareFull
		}
		s.Compare = append(s.Compare, *product)
		added = true
		return nil
	})
	return added, err
}

// AddToCompare ro'yxat to'la bo'lsa errs.ErrCompareFull
func (u *cartUseCase) AddToCompare(ctx context.Context, shopperID, productID string) ([]entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	shopper, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		if s.InCompare(product.ID) {
			return nil
		}
		if len(s.Compare) >= entity.MaxCompareItems {
			return errs.ErrCompareFull
		}
		s.Compare = append(s.Compare, *product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shopper.Compare, nil
}

func (u *cartUseCase) RemoveFromCompare(ctx context.Context, shopperID, productID string) ([]entity.Product, error) {
	shopper, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		s.RemoveFromCompare(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shopper.Compare, nil
}

func (u *cartUseCase) ClearCompare(ctx context.Context, shopperID string) error {
	_, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		s.Compare = nil
		return nil
	})
	return err
}

func (u *cartUseCase) GetCompare(ctx context.Context, shopperID string) ([]entity.Product, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	return shopper.Compare, nil
}

// Summary navbar hisoblagichlari
func (u *cartUseCase) Summary(ctx context.Context, shopperID string) (entity.ShopperSummary, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return entity.ShopperSummary{}, err
	}

	summary := entity.ShopperSummary{
		Wishlist: len(shopper.Wishlist),
		Compare:  len(shopper.Compare),
	}
	for _, item := range shopper.Cart {
		summary.CartItems += item.Quantity
	}
	return summary, nil
}

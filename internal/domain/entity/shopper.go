package entity

import "time"

// MaxCompareItems taqqoslash ro'yxatining maksimal hajmi
const MaxCompareItems = 4

// MaxLineQuantity savat qatoridagi maksimal miqdor
const MaxLineQuantity = 99

// Shopper xaridorning xotiradagi holati. Pending to'lov kutilayotgan,
// savatdan band qilingan qatorlar.
type Shopper struct {
	ID        string     `json:"id"`
	Cart      []CartItem `json:"cart"`
	Wishlist  []Product  `json:"wishlist"`
	Compare   []Product  `json:"compare"`
	Pending   []CartItem `json:"pending,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartIndex savatda mahsulot indeksini topish, yo'q bo'lsa -1
func (s *Shopper) CartIndex(productID string) int {
	for i, item := range s.Cart {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// InWishlist sevimlilarda borligini tekshirish
func (s *Shopper) InWishlist(productID string) bool {
	return indexOf(s.Wishlist, productID) >= 0
}

// InCompare taqqoslash ro'yxatida borligini tekshirish
func (s *Shopper) InCompare(productID string) bool {
	return indexOf(s.Compare, productID) >= 0
}

// RemoveFromWishlist sevimlilardan o'chirish, o'chirilgan bo'lsa true
func (s *Shopper) RemoveFromWishlist(productID string) bool {
	var removed bool
	s.Wishlist, removed = removeByID(s.Wishlist, productID)
	return removed
}

// RemoveFromCompare taqqoslashdan o'chirish, o'chirilgan bo'lsa true
func (s *Shopper) RemoveFromCompare(productID string) bool {
	var removed bool
	s.Compare, removed = removeByID(s.Compare, productID)
	return removed
}

// Clone repository tashqarisiga chiqadigan nusxa
func (s *Shopper) Clone() *Shopper {
	out := &Shopper{ID: s.ID, UpdatedAt: s.UpdatedAt}
	out.Cart = append([]CartItem(nil), s.Cart...)
	out.Wishlist = append([]Product(nil), s.Wishlist...)
	out.Compare = append([]Product(nil), s.Compare...)
	if len(s.Pending) > 0 {
		out.Pending = append([]CartItem(nil), s.Pending...)
	}
	return out
}

// ClaimCart savat qatorlarini Pending ga o'tkazadi. Savat bo'sh bo'ladi.
func (s *Shopper) ClaimCart() []CartItem {
	claimed := s.Cart
	s.Pending = append([]CartItem(nil), claimed...)
	s.Cart = nil
	return claimed
}

// ReleasePending band qilingan qatorlarni savatga qaytaradi.
// Shu orada qo'shilgan qatorlar bilan miqdorlar qo'shiladi, MaxLineQuantity dan oshmaydi.
func (s *Shopper) ReleasePending() {
	for _, item := range s.Pending {
		idx := s.CartIndex(item.ID)
		if idx < 0 {
			s.Cart = append(s.Cart, item)
			continue
		}
		s.Cart[idx].Quantity = min(s.Cart[idx].Quantity+item.Quantity, MaxLineQuantity)
	}
	s.Pending = nil
}

// ShopperSummary navbar belgilari uchun hisoblagichlar
type ShopperSummary struct {
	CartItems int `json:"cartItems"`
	Wishlist  int `json:"wishlist"`
	Compare   int `json:"compare"`
}

func indexOf(products []Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func removeByID(products []Product, id string) ([]Product, bool) {
	idx := indexOf(products, id)
	if idx < 0 {
		return products, false
	}
	return append(products[:idx], products[idx+1:]...), true
}

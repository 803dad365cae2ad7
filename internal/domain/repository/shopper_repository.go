package repository

import (
	"context"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// ShopperRepository xaridor holatini (savat, sevimlilar, taqqoslash) saqlash uchun interface
type ShopperRepository interface {
	// Get xaridorni olish. Mavjud bo'lmasa bo'sh holat qaytariladi.
	Get(ctx context.Context, shopperID string) (*entity.Shopper, error)

	// Update xaridor holatini atomik o'zgartirish. fn xato qaytarsa o'zgarish saqlanmaydi.
	Update(ctx context.Context, shopperID string, fn func(s *entity.Shopper) error) (*entity.Shopper, error)

	// Delete xaridor holatini o'chirish
	Delete(ctx context.Context, shopperID string) error
}

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

type memoryShopperRepository struct {
	mu       sync.Mutex
	shoppers map[string]*entity.Shopper
	now      func() time.Time
}

// NewMemoryShopperRepository in-memory xaridor holati repository yaratish
func NewMemoryShopperRepository() repository.ShopperRepository {
	return &memoryShopperRepository{
		shoppers: make(map[string]*entity.Shopper),
		now:      time.Now,
	}
}

// Get xaridor holatining nusxasini olish
func (m *memoryShopperRepository) Get(ctx context.Context, shopperID string) (*entity.Shopper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shopper, exists := m.shoppers[shopperID]
	if !exists {
		return &entity.Shopper{ID: shopperID}, nil
	}
	return shopper.Clone(), nil
}

// Update nusxa ustida fn ni bajarish va muvaffaqiyatli bo'lsa saqlash
func (m *memoryShopperRepository) Update(ctx context.Context, shopperID string, fn func(s *entity.Shopper) error) (*entity.Shopper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	working := &entity.Shopper{ID: shopperID}
	if current, exists := m.shoppers[shopperID]; exists {
		working = current.Clone()
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	working.ID = shopperID
	working.UpdatedAt = m.now()
	m.shoppers[shopperID] = working
	return working.Clone(), nil
}

// Delete xaridor holatini o'chirish
func (m *memoryShopperRepository) Delete(ctx context.Context, shopperID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.shoppers, shopperID)
	return nil
}

package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
}

// NewMemoryOrderRepository in-memory buyurtmalar repository yaratish
func NewMemoryOrderRepository() repository.OrderRepository {
	return &memoryOrderRepository{
		orders: make(map[string]entity.Order),
	}
}

// Save buyurtmani saqlash
func (m *memoryOrderRepository) Save(ctx context.Context, order entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders[order.ID] = order
	return nil
}

// GetByID buyurtmani ID bo'yicha olish
func (m *memoryOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", errs.ErrOrderNotFound, id)
	}
	return &order, nil
}

// ListByShopper xaridor buyurtmalari (yangi -> eski)
func (m *memoryOrderRepository) ListByShopper(ctx context.Context, shopperID string) ([]entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []entity.Order
	for _, order := range m.orders {
		if order.ShopperID == shopperID {
			out = append(out, order)
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

// ListAll barcha buyurtmalar (admin uchun)
func (m *memoryOrderRepository) ListAll(ctx context.Context, limit int) ([]entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	sortOrdersNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortOrdersNewestFirst(orders []entity.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})
}

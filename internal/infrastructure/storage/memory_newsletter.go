package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

type memoryNewsletterRepository struct {
	mu          sync.RWMutex
	subscribers map[string]entity.Subscriber // key: kichik harfli email
}

// NewMemoryNewsletterRepository in-memory obunachilar repository yaratish
func NewMemoryNewsletterRepository() repository.NewsletterRepository {
	return &memoryNewsletterRepository{
		subscribers: make(map[string]entity.Subscriber),
	}
}

// Subscribe obuna qilish
func (m *memoryNewsletterRepository) Subscribe(ctx context.Context, sub entity.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(sub.Email)
	if _, exists := m.subscribers[key]; exists {
		return errs.ErrAlreadySubscribed
	}
	m.subscribers[key] = sub
	return nil
}

// List obunachilar (obuna vaqti bo'yicha)
func (m *memoryNewsletterRepository) List(ctx context.Context) ([]entity.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Subscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubscribedAt.Before(out[j].SubscribedAt)
	})
	return out, nil
}

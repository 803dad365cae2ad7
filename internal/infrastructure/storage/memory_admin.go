package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

type memoryAdminRepository struct {
	mu       sync.Mutex
	sessions map[int64]entity.AdminSession
	actions  []entity.AdminAction
	now      func() time.Time
}

// NewMemoryAdminRepository in-memory admin repository yaratish
func NewMemoryAdminRepository() repository.AdminRepository {
	return &memoryAdminRepository{
		sessions: make(map[int64]entity.AdminSession),
		now:      time.Now,
	}
}

// CreateSession admin sessiyasini yaratish
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = m.now()
	m.sessions[session.UserID] = session
	return nil
}

// DeleteSession sessiyani o'chirish (logout)
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsAdmin sessiyani tekshirish, faol bo'lsa oxirgi faollikni yangilash
func (m *memoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}

	now := m.now()
	if session.Expired(now) {
		delete(m.sessions, userID)
		return false, nil
	}

	session.LastActivity = now
	m.sessions[userID] = session
	return session.IsAdmin, nil
}

// LogAction admin harakatini loglash
func (m *memoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}

// ListActions so'nggi harakatlar
func (m *memoryAdminRepository) ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.AdminAction, 0, len(m.actions))
	for i := len(m.actions) - 1; i >= 0; i-- {
		out = append(out, m.actions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

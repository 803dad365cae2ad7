package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

// memoryChatRepository har bir xaridor uchun yordamchi suhbatini xotirada saqlaydi.
// Xabar ID takrorlansa eski yozuv almashtiriladi, sqlite dagi INSERT OR REPLACE kabi.
type memoryChatRepository struct {
	mu      sync.RWMutex
	logs    map[string][]entity.Message
	maxSize int
}

// NewMemoryChatRepository in-memory chat repository yaratish
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		logs:    make(map[string][]entity.Message),
		maxSize: maxContextSize,
	}
}

func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.logs[message.ShopperID]
	idx := slices.IndexFunc(log, func(msg entity.Message) bool { return msg.ID == message.ID })
	if idx >= 0 {
		log[idx] = message
	} else {
		log = append(log, message)
	}

	if m.maxSize > 0 && len(log) > m.maxSize {
		log = latest(log, m.maxSize)
	}
	m.logs[message.ShopperID] = log
	return nil
}

func (m *memoryChatRepository) GetHistory(ctx context.Context, shopperID string, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return latest(m.logs[shopperID], limit), nil
}

// GetAllMessages admin ko'rishi uchun, yangilari birinchi
func (m *memoryChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	all := make([]entity.Message, 0)
	for _, log := range m.logs {
		all = append(all, log...)
	}
	m.mu.RUnlock()

	newestFirst(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memoryChatRepository) ClearHistory(ctx context.Context, shopperID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.logs, shopperID)
	return nil
}

func (m *memoryChatRepository) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.logs)
	return nil
}

func (m *memoryChatRepository) GetContext(ctx context.Context, shopperID string) (*entity.ChatContext, error) {
	history, _ := m.GetHistory(ctx, shopperID, 0)
	return chatContextOf(shopperID, history)
}

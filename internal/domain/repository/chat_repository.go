package repository

import (
	"context"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// ChatRepository yordamchi suhbat tarixi bilan ishlash uchun interface
type ChatRepository interface {
	// SaveMessage xabarni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory xaridor suhbat tarixini olish (eski -> yangi)
	GetHistory(ctx context.Context, shopperID string, limit int) ([]entity.Message, error)

	// GetAllMessages barcha xabarlarni olish (so'nggi limit ta)
	GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error)

	// ClearHistory xaridor tarixini tozalash
	ClearHistory(ctx context.Context, shopperID string) error

	// ClearAll barcha tarixni o'chirish
	ClearAll(ctx context.Context) error

	// GetContext xaridor suhbat kontekstini olish
	GetContext(ctx context.Context, shopperID string) (*entity.ChatContext, error)
}

package repository

import (
	"context"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// GenerateResponse xaridor savoliga tarix bilan javob yaratish
	GenerateResponse(ctx context.Context, message entity.Message, history []entity.Message) (string, error)
}

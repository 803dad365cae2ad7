package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

// historyLimit AI ga yuboriladigan oldingi xabarlar soni
const historyLimit = 10

// ChatUseCase yordamchi bilan suhbat business logic
type ChatUseCase interface {
	// Enabled AI kaliti sozlanganmi
	Enabled() bool

	ProcessMessage(ctx context.Context, shopperID, username, text string) (string, error)
	ClearHistory(ctx context.Context, shopperID string) error
	GetHistory(ctx context.Context, shopperID string) ([]entity.Message, error)
	GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error)
}

type chatUseCase struct {
	aiRepo   repository.AIRepository
	chatRepo repository.ChatRepository
	products ProductUseCase
	pricing  entity.Pricing
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewChatUseCase yangi ChatUseCase yaratish. aiRepo nil bo'lsa yordamchi o'chiq.
func NewChatUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	products ProductUseCase,
	pricing entity.Pricing,
) ChatUseCase {
	return &chatUseCase{
		aiRepo:   aiRepo,
		chatRepo: chatRepo,
		products: products,
		pricing:  pricing,
		timeout:  20 * time.Second,
		logger:   log.With().Str("component", "assistant").Logger(),
	}
}

func (u *chatUseCase) Enabled() bool {
	return u.aiRepo != nil
}

// ProcessMessage xaridor savolini qayta ishlash
func (u *chatUseCase) ProcessMessage(ctx context.Context, shopperID, username, text string) (string, error) {
	if u.aiRepo == nil {
		return "", errs.ErrAssistantDisabled
	}

	// AI so'rovlari osilib qolmasligi uchun timeout
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	history, err := u.chatRepo.GetHistory(ctx, shopperID, historyLimit)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	// Katalog bo'sh bo'lsa ham savolga javob beramiz
	enrichedText := text
	if catalog, err := u.products.GetProductsAsText(ctx); err == nil {
		enrichedText = fmt.Sprintf(`Shopper: %s

%s
Free shipping on orders over $%.2f, otherwise $%.2f. Tax is %.0f%%.

Answer the shopper using only the products above:`,
			text, catalog, u.pricing.FreeShippingThreshold, u.pricing.ShippingFee, u.pricing.TaxRate*100)
	}

	u.logger.Debug().Str("shopper_id", shopperID).Int("prompt_len", len(enrichedText)).Msg("sending prompt")

	response, err := u.aiRepo.GenerateResponse(ctx, entity.Message{
		ShopperID: shopperID,
		Username:  username,
		Text:      enrichedText,
	}, history)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	// Tarixga asl matn saqlanadi
	message := entity.Message{
		ID:        uuid.New().String(),
		ShopperID: shopperID,
		Username:  username,
		Text:      text,
		Response:  response,
		Timestamp: time.Now(),
	}
	if err := u.chatRepo.SaveMessage(ctx, message); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}

	return response, nil
}

// ClearHistory xaridor tarixini tozalash
func (u *chatUseCase) ClearHistory(ctx context.Context, shopperID string) error {
	return u.chatRepo.ClearHistory(ctx, shopperID)
}

// GetHistory xaridor tarixini olish
func (u *chatUseCase) GetHistory(ctx context.Context, shopperID string) ([]entity.Message, error) {
	return u.chatRepo.GetHistory(ctx, shopperID, 0)
}

// GetAllMessages barcha xabarlar (admin uchun)
func (u *chatUseCase) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	return u.chatRepo.GetAllMessages(ctx, limit)
}

package repository

import (
	"context"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// OrderRepository buyurtmalar (xotirada)
type OrderRepository interface {
	Save(ctx context.Context, order entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByShopper(ctx context.Context, shopperID string) ([]entity.Order, error)
	ListAll(ctx context.Context, limit int) ([]entity.Order, error)
}

// PaymentProcessor to'lovni qayta ishlash
type PaymentProcessor interface {
	Process(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentResult, error)
}

package repository

import (
	"context"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// AdminRepository admin sessiyalari va harakatlar jurnali
type AdminRepository interface {
	// CreateSession admin sessiyasini yaratish
	CreateSession(ctx context.Context, session entity.AdminSession) error

	// DeleteSession sessiyani o'chirish (logout)
	DeleteSession(ctx context.Context, userID int64) error

	// IsAdmin sessiya amal qilayotganini tekshirish va faollik vaqtini yangilash
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// LogAction admin harakatini loglash
	LogAction(ctx context.Context, action entity.AdminAction) error

	// ListActions so'nggi harakatlar (yangi -> eski)
	ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error)
}

package repository

import (
	"context"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// NewsletterRepository newsletter obunachilari
type NewsletterRepository interface {
	// Subscribe obuna qilish. Email allaqachon bo'lsa errs.ErrAlreadySubscribed.
	Subscribe(ctx context.Context, sub entity.Subscriber) error

	// List barcha obunachilar
	List(ctx context.Context) ([]entity.Subscriber, error)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

// FeaturedCount bosh sahifadagi mahsulotlar soni
const FeaturedCount = 8

// StorefrontContent bosh sahifa va footer uchun statik kontent
type StorefrontContent struct {
	Features     []entity.Feature
	Testimonials []entity.Testimonial
	Contact      entity.ContactInfo
}

// StorefrontUseCase bosh sahifa, newsletter va kontaktlar
type StorefrontUseCase interface {
	Home(ctx context.Context) (*entity.HomePage, error)

	// Subscribe newsletter ga obuna
	Subscribe(ctx context.Context, email string) (*entity.Subscriber, error)

	Contact(ctx context.Context) entity.ContactInfo
}

type storefrontUseCase struct {
	products   ProductUseCase
	newsletter repository.NewsletterRepository
	content    StorefrontContent
	now        func() time.Time
}

// NewStorefrontUseCase yangi StorefrontUseCase yaratish
func NewStorefrontUseCase(
	products ProductUseCase,
	newsletter repository.NewsletterRepository,
	content StorefrontContent,
) StorefrontUseCase {
	return &storefrontUseCase{
		products:   products,
		newsletter: newsletter,
		content:    content,
		now:        time.Now,
	}
}

// Home bosh sahifa tarkibi
func (u *storefrontUseCase) Home(ctx context.Context) (*entity.HomePage, error) {
	featured, err := u.products.Featured(ctx, FeaturedCount)
	if err != nil {
		return nil, err
	}
	categories, err := u.products.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.HomePage{
		Featured:     featured,
		Categories:   categories,
		Features:     u.content.Features,
		Testimonials: u.content.Testimonials,
	}, nil
}

// Subscribe email ni tekshirib obuna qilish
func (u *storefrontUseCase) Subscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return nil, errs.ErrInvalidEmail
	}

	sub := entity.Subscriber{Email: email, SubscribedAt: u.now()}
	if err := u.newsletter.Subscribe(ctx, sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (u *storefrontUseCase) Contact(ctx context.Context) entity.ContactInfo {
	return u.content.Contact
}

package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

// Validatsiya teglari
const (
	TagRequired   = "required"
	TagEmail      = "email"
	TagCardNumber = "card_number"
	TagExpiry     = "expiry"
	TagExpired    = "expired"
	TagCVV        = "cvv"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Quote buyurtma xulosasi: qatorlar va summalar
type Quote struct {
	Items  []entity.CartItem `json:"items"`
	Totals entity.Totals     `json:"totals"`
}

// CheckoutUseCase checkout va buyurtmalar
type CheckoutUseCase interface {
	// Quote savatdan buyurtma xulosasi
	Quote(ctx context.Context, shopperID string) (*Quote, error)

	// PlaceOrder formani tekshirish, to'lov, buyurtmani saqlash va savatni tozalash
	PlaceOrder(ctx context.Context, shopperID string, form entity.CheckoutForm) (*entity.Order, error)

	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	ListOrders(ctx context.Context, shopperID string) ([]entity.Order, error)
}

type checkoutUseCase struct {
	shopperRepo repository.ShopperRepository
	orderRepo   repository.OrderRepository
	payments    repository.PaymentProcessor
	pricing     entity.Pricing
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCheckoutUseCase yangi CheckoutUseCase yaratish
func NewCheckoutUseCase(
	shopperRepo repository.ShopperRepository,
	orderRepo repository.OrderRepository,
	payments repository.PaymentProcessor,
	pricing entity.Pricing,
) CheckoutUseCase {
	return &checkoutUseCase{
		shopperRepo: shopperRepo,
		orderRepo:   orderRepo,
		payments:    payments,
		pricing:     pricing,
		logger:      log.With().Str("component", "checkout").Logger(),
		now:         time.Now,
	}
}

// Quote savatdan buyurtma xulosasi
func (u *checkoutUseCase) Quote(ctx context.Context, shopperID string) (*Quote, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Items:  shopper.Cart,
		Totals: u.pricing.Compute(shopper.Cart),
	}, nil
}

// PlaceOrder buyurtma berish. Savat to'lovdan oldin band qilinadi, shu payt
// qo'shilgan qatorlar savatda qoladi.
func (u *checkoutUseCase) PlaceOrder(ctx context.Context, shopperID string, form entity.CheckoutForm) (*entity.Order, error) {
	shopper, err := u.shopperRepo.Get(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if len(shopper.Cart) == 0 {
		return nil, errs.ErrEmptyCart
	}

	if verrs := ValidateCheckoutForm(form, u.now()); len(verrs) > 0 {
		return nil, verrs
	}

	var items []entity.CartItem
	if _, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		if len(s.Pending) > 0 {
			return errs.ErrCheckoutInProgress
		}
		if len(s.Cart) == 0 {
			return errs.ErrEmptyCart
		}
		items = s.ClaimCart()
		return nil
	}); err != nil {
		return nil, err
	}

	order, err := u.charge(ctx, shopperID, items, form)
	if err != nil {
		u.release(ctx, shopperID)
		return nil, err
	}

	if _, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		s.Pending = nil
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	u.logger.Info().
		Str("order_id", order.ID).
		Str("shopper_id", shopperID).
		Int("items", len(order.Items)).
		Float64("total", order.Totals.Total).
		Msg("order placed")

	return order, nil
}

// charge band qilingan qatorlar uchun to'lov va buyurtmani saqlash
func (u *checkoutUseCase) charge(ctx context.Context, shopperID string, items []entity.CartItem, form entity.CheckoutForm) (*entity.Order, error) {
	totals := u.pricing.Compute(items)
	orderID := uuid.New().String()
	card := digitsOnly(form.CardNumber)

	result, err := u.payments.Process(ctx, entity.PaymentRequest{
		OrderID:    orderID,
		Amount:     entity.RoundCents(totals.Total),
		CardNumber: card,
		CardName:   form.CardName,
		ExpiryDate: form.ExpiryDate,
		CVV:        form.CVV,
	})
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}
	if !result.Approved {
		return nil, errs.ErrPaymentDeclined
	}

	order := entity.Order{
		ID:            orderID,
		ShopperID:     shopperID,
		Items:         items,
		Totals:        totals.Rounded(),
		Email:         strings.TrimSpace(form.Email),
		ShipTo:        shipTo(form),
		CardLast4:     card[len(card)-4:],
		TransactionID: result.TransactionID,
		Status:        entity.OrderStatusPlaced,
		PlacedAt:      result.ProcessedAt,
	}

	if err := u.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return &order, nil
}

// release band qilingan qatorlarni savatga qaytarish
func (u *checkoutUseCase) release(ctx context.Context, shopperID string) {
	// so'rov bekor qilingan bo'lsa ham savat tiklanishi kerak
	ctx = context.WithoutCancel(ctx)
	if _, err := u.shopperRepo.Update(ctx, shopperID, func(s *entity.Shopper) error {
		s.ReleasePending()
		return nil
	}); err != nil {
		u.logger.Error().Err(err).Str("shopper_id", shopperID).Msg("failed to restore cart")
	}
}

func (u *checkoutUseCase) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	return u.orderRepo.GetByID(ctx, orderID)
}

func (u *checkoutUseCase) ListOrders(ctx context.Context, shopperID string) ([]entity.Order, error) {
	return u.orderRepo.ListByShopper(ctx, shopperID)
}

// ValidateCheckoutForm checkout formasini tekshirish, xato bo'lmasa nil
func ValidateCheckoutForm(form entity.CheckoutForm, now time.Time) errs.ValidationErrors {
	var verrs errs.ValidationErrors
	add := func(field, tag string) {
		verrs = append(verrs, errs.FieldError{Field: field, Tag: tag})
	}

	required := []struct {
		field string
		value string
	}{
		{"email", form.Email},
		{"firstName", form.FirstName},
		{"lastName", form.LastName},
		{"address", form.Address},
		{"city", form.City},
		{"state", form.State},
		{"zipCode", form.ZipCode},
		{"country", form.Country},
		{"cardNumber", form.CardNumber},
		{"cardName", form.CardName},
		{"expiryDate", form.ExpiryDate},
		{"cvv", form.CVV},
	}
	missing := make(map[string]bool)
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			add(r.field, TagRequired)
			missing[r.field] = true
		}
	}

	if !missing["email"] && !ValidEmail(form.Email) {
		add("email", TagEmail)
	}

	if !missing["cardNumber"] {
		card := digitsOnly(form.CardNumber)
		if len(card) < 13 || len(card) > 16 || len(card) != len(strings.ReplaceAll(strings.ReplaceAll(form.CardNumber, " ", ""), "-", "")) {
			add("cardNumber", TagCardNumber)
		}
	}

	if !missing["expiryDate"] {
		month, year, ok := parseExpiry(form.ExpiryDate)
		switch {
		case !ok:
			add("expiryDate", TagExpiry)
		case year < now.Year() || (year == now.Year() && month < int(now.Month())):
			add("expiryDate", TagExpired)
		}
	}

	if !missing["cvv"] {
		cvv := strings.TrimSpace(form.CVV)
		if len(cvv) != 3 || digitsOnly(cvv) != cvv {
			add("cvv", TagCVV)
		}
	}

	if len(verrs) == 0 {
		return nil
	}
	return verrs
}

// ValidEmail oddiy email shakli tekshiruvi
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// parseExpiry MM/YY formatini o'qish, yil to'liq qaytadi
func parseExpiry(s string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	yy, err := strconv.Atoi(parts[1])
	if err != nil || yy < 0 {
		return 0, 0, false
	}
	return month, 2000 + yy, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func shipTo(form entity.CheckoutForm) string {
	name := strings.TrimSpace(form.FirstName + " " + form.LastName)
	return fmt.Sprintf("%s, %s, %s, %s %s, %s",
		name, strings.TrimSpace(form.Address), strings.TrimSpace(form.City),
		strings.TrimSpace(form.State), strings.TrimSpace(form.ZipCode), strings.TrimSpace(form.Country))
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/usecase"
	"github.com/yourusername/luxecart/pkg/errs"
)

// checkoutStep checkout formasining bitta maydoni
type checkoutStep struct {
	field     string
	prompt    string
	sensitive bool
	set       func(f *entity.CheckoutForm, v string)
}

var checkoutSteps = []checkoutStep{
	{field: "email", prompt: "✉️ Your email address:", set: func(f *entity.CheckoutForm, v string) { f.Email = v }},
	{field: "firstName", prompt: "👤 First name:", set: func(f *entity.CheckoutForm, v string) { f.FirstName = v }},
	{field: "lastName", prompt: "👤 Last name:", set: func(f *entity.CheckoutForm, v string) { f.LastName = v }},
	{field: "address", prompt: "🏠 Street address:", set: func(f *entity.CheckoutForm, v string) { f.Address = v }},
	{field: "city", prompt: "🏙 City:", set: func(f *entity.CheckoutForm, v string) { f.City = v }},
	{field: "state", prompt: "🗺 State / region:", set: func(f *entity.CheckoutForm, v string) { f.State = v }},
	{field: "zipCode", prompt: "📮 ZIP code:", set: func(f *entity.CheckoutForm, v string) { f.ZipCode = v }},
	{field: "country", prompt: "🌍 Country:", set: func(f *entity.CheckoutForm, v string) { f.Country = v }},
	{field: "cardNumber", prompt: "💳 Card number (13-16 digits):", sensitive: true, set: func(f *entity.CheckoutForm, v string) { f.CardNumber = v }},
	{field: "cardName", prompt: "💳 Name on card:", set: func(f *entity.CheckoutForm, v string) { f.CardName = v }},
	{field: "expiryDate", prompt: "📅 Expiry date (MM/YY):", sensitive: true, set: func(f *entity.CheckoutForm, v string) { f.ExpiryDate = v }},
	{field: "cvv", prompt: "🔒 CVV (3 digits):", sensitive: true, set: func(f *entity.CheckoutForm, v string) { f.CVV = v }},
}

var fieldErrorText = map[string]string{
	usecase.TagRequired:   "This field is required.",
	usecase.TagEmail:      "That email address does not look right.",
	usecase.TagCardNumber: "The card number must be 13 to 16 digits.",
	usecase.TagExpiry:     "Use the MM/YY format, for example 08/27.",
	usecase.TagExpired:    "This card has expired.",
	usecase.TagCVV:        "The CVV must be exactly 3 digits.",
}

// checkoutSession bosqichma-bosqich checkout holati
type checkoutSession struct {
	step       int
	form       entity.CheckoutForm
	processing bool
}

func (s *checkoutSession) reviewing() bool {
	return s.step >= len(checkoutSteps)
}

func (h *BotHandler) hasCheckoutSession(userID int64) bool {
	h.checkoutMu.RLock()
	defer h.checkoutMu.RUnlock()
	_, ok := h.checkoutSessions[userID]
	return ok
}

func (h *BotHandler) clearCheckoutSession(userID int64) {
	h.checkoutMu.Lock()
	defer h.checkoutMu.Unlock()
	delete(h.checkoutSessions, userID)
}

// startCheckout savat bo'sh bo'lmasa formani boshlash
func (h *BotHandler) startCheckout(ctx context.Context, chatID, userID int64) {
	quote, err := h.checkout.Quote(ctx, shopperID(userID))
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("checkout quote failed")
		h.sendMessage(chatID, "Could not start checkout, please try again.")
		return
	}
	if len(quote.Items) == 0 {
		h.sendMessage(chatID, "🛒 Your cart is empty.\n\nUse /products to start shopping.")
		return
	}

	h.checkoutMu.Lock()
	h.checkoutSessions[userID] = &checkoutSession{}
	h.checkoutMu.Unlock()

	h.sendMessage(chatID, fmt.Sprintf("💳 Checkout: %d items, total %s.\nSend /cancel at any time to stop.\n\n%s",
		quote.Totals.Items, money(quote.Totals.Total), checkoutSteps[0].prompt))
}

// handleCheckoutFlow navbatdagi maydonni qabul qilish
func (h *BotHandler) handleCheckoutFlow(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	value := strings.TrimSpace(message.Text)

	h.checkoutMu.Lock()
	session, ok := h.checkoutSessions[userID]
	if !ok {
		h.checkoutMu.Unlock()
		return
	}
	if session.reviewing() {
		h.checkoutMu.Unlock()
		h.sendMessage(chatID, "Tap Pay to place the order, or Cancel to stop.")
		return
	}

	step := checkoutSteps[session.step]
	step.set(&session.form, value)
	tag := fieldTag(usecase.ValidateCheckoutForm(session.form, time.Now()), step.field)
	if tag == "" {
		session.step++
	}
	form := session.form
	next := session.step
	h.checkoutMu.Unlock()

	// Karta ma'lumotlari chatda qolmasin
	if step.sensitive {
		h.deleteMessage(chatID, message.MessageID)
	}

	if tag != "" {
		h.sendMessage(chatID, fieldErrorText[tag]+"\n\n"+step.prompt)
		return
	}
	if next < len(checkoutSteps) {
		h.sendMessage(chatID, checkoutSteps[next].prompt)
		return
	}

	h.sendCheckoutReview(ctx, chatID, userID, form)
}

func (h *BotHandler) sendCheckoutReview(ctx context.Context, chatID, userID int64, form entity.CheckoutForm) {
	quote, err := h.checkout.Quote(ctx, shopperID(userID))
	if err != nil || len(quote.Items) == 0 {
		h.clearCheckoutSession(userID)
		h.sendMessage(chatID, "🛒 Your cart is empty now, checkout cancelled.")
		return
	}
	h.sendWithMarkup(chatID, renderCheckoutReview(quote, form), confirmKeyboard(quote.Totals.Total))
}

// placeOrder tasdiqlangandan keyin to'lov va buyurtma
func (h *BotHandler) placeOrder(ctx context.Context, chatID, userID int64) {
	h.checkoutMu.Lock()
	session, ok := h.checkoutSessions[userID]
	if !ok || !session.reviewing() || session.processing {
		h.checkoutMu.Unlock()
		if !ok {
			h.sendMessage(chatID, "This checkout has expired. Use /checkout to start again.")
		}
		return
	}
	session.processing = true
	form := session.form
	h.checkoutMu.Unlock()

	h.sendMessage(chatID, "⏳ Processing your payment...")

	order, err := h.checkout.PlaceOrder(ctx, shopperID(userID), form)
	h.clearCheckoutSession(userID)

	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", userID).Msg("place order failed")
		var verrs errs.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			h.sendMessage(chatID, "❌ Some details are invalid: "+strings.Join(fieldNames(verrs), ", ")+". Use /checkout to try again.")
		case errors.Is(err, errs.ErrEmptyCart):
			h.sendMessage(chatID, "🛒 Your cart is empty.")
		case errors.Is(err, errs.ErrCheckoutInProgress):
			h.sendMessage(chatID, "⏳ Your previous order is still being processed.")
		case errors.Is(err, errs.ErrPaymentDeclined):
			h.sendMessage(chatID, "❌ Your payment was declined. Your cart is unchanged.")
		default:
			h.sendMessage(chatID, "❌ Payment failed, please try again later. Your cart is unchanged.")
		}
		return
	}

	h.sendMessage(chatID, renderOrder(order))
}

// fieldTag berilgan maydonning birinchi xato tegi
func fieldTag(verrs errs.ValidationErrors, field string) string {
	for _, fe := range verrs {
		if fe.Field == field {
			return fe.Tag
		}
	}
	return ""
}

func fieldNames(verrs errs.ValidationErrors) []string {
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field)
	}
	return names
}

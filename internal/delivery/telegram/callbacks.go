package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/pkg/errs"
)

// handleCallback inline tugmalarni qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.From == nil || callback.Message == nil || callback.Message.Chat == nil {
		h.answerCallback(callback.ID, "")
		return
	}

	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	sid := shopperID(userID)
	action, arg := parseCallback(callback.Data)

	var notice string
	switch action {
	case cbView:
		h.sendProduct(ctx, chatID, userID, arg)

	case cbAdd:
		_, err := h.cart.AddToCart(ctx, sid, arg, 1)
		notice = cartNotice(err, "🛒 Added to cart")

	case cbInc, cbDec:
		if err := h.changeQuantity(ctx, sid, arg, action == cbInc); err != nil {
			notice = cartNotice(err, "")
		}
		h.refreshCart(ctx, chatID, messageID, userID)

	case cbRemove:
		if _, err := h.cart.RemoveFromCart(ctx, sid, arg); err != nil {
			h.logger.Error().Err(err).Msg("remove from cart failed")
		}
		h.refreshCart(ctx, chatID, messageID, userID)

	case cbClearCart:
		if err := h.cart.ClearCart(ctx, sid); err != nil {
			h.logger.Error().Err(err).Msg("clear cart failed")
		}
		h.refreshCart(ctx, chatID, messageID, userID)
		notice = "Cart cleared"

	case cbWish:
		added, err := h.cart.ToggleWishlist(ctx, sid, arg)
		switch {
		case err != nil:
			notice = cartNotice(err, "")
		case added:
			notice = "♥ Added to wishlist"
		default:
			notice = "Removed from wishlist"
		}
		h.refreshProductKeyboard(ctx, chatID, messageID, userID, arg)

	case cbWishToCart:
		err := h.cart.MoveWishlistToCart(ctx, sid, arg)
		notice = cartNotice(err, "🛒 Moved to cart")
		h.refreshWishlist(ctx, chatID, messageID, userID)

	case cbWishRemove:
		if _, err := h.cart.RemoveFromWishlist(ctx, sid, arg); err != nil {
			h.logger.Error().Err(err).Msg("remove from wishlist failed")
		}
		h.refreshWishlist(ctx, chatID, messageID, userID)

	case cbCompare:
		added, err := h.cart.ToggleCompare(ctx, sid, arg)
		switch {
		case err != nil:
			notice = cartNotice(err, "")
		case added:
			notice = "⚖ Added to compare"
		default:
			notice = "Removed from compare"
		}
		h.refreshProductKeyboard(ctx, chatID, messageID, userID, arg)

	case cbCompareDrop:
		if _, err := h.cart.RemoveFromCompare(ctx, sid, arg); err != nil {
			h.logger.Error().Err(err).Msg("remove from compare failed")
		}
		h.refreshCompare(ctx, chatID, messageID, userID)

	case cbClearCompare:
		if err := h.cart.ClearCompare(ctx, sid); err != nil {
			h.logger.Error().Err(err).Msg("clear compare failed")
		}
		h.refreshCompare(ctx, chatID, messageID, userID)

	case cbCategory:
		h.sendProducts(ctx, chatID, arg)

	case cbFeatured:
		h.sendFeatured(ctx, chatID)

	case cbCart:
		h.sendCart(ctx, chatID, userID)

	case cbCheckout:
		h.startCheckout(ctx, chatID, userID)

	case cbPay:
		// Javob avval, to'lov bir necha soniya oladi
		h.answerCallback(callback.ID, "")
		h.placeOrder(ctx, chatID, userID)
		return

	case cbCancelOrder:
		h.clearCheckoutSession(userID)
		h.sendMessage(chatID, "Checkout cancelled. Your cart is unchanged.")

	case cbAdminMsgs:
		isAdmin, _ := h.admin.IsAdmin(ctx, userID)
		if !isAdmin {
			notice = "Admins only"
			break
		}
		h.sendAdminMessages(ctx, chatID)

	default:
		h.logger.Debug().Str("data", callback.Data).Msg("unknown callback")
	}

	h.answerCallback(callback.ID, notice)
}

// cartNotice xatoni qisqa toast matniga aylantirish
func cartNotice(err error, ok string) string {
	switch {
	case err == nil:
		return ok
	case errors.Is(err, errs.ErrOutOfStock):
		return "Sorry, this product is out of stock"
	case errors.Is(err, errs.ErrCompareFull):
		return fmt.Sprintf("You can compare up to %d products", entity.MaxCompareItems)
	case errors.Is(err, errs.ErrProductNotFound):
		return "This product is no longer available"
	case errors.Is(err, errs.ErrInvalidQuantity):
		return fmt.Sprintf("You can add up to %d of each product", entity.MaxLineQuantity)
	default:
		return "Something went wrong, please try again"
	}
}

func (h *BotHandler) changeQuantity(ctx context.Context, sid, productID string, increase bool) error {
	items, err := h.cart.GetCart(ctx, sid)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID != productID {
			continue
		}
		qty := item.Quantity - 1
		if increase {
			qty = item.Quantity + 1
		}
		_, err := h.cart.UpdateQuantity(ctx, sid, productID, qty)
		return err
	}
	return nil
}

func (h *BotHandler) refreshCart(ctx context.Context, chatID int64, messageID int, userID int64) {
	text, markup, err := h.cartView(ctx, userID)
	if err != nil {
		return
	}
	h.editMessage(chatID, messageID, text, markup)
}

func (h *BotHandler) refreshWishlist(ctx context.Context, chatID int64, messageID int, userID int64) {
	products, err := h.cart.GetWishlist(ctx, shopperID(userID))
	if err != nil {
		return
	}
	h.editMessage(chatID, messageID, renderWishlist(products), wishlistKeyboard(products))
}

func (h *BotHandler) refreshCompare(ctx context.Context, chatID int64, messageID int, userID int64) {
	products, err := h.cart.GetCompare(ctx, shopperID(userID))
	if err != nil {
		return
	}
	h.editMessage(chatID, messageID, renderCompare(products), compareKeyboard(products))
}

// refreshProductKeyboard faqat tugmalarni yangilash, rasmli xabarda ham ishlaydi
func (h *BotHandler) refreshProductKeyboard(ctx context.Context, chatID int64, messageID int, userID int64, productID string) {
	product, err := h.products.GetByID(ctx, productID)
	if err != nil {
		return
	}
	inWishlist, inCompare := h.membership(ctx, userID, productID)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, productKeyboard(*product, inWishlist, inCompare))
	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Debug().Err(err).Msg("edit markup failed")
	}
}

func (h *BotHandler) editMessage(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if len(markup.InlineKeyboard) > 0 {
		edit.ReplyMarkup = &markup
	}
	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Debug().Err(err).Msg("edit message failed")
	}
}

func (h *BotHandler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Debug().Err(err).Msg("answer callback failed")
	}
}

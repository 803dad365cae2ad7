package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/usecase"
	"github.com/yourusername/luxecart/pkg/errs"
	"github.com/yourusername/luxecart/pkg/logger"
)

const (
	maxUploadSize  = 5 * 1024 * 1024
	listLimit      = 10
	maxCaptionSize = 1024
)

// botAPI handler ishlatadigan Telegram API qismi
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// UseCases bot ishlatadigan business logic
type UseCases struct {
	Products   usecase.ProductUseCase
	Cart       usecase.CartUseCase
	Checkout   usecase.CheckoutUseCase
	Storefront usecase.StorefrontUseCase
	Chat       usecase.ChatUseCase
	Admin      usecase.AdminUseCase
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot        botAPI
	username   string
	httpClient *http.Client
	logger     zerolog.Logger

	products   usecase.ProductUseCase
	cart       usecase.CartUseCase
	checkout   usecase.CheckoutUseCase
	storefront usecase.StorefrontUseCase
	chat       usecase.ChatUseCase
	admin      usecase.AdminUseCase

	checkoutMu       sync.RWMutex
	checkoutSessions map[int64]*checkoutSession

	// Admin login kutilayotgan userlar
	awaitingPassword map[int64]bool
	mu               sync.RWMutex
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(token string, uc UseCases) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return newBotHandler(bot, bot.Self.UserName, uc), nil
}

func newBotHandler(bot botAPI, username string, uc UseCases) *BotHandler {
	return &BotHandler{
		bot:              bot,
		username:         username,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		logger:           logger.Component("telegram"),
		products:         uc.Products,
		cart:             uc.Cart,
		checkout:         uc.Checkout,
		storefront:       uc.Storefront,
		chat:             uc.Chat,
		admin:            uc.Admin,
		checkoutSessions: make(map[int64]*checkoutSession),
		awaitingPassword: make(map[int64]bool),
	}
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info().Str("bot", h.username).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// GetBotUsername bot username ni olish
func (h *BotHandler) GetBotUsername() string {
	return h.username
}

func shopperID(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	userID := message.From.ID

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	// Parol kutilayotgan bo'lsa
	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if strings.TrimSpace(message.Text) != "" {
		h.handleTextMessage(ctx, message)
	}
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.sendHome(ctx, chatID, userID)
	case "help":
		h.sendMessage(chatID, helpText())
	case "products":
		h.sendProducts(ctx, chatID, args)
	case "search":
		if args == "" {
			h.sendMessage(chatID, "Usage: /search <query>")
			return
		}
		h.sendSearch(ctx, chatID, args)
	case "cart":
		h.sendCart(ctx, chatID, userID)
	case "wishlist":
		h.sendWishlist(ctx, chatID, userID)
	case "compare":
		h.sendCompare(ctx, chatID, userID)
	case "checkout":
		h.startCheckout(ctx, chatID, userID)
	case "cancel":
		h.clearCheckoutSession(userID)
		h.sendMessage(chatID, "Checkout cancelled. Your cart is unchanged.")
	case "orders":
		h.sendOrders(ctx, chatID, userID)
	case "subscribe":
		h.handleSubscribe(ctx, chatID, args)
	case "contact":
		h.sendMessage(chatID, renderContact(h.storefront.Contact(ctx)))
	case "clear":
		h.handleClearCommand(ctx, chatID, userID)
	case "admin":
		h.handleAdminCommand(ctx, chatID, userID)
	case "logout":
		h.handleLogoutCommand(ctx, chatID, userID)
	case "catalog":
		h.handleCatalogCommand(ctx, chatID, userID)
	case "sales":
		h.handleSalesCommand(ctx, chatID, userID)
	case "clean":
		h.handleCleanCommand(ctx, chatID, userID)
	default:
		h.sendMessage(chatID, "Unknown command. /help lists what I can do.")
	}
}

// handleTextMessage oddiy matn: checkout, yordamchi yoki qidiruv
func (h *BotHandler) handleTextMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	if h.hasCheckoutSession(userID) {
		h.handleCheckoutFlow(ctx, message)
		return
	}

	if !h.chat.Enabled() {
		h.sendSearch(ctx, chatID, text)
		return
	}

	// "typing" indikatori
	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.logger.Debug().Err(err).Msg("typing action failed")
	}

	response, err := h.chat.ProcessMessage(ctx, shopperID(userID), displayName(message.From), text)
	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", userID).Msg("assistant failed, falling back to search")
		if errors.Is(err, errs.ErrAssistantUnhealthy) {
			h.sendMessage(chatID, "The assistant is busy right now, here is what the catalog search found:")
		}
		h.sendSearch(ctx, chatID, text)
		return
	}

	h.sendMessage(chatID, response)
}

func (h *BotHandler) sendHome(ctx context.Context, chatID, userID int64) {
	home, err := h.storefront.Home(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("home page failed")
		h.sendMessage(chatID, welcomeText())
		return
	}
	summary, _ := h.cart.Summary(ctx, shopperID(userID))

	h.sendMessage(chatID, welcomeText())
	h.sendWithMarkup(chatID, renderHome(home, summary), homeKeyboard(home))
}

func (h *BotHandler) sendProducts(ctx context.Context, chatID int64, category string) {
	title := "🛍 All products"
	if category != "" {
		title = "🛍 " + category
	}

	page, err := h.products.List(ctx, entity.ProductFilter{Category: category, Limit: listLimit})
	if err != nil {
		h.logger.Error().Err(err).Str("category", category).Msg("product list failed")
		h.sendMessage(chatID, "Could not load products, please try again.")
		return
	}
	if page.Total > len(page.Products) {
		title = fmt.Sprintf("%s (showing %d of %d)", title, len(page.Products), page.Total)
	}
	h.sendProductList(chatID, title, page.Products)
}

func (h *BotHandler) sendFeatured(ctx context.Context, chatID int64) {
	featured, err := h.products.Featured(ctx, usecase.FeaturedCount)
	if err != nil {
		h.sendMessage(chatID, "Could not load products, please try again.")
		return
	}
	h.sendProductList(chatID, "🔥 Featured products", featured)
}

func (h *BotHandler) sendSearch(ctx context.Context, chatID int64, query string) {
	results, err := h.products.Search(ctx, query)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("search failed")
		h.sendMessage(chatID, "Search failed, please try again.")
		return
	}
	if len(results) == 0 {
		h.sendMessage(chatID, fmt.Sprintf("Nothing found for \"%s\". Try /products to browse.", truncateString(query, 60)))
		return
	}
	if len(results) > listLimit {
		results = results[:listLimit]
	}
	h.sendProductList(chatID, fmt.Sprintf("🔎 Results for \"%s\"", truncateString(query, 60)), results)
}

func (h *BotHandler) sendProductList(chatID int64, title string, products []entity.Product) {
	if len(products) == 0 {
		h.sendMessage(chatID, renderProductList(title, products))
		return
	}
	h.sendWithMarkup(chatID, renderProductList(title, products), productListKeyboard(products))
}

// sendProduct mahsulot sahifasi, rasm bo'lsa rasm bilan
func (h *BotHandler) sendProduct(ctx context.Context, chatID, userID int64, productID string) {
	product, err := h.products.GetByID(ctx, productID)
	if err != nil {
		h.sendMessage(chatID, "This product is no longer available.")
		return
	}

	inWishlist, inCompare := h.membership(ctx, userID, product.ID)
	text := renderProduct(*product)
	markup := productKeyboard(*product, inWishlist, inCompare)

	if product.Image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(product.Image))
		photo.Caption = truncateString(text, maxCaptionSize)
		photo.ReplyMarkup = markup
		if _, err := h.bot.Send(photo); err == nil {
			return
		}
		h.logger.Debug().Str("product_id", product.ID).Msg("photo send failed, using text")
	}
	h.sendWithMarkup(chatID, text, markup)
}

func (h *BotHandler) membership(ctx context.Context, userID int64, productID string) (inWishlist, inCompare bool) {
	sid := shopperID(userID)
	inWishlist, _ = h.cart.IsInWishlist(ctx, sid, productID)
	compare, _ := h.cart.GetCompare(ctx, sid)
	for _, p := range compare {
		if p.ID == productID {
			inCompare = true
			break
		}
	}
	return inWishlist, inCompare
}

func (h *BotHandler) sendCart(ctx context.Context, chatID, userID int64) {
	text, markup, err := h.cartView(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "Could not load your cart, please try again.")
		return
	}
	h.sendWithMarkup(chatID, text, markup)
}

func (h *BotHandler) cartView(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	sid := shopperID(userID)
	items, err := h.cart.GetCart(ctx, sid)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	totals, err := h.cart.Totals(ctx, sid)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return renderCart(items, totals), cartKeyboard(items), nil
}

func (h *BotHandler) sendWishlist(ctx context.Context, chatID, userID int64) {
	products, err := h.cart.GetWishlist(ctx, shopperID(userID))
	if err != nil {
		h.sendMessage(chatID, "Could not load your wishlist, please try again.")
		return
	}
	h.sendWithMarkup(chatID, renderWishlist(products), wishlistKeyboard(products))
}

func (h *BotHandler) sendCompare(ctx context.Context, chatID, userID int64) {
	products, err := h.cart.GetCompare(ctx, shopperID(userID))
	if err != nil {
		h.sendMessage(chatID, "Could not load your compare list, please try again.")
		return
	}
	h.sendWithMarkup(chatID, renderCompare(products), compareKeyboard(products))
}

func (h *BotHandler) sendOrders(ctx context.Context, chatID, userID int64) {
	orders, err := h.checkout.ListOrders(ctx, shopperID(userID))
	if err != nil {
		h.sendMessage(chatID, "Could not load your orders, please try again.")
		return
	}
	h.sendMessage(chatID, renderOrders(orders))
}

func (h *BotHandler) handleSubscribe(ctx context.Context, chatID int64, email string) {
	if email == "" {
		h.sendMessage(chatID, "Usage: /subscribe you@example.com")
		return
	}

	_, err := h.storefront.Subscribe(ctx, email)
	switch {
	case err == nil:
		h.sendMessage(chatID, "📬 Subscribed! You will get our latest products and offers.")
	case errors.Is(err, errs.ErrInvalidEmail):
		h.sendMessage(chatID, "That email address does not look right.")
	case errors.Is(err, errs.ErrAlreadySubscribed):
		h.sendMessage(chatID, "This email is already subscribed.")
	default:
		h.logger.Error().Err(err).Msg("subscribe failed")
		h.sendMessage(chatID, "Could not subscribe, please try again.")
	}
}

// handleClearCommand yordamchi tarixini tozalash
func (h *BotHandler) handleClearCommand(ctx context.Context, chatID, userID int64) {
	if err := h.chat.ClearHistory(ctx, shopperID(userID)); err != nil {
		h.sendMessage(chatID, "Could not clear the history.")
		return
	}
	h.sendMessage(chatID, "✅ Assistant history cleared.")
}

// handleAdminCommand admin login boshlash
func (h *BotHandler) handleAdminCommand(ctx context.Context, chatID, userID int64) {
	if !h.admin.Enabled() {
		h.sendMessage(chatID, "The admin panel is disabled.")
		return
	}

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(chatID, "You are already logged in as admin.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(chatID, "🔐 Enter the admin password:")
}

// handlePasswordInput parol kiritilganini qayta ishlash
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	h.setAwaitingPassword(userID, false)

	// Parolli xabarni o'chirish
	h.deleteMessage(chatID, message.MessageID)

	success, err := h.admin.Login(ctx, userID, message.Text)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("admin login failed")
		h.sendMessage(chatID, "❌ Login failed.")
		return
	}
	if !success {
		h.logger.Warn().Int64("user_id", userID).Msg("wrong admin password")
		h.sendMessage(chatID, "❌ Wrong password.")
		return
	}

	welcome := `✅ Welcome to the admin panel!

📤 Send an Excel file (.xlsx, up to 5MB) to replace the catalog. Columns:
- Name, Category, Price (required)
- Discount, Rating, Reviews, Image, In Stock, Description (optional)
- any other column becomes a product spec

/catalog - Catalog info
/sales - Recent orders and admin actions
/clean - Reset catalog to defaults and clear chats
/logout - Leave the admin panel`

	h.sendWithMarkup(chatID, welcome, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 Assistant conversations", cbAdminMsgs),
		),
	))
}

func (h *BotHandler) handleLogoutCommand(ctx context.Context, chatID, userID int64) {
	if err := h.admin.Logout(ctx, userID); err != nil {
		h.sendMessage(chatID, "❌ Logout failed.")
		return
	}
	h.sendMessage(chatID, "👋 Logged out of the admin panel.")
}

func (h *BotHandler) requireAdmin(ctx context.Context, chatID, userID int64) bool {
	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(chatID, "❌ Admins only. Use /admin to log in.")
	}
	return isAdmin
}

func (h *BotHandler) handleCatalogCommand(ctx context.Context, chatID, userID int64) {
	if !h.requireAdmin(ctx, chatID, userID) {
		return
	}
	info, err := h.admin.GetCatalogInfo(ctx)
	if err != nil {
		h.sendMessage(chatID, "📭 No catalog loaded yet.")
		return
	}
	h.sendMessage(chatID, info)
}

func (h *BotHandler) handleSalesCommand(ctx context.Context, chatID, userID int64) {
	if !h.requireAdmin(ctx, chatID, userID) {
		return
	}

	orders, err := h.admin.RecentOrders(ctx, userID, 10)
	if err != nil {
		h.sendMessage(chatID, "Could not load orders.")
		return
	}
	actions, _ := h.admin.RecentActions(ctx, userID, 5)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 Recent orders (%d)\n", len(orders)))
	var revenue float64
	for _, o := range orders {
		revenue += o.Totals.Total
		sb.WriteString(fmt.Sprintf("• %s %s %s %s\n", o.PlacedAt.Format("01-02 15:04"), truncateString(o.ID, 8), o.Email, money(o.Totals.Total)))
	}
	sb.WriteString(fmt.Sprintf("Revenue: %s\n\n🧾 Admin actions\n", money(revenue)))
	for _, a := range actions {
		sb.WriteString(fmt.Sprintf("• %s %s: %s\n", a.Timestamp.Format("01-02 15:04"), a.Action, a.Details))
	}
	h.sendMessage(chatID, strings.TrimRight(sb.String(), "\n"))
}

func (h *BotHandler) handleCleanCommand(ctx context.Context, chatID, userID int64) {
	if !h.requireAdmin(ctx, chatID, userID) {
		return
	}
	if err := h.admin.CleanAll(ctx, userID); err != nil {
		h.logger.Error().Err(err).Msg("clean all failed")
		h.sendMessage(chatID, "❌ Reset failed.")
		return
	}
	h.sendMessage(chatID, "🧹 Catalog reset to defaults and assistant chats cleared.")
}

// handleDocumentMessage fayl yuborilganda
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(chatID, "❌ Only admins can upload files. Use /admin to log in.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxUploadSize {
		h.sendMessage(chatID, "❌ The file must be 5MB or smaller.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "❌ Only Excel (.xlsx) files are accepted.")
		return
	}

	h.sendMessage(chatID, "⏳ Uploading and parsing the catalog...")

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		h.logger.Error().Err(err).Str("file", doc.FileName).Msg("file download failed")
		h.sendMessage(chatID, "❌ Could not download the file.")
		return
	}

	count, err := h.admin.UploadCatalog(ctx, userID, data, doc.FileName)
	if err != nil {
		h.logger.Error().Err(err).Str("file", doc.FileName).Msg("catalog upload failed")
		h.sendMessage(chatID, fmt.Sprintf("❌ Catalog update failed: %v", err))
		return
	}

	h.logger.Info().Int("products", count).Str("file", doc.FileName).Msg("catalog uploaded")
	h.sendMessage(chatID, fmt.Sprintf("✅ Catalog updated!\n\n📦 Products: %d\n📄 File: %s\n\n/catalog - Catalog info", count, doc.FileName))
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadSize+1))
}

func (h *BotHandler) sendAdminMessages(ctx context.Context, chatID int64) {
	msgs, err := h.chat.GetAllMessages(ctx, 200)
	if err != nil {
		h.sendMessage(chatID, "❌ Could not load conversations.")
		return
	}
	h.sendMessage(chatID, renderAdminMessages(msgs, 3500))
}

// isAwaitingPassword parol kutilayotganini tekshirish
func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

// setAwaitingPassword parol kutish rejimini o'rnatish
func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}

func (h *BotHandler) sendWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(markup.InlineKeyboard) > 0 {
		msg.ReplyMarkup = markup
	}
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}

func (h *BotHandler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Debug().Err(err).Msg("delete message failed")
	}
}

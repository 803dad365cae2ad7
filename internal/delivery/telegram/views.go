package telegram

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/usecase"
)

// Callback data prefikslari
const (
	cbView         = "view"
	cbAdd          = "add"
	cbInc          = "inc"
	cbDec          = "dec"
	cbRemove       = "rm"
	cbWish         = "wish"
	cbWishToCart   = "w2c"
	cbWishRemove   = "wrm"
	cbCompare      = "cmp"
	cbCompareDrop  = "crm"
	cbCategory     = "cat"
	cbFeatured     = "featured"
	cbCart         = "cart"
	cbClearCart    = "clear_cart"
	cbClearCompare = "cmp_clear"
	cbCheckout     = "checkout"
	cbPay          = "pay"
	cbCancelOrder  = "cancel_order"
	cbAdminMsgs    = "admin_msgs"
)

func callbackData(action, arg string) string {
	if arg == "" {
		return action
	}
	return action + ":" + arg
}

// parseCallback "action:arg" ni ajratish
func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", entity.RoundCents(v))
}

func truncateString(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func priceLine(p entity.Product) string {
	if !p.HasDiscount() {
		return money(p.Price)
	}
	return fmt.Sprintf("%s (was %s, -%.0f%%)", money(p.FinalPrice()), money(p.Price), p.Discount)
}

func welcomeText() string {
	return `Welcome to LuxeCart! 👋

Browse the catalog, fill your cart and check out without leaving Telegram.
You can also just type what you are looking for, e.g. "wireless headphones" or "gift under $100".

/help shows all commands.`
}

func helpText() string {
	return `🛍 Shopping:
/start - Home page
/products [category] - Browse products
/search <query> - Search the catalog
/cart - Your cart
/wishlist - Saved items
/compare - Compare up to 4 products
/checkout - Place an order
/cancel - Stop checkout
/orders - Your orders
/subscribe <email> - Newsletter
/contact - Contact us
/clear - Forget assistant history

🔐 Admin:
/admin - Log in
/logout - Log out
/catalog - Catalog info
/sales - Recent orders
/clean - Reset catalog and chats
Send an .xlsx file to replace the catalog.`
}

// renderSummary navbar belgilari
func renderSummary(s entity.ShopperSummary) string {
	return fmt.Sprintf("🛒 %d · ♥ %d · ⚖ %d", s.CartItems, s.Wishlist, s.Compare)
}

// renderHome bosh sahifa matni
func renderHome(home *entity.HomePage, summary entity.ShopperSummary) string {
	var sb strings.Builder
	sb.WriteString("✨ LuxeCart: discover amazing products\n")
	sb.WriteString(renderSummary(summary))
	sb.WriteString("\n\n")

	if len(home.Features) > 0 {
		for _, f := range home.Features {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", f.Title, f.Description))
		}
		sb.WriteString("\n")
	}

	if len(home.Featured) > 0 {
		sb.WriteString("🔥 Featured:\n")
		for i, p := range home.Featured {
			sb.WriteString(fmt.Sprintf("%d) %s - %s\n", i+1, p.Name, money(p.FinalPrice())))
		}
		sb.WriteString("\n")
	}

	if len(home.Testimonials) > 0 {
		t := home.Testimonials[0]
		sb.WriteString(fmt.Sprintf("💬 \"%s\" - %s\n", truncateString(t.Content, 140), t.Name))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func homeKeyboard(home *entity.HomePage) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range home.Categories {
		label := fmt.Sprintf("%s (%d)", c.Name, c.Count)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbCategory, c.Slug)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔥 Featured", cbFeatured),
		tgbotapi.NewInlineKeyboardButtonData("🛒 Cart", cbCart),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderProductList raqamlangan ro'yxat
func renderProductList(title string, products []entity.Product) string {
	if len(products) == 0 {
		return fmt.Sprintf("%s\n\nNo products found.", title)
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for i, p := range products {
		sb.WriteString(fmt.Sprintf("%d) %s - %s", i+1, p.Name, priceLine(p)))
		if !p.InStock {
			sb.WriteString(" [out of stock]")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func productListKeyboard(products []entity.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products))
	for i, p := range products {
		label := fmt.Sprintf("%d) %s", i+1, truncateString(p.Name, 30))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbView, p.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderProduct mahsulot sahifasi
func renderProduct(p entity.Product) string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteString("\n")
	sb.WriteString(p.Category)
	if p.Rating > 0 {
		sb.WriteString(fmt.Sprintf(" · ⭐ %.1f (%d reviews)", p.Rating, p.Reviews))
	}
	sb.WriteString("\n\n")
	sb.WriteString(priceLine(p))
	sb.WriteString("\n")
	if p.InStock {
		sb.WriteString("✅ In stock")
	} else {
		sb.WriteString("❌ Out of stock")
	}
	if p.Description != "" {
		sb.WriteString("\n\n")
		sb.WriteString(p.Description)
	}
	if len(p.Specs) > 0 {
		keys := make([]string, 0, len(p.Specs))
		for k := range p.Specs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("\n• %s: %s", k, p.Specs[k]))
		}
	}
	return sb.String()
}

func productKeyboard(p entity.Product, inWishlist, inCompare bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if p.InStock {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Add to cart", callbackData(cbAdd, p.ID)),
		))
	}

	wishLabel := "♡ Wishlist"
	if inWishlist {
		wishLabel = "♥ In wishlist"
	}
	compareLabel := "⚖ Compare"
	if inCompare {
		compareLabel = "✓ Comparing"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(wishLabel, callbackData(cbWish, p.ID)),
		tgbotapi.NewInlineKeyboardButtonData(compareLabel, callbackData(cbCompare, p.ID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderTotals summalar bloki
func renderTotals(t entity.Totals) string {
	t = t.Rounded()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subtotal: %s\n", money(t.Subtotal)))
	if t.FreeShipping {
		sb.WriteString("Shipping: Free\n")
	} else {
		sb.WriteString(fmt.Sprintf("Shipping: %s\n", money(t.Shipping)))
	}
	sb.WriteString(fmt.Sprintf("Tax: %s\n", money(t.Tax)))
	sb.WriteString(fmt.Sprintf("Total: %s", money(t.Total)))
	if t.FreeShippingRemaining > 0 {
		sb.WriteString(fmt.Sprintf("\n\n🚚 Add %s more for free shipping!", money(t.FreeShippingRemaining)))
	}
	return sb.String()
}

// renderCart savat sahifasi
func renderCart(items []entity.CartItem, totals entity.Totals) string {
	if len(items) == 0 {
		return "🛒 Your cart is empty.\n\nUse /products to start shopping."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 Your cart (%d items)\n\n", totals.Items))
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d) %s\n   %s × %d = %s", i+1, item.Name, money(item.UnitPrice()), item.Quantity, money(item.LineTotal())))
		if item.HasDiscount() {
			sb.WriteString(fmt.Sprintf(" (was %s)", money(item.LineOriginal())))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(renderTotals(totals))
	return sb.String()
}

func cartKeyboard(items []entity.CartItem) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", callbackData(cbDec, item.ID)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s × %d", truncateString(item.Name, 18), item.Quantity), callbackData(cbView, item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("➕", callbackData(cbInc, item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("✖", callbackData(cbRemove, item.ID)),
		))
	}
	if len(items) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear", cbClearCart),
			tgbotapi.NewInlineKeyboardButtonData("💳 Checkout", cbCheckout),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func renderWishlist(products []entity.Product) string {
	if len(products) == 0 {
		return "♥ Your wishlist is empty."
	}
	return renderProductList(fmt.Sprintf("♥ Wishlist (%d)", len(products)), products)
}

func wishlistKeyboard(products []entity.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products))
	for _, p := range products {
		row := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(truncateString(p.Name, 24), callbackData(cbView, p.ID)),
		)
		if p.InStock {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🛒 Move", callbackData(cbWishToCart, p.ID)))
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖", callbackData(cbWishRemove, p.ID)))
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderCompare mahsulotlarni yonma-yon solishtirish
func renderCompare(products []entity.Product) string {
	if len(products) == 0 {
		return fmt.Sprintf("⚖ Nothing to compare yet. Add up to %d products.", entity.MaxCompareItems)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚖ Compare (%d/%d)\n", len(products), entity.MaxCompareItems))
	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		sb.WriteString(fmt.Sprintf("\n%s\n  Price: %s\n  Rating: %.1f (%d reviews)\n  Category: %s\n  Availability: %s\n",
			p.Name, priceLine(p), p.Rating, p.Reviews, p.Category, stock))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func compareKeyboard(products []entity.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products)+1)
	for _, p := range products {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖ "+truncateString(p.Name, 28), callbackData(cbCompareDrop, p.ID)),
		))
	}
	if len(products) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear", cbClearCompare),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderCheckoutReview to'lovdan oldingi tasdiq
func renderCheckoutReview(quote *usecase.Quote, form entity.CheckoutForm) string {
	var sb strings.Builder
	sb.WriteString("📋 Order summary\n\n")
	for _, item := range quote.Items {
		sb.WriteString(fmt.Sprintf("• %s × %d = %s\n", item.Name, item.Quantity, money(item.LineTotal())))
	}
	sb.WriteString("\n")
	sb.WriteString(renderTotals(quote.Totals))
	sb.WriteString(fmt.Sprintf("\n\nShip to: %s %s, %s, %s, %s %s, %s\nEmail: %s\nCard: %s",
		form.FirstName, form.LastName, form.Address, form.City, form.State, form.ZipCode, form.Country,
		form.Email, maskCard(form.CardNumber)))
	return sb.String()
}

func confirmKeyboard(total float64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Pay "+money(total), cbPay),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", cbCancelOrder),
		),
	)
}

func maskCard(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "****"
	}
	return "**** " + string(digits[len(digits)-4:])
}

// renderOrder buyurtma muvaffaqiyatli sahifasi
func renderOrder(order *entity.Order) string {
	var sb strings.Builder
	sb.WriteString("✅ Order placed!\n\n")
	sb.WriteString(fmt.Sprintf("Order: %s\n", order.ID))
	sb.WriteString(fmt.Sprintf("Placed: %s\n", order.PlacedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Total: %s\n", money(order.Totals.Total)))
	sb.WriteString(fmt.Sprintf("Card: **** %s\n", order.CardLast4))
	sb.WriteString(fmt.Sprintf("Ship to: %s\n", order.ShipTo))
	sb.WriteString(fmt.Sprintf("\nA confirmation was sent to %s. Thank you for shopping with LuxeCart!", order.Email))
	return sb.String()
}

func renderOrders(orders []entity.Order) string {
	if len(orders) == 0 {
		return "You have no orders yet."
	}
	var sb strings.Builder
	sb.WriteString("📦 Your orders\n")
	for _, o := range orders {
		sb.WriteString(fmt.Sprintf("\n• %s  %s  %d items  %s  (%s)",
			o.PlacedAt.Format("2006-01-02"), truncateString(o.ID, 8), o.Totals.Items, money(o.Totals.Total), o.Status))
	}
	return sb.String()
}

func renderContact(c entity.ContactInfo) string {
	return fmt.Sprintf("📍 %s\n📞 %s\n✉️ %s", c.Address, c.Phone, c.Email)
}

// renderAdminMessages so'nggi yozishmalar digest
func renderAdminMessages(msgs []entity.Message, maxLen int) string {
	if len(msgs) == 0 {
		return "No conversations yet."
	}

	var sb strings.Builder
	sb.WriteString("🗂 Recent assistant conversations:\n\n")
	perShopper := make(map[string]int)
	for _, m := range msgs {
		if perShopper[m.ShopperID] >= 3 {
			continue
		}
		perShopper[m.ShopperID]++

		name := m.Username
		if name == "" {
			name = "unknown"
		}
		entry := fmt.Sprintf("@%s (%s)\n🕒 %s\n👤: %s\n🤖: %s\n\n",
			name, m.ShopperID, m.Timestamp.Format("02 Jan 15:04"),
			truncateString(m.Text, 180), truncateString(m.Response, 180))

		if maxLen > 0 && sb.Len()+len(entry) > maxLen {
			sb.WriteString("…")
			break
		}
		sb.WriteString(entry)
	}
	return strings.TrimRight(sb.String(), "\n")
}

package entity

import "math"

// CartItem savatdagi mahsulot va uning miqdori
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// UnitPrice bitta dona narxi (chegirma bilan)
func (i CartItem) UnitPrice() float64 {
	return i.Product.FinalPrice()
}

// LineTotal qator summasi
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

// LineOriginal chegirmasiz qator summasi (ustidan chizilgan narx)
func (i CartItem) LineOriginal() float64 {
	return i.Price * float64(i.Quantity)
}

// Pricing yetkazib berish va soliq qoidalari
type Pricing struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64
}

// DefaultPricing $50 dan yuqori buyurtmalarga bepul yetkazish, $10 yetkazish, 10% soliq
var DefaultPricing = Pricing{
	FreeShippingThreshold: 50,
	ShippingFee:           10,
	TaxRate:               0.10,
}

// Totals savatdan hisoblanadigan summalar. Hech qachon saqlanmaydi.
type Totals struct {
	Items                 int     `json:"items"`
	Subtotal              float64 `json:"subtotal"`
	Shipping              float64 `json:"shipping"`
	Tax                   float64 `json:"tax"`
	Total                 float64 `json:"total"`
	FreeShipping          bool    `json:"freeShipping"`
	FreeShippingRemaining float64 `json:"freeShippingRemaining"`
}

// Compute savat summalarini hisoblash
func (p Pricing) Compute(items []CartItem) Totals {
	var t Totals
	for _, item := range items {
		t.Items += item.Quantity
		t.Subtotal += item.LineTotal()
	}
	if len(items) == 0 {
		return t
	}

	// Bepul yetkazish faqat chegaradan qat'iy oshganda
	if t.Subtotal > p.FreeShippingThreshold {
		t.FreeShipping = true
	} else {
		t.Shipping = p.ShippingFee
	}
	if t.Subtotal < p.FreeShippingThreshold {
		t.FreeShippingRemaining = p.FreeShippingThreshold - t.Subtotal
	}

	t.Tax = t.Subtotal * p.TaxRate
	t.Total = t.Subtotal + t.Shipping + t.Tax
	return t
}

// Rounded summalarni sentgacha yaxlitlash (faqat ko'rsatish uchun)
func (t Totals) Rounded() Totals {
	t.Subtotal = RoundCents(t.Subtotal)
	t.Shipping = RoundCents(t.Shipping)
	t.Tax = RoundCents(t.Tax)
	t.Total = RoundCents(t.Total)
	t.FreeShippingRemaining = RoundCents(t.FreeShippingRemaining)
	return t
}

// RoundCents sentgacha yaxlitlash
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

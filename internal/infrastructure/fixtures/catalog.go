package fixtures

import (
	"strconv"
	"time"

	"github.com/yourusername/luxecart/internal/domain/entity"
)

// Source fixture katalog manbasi nomi
const Source = "fixtures"

var seededAt = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

// Products statik mahsulotlar ro'yxati
func Products() []entity.Product {
	products := []entity.Product{
		{ID: "1", Name: "Wireless Noise-Cancelling Headphones", Category: "Electronics", Price: 299.99, Discount: 20, Rating: 4.8, Reviews: 2453,
			Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e", InStock: true,
			Description: "Over-ear headphones with active noise cancelling and 30-hour battery life."},
		{ID: "2", Name: "Smart Watch Series 7", Category: "Electronics", Price: 399.99, Rating: 4.7, Reviews: 1832,
			Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30", InStock: true,
			Description: "Always-on display, heart-rate tracking and water resistance to 50m."},
		{ID: "3", Name: "Premium Leather Backpack", Category: "Fashion", Price: 149.99, Discount: 15, Rating: 4.6, Reviews: 987,
			Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62", InStock: true,
			Description: "Full-grain leather backpack with a padded 15-inch laptop sleeve.",
			Specs:       map[string]string{"Material": "Full-grain leather", "Capacity": "22L"}},
		{ID: "4", Name: "Minimalist Desk Lamp", Category: "Home & Living", Price: 79.99, Rating: 4.5, Reviews: 654,
			Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c", InStock: true,
			Description: "Dimmable LED lamp with three colour temperatures."},
		{ID: "5", Name: "Running Shoes Ultra Boost", Category: "Sports", Price: 179.99, Discount: 25, Rating: 4.9, Reviews: 3241,
			Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff", InStock: true,
			Description: "Responsive cushioning for long-distance runs."},
		{ID: "6", Name: "Organic Skincare Set", Category: "Beauty", Price: 89.99, Rating: 4.4, Reviews: 521,
			Image: "https://images.unsplash.com/photo-1556228720-195a672e8a03", InStock: true,
			Description: "Cleanser, toner and moisturiser made from certified organic ingredients."},
		{ID: "7", Name: "Portable Bluetooth Speaker", Category: "Electronics", Price: 129.99, Discount: 10, Rating: 4.6, Reviews: 1456,
			Image: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1", InStock: false,
			Description: "Waterproof speaker with 360-degree sound."},
		{ID: "8", Name: "Classic Aviator Sunglasses", Category: "Fashion", Price: 159.99, Rating: 4.5, Reviews: 765,
			Image: "https://images.unsplash.com/photo-1572635196237-14b3f281503f", InStock: true,
			Description: "Polarised lenses in a lightweight metal frame."},
		{ID: "9", Name: "Ceramic Pour-Over Coffee Set", Category: "Home & Living", Price: 64.99, Discount: 5, Rating: 4.7, Reviews: 412,
			Image: "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085", InStock: true,
			Description: "Hand-glazed dripper, carafe and two cups."},
		{ID: "10", Name: "Yoga Mat Pro", Category: "Sports", Price: 49.99, Rating: 4.8, Reviews: 1120,
			Image: "https://images.unsplash.com/photo-1592432678016-e910b452f9a2", InStock: true,
			Description: "6mm non-slip mat with alignment lines."},
		{ID: "11", Name: "Mechanical Keyboard", Category: "Electronics", Price: 149.99, Discount: 30, Rating: 4.7, Reviews: 2087,
			Image: "https://images.unsplash.com/photo-1587829741301-dc798b83add3", InStock: true,
			Description: "Hot-swappable switches and per-key RGB lighting.",
			Specs:       map[string]string{"Layout": "75%", "Switches": "Tactile brown"}},
		{ID: "12", Name: "Silk Scarf Collection", Category: "Fashion", Price: 69.99, Rating: 4.3, Reviews: 298,
			Image: "https://images.unsplash.com/photo-1601924994987-69e26d50dc26", InStock: true,
			Description: "Pure mulberry silk in three seasonal prints."},
	}

	for i := range products {
		products[i].CreatedAt = seededAt.Add(time.Duration(i) * time.Hour)
		products[i].UpdatedAt = products[i].CreatedAt
	}
	return products
}

// Catalog fixture katalogi
func Catalog() entity.ProductCatalog {
	return entity.ProductCatalog{
		Products:  Products(),
		UpdatedAt: seededAt,
		Source:    Source,
	}
}

// CategoryImages kategoriya rasmlari
var CategoryImages = map[string]string{
	"Electronics":   "https://images.unsplash.com/photo-1498049794561-7780e7231661",
	"Fashion":       "https://images.unsplash.com/photo-1445205170230-053b83016050",
	"Home & Living": "https://images.unsplash.com/photo-1484101403633-562f891dc89a",
	"Sports":        "https://images.unsplash.com/photo-1461896836934-ffe607ba8211",
	"Beauty":        "https://images.unsplash.com/photo-1596462502278-27bfdc403348",
}

// Features bosh sahifadagi afzalliklar
func Features(pricing entity.Pricing) []entity.Feature {
	return []entity.Feature{
		{Icon: "truck", Title: "Free Shipping", Description: freeShippingLine(pricing)},
		{Icon: "shield", Title: "Secure Payment", Description: "100% secure transactions"},
		{Icon: "headphones", Title: "24/7 Support", Description: "Dedicated customer service"},
		{Icon: "shopping-bag", Title: "Easy Returns", Description: "30-day return policy"},
	}
}

func freeShippingLine(pricing entity.Pricing) string {
	return "On orders over $" + strconv.FormatFloat(pricing.FreeShippingThreshold, 'f', -1, 64)
}

// Testimonials mijozlar fikrlari
func Testimonials() []entity.Testimonial {
	return []entity.Testimonial{
		{Name: "Sarah Johnson", Role: "Verified Buyer", Rating: 5,
			Content: "The headphones arrived in two days and the sound is incredible. Checkout took under a minute."},
		{Name: "Michael Chen", Role: "Verified Buyer", Rating: 5,
			Content: "Great prices on electronics and the compare feature made choosing a watch easy."},
		{Name: "Emily Rodriguez", Role: "Verified Buyer", Rating: 4,
			Content: "Lovely backpack, exactly as pictured. Free shipping was a nice bonus."},
	}
}

// Contact footer kontakt ma'lumotlari
func Contact() entity.ContactInfo {
	return entity.ContactInfo{
		Address: "123 Commerce Street, New York, NY 10001",
		Phone:   "+1 (234) 567-890",
		Email:   "support@luxecart.com",
	}
}

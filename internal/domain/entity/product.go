package entity

import (
	"strings"
	"time"
)

// Product mahsulot entity
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Price       float64           `json:"price"`
	Discount    float64           `json:"discount,omitempty"` // Chegirma foizda, 0 = chegirmasiz
	Rating      float64           `json:"rating"`
	Reviews     int               `json:"reviews"`
	Image       string            `json:"image"`
	InStock     bool              `json:"inStock"`
	Description string            `json:"description,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"` // Texnik xususiyatlar
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// HasDiscount chegirma borligini tekshirish
func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

// FinalPrice chegirma hisobga olingan narx
func (p Product) FinalPrice() float64 {
	if !p.HasDiscount() {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

// ProductCatalog mahsulotlar katalogi
type ProductCatalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string // Excel fayl nomi yoki "fixtures"
}

// Category kategoriya va undagi mahsulotlar soni
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
	Image string `json:"image,omitempty"`
}

// CategorySlug kategoriya nomidan URL qismi
func CategorySlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// ProductSort katalog saralash turi
type ProductSort string

const (
	SortFeatured  ProductSort = "featured"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortRating    ProductSort = "rating"
	SortNewest    ProductSort = "newest"
	SortName      ProductSort = "name"
)

// ProductFilter ro'yxat sahifasi uchun filtrlar
type ProductFilter struct {
	Category    string
	MinPrice    float64
	MaxPrice    float64 // 0 = cheklanmagan
	InStockOnly bool
	OnSaleOnly  bool
	Sort        ProductSort
	Offset      int
	Limit       int // 0 = hammasi
}

// Match mahsulot filtrga mosligini tekshirish (narx chegirmadan keyingi narx bo'yicha)
func (f ProductFilter) Match(p Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) && CategorySlug(p.Category) != strings.ToLower(f.Category) {
		return false
	}
	price := p.FinalPrice()
	if f.MinPrice > 0 && price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.OnSaleOnly && !p.HasDiscount() {
		return false
	}
	return true
}

// ProductPage sahifalangan natija
type ProductPage struct {
	Products []Product
	Total    int
	Offset   int
	Limit    int
}

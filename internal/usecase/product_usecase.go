package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

// ProductUseCase mahsulot bilan bog'liq business logic
type ProductUseCase interface {
	// List filtr, saralash va sahifalash bilan ro'yxat
	List(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error)

	// GetByID bitta mahsulot
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// Search mahsulot qidirish
	Search(ctx context.Context, query string) ([]entity.Product, error)

	// GetByCategory kategoriya bo'yicha mahsulotlarni olish
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)

	// GetAll barcha mahsulotlarni olish
	GetAll(ctx context.Context) ([]entity.Product, error)

	// Featured katalog tartibida birinchi n ta mahsulot
	Featured(ctx context.Context, n int) ([]entity.Product, error)

	// Related shu kategoriyadagi boshqa mahsulotlar
	Related(ctx context.Context, id string, n int) ([]entity.Product, error)

	// Categories kategoriyalar va mahsulotlar soni
	Categories(ctx context.Context) ([]entity.Category, error)

	// GetProductsAsText mahsulotlarni text formatda olish (AI uchun)
	GetProductsAsText(ctx context.Context) (string, error)

	// HasProducts mahsulotlar borligini tekshirish
	HasProducts(ctx context.Context) (bool, error)
}

type productUseCase struct {
	productRepo    repository.ProductRepository
	categoryImages map[string]string
}

// NewProductUseCase yangi ProductUseCase yaratish
func NewProductUseCase(productRepo repository.ProductRepository, categoryImages map[string]string) ProductUseCase {
	return &productUseCase{
		productRepo:    productRepo,
		categoryImages: categoryImages,
	}
}

func (u *productUseCase) List(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error) {
	return u.productRepo.List(ctx, filter)
}

func (u *productUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// Search mahsulot qidirish
func (u *productUseCase) Search(ctx context.Context, query string) ([]entity.Product, error) {
	return u.productRepo.Search(ctx, query)
}

// GetByCategory kategoriya bo'yicha mahsulotlarni olish
func (u *productUseCase) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return u.productRepo.GetByCategory(ctx, category)
}

// GetAll barcha mahsulotlarni olish
func (u *productUseCase) GetAll(ctx context.Context) ([]entity.Product, error) {
	return u.productRepo.GetAll(ctx)
}

// Featured katalog tartibida birinchi n ta mahsulot
func (u *productUseCase) Featured(ctx context.Context, n int) ([]entity.Product, error) {
	page, err := u.productRepo.List(ctx, entity.ProductFilter{Sort: entity.SortFeatured, Limit: n})
	if err != nil {
		return nil, err
	}
	return page.Products, nil
}

// Related shu kategoriyadagi boshqa mahsulotlar (mahsulotning o'zisiz)
func (u *productUseCase) Related(ctx context.Context, id string, n int) ([]entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sameCategory, err := u.productRepo.GetByCategory(ctx, product.Category)
	if err != nil {
		return nil, err
	}

	related := make([]entity.Product, 0, n)
	for _, p := range sameCategory {
		if p.ID == product.ID {
			continue
		}
		if n > 0 && len(related) == n {
			break
		}
		related = append(related, p)
	}
	return related, nil
}

// Categories katalogdan kategoriyalarni sanash, katalogdagi birinchi uchrash tartibida
func (u *productUseCase) Categories(ctx context.Context) ([]entity.Category, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var categories []entity.Category
	for _, p := range products {
		name := p.Category
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			categories[i].Count++
			continue
		}
		index[name] = len(categories)
		categories = append(categories, entity.Category{
			Name:  name,
			Slug:  entity.CategorySlug(name),
			Count: 1,
			Image: u.categoryImages[name],
		})
	}
	return categories, nil
}

// GetProductsAsText mahsulotlarni text formatda olish (AI uchun)
func (u *productUseCase) GetProductsAsText(ctx context.Context) (string, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	if len(products) == 0 {
		return "", fmt.Errorf("no products available")
	}

	// Kategoriyalar bo'yicha guruhlash
	categoryMap := make(map[string][]entity.Product)
	var order []string
	for _, product := range products {
		category := product.Category
		if category == "" {
			category = "Other"
		}
		if _, seen := categoryMap[category]; !seen {
			order = append(order, category)
		}
		categoryMap[category] = append(categoryMap[category], product)
	}

	var sb strings.Builder
	sb.WriteString("=== AVAILABLE PRODUCTS ===\n")
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("\n%s:\n", category))
		for i, p := range categoryMap[category] {
			sb.WriteString(fmt.Sprintf("%d. %s - $%.2f", i+1, p.Name, p.FinalPrice()))
			if p.HasDiscount() {
				sb.WriteString(fmt.Sprintf(" (was $%.2f, %.0f%% off)", p.Price, p.Discount))
			}
			if !p.InStock {
				sb.WriteString(" [out of stock]")
			}
			if p.Rating > 0 {
				sb.WriteString(fmt.Sprintf(" rating %.1f", p.Rating))
			}
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf("\n   %s", p.Description))
			}
			if len(p.Specs) > 0 {
				keys := make([]string, 0, len(p.Specs))
				for key := range p.Specs {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				specs := make([]string, 0, len(keys))
				for _, key := range keys {
					specs = append(specs, fmt.Sprintf("%s: %s", key, p.Specs[key]))
				}
				sb.WriteString("\n   " + strings.Join(specs, ", "))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// HasProducts mahsulotlar borligini tekshirish
func (u *productUseCase) HasProducts(ctx context.Context) (bool, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	return len(products) > 0, nil
}

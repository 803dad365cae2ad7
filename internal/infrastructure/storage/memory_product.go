package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]entity.Product // key: product ID
	order    []string                  // katalog tartibi (featured)
	catalog  *entity.ProductCatalog
}

// NewMemoryProductRepository in-memory product repository yaratish
func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		products: make(map[string]entity.Product),
	}
}

// SaveProduct mahsulotni saqlash
func (m *memoryProductRepository) SaveProduct(ctx context.Context, product entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.products[product.ID]; !exists {
		m.order = append(m.order, product.ID)
	}
	m.products[product.ID] = product
	return nil
}

// GetByID ID bo'yicha mahsulotni olish
func (m *memoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, exists := m.products[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", errs.ErrProductNotFound, id)
	}
	return &product, nil
}

// Search mahsulot qidirish
func (m *memoryProductRepository) Search(ctx context.Context, query string) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	queryNorm := normalizeProductString(query)
	tokens := filterTokens(queryTokens(query))
	tokensNorm := normalizeTokens(tokens)
	compactQuery := normalizeAlphaNum(query)
	var results []entity.Product
	var scored []scoredProduct

	for _, id := range m.order {
		product := m.products[id]
		nameLower := strings.ToLower(product.Name)
		catLower := strings.ToLower(product.Category)
		descLower := strings.ToLower(product.Description)
		nameNorm := normalizeProductString(product.Name)
		nameCompact := normalizeAlphaNum(product.Name)
		catNorm := normalizeAlphaNum(product.Category)
		descNorm := normalizeAlphaNum(product.Description)

		// Name, category, description da qidirish
		if strings.Contains(nameLower, query) ||
			strings.Contains(catLower, query) ||
			strings.Contains(descLower, query) ||
			(queryNorm != "" && strings.Contains(nameNorm, queryNorm)) ||
			(compactQuery != "" && strings.Contains(nameCompact, compactQuery)) ||
			matchAllTokens(tokensNorm, nameNorm, catNorm, descNorm) {
			results = append(results, product)
			continue
		}

		// Specs da qidirish
		if matchSpecs(product.Specs, query) {
			results = append(results, product)
			continue
		}

		// Ballar berib o'xshashlikni aniqlaymiz
		score := similarityScore(tokensNorm, compactQuery, nameNorm, nameCompact, catNorm, descNorm)
		if score >= 5 {
			scored = append(scored, scoredProduct{Product: product, Score: score})
		}
	}

	// To'g'ridan-to'g'ri topilmasa, yaxshi ball olganlarni qaytaramiz
	if len(results) == 0 && len(scored) > 0 {
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].Score == scored[j].Score {
				return scored[i].Product.FinalPrice() < scored[j].Product.FinalPrice()
			}
			return scored[i].Score > scored[j].Score
		})
		for _, sp := range scored {
			if sp.Score >= 8 && len(results) < 6 {
				results = append(results, sp.Product)
			}
		}
	}

	// Hech narsa topilmasa bo'sh natija, tasodifiy mahsulot ko'rsatilmaydi
	return results, nil
}

// GetByCategory kategoriya bo'yicha mahsulotlarni olish
func (m *memoryProductRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	page, err := m.List(ctx, entity.ProductFilter{Category: category})
	if err != nil {
		return nil, err
	}
	return page.Products, nil
}

// List filtr, saralash va sahifalash
func (m *memoryProductRepository) List(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error) {
	m.mu.RLock()
	var matched []entity.Product
	for _, id := range m.order {
		product := m.products[id]
		if filter.Match(product) {
			matched = append(matched, product)
		}
	}
	m.mu.RUnlock()

	sortProducts(matched, filter.Sort)

	page := &entity.ProductPage{Total: len(matched), Offset: filter.Offset, Limit: filter.Limit}
	if filter.Offset < 0 {
		page.Offset = 0
	}
	if page.Offset >= len(matched) {
		page.Products = []entity.Product{}
		return page, nil
	}
	end := len(matched)
	if filter.Limit > 0 && page.Offset+filter.Limit < end {
		end = page.Offset + filter.Limit
	}
	page.Products = matched[page.Offset:end]
	return page, nil
}

// GetAll barcha mahsulotlarni olish
func (m *memoryProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, 0, len(m.order))
	for _, id := range m.order {
		products = append(products, m.products[id])
	}

	return products, nil
}

// UpdateCatalog butun katalogni yangilash
func (m *memoryProductRepository) UpdateCatalog(ctx context.Context, catalog entity.ProductCatalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Eski mahsulotlarni o'chirish
	m.products = make(map[string]entity.Product, len(catalog.Products))
	m.order = make([]string, 0, len(catalog.Products))

	for _, product := range catalog.Products {
		if _, dup := m.products[product.ID]; !dup {
			m.order = append(m.order, product.ID)
		}
		m.products[product.ID] = product
	}

	m.catalog = &catalog
	return nil
}

// GetCatalog katalogni olish
func (m *memoryProductRepository) GetCatalog(ctx context.Context) (*entity.ProductCatalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, errs.ErrCatalogNotFound
	}

	return m.catalog, nil
}

// Clear barcha mahsulotlarni o'chirish
func (m *memoryProductRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make(map[string]entity.Product)
	m.order = nil
	m.catalog = nil
	return nil
}

func sortProducts(products []entity.Product, by entity.ProductSort) {
	var less func(a, b entity.Product) bool
	switch by {
	case entity.SortPriceAsc:
		less = func(a, b entity.Product) bool { return a.FinalPrice() < b.FinalPrice() }
	case entity.SortPriceDesc:
		less = func(a, b entity.Product) bool { return a.FinalPrice() > b.FinalPrice() }
	case entity.SortRating:
		less = func(a, b entity.Product) bool {
			if a.Rating == b.Rating {
				return a.Reviews > b.Reviews
			}
			return a.Rating > b.Rating
		}
	case entity.SortNewest:
		less = func(a, b entity.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case entity.SortName:
		less = func(a, b entity.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		// featured: katalog tartibi
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// Qidiruv yordamchi funksiyalar
func normalizeProductString(s string) string {
	s = strings.ToLower(s)
	replacements := []string{" ", "-", "_", ".", ",", "'", "\"", "/", "\\", "?", "!"}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r, "")
	}
	return s
}

func queryTokens(q string) []string {
	q = strings.ToLower(q)
	separators := []string{",", ".", "?", "!", ";", ":", "/", "\\", "-", "_"}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}
	fields := strings.Fields(q)

	var tokens []string
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// matchAllTokens har bir token kamida bitta maydonda bo'lishi kerak
func matchAllTokens(tokens []string, parts ...string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		found := false
		for _, p := range parts {
			if strings.Contains(p, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchSpecs(specs map[string]string, query string) bool {
	for _, value := range specs {
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

func normalizeAlphaNum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func filterTokens(tokens []string) []string {
	stop := map[string]struct{}{
		"do": {}, "you": {}, "have": {}, "any": {}, "the": {}, "for": {},
		"show": {}, "me": {}, "some": {}, "want": {}, "need": {}, "looking": {},
		"is": {}, "are": {}, "there": {}, "with": {}, "and": {}, "of": {},
	}
	var out []string
	for _, t := range tokens {
		if _, skip := stop[t]; skip {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizeTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		n := normalizeAlphaNum(t)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

type scoredProduct struct {
	Product entity.Product
	Score   int
}

func similarityScore(qTokens []string, compactQuery, nameNorm, nameCompact, catNorm, descNorm string) int {
	score := 0

	// Tokenlarga asoslangan
	for _, qt := range qTokens {
		if qt == "" {
			continue
		}
		if strings.Contains(nameNorm, qt) || strings.Contains(nameCompact, qt) {
			score += 4
			continue
		}
		if strings.Contains(catNorm, qt) || strings.Contains(descNorm, qt) {
			score += 2
			continue
		}

		// Model raqamlari yaqinligi (masalan 15 -> 14)
		qNum := extractNumber(qt)
		pNum := extractNumber(nameNorm)
		if qNum > 0 && pNum > 0 {
			diff := qNum - pNum
			if diff < 0 {
				diff = -diff
			}
			if diff <= 2 {
				score += 2
			}
		}
	}

	// Umumiy harf-raqam chiziqli o'xshashlik
	if compactQuery != "" {
		lcs := longestCommonSubstringLength(compactQuery, nameCompact)
		if lcs >= 3 {
			score += lcs
		}
	}

	return score
}

func extractNumber(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.Len() > 9 {
		return 0
	}
	val, _ := strconv.Atoi(b.String())
	return val
}

func longestCommonSubstringLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	maxLen := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > maxLen {
					maxLen = cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return maxLen
}

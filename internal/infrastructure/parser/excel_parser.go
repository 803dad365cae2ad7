package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

// DefaultCategory kategoriya aniqlanmagan mahsulotlar uchun
const DefaultCategory = "Other"

type excelParser struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser() repository.ExcelParser {
	return &excelParser{
		logger: log.With().Str("component", "excel_parser").Logger(),
		now:    time.Now,
	}
}

// ParseProducts Excel fayldan mahsulotlarni o'qish
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// ParseProductsFromBytes byte array dan parse qilish
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel %s: %w", filename, err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseExcelFile birinchi sheetni parse qilish
func (e *excelParser) parseExcelFile(f *excelize.File) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	e.logger.Debug().Strs("first_row", rows[0]).Int("rows", len(rows)).Msg("excel loaded")

	// Agar birinchi qatorning 2-ustuni raqam bo'lsa, header yo'q
	hasHeader := true
	startRow := 1
	if len(rows[0]) > 1 {
		if _, err := parseNumber(rows[0][1]); err == nil {
			hasHeader = false
			startRow = 0
		}
	}

	var header []string
	var columnMap map[string]int
	if hasHeader {
		header = rows[0]
		columnMap = e.mapColumns(header)
	} else {
		columnMap = map[string]int{"name": 0, "price": 1}
		if len(rows[0]) > 2 {
			columnMap["category"] = 2
		}
	}

	if _, ok := columnMap["price"]; !ok {
		if guessed := detectPriceColumn(rows, startRow); guessed >= 0 {
			columnMap["price"] = guessed
			e.logger.Debug().Int("column", guessed).Msg("guessed price column")
		} else {
			columnMap["price"] = 1
		}
	}

	if !hasHeader && !detectTableFormat(rows, startRow, columnMap["price"]) {
		e.logger.Debug().Msg("side-by-side layout detected")
		return e.parseSideBySide(rows, startRow)
	}

	products := e.parseTable(rows, startRow, header, columnMap)
	e.logger.Info().Int("products", len(products)).Msg("excel catalog parsed")

	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products found in excel file (parsed %d rows, but all were invalid)", len(rows)-startRow)
	}
	return products, nil
}

// parseTable standart jadval: Nom | Narx | ...
func (e *excelParser) parseTable(rows [][]string, startRow int, header []string, columnMap map[string]int) []entity.Product {
	nameCol := columnMap["name"]
	priceCol := columnMap["price"]
	now := e.now()

	used := map[int]struct{}{}
	for _, key := range knownColumns {
		if idx, ok := columnMap[key]; ok {
			used[idx] = struct{}{}
		}
	}

	var products []entity.Product
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) || len(row) <= nameCol || len(row) <= priceCol {
			continue
		}

		name := strings.TrimSpace(row[nameCol])
		price, err := parseNumber(row[priceCol])
		if err != nil || price <= 0 || len(name) < 3 {
			e.logger.Warn().Int("row", i).Str("price", row[priceCol]).Msg("skipping invalid row")
			continue
		}

		product := entity.Product{
			ID:        uuid.New().String(),
			Name:      name,
			Price:     price,
			InStock:   true,
			CreatedAt: now,
			UpdatedAt: now,
			Specs:     make(map[string]string),
		}

		if v := cell(row, columnMap, "id"); v != "" {
			product.ID = v
		}
		product.Category = cell(row, columnMap, "category")
		if product.Category == "" {
			product.Category = detectCategory(name)
		}
		product.Description = cell(row, columnMap, "description")
		product.Image = cell(row, columnMap, "image")

		if v := cell(row, columnMap, "discount"); v != "" {
			if d, err := parseNumber(strings.TrimSuffix(v, "%")); err == nil && d > 0 && d < 100 {
				product.Discount = d
			}
		}
		if v := cell(row, columnMap, "rating"); v != "" {
			if r, err := parseNumber(v); err == nil && r >= 0 && r <= 5 {
				product.Rating = r
			}
		}
		if v := cell(row, columnMap, "reviews"); v != "" {
			if n, err := parseNumber(v); err == nil && n >= 0 {
				product.Reviews = int(n)
			}
		}
		if v := cell(row, columnMap, "stock"); v != "" {
			product.InStock = parseInStock(v)
		}

		// Qo'shimcha ustunlar specs ga
		if header != nil {
			for idx, raw := range row {
				if _, ok := used[idx]; ok {
					continue
				}
				value := strings.TrimSpace(raw)
				if value == "" {
					continue
				}
				key := fmt.Sprintf("Extra_%d", idx)
				if idx < len(header) && strings.TrimSpace(header[idx]) != "" {
					key = strings.TrimSpace(header[idx])
				}
				product.Specs[key] = value
			}
		}

		products = append(products, product)
	}
	return products
}

// parseSideBySide Nom1 | Narx1 | Nom2 | Narx2 formati
func (e *excelParser) parseSideBySide(rows [][]string, startRow int) ([]entity.Product, error) {
	now := e.now()
	var products []entity.Product

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		for col := 0; col+1 < len(row); col += 2 {
			name := strings.TrimSpace(row[col])
			price, err := parseNumber(row[col+1])
			if err != nil || price <= 0 || len(name) < 3 {
				continue
			}
			products = append(products, entity.Product{
				ID:        uuid.New().String(),
				Name:      name,
				Category:  detectCategory(name),
				Price:     price,
				InStock:   true,
				CreatedAt: now,
				UpdatedAt: now,
				Specs:     make(map[string]string),
			})
		}
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products found in excel file")
	}
	return products, nil
}

var knownColumns = []string{"id", "name", "category", "price", "discount", "rating", "reviews", "image", "stock", "description"}

// mapColumns header qatoridan column mapping yaratish
func (e *excelParser) mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)
	set := func(key string, idx int) {
		if _, exists := columnMap[key]; !exists {
			columnMap[key] = idx
		}
	}

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))

		switch {
		case colName == "id" || colName == "sku":
			set("id", i)
		case contains(colName, "discount", "chegirma", "sale", "off"):
			set("discount", i)
		case contains(colName, "review", "sharh"):
			set("reviews", i)
		case contains(colName, "rating", "reyting", "stars"):
			set("rating", i)
		case contains(colName, "image", "rasm", "photo", "picture"):
			set("image", i)
		case contains(colName, "stock", "available", "mavjud", "soni"):
			set("stock", i)
		case contains(colName, "description", "tavsif", "details", "info"):
			set("description", i)
		case contains(colName, "category", "kategoriya", "type"):
			set("category", i)
		case contains(colName, "price", "narx", "cost", "$", "usd"):
			set("price", i)
		case contains(colName, "name", "nom", "product", "mahsulot", "title"):
			set("name", i)
		}
	}

	if _, ok := columnMap["name"]; !ok && len(header) > 0 {
		columnMap["name"] = 0
		e.logger.Warn().Msg("no name column found, using column 0")
	}

	e.logger.Debug().Interface("columns", columnMap).Msg("column mapping from header")
	return columnMap
}

func cell(row []string, columnMap map[string]int, key string) string {
	idx, ok := columnMap[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// detectTableFormat true = Nom | Narx jadvali, false = side-by-side
func detectTableFormat(rows [][]string, startRow int, priceCol int) bool {
	validPriceCount := 0
	totalChecked := 0

	for i := startRow; i < len(rows) && totalChecked < 5; i++ {
		row := rows[i]
		if len(row) <= priceCol || isEmptyRow(row) {
			continue
		}
		totalChecked++
		if _, err := parseNumber(row[priceCol]); err == nil {
			validPriceCount++
		}
	}

	if totalChecked == 0 {
		return true
	}
	// Side-by-side faqat qatorlarda 4+ ustun bo'lganda mantiqli
	if len(rows[startRow]) < 4 {
		return true
	}
	return float64(validPriceCount)/float64(totalChecked) > 0.7 && !pairsLookLikeProducts(rows[startRow])
}

// pairsLookLikeProducts 3-ustun nom, 4-ustun narx bo'lsa side-by-side
func pairsLookLikeProducts(row []string) bool {
	if len(row) < 4 {
		return false
	}
	_, thirdIsNumber := parseNumber(row[2])
	_, fourthIsNumber := parseNumber(row[3])
	return thirdIsNumber != nil && fourthIsNumber == nil
}

// detectPriceColumn narx ustunini topish (agar headerda topilmasa)
func detectPriceColumn(rows [][]string, startRow int) int {
	maxCols := 0
	limitRows := startRow + 15
	if limitRows > len(rows) {
		limitRows = len(rows)
	}
	for i := startRow; i < limitRows; i++ {
		if len(rows[i]) > maxCols {
			maxCols = len(rows[i])
		}
	}

	bestCol, bestCount := -1, 0
	for col := 0; col < maxCols; col++ {
		count := 0
		for i := startRow; i < limitRows; i++ {
			if col < len(rows[i]) {
				if _, err := parseNumber(rows[i][col]); err == nil {
					count++
				}
			}
		}
		if count > bestCount {
			bestCount, bestCol = count, col
		}
	}

	// Kamida 2 ta qator narx sifatida o'qilsa
	if bestCount >= 2 {
		return bestCol
	}
	return -1
}

func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// parseNumber narx yoki son ni parse qilish
func parseNumber(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	for _, r := range []string{",", " ", "$", "€", "£", "usd", "eur"} {
		s = strings.ReplaceAll(s, r, "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	return v, nil
}

func parseInStock(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "false", "0", "out", "out of stock", "yo'q":
		return false
	}
	if n, err := parseNumber(s); err == nil {
		return n > 0
	}
	return true
}

// detectCategory mahsulot nomidan kategoriyani aniqlash
func detectCategory(name string) string {
	n := strings.ToLower(name)

	switch {
	case contains(n, "headphone", "earbud", "speaker", "watch", "keyboard", "mouse", "laptop", "phone", "camera", "monitor", "charger"):
		return "Electronics"
	case contains(n, "shoe", "sneaker", "yoga", "dumbbell", "bike", "ball", "racket", "fitness"):
		return "Sports"
	case contains(n, "skincare", "serum", "lipstick", "perfume", "cream", "shampoo"):
		return "Beauty"
	case contains(n, "lamp", "chair", "desk", "sofa", "mug", "coffee", "pillow", "candle", "vase"):
		return "Home & Living"
	case contains(n, "shirt", "dress", "jacket", "bag", "backpack", "scarf", "sunglasses", "jeans", "hat"):
		return "Fashion"
	}
	return DefaultCategory
}

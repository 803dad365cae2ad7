package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseProductsWithHeader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"ID", "Name", "Category", "Price", "Discount", "Rating", "Reviews", "Image", "In Stock", "Description", "Color"},
		{"a1", "Wireless Headphones", "Electronics", "$199.99", "20%", 4.5, 120, "https://img/1.jpg", "yes", "Noise cancelling", "Black"},
		{"a2", "Leather Backpack", "", "89", "", "", "", "", "0", "", ""},
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"a3", "x", "Fashion", "10", "", "", "", "", "", "", ""},
	})

	products, err := NewExcelParser().ParseProductsFromBytes(context.Background(), data, "catalog.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 2)

	headphones := products[0]
	assert.Equal(t, "a1", headphones.ID)
	assert.Equal(t, "Wireless Headphones", headphones.Name)
	assert.Equal(t, "Electronics", headphones.Category)
	assert.InDelta(t, 199.99, headphones.Price, 0.001)
	assert.InDelta(t, 20.0, headphones.Discount, 0.001)
	assert.InDelta(t, 4.5, headphones.Rating, 0.001)
	assert.Equal(t, 120, headphones.Reviews)
	assert.Equal(t, "https://img/1.jpg", headphones.Image)
	assert.True(t, headphones.InStock)
	assert.Equal(t, "Noise cancelling", headphones.Description)
	assert.Equal(t, "Black", headphones.Specs["Color"])

	backpack := products[1]
	assert.Equal(t, "Fashion", backpack.Category)
	assert.False(t, backpack.InStock)
	assert.Zero(t, backpack.Discount)
}

func TestParseProductsWithoutHeader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Smart Watch", 249},
		{"Ceramic Coffee Mug", 15},
	})

	products, err := NewExcelParser().ParseProductsFromBytes(context.Background(), data, "plain.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Electronics", products[0].Category)
	assert.Equal(t, "Home & Living", products[1].Category)
	assert.NotEmpty(t, products[0].ID)
	assert.NotEqual(t, products[0].ID, products[1].ID)
}

func TestParseProductsSideBySide(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Yoga Mat", 30, "Silk Scarf", 45},
		{"Face Serum", 25, "Desk Lamp", 60},
	})

	products, err := NewExcelParser().ParseProductsFromBytes(context.Background(), data, "pairs.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 4)

	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Yoga Mat", "Silk Scarf", "Face Serum", "Desk Lamp"}, names)
}

func TestParseProductsRejectsEmptyCatalog(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Name", "Price"},
		{"ab", "free"},
	})

	_, err := NewExcelParser().ParseProductsFromBytes(context.Background(), data, "bad.xlsx")
	assert.Error(t, err)
}

func TestParseProductsRejectsGarbage(t *testing.T) {
	_, err := NewExcelParser().ParseProductsFromBytes(context.Background(), []byte("not a workbook"), "x.xlsx")
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,299.50", 1299.5, true},
		{" 42 ", 42, true},
		{"15 USD", 15, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range tests {
		got, err := parseNumber(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, 0.0001, tc.in)
	}
}

func TestDetectCategory(t *testing.T) {
	assert.Equal(t, "Electronics", detectCategory("Bluetooth Speaker"))
	assert.Equal(t, "Beauty", detectCategory("Vitamin C Serum"))
	assert.Equal(t, DefaultCategory, detectCategory("Mystery Box"))
}

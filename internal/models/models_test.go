// internal/models/models_test.go
package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceValue(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		expected float64
	}{
		{"grouped with dots", "22.990.000", 22990000},
		{"grouped with commas", "22,990,000", 22990000},
		{"with currency suffix", "32.000 VND", 32000},
		{"plain digits", "15000", 15000},
		{"text around digits", "khoảng 500000 đồng", 500000},
		{"no digits", "liên hệ", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price}
			assert.Equal(t, tt.expected, p.PriceValue())
		})
	}
}

func TestWebSnippetFormat(t *testing.T) {
	s := WebSnippet{Title: "Giá iPhone", Body: "từ 22 triệu", URL: "https://example.vn"}
	assert.Equal(t, "- Giá iPhone: từ 22 triệu (nguồn: https://example.vn)", s.Format())
}

func TestWindow(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: "1"},
		{Role: RoleAssistant, Content: "2"},
		{Role: RoleUser, Content: "3"},
		{Role: RoleAssistant, Content: "4"},
		{Role: RoleUser, Content: "5"},
		{Role: RoleAssistant, Content: "6"},
	}

	assert.Len(t, Window(turns, 4), 4)
	assert.Equal(t, "3", Window(turns, 4)[0].Content)

	// Odd window drops the oldest entry to keep pairs aligned.
	windowed := Window(turns, 3)
	assert.Len(t, windowed, 2)
	assert.Equal(t, "5", windowed[0].Content)

	assert.Nil(t, Window(nil, 4))
	assert.Nil(t, Window(turns, 0))
	assert.Len(t, Window(turns, 100), 6)
}

func TestQueryParametersPriceBounds(t *testing.T) {
	var unconstrained QueryParameters
	assert.Equal(t, 0.0, unconstrained.MinPrice())
	assert.True(t, math.IsInf(unconstrained.MaxPrice(), 1))

	bounded := QueryParameters{PriceRange: &PriceRange{MinPrice: 1000, MaxPrice: 5000}}
	assert.Equal(t, 1000.0, bounded.MinPrice())
	assert.Equal(t, 5000.0, bounded.MaxPrice())

	// "under X" extractions carry min 0, max X; zero max means unbounded.
	openTop := QueryParameters{PriceRange: &PriceRange{MinPrice: 1000}}
	assert.True(t, math.IsInf(openTop.MaxPrice(), 1))
}

func TestHasStructuredFilters(t *testing.T) {
	assert.False(t, (&QueryParameters{Intent: IntentGeneralInfo}).HasStructuredFilters())
	assert.True(t, (&QueryParameters{Brands: []string{"apple"}}).HasStructuredFilters())
	assert.True(t, (&QueryParameters{PriceRange: &PriceRange{MaxPrice: 5}}).HasStructuredFilters())
	assert.True(t, (&QueryParameters{Attributes: []AttributeFilter{{"pin": "4000mah"}}}).HasStructuredFilters())

	// Product names alone are not catalog-side filters.
	assert.False(t, (&QueryParameters{Products: []string{"iphone 15"}}).HasStructuredFilters())
}

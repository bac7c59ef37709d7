package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

func TestToDisplayUnit(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		mode   models.CurrencyMode
		want   int64
	}{
		{"rial unchanged", 1_234_567, models.CurrencyRial, 1_234_567},
		{"toman exact", 1_000, models.CurrencyToman, 100},
		{"toman rounds up at half", 15, models.CurrencyToman, 2},
		{"toman rounds down", 14, models.CurrencyToman, 1},
		{"toman negative half rounds up", -15, models.CurrencyToman, -1},
		{"toman negative even half", -25, models.CurrencyToman, -2},
		{"toman negative rounds down", -16, models.CurrencyToman, -2},
		{"toman odd half", 25, models.CurrencyToman, 3},
		{"zero", 0, models.CurrencyToman, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDisplayUnit(tt.amount, tt.mode))
		})
	}
}

func TestCurrencyLabel(t *testing.T) {
	assert.Equal(t, "ریال", CurrencyLabel(models.CurrencyRial))
	assert.Equal(t, "تومان", CurrencyLabel(models.CurrencyToman))
}

func TestMoneyFormatter(t *testing.T) {
	f := NewMoneyFormatter(language.English)

	assert.Equal(t, "1,234,567", f.Format(1_234_567, models.CurrencyRial))
	assert.Equal(t, "123,457", f.Format(1_234_567, models.CurrencyToman))
	assert.Equal(t, "-11,250,000,000", f.Format(-11_250_000_000, models.CurrencyRial))
	assert.Equal(t, "17,310,000,000 تومان", f.FormatWithLabel(173_100_000_000, models.CurrencyToman))
}

func TestMoneyFormatter_Persian(t *testing.T) {
	f := NewMoneyFormatter(language.MustParse("fa-IR"))

	out := f.Format(1_234_567, models.CurrencyRial)
	assert.NotEqual(t, "1,234,567", out)
	assert.Contains(t, out, "۱")
	assert.NotContains(t, out, "1")
}

package services

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

var (
	tomanDivisor = decimal.NewFromInt(10)
	half         = decimal.NewFromFloat(0.5)
)

// ToDisplayUnit converts a Rial amount to the unit of mode.
// Toman values round half up, so -2.5 becomes -2.
func ToDisplayUnit(amountRial int64, mode models.CurrencyMode) int64 {
	if mode != models.CurrencyToman {
		return amountRial
	}
	return decimal.NewFromInt(amountRial).Div(tomanDivisor).Add(half).Floor().IntPart()
}

// CurrencyLabel returns the Persian unit name for mode
func CurrencyLabel(mode models.CurrencyMode) string {
	if mode == models.CurrencyToman {
		return "تومان"
	}
	return "ریال"
}

// MoneyFormatter renders amounts with locale digit grouping
type MoneyFormatter struct {
	printer *message.Printer
}

// NewMoneyFormatter creates a formatter for the given locale
func NewMoneyFormatter(tag language.Tag) *MoneyFormatter {
	return &MoneyFormatter{printer: message.NewPrinter(tag)}
}

// Format converts amountRial to the unit of mode and groups its digits
func (f *MoneyFormatter) Format(amountRial int64, mode models.CurrencyMode) string {
	return f.printer.Sprintf("%d", ToDisplayUnit(amountRial, mode))
}

// FormatWithLabel is Format followed by the unit name
func (f *MoneyFormatter) FormatWithLabel(amountRial int64, mode models.CurrencyMode) string {
	return f.Format(amountRial, mode) + " " + CurrencyLabel(mode)
}

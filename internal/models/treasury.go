package models

import "github.com/shopspring/decimal"

// ForecastType separates booked history from projected values
type ForecastType string

const (
	ForecastActual   ForecastType = "Actual"
	ForecastForecast ForecastType = "Forecast"
)

// ForecastPoint is one day of the cash-flow forecast series
type ForecastPoint struct {
	Date   string       `json:"date"`
	Amount int64        `json:"amount"`
	Type   ForecastType `json:"type"`
	Range  *[2]int64    `json:"range,omitempty"` // Confidence band [low, high], forecasts only
}

// WaterfallType classifies an entry of a daily waterfall
type WaterfallType string

const (
	WaterfallStart    WaterfallType = "start"
	WaterfallPositive WaterfallType = "positive"
	WaterfallNegative WaterfallType = "negative"
	WaterfallEnd      WaterfallType = "end"
)

// WaterfallPoint is one entry of a day's movement from opening to closing balance.
// Negative entries carry a negative Value.
type WaterfallPoint struct {
	Name  string        `json:"name"`
	Value int64         `json:"value"`
	Type  WaterfallType `json:"type"`
}

// DebtStatus is the due state of a debt
type DebtStatus string

const (
	DebtOverdue  DebtStatus = "overdue"
	DebtDueToday DebtStatus = "dueToday"
	DebtUpcoming DebtStatus = "upcoming"
)

// DueDebt is an obligation towards a creditor
type DueDebt struct {
	ID         string     `json:"id"`
	Creditor   string     `json:"creditor"`
	AmountRial int64      `json:"amountRial"`
	DueDate    string     `json:"dueDate"`
	Status     DebtStatus `json:"status"`
}

// PositionSide is informational, it is not checked against the equivalent amount
type PositionSide string

const (
	PositionLong    PositionSide = "long"
	PositionShort   PositionSide = "short"
	PositionNeutral PositionSide = "neutral"
)

// CurrencyPosition is the holding in one foreign currency
type CurrencyPosition struct {
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`         // In the foreign currency
	EquivalentRial int64           `json:"equivalentRial"` // Signed, shorts are negative
	Position       PositionSide    `json:"position"`
}

// Snapshot is an immutable set of inputs read from a data provider
type Snapshot struct {
	Accounts          []BankAccount      `json:"accounts"`
	Transactions      []Transaction      `json:"transactions"`
	Forecast          []ForecastPoint    `json:"forecast"`
	Waterfall         []WaterfallPoint   `json:"waterfall"`
	DueDebts          []DueDebt          `json:"dueDebts"`
	CurrencyPositions []CurrencyPosition `json:"currencyPositions"`
}

// CurrencyMode selects the unit used when amounts are rendered as text
type CurrencyMode string

const (
	CurrencyRial  CurrencyMode = "RIAL"
	CurrencyToman CurrencyMode = "TOMAN"
)

// ParseCurrencyMode returns the mode for s, defaulting to Rial
func ParseCurrencyMode(s string) CurrencyMode {
	if CurrencyMode(s) == CurrencyToman {
		return CurrencyToman
	}
	return CurrencyRial
}

package data

import (
	"github.com/shopspring/decimal"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// SampleSnapshot returns the demo data set shown by the dashboard
func SampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Accounts:          sampleAccounts(),
		Transactions:      sampleTransactions(),
		Forecast:          sampleForecast(),
		Waterfall:         sampleWaterfall(),
		DueDebts:          sampleDueDebts(),
		CurrencyPositions: sampleCurrencyPositions(),
	}
}

func sampleAccounts() []models.BankAccount {
	return []models.BankAccount{
		models.NewBankAccount("1", "بانک ملت", "4423/88/1029", 45_000_000_000, 5_000_000_000,
			models.WithLogoColor("bg-red-600"),
			models.WithIncomingCheques(2_500_000_000),
			models.WithPendingPayaOutflows(1_200_000_000)),
		models.NewBankAccount("2", "بانک تجارت", "3002/11/9090", 23_500_000_000, 0,
			models.WithLogoColor("bg-blue-600"),
			models.WithIncomingCheques(800_000_000),
			models.WithPendingPayaOutflows(500_000_000)),
		models.NewBankAccount("3", "بانک پاسارگاد", "110.200.3399", 89_000_000_000, 12_000_000_000,
			models.WithLogoColor("bg-yellow-500"),
			models.WithIncomingCheques(5_000_000_000),
			models.WithPendingPayaOutflows(3_000_000_000)),
		models.NewBankAccount("4", "بانک سامان", "880-10-2020-1", 15_600_000_000, 0,
			models.WithLogoColor("bg-blue-400"),
			models.WithPendingPayaOutflows(800_000_000)),
	}
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "1", Description: "واریز حقوق کارکنان", AmountRial: 12_500_000_000, Type: models.TransactionDebit, Date: "1402/09/13", Category: "حقوق و دستمزد", BankID: "1", Status: models.StatusCompleted},
		{ID: "2", Description: "دریافت از مشتری - شرکت آلفا", AmountRial: 8_700_000_000, Type: models.TransactionCredit, Date: "1402/09/13", Category: "فروش", BankID: "3", Status: models.StatusCompleted},
		{ID: "3", Description: "پرداخت به تامین‌کننده", AmountRial: 3_200_000_000, Type: models.TransactionDebit, Date: "1402/09/12", Category: "خرید", BankID: "2", Status: models.StatusCompleted},
		{ID: "4", Description: "دریافت سود سپرده", AmountRial: 1_850_000_000, Type: models.TransactionCredit, Date: "1402/09/12", Category: "سود بانکی", BankID: "3", Status: models.StatusCompleted},
		{ID: "5", Description: "پرداخت مالیات", AmountRial: 5_600_000_000, Type: models.TransactionDebit, Date: "1402/09/11", Category: "مالیات", BankID: "1", Status: models.StatusCompleted},
		{ID: "6", Description: "دریافت از مشتری - شرکت بتا", AmountRial: 15_200_000_000, Type: models.TransactionCredit, Date: "1402/09/11", Category: "فروش", BankID: "4", Status: models.StatusCompleted},
		{ID: "7", Description: "پرداخت پایا - تامین‌کننده گاما", AmountRial: 2_100_000_000, Type: models.TransactionDebit, Date: "1402/09/14", Category: "خرید", BankID: "1", Status: models.StatusPending},
		{ID: "8", Description: "چک دریافتی - شرکت دلتا", AmountRial: 4_500_000_000, Type: models.TransactionCredit, Date: "1402/09/14", Category: "فروش", BankID: "2", Status: models.StatusScheduled},
	}
}

func sampleForecast() []models.ForecastPoint {
	band := func(low, high int64) *[2]int64 { return &[2]int64{low, high} }
	return []models.ForecastPoint{
		{Date: "1402/09/10", Amount: 155_000_000_000, Type: models.ForecastActual},
		{Date: "1402/09/11", Amount: 148_000_000_000, Type: models.ForecastActual},
		{Date: "1402/09/12", Amount: 160_000_000_000, Type: models.ForecastActual},
		{Date: "1402/09/13", Amount: 173_100_000_000, Type: models.ForecastActual},
		{Date: "1402/09/14", Amount: 170_000_000_000, Type: models.ForecastForecast, Range: band(165_000_000_000, 175_000_000_000)},
		{Date: "1402/09/15", Amount: 185_000_000_000, Type: models.ForecastForecast, Range: band(178_000_000_000, 192_000_000_000)},
		{Date: "1402/09/16", Amount: 180_000_000_000, Type: models.ForecastForecast, Range: band(170_000_000_000, 190_000_000_000)},
	}
}

// sampleWaterfall is one day of movement from the morning to the evening balance
func sampleWaterfall() []models.WaterfallPoint {
	return []models.WaterfallPoint{
		{Name: "موجودی صبح", Value: 173_100_000_000, Type: models.WaterfallStart},
		{Name: "دریافت مشتری", Value: 15_200_000_000, Type: models.WaterfallPositive},
		{Name: "چک وصولی", Value: 8_300_000_000, Type: models.WaterfallPositive},
		{Name: "سود سپرده", Value: 1_850_000_000, Type: models.WaterfallPositive},
		{Name: "حقوق", Value: -12_500_000_000, Type: models.WaterfallNegative},
		{Name: "تامین‌کننده", Value: -6_800_000_000, Type: models.WaterfallNegative},
		{Name: "مالیات", Value: -5_600_000_000, Type: models.WaterfallNegative},
		{Name: "موجودی عصر", Value: 173_550_000_000, Type: models.WaterfallEnd},
	}
}

func sampleDueDebts() []models.DueDebt {
	return []models.DueDebt{
		{ID: "1", Creditor: "بانک ملت - تسهیلات", AmountRial: 8_500_000_000, DueDate: "1402/09/13", Status: models.DebtDueToday},
		{ID: "2", Creditor: "شرکت تامین‌کننده آلفا", AmountRial: 3_200_000_000, DueDate: "1402/09/13", Status: models.DebtDueToday},
		{ID: "3", Creditor: "سازمان امور مالیاتی", AmountRial: 5_600_000_000, DueDate: "1402/09/10", Status: models.DebtOverdue},
		{ID: "4", Creditor: "بانک پاسارگاد - اقساط", AmountRial: 2_100_000_000, DueDate: "1402/09/15", Status: models.DebtUpcoming},
	}
}

func sampleCurrencyPositions() []models.CurrencyPosition {
	return []models.CurrencyPosition{
		{Currency: "USD", Amount: decimal.NewFromInt(125_000), EquivalentRial: 85_625_000_000, Position: models.PositionLong},
		{Currency: "EUR", Amount: decimal.NewFromInt(-15_000), EquivalentRial: -11_250_000_000, Position: models.PositionShort},
		{Currency: "AED", Amount: decimal.NewFromInt(50_000), EquivalentRial: 9_350_000_000, Position: models.PositionLong},
	}
}

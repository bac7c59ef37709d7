package services

import "github.com/ashmitsharp/treasury-api/internal/models"

// TotalBalance sums the ledger balances of all accounts
func TotalBalance(accounts []models.BankAccount) int64 {
	var sum int64
	for _, acc := range accounts {
		sum += acc.BalanceRial
	}
	return sum
}

// TotalBlocked sums the blocked amounts of all accounts
func TotalBlocked(accounts []models.BankAccount) int64 {
	var sum int64
	for _, acc := range accounts {
		sum += acc.BlockedRial
	}
	return sum
}

// TotalIncomingCheques sums incoming cheques of all accounts
func TotalIncomingCheques(accounts []models.BankAccount) int64 {
	var sum int64
	for _, acc := range accounts {
		sum += acc.IncomingCheques
	}
	return sum
}

// TotalPendingOutflows sums pending Paya outflows of all accounts
func TotalPendingOutflows(accounts []models.BankAccount) int64 {
	var sum int64
	for _, acc := range accounts {
		sum += acc.PendingPayaOutflows
	}
	return sum
}

// AvailableBalance is the total balance minus the total blocked amount
func AvailableBalance(accounts []models.BankAccount) int64 {
	return TotalBalance(accounts) - TotalBlocked(accounts)
}

// AccountLiquidity applies the liquidity formula to a single account:
// ledger balance + incoming cheques - blocked - pending outflows
func AccountLiquidity(acc models.BankAccount) int64 {
	return acc.BalanceRial + acc.IncomingCheques - acc.BlockedRial - acc.PendingPayaOutflows
}

// AvailableLiquidity sums AccountLiquidity over all accounts.
// Keep it per-account: conversions that depend on the account must happen before summing.
func AvailableLiquidity(accounts []models.BankAccount) int64 {
	var sum int64
	for _, acc := range accounts {
		sum += AccountLiquidity(acc)
	}
	return sum
}

// TotalDueToday sums debts that are due today
func TotalDueToday(debts []models.DueDebt) int64 {
	return sumDebts(debts, models.DebtDueToday)
}

// TotalOverdue sums debts past their due date
func TotalOverdue(debts []models.DueDebt) int64 {
	return sumDebts(debts, models.DebtOverdue)
}

func sumDebts(debts []models.DueDebt, status models.DebtStatus) int64 {
	var sum int64
	for _, d := range debts {
		if d.Status == status {
			sum += d.AmountRial
		}
	}
	return sum
}

// NetCurrencyPosition sums the signed Rial equivalents of all currency positions
func NetCurrencyPosition(positions []models.CurrencyPosition) int64 {
	var sum int64
	for _, p := range positions {
		sum += p.EquivalentRial
	}
	return sum
}

// KPISummary is the set of headline figures shown at the top of the dashboard
type KPISummary struct {
	TotalBalance        int64 `json:"totalBalance"`
	TotalBlocked        int64 `json:"totalBlocked"`
	AvailableBalance    int64 `json:"availableBalance"`
	AvailableLiquidity  int64 `json:"availableLiquidity"`
	DueToday            int64 `json:"dueToday"`
	Overdue             int64 `json:"overdue"`
	NetCurrencyPosition int64 `json:"netCurrencyPosition"`
	IsLongPosition      bool  `json:"isLongPosition"`
	AccountCount        int   `json:"accountCount"`
	TransactionCount    int   `json:"transactionCount"`
}

// BuildKPISummary computes every headline figure from a snapshot
func BuildKPISummary(snap *models.Snapshot) KPISummary {
	if snap == nil {
		return KPISummary{IsLongPosition: true}
	}

	net := NetCurrencyPosition(snap.CurrencyPositions)
	return KPISummary{
		TotalBalance:        TotalBalance(snap.Accounts),
		TotalBlocked:        TotalBlocked(snap.Accounts),
		AvailableBalance:    AvailableBalance(snap.Accounts),
		AvailableLiquidity:  AvailableLiquidity(snap.Accounts),
		DueToday:            TotalDueToday(snap.DueDebts),
		Overdue:             TotalOverdue(snap.DueDebts),
		NetCurrencyPosition: net,
		IsLongPosition:      net >= 0,
		AccountCount:        len(snap.Accounts),
		TransactionCount:    len(snap.Transactions),
	}
}

// SharePercent returns part as a percentage of total, or 0 when total is 0
func SharePercent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

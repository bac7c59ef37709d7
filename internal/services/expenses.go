package services

import (
	"cmp"
	"slices"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// CategoryExpense is the debit total of one transaction category
type CategoryExpense struct {
	Category     string  `json:"category"`
	TotalRial    int64   `json:"totalRial"`
	Count        int     `json:"count"`
	SharePercent float64 `json:"sharePercent"`
}

// ExpenseBreakdown groups debit transactions by category, largest total first.
// Categories with equal totals keep the order in which they first appear.
func ExpenseBreakdown(txns []models.Transaction) []CategoryExpense {
	out := []CategoryExpense{}
	index := make(map[string]int)
	var total int64

	for _, t := range txns {
		if t.Type != models.TransactionDebit {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryExpense{Category: t.Category})
		}
		out[i].TotalRial += t.AmountRial
		out[i].Count++
		total += t.AmountRial
	}

	for i := range out {
		out[i].SharePercent = SharePercent(out[i].TotalRial, total)
	}
	slices.SortStableFunc(out, func(a, b CategoryExpense) int {
		return cmp.Compare(b.TotalRial, a.TotalRial)
	})
	return out
}

package services

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// DrillDownLimit is the number of transactions attached to a row for display
const DrillDownLimit = 5

// AllGroupName names the single implicit group used when grouping is off
const AllGroupName = "all"

// SortField is a numeric column of the cash position table
type SortField string

const (
	SortByBalance         SortField = "balance"
	SortByIncomingCheques SortField = "incomingCheques"
	SortByBlocked         SortField = "blocked"
	SortByPendingPaya     SortField = "pendingPaya"
	SortByAvailable       SortField = "available"
)

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// GroupBy selects how rows are partitioned
type GroupBy string

const (
	GroupByNone GroupBy = "none"
	GroupByBank GroupBy = "bank"
)

// ParseSortField validates a sort column name
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByBalance, SortByIncomingCheques, SortByBlocked, SortByPendingPaya, SortByAvailable:
		return f, nil
	}
	return "", fmt.Errorf("invalid sort field: %s", s)
}

// ParseSortDirection validates a sort direction
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(s); d {
	case SortAsc, SortDesc:
		return d, nil
	}
	return "", fmt.Errorf("invalid sort direction: %s", s)
}

// ParseGroupBy validates a grouping mode
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case GroupByNone, GroupByBank:
		return g, nil
	}
	return "", fmt.Errorf("invalid group_by: %s", s)
}

// SortState is the column and direction the table is sorted by
type SortState struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortState sorts by balance, largest first
func DefaultSortState() SortState {
	return SortState{Field: SortByBalance, Direction: SortDesc}
}

// Toggle returns the state after a click on field: the same field flips the
// direction, a new field starts descending.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		if s.Direction == SortAsc {
			return SortState{Field: field, Direction: SortDesc}
		}
		return SortState{Field: field, Direction: SortAsc}
	}
	return SortState{Field: field, Direction: SortDesc}
}

// AccountRow is the derived view of one account
type AccountRow struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	AccountNumber    string               `json:"accountNumber"`
	LogoColor        string               `json:"logoColor"`
	Balance          int64                `json:"balance"`
	Blocked          int64                `json:"blocked"`
	IncomingCheques  int64                `json:"incomingCheques"`
	PendingPaya      int64                `json:"pendingPaya"`
	Available        int64                `json:"available"`
	SharePercent     float64              `json:"sharePercent"`
	Transactions     []models.Transaction `json:"transactions"`
	TransactionCount int                  `json:"transactionCount"`
}

// Value returns the numeric column named by field
func (r AccountRow) Value(field SortField) int64 {
	switch field {
	case SortByIncomingCheques:
		return r.IncomingCheques
	case SortByBlocked:
		return r.Blocked
	case SortByPendingPaya:
		return r.PendingPaya
	case SortByAvailable:
		return r.Available
	default:
		return r.Balance
	}
}

// Subtotals are the column sums of a set of rows
type Subtotals struct {
	Balance         int64 `json:"balance"`
	Blocked         int64 `json:"blocked"`
	IncomingCheques int64 `json:"incomingCheques"`
	PendingPaya     int64 `json:"pendingPaya"`
	Available       int64 `json:"available"`
}

func (s *Subtotals) add(r AccountRow) {
	s.Balance += r.Balance
	s.Blocked += r.Blocked
	s.IncomingCheques += r.IncomingCheques
	s.PendingPaya += r.PendingPaya
	s.Available += r.Available
}

// RowGroup is a named partition of rows with its own subtotal
type RowGroup struct {
	Name     string       `json:"name"`
	Rows     []AccountRow `json:"accounts"`
	Subtotal Subtotals    `json:"subtotal"`
}

// CashPositionOptions controls sorting and grouping
type CashPositionOptions struct {
	Sort    SortState
	GroupBy GroupBy
}

// CashPositionView is the table model for the cash position page
type CashPositionView struct {
	Sort    SortState  `json:"sort"`
	GroupBy GroupBy    `json:"groupBy"`
	Groups  []RowGroup `json:"groups"`
	Totals  Subtotals  `json:"totals"`

	TransactionCount int `json:"transactionCount"`

	rowIndex map[string][2]int
}

// Row looks a row up by account id
func (v *CashPositionView) Row(id string) (AccountRow, bool) {
	pos, ok := v.rowIndex[id]
	if !ok {
		return AccountRow{}, false
	}
	return v.Groups[pos[0]].Rows[pos[1]], true
}

// Group looks a group up by name
func (v *CashPositionView) Group(name string) (RowGroup, bool) {
	for _, g := range v.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return RowGroup{}, false
}

// TransactionsForAccount returns the transactions referencing accountID in input order.
// The result is never nil.
func TransactionsForAccount(transactions []models.Transaction, accountID string) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, t := range transactions {
		if t.BankID == accountID {
			out = append(out, t)
		}
	}
	return out
}

// BuildAccountRow derives the row for one account, attaching up to DrillDownLimit transactions
func BuildAccountRow(acc models.BankAccount, transactions []models.Transaction, totalBalance int64) AccountRow {
	txns := TransactionsForAccount(transactions, acc.ID)
	shown := txns
	if len(shown) > DrillDownLimit {
		shown = shown[:DrillDownLimit]
	}

	return AccountRow{
		ID:               acc.ID,
		Name:             acc.BankName,
		AccountNumber:    acc.AccountNumber,
		LogoColor:        acc.LogoColor,
		Balance:          acc.BalanceRial,
		Blocked:          acc.BlockedRial,
		IncomingCheques:  acc.IncomingCheques,
		PendingPaya:      acc.PendingPayaOutflows,
		Available:        acc.BalanceRial - acc.BlockedRial + acc.IncomingCheques - acc.PendingPayaOutflows,
		SharePercent:     SharePercent(acc.BalanceRial, totalBalance),
		Transactions:     slices.Clone(shown),
		TransactionCount: len(txns),
	}
}

// BuildBankPositions derives rows for the bank positions table, in input order
func BuildBankPositions(accounts []models.BankAccount, transactions []models.Transaction) []AccountRow {
	total := TotalBalance(accounts)
	rows := make([]AccountRow, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, BuildAccountRow(acc, transactions, total))
	}
	return rows
}

// SortRows sorts rows in place with a stable numeric comparison
func SortRows(rows []AccountRow, state SortState) {
	slices.SortStableFunc(rows, func(a, b AccountRow) int {
		c := cmp.Compare(a.Value(state.Field), b.Value(state.Field))
		if state.Direction == SortAsc {
			return c
		}
		return -c
	})
}

// groupKey returns the group a row belongs to
func groupKey(mode GroupBy, row AccountRow) string {
	if mode == GroupByBank {
		return row.Name
	}
	return AllGroupName
}

// BuildCashPosition derives, sorts and groups the account rows.
// Inputs are not modified.
func BuildCashPosition(accounts []models.BankAccount, transactions []models.Transaction, opts CashPositionOptions) *CashPositionView {
	if opts.Sort.Field == "" {
		opts.Sort.Field = SortByBalance
	}
	if opts.Sort.Direction == "" {
		opts.Sort.Direction = SortDesc
	}
	if opts.GroupBy == "" {
		opts.GroupBy = GroupByNone
	}

	rows := BuildBankPositions(accounts, transactions)
	SortRows(rows, opts.Sort)

	view := &CashPositionView{
		Sort:             opts.Sort,
		GroupBy:          opts.GroupBy,
		Groups:           make([]RowGroup, 0),
		TransactionCount: len(transactions),
		rowIndex:         make(map[string][2]int, len(rows)),
	}

	groupIndex := make(map[string]int)
	if opts.GroupBy == GroupByNone {
		// The implicit group exists even when there are no accounts
		groupIndex[AllGroupName] = 0
		view.Groups = append(view.Groups, RowGroup{Name: AllGroupName, Rows: make([]AccountRow, 0, len(rows))})
	}

	for _, row := range rows {
		key := groupKey(opts.GroupBy, row)
		gi, ok := groupIndex[key]
		if !ok {
			gi = len(view.Groups)
			groupIndex[key] = gi
			view.Groups = append(view.Groups, RowGroup{Name: key, Rows: make([]AccountRow, 0, 1)})
		}

		g := &view.Groups[gi]
		view.rowIndex[row.ID] = [2]int{gi, len(g.Rows)}
		g.Rows = append(g.Rows, row)
		g.Subtotal.add(row)
	}

	view.Totals = Subtotals{
		Balance:         TotalBalance(accounts),
		Blocked:         TotalBlocked(accounts),
		IncomingCheques: TotalIncomingCheques(accounts),
		PendingPaya:     TotalPendingOutflows(accounts),
		Available:       AvailableLiquidity(accounts),
	}

	return view
}

// ExpansionState tracks which groups and rows are expanded.
// Lookups and toggles are O(1).
type ExpansionState struct {
	groups map[string]struct{}
	rows   map[string]struct{}
}

// NewExpansionState starts with the implicit "all" group expanded and no rows expanded
func NewExpansionState() *ExpansionState {
	return &ExpansionState{
		groups: map[string]struct{}{AllGroupName: {}},
		rows:   make(map[string]struct{}),
	}
}

// ToggleGroup flips a group and reports whether it is now expanded
func (e *ExpansionState) ToggleGroup(name string) bool {
	return toggle(e.groups, name)
}

// ToggleRow flips a row and reports whether it is now expanded
func (e *ExpansionState) ToggleRow(id string) bool {
	return toggle(e.rows, id)
}

// GroupExpanded reports whether the named group is expanded
func (e *ExpansionState) GroupExpanded(name string) bool {
	_, ok := e.groups[name]
	return ok
}

// RowExpanded reports whether the row is expanded
func (e *ExpansionState) RowExpanded(id string) bool {
	_, ok := e.rows[id]
	return ok
}

// ExpandedRows returns the expanded row ids in sorted order
func (e *ExpansionState) ExpandedRows() []string {
	ids := make([]string, 0, len(e.rows))
	for id := range e.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func toggle(set map[string]struct{}, key string) bool {
	if _, ok := set[key]; ok {
		delete(set, key)
		return false
	}
	set[key] = struct{}{}
	return true
}

package services

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// XLSXContentType is the MIME type of generated reports
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrUnknownReport is returned for report types that cannot be generated
var ErrUnknownReport = errors.New("unknown report type")

// ReportType identifies a downloadable report
type ReportType string

const (
	ReportBankBalance ReportType = "bank-balance"
	ReportCashFlow    ReportType = "cash-flow"
	ReportForecast    ReportType = "forecast"
	ReportExpenses    ReportType = "expense-analysis"
)

// ReportInfo describes a report for listing
type ReportInfo struct {
	Type        ReportType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// AvailableReports lists the reports BuildReport can generate
var AvailableReports = []ReportInfo{
	{Type: ReportCashFlow, Title: "Cash flow", Description: "Daily waterfall and transaction movements"},
	{Type: ReportBankBalance, Title: "Bank balances", Description: "Position of every bank account with liquidity breakdown"},
	{Type: ReportForecast, Title: "Cash forecast", Description: "Actual and projected balances with confidence range"},
	{Type: ReportExpenses, Title: "Expense analysis", Description: "Debit transactions totalled by category"},
}

// BuildReport renders reportType from snap as an xlsx workbook
func BuildReport(reportType ReportType, snap *models.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	var err error
	switch reportType {
	case ReportBankBalance:
		err = writeBankBalanceSheet(f, snap)
	case ReportCashFlow:
		err = writeCashFlowSheets(f, snap)
	case ReportForecast:
		err = writeForecastSheet(f, snap)
	case ReportExpenses:
		err = writeExpenseSheet(f, snap)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, reportType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s report: %w", reportType, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBankBalanceSheet(f *excelize.File, snap *models.Snapshot) error {
	const sheet = "Bank Balances"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]any{{"Bank", "Account Number", "Balance", "Blocked", "Incoming Cheques", "Pending Paya", "Available", "Share %"}}
	for _, r := range BuildBankPositions(snap.Accounts, snap.Transactions) {
		rows = append(rows, []any{r.Name, r.AccountNumber, r.Balance, r.Blocked, r.IncomingCheques, r.PendingPaya, r.Available, r.SharePercent})
	}
	rows = append(rows, []any{
		"Total", "",
		TotalBalance(snap.Accounts),
		TotalBlocked(snap.Accounts),
		TotalIncomingCheques(snap.Accounts),
		TotalPendingOutflows(snap.Accounts),
		AvailableLiquidity(snap.Accounts),
		"",
	})

	return writeTable(f, sheet, rows)
}

func writeCashFlowSheets(f *excelize.File, snap *models.Snapshot) error {
	const waterfallSheet = "Waterfall"
	if err := f.SetSheetName("Sheet1", waterfallSheet); err != nil {
		return err
	}

	bars, err := BuildWaterfall(snap.Waterfall)
	if err != nil {
		return err
	}
	rows := [][]any{{"Item", "Type", "Amount", "Running Total"}}
	for _, b := range bars {
		rows = append(rows, []any{b.Name, string(b.Type), b.Delta, b.RunningTotal})
	}
	summary := SummarizeWaterfall(bars)
	rows = append(rows,
		[]any{},
		[]any{"Opening", "", summary.Opening, ""},
		[]any{"Total inflow", "", summary.TotalInflow, ""},
		[]any{"Total outflow", "", summary.TotalOutflow, ""},
		[]any{"Closing", "", summary.Closing, ""},
	)
	if err := writeTable(f, waterfallSheet, rows); err != nil {
		return err
	}

	const txnSheet = "Transactions"
	if _, err := f.NewSheet(txnSheet); err != nil {
		return err
	}
	txnRows := [][]any{{"ID", "Date", "Description", "Category", "Type", "Amount", "Bank", "Status"}}
	for _, t := range snap.Transactions {
		txnRows = append(txnRows, []any{t.ID, t.Date, t.Description, t.Category, string(t.Type), t.SignedAmount(), t.BankID, string(t.Status)})
	}
	return writeTable(f, txnSheet, txnRows)
}

func writeForecastSheet(f *excelize.File, snap *models.Snapshot) error {
	const sheet = "Forecast"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]any{{"Date", "Type", "Amount", "Low", "High"}}
	for _, p := range snap.Forecast {
		row := []any{p.Date, string(p.Type), p.Amount, "", ""}
		if p.Range != nil {
			row[3], row[4] = p.Range[0], p.Range[1]
		}
		rows = append(rows, row)
	}
	return writeTable(f, sheet, rows)
}

func writeExpenseSheet(f *excelize.File, snap *models.Snapshot) error {
	const sheet = "Expenses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]any{{"Category", "Transactions", "Total", "Share %"}}
	var total int64
	for _, c := range ExpenseBreakdown(snap.Transactions) {
		rows = append(rows, []any{c.Category, c.Count, c.TotalRial, c.SharePercent})
		total += c.TotalRial
	}
	rows = append(rows, []any{"Total", "", total, ""})

	return writeTable(f, sheet, rows)
}

// writeTable writes rows starting at A1 with a bold header row
func writeTable(f *excelize.File, sheet string, rows [][]any) error {
	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 20)
}

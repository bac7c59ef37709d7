package data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// Querier is the subset of pgxpool.Pool used by PostgresProvider
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	accountsQuery = `
		SELECT id, bank_name, COALESCE(logo_color, ''), account_number,
		       balance_rial, blocked_rial, incoming_cheques, pending_paya_outflows
		FROM bank_accounts
		ORDER BY sort_order, id`

	transactionsQuery = `
		SELECT id, description, amount_rial, txn_type, txn_date, category, bank_id, status
		FROM transactions
		ORDER BY sort_order, id`

	forecastQuery = `
		SELECT forecast_date, amount, point_type, range_low, range_high
		FROM forecast_points
		ORDER BY sort_order`

	waterfallQuery = `
		SELECT name, value, point_type
		FROM waterfall_points
		ORDER BY sort_order`

	dueDebtsQuery = `
		SELECT id, creditor, amount_rial, due_date, status
		FROM due_debts
		ORDER BY sort_order, id`

	currencyPositionsQuery = `
		SELECT currency, amount::text, equivalent_rial, position
		FROM currency_positions
		ORDER BY sort_order, currency`
)

// PostgresProvider reads snapshots from Postgres
type PostgresProvider struct {
	db Querier
}

// NewPostgresProvider creates a provider reading through db
func NewPostgresProvider(db Querier) *PostgresProvider {
	return &PostgresProvider{db: db}
}

// Snapshot reads all six collections
func (p *PostgresProvider) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	accounts, err := queryAll(ctx, p.db, accountsQuery, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	transactions, err := queryAll(ctx, p.db, transactionsQuery, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	forecast, err := queryAll(ctx, p.db, forecastQuery, scanForecastPoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast: %w", err)
	}
	waterfall, err := queryAll(ctx, p.db, waterfallQuery, scanWaterfallPoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load waterfall: %w", err)
	}
	debts, err := queryAll(ctx, p.db, dueDebtsQuery, scanDueDebt)
	if err != nil {
		return nil, fmt.Errorf("failed to load due debts: %w", err)
	}
	positions, err := queryAll(ctx, p.db, currencyPositionsQuery, scanCurrencyPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency positions: %w", err)
	}

	return &models.Snapshot{
		Accounts:          accounts,
		Transactions:      transactions,
		Forecast:          forecast,
		Waterfall:         waterfall,
		DueDebts:          debts,
		CurrencyPositions: positions,
	}, nil
}

func queryAll[T any](ctx context.Context, db Querier, query string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func scanAccount(row pgx.CollectableRow) (models.BankAccount, error) {
	var (
		id, bankName, logoColor, accountNumber string
		balance, blocked                       int64
		incoming, pending                      pgtype.Int8
	)
	if err := row.Scan(&id, &bankName, &logoColor, &accountNumber, &balance, &blocked, &incoming, &pending); err != nil {
		return models.BankAccount{}, err
	}

	// NULL optional amounts become 0 here, not at every use site
	return models.NewBankAccount(id, bankName, accountNumber, balance, blocked,
		models.WithLogoColor(logoColor),
		models.WithIncomingCheques(incoming.Int64),
		models.WithPendingPayaOutflows(pending.Int64),
	), nil
}

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var (
		t              models.Transaction
		txnType        string
		bankID, status pgtype.Text
	)
	if err := row.Scan(&t.ID, &t.Description, &t.AmountRial, &txnType, &t.Date, &t.Category, &bankID, &status); err != nil {
		return t, err
	}
	t.Type = models.TransactionType(txnType)
	t.BankID = bankID.String
	t.Status = models.TransactionStatus(status.String)
	return t, nil
}

func scanForecastPoint(row pgx.CollectableRow) (models.ForecastPoint, error) {
	var (
		p         models.ForecastPoint
		pointType string
		low, high pgtype.Int8
	)
	if err := row.Scan(&p.Date, &p.Amount, &pointType, &low, &high); err != nil {
		return p, err
	}
	p.Type = models.ForecastType(pointType)
	if low.Valid && high.Valid {
		p.Range = &[2]int64{low.Int64, high.Int64}
	}
	return p, nil
}

func scanWaterfallPoint(row pgx.CollectableRow) (models.WaterfallPoint, error) {
	var (
		p         models.WaterfallPoint
		pointType string
	)
	if err := row.Scan(&p.Name, &p.Value, &pointType); err != nil {
		return p, err
	}
	p.Type = models.WaterfallType(pointType)
	return p, nil
}

func scanDueDebt(row pgx.CollectableRow) (models.DueDebt, error) {
	var (
		d      models.DueDebt
		status string
	)
	if err := row.Scan(&d.ID, &d.Creditor, &d.AmountRial, &d.DueDate, &status); err != nil {
		return d, err
	}
	d.Status = models.DebtStatus(status)
	return d, nil
}

func scanCurrencyPosition(row pgx.CollectableRow) (models.CurrencyPosition, error) {
	var (
		p                models.CurrencyPosition
		amount, position string
	)
	if err := row.Scan(&p.Currency, &amount, &p.EquivalentRial, &position); err != nil {
		return p, err
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return p, fmt.Errorf("invalid amount %q for %s: %w", amount, p.Currency, err)
	}
	p.Amount = dec
	p.Position = models.PositionSide(position)
	return p, nil
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/models"
	"github.com/ashmitsharp/treasury-api/internal/services"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

const (
	defaultTransactionLimit = 10
	maxTransactionLimit     = 100
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	provider data.Provider
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(provider data.Provider) *TransactionHandler {
	return &TransactionHandler{provider: provider}
}

// GetTransactions returns recent transactions with optional filtering
// GET /api/transactions?account_id=1&status=completed|pending|scheduled&limit=10
func (h *TransactionHandler) GetTransactions(c fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultTransactionLimit)))
	if err != nil || limit < 1 || limit > maxTransactionLimit {
		limit = defaultTransactionLimit
	}

	status := models.TransactionStatus(c.Query("status"))
	switch status {
	case "", models.StatusCompleted, models.StatusPending, models.StatusScheduled:
	default:
		return utils.NewBadRequestError("Invalid status parameter. Must be one of: completed, pending, scheduled", string(status))
	}

	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}

	txns := snap.Transactions
	if accountID := c.Query("account_id"); accountID != "" {
		txns = services.TransactionsForAccount(txns, accountID)
	}

	filtered := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if status == "" || t.Status == status {
			filtered = append(filtered, t)
		}
	}

	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return c.JSON(fiber.Map{
		"transactions": filtered,
		"total":        total,
		"limit":        limit,
	})
}

// GetAccountTransactions returns the full drill-down of one account
// GET /api/accounts/:id/transactions
func (h *TransactionHandler) GetAccountTransactions(c fiber.Ctx) error {
	accountID := c.Params("id")

	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}

	var account *models.BankAccount
	for i := range snap.Accounts {
		if snap.Accounts[i].ID == accountID {
			account = &snap.Accounts[i]
			break
		}
	}
	if account == nil {
		return utils.NewNotFoundError("Account")
	}

	txns := services.TransactionsForAccount(snap.Transactions, accountID)
	return c.JSON(fiber.Map{
		"account":      account,
		"transactions": txns,
		"total":        len(txns),
		"liquidity":    services.AccountLiquidity(*account),
	})
}

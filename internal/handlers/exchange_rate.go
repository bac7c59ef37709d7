package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/services"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

// RateProvider returns the current USD rate
type RateProvider interface {
	GetRate(ctx context.Context, forceRefresh bool) (services.ExchangeRate, error)
}

// ExchangeRateHandler serves the USD/IRR quote
type ExchangeRateHandler struct {
	rates RateProvider
}

// NewExchangeRateHandler creates a new exchange rate handler
func NewExchangeRateHandler(rates RateProvider) *ExchangeRateHandler {
	return &ExchangeRateHandler{rates: rates}
}

// GetExchangeRate handles GET /api/exchange-rate
// Query params: refresh (bool, bypasses the cache)
func (h *ExchangeRateHandler) GetExchangeRate(c fiber.Ctx) error {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))

	rate, err := h.rates.GetRate(c.Context(), refresh)
	if err != nil {
		log := logger.FromContext(c.Context())
		log.Error().Err(err).Msg("exchange rate lookup failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch the exchange rate")
	}

	return c.JSON(rate)
}

package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/models"
	"github.com/ashmitsharp/treasury-api/internal/services"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

const (
	// DefaultChartHeight is the waterfall drawing height in pixels
	DefaultChartHeight = 180
	// MinBarHeight keeps tiny waterfall bars visible
	MinBarHeight = 20
)

// SummaryHandler serves the dashboard figures derived from the current snapshot
type SummaryHandler struct {
	provider data.Provider
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(provider data.Provider) *SummaryHandler {
	return &SummaryHandler{provider: provider}
}

// loadSnapshot reads the current snapshot, converting failures into an APIError
func loadSnapshot(ctx context.Context, provider data.Provider) (*models.Snapshot, error) {
	snap, err := provider.Snapshot(ctx)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Msg("failed to load snapshot")
		return nil, utils.NewInternalError(err)
	}
	return snap, nil
}

// GetKPIs handles GET /api/kpis
func (h *SummaryHandler) GetKPIs(c fiber.Ctx) error {
	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}
	return c.JSON(services.BuildKPISummary(snap))
}

// GetAccounts handles GET /api/accounts
func (h *SummaryHandler) GetAccounts(c fiber.Ctx) error {
	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"accounts":           snap.Accounts,
		"totalBalance":       services.TotalBalance(snap.Accounts),
		"totalBlocked":       services.TotalBlocked(snap.Accounts),
		"availableBalance":   services.AvailableBalance(snap.Accounts),
		"availableLiquidity": services.AvailableLiquidity(snap.Accounts),
	})
}

// GetBankPositions handles GET /api/bank-positions
func (h *SummaryHandler) GetBankPositions(c fiber.Ctx) error {
	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"rows":         services.BuildBankPositions(snap.Accounts, snap.Transactions),
		"totalBalance": services.TotalBalance(snap.Accounts),
	})
}

// CashPositionResponse is the cash position table plus its expansion state
type CashPositionResponse struct {
	*services.CashPositionView
	ExpandedGroups []string `json:"expandedGroups"`
	ExpandedRows   []string `json:"expandedRows"`
}

// GetCashPosition handles GET /api/cash-position
// Query params: sort, dir (asc|desc), toggle (column clicked), group_by (none|bank),
// expand (comma separated account ids), expand_groups (comma separated group names),
// collapse_groups (group names to collapse, e.g. "all")
func (h *SummaryHandler) GetCashPosition(c fiber.Ctx) error {
	sort, err := services.ParseSortField(c.Query("sort", string(services.SortByBalance)))
	if err != nil {
		return utils.NewBadRequestError("Invalid sort parameter", err.Error())
	}
	dir, err := services.ParseSortDirection(c.Query("dir", string(services.SortDesc)))
	if err != nil {
		return utils.NewBadRequestError("Invalid dir parameter", err.Error())
	}
	groupBy, err := services.ParseGroupBy(c.Query("group_by", string(services.GroupByNone)))
	if err != nil {
		return utils.NewBadRequestError("Invalid group_by parameter. Must be one of: none, bank", err.Error())
	}

	state := services.SortState{Field: sort, Direction: dir}
	if toggle := c.Query("toggle"); toggle != "" {
		field, err := services.ParseSortField(toggle)
		if err != nil {
			return utils.NewBadRequestError("Invalid toggle parameter", err.Error())
		}
		state = state.Toggle(field)
	}

	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}

	view := services.BuildCashPosition(snap.Accounts, snap.Transactions, services.CashPositionOptions{
		Sort:    state,
		GroupBy: groupBy,
	})

	expansion := services.NewExpansionState()
	for _, name := range splitList(c.Query("expand_groups")) {
		if _, ok := view.Group(name); ok && !expansion.GroupExpanded(name) {
			expansion.ToggleGroup(name)
		}
	}
	for _, name := range splitList(c.Query("collapse_groups")) {
		if expansion.GroupExpanded(name) {
			expansion.ToggleGroup(name)
		}
	}
	for _, id := range splitList(c.Query("expand")) {
		if _, ok := view.Row(id); ok && !expansion.RowExpanded(id) {
			expansion.ToggleRow(id)
		}
	}

	expandedGroups := make([]string, 0, len(view.Groups))
	for _, g := range view.Groups {
		if expansion.GroupExpanded(g.Name) {
			expandedGroups = append(expandedGroups, g.Name)
		}
	}

	return c.JSON(CashPositionResponse{
		CashPositionView: view,
		ExpandedGroups:   expandedGroups,
		ExpandedRows:     expansion.ExpandedRows(),
	})
}

// WaterfallBarResponse is a waterfall bar with its scaled height
type WaterfallBarResponse struct {
	services.WaterfallBar
	Height float64 `json:"height"`
}

// GetWaterfall handles GET /api/waterfall
// Query params: chart_height (pixels, default 180)
func (h *SummaryHandler) GetWaterfall(c fiber.Ctx) error {
	chartHeight := float64(DefaultChartHeight)
	if raw := c.Query("chart_height"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return utils.NewBadRequestError("chart_height must be a positive number", raw)
		}
		chartHeight = v
	}

	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}

	bars, err := services.BuildWaterfall(snap.Waterfall)
	if err != nil {
		if errors.Is(err, services.ErrMalformedWaterfall) {
			return utils.NewUnprocessableError("Waterfall data is malformed", err.Error())
		}
		return utils.NewInternalError(err)
	}

	scale := services.WaterfallScale(bars)
	out := make([]WaterfallBarResponse, 0, len(bars))
	for _, b := range bars {
		out = append(out, WaterfallBarResponse{
			WaterfallBar: b,
			Height:       services.BarHeight(b.Delta, scale, chartHeight, MinBarHeight),
		})
	}

	return c.JSON(fiber.Map{
		"bars":    out,
		"summary": services.SummarizeWaterfall(bars),
		"scale":   scale,
	})
}

// GetForecast handles GET /api/forecast
func (h *SummaryHandler) GetForecast(c fiber.Ctx) error {
	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}
	return c.JSON(services.BuildForecastView(snap.Forecast))
}

// GetDueDebts handles GET /api/debts
func (h *SummaryHandler) GetDueDebts(c fiber.Ctx) error {
	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"debts":    snap.DueDebts,
		"dueToday": services.TotalDueToday(snap.DueDebts),
		"overdue":  services.TotalOverdue(snap.DueDebts),
	})
}

// GetCurrencyPositions handles GET /api/currency-positions
func (h *SummaryHandler) GetCurrencyPositions(c fiber.Ctx) error {
	snap, err := loadSnapshot(c.Context(), h.provider)
	if err != nil {
		return err
	}
	net := services.NetCurrencyPosition(snap.CurrencyPositions)
	return c.JSON(fiber.Map{
		"positions":      snap.CurrencyPositions,
		"netPosition":    net,
		"isLongPosition": net >= 0,
	})
}

// splitList splits a comma separated query value, dropping blanks
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

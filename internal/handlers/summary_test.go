package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/models"
)

func newSummaryApp(provider data.Provider) *fiber.App {
	h := NewSummaryHandler(provider)
	app := newTestApp()
	app.Get("/kpis", h.GetKPIs)
	app.Get("/accounts", h.GetAccounts)
	app.Get("/bank-positions", h.GetBankPositions)
	app.Get("/cash-position", h.GetCashPosition)
	app.Get("/waterfall", h.GetWaterfall)
	app.Get("/forecast", h.GetForecast)
	app.Get("/debts", h.GetDueDebts)
	app.Get("/currency-positions", h.GetCurrencyPositions)
	return app
}

func TestGetKPIs_SampleData(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/kpis", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	assert.Equal(t, float64(173_100_000_000), result["totalBalance"])
	assert.Equal(t, float64(17_000_000_000), result["totalBlocked"])
	assert.Equal(t, float64(156_100_000_000), result["availableBalance"])
	assert.Equal(t, float64(158_900_000_000), result["availableLiquidity"])
	assert.Equal(t, float64(11_700_000_000), result["dueToday"])
	assert.Equal(t, float64(5_600_000_000), result["overdue"])
	assert.Equal(t, float64(83_725_000_000), result["netCurrencyPosition"])
	assert.Equal(t, true, result["isLongPosition"])
}

func TestGetKPIs_ProviderError(t *testing.T) {
	app := newSummaryApp(&MockProvider{})

	resp, err := app.Test(httptest.NewRequest("GET", "/kpis", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	result := decodeJSON(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", result["code"])
}

func TestGetAccounts(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/accounts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	accounts, ok := result["accounts"].([]any)
	require.True(t, ok)
	assert.Len(t, accounts, 4)
	assert.Equal(t, float64(158_900_000_000), result["availableLiquidity"])
}

func TestGetBankPositions(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/bank-positions", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	rows := result["rows"].([]any)
	require.Len(t, rows, 4)

	first := rows[0].(map[string]any)
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, float64(41_300_000_000), first["available"])
	assert.Equal(t, float64(3), first["transactionCount"])
}

func TestGetCashPosition_DefaultSort(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/cash-position", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	sort := result["sort"].(map[string]any)
	assert.Equal(t, "balance", sort["field"])
	assert.Equal(t, "desc", sort["direction"])

	groups := result["groups"].([]any)
	require.Len(t, groups, 1)
	group := groups[0].(map[string]any)
	assert.Equal(t, "all", group["name"])

	var ids []string
	for _, row := range group["accounts"].([]any) {
		ids = append(ids, row.(map[string]any)["id"].(string))
	}
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids)

	assert.Equal(t, []any{"all"}, result["expandedGroups"])
	assert.Empty(t, result["expandedRows"])

	totals := result["totals"].(map[string]any)
	assert.Equal(t, float64(173_100_000_000), totals["balance"])
	assert.Equal(t, float64(158_900_000_000), totals["available"])
}

func TestGetCashPosition_ToggleSameColumnFlipsDirection(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/cash-position?sort=balance&dir=desc&toggle=balance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	sort := result["sort"].(map[string]any)
	assert.Equal(t, "asc", sort["direction"])

	var ids []string
	for _, row := range result["groups"].([]any)[0].(map[string]any)["accounts"].([]any) {
		ids = append(ids, row.(map[string]any)["id"].(string))
	}
	// Reverse of the default 3, 1, 2, 4
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids)
}

func TestGetCashPosition_GroupByBankAndExpand(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/cash-position?group_by=bank&expand=1,unknown&expand_groups=all", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	assert.Equal(t, "bank", result["groupBy"])
	assert.Len(t, result["groups"].([]any), 4)
	assert.Equal(t, []any{"1"}, result["expandedRows"])
}

func TestGetCashPosition_CollapseGroups(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	tests := []struct {
		url  string
		want []any
	}{
		{"/cash-position?collapse_groups=all", []any{}},
		{"/cash-position?collapse_groups=unknown", []any{"all"}},
		{"/cash-position?group_by=bank&expand_groups=" + url.QueryEscape("بانک ملت,بانک تجارت") + "&collapse_groups=" + url.QueryEscape("بانک تجارت"), []any{"بانک ملت"}},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			result := decodeJSON(t, resp)
			assert.Equal(t, tt.want, result["expandedGroups"])
		})
	}
}

func TestGetCashPosition_InvalidParams(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	tests := []string{
		"/cash-position?sort=name",
		"/cash-position?dir=up",
		"/cash-position?group_by=currency",
		"/cash-position?toggle=foo",
	}

	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", url, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			result := decodeJSON(t, resp)
			assert.Equal(t, "BAD_REQUEST", result["code"])
		})
	}
}

func TestGetWaterfall_SampleData(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/waterfall", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	bars := result["bars"].([]any)
	require.Len(t, bars, 8)

	last := bars[7].(map[string]any)
	assert.Equal(t, float64(173_550_000_000), last["runningTotal"])
	assert.Equal(t, true, last["isTotal"])

	assert.Equal(t, float64(198_450_000_000), result["scale"])
	for _, b := range bars {
		height := b.(map[string]any)["height"].(float64)
		assert.GreaterOrEqual(t, height, float64(MinBarHeight))
		assert.LessOrEqual(t, height, float64(DefaultChartHeight))
	}

	summary := result["summary"].(map[string]any)
	assert.Equal(t, float64(25_350_000_000), summary["totalInflow"])
	assert.Equal(t, float64(24_900_000_000), summary["totalOutflow"])
}

func TestGetWaterfall_InvalidChartHeight(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	for _, v := range []string{"abc", "0", "-10"} {
		t.Run(v, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/waterfall?chart_height="+v, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetWaterfall_Malformed(t *testing.T) {
	snap := data.SampleSnapshot()
	snap.Waterfall = []models.WaterfallPoint{
		{Name: "a", Value: 10, Type: models.WaterfallPositive},
	}
	app := newSummaryApp(snapshotOf(snap))

	resp, err := app.Test(httptest.NewRequest("GET", "/waterfall", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetForecast(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/forecast", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	assert.Len(t, result["points"].([]any), 7)
	assert.Equal(t, float64(3), result["lastActualIndex"])
	assert.Equal(t, "1402/09/13", result["lastActualDate"])
}

func TestGetDueDebts(t *testing.T) {
	app := newSummaryApp(data.NewSampleProvider())

	resp, err := app.Test(httptest.NewRequest("GET", "/debts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	assert.Len(t, result["debts"].([]any), 4)
	assert.Equal(t, float64(11_700_000_000), result["dueToday"])
	assert.Equal(t, float64(5_600_000_000), result["overdue"])
}

func TestGetCurrencyPositions_ShortNet(t *testing.T) {
	snap := data.SampleSnapshot()
	snap.CurrencyPositions = snap.CurrencyPositions[1:2]
	app := newSummaryApp(snapshotOf(snap))

	resp, err := app.Test(httptest.NewRequest("GET", "/currency-positions", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeJSON(t, resp)
	assert.Equal(t, float64(-11_250_000_000), result["netPosition"])
	assert.Equal(t, false, result["isLongPosition"])
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
}

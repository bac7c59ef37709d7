package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestLogger(logger.NewWithWriter(&buf)))
	app.Get("/ping", func(c fiber.Ctx) error {
		// The request-scoped logger is available to handlers
		log := logger.FromContext(c.Context())
		log.Info().Msg("inside handler")
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	requestID := resp.Header.Get(fiber.HeaderXRequestID)
	assert.NotEmpty(t, requestID)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var handlerLine, accessLine map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &handlerLine))
	require.NoError(t, json.Unmarshal(lines[1], &accessLine))

	assert.Equal(t, requestID, handlerLine["request_id"])
	assert.Equal(t, "inside handler", handlerLine["message"])

	assert.Equal(t, requestID, accessLine["request_id"])
	assert.Equal(t, "GET", accessLine["method"])
	assert.Equal(t, "/ping", accessLine["path"])
	assert.Equal(t, float64(200), accessLine["status"])
	assert.Equal(t, "info", accessLine["level"])
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestLogger(logger.NewWithWriter(&buf)))
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestRequestLogger_ErrorLevels(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  float64
	}{
		{"client error", utils.NewNotFoundError("Account"), "warn", 404},
		{"server error", fiber.ErrInternalServerError, "error", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
			app.Use(RequestLogger(logger.NewWithWriter(&buf)))
			app.Get("/fail", func(c fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, int(tt.wantCode), resp.StatusCode)

			var line map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.wantCode, line["status"])
		})
	}
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS([]string{"http://localhost:5000"}))
	app.Get("/api/kpis", func(c fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("OPTIONS", "/api/kpis", nil)
	req.Header.Set("Origin", "http://localhost:5000")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5000", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("OPTIONS", "/api/kpis", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

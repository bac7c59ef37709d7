package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/ashmitsharp/treasury-api/internal/models"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

// MockProvider is a data.Provider backed by a function
type MockProvider struct {
	SnapshotFunc func(ctx context.Context) (*models.Snapshot, error)
}

func (m *MockProvider) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}
	return nil, errors.New("snapshot unavailable")
}

func snapshotOf(snap models.Snapshot) *MockProvider {
	return &MockProvider{
		SnapshotFunc: func(ctx context.Context) (*models.Snapshot, error) {
			return &snap, nil
		},
	}
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

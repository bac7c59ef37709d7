package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRateSource counts fetches and returns increasing rates
type fakeRateSource struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeRateSource) FetchRate(ctx context.Context) (ExchangeRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return ExchangeRate{}, f.err
	}
	f.calls++
	return ExchangeRate{Rate: int64(DefaultUSDRate + f.calls), Currency: USDPair}, nil
}

func (f *fakeRateSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestMockRateSource_FetchRate(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	src := NewMockRateSource(DefaultUSDRate, DefaultRateSpread)
	src.randN = func(n int64) int64 {
		assert.Equal(t, int64(DefaultRateSpread), n)
		return 1234
	}
	src.now = func() time.Time { return fixed }

	rate, err := src.FetchRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(686_234), rate.Rate)
	assert.Equal(t, "USD/IRR", rate.Currency)
	assert.Equal(t, fixed, rate.LastUpdated)
}

func TestMockRateSource_Range(t *testing.T) {
	src := NewMockRateSource(DefaultUSDRate, DefaultRateSpread)

	for i := 0; i < 100; i++ {
		rate, err := src.FetchRate(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rate.Rate, int64(DefaultUSDRate))
		assert.Less(t, rate.Rate, int64(DefaultUSDRate+DefaultRateSpread))
	}
}

func TestMockRateSource_ZeroSpreadAndCancelledContext(t *testing.T) {
	src := NewMockRateSource(500, 0)
	rate, err := src.FetchRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(500), rate.Rate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.FetchRate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExchangeRateService_CachesWithinTTL(t *testing.T) {
	src := &fakeRateSource{}
	svc := NewExchangeRateService(src, time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	first, err := svc.GetRate(context.Background(), false)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	second, err := svc.GetRate(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.Calls())

	now = now.Add(time.Minute)
	third, err := svc.GetRate(context.Background(), false)
	require.NoError(t, err)
	assert.NotEqual(t, first.Rate, third.Rate)
	assert.Equal(t, 2, src.Calls())
}

func TestExchangeRateService_ForceRefresh(t *testing.T) {
	src := &fakeRateSource{}
	svc := NewExchangeRateService(src, time.Hour)

	_, err := svc.GetRate(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.GetRate(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, src.Calls())
}

func TestExchangeRateService_ZeroTTLDisablesCache(t *testing.T) {
	src := &fakeRateSource{}
	svc := NewExchangeRateService(src, 0)

	for i := 0; i < 3; i++ {
		_, err := svc.GetRate(context.Background(), false)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.Calls())
}

func TestExchangeRateService_Error(t *testing.T) {
	src := &fakeRateSource{err: errors.New("provider down")}
	svc := NewExchangeRateService(src, time.Minute)

	_, err := svc.GetRate(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch exchange rate")
	assert.ErrorIs(t, err, src.err)
}

func TestExchangeRateService_Concurrent(t *testing.T) {
	src := &fakeRateSource{}
	svc := NewExchangeRateService(src, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetRate(context.Background(), false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, src.Calls())
}

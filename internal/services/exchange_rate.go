package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultUSDRate is the mock USD/IRR base quote
	DefaultUSDRate = 685000
	// DefaultRateSpread is the width of the random band added to the base quote
	DefaultRateSpread = 10000
	// USDPair is the currency pair quoted by the mock source
	USDPair = "USD/IRR"
)

// ExchangeRate is a single quote
type ExchangeRate struct {
	Rate        int64     `json:"rate"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// RateSource produces exchange rate quotes
type RateSource interface {
	FetchRate(ctx context.Context) (ExchangeRate, error)
}

// MockRateSource quotes base plus a random amount in [0, spread)
type MockRateSource struct {
	base   int64
	spread int64
	randN  func(n int64) int64
	now    func() time.Time
}

// NewMockRateSource creates a mock USD/IRR source
func NewMockRateSource(base, spread int64) *MockRateSource {
	return &MockRateSource{
		base:   base,
		spread: spread,
		randN:  rand.Int64N,
		now:    time.Now,
	}
}

// FetchRate returns a new random quote
func (m *MockRateSource) FetchRate(ctx context.Context) (ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return ExchangeRate{}, err
	}

	rate := m.base
	if m.spread > 0 {
		rate += m.randN(m.spread)
	}
	return ExchangeRate{
		Rate:        rate,
		Currency:    USDPair,
		LastUpdated: m.now().UTC(),
	}, nil
}

// ExchangeRateService caches quotes from a source for a fixed TTL
type ExchangeRateService struct {
	source     RateSource
	cacheMutex sync.RWMutex
	cacheTTL   time.Duration
	cached     *ExchangeRate
	lastLoaded time.Time
	now        func() time.Time
}

// NewExchangeRateService creates a service; a zero ttl disables caching
func NewExchangeRateService(source RateSource, ttl time.Duration) *ExchangeRateService {
	return &ExchangeRateService{
		source:   source,
		cacheTTL: ttl,
		now:      time.Now,
	}
}

// GetRate returns the cached quote while it is fresh, otherwise fetches a new one
func (s *ExchangeRateService) GetRate(ctx context.Context, forceRefresh bool) (ExchangeRate, error) {
	if !forceRefresh {
		s.cacheMutex.RLock()
		if s.cached != nil && s.now().Sub(s.lastLoaded) < s.cacheTTL {
			rate := *s.cached
			s.cacheMutex.RUnlock()
			return rate, nil
		}
		s.cacheMutex.RUnlock()
	}

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if !forceRefresh && s.cached != nil && s.now().Sub(s.lastLoaded) < s.cacheTTL {
		return *s.cached, nil
	}

	rate, err := s.source.FetchRate(ctx)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}

	s.cached = &rate
	s.lastLoaded = s.now()
	return rate, nil
}

package data

import (
	"context"
	"slices"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// Provider supplies immutable snapshots of the treasury data
type Provider interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// StaticProvider serves a fixed snapshot loaded at startup
type StaticProvider struct {
	snapshot models.Snapshot
}

// NewStaticProvider creates a provider over snap. The snapshot is copied, so later
// changes to snap are not visible to readers.
func NewStaticProvider(snap models.Snapshot) *StaticProvider {
	return &StaticProvider{snapshot: cloneSnapshot(snap)}
}

// NewSampleProvider creates a provider over the built-in sample data
func NewSampleProvider() *StaticProvider {
	return NewStaticProvider(SampleSnapshot())
}

// Snapshot returns a copy of the stored snapshot
func (p *StaticProvider) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := cloneSnapshot(p.snapshot)
	return &snap, nil
}

func cloneSnapshot(s models.Snapshot) models.Snapshot {
	forecast := make([]models.ForecastPoint, len(s.Forecast))
	for i, p := range s.Forecast {
		if p.Range != nil {
			r := *p.Range
			p.Range = &r
		}
		forecast[i] = p
	}

	return models.Snapshot{
		Accounts:          nonNil(slices.Clone(s.Accounts)),
		Transactions:      nonNil(slices.Clone(s.Transactions)),
		Forecast:          forecast,
		Waterfall:         nonNil(slices.Clone(s.Waterfall)),
		DueDebts:          nonNil(slices.Clone(s.DueDebts)),
		CurrencyPositions: nonNil(slices.Clone(s.CurrencyPositions)),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

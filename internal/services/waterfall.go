package services

import (
	"errors"
	"fmt"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// ErrMalformedWaterfall is returned for series that are not start, movements..., end
var ErrMalformedWaterfall = errors.New("malformed waterfall series")

// WaterfallBar is a chart-ready waterfall entry
type WaterfallBar struct {
	Name         string               `json:"name"`
	Type         models.WaterfallType `json:"type"`
	Delta        int64                `json:"delta"`        // Displayed bar value, never negative for movements
	RunningTotal int64                `json:"runningTotal"` // Total after applying this entry
	IsTotal      bool                 `json:"isTotal"`      // start and end bars
}

// ValidateWaterfall checks that points hold exactly one start at index 0, exactly one end
// at the last index and only positive/negative movements between them.
// An empty series is valid.
func ValidateWaterfall(points []models.WaterfallPoint) error {
	if len(points) == 0 {
		return nil
	}
	if len(points) < 2 {
		return fmt.Errorf("%w: need at least a start and an end entry", ErrMalformedWaterfall)
	}

	last := len(points) - 1
	for i, p := range points {
		switch p.Type {
		case models.WaterfallStart:
			if i != 0 {
				return fmt.Errorf("%w: start entry %q at position %d", ErrMalformedWaterfall, p.Name, i)
			}
		case models.WaterfallEnd:
			if i != last {
				return fmt.Errorf("%w: end entry %q at position %d", ErrMalformedWaterfall, p.Name, i)
			}
		case models.WaterfallPositive, models.WaterfallNegative:
			if i == 0 || i == last {
				return fmt.Errorf("%w: movement entry %q at position %d", ErrMalformedWaterfall, p.Name, i)
			}
		default:
			return fmt.Errorf("%w: unknown entry type %q", ErrMalformedWaterfall, p.Type)
		}
	}
	return nil
}

// BuildWaterfall converts points into bars carrying running totals.
// The end bar reports the accumulated total, not its own stored value.
func BuildWaterfall(points []models.WaterfallPoint) ([]WaterfallBar, error) {
	if err := ValidateWaterfall(points); err != nil {
		return nil, err
	}

	bars := make([]WaterfallBar, 0, len(points))
	var running int64
	for _, p := range points {
		bar := WaterfallBar{Name: p.Name, Type: p.Type}
		switch p.Type {
		case models.WaterfallStart:
			running = p.Value
			bar.Delta = p.Value
			bar.IsTotal = true
		case models.WaterfallEnd:
			bar.Delta = running
			bar.IsTotal = true
		case models.WaterfallPositive:
			running += p.Value
			bar.Delta = p.Value
		case models.WaterfallNegative:
			running += p.Value
			bar.Delta = abs(p.Value)
		}
		bar.RunningTotal = running
		bars = append(bars, bar)
	}
	return bars, nil
}

// WaterfallSummary is the footer of the waterfall chart
type WaterfallSummary struct {
	Opening       int64 `json:"opening"`
	TotalInflow   int64 `json:"totalInflow"`
	TotalOutflow  int64 `json:"totalOutflow"`
	Closing       int64 `json:"closing"`
	NetMovement   int64 `json:"netMovement"`
	MovementCount int   `json:"movementCount"`
}

// SummarizeWaterfall totals the bars built by BuildWaterfall
func SummarizeWaterfall(bars []WaterfallBar) WaterfallSummary {
	var s WaterfallSummary
	if len(bars) == 0 {
		return s
	}

	s.Opening = bars[0].Delta
	s.Closing = bars[len(bars)-1].RunningTotal
	for _, b := range bars {
		switch b.Type {
		case models.WaterfallPositive:
			s.TotalInflow += b.Delta
			s.MovementCount++
		case models.WaterfallNegative:
			s.TotalOutflow += b.Delta
			s.MovementCount++
		}
	}
	s.NetMovement = s.TotalInflow - s.TotalOutflow
	return s
}

// WaterfallScale returns the largest delta or running total of the series.
// Series whose maximum is not positive scale against 1.
func WaterfallScale(bars []WaterfallBar) int64 {
	var peak int64
	for _, b := range bars {
		if b.Delta > peak {
			peak = b.Delta
		}
		if b.RunningTotal > peak {
			peak = b.RunningTotal
		}
	}
	if peak <= 0 {
		return 1
	}
	return peak
}

// BarHeight scales delta to a pixel height within chartHeight, never below minHeight
func BarHeight(delta, scale int64, chartHeight, minHeight float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	h := float64(delta) / float64(scale) * chartHeight
	if h < minHeight {
		return minHeight
	}
	return h
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

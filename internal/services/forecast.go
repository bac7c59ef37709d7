package services

import "github.com/ashmitsharp/treasury-api/internal/models"

// ForecastView is the forecast series with the position where projections begin
type ForecastView struct {
	Points          []models.ForecastPoint `json:"points"`
	LastActualIndex int                    `json:"lastActualIndex"`
	LastActualDate  string                 `json:"lastActualDate"`
}

// ForecastBoundary returns the index of the last Actual point before the first Forecast
// point, or -1 when there is no such point
func ForecastBoundary(points []models.ForecastPoint) int {
	for i, p := range points {
		if p.Type == models.ForecastForecast {
			return i - 1
		}
	}
	return -1
}

// BuildForecastView attaches the actual/forecast boundary to the series
func BuildForecastView(points []models.ForecastPoint) ForecastView {
	view := ForecastView{
		Points:          points,
		LastActualIndex: ForecastBoundary(points),
	}
	if view.Points == nil {
		view.Points = []models.ForecastPoint{}
	}
	if view.LastActualIndex >= 0 {
		view.LastActualDate = points[view.LastActualIndex].Date
	}
	return view
}

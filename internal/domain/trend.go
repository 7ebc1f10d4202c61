package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// TrendPoint is one observation on a location's temperature series.
type TrendPoint struct {
	ID          int64
	Date        string
	Temperature float64
	Wind        float64
}

// LocationTrend is the temperature series for one location plus summary stats.
type LocationTrend struct {
	Location        string
	Points          []TrendPoint
	MinTemperature  float64
	MaxTemperature  float64
	MeanTemperature float64
	MeanWind        float64
}

// BuildTrends groups records by location (sorted by name) and orders each
// series by date, then id. Dates sort lexically, which is chronological for
// yyyy-MM-dd.
func BuildTrends(records []ClimateRecord) []LocationTrend {
	byLocation := make(map[string][]TrendPoint)
	for _, r := range records {
		byLocation[r.location] = append(byLocation[r.location], TrendPoint{
			ID:          r.id,
			Date:        r.date,
			Temperature: r.temperature,
			Wind:        r.wind,
		})
	}

	trends := make([]LocationTrend, 0, len(byLocation))
	for loc, points := range byLocation {
		slices.SortFunc(points, func(a, b TrendPoint) int {
			return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.ID, b.ID))
		})
		trends = append(trends, summarize(loc, points))
	}
	slices.SortFunc(trends, func(a, b LocationTrend) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return trends
}

func summarize(location string, points []TrendPoint) LocationTrend {
	t := LocationTrend{
		Location:       location,
		Points:         points,
		MinTemperature: points[0].Temperature,
		MaxTemperature: points[0].Temperature,
	}
	var tempSum, windSum float64
	for _, p := range points {
		t.MinTemperature = min(t.MinTemperature, p.Temperature)
		t.MaxTemperature = max(t.MaxTemperature, p.Temperature)
		tempSum += p.Temperature
		windSum += p.Wind
	}
	n := float64(len(points))
	t.MeanTemperature = tempSum / n
	t.MeanWind = windSum / n
	return t
}

// Polyline returns SVG polyline points for the series inside a width x height
// box. The vertical axis spans the full accepted temperature range so charts
// of different locations share a scale.
func (t LocationTrend) Polyline(width, height int) string {
	if len(t.Points) == 0 {
		return ""
	}
	w, h := float64(width), float64(height)
	span := MaxTemperature - MinTemperature

	coords := make([]string, len(t.Points))
	for i, p := range t.Points {
		x := w / 2
		if len(t.Points) > 1 {
			x = w * float64(i) / float64(len(t.Points)-1)
		}
		y := h - (p.Temperature-MinTemperature)/span*h
		coords[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}
	return strings.Join(coords, " ")
}

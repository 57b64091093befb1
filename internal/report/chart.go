package report

import (
	"time"

	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/model"
)

const (
	// ChartWindow is how many trailing records the trend chart shows.
	ChartWindow = 30
	// RangeWindow is the high/low lookback of the detail panel.
	RangeWindow = 30
)

// ChartPoint is one x position of the trend chart. Volume is scaled down by
// ten to share an axis with volatility.
type ChartPoint struct {
	Date       string  `json:"date"`
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
	Volatility float64 `json:"volatility"`
	Volume     float64 `json:"volume"`
	Selected   bool    `json:"selected"`
}

// Chart builds points for the last ChartWindow records of the full series,
// flagging the one matching selected.
func Chart(series []model.MarketRecord, selected *time.Time) []ChartPoint {
	if len(series) > ChartWindow {
		series = series[len(series)-ChartWindow:]
	}
	var selKey string
	if selected != nil {
		selKey = calendar.Key(*selected)
	}

	points := make([]ChartPoint, 0, len(series))
	for _, r := range series {
		label := r.Date
		if t, err := calendar.ParseKey(r.Date, time.UTC); err == nil {
			label = t.Format("Jan 2")
		}
		points = append(points, ChartPoint{
			Date:       r.Date,
			Label:      label,
			Price:      r.Close,
			Volatility: r.Volatility,
			Volume:     r.Volume / 10,
			Selected:   r.Date == selKey,
		})
	}
	return points
}

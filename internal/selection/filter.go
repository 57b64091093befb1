package selection

import (
	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/model"
)

// Filter keeps records inside a complete date range (inclusive, either
// order) whose volatility lies within the filter bounds. Bounds with
// min > max match nothing.
func Filter(series []model.MarketRecord, r model.DateRange, f model.FilterOptions) []model.MarketRecord {
	var from, to string
	if r.Complete() {
		from, to = calendar.Key(*r.Start), calendar.Key(*r.End)
		if to < from {
			from, to = to, from
		}
	}

	out := make([]model.MarketRecord, 0, len(series))
	for _, rec := range series {
		if from != "" && (rec.Date < from || rec.Date > to) {
			continue
		}
		if rec.Volatility < f.MinVolatility || rec.Volatility > f.MaxVolatility {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Filtered applies the state's range and filters to series.
func (s *State) Filtered(series []model.MarketRecord) []model.MarketRecord {
	return Filter(series, s.Range, s.Filters)
}

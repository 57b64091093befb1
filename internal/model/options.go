package model

import "time"

// ViewMode is the calendar granularity.
type ViewMode string

const (
	ViewDaily   ViewMode = "daily"
	ViewWeekly  ViewMode = "weekly"
	ViewMonthly ViewMode = "monthly"
)

// DataLayer selects the metric used to colour calendar cells.
type DataLayer string

const (
	LayerVolatility  DataLayer = "volatility"
	LayerLiquidity   DataLayer = "liquidity"
	LayerPerformance DataLayer = "performance"
	LayerAll         DataLayer = "all"
)

// ColorTheme selects the volatility colour table.
type ColorTheme string

const (
	ThemeDefault    ColorTheme = "default"
	ThemeContrast   ColorTheme = "contrast"
	ThemeColorblind ColorTheme = "colorblind"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewDaily, ViewWeekly, ViewMonthly:
		return true
	}
	return false
}

// Valid reports whether l is a known data layer.
func (l DataLayer) Valid() bool {
	switch l {
	case LayerVolatility, LayerLiquidity, LayerPerformance, LayerAll:
		return true
	}
	return false
}

// Valid reports whether t is a known colour theme.
func (t ColorTheme) Valid() bool {
	switch t {
	case ThemeDefault, ThemeContrast, ThemeColorblind:
		return true
	}
	return false
}

// DateRange is an inclusive pair of days. Either end may be nil while a
// range is being picked.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both endpoints are set.
func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}

// FilterOptions narrows the series shown in list views.
type FilterOptions struct {
	Instrument    string  `json:"instrument" yaml:"instrument"`
	Timeframe     string  `json:"timeframe" yaml:"timeframe"`
	Currency      string  `json:"currency" yaml:"currency"`
	MinVolatility float64 `json:"minVolatility" yaml:"min_volatility"`
	MaxVolatility float64 `json:"maxVolatility" yaml:"max_volatility"`
}

// Instruments lists the instruments offered by the controls.
var Instruments = []string{"BTC/USD", "ETH/USD", "SOL/USD", "ADA/USD"}

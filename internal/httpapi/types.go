// Package httpapi serves the explorer session as a JSON API for a browser
// front end.
package httpapi

import (
	"SeasonalityExplorer/internal/export"
	"SeasonalityExplorer/internal/model"
	"SeasonalityExplorer/internal/report"
	"SeasonalityExplorer/internal/selection"
)

// StateJSON is the selection state as the front end sees it.
type StateJSON struct {
	SelectedDate *string             `json:"selectedDate"`
	DateRange    export.Range        `json:"dateRange"`
	RangeMode    bool                `json:"rangeMode"`
	Phase        selection.Phase     `json:"phase"`
	Month        string              `json:"month"` // yyyy-MM
	ViewMode     model.ViewMode      `json:"viewMode"`
	DataLayer    model.DataLayer     `json:"dataLayer"`
	ColorTheme   model.ColorTheme    `json:"colorTheme"`
	Filters      model.FilterOptions `json:"filters"`
	GeneratedAt  string              `json:"generatedAt"`
}

// CellJSON is one calendar cell with its resolved colours.
type CellJSON struct {
	Date           string              `json:"date"`
	Day            int                 `json:"day"`
	Record         *model.MarketRecord `json:"record"`
	IsToday        bool                `json:"isToday"`
	IsCurrentMonth bool                `json:"isCurrentMonth"`
	IsSelected     bool                `json:"isSelected"`
	IsInRange      bool                `json:"isInRange"`
	Background     string              `json:"background"`
	Foreground     string              `json:"foreground,omitempty"`
	Trend          string              `json:"trend,omitempty"`
	Tooltip        []string            `json:"tooltip,omitempty"`
}

// CalendarResponse is a full month grid.
type CalendarResponse struct {
	Month string     `json:"month"`
	Cells []CellJSON `json:"cells"`
}

// DayResponse backs the detail panel.
type DayResponse struct {
	Date    string              `json:"date"`
	Record  model.MarketRecord  `json:"record"`
	Detail  report.Detail       `json:"detail"`
	Tooltip report.Tooltip      `json:"tooltip"`
	Chart   []report.ChartPoint `json:"chart"`
}

// SeriesResponse is the filtered series.
type SeriesResponse struct {
	Count   int                  `json:"count"`
	Records []model.MarketRecord `json:"records"`
}

// SummaryResponse holds weekly or monthly aggregates.
type SummaryResponse struct {
	Mode    model.ViewMode  `json:"mode"`
	Periods []model.Summary `json:"periods"`
}

// OptionsRequest updates any subset of the display options.
type OptionsRequest struct {
	ViewMode   *model.ViewMode      `json:"viewMode"`
	DataLayer  *model.DataLayer     `json:"dataLayer"`
	ColorTheme *model.ColorTheme    `json:"colorTheme"`
	Filters    *model.FilterOptions `json:"filters"`
}

type clickRequest struct {
	Date string `json:"date"`
}

type keyRequest struct {
	Key selection.Key `json:"key"`
}

type monthRequest struct {
	Move string `json:"move"`
}

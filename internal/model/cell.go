package model

import "time"

// CalendarCell is one day of a rendered month grid. Record is nil when the
// day falls outside the generated window.
type CalendarCell struct {
	Date           time.Time
	Record         *MarketRecord
	IsToday        bool
	IsCurrentMonth bool
	IsSelected     bool
	IsInRange      bool
}

// Summary aggregates a run of daily records into one weekly or monthly bar.
type Summary struct {
	Period      string  `json:"period"` // first day of the period, yyyy-MM-dd
	Days        int     `json:"days"`
	Open        float64 `json:"open"`
	Close       float64 `json:"close"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Volume      float64 `json:"volume"`
	Volatility  float64 `json:"volatility"`
	RSI         float64 `json:"rsi"`
	Performance float64 `json:"performance"`
}

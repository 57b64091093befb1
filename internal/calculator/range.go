package calculator

import (
	"errors"
	"math"

	"SeasonalityExplorer/internal/model"
)

// RecentRange scans the most recent `days` records and returns the high and low.
func RecentRange(series []model.MarketRecord, days int) (high, low float64, err error) {
	if len(series) == 0 {
		return 0, 0, errors.New("no records provided")
	}
	if days <= 0 {
		return 0, 0, errors.New("days must be positive")
	}
	n := len(series)
	start := n - days
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if series[i].High > high {
			high = series[i].High
		}
		if series[i].Low < low {
			low = series[i].Low
		}
	}
	return high, low, nil
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
func RangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

package encoder

// VolatilityLevel is the detail panel wording, which uses wider bands than
// the cell colours.
func VolatilityLevel(v float64) string {
	switch {
	case v > 50:
		return "High"
	case v > 25:
		return "Medium"
	default:
		return "Low"
	}
}

// RSISignal classifies an RSI reading.
func RSISignal(rsi float64) string {
	switch {
	case rsi > 70:
		return "Overbought"
	case rsi < 30:
		return "Oversold"
	default:
		return "Neutral"
	}
}

// VolumeLevel classifies volume in millions.
func VolumeLevel(volume float64) string {
	switch {
	case volume > 1000:
		return "very high"
	case volume > 500:
		return "moderate"
	default:
		return "low"
	}
}

// Trend is the direction icon drawn on performance cells.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// TrendOf ignores moves within ±1%.
func TrendOf(performance float64) Trend {
	switch {
	case performance > 1:
		return TrendUp
	case performance < -1:
		return TrendDown
	default:
		return TrendFlat
	}
}

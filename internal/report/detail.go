// Package report turns a day's record into the text shown in the detail
// panel, the cell tooltip and the 30-day chart.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"SeasonalityExplorer/internal/calculator"
	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/currency"
	"SeasonalityExplorer/internal/encoder"
	"SeasonalityExplorer/internal/model"
)

// OHLC holds formatted prices.
type OHLC struct {
	Open  string `json:"open"`
	High  string `json:"high"`
	Low   string `json:"low"`
	Close string `json:"close"`
}

// Detail is the formatted content of the detail panel.
type Detail struct {
	Heading         string   `json:"heading"`
	Price           string   `json:"price"`
	Change          string   `json:"change"`
	Volatility      string   `json:"volatility"`
	VolatilityLevel string   `json:"volatilityLevel"`
	OHLC            OHLC     `json:"ohlc"`
	RSI             string   `json:"rsi"`
	RSISignal       string   `json:"rsiSignal"`
	MovingAverage   string   `json:"movingAverage"`
	Volume          string   `json:"volume"`
	Range           string   `json:"range,omitempty"`
	Analysis        []string `json:"analysis"`
}

// Millions renders a figure already expressed in millions, e.g. "$1,234M".
func Millions(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v))) + "M"
}

// BuildDetail formats rec for the panel of day, pricing in the currency code.
func BuildDetail(day time.Time, rec model.MarketRecord, code string) Detail {
	price := func(v float64) string { return currency.Format(v, code) }
	return Detail{
		Heading:         day.Format("Monday, January 2, 2006"),
		Price:           price(rec.Close),
		Change:          currency.FormatPercentage(rec.Performance),
		Volatility:      fmt.Sprintf("%.1f%%", rec.Volatility),
		VolatilityLevel: encoder.VolatilityLevel(rec.Volatility),
		OHLC: OHLC{
			Open:  price(rec.Open),
			High:  price(rec.High),
			Low:   price(rec.Low),
			Close: price(rec.Close),
		},
		RSI:           fmt.Sprintf("%.1f", rec.RSI),
		RSISignal:     encoder.RSISignal(rec.RSI),
		MovingAverage: price(rec.MovingAverage),
		Volume:        Millions(rec.Volume),
		Analysis:      Analysis(rec),
	}
}

// Analysis returns the three market analysis sentences.
func Analysis(rec model.MarketRecord) []string {
	var icon, move string
	switch {
	case rec.Performance > 0:
		icon, move = "📈", "increased"
	case rec.Performance < 0:
		icon, move = "📉", "decreased"
	default:
		icon, move = "➡️", "remained stable"
	}
	priceLine := fmt.Sprintf("%s Price %s by %.2f%%", icon, move, math.Abs(rec.Performance))

	volIcon := "😴"
	switch encoder.VolatilityLevel(rec.Volatility) {
	case "High":
		volIcon = "⚡"
	case "Medium":
		volIcon = "📊"
	}
	volWord := map[string]string{"High": "high", "Medium": "moderate", "Low": "low"}[encoder.VolatilityLevel(rec.Volatility)]
	volLine := fmt.Sprintf("%s Volatility is %s at %.1f%%", volIcon, volWord, rec.Volatility)

	level := encoder.VolumeLevel(rec.Volume)
	volumeIcon := map[string]string{"very high": "🚀", "moderate": "📈", "low": "💤"}[level]
	volumeLine := fmt.Sprintf("%s Trading volume is %s", volumeIcon, level)

	return []string{priceLine, volLine, volumeLine}
}

// RangeLine places rec's close within the high/low of the RangeWindow
// records ending at rec. It returns "" when rec is not in series.
func RangeLine(series []model.MarketRecord, rec model.MarketRecord, code string) string {
	end := -1
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].Date == rec.Date {
			end = i
			break
		}
	}
	if end < 0 {
		return ""
	}
	high, low, err := calculator.RecentRange(series[:end+1], RangeWindow)
	if err != nil {
		return ""
	}
	pos, err := calculator.RangePosition(rec.Close, high, low)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s - %s (close at %.0f%%)", currency.Format(low, code), currency.Format(high, code), pos*100)
}

// Text renders the panel as plain text.
func (d Detail) Text() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Market Data | %s\n\n", d.Heading))

	b.WriteString(fmt.Sprintf("Price: %s (%s)\n", d.Price, d.Change))
	b.WriteString(fmt.Sprintf("Volatility: %s (%s)\n\n", d.Volatility, d.VolatilityLevel))

	b.WriteString("OHLC Data:\n")
	b.WriteString(fmt.Sprintf("  Open: %s | High: %s\n", d.OHLC.Open, d.OHLC.High))
	b.WriteString(fmt.Sprintf("  Low: %s | Close: %s\n\n", d.OHLC.Low, d.OHLC.Close))

	b.WriteString("Technical Indicators:\n")
	b.WriteString(fmt.Sprintf("  RSI: %s (%s)\n", d.RSI, d.RSISignal))
	b.WriteString(fmt.Sprintf("  Moving Average: %s\n", d.MovingAverage))
	b.WriteString(fmt.Sprintf("  Volume: %s\n", d.Volume))
	if d.Range != "" {
		b.WriteString(fmt.Sprintf("  30-Day Range: %s\n", d.Range))
	}
	b.WriteString("\n")

	b.WriteString("Market Analysis:\n")
	for _, line := range d.Analysis {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// Tooltip is the hover summary of a cell.
type Tooltip struct {
	Heading     string `json:"heading"`
	Volatility  string `json:"volatility"`
	Performance string `json:"performance"`
	Volume      string `json:"volume"`
	Price       string `json:"price"`
}

// BuildTooltip formats rec for hovering. The volume line shows liquidity.
func BuildTooltip(rec model.MarketRecord, code string) Tooltip {
	heading := rec.Date
	if t, err := calendar.ParseKey(rec.Date, time.UTC); err == nil {
		heading = t.Format("Jan 2, 2006")
	}
	return Tooltip{
		Heading:     heading,
		Volatility:  fmt.Sprintf("Volatility: %.1f%%", rec.Volatility),
		Performance: "Performance: " + currency.FormatPercentage(rec.Performance),
		Volume:      "Volume: " + Millions(rec.Liquidity),
		Price:       "Price: " + currency.Format(rec.Close, code),
	}
}

func (t Tooltip) Lines() []string {
	return []string{t.Heading, t.Volatility, t.Performance, t.Volume, t.Price}
}

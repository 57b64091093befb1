package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeasonalityExplorer/internal/model"
)

var sample = model.MarketRecord{
	Date:          "2024-01-02",
	Volatility:    62.34,
	Liquidity:     1234.4,
	Performance:   -1.256,
	Open:          51000,
	Close:         50359.4,
	High:          51200,
	Low:           50100,
	Volume:        1523.7,
	RSI:           72.06,
	MovingAverage: 50890,
}

func TestBuildDetail(t *testing.T) {
	d := BuildDetail(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), sample, "USD")

	assert.Equal(t, "Tuesday, January 2, 2024", d.Heading)
	assert.Equal(t, "$50,359", d.Price)
	assert.Equal(t, "-1.26%", d.Change)
	assert.Equal(t, "62.3%", d.Volatility)
	assert.Equal(t, "High", d.VolatilityLevel)
	assert.Equal(t, OHLC{Open: "$51,000", High: "$51,200", Low: "$50,100", Close: "$50,359"}, d.OHLC)
	assert.Equal(t, "72.1", d.RSI)
	assert.Equal(t, "Overbought", d.RSISignal)
	assert.Equal(t, "$50,890", d.MovingAverage)
	assert.Equal(t, "$1,524M", d.Volume)
	assert.Equal(t, []string{
		"📉 Price decreased by 1.26%",
		"⚡ Volatility is high at 62.3%",
		"🚀 Trading volume is very high",
	}, d.Analysis)

	text := d.Text()
	assert.Contains(t, text, "Market Data | Tuesday, January 2, 2024")
	assert.Contains(t, text, "RSI: 72.1 (Overbought)")
}

func TestBuildDetail_INR(t *testing.T) {
	rec := sample
	rec.Close = 1234567.89
	d := BuildDetail(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), rec, "INR")
	assert.Equal(t, "₹12,34,568", d.Price)
}

func TestAnalysis_Bands(t *testing.T) {
	flat := model.MarketRecord{Performance: 0, Volatility: 30, Volume: 600}
	assert.Equal(t, []string{
		"➡️ Price remained stable by 0.00%",
		"📊 Volatility is moderate at 30.0%",
		"📈 Trading volume is moderate",
	}, Analysis(flat))

	calm := model.MarketRecord{Performance: 0.5, Volatility: 10, Volume: 200}
	lines := Analysis(calm)
	assert.Equal(t, "📈 Price increased by 0.50%", lines[0])
	assert.Equal(t, "😴 Volatility is low at 10.0%", lines[1])
	assert.Equal(t, "💤 Trading volume is low", lines[2])
}

func TestBuildTooltip(t *testing.T) {
	tip := BuildTooltip(sample, "GBP")
	assert.Equal(t, []string{
		"Jan 2, 2024",
		"Volatility: 62.3%",
		"Performance: -1.26%",
		"Volume: $1,234M",
		"Price: £50,359",
	}, tip.Lines())
}

func TestChart(t *testing.T) {
	var series []model.MarketRecord
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 45; i++ {
		d := start.AddDate(0, 0, i)
		series = append(series, model.MarketRecord{Date: d.Format("2006-01-02"), Close: float64(i), Volume: 100})
	}
	sel := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	points := Chart(series, &sel)
	require.Len(t, points, ChartWindow)
	assert.Equal(t, "2024-01-16", points[0].Date)
	assert.Equal(t, "Jan 16", points[0].Label)
	assert.Equal(t, "Feb 14", points[len(points)-1].Label)
	assert.Equal(t, 10.0, points[0].Volume)

	marked := 0
	for _, p := range points {
		if p.Selected {
			marked++
			assert.Equal(t, "2024-02-10", p.Date)
		}
	}
	assert.Equal(t, 1, marked)

	short := Chart(series[:3], nil)
	assert.Len(t, short, 3)
	for _, p := range short {
		assert.False(t, p.Selected, fmt.Sprint(p))
	}
}

func TestRangeLine(t *testing.T) {
	series := []model.MarketRecord{
		{Date: "2024-01-01", High: 110, Low: 90, Close: 100},
		{Date: "2024-01-02", High: 120, Low: 95, Close: 115},
		{Date: "2024-01-03", High: 200, Low: 150, Close: 180},
	}
	assert.Equal(t, "$90 - $120 (close at 83%)", RangeLine(series, series[1], "USD"))
	assert.Empty(t, RangeLine(series, model.MarketRecord{Date: "2023-12-31"}, "USD"))

	d := BuildDetail(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series[1], "USD")
	assert.NotContains(t, d.Text(), "30-Day Range")
	d.Range = RangeLine(series, series[1], "USD")
	assert.Contains(t, d.Text(), "30-Day Range: $90 - $120")
}

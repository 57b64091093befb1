// Package generator synthesises the daily market series shown by the explorer.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"SeasonalityExplorer/internal/calculator"
	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/model"
)

const (
	DefaultDays      = 365
	DefaultBasePrice = 50000.0

	seasonalAmplitude = 0.1
	trendSlope        = 0.2
	noiseBand         = 0.05
	volatilityNoise   = 20.0
	wickJitter        = 0.02

	rsiPeriod = 14
	maPeriod  = 20
)

// IndicatorMode selects how RSI and moving average are filled in.
type IndicatorMode string

const (
	// IndicatorsPlaceholder draws RSI in [30,70] and jitters the MA around
	// the open, independent of price history.
	IndicatorsPlaceholder IndicatorMode = "placeholder"
	// IndicatorsComputed derives Wilder RSI(14) and SMA(20) from the closes
	// generated so far.
	IndicatorsComputed IndicatorMode = "computed"
)

// Valid reports whether m is a known mode.
func (m IndicatorMode) Valid() bool {
	return m == IndicatorsPlaceholder || m == IndicatorsComputed
}

// Options configures a Generator. Zero values pick the defaults.
type Options struct {
	BasePrice  float64
	Indicators IndicatorMode
	Seed       int64 // 0 seeds from the clock
	Now        func() time.Time
}

// Generator produces random-walk series. It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	opts Options
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.BasePrice <= 0 {
		opts.BasePrice = DefaultBasePrice
	}
	if !opts.Indicators.Valid() {
		opts.Indicators = IndicatorsPlaceholder
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), opts: opts}
}

func (g *Generator) Name() string {
	return fmt.Sprintf("synthetic/%s", g.opts.Indicators)
}

// Generate returns days+1 records, oldest first, covering [today-days, today].
// Negative days are treated as zero.
func (g *Generator) Generate(days int) []model.MarketRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	if days < 0 {
		days = 0
	}
	today := calendar.Day(g.opts.Now())
	window := float64(days)
	if window == 0 {
		window = 1
	}

	series := make([]model.MarketRecord, 0, days+1)
	closes := make([]float64, 0, days+1)
	currentPrice := g.opts.BasePrice

	for i := days; i >= 0; i-- {
		pos := float64(days-i) / window

		seasonality := math.Sin(pos*2*math.Pi) * seasonalAmplitude
		trend := pos * trendSlope
		noise := (g.rng.Float64() - 0.5) * noiseBand
		change := seasonality + trend + noise
		newPrice := currentPrice * (1 + change)

		volatility := math.Min(100, math.Abs(change)*100+g.rng.Float64()*volatilityNoise)
		volume := (g.rng.Float64()*1000 + 500) * (1 + volatility/100)
		high := math.Max(currentPrice, newPrice) * (1 + g.rng.Float64()*wickJitter)
		low := math.Min(currentPrice, newPrice) * (1 - g.rng.Float64()*wickJitter)

		rec := model.MarketRecord{
			Date:        calendar.Key(calendar.AddDays(today, -i)),
			Volatility:  volatility,
			Liquidity:   volume,
			Performance: change * 100,
			Open:        currentPrice,
			Close:       newPrice,
			High:        high,
			Low:         low,
			Volume:      volume,
		}

		closes = append(closes, newPrice)
		switch g.opts.Indicators {
		case IndicatorsComputed:
			rec.RSI, _ = calculator.CalculateRSI(closes, rsiPeriod)
			rec.MovingAverage = calculator.TrailingSMA(closes, maPeriod)
		default:
			rec.RSI = 30 + g.rng.Float64()*40
			rec.MovingAverage = currentPrice * (1 + (g.rng.Float64()-0.5)*0.01)
		}

		series = append(series, rec)
		currentPrice = newPrice
	}
	return series
}

package calendar

import (
	"time"

	"SeasonalityExplorer/internal/model"
)

// Aggregate rolls a daily series up to the granularity of mode. Weekly
// periods start on Sunday. Records with unparsable dates are skipped.
func Aggregate(series []model.MarketRecord, mode model.ViewMode) []model.Summary {
	var out []model.Summary
	var cur model.Summary
	var growth, volSum, rsiSum float64
	started := false

	flush := func() {
		if !started {
			return
		}
		cur.Volatility = volSum / float64(cur.Days)
		cur.RSI = rsiSum / float64(cur.Days)
		cur.Performance = (growth - 1) * 100
		out = append(out, cur)
	}

	for _, r := range series {
		day, err := time.Parse(KeyLayout, r.Date)
		if err != nil {
			continue
		}
		period := periodKey(day, mode)

		if !started || period != cur.Period {
			flush()
			cur = model.Summary{Period: period, Open: r.Open, High: r.High, Low: r.Low}
			growth, volSum, rsiSum = 1, 0, 0
			started = true
		}
		if r.High > cur.High {
			cur.High = r.High
		}
		if r.Low < cur.Low {
			cur.Low = r.Low
		}
		cur.Close = r.Close
		cur.Volume += r.Volume
		cur.Days++
		volSum += r.Volatility
		rsiSum += r.RSI
		growth *= 1 + r.Performance/100
	}
	flush()
	return out
}

func periodKey(day time.Time, mode model.ViewMode) string {
	switch mode {
	case model.ViewWeekly:
		return Key(StartOfWeek(day))
	case model.ViewMonthly:
		return Key(StartOfMonth(day))
	default:
		return Key(day)
	}
}

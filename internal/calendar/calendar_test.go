package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeasonalityExplorer/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rangeMarks struct {
	selected   time.Time
	start, end time.Time
}

func (r rangeMarks) IsSelected(day time.Time) bool { return SameDay(day, r.selected) }
func (r rangeMarks) InRange(day time.Time) bool    { return Between(day, r.start, r.end) }

func TestWeekBoundaries(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	d := date(2024, 1, 10)
	assert.Equal(t, date(2024, 1, 7), StartOfWeek(d))
	assert.Equal(t, date(2024, 1, 13), EndOfWeek(d))
	assert.Equal(t, date(2024, 1, 7), StartOfWeek(date(2024, 1, 7)))
	assert.Equal(t, date(2024, 1, 13), EndOfWeek(date(2024, 1, 13)))
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), EndOfMonth(date(2024, 2, 10)))
	assert.Equal(t, date(2023, 2, 28), EndOfMonth(date(2023, 2, 1)))
	assert.Equal(t, date(2024, 12, 1), AddMonths(date(2025, 1, 31), -1))
	assert.Equal(t, date(2025, 2, 1), AddMonths(date(2025, 1, 31), 1))
}

func TestBetween_EitherOrder(t *testing.T) {
	a, b := date(2024, 1, 10), date(2024, 1, 5)
	assert.True(t, Between(date(2024, 1, 7), a, b))
	assert.True(t, Between(date(2024, 1, 5), a, b))
	assert.True(t, Between(date(2024, 1, 10), a, b))
	assert.False(t, Between(date(2024, 1, 4), a, b))
	assert.False(t, Between(date(2024, 1, 11), a, b))
}

func TestBuildGrid_FullWeeks(t *testing.T) {
	now := date(2024, 1, 15)
	for y := 2023; y <= 2026; y++ {
		for m := time.January; m <= time.December; m++ {
			cells := BuildGrid(date(y, m, 12), nil, nil, now)
			require.Zero(t, len(cells)%7, "%d-%02d has %d cells", y, m, len(cells))
			assert.Equal(t, time.Sunday, cells[0].Date.Weekday())
			assert.Equal(t, time.Saturday, cells[len(cells)-1].Date.Weekday())

			inMonth := 0
			for i, c := range cells {
				if i > 0 {
					assert.Equal(t, AddDays(cells[i-1].Date, 1), c.Date)
				}
				if c.IsCurrentMonth {
					inMonth++
				}
			}
			assert.Equal(t, EndOfMonth(date(y, m, 1)).Day(), inMonth)
		}
	}
}

func TestBuildGrid_KnownShapes(t *testing.T) {
	// February 2015 starts on Sunday and has 28 days.
	assert.Len(t, BuildGrid(date(2015, 2, 1), nil, nil, time.Time{}), 28)
	// January 2024: Sun 2023-12-31 through Sat 2024-02-03.
	cells := BuildGrid(date(2024, 1, 1), nil, nil, time.Time{})
	require.Len(t, cells, 35)
	assert.Equal(t, date(2023, 12, 31), cells[0].Date)
	assert.False(t, cells[0].IsCurrentMonth)
	assert.Equal(t, date(2024, 2, 3), cells[34].Date)
	// June 2024 spans six weeks.
	assert.Len(t, BuildGrid(date(2024, 6, 1), nil, nil, time.Time{}), 42)
}

func TestBuildGrid_TodayFlag(t *testing.T) {
	now := date(2024, 1, 31).Add(15 * time.Hour)

	count := func(cells []model.CalendarCell) int {
		n := 0
		for _, c := range cells {
			if c.IsToday {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(BuildGrid(date(2024, 1, 1), nil, nil, now)))
	// 2024-01-31 is also in February's leading week.
	assert.Equal(t, 1, count(BuildGrid(date(2024, 2, 1), nil, nil, now)))
	assert.Equal(t, 0, count(BuildGrid(date(2024, 3, 1), nil, nil, now)))
}

func TestBuildGrid_RecordsAndMarks(t *testing.T) {
	series := []model.MarketRecord{
		{Date: "2024-01-05", Volatility: 10},
		{Date: "2024-01-06", Volatility: 20},
	}
	ix := NewIndex(series)
	marks := rangeMarks{selected: date(2024, 1, 6), start: date(2024, 1, 10), end: date(2024, 1, 5)}

	cells := BuildGrid(date(2024, 1, 1), ix, marks, time.Time{})
	var withRecord, inRange, selected int
	for _, c := range cells {
		if c.Record != nil {
			withRecord++
			assert.Equal(t, Key(c.Date), c.Record.Date)
		}
		if c.IsInRange {
			inRange++
		}
		if c.IsSelected {
			selected++
			assert.Equal(t, "2024-01-06", Key(c.Date))
		}
	}
	assert.Equal(t, 2, withRecord)
	assert.Equal(t, 6, inRange)
	assert.Equal(t, 1, selected)
	assert.Equal(t, 10.0, series[0].Volatility, "input series is not mutated")
}

func TestIndex_Lookup(t *testing.T) {
	ix := NewIndex([]model.MarketRecord{{Date: "2024-03-01", Close: 42}})
	rec, ok := ix.Lookup(time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 42.0, rec.Close)

	_, ok = ix.Get("2024-03-02")
	assert.False(t, ok)

	var empty *Index
	_, ok = empty.Get("2024-03-01")
	assert.False(t, ok)
	assert.Zero(t, empty.Len())
}

func TestAggregate_Weekly(t *testing.T) {
	// 2024-01-06 is Saturday, 2024-01-07 Sunday.
	series := []model.MarketRecord{
		{Date: "2024-01-05", Open: 100, Close: 110, High: 112, Low: 99, Volume: 10, Volatility: 20, RSI: 40, Performance: 10},
		{Date: "2024-01-06", Open: 110, Close: 121, High: 125, Low: 108, Volume: 20, Volatility: 40, RSI: 60, Performance: 10},
		{Date: "2024-01-07", Open: 121, Close: 100, High: 121, Low: 95, Volume: 5, Volatility: 50, RSI: 30, Performance: -17},
	}
	weeks := Aggregate(series, model.ViewWeekly)
	require.Len(t, weeks, 2)

	w := weeks[0]
	assert.Equal(t, "2023-12-31", w.Period)
	assert.Equal(t, 2, w.Days)
	assert.Equal(t, 100.0, w.Open)
	assert.Equal(t, 121.0, w.Close)
	assert.Equal(t, 125.0, w.High)
	assert.Equal(t, 99.0, w.Low)
	assert.Equal(t, 30.0, w.Volume)
	assert.InDelta(t, 30.0, w.Volatility, 1e-9)
	assert.InDelta(t, 50.0, w.RSI, 1e-9)
	assert.InDelta(t, 21.0, w.Performance, 1e-9)

	assert.Equal(t, "2024-01-07", weeks[1].Period)
}

func TestAggregate_MonthlyAndDaily(t *testing.T) {
	series := []model.MarketRecord{
		{Date: "2024-01-30"}, {Date: "2024-01-31"}, {Date: "2024-02-01"},
	}
	months := Aggregate(series, model.ViewMonthly)
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01-01", months[0].Period)
	assert.Equal(t, 2, months[0].Days)
	assert.Equal(t, "2024-02-01", months[1].Period)

	assert.Len(t, Aggregate(series, model.ViewDaily), 3)
	assert.Empty(t, Aggregate(nil, model.ViewWeekly))
}

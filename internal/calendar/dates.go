// Package calendar derives month grids and period summaries from a daily
// market series. Weeks start on Sunday.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the ISO date layout used to key records.
const KeyLayout = "2006-01-02"

// MonthLayout identifies a month, e.g. "2024-01".
const MonthLayout = "2006-01"

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Key formats the calendar day of t as yyyy-MM-dd.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a yyyy-MM-dd key as midnight in loc.
func ParseKey(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(KeyLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a yyyy-MM month as its first day in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return t, nil
}

// AddDays shifts a day by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(Day(t).AddDate(0, 0, n))
}

// AddMonths returns the first day of the month n months away from t.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(StartOfMonth(t).AddDate(0, n, 0))
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return AddDays(StartOfMonth(t).AddDate(0, 1, 0), -1)
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return AddDays(t, -int(t.Weekday()))
}

// EndOfWeek returns the Saturday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return AddDays(t, int(time.Saturday-t.Weekday()))
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// Before compares calendar days, ignoring time of day and location.
func Before(a, b time.Time) bool {
	return Key(a) < Key(b)
}

// Between reports whether day lies within [a, b] inclusive, in either order.
func Between(day, a, b time.Time) bool {
	if Before(b, a) {
		a, b = b, a
	}
	k := Key(day)
	return k >= Key(a) && k <= Key(b)
}

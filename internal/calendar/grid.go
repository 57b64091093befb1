package calendar

import (
	"time"

	"SeasonalityExplorer/internal/model"
)

// Marker answers the selection questions a grid needs per day.
type Marker interface {
	IsSelected(day time.Time) bool
	InRange(day time.Time) bool
}

// BuildGrid lays out the month containing month as complete Sunday-first
// weeks, in ascending date order. Days without a record get a nil Record.
// marks may be nil.
func BuildGrid(month time.Time, ix *Index, marks Marker, now time.Time) []model.CalendarCell {
	monthStart := StartOfMonth(month)
	gridStart := StartOfWeek(monthStart)
	gridEnd := EndOfWeek(EndOfMonth(monthStart))

	cells := make([]model.CalendarCell, 0, 42)
	for day := gridStart; !Before(gridEnd, day); day = AddDays(day, 1) {
		cell := model.CalendarCell{
			Date:           day,
			IsToday:        SameDay(day, now),
			IsCurrentMonth: SameMonth(day, monthStart),
		}
		if rec, ok := ix.Lookup(day); ok {
			cell.Record = &rec
		}
		if marks != nil {
			cell.IsSelected = marks.IsSelected(day)
			cell.IsInRange = marks.InRange(day)
		}
		cells = append(cells, cell)
	}
	return cells
}

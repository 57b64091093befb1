// Package selection holds the interactive calendar state and the pure
// derivations that read it.
package selection

import (
	"errors"
	"time"

	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/model"
)

// ErrUnknownKey is returned by HandleKey for keys without a binding.
var ErrUnknownKey = errors.New("unknown key")

// Key is a keyboard key name as reported by the front end.
type Key string

const (
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeyEscape Key = "Escape"
)

// Phase of the range-picking protocol.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePickingEnd Phase = "picking-end"
)

// State is the single active selection. It is not safe for concurrent use;
// the owning session serialises access.
type State struct {
	Selected  *time.Time
	Range     model.DateRange
	RangeMode bool
	Month     time.Time // first day of the visible month
	ViewMode  model.ViewMode
	Layer     model.DataLayer
	Theme     model.ColorTheme
	Filters   model.FilterOptions
}

// DefaultFilters matches the controls' initial values.
func DefaultFilters() model.FilterOptions {
	return model.FilterOptions{
		Instrument:    "BTC/USD",
		Timeframe:     "1D",
		Currency:      "USD",
		MinVolatility: 0,
		MaxVolatility: 100,
	}
}

// New returns a state showing the month of now with nothing selected.
func New(now time.Time) *State {
	return &State{
		Month:    calendar.StartOfMonth(now),
		ViewMode: model.ViewDaily,
		Layer:    model.LayerVolatility,
		Theme:    model.ThemeDefault,
		Filters:  DefaultFilters(),
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Selected = copyDay(s.Selected)
	c.Range = model.DateRange{Start: copyDay(s.Range.Start), End: copyDay(s.Range.End)}
	return &c
}

func copyDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}

func dayPtr(t time.Time) *time.Time {
	d := calendar.Day(t)
	return &d
}

// Select overwrites the single-day selection.
func (s *State) Select(day time.Time) {
	s.Selected = dayPtr(day)
}

// ClearSelection closes the detail view.
func (s *State) ClearSelection() {
	s.Selected = nil
}

// ToggleRangeMode flips range picking and returns the new mode. Leaving range
// mode keeps whatever part of the range was already set.
func (s *State) ToggleRangeMode() bool {
	s.RangeMode = !s.RangeMode
	return s.RangeMode
}

// Phase reports where range picking stands.
func (s *State) Phase() Phase {
	if s.RangeMode && s.Range.Start != nil && s.Range.End == nil {
		return PhasePickingEnd
	}
	return PhaseIdle
}

// Click applies a calendar click. Outside range mode it selects the day. In
// range mode the first click sets the start, the second sets the end and
// leaves range mode, and a click on a completed range starts a new one.
func (s *State) Click(day time.Time) {
	if !s.RangeMode {
		s.Select(day)
		return
	}
	switch {
	case s.Range.Start == nil, s.Range.End != nil:
		s.Range = model.DateRange{Start: dayPtr(day)}
	default:
		s.SetRange(*s.Range.Start, day)
		s.RangeMode = false
	}
}

// SetRange stores both endpoints ordered so that start <= end.
func (s *State) SetRange(start, end time.Time) {
	if calendar.Before(end, start) {
		start, end = end, start
	}
	s.Range = model.DateRange{Start: dayPtr(start), End: dayPtr(end)}
}

// ClearRange drops both endpoints.
func (s *State) ClearRange() {
	s.Range = model.DateRange{}
}

func (s *State) IsSelected(day time.Time) bool {
	return s.Selected != nil && calendar.SameDay(day, *s.Selected)
}

// InRange is true only for a complete range, inclusive at both ends.
func (s *State) InRange(day time.Time) bool {
	if !s.Range.Complete() {
		return false
	}
	return calendar.Between(day, *s.Range.Start, *s.Range.End)
}

// HandleKey moves the selection by ±1 or ±7 days, or back to today on
// Escape. The visible month follows an arrow move. Nothing happens while no
// day is selected.
func (s *State) HandleKey(k Key, now time.Time) error {
	var shift int
	switch k {
	case KeyLeft:
		shift = -1
	case KeyRight:
		shift = 1
	case KeyUp:
		shift = -7
	case KeyDown:
		shift = 7
	case KeyEscape:
	default:
		return ErrUnknownKey
	}
	if s.Selected == nil {
		return nil
	}
	if k == KeyEscape {
		s.Select(now)
		return nil
	}
	next := calendar.AddDays(*s.Selected, shift)
	s.Selected = &next
	if !calendar.SameMonth(next, s.Month) {
		s.Month = calendar.StartOfMonth(next)
	}
	return nil
}

func (s *State) PrevMonth() { s.Month = calendar.AddMonths(s.Month, -1) }
func (s *State) NextMonth() { s.Month = calendar.AddMonths(s.Month, 1) }

// ShowToday jumps the visible month to now without touching the selection.
func (s *State) ShowToday(now time.Time) { s.Month = calendar.StartOfMonth(now) }

// SelectedRecord looks up the record of the selected day.
func (s *State) SelectedRecord(ix *calendar.Index) (model.MarketRecord, bool) {
	if s.Selected == nil {
		return model.MarketRecord{}, false
	}
	return ix.Lookup(*s.Selected)
}

// Grid builds the visible month against this state.
func (s *State) Grid(ix *calendar.Index, now time.Time) []model.CalendarCell {
	return calendar.BuildGrid(s.Month, ix, s, now)
}

// Package session owns the series and the selection state of one explorer
// and serialises every access to them.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/model"
	"SeasonalityExplorer/internal/recorder"
	"SeasonalityExplorer/internal/selection"
)

// ErrNotReady is returned by data reads before the first series is loaded.
var ErrNotReady = errors.New("series not loaded")

// Source produces a series ending today.
type Source interface {
	Name() string
	Generate(days int) []model.MarketRecord
}

// Options configures a Session. Zero values pick the defaults.
type Options struct {
	Days     int
	Location *time.Location
	Now      func() time.Time
	Recorder recorder.Recorder
	Logger   *logrus.Logger
}

// Session is the single owner of the loaded series and selection state.
type Session struct {
	mu          sync.RWMutex
	id          string
	src         Source
	days        int
	loc         *time.Location
	now         func() time.Time
	rec         recorder.Recorder
	log         *logrus.Logger
	index       *calendar.Index
	state       *selection.State
	generatedAt time.Time
	ready       chan struct{}
	readyOnce   sync.Once
}

// New creates a session around state. Nothing is generated until Load.
func New(src Source, state *selection.State, opts Options) *Session {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Session{
		id:    uuid.NewString(),
		src:   src,
		days:  max(opts.Days, 0),
		loc:   opts.Location,
		now:   opts.Now,
		rec:   opts.Recorder,
		log:   opts.Logger,
		state: state,
		ready: make(chan struct{}),
	}
}

func (s *Session) ID() string { return s.id }

// Now is the session clock in its display location.
func (s *Session) Now() time.Time { return s.now().In(s.loc) }

func (s *Session) Location() *time.Location { return s.loc }

// Load waits delay, then produces the first series. The pending load is
// dropped if ctx ends first. Loading an already loaded session is a no-op.
func (s *Session) Load(ctx context.Context, delay time.Duration) error {
	if s.Ready() {
		return nil
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.log.Debug("series load abandoned")
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.Ready() {
		return nil
	}
	s.Regenerate("initial")
	return nil
}

// Ready reports whether a series is loaded.
func (s *Session) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until the first series is loaded or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Regenerate produces a fresh series and swaps it in. Readers holding the
// old index keep a consistent view; the selection state is untouched.
func (s *Session) Regenerate(reason string) {
	start := time.Now()
	series := s.src.Generate(s.days)
	ix := calendar.NewIndex(series)

	s.mu.Lock()
	s.index = ix
	s.generatedAt = s.Now()
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })

	run := &recorder.GenerationRun{
		SessionID: s.id,
		Source:    s.src.Name(),
		Reason:    reason,
		Days:      s.days,
		Records:   len(series),
		Duration:  time.Since(start),
	}
	if len(series) > 0 {
		run.FirstDate = series[0].Date
		run.LastDate = series[len(series)-1].Date
	}
	s.log.WithFields(logrus.Fields{
		"reason":  reason,
		"records": run.Records,
		"last":    run.LastDate,
	}).Info("series regenerated")

	if err := s.rec.RecordGeneration(run); err != nil {
		s.log.WithError(err).Warn("record generation failed")
	}
}

// GeneratedAt is when the current series was produced.
func (s *Session) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

// Index returns the current series index.
func (s *Session) Index() (*calendar.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, ErrNotReady
	}
	return s.index, nil
}

// State returns a copy of the selection state.
func (s *Session) State() *selection.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update mutates the selection state under the session lock.
func (s *Session) Update(fn func(st *selection.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View reads state and series together. It fails with ErrNotReady before
// the first load.
func (s *Session) View(fn func(st *selection.State, ix *calendar.Index) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return ErrNotReady
	}
	return fn(s.state, s.index)
}

// Calendar builds the grid for month, or the visible month when month is
// zero.
func (s *Session) Calendar(month time.Time) ([]model.CalendarCell, time.Time, error) {
	var (
		cells []model.CalendarCell
		shown time.Time
	)
	err := s.View(func(st *selection.State, ix *calendar.Index) error {
		shown = st.Month
		if !month.IsZero() {
			shown = calendar.StartOfMonth(month)
		}
		cells = calendar.BuildGrid(shown, ix, st, s.Now())
		return nil
	})
	return cells, shown, err
}

// Record looks up the record of day.
func (s *Session) Record(day time.Time) (model.MarketRecord, bool, error) {
	ix, err := s.Index()
	if err != nil {
		return model.MarketRecord{}, false, err
	}
	rec, ok := ix.Lookup(day)
	return rec, ok, nil
}

// Filtered applies the current range and filters to the series.
func (s *Session) Filtered() ([]model.MarketRecord, error) {
	var out []model.MarketRecord
	err := s.View(func(st *selection.State, ix *calendar.Index) error {
		out = st.Filtered(ix.Series())
		return nil
	})
	return out, err
}

// Summaries aggregates the full series for a view mode.
func (s *Session) Summaries(mode model.ViewMode) ([]model.Summary, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown view mode %q", mode)
	}
	ix, err := s.Index()
	if err != nil {
		return nil, err
	}
	return calendar.Aggregate(ix.Series(), mode), nil
}

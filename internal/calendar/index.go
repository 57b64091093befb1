package calendar

import (
	"time"

	"SeasonalityExplorer/internal/model"
)

// Index maps date keys to records of one immutable series.
type Index struct {
	series []model.MarketRecord
	byDate map[string]int
}

// NewIndex builds the lookup table. The series is retained, not copied, and
// must not be mutated afterwards.
func NewIndex(series []model.MarketRecord) *Index {
	ix := &Index{
		series: series,
		byDate: make(map[string]int, len(series)),
	}
	for i, r := range series {
		ix.byDate[r.Date] = i
	}
	return ix
}

// Get returns the record stored under a yyyy-MM-dd key.
func (ix *Index) Get(key string) (model.MarketRecord, bool) {
	if ix == nil {
		return model.MarketRecord{}, false
	}
	i, ok := ix.byDate[key]
	if !ok {
		return model.MarketRecord{}, false
	}
	return ix.series[i], true
}

// Lookup returns the record for the calendar day of t.
func (ix *Index) Lookup(t time.Time) (model.MarketRecord, bool) {
	return ix.Get(Key(t))
}

func (ix *Index) Series() []model.MarketRecord {
	if ix == nil {
		return nil
	}
	return ix.series
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.series)
}

package recorder

import "time"

// GenerationRun describes one production of the synthetic series.
type GenerationRun struct {
	SessionID string
	Source    string // generator name, e.g. "synthetic/placeholder"
	Reason    string // "initial" or "scheduled"
	Days      int
	Records   int
	FirstDate string
	LastDate  string
	Duration  time.Duration
}

// ExportEvent records a written or downloaded export document.
type ExportEvent struct {
	SessionID    string
	Filename     string
	Path         string // empty for HTTP downloads
	SelectedDate string
	RangeStart   string
	RangeEnd     string
	ViewMode     string
	DataLayer    string
}

// Recorder journals what the explorer did. Nothing is read back from it.
type Recorder interface {
	RecordGeneration(run *GenerationRun) error
	RecordExport(evt *ExportEvent) error
	Close() error
}

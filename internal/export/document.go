// Package export serialises the selection state into the shareable JSON
// document and dumps series to Parquet.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/model"
	"SeasonalityExplorer/internal/selection"
)

// ErrInvalidDocument is returned when a document cannot be applied.
var ErrInvalidDocument = errors.New("invalid export document")

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Document is the exported analysis. Absent dates are JSON null.
type Document struct {
	SelectedDate *string             `json:"selectedDate"`
	DateRange    Range               `json:"dateRange"`
	Filters      model.FilterOptions `json:"filters"`
	ViewMode     model.ViewMode      `json:"viewMode"`
	DataLayer    model.DataLayer     `json:"dataLayer"`
	Timestamp    string              `json:"timestamp"`
}

type Range struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

func keyPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	k := calendar.Key(*t)
	return &k
}

// Build snapshots s at now.
func Build(s *selection.State, now time.Time) Document {
	return Document{
		SelectedDate: keyPtr(s.Selected),
		DateRange:    Range{Start: keyPtr(s.Range.Start), End: keyPtr(s.Range.End)},
		Filters:      s.Filters,
		ViewMode:     s.ViewMode,
		DataLayer:    s.Layer,
		Timestamp:    now.UTC().Format(timestampLayout),
	}
}

// Filename is the download name for a document exported at now.
func Filename(now time.Time) string {
	return "market-analysis-" + calendar.Key(now) + ".json"
}

// Encode renders doc as two-space indented JSON.
func Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses and validates a document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks enum values and date keys.
func (d Document) Validate() error {
	if !d.ViewMode.Valid() {
		return fmt.Errorf("%w: view mode %q", ErrInvalidDocument, d.ViewMode)
	}
	if !d.DataLayer.Valid() {
		return fmt.Errorf("%w: data layer %q", ErrInvalidDocument, d.DataLayer)
	}
	for _, k := range []*string{d.SelectedDate, d.DateRange.Start, d.DateRange.End} {
		if k == nil {
			continue
		}
		if _, err := calendar.ParseKey(*k, time.UTC); err != nil {
			return fmt.Errorf("%w: date %q", ErrInvalidDocument, *k)
		}
	}
	if d.DateRange.Start == nil && d.DateRange.End != nil {
		return fmt.Errorf("%w: range end without start", ErrInvalidDocument)
	}
	return nil
}

// Apply restores the document onto s. Dates are read in loc. The visible
// month, theme and range mode are left alone.
func Apply(doc Document, s *selection.State, loc *time.Location) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	parse := func(k *string) *time.Time {
		if k == nil {
			return nil
		}
		t, _ := calendar.ParseKey(*k, loc)
		return &t
	}

	s.Selected = parse(doc.SelectedDate)
	start, end := parse(doc.DateRange.Start), parse(doc.DateRange.End)
	if start != nil && end != nil {
		s.SetRange(*start, *end)
	} else {
		s.Range = model.DateRange{Start: start}
	}
	s.Filters = doc.Filters
	s.ViewMode = doc.ViewMode
	s.Layer = doc.DataLayer
	return nil
}

// WriteFile stores doc under dir using Filename(now) and returns the path.
func WriteFile(dir string, doc Document, now time.Time) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// ReadFile loads and validates a document from disk.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Decode(data)
}

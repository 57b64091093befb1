package session

import (
	"SeasonalityExplorer/internal/export"
	"SeasonalityExplorer/internal/recorder"
	"SeasonalityExplorer/internal/selection"
)

// ExportDocument snapshots the state for download and journals it.
func (s *Session) ExportDocument() (export.Document, string) {
	now := s.Now()
	doc := export.Build(s.State(), now)
	name := export.Filename(now)
	s.journalExport(doc, name, "")
	return doc, name
}

// ExportFile writes the document under dir and returns its path.
func (s *Session) ExportFile(dir string) (string, error) {
	now := s.Now()
	doc := export.Build(s.State(), now)
	path, err := export.WriteFile(dir, doc, now)
	if err != nil {
		return "", err
	}
	s.journalExport(doc, export.Filename(now), path)
	s.log.WithField("path", path).Info("analysis exported")
	return path, nil
}

// Import applies a document onto the state.
func (s *Session) Import(doc export.Document) error {
	return s.Update(func(st *selection.State) error {
		return export.Apply(doc, st, s.loc)
	})
}

func (s *Session) journalExport(doc export.Document, name, path string) {
	evt := &recorder.ExportEvent{
		SessionID:    s.id,
		Filename:     name,
		Path:         path,
		SelectedDate: deref(doc.SelectedDate),
		RangeStart:   deref(doc.DateRange.Start),
		RangeEnd:     deref(doc.DateRange.End),
		ViewMode:     string(doc.ViewMode),
		DataLayer:    string(doc.DataLayer),
	}
	if err := s.rec.RecordExport(evt); err != nil {
		s.log.WithError(err).Warn("record export failed")
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordGeneration(_ *GenerationRun) error { return nil }
func (n *NoopRecorder) RecordExport(_ *ExportEvent) error       { return nil }
func (n *NoopRecorder) Close() error                            { return nil }

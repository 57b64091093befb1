package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS generation_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT,
			source      TEXT,
			reason      TEXT,
			days        INTEGER,
			records     INTEGER,
			first_date  TEXT,
			last_date   TEXT,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generation_ts ON generation_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS export_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			session_id    TEXT,
			filename      TEXT,
			path          TEXT,
			selected_date TEXT,
			range_start   TEXT,
			range_end     TEXT,
			view_mode     TEXT,
			data_layer    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_export_ts ON export_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordGeneration(run *GenerationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO generation_runs
		(timestamp, session_id, source, reason, days, records, first_date, last_date, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.SessionID, run.Source, run.Reason,
		run.Days, run.Records, run.FirstDate, run.LastDate,
		run.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordExport(evt *ExportEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO export_events
		(timestamp, session_id, filename, path, selected_date, range_start, range_end, view_mode, data_layer)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Filename, evt.Path,
		evt.SelectedDate, evt.RangeStart, evt.RangeEnd,
		evt.ViewMode, evt.DataLayer,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

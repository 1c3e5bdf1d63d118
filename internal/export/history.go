package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver
)

// DefaultRecentLimit caps the history entries shown in the UI
const DefaultRecentLimit = 50

const historySchema = `
CREATE TABLE IF NOT EXISTS report_exports (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id     TEXT    NOT NULL,
	report_id   INTEGER NOT NULL,
	job_id      INTEGER NOT NULL,
	file_path   TEXT    NOT NULL,
	exported_at TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_exports_exported_at ON report_exports (exported_at);
`

// HistoryEntry is one recorded report export
type HistoryEntry struct {
	ID         int64
	TaskID     string
	ReportID   int
	JobID      int
	FilePath   string
	ExportedAt time.Time
}

// History is a local index of finished report exports, kept in a sqlite
// database next to the app's other state
type History struct {
	db *sql.DB
}

// OpenHistory opens (and if needed creates) the history database at path
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Record stores one finished export
func (h *History) Record(entry HistoryEntry) error {
	_, err := h.db.Exec(
		`INSERT INTO report_exports (task_id, report_id, job_id, file_path, exported_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.TaskID,
		entry.ReportID,
		entry.JobID,
		entry.FilePath,
		entry.ExportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := h.db.Query(
		`SELECT id, task_id, report_id, job_id, file_path, exported_at
		 FROM report_exports
		 ORDER BY exported_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var exportedAt string
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.ReportID, &entry.JobID, &entry.FilePath, &exportedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.ExportedAt, err = time.Parse(time.RFC3339Nano, exportedAt)
		if err != nil {
			return nil, fmt.Errorf("parse export timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database
func (h *History) Close() error {
	return h.db.Close()
}

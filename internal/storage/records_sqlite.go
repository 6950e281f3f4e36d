package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const recordsFileName = "red_tomato.db"

// FocusRecord is one completed focus phase.
type FocusRecord struct {
	ID                 int64
	Task               string
	DurationSeconds    int64
	CompletedAt        time.Time
	CompletedPomodoros int
}

// RecordStore persists the focus history in SQLite.
type RecordStore struct {
	db *sql.DB
}

// RecordsPath returns the history database location for the app.
func RecordsPath(appName string) (string, error) {
	dir, err := appConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, recordsFileName), nil
}

// OpenRecordStore opens the history database, creating the parent
// directory and the schema when missing.
func OpenRecordStore(path string) (*RecordStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open records database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS focus_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task TEXT NOT NULL,
		duration_secs INTEGER NOT NULL,
		completed_at TEXT NOT NULL,
		completed_pomodoros INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init records schema: %w", err)
	}

	return &RecordStore{db: db}, nil
}

// Close releases the database handle.
func (store *RecordStore) Close() error {
	return store.db.Close()
}

// InsertFocusRecord appends one completed focus phase.
func (store *RecordStore) InsertFocusRecord(task string, durationSeconds int64, completedAt time.Time, completedPomodoros int) error {
	_, err := store.db.Exec(
		`INSERT INTO focus_records (task, duration_secs, completed_at, completed_pomodoros)
		 VALUES (?, ?, ?, ?)`,
		task, durationSeconds, completedAt.UTC().Format(time.RFC3339), completedPomodoros,
	)
	if err != nil {
		return fmt.Errorf("insert focus record: %w", err)
	}
	return nil
}

// RecentRecords returns records newest-first. A limit of 0 returns all.
func (store *RecordStore) RecentRecords(limit int) ([]FocusRecord, error) {
	query := `SELECT id, task, duration_secs, completed_at, completed_pomodoros
	          FROM focus_records ORDER BY completed_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query focus records: %w", err)
	}
	defer rows.Close()

	var records []FocusRecord
	for rows.Next() {
		var record FocusRecord
		var completedAt string
		if err := rows.Scan(&record.ID, &record.Task, &record.DurationSeconds, &completedAt, &record.CompletedPomodoros); err != nil {
			return nil, fmt.Errorf("scan focus record: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, completedAt)
		if err == nil {
			record.CompletedAt = parsed
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

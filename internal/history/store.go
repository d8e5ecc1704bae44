// Package history records activity completion over time in a local sqlite
// database, so adherence can be reported across scheduling runs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusPartial   Status = "partial"
)

// ParseStatus validates a status name.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCompleted, StatusSkipped, StatusPartial:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Entry is one logged activity outcome.
type Entry struct {
	ID           string    `json:"id"`
	Day          string    `json:"day"` // YYYY-MM-DD
	ActivityType string    `json:"activity_type"`
	Status       Status    `json:"status"`
	Minutes      int       `json:"minutes"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Report summarizes outcomes over a day window.
type Report struct {
	StartDay     string  `json:"start_day"`
	EndDay       string  `json:"end_day"`
	Completed    int     `json:"completed"`
	Partial      int     `json:"partial"`
	Skipped      int     `json:"skipped"`
	TotalMinutes int     `json:"total_minutes"`
	AdherencePct float64 `json:"adherence_pct"`
}

type Store struct {
	path string
	db   *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	day TEXT NOT NULL,
	activity_type TEXT NOT NULL,
	status TEXT NOT NULL,
	minutes INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_day ON entries(day);
`

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{path: path, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Log records an entry, assigning an id and timestamp when absent.
func (s *Store) Log(e Entry) (Entry, error) {
	if _, err := ParseStatus(string(e.Status)); err != nil {
		return Entry{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO entries (id, day, activity_type, status, minutes, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Day, e.ActivityType, string(e.Status), e.Minutes, e.Notes, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to log entry: %w", err)
	}

	return e, nil
}

// Entries returns all entries with startDay <= day <= endDay, ordered by
// day then insertion time.
func (s *Store) Entries(startDay, endDay string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, day, activity_type, status, minutes, notes, created_at FROM entries WHERE day >= ? AND day <= ? ORDER BY day, created_at`,
		startDay, endDay,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, createdAt string
		if err := rows.Scan(&e.ID, &e.Day, &e.ActivityType, &status, &e.Minutes, &e.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Status = Status(status)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// BuildReport summarizes the window. A partial completion counts half
// toward adherence.
func (s *Store) BuildReport(startDay, endDay string) (Report, error) {
	entries, err := s.Entries(startDay, endDay)
	if err != nil {
		return Report{}, err
	}

	report := Report{StartDay: startDay, EndDay: endDay}
	for _, e := range entries {
		switch e.Status {
		case StatusCompleted:
			report.Completed++
			report.TotalMinutes += e.Minutes
		case StatusPartial:
			report.Partial++
			report.TotalMinutes += e.Minutes
		case StatusSkipped:
			report.Skipped++
		}
	}

	total := report.Completed + report.Partial + report.Skipped
	if total > 0 {
		report.AdherencePct = (float64(report.Completed) + 0.5*float64(report.Partial)) / float64(total) * 100
	}

	return report, nil
}

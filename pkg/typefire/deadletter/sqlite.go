package deadletter

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Fixed-width RFC 3339 so lexicographic order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists undelivered events to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite dead-letter store.
// The path should be a file path (e.g., "./deadletters.db") or ":memory:"
// for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS dead_letters (
			id TEXT NOT NULL PRIMARY KEY,
			event_type TEXT NOT NULL,
			qualifiers TEXT NOT NULL,
			payload BLOB,
			fired_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_dead_letters_fired_at
		ON dead_letters(fired_at)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record implements Store.
func (s *SQLiteStore) Record(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	qualifiers, err := json.Marshal(rec.Qualifiers)
	if err != nil {
		return fmt.Errorf("encode qualifiers: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO dead_letters (id, event_type, qualifiers, payload, fired_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_type = excluded.event_type,
			qualifiers = excluded.qualifiers,
			payload = excluded.payload,
			fired_at = excluded.fired_at
	`, rec.ID, rec.EventType, string(qualifiers), rec.Payload,
		rec.FiredAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record dead letter: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT id, event_type, qualifiers, payload, fired_at
		FROM dead_letters WHERE id = ?
	`, id)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("load dead letter: %w", err)
	}
	return rec, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, event_type, qualifiers, payload, fired_at
		FROM dead_letters
		ORDER BY fired_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list dead letters: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan dead letter: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dead letters: %w", err)
	}

	return recs, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM dead_letters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dead letter: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var rec Record
	var qualifiers, firedAt string
	if err := scan(&rec.ID, &rec.EventType, &qualifiers, &rec.Payload, &firedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(qualifiers), &rec.Qualifiers); err != nil {
		return Record{}, fmt.Errorf("decode qualifiers: %w", err)
	}
	fired, err := time.Parse(timeLayout, firedAt)
	if err != nil {
		return Record{}, fmt.Errorf("decode fired_at: %w", err)
	}
	rec.FiredAt = fired
	return rec, nil
}

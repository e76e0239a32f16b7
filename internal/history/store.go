// Package history keeps a local SQLite log of past submissions and their
// outcomes.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/awwal-10/visrec-go/internal/visrec"
)

// Entry is one settled submission.
type Entry struct {
	ID         string
	Filename   string
	Matched    bool
	Title      string
	Confidence float64
	MatchType  string
	Error      string
	CreatedAt  time.Time
}

// NewEntry builds an Entry for a settled submission. Either res or
// failure may be nil/empty.
func NewEntry(filename string, res *visrec.RecognitionResult, failure string) *Entry {
	e := &Entry{
		ID:        uuid.New().String(),
		Filename:  filename,
		Error:     failure,
		CreatedAt: time.Now(),
	}
	if res != nil {
		e.Matched = res.Matched
		e.Title = res.Title
		e.Confidence = res.Confidence
		e.MatchType = string(res.MatchType)
	}
	return e
}

// Store wraps the submissions database.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		matched INTEGER NOT NULL,
		title TEXT,
		confidence REAL,
		match_type TEXT,
		error TEXT,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.conn.Exec(query)
	return err
}

// Insert records one settled submission.
func (s *Store) Insert(e *Entry) error {
	query := `
		INSERT INTO submissions (id, filename, matched, title, confidence, match_type, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.conn.Exec(query, e.ID, e.Filename, e.Matched, e.Title, e.Confidence, e.MatchType, e.Error, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, filename, matched, title, confidence, match_type, error, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.ID, &e.Filename, &e.Matched, &e.Title, &e.Confidence, &e.MatchType, &e.Error, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}

// Clear deletes all entries.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec(`DELETE FROM submissions`); err != nil {
		return fmt.Errorf("failed to clear submissions: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

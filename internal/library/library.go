// Package library keeps a named collection of positions in SQLite. Entries
// are validated FENs with a display name, addressed by UUID.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"fastchess/internal/board"
)

// ErrNotFound reports a lookup for an id the library does not hold.
var ErrNotFound = errors.New("library: position not found")

// Entry is a stored position.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FEN       string    `json:"fen"`
	CreatedAt time.Time `json:"created_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	position_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	fen TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_positions_created_at ON positions(created_at);
`

// Library handles SQLite database operations for the position collection.
type Library struct {
	db *sql.DB
}

// Open opens the database at dataSourceName and ensures the schema exists.
func Open(dataSourceName string) (*Library, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Save validates the FEN, stores it under a fresh id, and returns the entry.
func (l *Library) Save(name, fen string) (*Entry, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:        uuid.New().String(),
		Name:      name,
		FEN:       pos.ToFEN(), // store the canonical form
		CreatedAt: time.Now().UTC(),
	}

	_, err = l.db.Exec(
		`INSERT INTO positions (position_id, name, fen, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Name, entry.FEN, entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert position: %w", err)
	}
	return entry, nil
}

// Get returns the entry with the given id.
func (l *Library) Get(id string) (*Entry, error) {
	var e Entry
	err := l.db.QueryRow(
		`SELECT position_id, name, fen, created_at FROM positions WHERE position_id = ?`,
		id,
	).Scan(&e.ID, &e.Name, &e.FEN, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query position: %w", err)
	}
	return &e, nil
}

// List returns all entries, newest first.
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT position_id, name, fen, created_at FROM positions ORDER BY created_at DESC, position_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.FEN, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry with the given id.
func (l *Library) Delete(id string) error {
	res, err := l.db.Exec(`DELETE FROM positions WHERE position_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

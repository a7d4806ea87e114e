// Package store persists game snapshots in SQLite so a server restart can
// pick games back up by id.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("game not found")

// Record is enough to rebuild a game: the position it started from and the
// moves played since, plus the resulting position for quick listing.
type Record struct {
	ID        string
	StartFen  string
	Moves     []string
	Fen       string
	UpdatedAt time.Time
}

type SqliteStore struct {
	db *sql.DB
}

const _schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	start_fen  TEXT NOT NULL,
	moves      TEXT NOT NULL,
	fen        TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

func Open(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(_schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %v: %w", path, err)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Save(ctx context.Context, record Record) error {
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, start_fen, moves, fen, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_fen = excluded.start_fen,
			moves = excluded.moves,
			fen = excluded.fen,
			updated_at = excluded.updated_at`,
		record.ID, record.StartFen, strings.Join(record.Moves, " "), record.Fen, record.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save %v: %w", record.ID, err)
	}
	return nil
}

func (s *SqliteStore) Load(ctx context.Context, id string) (Record, error) {
	var moves string
	var updatedAt int64
	record := Record{ID: id}

	err := s.db.QueryRowContext(ctx,
		`SELECT start_fen, moves, fen, updated_at FROM games WHERE id = ?`, id,
	).Scan(&record.StartFen, &moves, &record.Fen, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("load %v: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("load %v: %w", id, err)
	}

	record.Moves = strings.Fields(moves)
	record.UpdatedAt = time.Unix(0, updatedAt)
	return record, nil
}

// List returns ids, most recently updated first.
func (s *SqliteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM games ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

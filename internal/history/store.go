// internal/history/store.go
//
// Round history for the process lifetime, backed by an in-memory SQLite
// database. Nothing here survives a restart: the DSN is a named in-memory
// database, used purely as a queryable log of finished rounds (who won,
// where, how long the round ran).
//
// Recording is best effort from the session layer's point of view; this
// package only reports errors, it never blocks game flow.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id     TEXT NOT NULL,
	winner_id   TEXT NOT NULL,
	winner_name TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	finished_at TEXT NOT NULL
);`

// Store records and queries finished rounds.
type Store struct {
	db *sql.DB
}

// Open creates the in-memory database and its schema.
//
// The DSN uses mode=memory with a shared cache, and the pool is pinned to a
// single connection: every database/sql connection to a plain ":memory:"
// DSN would otherwise see its own empty database.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite3", "file:queens-history?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database; all recorded rounds are discarded.
func (s *Store) Close() error { return s.db.Close() }

// RecordWin appends one finished round.
func (s *Store) RecordWin(ctx context.Context, roomID, winnerID, winnerName string, duration time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds(room_id, winner_id, winner_name, duration_ms, finished_at)
		 VALUES(?,?,?,?,?)`,
		roomID, winnerID, winnerName, duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Round is one finished round as served by the stats endpoints.
type Round struct {
	RoomID     string `json:"roomId"`
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
	DurationMs int64  `json:"durationMs"`
	FinishedAt string `json:"finishedAt"`
}

// Recent returns the most recently finished rounds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Round, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT room_id, winner_id, winner_name, duration_ms, finished_at
		 FROM rounds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var r Round
		if err := rows.Scan(&r.RoomID, &r.WinnerID, &r.WinnerName, &r.DurationMs, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayerTotal is a per-name win tally.
type PlayerTotal struct {
	PlayerName string `json:"playerName"`
	Wins       int    `json:"wins"`
}

// PlayerTotals returns win counts grouped by display name, most wins first.
func (s *Store) PlayerTotals(ctx context.Context) ([]PlayerTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner_name, COUNT(1) AS wins
		 FROM rounds GROUP BY winner_name ORDER BY wins DESC, winner_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerTotal
	for rows.Next() {
		var t PlayerTotal
		if err := rows.Scan(&t.PlayerName, &t.Wins); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

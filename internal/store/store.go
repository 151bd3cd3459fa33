// Package store persists flight records in a SQLite database. The
// recorder writes one row per flight and keeps its last_ts/duration
// current with heartbeats; the report side reads the table back as
// (id, begin, end) intervals without mutating it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ciberfox/flight-recorder/internal/timeline"
)

// Store wraps a SQLite connection to a flight database.
type Store struct {
	db *sql.DB
}

// Open opens or creates a flight database at the given path and
// ensures the schema exists. Used by the recording side.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing flight database for reporting. The
// database must already exist; a missing or unreadable file is an
// error at open time.
func OpenReadOnly(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Flights returns every recorded flight as an interval with
// begin = last_ts - duration and end = last_ts.
func (s *Store) Flights(ctx context.Context) ([]timeline.Flight, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, last_ts, duration FROM flights ORDER BY last_ts, id")
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	var flights []timeline.Flight
	for rows.Next() {
		var id, lastTS, duration int64
		if err := rows.Scan(&id, &lastTS, &duration); err != nil {
			return nil, fmt.Errorf("scan flight row: %w", err)
		}

		end := time.Unix(lastTS, 0)
		flights = append(flights, timeline.Flight{
			ID:    id,
			Begin: end.Add(-time.Duration(duration) * time.Second),
			End:   end,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flights: %w", err)
	}

	return flights, nil
}

// StartFlight inserts a new flight row beginning now and returns its
// ID for subsequent heartbeats.
func (s *Store) StartFlight(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO flights (last_ts, duration) VALUES (?, 0)", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("start flight: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("start flight: %w", err)
	}
	return id, nil
}

// Heartbeat advances a flight's end to now, keeping duration
// consistent with the flight's original start.
func (s *Store) Heartbeat(ctx context.Context, id int64, started, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE flights SET last_ts = ?, duration = ? WHERE id = ?",
		now.Unix(), int64(now.Sub(started).Seconds()), id)
	if err != nil {
		return fmt.Errorf("heartbeat flight %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("heartbeat flight %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("heartbeat flight %d: no such flight", id)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

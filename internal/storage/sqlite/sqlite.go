// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is the embedded alternative to the text-file backend and
// is selected with `backend: sqlite` in the config.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the database implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the tables if they do
// not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   position — index of the record in store order
	//   id       — the caller-supplied student id, unique
	//   meta     — key/value pairs; holds the next_id counter
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			position INTEGER PRIMARY KEY,
			id       TEXT    NOT NULL UNIQUE,
			name     TEXT    NOT NULL,
			age      INTEGER NOT NULL,
			course   TEXT    NOT NULL,
			gpa      REAL    NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Load returns the stored roster ordered by position.
// A fresh database has no next_id row and yields the default counter.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load() (storage.Snapshot, error) {
	snap := storage.Empty()

	var raw string
	err := s.Db.QueryRow("SELECT value FROM meta WHERE key = 'next_id'").Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// keep the default
	case err != nil:
		return storage.Empty(), fmt.Errorf("Load: next_id: %w", err)
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return storage.Empty(), fmt.Errorf("Load: parse next_id %q: %w", raw, err)
		}
		snap.NextID = n
	}

	rows, err := s.Db.Query(
		"SELECT id, name, age, course, gpa FROM students ORDER BY position",
	)
	if err != nil {
		return storage.Empty(), fmt.Errorf("Load: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.Course,
			&student.GPA,
		); err != nil {
			return storage.Empty(), fmt.Errorf("Load: scan row: %w", err)
		}

		snap.Students = append(snap.Students, student)
	}

	if err := rows.Err(); err != nil {
		return storage.Empty(), fmt.Errorf("Load: rows iteration: %w", err)
	}

	return snap, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces every stored row with snap inside one transaction.
// Either the whole new roster is visible afterwards or nothing changed.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(snap storage.Snapshot) (err error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM students"); err != nil {
		return fmt.Errorf("Save: clear: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO meta (key, value) VALUES ('next_id', ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		strconv.Itoa(snap.NextID),
	)
	if err != nil {
		return fmt.Errorf("Save: next_id: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO students (position, id, name, age, course, gpa) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	for i, student := range snap.Students {
		// Argument order matches the ? order in the SQL.
		_, err = stmt.Exec(i, student.ID, student.Name, student.Age, student.Course, student.GPA)
		if err != nil {
			return fmt.Errorf("Save: insert %q: %w", student.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

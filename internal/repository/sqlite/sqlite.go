// Package sqlite implements repository.AlumniRepository using SQLite as the storage backend.
//
// WHY A SECOND BACKEND?
// The JSON file is the canonical store, but a single-file SQLite database gives
// the same "one file, no server" deployment with crash-safe writes for free.
// It keeps the whole-collection contract: Load returns every row in collection
// order and Save replaces every row inside one transaction, so nothing above
// the repository interface can tell the two backends apart.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code, so no C compiler is needed.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The sqlite package's init() registers a database/sql driver named "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database and runs migrations.
//
// dbPath examples:
//   - "data/alumni.db"  → file-based database (persistent)
//   - ":memory:"        → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection. Pinning the pool to one
	// connection keeps every query on the same database; for a file it also
	// serializes writers, which is all this store needs.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the alumni table.
//
// position is the record's index in the collection. The alumni ID is NOT the
// key: IDs are not guaranteed unique and may be 0, and the collection order
// must survive a round trip.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS alumni (
			position   INTEGER PRIMARY KEY,
			id         INTEGER NOT NULL DEFAULT 0,
			name       TEXT    NOT NULL DEFAULT '',
			department TEXT    NOT NULL DEFAULT '',
			year       INTEGER NOT NULL DEFAULT 0,
			email      TEXT    NOT NULL DEFAULT '',
			phone      TEXT    NOT NULL DEFAULT '',
			address    TEXT    NOT NULL DEFAULT '',
			job        TEXT    NOT NULL DEFAULT '',
			company    TEXT    NOT NULL DEFAULT '',
			cgpa       REAL    NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_alumni_id ON alumni(id);
		CREATE INDEX IF NOT EXISTS idx_alumni_year ON alumni(year);
	`)
	if err != nil {
		return fmt.Errorf("creating alumni table: %w", err)
	}
	return nil
}

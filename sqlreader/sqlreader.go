// Package sqlreader implements the SQL Reader collaborator: it opens the
// relational side of a TDF container (analysis.tdf) and executes the typed
// queries the Frame Reader core needs. The generic Query helper and the
// one-query-string-per-table shape are modeled directly on
// original_source's ReadableSqlTable trait (frames.rs, maldi.rs).
package sqlreader

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB is the default SqlReader: a SQLite connection over analysis.tdf.
type DB struct {
	conn *sql.DB
}

// Open opens path (the .tdf database file) for reading.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlreader: opening %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlreader: pinging %s: %w", path, err)
	}
	return &DB{conn: conn}, nil
}

// Close releases the underlying connection. The core only holds a SqlReader
// during construction and releases it immediately after (spec §5).
func (db *DB) Close() error {
	return db.conn.Close()
}

// HasTable reports whether name exists as a table in the database,
// grounded on original_source's has_maldi_info sqlite_master probe.
func (db *DB) HasTable(name string) (bool, error) {
	const q = `SELECT name FROM sqlite_master WHERE type='table' AND name=?`
	var got string
	switch err := db.conn.QueryRow(q, name).Scan(&got); err {
	case nil:
		return true, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, fmt.Errorf("sqlreader: checking table %s: %w", name, err)
	}
}

// Query runs query and maps every returned row through scan.
func Query[T any](db *DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("sqlreader: query failed: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlreader: scanning row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

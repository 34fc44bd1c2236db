package quadrupole

import (
	"database/sql"
	"fmt"

	"github.com/galaxybio/go-tdf/sqlreader"
)

// Reader implements the Quadrupole Settings Reader collaborator: it reads
// the DiaFrameMsMsWindows table and returns one Settings per window group,
// 0-indexed (the source's window groups are 1-based).
type Reader struct {
	db *sqlreader.DB
}

// NewReader opens path (the .tdf database file) for reading.
func NewReader(path string) (*Reader, error) {
	db, err := sqlreader.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

// Close releases the underlying connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

type windowRow struct {
	WindowGroup     uint8
	IsolationMz     float64
	IsolationWidth  float64
	CollisionEnergy float64
}

// Read returns the ordered list of window configurations, indexed by
// window-group (spec §6). DiaFrameMsMsWindows carries one row per scan
// range within a window group; the isolation/collision values are
// constant across those ranges in practice, so this keeps the first row
// seen for each window group.
func (r *Reader) Read() ([]*Settings, error) {
	const q = `SELECT WindowGroup, IsolationMz, IsolationWidth, CollisionEnergy ` +
		`FROM DiaFrameMsMsWindows ORDER BY WindowGroup, ScanNumBegin`
	rows, err := sqlreader.Query(r.db, q, func(rw *sql.Rows) (windowRow, error) {
		var w windowRow
		err := rw.Scan(&w.WindowGroup, &w.IsolationMz, &w.IsolationWidth, &w.CollisionEnergy)
		return w, err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("quadrupole: DiaFrameMsMsWindows is empty")
	}

	maxGroup := uint8(0)
	for _, row := range rows {
		if row.WindowGroup > maxGroup {
			maxGroup = row.WindowGroup
		}
	}

	settings := make([]*Settings, maxGroup)
	seen := make([]bool, maxGroup)
	for _, row := range rows {
		i := row.WindowGroup - 1
		if seen[i] {
			continue
		}
		seen[i] = true
		settings[i] = &Settings{
			IsolationMz:     row.IsolationMz,
			IsolationWidth:  row.IsolationWidth,
			CollisionEnergy: row.CollisionEnergy,
		}
	}
	for i, s := range settings {
		if s == nil {
			settings[i] = Default()
		}
	}

	return settings, nil
}

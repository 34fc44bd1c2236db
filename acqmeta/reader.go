// Package acqmeta implements the Metadata Reader collaborator: it reads
// the GlobalMetaData key/value table and exposes the dataset's compression
// type to the Frame Reader core.
package acqmeta

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/galaxybio/go-tdf/sqlreader"
)

// Info is the full metadata snapshot; the core only ever reads
// CompressionType from it.
type Info struct {
	CompressionType uint8
	Raw             map[string]string
}

// Reader is the default MetadataReader: a sqlreader.DB over
// GlobalMetaData.
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

type kv struct {
	Key   string
	Value string
}

// Info reads every row of GlobalMetaData.
func (r *Reader) Info() (Info, error) {
	const q = `SELECT Key, Value FROM GlobalMetaData`
	rows, err := sqlreader.Query(r.db, q, func(rw *sql.Rows) (kv, error) {
		var p kv
		err := rw.Scan(&p.Key, &p.Value)
		return p, err
	})
	if err != nil {
		return Info{}, err
	}

	raw := make(map[string]string, len(rows))
	for _, p := range rows {
		raw[p.Key] = p.Value
	}

	const compressionKey = "TimsCompressionType"
	compressionStr, ok := raw[compressionKey]
	if !ok {
		return Info{}, fmt.Errorf("acqmeta: %s not present in GlobalMetaData", compressionKey)
	}
	compression, err := strconv.ParseUint(compressionStr, 10, 8)
	if err != nil {
		return Info{}, fmt.Errorf("acqmeta: parsing %s: %w", compressionKey, err)
	}

	return Info{CompressionType: uint8(compression), Raw: raw}, nil
}

// CompressionType satisfies the core's MetadataReader interface.
func (r *Reader) CompressionType() (uint8, error) {
	info, err := r.Info()
	if err != nil {
		return 0, err
	}
	return info.CompressionType, nil
}

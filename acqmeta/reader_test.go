package acqmeta

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTdf(t *testing.T, schema string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.tdf")

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer conn.Close()

	if schema != "" {
		if _, err := conn.Exec(schema); err != nil {
			t.Fatalf("applying schema: %v", err)
		}
	}
	return path
}

func TestReader_CompressionType(t *testing.T) {
	path := setupTdf(t, `
		CREATE TABLE GlobalMetaData (Key TEXT, Value TEXT);
		INSERT INTO GlobalMetaData VALUES ('TimsCompressionType', '2');
	`)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	ct, err := r.CompressionType()
	if err != nil {
		t.Fatalf("CompressionType: %v", err)
	}
	if ct != 2 {
		t.Fatalf("CompressionType() = %d, want 2", ct)
	}
}

func TestReader_MissingCompressionKey(t *testing.T) {
	path := setupTdf(t, `CREATE TABLE GlobalMetaData (Key TEXT, Value TEXT)`)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	if _, err := r.CompressionType(); err == nil {
		t.Fatal("expected error for missing TimsCompressionType key")
	}
}

package sqlreader

import "testing"

func openTestDB(t *testing.T, schema string) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if schema != "" {
		if _, err := db.conn.Exec(schema); err != nil {
			t.Fatalf("applying schema: %v", err)
		}
	}
	return db
}

func TestHasTable(t *testing.T) {
	db := openTestDB(t, `CREATE TABLE Frames (Id INTEGER PRIMARY KEY)`)

	present, err := db.HasTable("Frames")
	if err != nil {
		t.Fatalf("HasTable: %v", err)
	}
	if !present {
		t.Fatal("HasTable(Frames) = false, want true")
	}

	present, err = db.HasTable("MaldiFrameInfo")
	if err != nil {
		t.Fatalf("HasTable: %v", err)
	}
	if present {
		t.Fatal("HasTable(MaldiFrameInfo) = true, want false")
	}
}

func TestFrames(t *testing.T) {
	db := openTestDB(t, `
		CREATE TABLE Frames (
			Id INTEGER PRIMARY KEY,
			ScanMode INTEGER,
			MsMsType INTEGER,
			NumPeaks INTEGER,
			Time REAL,
			NumScans INTEGER,
			TimsId INTEGER,
			AccumulationTime REAL
		);
		INSERT INTO Frames VALUES (1, 0, 0, 100, 0.5, 10, 0, 0.1);
		INSERT INTO Frames VALUES (2, 0, 8, 50, 0.6, 10, 512, 0.1);
	`)

	rows, err := db.Frames()
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Id != 1 || rows[1].MsMsType != 8 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestMaldiFrameInfo_TableAbsent(t *testing.T) {
	db := openTestDB(t, `CREATE TABLE Frames (Id INTEGER PRIMARY KEY)`)

	rows, present, err := db.MaldiFrameInfo()
	if err != nil {
		t.Fatalf("MaldiFrameInfo: %v", err)
	}
	if present {
		t.Fatal("present = true, want false")
	}
	if len(rows) != 0 {
		t.Fatalf("len(rows) = %d, want 0", len(rows))
	}
}

func TestMaldiFrameInfo_TablePresent(t *testing.T) {
	db := openTestDB(t, `
		CREATE TABLE MaldiFrameInfo (
			Frame INTEGER PRIMARY KEY,
			SpotName TEXT,
			XIndexPos INTEGER,
			YIndexPos INTEGER,
			PositionX REAL,
			PositionY REAL,
			LaserPower REAL,
			LaserRepRate REAL,
			NumLaserShots INTEGER
		);
		INSERT INTO MaldiFrameInfo VALUES (1, 'A1', 0, 0, 1.5, 2.5, NULL, NULL, NULL);
	`)

	rows, present, err := db.MaldiFrameInfo()
	if err != nil {
		t.Fatalf("MaldiFrameInfo: %v", err)
	}
	if !present {
		t.Fatal("present = false, want true")
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !rows[0].PositionX.Valid || rows[0].PositionX.Float64 != 1.5 {
		t.Fatalf("PositionX = %+v, want valid 1.5", rows[0].PositionX)
	}
	if rows[0].LaserPower.Valid {
		t.Fatalf("LaserPower = %+v, want NULL", rows[0].LaserPower)
	}
}

func TestWindowGroups(t *testing.T) {
	db := openTestDB(t, `
		CREATE TABLE DiaFrameMsMsInfo (Frame INTEGER, WindowGroup INTEGER);
		INSERT INTO DiaFrameMsMsInfo VALUES (3, 1);
		INSERT INTO DiaFrameMsMsInfo VALUES (4, 2);
	`)

	rows, err := db.WindowGroups()
	if err != nil {
		t.Fatalf("WindowGroups: %v", err)
	}
	if len(rows) != 2 || rows[0].WindowGroup != 1 || rows[1].Frame != 4 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

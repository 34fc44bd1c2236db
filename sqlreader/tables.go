package sqlreader

import "database/sql"

// Frame is one row of the Frames table (spec §6).
type Frame struct {
	Id               int
	ScanMode         uint8
	MsMsType         uint8
	NumPeaks         uint64
	Time             float64
	NumScans         uint64
	TimsId           int
	AccumulationTime float64
}

// Frames reads every row of the Frames table.
func (db *DB) Frames() ([]Frame, error) {
	const q = `SELECT Id, ScanMode, MsMsType, NumPeaks, Time, NumScans, TimsId, AccumulationTime FROM Frames`
	return Query(db, q, func(r *sql.Rows) (Frame, error) {
		var f Frame
		err := r.Scan(&f.Id, &f.ScanMode, &f.MsMsType, &f.NumPeaks, &f.Time, &f.NumScans, &f.TimsId, &f.AccumulationTime)
		return f, err
	})
}

// MaldiFrameInfo is one row of the MaldiFrameInfo table (spec §6). The
// physical-coordinate and laser columns are nullable in the source schema.
type MaldiFrameInfo struct {
	Frame        int
	SpotName     string
	XIndexPos    int32
	YIndexPos    int32
	PositionX    sql.NullFloat64
	PositionY    sql.NullFloat64
	LaserPower   sql.NullFloat64
	LaserRepRate sql.NullFloat64
	LaserShots   sql.NullInt64
}

// MaldiFrameInfo reads every row of the MaldiFrameInfo table. The second
// return value reports whether the table exists at all; if it doesn't, the
// slice is empty and present is false (spec §4.C step 5, §8 property 6).
func (db *DB) MaldiFrameInfo() ([]MaldiFrameInfo, bool, error) {
	present, err := db.HasTable("MaldiFrameInfo")
	if err != nil {
		return nil, false, err
	}
	if !present {
		return nil, false, nil
	}

	const q = `SELECT Frame, SpotName, XIndexPos, YIndexPos, PositionX, PositionY, ` +
		`LaserPower, LaserRepRate, NumLaserShots FROM MaldiFrameInfo`
	rows, err := Query(db, q, func(r *sql.Rows) (MaldiFrameInfo, error) {
		var m MaldiFrameInfo
		err := r.Scan(&m.Frame, &m.SpotName, &m.XIndexPos, &m.YIndexPos,
			&m.PositionX, &m.PositionY, &m.LaserPower, &m.LaserRepRate, &m.LaserShots)
		return m, err
	})
	return rows, true, err
}

// WindowGroup is one row of the frame-to-window-group mapping
// (DiaFrameMsMsInfo in the real Bruker schema; spec §6 "Window-group
// mapping (external)").
type WindowGroup struct {
	Frame       int
	WindowGroup uint8
}

// WindowGroups reads every frame-to-window-group assignment.
func (db *DB) WindowGroups() ([]WindowGroup, error) {
	const q = `SELECT Frame, WindowGroup FROM DiaFrameMsMsInfo`
	return Query(db, q, func(r *sql.Rows) (WindowGroup, error) {
		var w WindowGroup
		err := r.Scan(&w.Frame, &w.WindowGroup)
		return w, err
	})
}

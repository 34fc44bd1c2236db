package tdf

import (
	"github.com/samber/lo"

	"github.com/galaxybio/go-tdf/quadrupole"
	"github.com/galaxybio/go-tdf/sqlreader"
)

// detectAcquisition implements spec §4.C step 3: DDA-PASEF if any row has
// MsMsType == 8, else DIA-PASEF if any row has MsMsType == 9, else Unknown.
// DDA takes precedence over DIA if both occur.
func detectAcquisition(rows []sqlreader.Frame) AcquisitionType {
	if lo.SomeBy(rows, func(f sqlreader.Frame) bool { return f.MsMsType == 8 }) {
		return AcquisitionDDAPASEF
	}
	if lo.SomeBy(rows, func(f sqlreader.Frame) bool { return f.MsMsType == 9 }) {
		return AcquisitionDIAPASEF
	}
	return AcquisitionUnknown
}

// maldiByFrameID builds the keyed lookup spec §4.C step 5 describes: frame
// id -> MALDI row.
func maldiByFrameID(rows []sqlreader.MaldiFrameInfo) map[int]sqlreader.MaldiFrameInfo {
	return lo.KeyBy(rows, func(m sqlreader.MaldiFrameInfo) int { return m.Frame })
}

// buildSkeleton implements spec §4.C steps 1, 4 and 5 for a single Frames
// row. It never touches peak data.
func buildSkeleton(
	row sqlreader.Frame,
	index0Based int,
	acquisition AcquisitionType,
	windowGroups []uint8,
	windows []*quadrupole.Settings,
	maldiByID map[int]sqlreader.MaldiFrameInfo,
) *Frame {
	f := &Frame{
		Index:                     row.Id,
		RtInSeconds:               row.Time,
		MsLevel:                   msLevelFromMsMsType(row.MsMsType),
		AcquisitionType:           acquisition,
		IntensityCorrectionFactor: 1 / row.AccumulationTime,
		QuadrupoleSettings:        quadrupole.Default(),
	}

	if acquisition == AcquisitionDIAPASEF && f.MsLevel == MSLevelMS2 {
		wg := windowGroups[index0Based]
		f.WindowGroup = wg
		if wg > 0 {
			f.QuadrupoleSettings = windows[wg-1]
		}
	}

	if maldi, ok := maldiByID[row.Id]; ok {
		f.MaldiInfo = maldiInfoFromRow(maldi)
	}

	return f
}

func maldiInfoFromRow(row sqlreader.MaldiFrameInfo) *MaldiInfo {
	info := &MaldiInfo{
		SpotName: row.SpotName,
		PixelX:   row.XIndexPos,
		PixelY:   row.YIndexPos,
	}
	if row.PositionX.Valid {
		v := row.PositionX.Float64
		info.PositionXUm = &v
	}
	if row.PositionY.Valid {
		v := row.PositionY.Float64
		info.PositionYUm = &v
	}
	if row.LaserPower.Valid {
		v := row.LaserPower.Float64
		info.LaserPower = &v
	}
	if row.LaserRepRate.Valid {
		v := row.LaserRepRate.Float64
		info.LaserRepRate = &v
	}
	if row.LaserShots.Valid {
		v := int32(row.LaserShots.Int64)
		info.LaserShots = &v
	}
	return info
}

// buildSkeletons builds one skeleton per Frames row, dispatched across
// pool (spec §4.C "embarrassingly parallel across frames"; §9 "Parallel
// construction").
func buildSkeletons(
	pool pool,
	rows []sqlreader.Frame,
	acquisition AcquisitionType,
	windowGroups []uint8,
	windows []*quadrupole.Settings,
	maldiByID map[int]sqlreader.MaldiFrameInfo,
) []*Frame {
	skeletons := make([]*Frame, len(rows))
	runIndexed(pool, len(rows), func(i int) {
		skeletons[i] = buildSkeleton(rows[i], i, acquisition, windowGroups, windows, maldiByID)
	})
	return skeletons
}

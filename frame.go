package tdf

import (
	"math"

	"github.com/galaxybio/go-tdf/quadrupole"
)

// MSLevel distinguishes precursor from fragment spectra.
type MSLevel uint8

const (
	MSLevelUnknown MSLevel = iota
	MSLevelMS1
	MSLevelMS2
)

func (l MSLevel) String() string {
	switch l {
	case MSLevelMS1:
		return "MS1"
	case MSLevelMS2:
		return "MS2"
	default:
		return "Unknown"
	}
}

// msLevelFromMsMsType implements spec.md §4.C step 2: 0 -> MS1, {8, 9} -> MS2,
// anything else -> Unknown.
func msLevelFromMsMsType(msMsType uint8) MSLevel {
	switch msMsType {
	case 0:
		return MSLevelMS1
	case 8, 9:
		return MSLevelMS2
	default:
		return MSLevelUnknown
	}
}

// AcquisitionType is the global acquisition mode of the dataset, detected
// once across the whole Frames table (spec.md §4.C step 3).
type AcquisitionType uint8

const (
	AcquisitionUnknown AcquisitionType = iota
	AcquisitionDDAPASEF
	AcquisitionDIAPASEF
)

func (a AcquisitionType) String() string {
	switch a {
	case AcquisitionDDAPASEF:
		return "DDA-PASEF"
	case AcquisitionDIAPASEF:
		return "DIA-PASEF"
	default:
		return "Unknown"
	}
}

// MaldiInfo carries MALDI-TIMS-MSI imaging coordinates for one frame. A
// frame has MaldiInfo iff the container exposes a MaldiFrameInfo table and
// that table has a row keyed by the frame's Index.
type MaldiInfo struct {
	SpotName      string
	PixelX        int32
	PixelY        int32
	PositionXUm   *float64
	PositionYUm   *float64
	LaserPower    *float64
	LaserRepRate  *float64
	LaserShots    *int32
}

// Frame is the unit of materialization: one TIMS acquisition cycle, its
// ion-mobility scans and their decoded peaks. Frame skeletons (every field
// except ScanOffsets/TofIndices/Intensities) are built once at FrameReader
// construction; Get clones a skeleton and fills in the peak arrays.
type Frame struct {
	// Index is the 1-based frame id from the Frames table, not the
	// container position passed to FrameReader.Get.
	Index                        int
	RtInSeconds                  float64
	MsLevel                      MSLevel
	AcquisitionType              AcquisitionType
	IntensityCorrectionFactor    float64
	WindowGroup                  uint8
	QuadrupoleSettings           *quadrupole.Settings
	MaldiInfo                    *MaldiInfo

	// ScanOffsets has length scan_count+1: ScanOffsets[0] == 0,
	// ScanOffsets[len-1] == len(Intensities), monotone nondecreasing.
	ScanOffsets []int
	// TofIndices holds the absolute TOF bin per peak; within one scan
	// (the half-open range [ScanOffsets[k], ScanOffsets[k+1])) it is
	// strictly increasing.
	TofIndices []uint32
	// Intensities holds the raw intensity per peak, parallel to TofIndices.
	Intensities []uint32
}

// ScanCount returns the number of ion-mobility scans in the frame.
func (f *Frame) ScanCount() int {
	if len(f.ScanOffsets) == 0 {
		return 0
	}
	return len(f.ScanOffsets) - 1
}

// PeakCount returns the total number of peaks across all scans.
func (f *Frame) PeakCount() int {
	return len(f.Intensities)
}

// GetCorrectedIntensity returns the intensity of peak index corrected by
// IntensityCorrectionFactor.
func (f *Frame) GetCorrectedIntensity(index int) float64 {
	return f.IntensityCorrectionFactor * float64(f.Intensities[index])
}

// IntensityCorrectionFactorValid reports whether IntensityCorrectionFactor
// is positive and finite. AccumulationTime == 0 in the source Frames row leaves the
// factor as +Inf (spec.md §9); this is a cheap predicate for callers that
// want to flag such frames instead of propagating the infinity.
func (f *Frame) IntensityCorrectionFactorValid() bool {
	return f.IntensityCorrectionFactor > 0 && !math.IsInf(f.IntensityCorrectionFactor, 1)
}

// clone returns a shallow copy of the skeleton. The peak slices are always
// nil on a skeleton, so the copy shares no backing arrays for the fields Get
// fills in; QuadrupoleSettings and MaldiInfo are pointers and point at the
// same values as the skeleton's.
func (f *Frame) clone() *Frame {
	clone := *f
	return &clone
}

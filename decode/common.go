// Package decode implements the two TDF blob decoders (spec §4.A, §4.B):
// compression type 2 reads directly from a memory-mapped word stream,
// compression type 3 (optional, build-tag gated) delegates to an external
// compressed-blob library. Both reduce to the same columnar derivation
// once the word stream is in hand.
package decode

import "errors"

var (
	ErrCorruptFrame                     = errors.New("decode: corrupt frame")
	ErrCompressedBlobBackendUnavailable = errors.New("decode: compressed blob backend not available")
)

// Decoded holds the three parallel arrays any compression variant produces.
type Decoded struct {
	ScanOffsets []int
	TofIndices  []uint32
	Intensities []uint32
}

// decodeWords runs the shared scan-offset / TOF / intensity derivation
// (spec §4.A) over an already-materialized little-endian word stream.
//
// The layout: W[0] is scan_count. W[1..scan_count-1] give the peak size
// (doubled) of every scan but the last; the last scan's size is implicit,
// absorbing whatever peaks remain once the others are accounted for. This
// is pinned against original_source/src/io/readers/frame_reader.rs, which
// resolves the spec's off-by-one ambiguity: the loop populating
// scan_offsets runs 0..scan_count-1 and peak_count is appended last, so the
// *last* scan (not the first) is the implicit one.
func decodeWords(words []uint32) (Decoded, error) {
	if len(words) == 0 {
		return Decoded{}, ErrCorruptFrame
	}

	scanCount := int(words[0])
	if scanCount <= 0 || scanCount > len(words) {
		return Decoded{}, ErrCorruptFrame
	}

	remaining := len(words) - scanCount
	if remaining%2 != 0 {
		return Decoded{}, ErrCorruptFrame
	}
	peakCount := remaining / 2

	scanOffsets := make([]int, 1, scanCount+1)
	scanOffsets[0] = 0
	for scanIndex := 0; scanIndex < scanCount-1; scanIndex++ {
		size := int(words[scanIndex+1] / 2)
		next := scanOffsets[scanIndex] + size
		if next > peakCount {
			return Decoded{}, ErrCorruptFrame
		}
		scanOffsets = append(scanOffsets, next)
	}
	scanOffsets = append(scanOffsets, peakCount)

	intensities := make([]uint32, peakCount)
	for peakIndex := 0; peakIndex < peakCount; peakIndex++ {
		intensities[peakIndex] = words[scanCount+1+2*peakIndex]
	}

	tofIndices := make([]uint32, 0, peakCount)
	for scanIndex := 0; scanIndex < scanCount; scanIndex++ {
		start := scanOffsets[scanIndex]
		end := scanOffsets[scanIndex+1]
		var sum uint32
		for peakIndex := start; peakIndex < end; peakIndex++ {
			idx := scanCount + 2*peakIndex
			sum += words[idx]
			tofIndices = append(tofIndices, sum-1)
		}
	}

	return Decoded{ScanOffsets: scanOffsets, TofIndices: tofIndices, Intensities: intensities}, nil
}

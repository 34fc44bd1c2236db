package tdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/galaxybio/go-tdf/acqmeta"
	"github.com/galaxybio/go-tdf/blobio"
	"github.com/galaxybio/go-tdf/decode"
	"github.com/galaxybio/go-tdf/quadrupole"
	"github.com/galaxybio/go-tdf/sqlreader"
)

// TdfBlob and BlobReader are re-exported here so callers and alternative
// Raw Blob Reader implementations never need to import blobio directly
// (spec §6).
type (
	TdfBlob    = blobio.TdfBlob
	BlobReader = blobio.BlobReader
)

// MetadataReader is the Metadata Reader collaborator (spec §6): it exposes
// the dataset's TDF compression type.
type MetadataReader interface {
	CompressionType() (uint8, error)
}

// SqlReader is the SQL Reader collaborator (spec §6): it exposes the
// Frames, MaldiFrameInfo and window-group tables.
type SqlReader interface {
	Frames() ([]sqlreader.Frame, error)
	MaldiFrameInfo() ([]sqlreader.MaldiFrameInfo, bool, error)
	WindowGroups() ([]sqlreader.WindowGroup, error)
	Close() error
}

// QuadrupoleSettingsReader is the Quadrupole Settings Reader collaborator
// (spec §6): it exposes one Settings per DIA window group.
type QuadrupoleSettingsReader interface {
	Read() ([]*quadrupole.Settings, error)
	Close() error
}

// Predicate selects frames for Filter/ParallelFilter.
type Predicate func(*Frame) bool

// Options configures FrameReader construction. The zero value uses the
// default SQLite-backed SqlReader/MetadataReader/QuadrupoleSettingsReader
// and a memory-mapped Raw Blob Reader, with parallelism sized to
// GOMAXPROCS.
type Options struct {
	// Workers bounds the number of goroutines used for skeleton
	// construction and bulk materialization. <= 0 means GOMAXPROCS.
	Workers int
}

// FrameReader is the Frame Reader core (spec §2, §5): an opened TDF
// container with every frame's metadata resolved up front and its peak
// data decoded lazily, on demand, per call to Get.
type FrameReader struct {
	skeletons     []*Frame
	binaryOffsets []int
	acquisition   AcquisitionType
	isMaldi       bool
	windows       []*quadrupole.Settings

	compressionType uint8
	// maxScanCount is the dataset-wide max Frames.NumScans, computed once
	// at construction; only meaningful for compressionType == 3.
	maxScanCount int

	blobReader       blobio.BlobReader
	compressedReader decode.CompressedBlobReader // nil unless compressionType == 3

	pool pool
	stop context.CancelFunc
}

// New opens the TDF container at path (a directory conventionally named
// *.d, containing analysis.tdf and analysis.tdf_bin) with default options.
func New(path string) (*FrameReader, error) {
	return NewWithOptions(path, Options{})
}

// NewWithOptions opens the TDF container at path with explicit options.
// Construction runs the full pipeline described in spec §2: check the
// compression type, load frame/MALDI/window-group metadata over SQL, build
// every frame skeleton in parallel, then open the binary blob reader. No
// peak data is read during construction.
func NewWithOptions(path string, opts Options) (*FrameReader, error) {
	tdfPath := filepath.Join(path, "analysis.tdf")
	binPath := filepath.Join(path, "analysis.tdf_bin")

	if _, err := os.Stat(tdfPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, tdfPath)
	}
	if _, err := os.Stat(binPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, binPath)
	}

	meta, err := acqmeta.NewReader(tdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataReadFailed, err)
	}
	compressionType, err := meta.CompressionType()
	meta.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataReadFailed, err)
	}
	if compressionType != 2 && compressionType != 3 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCompressionType, compressionType)
	}

	sql, err := sqlreader.Open(tdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSqlReadFailed, err)
	}
	defer sql.Close()

	rows, err := sql.Frames()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSqlReadFailed, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFrameTable
	}

	maldiRows, _, err := sql.MaldiFrameInfo()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSqlReadFailed, err)
	}
	isMaldi := len(maldiRows) > 0
	maldiByID := maldiByFrameID(maldiRows)

	acquisition := detectAcquisition(rows)

	windowGroups := make([]uint8, len(rows))
	var windows []*quadrupole.Settings
	if acquisition == AcquisitionDIAPASEF {
		wgRows, err := sql.WindowGroups()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSqlReadFailed, err)
		}
		byFrame := make(map[int]uint8, len(wgRows))
		for _, w := range wgRows {
			byFrame[w.Frame] = w.WindowGroup
		}
		for i, row := range rows {
			windowGroups[i] = byFrame[row.Id]
		}

		qr, err := quadrupole.NewReader(tdfPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuadrupoleSettingsReadFailed, err)
		}
		windows, err = qr.Read()
		qr.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuadrupoleSettingsReadFailed, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := newPool(ctx, opts.Workers)

	skeletons := buildSkeletons(p, rows, acquisition, windowGroups, windows, maldiByID)

	binaryOffsets := make([]int, len(rows))
	for i, row := range rows {
		binaryOffsets[i] = row.TimsId
	}

	blobReader, err := blobio.OpenMmap(binPath)
	if err != nil {
		p.StopAndWait()
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrBlobReaderOpenFailed, err)
	}

	maxScanCount := 0
	for _, row := range rows {
		if int(row.NumScans) > maxScanCount {
			maxScanCount = int(row.NumScans)
		}
	}

	var compressedReader decode.CompressedBlobReader
	if compressionType == 3 {
		compressedReader, err = decode.NewCompressedBlobReader(binPath, maxScanCount)
		if err != nil {
			blobReader.Close()
			p.StopAndWait()
			cancel()
			return nil, fmt.Errorf("%w: %v", ErrCompressedBlobBackendMissing, err)
		}
	}

	return &FrameReader{
		skeletons:        skeletons,
		binaryOffsets:    binaryOffsets,
		acquisition:      acquisition,
		isMaldi:          isMaldi,
		windows:          windows,
		compressionType:  compressionType,
		maxScanCount:     maxScanCount,
		blobReader:       blobReader,
		compressedReader: compressedReader,
		pool:             p,
		stop:             cancel,
	}, nil
}

// Close releases the memory-mapped blob file and the worker pool. A
// FrameReader must not be used after Close.
func (r *FrameReader) Close() error {
	r.pool.StopAndWait()
	r.stop()
	if r.compressedReader != nil {
		r.compressedReader.Close()
	}
	return r.blobReader.Close()
}

// Len returns the number of frames in the container.
func (r *FrameReader) Len() int {
	return len(r.skeletons)
}

// GetBinaryOffset returns the raw Frames.TimsId byte offset for the i-th
// frame (0-based container position), for callers that want to drive their
// own BlobReader.
func (r *FrameReader) GetBinaryOffset(i int) (int, error) {
	if i < 0 || i >= len(r.binaryOffsets) {
		return 0, ErrIndexOutOfBounds
	}
	return r.binaryOffsets[i], nil
}

// GetAcquisition returns the dataset-wide acquisition mode detected at
// construction.
func (r *FrameReader) GetAcquisition() AcquisitionType {
	return r.acquisition
}

// IsMaldi reports whether the container exposes MALDI-TIMS-MSI imaging
// metadata.
func (r *FrameReader) IsMaldi() bool {
	return r.isMaldi
}

// GetDiaWindows returns the DIA window-group table, 0-indexed (window group
// k+1 from Frame.WindowGroup is GetDiaWindows()[k]). It is nil unless the
// dataset is DIA-PASEF.
func (r *FrameReader) GetDiaWindows() []*quadrupole.Settings {
	return r.windows
}

// Get materializes the i-th frame (0-based container position): it clones
// the precomputed skeleton and decodes its peak data from the blob file.
func (r *FrameReader) Get(i int) (*Frame, error) {
	if i < 0 || i >= len(r.skeletons) {
		return nil, ErrIndexOutOfBounds
	}

	decoded, err := r.decodeAt(r.binaryOffsets[i])
	if err != nil {
		return nil, err
	}

	f := r.skeletons[i].clone()
	f.ScanOffsets = decoded.ScanOffsets
	f.TofIndices = decoded.TofIndices
	f.Intensities = decoded.Intensities
	return f, nil
}

func (r *FrameReader) decodeAt(offset int) (decode.Decoded, error) {
	if r.compressionType == 3 {
		decoded, err := r.compressedReader.GetRawFrameData(offset, r.maxScanCount)
		if err != nil {
			return decode.Decoded{}, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
		}
		return decoded, nil
	}

	blob, err := r.blobReader.Get(offset)
	if err != nil {
		return decode.Decoded{}, fmt.Errorf("%w: %v", ErrBlobReadFailed, err)
	}
	decoded, err := decode.DecodeType2(blob)
	if err != nil {
		return decode.Decoded{}, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
	}
	return decoded, nil
}

// parallelMaterialize decodes every frame whose index passes keep,
// preserving container order in the returned slice (spec §5: "parallel
// bulk materialization ... preserving container order").
func (r *FrameReader) parallelMaterialize(p pool, keep func(i int) bool) ([]*Frame, error) {
	n := len(r.skeletons)
	slots := make([]*Frame, n)
	errs := make([]error, n)

	runIndexed(p, n, func(i int) {
		if !keep(i) {
			return
		}
		f, err := r.Get(i)
		if err != nil {
			errs[i] = err
			return
		}
		slots[i] = f
	})

	out := make([]*Frame, 0, n)
	for i, f := range slots {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if f != nil {
			out = append(out, f)
		}
	}
	return out, nil
}

// GetAll materializes every frame in container order.
func (r *FrameReader) GetAll() ([]*Frame, error) {
	return r.parallelMaterialize(r.pool, func(int) bool { return true })
}

// GetAllMS1 materializes every MS1 frame in container order.
func (r *FrameReader) GetAllMS1() ([]*Frame, error) {
	return r.parallelMaterialize(r.pool, func(i int) bool {
		return r.skeletons[i].MsLevel == MSLevelMS1
	})
}

// GetAllMS2 materializes every MS2 frame in container order.
func (r *FrameReader) GetAllMS2() ([]*Frame, error) {
	return r.parallelMaterialize(r.pool, func(i int) bool {
		return r.skeletons[i].MsLevel == MSLevelMS2
	})
}

// Filter materializes, sequentially, every frame whose skeleton satisfies
// pred, testing the skeleton before decoding its peak data so rejected
// frames never pay the decode cost.
func (r *FrameReader) Filter(pred Predicate) ([]*Frame, error) {
	var out []*Frame
	for i, s := range r.skeletons {
		if !pred(s) {
			continue
		}
		f, err := r.Get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ParallelFilter is Filter dispatched across the reader's worker pool,
// preserving container order in the result.
func (r *FrameReader) ParallelFilter(pred Predicate) ([]*Frame, error) {
	return r.parallelMaterialize(r.pool, func(i int) bool {
		return pred(r.skeletons[i])
	})
}

// Stats summarizes the container without decoding any peak data.
type Stats struct {
	FrameCount      int
	MS1Count        int
	MS2Count        int
	Acquisition     AcquisitionType
	IsMaldi         bool
	CompressionType uint8
}

// Stats reports dataset-wide counts derived purely from frame skeletons.
func (r *FrameReader) Stats() Stats {
	s := Stats{
		FrameCount:      len(r.skeletons),
		Acquisition:     r.acquisition,
		IsMaldi:         r.isMaldi,
		CompressionType: r.compressionType,
	}
	for _, f := range r.skeletons {
		switch f.MsLevel {
		case MSLevelMS1:
			s.MS1Count++
		case MSLevelMS2:
			s.MS2Count++
		}
	}
	return s
}

package tdf

import "errors"

// Construction-time errors. A FrameReader that fails to construct never
// exposes partial state; all of these are fatal to New.
var (
	ErrUnsupportedCompressionType   = errors.New("tdf: unsupported compression type")
	ErrMetadataReadFailed           = errors.New("tdf: metadata read failed")
	ErrSqlReadFailed                = errors.New("tdf: sql read failed")
	ErrQuadrupoleSettingsReadFailed = errors.New("tdf: quadrupole settings read failed")
	ErrBlobReaderOpenFailed         = errors.New("tdf: blob reader open failed")
	ErrFileNotFound                 = errors.New("tdf: file not found")
	ErrCompressedBlobBackendMissing = errors.New("tdf: compressed blob backend not available")
	ErrEmptyFrameTable              = errors.New("tdf: frame table is empty")
)

// Get-time errors. These never poison the reader; they are returned from a
// single call and the reader remains usable.
var (
	ErrIndexOutOfBounds = errors.New("tdf: index out of bounds")
	ErrCorruptFrame     = errors.New("tdf: corrupt frame")
	ErrBlobReadFailed   = errors.New("tdf: blob read failed")
)

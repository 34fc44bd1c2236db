//go:build !timscompress

package decode

// CompressedBlobReader decodes compression-type-3 frame blobs by
// delegating to an external compressed-blob library (spec §4.B).
type CompressedBlobReader interface {
	GetRawFrameData(offset int, maxScanCount int) (Decoded, error)
	Close() error
}

// NewCompressedBlobReader always fails in the default build: compression
// type 3 requested but the backend is not present is a clean construction
// error, never a silent fallback to type 2 (spec §9). Build with
// -tags timscompress to link the zstd-backed implementation.
func NewCompressedBlobReader(path string, maxScanCount int) (CompressedBlobReader, error) {
	return nil, ErrCompressedBlobBackendUnavailable
}

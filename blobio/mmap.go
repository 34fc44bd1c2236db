package blobio

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/mmap"
)

// MmapReader memory-maps a TDF binary file (conventionally
// analysis.tdf_bin) and serves frame blobs directly from the mapped pages,
// so a dataset of tens of billions of peaks never has to be copied into
// process memory up front (spec §5: "typically served from memory-mapped
// pages; first-touch may page-fault").
//
// Each frame blob on disk begins with a 4-byte little-endian length prefix
// (the size in bytes of the whole record, i.e. including the prefix
// itself); the word stream the decode layer sees starts immediately after
// it. MmapReader is read-only and safe to share across any number of
// concurrent decode goroutines.
type MmapReader struct {
	ra *mmap.ReaderAt
}

// OpenMmap opens path for memory-mapped reading.
func OpenMmap(path string) (*MmapReader, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}
	return &MmapReader{ra: ra}, nil
}

// Close releases the memory mapping. It must only be called once the last
// in-flight Get using this reader has returned.
func (r *MmapReader) Close() error {
	return r.ra.Close()
}

// Get returns a TdfBlob view of the frame blob whose length-prefixed
// record starts at offset.
func (r *MmapReader) Get(offset int) (TdfBlob, error) {
	var hdr [4]byte
	if _, err := r.ra.ReadAt(hdr[:], int64(offset)); err != nil {
		return nil, fmt.Errorf("%w: reading blob header at %d: %v", ErrReadFailed, offset, err)
	}
	totalBytes := binary.LittleEndian.Uint32(hdr[:])
	if totalBytes < 4 || (totalBytes-4)%4 != 0 {
		return nil, fmt.Errorf("%w: at offset %d", ErrMalformedHeader, offset)
	}

	payload := make([]byte, totalBytes-4)
	if len(payload) > 0 {
		if _, err := r.ra.ReadAt(payload, int64(offset)+4); err != nil {
			return nil, fmt.Errorf("%w: reading blob payload at %d: %v", ErrReadFailed, offset, err)
		}
	}
	return &wordBlob{data: payload}, nil
}

// wordBlob is the little-endian uint32 word view over one frame's payload
// bytes.
type wordBlob struct {
	data []byte
}

func (b *wordBlob) Len() int {
	return len(b.data) / 4
}

func (b *wordBlob) Get(word int) (uint32, error) {
	off := word * 4
	if word < 0 || off+4 > len(b.data) {
		return 0, ErrOutOfRange
	}
	return binary.LittleEndian.Uint32(b.data[off : off+4]), nil
}

// Package blobio implements the Raw Blob Reader collaborator: it
// memory-maps a TDF binary peak-data file and hands the Frame Reader core
// byte-addressable, word-indexed views over individual frame blobs. The
// core only ever consumes the TdfBlob/BlobReader interfaces declared here;
// MmapReader is one concrete, default implementation of them.
package blobio

import "errors"

var (
	ErrOpenFailed      = errors.New("blobio: open failed")
	ErrReadFailed      = errors.New("blobio: read failed")
	ErrMalformedHeader = errors.New("blobio: malformed blob header")
	ErrOutOfRange      = errors.New("blobio: word index out of range")
)

// TdfBlob is a byte-addressable view over one frame's binary peak data,
// addressed in little-endian uint32 words. The decode layer never looks at
// raw bytes, only words (spec §4.A).
type TdfBlob interface {
	// Len reports the number of words available in the blob.
	Len() int
	// Get returns the k-th word, or an error if k is out of range.
	Get(word int) (uint32, error)
}

// BlobReader resolves a per-frame binary offset (Frames.TimsId) into a
// TdfBlob.
type BlobReader interface {
	Get(offset int) (TdfBlob, error)
	Close() error
}

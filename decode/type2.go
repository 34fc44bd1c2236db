package decode

import "github.com/galaxybio/go-tdf/blobio"

// DecodeType2 decodes a compression-type-2 frame blob (spec §4.A). No
// partial frame is ever returned: any out-of-range word fetch, an empty
// blob, or a blob whose (len - scan_count) is odd aborts before the peak
// arrays are allocated.
func DecodeType2(blob blobio.TdfBlob) (Decoded, error) {
	n := blob.Len()
	if n == 0 {
		return Decoded{}, ErrCorruptFrame
	}

	words := make([]uint32, n)
	for i := 0; i < n; i++ {
		w, err := blob.Get(i)
		if err != nil {
			return Decoded{}, ErrCorruptFrame
		}
		words[i] = w
	}

	return decodeWords(words)
}

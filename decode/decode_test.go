package decode

import (
	"reflect"
	"testing"

	"github.com/galaxybio/go-tdf/blobio"
)

// wordsBlob is a minimal in-memory TdfBlob for exercising decodeWords
// through DecodeType2 without touching a real mmap file.
type wordsBlob []uint32

func (b wordsBlob) Len() int { return len(b) }

func (b wordsBlob) Get(word int) (uint32, error) {
	if word < 0 || word >= len(b) {
		return 0, blobio.ErrOutOfRange
	}
	return b[word], nil
}

func TestDecodeType2_SingleScan(t *testing.T) {
	// spec §8 worked example 1: one scan, one peak (three words in all).
	blob := wordsBlob{1, 3, 7}
	got, err := DecodeType2(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Decoded{
		ScanOffsets: []int{0, 1},
		TofIndices:  []uint32{2},
		Intensities: []uint32{7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecodeType2_TwoScans(t *testing.T) {
	// spec §8 worked example 2: two scans, the first explicit, the second
	// implicit.
	blob := wordsBlob{2, 4, 5, 9, 3, 11}
	got, err := DecodeType2(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.ScanOffsets, []int{0, 2, 2}) {
		t.Fatalf("scan offsets = %v, want [0 2 2]", got.ScanOffsets)
	}
}

func TestDecodeType2_EmptyBlob(t *testing.T) {
	if _, err := DecodeType2(wordsBlob{}); err != ErrCorruptFrame {
		t.Fatalf("got %v, want ErrCorruptFrame", err)
	}
}

func TestDecodeType2_ScanCountOutOfRange(t *testing.T) {
	if _, err := DecodeType2(wordsBlob{5}); err != ErrCorruptFrame {
		t.Fatalf("got %v, want ErrCorruptFrame", err)
	}
}

func TestDecodeType2_OddRemainder(t *testing.T) {
	// scan_count=1 leaves 2 remaining words, which is even and fine; make
	// it 1 remaining word, which is odd and invalid.
	if _, err := DecodeType2(wordsBlob{1, 3}); err != ErrCorruptFrame {
		t.Fatalf("got %v, want ErrCorruptFrame", err)
	}
}

func TestDecodeType2_TofIndicesStrictlyIncreasingPerScan(t *testing.T) {
	blob := wordsBlob{2, 4, 5, 9, 3, 11}
	got, err := DecodeType2(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for scan := 0; scan < len(got.ScanOffsets)-1; scan++ {
		start, end := got.ScanOffsets[scan], got.ScanOffsets[scan+1]
		for i := start + 1; i < end; i++ {
			if got.TofIndices[i] <= got.TofIndices[i-1] {
				t.Fatalf("scan %d: tof indices not strictly increasing: %v", scan, got.TofIndices[start:end])
			}
		}
	}
}

func TestDecodeType2_OutOfRangeWordFetchAborts(t *testing.T) {
	bad := &truncatingBlob{wordsBlob{2, 4, 5, 9, 3, 11}, 4}
	if _, err := DecodeType2(bad); err != ErrCorruptFrame {
		t.Fatalf("got %v, want ErrCorruptFrame", err)
	}
}

// truncatingBlob reports a larger Len than it can actually serve past cutoff,
// simulating a corrupt/truncated blob.
type truncatingBlob struct {
	words  wordsBlob
	cutoff int
}

func (b *truncatingBlob) Len() int { return len(b.words) }

func (b *truncatingBlob) Get(word int) (uint32, error) {
	if word >= b.cutoff {
		return 0, blobio.ErrOutOfRange
	}
	return b.words[word], nil
}

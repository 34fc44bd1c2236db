package tdf

import "testing"

func TestFrame_ScanCountAndPeakCount(t *testing.T) {
	f := &Frame{
		ScanOffsets: []int{0, 2, 2, 5},
		Intensities: []uint32{1, 2, 3, 4, 5},
	}
	if got := f.ScanCount(); got != 3 {
		t.Fatalf("ScanCount() = %d, want 3", got)
	}
	if got := f.PeakCount(); got != 5 {
		t.Fatalf("PeakCount() = %d, want 5", got)
	}
}

func TestFrame_ScanCount_NoSkeleton(t *testing.T) {
	f := &Frame{}
	if got := f.ScanCount(); got != 0 {
		t.Fatalf("ScanCount() = %d, want 0", got)
	}
}

func TestFrame_GetCorrectedIntensity(t *testing.T) {
	f := &Frame{
		IntensityCorrectionFactor: 2.0,
		Intensities:               []uint32{10, 20},
	}
	if got := f.GetCorrectedIntensity(1); got != 40.0 {
		t.Fatalf("GetCorrectedIntensity(1) = %v, want 40", got)
	}
}

func TestFrame_IntensityCorrectionFactorValid(t *testing.T) {
	valid := &Frame{IntensityCorrectionFactor: 1.0 / 0.1}
	if !valid.IntensityCorrectionFactorValid() {
		t.Fatal("expected finite factor to be valid")
	}

	var accumulationTime float64
	invalid := &Frame{IntensityCorrectionFactor: 1.0 / accumulationTime}
	if invalid.IntensityCorrectionFactorValid() {
		t.Fatal("expected +Inf factor (accumulation_time=0) to be invalid")
	}
}

func TestFrame_Clone_IsIndependentCopy(t *testing.T) {
	original := &Frame{Index: 1, RtInSeconds: 1.5}
	clone := original.clone()

	clone.Index = 2
	if original.Index != 1 {
		t.Fatal("mutating clone affected original")
	}
}

func TestMsLevelFromMsMsType(t *testing.T) {
	cases := []struct {
		msMsType uint8
		want     MSLevel
	}{
		{0, MSLevelMS1},
		{8, MSLevelMS2},
		{9, MSLevelMS2},
		{42, MSLevelUnknown},
	}
	for _, c := range cases {
		if got := msLevelFromMsMsType(c.msMsType); got != c.want {
			t.Errorf("msLevelFromMsMsType(%d) = %v, want %v", c.msMsType, got, c.want)
		}
	}
}

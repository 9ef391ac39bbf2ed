package jpeg

import "testing"

func TestVLICategory(t *testing.T) {
	cases := []struct {
		v    int
		want int
	}{
		{0, 0}, {1, 1}, {-1, 1}, {5, 3}, {-5, 3}, {15, 4}, {-13, 4}, {100, 7}, {5, 3},
	}
	for _, c := range cases {
		if got := vliCategory(c.v); got != c.want {
			t.Errorf("vliCategory(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

// TestVLIBitsAdjustment checks the sign-adjusted VLI encoding worked
// examples: a negative value encodes as value + (2^category - 1); a
// positive value encodes as itself.
func TestVLIBitsAdjustment(t *testing.T) {
	cases := []struct {
		v, category int
		want        uint32
	}{
		{-5, 3, 2},
		{-13, 4, 2},
		{15, 4, 15},
		{5, 3, 5},
	}
	for _, c := range cases {
		if got := vliBits(c.v, c.category); got != c.want {
			t.Errorf("vliBits(%d, %d) = %d, want %d", c.v, c.category, got, c.want)
		}
	}
}

// TestRoundCoeffTruncatesHalfUp checks the bare trunc(x+0.5) rule: positive
// values round half up (2.5 to 3, 2.4 to 2), while negative values, ties
// and non-ties alike, move toward positive infinity rather than away from
// zero, so -2.5 rounds to -2, -2.4 to -1 and -0.5 to 0.
func TestRoundCoeffTruncatesHalfUp(t *testing.T) {
	cases := []struct {
		x    float64
		want int
	}{
		{2.5, 3}, {-2.5, -2}, {2.4, 2}, {-2.4, -1}, {0, 0}, {-0.5, 0},
	}
	for _, c := range cases {
		if got := roundCoeff(c.x); got != c.want {
			t.Errorf("roundCoeff(%v) = %d, want %d", c.x, got, c.want)
		}
	}
}

// TestBlockEncoderDCPredictorChain checks that the DC predictor carries
// across blocks: a first block whose rounded DC is 100 (predicted from 0)
// followed by a second block whose rounded DC is 105 encodes a DC diff of
// 100 then a DC diff of 5, with no error from either block despite the
// first diff needing a 7-bit category.
func TestBlockEncoderDCPredictorChain(t *testing.T) {
	dcTable, err := buildHuffmanTable(stdDCLumaSpec)
	if err != nil {
		t.Fatalf("buildHuffmanTable: %v", err)
	}
	acTable, err := buildHuffmanTable(stdACLumaSpec)
	if err != nil {
		t.Fatalf("buildHuffmanTable: %v", err)
	}
	enc := &blockEncoder{w: &bitWriter{}, dcTable: &dcTable, acTable: &acTable}

	var first [64]float64
	first[0] = 100
	dc1, err := enc.encodeBlock(&first, 0)
	if err != nil {
		t.Fatalf("first block: %v", err)
	}
	if dc1 != 100 {
		t.Fatalf("first block DC = %d, want 100", dc1)
	}

	var second [64]float64
	second[0] = 105
	dc2, err := enc.encodeBlock(&second, dc1)
	if err != nil {
		t.Fatalf("second block: %v", err)
	}
	if dc2 != 105 {
		t.Fatalf("second block DC = %d, want 105", dc2)
	}
	if diff := dc2 - dc1; diff != 5 {
		t.Fatalf("DC diff = %d, want 5", diff)
	}

	// Block 1: DC category 7 (11110), VLI 100 (1100100), EOB (1010).
	// Block 2: DC category 3 (100), VLI 5 (101), EOB (1010). Padded: F6 4A 96 80.
	if err := enc.w.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []byte{0xf6, 0x4a, 0x96, 0x80}
	if got := enc.w.bytes(); string(got) != string(want) {
		t.Fatalf("emitted %x, want %x", got, want)
	}
}

// TestBlockEncoderRejectsOversizeDCCategory checks that a DC diff needing
// more than the baseline 11-bit category limit is reported, not truncated.
func TestBlockEncoderRejectsOversizeDCCategory(t *testing.T) {
	dcTable, _ := buildHuffmanTable(stdDCLumaSpec)
	acTable, _ := buildHuffmanTable(stdACLumaSpec)
	enc := &blockEncoder{w: &bitWriter{}, dcTable: &dcTable, acTable: &acTable}

	var coeffs [64]float64
	coeffs[0] = 1 << 12 // category 13, over the 11-bit baseline limit
	if _, err := enc.encodeBlock(&coeffs, 0); err == nil {
		t.Fatal("expected an overflow error for an oversize DC category")
	}
}

// TestBlockEncoderZRLOnLongZeroRun checks that a run of 16 or more zero AC
// coefficients before a nonzero one emits ZRL symbols rather than growing
// the run/size nibble past 15.
func TestBlockEncoderZRLOnLongZeroRun(t *testing.T) {
	dcTable, _ := buildHuffmanTable(stdDCLumaSpec)
	acTable, _ := buildHuffmanTable(stdACLumaSpec)
	enc := &blockEncoder{w: &bitWriter{}, dcTable: &dcTable, acTable: &acTable}

	var coeffs [64]float64
	coeffs[20] = 1 // 19 zero ACs before index 20, forcing one ZRL then a run of 3
	if _, err := enc.encodeBlock(&coeffs, 0); err != nil {
		t.Fatalf("encodeBlock: %v", err)
	}
}

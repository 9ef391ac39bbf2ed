package jpeg

import "testing"

// TestScaleQuantTableQuality50IsIdentity checks that quality 50 reproduces
// the default table unchanged, the documented neutral point of the
// scaling formula.
func TestScaleQuantTableQuality50IsIdentity(t *testing.T) {
	scaled := scaleQuantTable(defaultLumaQuantTable, 50)
	if scaled != defaultLumaQuantTable {
		t.Errorf("quality 50: got %v, want unchanged default table", scaled)
	}
}

// TestScaleQuantTableClampsToRange checks both ends of the [1,255] clamp:
// quality 1 must keep every entry within [1,255] (the largest luma entry,
// 121, scales to 240), and quality 100 should floor every entry to 1.
func TestScaleQuantTableClampsToRange(t *testing.T) {
	low := scaleQuantTable(defaultLumaQuantTable, 1)
	for i, v := range low {
		if v < 1 || v > 255 {
			t.Fatalf("quality 1, entry %d = %d, out of [1,255]", i, v)
		}
	}
	high := scaleQuantTable(defaultLumaQuantTable, 100)
	for i, v := range high {
		if v != 1 {
			t.Fatalf("quality 100, entry %d = %d, want 1", i, v)
		}
	}
}

// TestHuffmanSpecsAccountForValues checks that every standard
// specification's BITS histogram sums to exactly the number of values it
// carries -- a malformed table here would make buildHuffmanTable fail for
// every encode.
func TestHuffmanSpecsAccountForValues(t *testing.T) {
	specs := map[string]huffmanSpec{
		"DC luma":   stdDCLumaSpec,
		"DC chroma": stdDCChromaSpec,
		"AC luma":   stdACLumaSpec,
		"AC chroma": stdACChromaSpec,
	}
	for name, spec := range specs {
		sum := 0
		for _, n := range spec.bits {
			sum += int(n)
		}
		if sum != len(spec.values) {
			t.Errorf("%s: bits histogram sums to %d, but %d values given", name, sum, len(spec.values))
		}
	}
}

package jpeg

import "testing"

// TestBuildHuffmanTableCanonicalCodesDCLuminance checks the codes assigned
// to the standard DC luminance specification against ITU-T T.81 Annex C's
// worked example: shorter categories get shorter codes, and the codes
// within one length count up from the previous length's last code,
// left-shifted.
func TestBuildHuffmanTableCanonicalCodesDCLuminance(t *testing.T) {
	table, err := buildHuffmanTable(stdDCLumaSpec)
	if err != nil {
		t.Fatalf("buildHuffmanTable: %v", err)
	}

	want := map[byte]huffmanCode{
		0:  {code: 0x000, size: 2},
		1:  {code: 0x002, size: 3},
		2:  {code: 0x003, size: 3},
		3:  {code: 0x004, size: 3},
		4:  {code: 0x005, size: 3},
		5:  {code: 0x006, size: 3},
		6:  {code: 0x00e, size: 4},
		7:  {code: 0x01e, size: 5},
		8:  {code: 0x03e, size: 6},
		9:  {code: 0x07e, size: 7},
		10: {code: 0x0fe, size: 8},
		11: {code: 0x1fe, size: 9},
	}
	for sym, w := range want {
		got, ok := table.lookup(sym)
		if !ok {
			t.Errorf("symbol %d: no code assigned", sym)
			continue
		}
		if got != w {
			t.Errorf("symbol %d: got %+v, want %+v", sym, got, w)
		}
	}
}

// TestBuildHuffmanTablePrefixFree checks that no assigned code is a prefix
// of another (the defining property of a canonical Huffman table), for
// every standard specification.
func TestBuildHuffmanTablePrefixFree(t *testing.T) {
	specs := []huffmanSpec{stdDCLumaSpec, stdDCChromaSpec, stdACLumaSpec, stdACChromaSpec}
	for _, spec := range specs {
		table, err := buildHuffmanTable(spec)
		if err != nil {
			t.Fatalf("buildHuffmanTable: %v", err)
		}
		var codes []huffmanCode
		for sym := 0; sym < 256; sym++ {
			if c, ok := table.lookup(byte(sym)); ok {
				codes = append(codes, c)
			}
		}
		for i := range codes {
			for j := range codes {
				if i == j {
					continue
				}
				if isPrefix(codes[i], codes[j]) {
					t.Errorf("code %+v is a prefix of %+v", codes[i], codes[j])
				}
			}
		}
	}
}

func isPrefix(a, b huffmanCode) bool {
	if a.size >= b.size {
		return false
	}
	return uint32(a.code) == uint32(b.code)>>(b.size-a.size)
}

// TestBuildHuffmanTableRejectsMismatchedSpec verifies a BITS histogram
// that doesn't account for every value is reported as an invalid
// specification rather than silently truncated or padded.
func TestBuildHuffmanTableRejectsMismatchedSpec(t *testing.T) {
	bad := huffmanSpec{
		bits:   [16]byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		values: []byte{0, 1}, // histogram only accounts for one symbol
	}
	if _, err := buildHuffmanTable(bad); err == nil {
		t.Fatal("expected an error for a mismatched BITS/values specification")
	}
}

package jpeg

import "fmt"

// huffmanCode is the (code, length) pair assigned to one symbol.
type huffmanCode struct {
	code uint16
	size uint8
}

// huffmanTable maps an 8-bit symbol to its canonical Huffman code. size 0
// means the symbol was never assigned a code.
type huffmanTable [256]huffmanCode

// buildHuffmanTable assigns canonical Huffman codes to the symbols in spec,
// following ITU-T T.81 Annex C exactly: codes of a given length are
// consecutive integers assigned in the order spec.values lists the symbols,
// and when the length grows by k the next code value is left-shifted by k. The terminator convention of
// skipping a would-be all-ones code of the maximum length (Annex C note)
// is irrelevant here because JPEG's BITS histograms never actually produce
// one for the standard tables, so it is not implemented.
func buildHuffmanTable(spec huffmanSpec) (huffmanTable, error) {
	var table huffmanTable

	// sizes[i] is the code length assigned to values[i], built by walking
	// the BITS histogram the same way fjpeg_generate_tables does.
	sizes := make([]uint8, 0, len(spec.values))
	for length := 1; length <= 16; length++ {
		for n := 0; n < int(spec.bits[length-1]); n++ {
			sizes = append(sizes, uint8(length))
		}
	}
	if len(sizes) != len(spec.values) {
		return table, fmt.Errorf("%w: bits histogram accounts for %d symbols, got %d values",
			ErrTableSpecInvalid, len(sizes), len(spec.values))
	}
	if len(spec.values) == 0 {
		return table, fmt.Errorf("%w: empty huffman specification", ErrTableSpecInvalid)
	}

	codes := make([]uint16, len(sizes))
	code := uint16(0)
	curSize := sizes[0]
	for i, size := range sizes {
		for size > curSize {
			code <<= 1
			curSize++
		}
		if curSize > 16 {
			return table, fmt.Errorf("%w: code length %d exceeds 16 bits", ErrTableSpecInvalid, curSize)
		}
		maxCode := uint32(1) << curSize
		if uint32(code) >= maxCode {
			return table, fmt.Errorf("%w: too many codes of length %d", ErrTableSpecInvalid, curSize)
		}
		codes[i] = code
		code++
	}

	for i, sym := range spec.values {
		table[sym] = huffmanCode{code: codes[i], size: sizes[i]}
	}
	return table, nil
}

// lookup returns the (code, length) for sym, and whether one was assigned.
func (t *huffmanTable) lookup(sym byte) (huffmanCode, bool) {
	c := t[sym]
	return c, c.size != 0
}

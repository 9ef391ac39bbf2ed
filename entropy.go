package jpeg

import (
	"fmt"
	"math"
)

// zrl and eob are the two reserved AC run/size symbols: a 16-zero run
// with no trailing coefficient (Zero Run Length) and End Of Block.
const (
	symZRL = 0xf0
	symEOB = 0x00
)

// vliCategory returns the smallest n such that |v| < 2^n, i.e. the number
// of bits needed to represent v's magnitude (the VLI "category" or "size").
// vliCategory(0) is 0.
func vliCategory(v int) int {
	if v < 0 {
		v = -v
	}
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

// vliBits returns the size-bit VLI encoding of v for the given category:
// v itself if v is non-negative, else v-1 with the sign bit implicitly
// flipped by the two's-complement-like adjustment T.81 F.1.2.1 describes
// (e.g. -5 in category 3 encodes as 2, +15 in category 4 encodes as 15).
func vliBits(v, category int) uint32 {
	if category == 0 {
		return 0
	}
	if v < 0 {
		v += (1 << uint(category)) - 1
	}
	return uint32(v) & ((1 << uint(category)) - 1)
}

// roundCoeff applies the rounding rule the entropy stage uses: a bare
// trunc(x + 0.5), with no sign branch, matching fjpeg_huffman.cpp's
// `(int)(block[i]+0.5f)` cast exactly. This is not a symmetric round --
// negative values round toward positive infinity rather than away from
// zero (e.g. -2.5 rounds to -2, not -3).
func roundCoeff(x float64) int {
	return int(math.Trunc(x + 0.5))
}

// blockEncoder entropy-codes a sequence of quantized, zig-zag-ordered
// coefficient blocks against a pair of Huffman tables, maintaining the
// per-channel DC predictor the caller is responsible for carrying across
// blocks of the same channel.
type blockEncoder struct {
	w       *bitWriter
	dcTable *huffmanTable
	acTable *huffmanTable
}

// encodeBlock entropy-codes one 8x8 block of zig-zag-ordered float
// coefficients, given the DC value predicted from the previous block of
// the same channel. It returns the DC value to use as the predictor for
// the next block of this channel.
func (e *blockEncoder) encodeBlock(coeffs *[64]float64, prevDC int) (int, error) {
	rounded := make([]int, 64)
	lastNonZero := -1
	for i, c := range coeffs {
		rounded[i] = roundCoeff(c)
		if rounded[i] != 0 {
			lastNonZero = i
		}
	}

	dc := rounded[0]
	diff := dc - prevDC
	dcCategory := vliCategory(diff)
	if dcCategory > maxDCCategory {
		return dc, fmt.Errorf("%w: DC category %d exceeds baseline limit %d", ErrEncodeOverflow, dcCategory, maxDCCategory)
	}
	dcCode, ok := e.dcTable.lookup(byte(dcCategory))
	if !ok {
		return dc, fmt.Errorf("%w: no DC huffman code for category %d", ErrTableSpecInvalid, dcCategory)
	}
	if err := e.w.writeBits(uint32(dcCode.code), uint(dcCode.size)); err != nil {
		return dc, err
	}
	if dcCategory > 0 {
		if err := e.w.writeBits(vliBits(diff, dcCategory), uint(dcCategory)); err != nil {
			return dc, err
		}
	}

	if lastNonZero <= 0 {
		// Every AC coefficient is zero: a single EOB closes the block
		// (or nothing at all, if lastNonZero == -1 and there was no DC
		// either -- but an EOB is still required to mark the block end
		// whenever any AC position exists).
		if err := e.emitEOB(); err != nil {
			return dc, err
		}
		return dc, nil
	}

	run := 0
	for i := 1; i <= lastNonZero; i++ {
		if rounded[i] == 0 {
			run++
			continue
		}
		for run >= 16 {
			if err := e.emitSymbol(symZRL); err != nil {
				return dc, err
			}
			run -= 16
		}
		acCategory := vliCategory(rounded[i])
		if acCategory > maxACCategory {
			return dc, fmt.Errorf("%w: AC category %d exceeds baseline limit %d", ErrEncodeOverflow, acCategory, maxACCategory)
		}
		sym := byte(run<<4 | acCategory)
		if err := e.emitSymbol(sym); err != nil {
			return dc, err
		}
		if err := e.w.writeBits(vliBits(rounded[i], acCategory), uint(acCategory)); err != nil {
			return dc, err
		}
		run = 0
	}
	if lastNonZero < 63 {
		if err := e.emitEOB(); err != nil {
			return dc, err
		}
	}
	return dc, nil
}

func (e *blockEncoder) emitSymbol(sym byte) error {
	code, ok := e.acTable.lookup(sym)
	if !ok {
		return fmt.Errorf("%w: no AC huffman code for symbol 0x%02x", ErrTableSpecInvalid, sym)
	}
	return e.w.writeBits(uint32(code.code), uint(code.size))
}

func (e *blockEncoder) emitEOB() error { return e.emitSymbol(symEOB) }

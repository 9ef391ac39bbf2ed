package jpeg

import "errors"

// Sentinel errors, one per failure category a caller needs to branch on.
// All encode failures are fatal: partial output is never usable and the
// caller should discard whatever bytes were written so far.
var (
	// ErrInvalidConfig is returned when a Request's fields are internally
	// inconsistent or out of range (bad quality, zero dimensions, an
	// unsupported channel count, a plane shorter than the geometry requires).
	ErrInvalidConfig = errors.New("jpeg: invalid configuration")

	// ErrIO wraps a failure writing to the destination io.Writer.
	ErrIO = errors.New("jpeg: i/o error")

	// ErrEncodeOverflow is returned when a computed quantity no longer fits
	// the bit width the bitstream format allows it (a DC/AC category above
	// the baseline limit, a segment length above 0xFFFF).
	ErrEncodeOverflow = errors.New("jpeg: encode overflow")

	// ErrTableSpecInvalid is returned when a Huffman table specification
	// (BITS/HUFFVAL) cannot be assigned canonical codes: too many symbols
	// for the given code-length histogram, or a length with more than
	// 2^length available codes already used.
	ErrTableSpecInvalid = errors.New("jpeg: invalid huffman table specification")
)

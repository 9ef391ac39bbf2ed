// Package jpeg implements a baseline (ITU-T T.81 / ISO/IEC 10918-1 SOF0,
// 8-bit, Huffman) JPEG encoder. It takes planar YCbCr 4:2:0 or 4:0:0 pixel
// data and produces a JFIF-wrapped JPEG stream.
//
// The package deliberately does not decode JPEG, does not convert color
// spaces, and does not implement progressive, hierarchical, arithmetic or
// 12-bit variants of the format: see Request for the exact input contract.
package jpeg

// marker byte values, as defined by ITU-T T.81 Annex B.
const (
	markerSOI  = 0xffd8 // Start Of Image
	markerEOI  = 0xffd9 // End Of Image
	markerAPP0 = 0xffe0 // Application segment 0 (JFIF)
	markerDQT  = 0xffdb // Define Quantization Table
	markerSOF0 = 0xffc0 // Start Of Frame, baseline DCT
	markerDHT  = 0xffc4 // Define Huffman Table
	markerSOS  = 0xffda // Start Of Scan
	markerCOM  = 0xfffe // Comment
)

// blockSize is the side length of a DCT block in samples.
const blockSize = 8

// zigzag maps natural (row-major) coefficient order to the zig-zag scan
// order used by both DQT payloads and the entropy-coded scan, per T.81
// Annex A Figure A.6.
var zigzag = [64]int{
	0, 1, 5, 6, 14, 15, 27, 28,
	2, 4, 7, 13, 16, 26, 29, 42,
	3, 8, 12, 17, 25, 30, 41, 43,
	9, 11, 18, 24, 31, 40, 44, 53,
	10, 19, 23, 32, 39, 45, 52, 54,
	20, 22, 33, 38, 46, 51, 55, 60,
	21, 34, 37, 47, 50, 56, 59, 61,
	35, 36, 48, 49, 57, 58, 62, 63,
}

// Channel identifies one of the three color components a plane can carry.
// A tagged variant is used here instead of a bare component index so that
// table/plane lookups can't silently index past a 3-element array with a
// stray integer.
type Channel int

const (
	Luma Channel = iota
	Cb
	Cr
)

func (c Channel) String() string {
	switch c {
	case Luma:
		return "Y"
	case Cb:
		return "Cb"
	case Cr:
		return "Cr"
	default:
		return "invalid channel"
	}
}

// isChroma reports whether c is subsampled relative to Luma.
func (c Channel) isChroma() bool { return c != Luma }

package jpeg

import (
	"fmt"
	"io"
)

// defaultQuality is used when a Request leaves Quality unset (zero).
const defaultQuality = 50

// defaultComment is the text carried in the COM segment when a Request
// leaves Comment empty, matching the original's "FJPEG <version>" banner.
const (
	moduleVersion  = "1.0.0"
	defaultComment = "FJPEG " + moduleVersion
)

// Request describes one image to encode: planar YCbCr 4:2:0 samples (or a
// single luma plane for grayscale), its true pixel dimensions, and the
// encoding quality.
//
// For Channels == 3, Cb and Cr must each be at least
// ((Width+1)/2)*((Height+1)/2) bytes, consistent with 4:2:0 subsampling
// (half the luma width and height, rounded up); Width and Height need not be
// multiples of 16 (8 for grayscale) -- edge blocks are padded internally
// by replicating the last row/column, and the original dimensions are
// still what gets recorded in the frame header.
type Request struct {
	Width, Height int
	Channels      int // 1 (grayscale) or 3 (YCbCr 4:2:0)
	Quality       int // 1..100; zero selects defaultQuality
	Y, Cb, Cr     []byte
	Comment       string // optional; defaults to defaultComment
}

func (r *Request) quality() int {
	if r.Quality == 0 {
		return defaultQuality
	}
	return r.Quality
}

func (r *Request) comment() string {
	if r.Comment == "" {
		return defaultComment
	}
	return r.Comment
}

func (r *Request) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidConfig, r.Width, r.Height)
	}
	if r.Channels != 1 && r.Channels != 3 {
		return fmt.Errorf("%w: channels must be 1 or 3, got %d", ErrInvalidConfig, r.Channels)
	}
	q := r.quality()
	if q < 1 || q > 100 {
		return fmt.Errorf("%w: quality must be in [1,100], got %d", ErrInvalidConfig, q)
	}
	if len(r.Y) < r.Width*r.Height {
		return fmt.Errorf("%w: Y plane too short: need %d bytes, got %d", ErrInvalidConfig, r.Width*r.Height, len(r.Y))
	}
	if r.Channels == 3 {
		cw, ch := (r.Width+1)/2, (r.Height+1)/2
		need := cw * ch
		if len(r.Cb) < need || len(r.Cr) < need {
			return fmt.Errorf("%w: Cb/Cr planes too short: need %d bytes each", ErrInvalidConfig, need)
		}
	}
	return nil
}

// Result is the encoded bitstream together with the segment structure
// Dump renders for diagnostics.
type Result struct {
	Bytes    []byte
	segments []segmentInfo
}

// segmentInfo records one marker this encoder emitted, for Dump.
type segmentInfo struct {
	marker uint16
	name   string
	length int
}

// encoderContext holds everything derived from a Request once for the
// duration of one Encode call: scaled tables, built Huffman codes, and the
// plane views the scanner walks. Nothing here is package-level state, so
// nothing prevents concurrent Encode calls.
type encoderContext struct {
	req *Request

	lumaQuant   [64]int
	chromaQuant [64]int

	dcLumaTable, acLumaTable     huffmanTable
	dcChromaTable, acChromaTable huffmanTable
}

func newEncoderContext(req *Request) (*encoderContext, error) {
	ctx := &encoderContext{req: req}
	q := req.quality()
	ctx.lumaQuant = scaleQuantTable(defaultLumaQuantTable, q)
	ctx.chromaQuant = scaleQuantTable(defaultChromaQuantTable, q)

	var err error
	if ctx.dcLumaTable, err = buildHuffmanTable(stdDCLumaSpec); err != nil {
		return nil, err
	}
	if ctx.acLumaTable, err = buildHuffmanTable(stdACLumaSpec); err != nil {
		return nil, err
	}
	if req.Channels == 3 {
		if ctx.dcChromaTable, err = buildHuffmanTable(stdDCChromaSpec); err != nil {
			return nil, err
		}
		if ctx.acChromaTable, err = buildHuffmanTable(stdACChromaSpec); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

func (ctx *encoderContext) quantFor(c Channel) *[64]int {
	if c == Luma {
		return &ctx.lumaQuant
	}
	return &ctx.chromaQuant
}

func (ctx *encoderContext) tablesFor(c Channel) (*huffmanTable, *huffmanTable) {
	if c == Luma {
		return &ctx.dcLumaTable, &ctx.acLumaTable
	}
	return &ctx.dcChromaTable, &ctx.acChromaTable
}

// Encode renders req as a complete baseline JPEG stream and writes it to
// w. It returns the number of bytes written and the first error
// encountered, which is always one of the sentinels in errors.go (wrapped
// with context).
func Encode(w io.Writer, req *Request) (int, error) {
	result, err := encode(req)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(result.Bytes)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return n, nil
}

// EncodeBytes is Encode without a caller-supplied sink; it also returns
// the segment structure for diagnostics (see Dump).
func EncodeBytes(req *Request) (*Result, error) {
	return encode(req)
}

func encode(req *Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ctx, err := newEncoderContext(req)
	if err != nil {
		return nil, err
	}

	sw := &segmentWriter{}
	sw.writeSOI()
	if err := sw.writeAPP0(); err != nil {
		return nil, err
	}
	if err := sw.writeDQT(0, ctx.lumaQuant); err != nil {
		return nil, err
	}
	if req.Channels == 3 {
		if err := sw.writeDQT(1, ctx.chromaQuant); err != nil {
			return nil, err
		}
	}

	components := frameComponents(req.Channels)
	if err := sw.writeSOF0(req.Width, req.Height, components); err != nil {
		return nil, err
	}

	if err := sw.writeDHT(
		dhtEntry{class: 0, destination: 0, spec: stdDCLumaSpec},
		dhtEntry{class: 1, destination: 0, spec: stdACLumaSpec},
	); err != nil {
		return nil, err
	}
	if req.Channels == 3 {
		if err := sw.writeDHT(
			dhtEntry{class: 0, destination: 1, spec: stdDCChromaSpec},
			dhtEntry{class: 1, destination: 1, spec: stdACChromaSpec},
		); err != nil {
			return nil, err
		}
	}

	if err := sw.writeCOM(req.comment()); err != nil {
		return nil, err
	}
	if err := sw.writeSOS(components); err != nil {
		return nil, err
	}

	scanBytes, err := encodeScan(req, ctx)
	if err != nil {
		return nil, err
	}
	sw.writeRaw(scanBytes)
	sw.writeEOI()

	return &Result{Bytes: sw.buf.Bytes(), segments: sw.segments}, nil
}

func frameComponents(channels int) []componentSpec {
	if channels == 1 {
		return []componentSpec{{id: 1, hSampling: 1, vSampling: 1, quantSel: 0, huffDC: 0, huffAC: 0}}
	}
	return []componentSpec{
		{id: 1, hSampling: 2, vSampling: 2, quantSel: 0, huffDC: 0, huffAC: 0}, // Y
		{id: 2, hSampling: 1, vSampling: 1, quantSel: 1, huffDC: 1, huffAC: 1}, // Cb
		{id: 3, hSampling: 1, vSampling: 1, quantSel: 1, huffDC: 1, huffAC: 1}, // Cr
	}
}

// encodeScan runs the plane scanner over req's planes in MCU order,
// transforms and entropy-codes every block, and returns the
// byte-stuffed, byte-aligned scan data.
func encodeScan(req *Request, ctx *encoderContext) ([]byte, error) {
	yPlane := &plane{samples: req.Y, width: req.Width, height: req.Height}
	var cbPlane, crPlane *plane
	color := req.Channels == 3
	if color {
		cw, ch := (req.Width+1)/2, (req.Height+1)/2
		cbPlane = &plane{samples: req.Cb, width: cw, height: ch}
		crPlane = &plane{samples: req.Cr, width: cw, height: ch}
	}

	w := &bitWriter{}
	w.setStuffing(true)

	prevDC := map[Channel]int{Luma: 0, Cb: 0, Cr: 0}
	channels := []Channel{Luma}
	if color {
		channels = append(channels, Cb, Cr)
	}
	encoders := make(map[Channel]*blockEncoder, len(channels))
	for _, c := range channels {
		dcTable, acTable := ctx.tablesFor(c)
		encoders[c] = &blockEncoder{w: w, dcTable: dcTable, acTable: acTable}
	}

	scanner := newMCUScanner(yPlane, cbPlane, crPlane, color)
	var scanErr error
	scanner.forEachMCU(func(units []mcuBlock) {
		if scanErr != nil {
			return
		}
		for _, u := range units {
			dctOut := forwardDCT8x8(&u.pixels)
			quantized := quantize(&dctOut, ctx.quantFor(u.channel))
			coeffs := zigzagScan(&quantized)
			dc, err := encoders[u.channel].encodeBlock(&coeffs, prevDC[u.channel])
			if err != nil {
				scanErr = err
				return
			}
			prevDC[u.channel] = dc
		}
	})
	if scanErr != nil {
		return nil, scanErr
	}
	if err := w.flush(); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

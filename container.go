package jpeg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// segmentWriter accumulates the header segments and entropy-coded scan of
// one JPEG stream, in the exact marker order SOI, APP0, DQT(s), SOF0,
// DHT(s), COM, SOS, <scan data>, EOI.
type segmentWriter struct {
	buf      bytes.Buffer
	segments []segmentInfo
}

func (s *segmentWriter) writeMarker(marker uint16) {
	binary.Write(&s.buf, binary.BigEndian, marker)
}

func (s *segmentWriter) writeSegment(marker uint16, payload []byte) error {
	if len(payload)+2 > 0xffff {
		return fmt.Errorf("%w: segment payload too large (%d bytes)", ErrEncodeOverflow, len(payload))
	}
	s.writeMarker(marker)
	binary.Write(&s.buf, binary.BigEndian, uint16(len(payload)+2))
	s.buf.Write(payload)
	s.segments = append(s.segments, segmentInfo{marker: marker, name: markerName(marker), length: len(payload) + 2})
	return nil
}

// writeSOI emits the Start Of Image marker.
func (s *segmentWriter) writeSOI() {
	s.writeMarker(markerSOI)
	s.segments = append(s.segments, segmentInfo{marker: markerSOI, name: "SOI"})
}

// writeEOI emits the End Of Image marker.
func (s *segmentWriter) writeEOI() {
	s.writeMarker(markerEOI)
	s.segments = append(s.segments, segmentInfo{marker: markerEOI, name: "EOI"})
}

// markerName returns a short mnemonic for a segment marker, used by Dump.
func markerName(marker uint16) string {
	switch marker {
	case markerAPP0:
		return "APP0"
	case markerDQT:
		return "DQT"
	case markerSOF0:
		return "SOF0"
	case markerDHT:
		return "DHT"
	case markerSOS:
		return "SOS"
	case markerCOM:
		return "COM"
	default:
		return fmt.Sprintf("0x%04x", marker)
	}
}

// writeAPP0 emits the JFIF APP0 segment with no thumbnail, density 1x1 in
// arbitrary units, version 1.02 -- matching fjpeg_generate_header exactly.
func (s *segmentWriter) writeAPP0() error {
	payload := []byte{
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02, // version 1.02
		0x00,       // units: arbitrary
		0x00, 0x01, // Xdensity
		0x00, 0x01, // Ydensity
		0x00, // thumbnail width
		0x00, // thumbnail height
	}
	return s.writeSegment(markerAPP0, payload)
}

// writeDQT emits one Define Quantization Table segment. tableID is 0 for
// luma, 1 for chroma; table is in natural order and is written zig-zag
// reordered, 8 bits of precision per entry (Pq=0).
func (s *segmentWriter) writeDQT(tableID byte, table [64]int) error {
	payload := make([]byte, 0, 65)
	payload = append(payload, tableID&0x0f) // Pq=0 (8-bit precision) << 4 | Tq
	zz := make([]byte, 64)
	for i, pos := range zigzag {
		zz[pos] = byte(table[i])
	}
	payload = append(payload, zz...)
	return s.writeSegment(markerDQT, payload)
}

// componentSpec describes one SOF0/SOS component entry.
type componentSpec struct {
	id        byte
	hSampling byte
	vSampling byte
	quantSel  byte
	huffDC    byte
	huffAC    byte
}

// writeSOF0 emits the baseline Start Of Frame segment.
func (s *segmentWriter) writeSOF0(width, height int, components []componentSpec) error {
	if width <= 0 || height <= 0 || width > 0xffff || height > 0xffff {
		return fmt.Errorf("%w: invalid frame dimensions %dx%d", ErrInvalidConfig, width, height)
	}
	payload := []byte{8} // sample precision
	var wh [4]byte
	binary.BigEndian.PutUint16(wh[0:2], uint16(height))
	binary.BigEndian.PutUint16(wh[2:4], uint16(width))
	payload = append(payload, wh[:]...)
	payload = append(payload, byte(len(components)))
	for _, c := range components {
		payload = append(payload, c.id, c.hSampling<<4|c.vSampling, c.quantSel)
	}
	return s.writeSegment(markerSOF0, payload)
}

// dhtEntry is one table definition within a DHT segment: class is 0 for
// DC, 1 for AC.
type dhtEntry struct {
	class, destination byte
	spec               huffmanSpec
}

// writeDHT emits one Define Huffman Table segment carrying one or more
// table definitions back to back -- a single DHT marker can define
// several tables, and this repo's encoder always bundles a component
// class's DC and AC tables into one segment, the way
// fjpeg_generate_header does. The Tc/Th nibble order within each entry
// (class high, destination low) follows T.81 exactly, avoiding the
// swapped-nibble bug spec'd as a historical pitfall.
func (s *segmentWriter) writeDHT(entries ...dhtEntry) error {
	var payload []byte
	for _, e := range entries {
		payload = append(payload, e.class<<4|e.destination)
		payload = append(payload, e.spec.bits[:]...)
		payload = append(payload, e.spec.values...)
	}
	return s.writeSegment(markerDHT, payload)
}

// writeCOM emits a Comment segment carrying text verbatim.
func (s *segmentWriter) writeCOM(text string) error {
	return s.writeSegment(markerCOM, []byte(text))
}

// writeSOS emits the Start Of Scan header (not the entropy-coded data that
// follows it, which the caller streams separately through a bitWriter).
func (s *segmentWriter) writeSOS(components []componentSpec) error {
	payload := []byte{byte(len(components))}
	for _, c := range components {
		payload = append(payload, c.id, c.huffDC<<4|c.huffAC)
	}
	payload = append(payload, 0, 63, 0) // Ss=0, Se=63, Ah=0|Al=0
	return s.writeSegment(markerSOS, payload)
}

// writeRaw appends already-encoded bytes (the entropy-coded scan) directly
// to the stream, with no marker framing.
func (s *segmentWriter) writeRaw(b []byte) { s.buf.Write(b) }

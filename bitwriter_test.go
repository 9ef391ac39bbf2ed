package jpeg

import (
	"bytes"
	"testing"
)

// TestBitWriterPacksAcrossWrites checks that two sub-byte writes combine
// MSB-first into a single output byte: 0b1011 followed by 0b1100 packs to
// 0b10111100 = 0xBC.
func TestBitWriterPacksAcrossWrites(t *testing.T) {
	w := &bitWriter{}
	if err := w.writeBits(0b1011, 4); err != nil {
		t.Fatalf("writeBits: %v", err)
	}
	if err := w.writeBits(0b1100, 4); err != nil {
		t.Fatalf("writeBits: %v", err)
	}
	if err := w.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []byte{0xbc}
	if got := w.bytes(); !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

// TestBitWriterStuffsFF checks that a literal 0xFF byte is followed by a
// stuffed 0x00 byte when stuffing is enabled, and is not when it's off.
func TestBitWriterStuffsFF(t *testing.T) {
	w := &bitWriter{}
	w.setStuffing(true)
	if err := w.writeBits(0xff, 8); err != nil {
		t.Fatalf("writeBits: %v", err)
	}
	if err := w.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []byte{0xff, 0x00}
	if got := w.bytes(); !bytes.Equal(got, want) {
		t.Errorf("stuffing on: got %x, want %x", got, want)
	}

	w2 := &bitWriter{}
	if err := w2.writeBits(0xff, 8); err != nil {
		t.Fatalf("writeBits: %v", err)
	}
	if err := w2.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want2 := []byte{0xff}
	if got := w2.bytes(); !bytes.Equal(got, want2) {
		t.Errorf("stuffing off: got %x, want %x", got, want2)
	}
}

// TestBitWriterFlushPadsLowSide checks that a partial trailing byte is
// padded with zero bits on the low side, not the high side.
func TestBitWriterFlushPadsLowSide(t *testing.T) {
	w := &bitWriter{}
	if err := w.writeBits(0b101, 3); err != nil {
		t.Fatalf("writeBits: %v", err)
	}
	if err := w.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []byte{0b10100000}
	if got := w.bytes(); !bytes.Equal(got, want) {
		t.Errorf("got %08b, want %08b", got[0], want[0])
	}
}

// TestBitWriterRejectsOversizeWrite checks the 24-bit single-write limit
// is enforced rather than silently truncated.
func TestBitWriterRejectsOversizeWrite(t *testing.T) {
	w := &bitWriter{}
	if err := w.writeBits(0, 25); err == nil {
		t.Fatal("expected an error for a 25-bit write")
	}
}

package wad_test

import (
	"bytes"
	"testing"

	"github.com/AlexMax/wadmake-go"
)

func TestReadU16LE(t *testing.T) {
	r := wad.NewBufferReader([]byte{0xFE, 0xFF})
	got, err := r.ReadU16()
	if err != nil {
		t.Fatalf("ReadU16: %v", err)
	}
	if got != 0xFFFE {
		t.Errorf("ReadU16 = %#x, want 0xfffe", got)
	}
}

func TestWriteU16LE(t *testing.T) {
	bw := wad.NewBufferWriter()
	if err := bw.WriteU16(0xFFFE); err != nil {
		t.Fatalf("WriteU16: %v", err)
	}
	if !bytes.Equal(bw.Bytes(), []byte{0xFE, 0xFF}) {
		t.Errorf("WriteU16 = % x, want fe ff", bw.Bytes())
	}
}

func TestReadU32LE(t *testing.T) {
	r := wad.NewBufferReader([]byte{0xFC, 0xFD, 0xFE, 0xFF})
	got, err := r.ReadU32()
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if got != 0xFFFEFDFC {
		t.Errorf("ReadU32 = %#x, want 0xfffefdfc", got)
	}
}

func TestWriteU32LE(t *testing.T) {
	bw := wad.NewBufferWriter()
	if err := bw.WriteU32(0xFFFEFDFC); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if !bytes.Equal(bw.Bytes(), []byte{0xFC, 0xFD, 0xFE, 0xFF}) {
		t.Errorf("WriteU32 = % x, want fc fd fe ff", bw.Bytes())
	}
}

func TestReadU64LE(t *testing.T) {
	r := wad.NewBufferReader([]byte{0xF8, 0xF9, 0xFA, 0xFB, 0xFC, 0xFD, 0xFE, 0xFF})
	got, err := r.ReadU64()
	if err != nil {
		t.Fatalf("ReadU64: %v", err)
	}
	if got != 0xFFFEFDFCFBFAF9F8 {
		t.Errorf("ReadU64 = %#x, want 0xfffefdfcfbfaf9f8", got)
	}
}

func TestWriteU64LE(t *testing.T) {
	bw := wad.NewBufferWriter()
	if err := bw.WriteU64(0xFFFEFDFCFBFAF9F8); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}
	want := []byte{0xF8, 0xF9, 0xFA, 0xFB, 0xFC, 0xFD, 0xFE, 0xFF}
	if !bytes.Equal(bw.Bytes(), want) {
		t.Errorf("WriteU64 = % x, want % x", bw.Bytes(), want)
	}
}

func TestReadFixedStringTruncatesAtNUL(t *testing.T) {
	r := wad.NewBufferReader([]byte{0x41, 0x42, 0x00, 0x44})
	got, err := r.ReadFixedString(4)
	if err != nil {
		t.Fatalf("ReadFixedString: %v", err)
	}
	if got != "AB" {
		t.Errorf("ReadFixedString = %q, want %q", got, "AB")
	}
}

func TestWriteFixedStringExactWidthNoTrailingNUL(t *testing.T) {
	bw := wad.NewBufferWriter()
	if err := bw.WriteFixedString("ABCDEFGH", 8); err != nil {
		t.Fatalf("WriteFixedString: %v", err)
	}
	if !bytes.Equal(bw.Bytes(), []byte("ABCDEFGH")) {
		t.Errorf("WriteFixedString(8/8) = % x, want the 8 bytes with no NUL", bw.Bytes())
	}
}

func TestWriteFixedStringPadsWithNUL(t *testing.T) {
	bw := wad.NewBufferWriter()
	if err := bw.WriteFixedString("AB", 8); err != nil {
		t.Fatalf("WriteFixedString: %v", err)
	}
	want := append([]byte("AB"), 0, 0, 0, 0, 0, 0)
	if !bytes.Equal(bw.Bytes(), want) {
		t.Errorf("WriteFixedString(2/8) = % x, want % x", bw.Bytes(), want)
	}
}

func TestReaderShortReadIsIoError(t *testing.T) {
	r := wad.NewBufferReader([]byte{0x01})
	_, err := r.ReadU32()
	ioErr, ok := err.(*wad.IoError)
	if !ok {
		t.Fatalf("expected *IoError, got %T: %v", err, err)
	}
	if ioErr.Expected != 4 {
		t.Errorf("Expected = %d, want 4", ioErr.Expected)
	}
}

func TestSeekSaveRestore(t *testing.T) {
	r := wad.NewBufferReader([]byte{1, 2, 3, 4, 5, 6})
	if err := r.SeekAbs(2); err != nil {
		t.Fatalf("SeekAbs: %v", err)
	}
	saved, err := r.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := r.ReadBytes(2); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if err := r.Restore(saved); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	pos, err := r.Tell()
	if err != nil {
		t.Fatalf("Tell: %v", err)
	}
	if pos != 2 {
		t.Errorf("Tell after restore = %d, want 2", pos)
	}
}

package wad

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Reader is the byte codec's read side: fixed-width little-endian
// scalars and fixed-length strings over a seekable source. All stream
// position discipline (save/restore around a nested read) is the
// caller's responsibility; Reader itself only moves by reading or when
// one of its seek methods is called.
type Reader struct {
	r   io.ReadSeeker
	buf [8]byte
}

// NewReader wraps a seekable byte source for reading.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r}
}

// NewBufferReader wraps an in-memory byte slice for reading. Nearly
// every caller in this module parses from a byte slice already held in
// memory (a WAD or ZIP lump body, an entire archive buffer), so this is
// the constructor most call sites reach for.
func NewBufferReader(b []byte) *Reader {
	return NewReader(bytes.NewReader(b))
}

func (r *Reader) fail(op string, n int, err error) error {
	if err == io.EOF && n == 0 {
		err = io.ErrUnexpectedEOF
	}
	return &IoError{Op: op, Expected: n, Err: err}
}

func (r *Reader) readFull(op string, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, r.fail(op, n, err)
	}
	return buf, nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.readFull("read_u8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.readFull("read_u16", 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.readFull("read_u32", 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.readFull("read_u64", 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.readFull("read_bytes", n)
}

// ReadFixedString reads n bytes and returns the prefix before the first
// NUL byte, or the whole n bytes if no NUL is present. The result is
// never NUL-terminated.
func (r *Reader) ReadFixedString(n int) (string, error) {
	b, err := r.readFull("read_fixed_string", n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

// Tell returns the current stream position.
func (r *Reader) Tell() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// SeekAbs moves to an absolute offset from the start of the stream.
func (r *Reader) SeekAbs(off int64) error {
	_, err := r.r.Seek(off, io.SeekStart)
	if err != nil {
		return r.fail("seek", 0, err)
	}
	return nil
}

// SeekRel moves by a relative offset from the current position.
func (r *Reader) SeekRel(delta int64) error {
	_, err := r.r.Seek(delta, io.SeekCurrent)
	if err != nil {
		return r.fail("seek", 0, err)
	}
	return nil
}

// Save captures the current position so the caller can restore it with
// Restore after a nested read, on both the success and failure paths
// (see spec §4.8 / §5's stream-position discipline).
func (r *Reader) Save() (int64, error) {
	return r.Tell()
}

// Restore seeks back to a position previously returned by Save.
func (r *Reader) Restore(pos int64) error {
	return r.SeekAbs(pos)
}

// Len reports the number of bytes remaining in the underlying stream,
// when it supports io.Seeker-based length discovery.
func (r *Reader) Len() (int64, error) {
	cur, err := r.Tell()
	if err != nil {
		return 0, err
	}
	end, err := r.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, r.fail("seek", 0, err)
	}
	if err := r.SeekAbs(cur); err != nil {
		return 0, err
	}
	return end - cur, nil
}

// Writer is the byte codec's write side: fixed-width little-endian
// scalars and NUL-padded fixed-length strings over a seekable sink.
type Writer struct {
	w io.WriteSeeker
}

// NewWriter wraps a seekable byte sink for writing.
func NewWriter(w io.WriteSeeker) *Writer {
	return &Writer{w: w}
}

// BufferWriter is a Writer backed by an in-memory, growable buffer; most
// emit call sites in this module build a whole WAD or ZIP image in
// memory before handing the final bytes to the caller.
type BufferWriter struct {
	*Writer
	buf *seekBuffer
}

// NewBufferWriter creates a Writer over a fresh in-memory buffer.
func NewBufferWriter() *BufferWriter {
	sb := &seekBuffer{}
	return &BufferWriter{Writer: NewWriter(sb), buf: sb}
}

// Bytes returns the accumulated output.
func (bw *BufferWriter) Bytes() []byte {
	return bw.buf.data
}

func (w *Writer) fail(op string, n int, err error) error {
	return &IoError{Op: op, Expected: n, Err: err}
}

func (w *Writer) writeAll(op string, b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return w.fail(op, len(b), err)
	}
	return nil
}

// WriteU8 writes one byte.
func (w *Writer) WriteU8(v uint8) error {
	return w.writeAll("write_u8", []byte{v})
}

// WriteI8 writes one signed byte.
func (w *Writer) WriteI8(v int8) error {
	return w.WriteU8(uint8(v))
}

// WriteU16 writes a little-endian uint16.
func (w *Writer) WriteU16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return w.writeAll("write_u16", b[:])
}

// WriteI16 writes a little-endian int16.
func (w *Writer) WriteI16(v int16) error {
	return w.WriteU16(uint16(v))
}

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.writeAll("write_u32", b[:])
}

// WriteI32 writes a little-endian int32.
func (w *Writer) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteU64 writes a little-endian uint64.
func (w *Writer) WriteU64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.writeAll("write_u64", b[:])
}

// WriteI64 writes a little-endian int64.
func (w *Writer) WriteI64(v int64) error {
	return w.WriteU64(uint64(v))
}

// WriteBytes writes a raw byte slice verbatim.
func (w *Writer) WriteBytes(b []byte) error {
	return w.writeAll("write_bytes", b)
}

// WriteFixedString writes the first min(len(s), n) bytes of s, then
// pads with NULs to n bytes. When len(s) == n exactly, no NUL is
// written — required for wire compatibility with readers that expect
// an unterminated 8-byte name field.
func (w *Writer) WriteFixedString(s string, n int) error {
	b := make([]byte, n)
	copy(b, s)
	return w.writeAll("write_fixed_string", b)
}

// Tell returns the current stream position.
func (w *Writer) Tell() (int64, error) {
	return w.w.Seek(0, io.SeekCurrent)
}

// SeekAbs moves to an absolute offset from the start of the stream.
func (w *Writer) SeekAbs(off int64) error {
	_, err := w.w.Seek(off, io.SeekStart)
	if err != nil {
		return w.fail("seek", 0, err)
	}
	return nil
}

// SeekRel moves by a relative offset from the current position.
func (w *Writer) SeekRel(delta int64) error {
	_, err := w.w.Seek(delta, io.SeekCurrent)
	if err != nil {
		return w.fail("seek", 0, err)
	}
	return nil
}

// Save captures the current position for a later Restore.
func (w *Writer) Save() (int64, error) {
	return w.Tell()
}

// Restore seeks back to a position previously returned by Save.
func (w *Writer) Restore(pos int64) error {
	return w.SeekAbs(pos)
}

// seekBuffer is a minimal io.WriteSeeker over a growable byte slice,
// used by BufferWriter. Writes at the current position overwrite
// existing bytes in place and extend the buffer when writing past the
// end, so a caller may seek back and overwrite earlier bytes
// (seekg/seekp-style random access). EmitWad and EmitZip themselves
// write strictly sequentially and never seek back.
type seekBuffer struct {
	data []byte
	pos  int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = b.pos + offset
	case io.SeekEnd:
		newPos = int64(len(b.data)) + offset
	default:
		return 0, &IoError{Op: "seek", Expected: 0, Err: io.ErrClosedPipe}
	}
	if newPos < 0 {
		return 0, &IoError{Op: "seek", Expected: 0, Err: io.ErrClosedPipe}
	}
	b.pos = newPos
	return newPos, nil
}

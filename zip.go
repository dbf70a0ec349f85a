package wad

import (
	"bytes"
	"hash/crc32"
	"io"
	"log"
	"math"

	"github.com/klauspost/compress/flate"
)

const (
	zipLocalMagic   = "PK\x03\x04"
	zipCentralMagic = "PK\x01\x02"
	zipEOCDMagic    = "PK\x05\x06"

	zipMethodStore   = 0
	zipMethodDeflate = 8

	zipEOCDSize = 22
)

// ParseZip parses a ZIP container out of buf and returns its Directory.
// Unlike Wad, Zip carries no container-level metadata of its own
// (comments, extra fields, and timestamps are discarded on read).
func ParseZip(buf []byte) (*Directory, error) {
	size := int64(len(buf))
	if size < zipEOCDSize {
		return nil, &TooSmallError{Size: size, Min: zipEOCDSize}
	}

	eocdPos, err := findEOCD(buf)
	if err != nil {
		return nil, err
	}

	r := NewBufferReader(buf)
	if err := r.SeekAbs(eocdPos + 4); err != nil {
		return nil, err
	}

	diskNum, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	cdStartDisk, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if diskNum != 0 || cdStartDisk != 0 {
		return nil, &UnsupportedMultiDiskError{}
	}

	entriesThisDisk, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	entriesTotal, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if entriesThisDisk != entriesTotal {
		return nil, &UnsupportedMultiDiskError{}
	}

	if _, err := r.ReadU32(); err != nil { // cd_size, unused on read
		return nil, err
	}
	cdOffset, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	if err := r.SeekAbs(int64(cdOffset)); err != nil {
		return nil, err
	}

	dir := NewDirectory()
	for i := uint16(0); i < entriesTotal; i++ {
		magic, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		if string(magic) != zipCentralMagic {
			return nil, &InvalidMagicError{Found: string(magic), Want: []string{zipCentralMagic}}
		}

		if _, err := r.ReadU16(); err != nil { // version made by
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // version needed
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // bit flag
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // method (re-read from local header)
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // mod time
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // mod date
			return nil, err
		}
		if _, err := r.ReadU32(); err != nil { // crc32
			return nil, err
		}
		if _, err := r.ReadU32(); err != nil { // compressed size
			return nil, err
		}
		if _, err := r.ReadU32(); err != nil { // uncompressed size
			return nil, err
		}
		nameLen, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		extraLen, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		commentLen, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // disk number start
			return nil, err
		}
		if _, err := r.ReadU16(); err != nil { // internal attrs
			return nil, err
		}
		if _, err := r.ReadU32(); err != nil { // external attrs
			return nil, err
		}
		localHeaderOfs, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadBytes(int(nameLen)); err != nil {
			return nil, err
		}
		if _, err := r.ReadBytes(int(extraLen)); err != nil {
			return nil, err
		}
		if _, err := r.ReadBytes(int(commentLen)); err != nil {
			return nil, err
		}

		saved, err := r.Save()
		if err != nil {
			return nil, err
		}
		if err := r.SeekAbs(int64(localHeaderOfs)); err != nil {
			return nil, err
		}
		name, data, err := parseLocalFile(r)
		if err != nil {
			return nil, err
		}
		if err := r.Restore(saved); err != nil {
			return nil, err
		}

		dir.PushBack(Lump{Name: name, Data: data})
	}

	log.Printf("zip: parsed %d lumps", dir.Len())

	return dir, nil
}

// findEOCD scans backward for the EOCD signature, starting at the last
// offset where a 22-byte EOCD record fits (len(buf)-22) and stopping
// after offset 0. The scan is not limited to the 65,535-byte ZIP
// comment window, and the EOCD's comment-length field is not checked.
func findEOCD(buf []byte) (int64, error) {
	pos := int64(len(buf)) - zipEOCDSize
	for pos >= 0 {
		if bytes.Equal(buf[pos:pos+4], []byte(zipEOCDMagic)) {
			return pos, nil
		}
		pos--
	}
	return 0, &NotZipError{}
}

// parseLocalFile reads one local file entry at r's current position and
// returns its name and decompressed payload.
func parseLocalFile(r *Reader) (string, []byte, error) {
	magic, err := r.ReadBytes(4)
	if err != nil {
		return "", nil, err
	}
	if string(magic) != zipLocalMagic {
		return "", nil, &InvalidMagicError{Found: string(magic), Want: []string{zipLocalMagic}}
	}

	if _, err := r.ReadU16(); err != nil { // version needed
		return "", nil, err
	}
	if _, err := r.ReadU16(); err != nil { // bit flag
		return "", nil, err
	}
	method, err := r.ReadU16()
	if err != nil {
		return "", nil, err
	}
	if _, err := r.ReadU16(); err != nil { // mod time
		return "", nil, err
	}
	if _, err := r.ReadU16(); err != nil { // mod date
		return "", nil, err
	}
	crc, err := r.ReadU32()
	if err != nil {
		return "", nil, err
	}
	compressedSize, err := r.ReadU32()
	if err != nil {
		return "", nil, err
	}
	uncompressedSize, err := r.ReadU32()
	if err != nil {
		return "", nil, err
	}
	nameLen, err := r.ReadU16()
	if err != nil {
		return "", nil, err
	}
	extraLen, err := r.ReadU16()
	if err != nil {
		return "", nil, err
	}
	nameBytes, err := r.ReadBytes(int(nameLen))
	if err != nil {
		return "", nil, err
	}
	if _, err := r.ReadBytes(int(extraLen)); err != nil {
		return "", nil, err
	}

	var raw []byte
	if compressedSize > 0 {
		compressed, err := r.ReadBytes(int(compressedSize))
		if err != nil {
			return "", nil, err
		}
		switch method {
		case zipMethodStore:
			raw = compressed
		case zipMethodDeflate:
			raw, err = inflateRaw(compressed, int(uncompressedSize))
			if err != nil {
				return "", nil, err
			}
		default:
			return "", nil, &UnsupportedCompressionError{Method: method}
		}
	} else {
		raw = []byte{}
	}

	if actual := crc32.ChecksumIEEE(raw); actual != crc {
		return "", nil, &CrcMismatchError{Expected: crc, Actual: actual}
	}

	return string(nameBytes), raw, nil
}

// inflateRaw decompresses a raw-deflate stream with an output budget of
// size bytes.
func inflateRaw(compressed []byte, size int) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, &IoError{Op: "inflate", Expected: size, Err: err}
	}
	return out, nil
}

// deflateRaw compresses raw with raw DEFLATE at the given level.
func deflateRaw(raw []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(raw); err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EmitZip serializes dir as a ZIP archive. For each lump, DEFLATE is
// tried first; if the compressed form is larger than the raw bytes,
// the lump is stored uncompressed instead. Pass WithForceStore
// or WithCompressionLevel to override this per-archive.
func EmitZip(dir *Directory, opts ...EmitZipOption) ([]byte, error) {
	cfg := newZipEmitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := dir.Len()
	if n > math.MaxUint16 {
		return nil, &TooManyError{Field: "lumps", Count: int64(n), Max: math.MaxUint16}
	}

	bw := NewBufferWriter()
	var central bytes.Buffer

	for i := 0; i < n; i++ {
		l, err := dir.At(i)
		if err != nil {
			return nil, err
		}
		if len(l.Name) > math.MaxUint16 {
			return nil, &NameTooLongError{Name: l.Name}
		}

		method := uint16(zipMethodStore)
		body := l.Data
		storedSize := len(l.Data)

		if !cfg.forceStore {
			compressed, err := deflateRaw(l.Data, cfg.level)
			if err != nil {
				return nil, err
			}
			if len(compressed) <= len(l.Data) {
				method = zipMethodDeflate
				body = compressed
				storedSize = len(compressed)
			}
		}

		localOfs, err := bw.Tell()
		if err != nil {
			return nil, err
		}
		crc := crc32.ChecksumIEEE(l.Data)

		if err := writeLocalHeader(bw.Writer, l.Name, method, crc, storedSize, len(l.Data)); err != nil {
			return nil, err
		}
		if err := bw.WriteBytes(body); err != nil {
			return nil, err
		}

		if err := writeCentralEntry(&central, l.Name, method, crc, storedSize, len(l.Data), localOfs); err != nil {
			return nil, err
		}
	}

	cdOffset, err := bw.Tell()
	if err != nil {
		return nil, err
	}
	if err := bw.WriteBytes(central.Bytes()); err != nil {
		return nil, err
	}

	if central.Len() > math.MaxUint32 {
		return nil, &OutOfRangeError{Field: "cd_size", Value: int64(central.Len()), Bound: math.MaxUint32}
	}
	if cdOffset > math.MaxUint32 {
		return nil, &OutOfRangeError{Field: "cd_offset", Value: cdOffset, Bound: math.MaxUint32}
	}

	if err := bw.WriteBytes([]byte(zipEOCDMagic)); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(0); err != nil { // disk number
		return nil, err
	}
	if err := bw.WriteU16(0); err != nil { // cd start disk
		return nil, err
	}
	if err := bw.WriteU16(uint16(n)); err != nil { // entries this disk
		return nil, err
	}
	if err := bw.WriteU16(uint16(n)); err != nil { // entries total
		return nil, err
	}
	if err := bw.WriteU32(uint32(central.Len())); err != nil {
		return nil, err
	}
	if err := bw.WriteU32(uint32(cdOffset)); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(0); err != nil { // comment length
		return nil, err
	}

	return bw.Bytes(), nil
}

func writeLocalHeader(w *Writer, name string, method uint16, crc uint32, compressedSize, uncompressedSize int) error {
	if err := w.WriteBytes([]byte(zipLocalMagic)); err != nil {
		return err
	}
	if err := w.WriteU16(8); err != nil { // version needed
		return err
	}
	if err := w.WriteU16(0); err != nil { // bit flag
		return err
	}
	if err := w.WriteU16(method); err != nil {
		return err
	}
	if err := w.WriteU16(0); err != nil { // mod time
		return err
	}
	if err := w.WriteU16(0); err != nil { // mod date
		return err
	}
	if err := w.WriteU32(crc); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(compressedSize)); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(uncompressedSize)); err != nil {
		return err
	}
	if err := w.WriteU16(uint16(len(name))); err != nil {
		return err
	}
	if err := w.WriteU16(0); err != nil { // extra length
		return err
	}
	return w.WriteBytes([]byte(name))
}

func writeCentralEntry(buf *bytes.Buffer, name string, method uint16, crc uint32, compressedSize, uncompressedSize int, localOfs int64) error {
	bw := NewBufferWriter()
	if err := bw.WriteBytes([]byte(zipCentralMagic)); err != nil {
		return err
	}
	if err := bw.WriteU16(8); err != nil { // version made by
		return err
	}
	if err := bw.WriteU16(8); err != nil { // version needed
		return err
	}
	if err := bw.WriteU16(0); err != nil { // bit flag
		return err
	}
	if err := bw.WriteU16(method); err != nil {
		return err
	}
	if err := bw.WriteU16(0); err != nil { // mod time
		return err
	}
	if err := bw.WriteU16(0); err != nil { // mod date
		return err
	}
	if err := bw.WriteU32(crc); err != nil {
		return err
	}
	if err := bw.WriteU32(uint32(compressedSize)); err != nil {
		return err
	}
	if err := bw.WriteU32(uint32(uncompressedSize)); err != nil {
		return err
	}
	if err := bw.WriteU16(uint16(len(name))); err != nil {
		return err
	}
	if err := bw.WriteU16(0); err != nil { // extra length
		return err
	}
	if err := bw.WriteU16(0); err != nil { // comment length
		return err
	}
	if err := bw.WriteU16(0); err != nil { // disk number start
		return err
	}
	if err := bw.WriteU16(0); err != nil { // internal attrs
		return err
	}
	if err := bw.WriteU32(0); err != nil { // external attrs
		return err
	}
	if err := bw.WriteU32(uint32(localOfs)); err != nil {
		return err
	}
	if err := bw.WriteBytes([]byte(name)); err != nil {
		return err
	}
	buf.Write(bw.Bytes())
	return nil
}

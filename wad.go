package wad

import (
	"bytes"
	"log"
	"math"
)

// Kind distinguishes a WAD's two on-disk identifiers.
type Kind int

const (
	KindNone Kind = iota
	KindIWAD
	KindPWAD
)

func (k Kind) String() string {
	switch k {
	case KindIWAD:
		return "IWAD"
	case KindPWAD:
		return "PWAD"
	default:
		return "NONE"
	}
}

func (k Kind) magic() string {
	switch k {
	case KindIWAD:
		return "IWAD"
	case KindPWAD:
		return "PWAD"
	default:
		return ""
	}
}

// Wad is a parsed or in-progress WAD archive: a type tag (IWAD/PWAD)
// plus its Directory of lumps.
type Wad struct {
	Kind  Kind
	Lumps *Directory
}

// NewWad returns an empty Wad of the given kind.
func NewWad(kind Kind) *Wad {
	return &Wad{Kind: kind, Lumps: NewDirectory()}
}

const wadHeaderSize = 12   // 4 (magic) + 4 (num_lumps) + 4 (infotable_ofs)
const wadInfotableEntrySize = 16 // 4 (file_ofs) + 4 (size) + 8 (name)

// ParseWad parses a WAD container out of buf, starting at region offset
// 0. All header offsets are treated as relative to the start of buf,
// which lets a WAD be embedded inside a larger stream (e.g. a lump of
// some other container) by slicing out its region first.
func ParseWad(buf []byte) (*Wad, error) {
	r := NewBufferReader(buf)

	magic, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}

	var kind Kind
	switch string(magic) {
	case "IWAD":
		kind = KindIWAD
	case "PWAD":
		kind = KindPWAD
	default:
		return nil, &InvalidMagicError{Found: string(magic), Want: []string{"IWAD", "PWAD"}}
	}

	numLumps, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if numLumps < 0 {
		return nil, &OutOfRangeError{Field: "num_lumps", Value: int64(numLumps), Bound: 0}
	}

	infotableOfs, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if infotableOfs < 0 {
		return nil, &OutOfRangeError{Field: "infotable_ofs", Value: int64(infotableOfs), Bound: 0}
	}

	if err := r.SeekAbs(int64(infotableOfs)); err != nil {
		return nil, err
	}

	dir := NewDirectory()
	for i := int32(0); i < numLumps; i++ {
		fileOfs, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		if size < 0 {
			return nil, &OutOfRangeError{Field: "size", Value: int64(size), Bound: 0}
		}
		name, err := r.ReadFixedString(8)
		if err != nil {
			return nil, err
		}

		var data []byte
		if size > 0 {
			if fileOfs < 0 {
				return nil, &OutOfRangeError{Field: "file_ofs", Value: int64(fileOfs), Bound: 0}
			}
			saved, err := r.Save()
			if err != nil {
				return nil, err
			}
			if err := r.SeekAbs(int64(fileOfs)); err != nil {
				return nil, err
			}
			data, err = r.ReadBytes(int(size))
			if err != nil {
				return nil, err
			}
			if err := r.Restore(saved); err != nil {
				return nil, err
			}
		} else {
			// size == 0: file_ofs may be garbage, ignore it entirely.
			data = []byte{}
		}

		dir.PushBack(Lump{Name: name, Data: data})
	}

	log.Printf("wad: parsed %s with %d lumps", kind, dir.Len())

	return &Wad{Kind: kind, Lumps: dir}, nil
}

// EmitWad serializes a Wad to bytes: magic, count, infotable_ofs, then
// the body region, then the infotable, in that order (count and
// infotable_ofs are written before the bodies, matching the layout the
// parser above — and every other reader in this ecosystem — expects;
// see spec §9 on the writer-ordering oddity this module does not
// reproduce).
func EmitWad(w *Wad) ([]byte, error) {
	if w.Kind == KindNone {
		return nil, &InvalidMagicError{Found: "NONE", Want: []string{"IWAD", "PWAD"}}
	}

	n := w.Lumps.Len()
	if n > math.MaxInt32 {
		return nil, &TooManyError{Field: "lumps", Count: int64(n), Max: math.MaxInt32}
	}

	var body bytes.Buffer
	type info struct {
		fileOfs int32
		size    int32
		name    string
	}
	infos := make([]info, 0, n)

	for i := 0; i < n; i++ {
		l, err := w.Lumps.At(i)
		if err != nil {
			return nil, err
		}
		if len(l.Name) > 8 {
			return nil, &NameTooLongError{Name: l.Name}
		}
		if len(l.Data) > math.MaxInt32 {
			return nil, &OutOfRangeError{Field: "size", Value: int64(len(l.Data)), Bound: math.MaxInt32}
		}

		fileOfs := int32(wadHeaderSize) + int32(body.Len())
		infos = append(infos, info{fileOfs: fileOfs, size: int32(len(l.Data)), name: l.Name})
		body.Write(l.Data)
	}

	infotableOfs := int32(wadHeaderSize) + int32(body.Len())

	bw := NewBufferWriter()
	if err := bw.WriteBytes([]byte(w.Kind.magic())); err != nil {
		return nil, err
	}
	if err := bw.WriteI32(int32(n)); err != nil {
		return nil, err
	}
	if err := bw.WriteI32(infotableOfs); err != nil {
		return nil, err
	}
	if err := bw.WriteBytes(body.Bytes()); err != nil {
		return nil, err
	}
	for _, it := range infos {
		if err := bw.WriteI32(it.fileOfs); err != nil {
			return nil, err
		}
		if err := bw.WriteI32(it.size); err != nil {
			return nil, err
		}
		if err := bw.WriteFixedString(it.name, 8); err != nil {
			return nil, err
		}
	}

	return bw.Bytes(), nil
}

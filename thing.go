package wad

// Thing is a Doom-format thing (monster/item/player-start) record: 10
// bytes on disk. Flags is an opaque 16-bit bag; this module does not
// interpret its bit semantics.
type Thing struct {
	X, Y  int16
	Angle uint16
	Type  uint16
	Flags uint16
}

// DecodeThing reads one Thing.
func DecodeThing(r *Reader) (Thing, error) {
	var t Thing
	var err error
	if t.X, err = r.ReadI16(); err != nil {
		return Thing{}, err
	}
	if t.Y, err = r.ReadI16(); err != nil {
		return Thing{}, err
	}
	if t.Angle, err = r.ReadU16(); err != nil {
		return Thing{}, err
	}
	if t.Type, err = r.ReadU16(); err != nil {
		return Thing{}, err
	}
	if t.Flags, err = r.ReadU16(); err != nil {
		return Thing{}, err
	}
	return t, nil
}

// Encode writes this Thing.
func (t Thing) Encode(w *Writer) error {
	if err := w.WriteI16(t.X); err != nil {
		return err
	}
	if err := w.WriteI16(t.Y); err != nil {
		return err
	}
	if err := w.WriteU16(t.Angle); err != nil {
		return err
	}
	if err := w.WriteU16(t.Type); err != nil {
		return err
	}
	return w.WriteU16(t.Flags)
}

// DecodeThings reads Thing records from r until the input is exhausted.
func DecodeThings(r *Reader) (*IMap[Thing], error) {
	m := NewIMap[Thing]()
	remaining, err := r.Len()
	if err != nil {
		return nil, err
	}
	for remaining >= 10 {
		t, err := DecodeThing(r)
		if err != nil {
			return nil, err
		}
		if _, err := m.PushBack(t); err != nil {
			return nil, err
		}
		remaining -= 10
	}
	return m, nil
}

// EncodeThings writes every Thing in m, in positional order.
func EncodeThings(w *Writer, m *IMap[Thing]) error {
	var err error
	m.Each(func(_ int, _ uint64, t Thing) {
		if err != nil {
			return
		}
		err = t.Encode(w)
	})
	return err
}

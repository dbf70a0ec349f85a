package wad

// Sector is a Doom map sector record: 26 bytes on disk.
type Sector struct {
	FloorHeight int16
	CeilHeight  int16
	FloorTex    string
	CeilTex     string
	Light       int16
	Special     int16
	Tag         int16
}

// DecodeSector reads one Sector.
func DecodeSector(r *Reader) (Sector, error) {
	var s Sector
	var err error
	if s.FloorHeight, err = r.ReadI16(); err != nil {
		return Sector{}, err
	}
	if s.CeilHeight, err = r.ReadI16(); err != nil {
		return Sector{}, err
	}
	if s.FloorTex, err = r.ReadFixedString(8); err != nil {
		return Sector{}, err
	}
	if s.CeilTex, err = r.ReadFixedString(8); err != nil {
		return Sector{}, err
	}
	if s.Light, err = r.ReadI16(); err != nil {
		return Sector{}, err
	}
	if s.Special, err = r.ReadI16(); err != nil {
		return Sector{}, err
	}
	if s.Tag, err = r.ReadI16(); err != nil {
		return Sector{}, err
	}
	return s, nil
}

// Encode writes this Sector.
func (s Sector) Encode(w *Writer) error {
	if err := w.WriteI16(s.FloorHeight); err != nil {
		return err
	}
	if err := w.WriteI16(s.CeilHeight); err != nil {
		return err
	}
	if err := w.WriteFixedString(s.FloorTex, 8); err != nil {
		return err
	}
	if err := w.WriteFixedString(s.CeilTex, 8); err != nil {
		return err
	}
	if err := w.WriteI16(s.Light); err != nil {
		return err
	}
	if err := w.WriteI16(s.Special); err != nil {
		return err
	}
	return w.WriteI16(s.Tag)
}

// DecodeSectors reads Sector records from r until the input is exhausted.
func DecodeSectors(r *Reader) (*IMap[Sector], error) {
	m := NewIMap[Sector]()
	remaining, err := r.Len()
	if err != nil {
		return nil, err
	}
	for remaining >= 26 {
		s, err := DecodeSector(r)
		if err != nil {
			return nil, err
		}
		if _, err := m.PushBack(s); err != nil {
			return nil, err
		}
		remaining -= 26
	}
	return m, nil
}

// EncodeSectors writes every Sector in m, in positional order.
func EncodeSectors(w *Writer, m *IMap[Sector]) error {
	var err error
	m.Each(func(_ int, _ uint64, s Sector) {
		if err != nil {
			return
		}
		err = s.Encode(w)
	})
	return err
}

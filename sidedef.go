package wad

// Sidedef is a Doom map sidedef record: 30 bytes on disk. SectorRef is
// a weak back-reference into the enclosing DoomMap's Sector IMap,
// stored on disk as an i16 ordinal.
type Sidedef struct {
	XOffset    int16
	YOffset    int16
	UpperTex   string
	MiddleTex  string
	LowerTex   string
	SectorRef  WeakRef[Sector]
}

// DecodeSidedef reads one Sidedef. sectors resolves the on-disk
// ordinal to a weak reference; an ordinal out of range of sectors
// leaves SectorRef empty rather than failing (spec §4.5: only Linedef
// decode treats an unresolved reference as a hard error).
func DecodeSidedef(r *Reader, sectors *IMap[Sector]) (Sidedef, error) {
	var s Sidedef
	var err error
	if s.XOffset, err = r.ReadI16(); err != nil {
		return Sidedef{}, err
	}
	if s.YOffset, err = r.ReadI16(); err != nil {
		return Sidedef{}, err
	}
	if s.UpperTex, err = r.ReadFixedString(8); err != nil {
		return Sidedef{}, err
	}
	if s.MiddleTex, err = r.ReadFixedString(8); err != nil {
		return Sidedef{}, err
	}
	if s.LowerTex, err = r.ReadFixedString(8); err != nil {
		return Sidedef{}, err
	}
	sectorOrd, err := r.ReadI16()
	if err != nil {
		return Sidedef{}, err
	}
	if sectorOrd >= 0 && int(sectorOrd) < sectors.Len() {
		id, err := sectors.IDAt(int(sectorOrd))
		if err != nil {
			return Sidedef{}, err
		}
		s.SectorRef = sectors.WeakOfID(id)
	}
	return s, nil
}

// Encode writes this Sidedef. The referent's current position is
// looked up in sectors; an empty SectorRef encodes ordinal 0, a
// well-formed-input precondition per spec §4.5/§9 (a properly formed
// Sidedef always references a Sector; this is asserted by tests, not
// enforced here).
func (s Sidedef) Encode(w *Writer, sectors *IMap[Sector]) error {
	if err := w.WriteI16(s.XOffset); err != nil {
		return err
	}
	if err := w.WriteI16(s.YOffset); err != nil {
		return err
	}
	if err := w.WriteFixedString(s.UpperTex, 8); err != nil {
		return err
	}
	if err := w.WriteFixedString(s.MiddleTex, 8); err != nil {
		return err
	}
	if err := w.WriteFixedString(s.LowerTex, 8); err != nil {
		return err
	}

	ord := int16(0)
	if pos, ok := s.SectorRef.Position(sectors); ok {
		ord = int16(pos)
	}
	return w.WriteI16(ord)
}

// DecodeSidedefs reads Sidedef records from r until the input is
// exhausted.
func DecodeSidedefs(r *Reader, sectors *IMap[Sector]) (*IMap[Sidedef], error) {
	m := NewIMap[Sidedef]()
	remaining, err := r.Len()
	if err != nil {
		return nil, err
	}
	for remaining >= 30 {
		s, err := DecodeSidedef(r, sectors)
		if err != nil {
			return nil, err
		}
		if _, err := m.PushBack(s); err != nil {
			return nil, err
		}
		remaining -= 30
	}
	return m, nil
}

// EncodeSidedefs writes every Sidedef in m, in positional order.
func EncodeSidedefs(w *Writer, m *IMap[Sidedef], sectors *IMap[Sector]) error {
	var err error
	m.Each(func(_ int, _ uint64, s Sidedef) {
		if err != nil {
			return
		}
		err = s.Encode(w, sectors)
	})
	return err
}

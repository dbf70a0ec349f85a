package wad

// Linedef is a Doom-format linedef record: 14 bytes on disk.
// VStart/VEnd are required weak references into the Vertex IMap; Front/
// Back are optional weak references into the Sidedef IMap (ordinal −1
// encodes "no sidedef").
type Linedef struct {
	VStart  WeakRef[Vertex]
	VEnd    WeakRef[Vertex]
	Flags   uint16
	Special int16
	Tag     int16
	Front   WeakRef[Sidedef]
	Back    WeakRef[Sidedef]
}

// DecodeLinedef reads one Linedef, resolving its references against
// vertexes and sidedefs. An unresolvable VStart/VEnd ordinal, or a
// sidedef ordinal other than −1 that is out of range, both fail with
// DanglingRefError.
func DecodeLinedef(r *Reader, vertexes *IMap[Vertex], sidedefs *IMap[Sidedef]) (Linedef, error) {
	var l Linedef

	vStartOrd, err := r.ReadI16()
	if err != nil {
		return Linedef{}, err
	}
	vEndOrd, err := r.ReadI16()
	if err != nil {
		return Linedef{}, err
	}

	if l.VStart, err = resolveRequired(vertexes, vStartOrd, "Linedef", "v_start"); err != nil {
		return Linedef{}, err
	}
	if l.VEnd, err = resolveRequired(vertexes, vEndOrd, "Linedef", "v_end"); err != nil {
		return Linedef{}, err
	}

	flags, err := r.ReadU16()
	if err != nil {
		return Linedef{}, err
	}
	l.Flags = flags

	if l.Special, err = r.ReadI16(); err != nil {
		return Linedef{}, err
	}
	if l.Tag, err = r.ReadI16(); err != nil {
		return Linedef{}, err
	}

	frontOrd, err := r.ReadI16()
	if err != nil {
		return Linedef{}, err
	}
	backOrd, err := r.ReadI16()
	if err != nil {
		return Linedef{}, err
	}

	if l.Front, err = resolveSide(sidedefs, frontOrd); err != nil {
		return Linedef{}, err
	}
	if l.Back, err = resolveSide(sidedefs, backOrd); err != nil {
		return Linedef{}, err
	}

	return l, nil
}

func resolveRequired(vertexes *IMap[Vertex], ord int16, record, field string) (WeakRef[Vertex], error) {
	if ord < 0 || int(ord) >= vertexes.Len() {
		return WeakRef[Vertex]{}, &DanglingRefError{Record: record, Field: field}
	}
	id, err := vertexes.IDAt(int(ord))
	if err != nil {
		return WeakRef[Vertex]{}, err
	}
	return vertexes.WeakOfID(id), nil
}

func resolveSide(sidedefs *IMap[Sidedef], ord int16) (WeakRef[Sidedef], error) {
	if ord == -1 {
		return WeakRef[Sidedef]{}, nil
	}
	if ord < 0 || int(ord) >= sidedefs.Len() {
		return WeakRef[Sidedef]{}, &DanglingRefError{Record: "Linedef", Field: "side"}
	}
	id, err := sidedefs.IDAt(int(ord))
	if err != nil {
		return WeakRef[Sidedef]{}, err
	}
	return sidedefs.WeakOfID(id), nil
}

// Encode writes this Linedef. VStart/VEnd must resolve in vertexes or
// encoding fails with DanglingRefError; Front/Back encode their current
// position if present, else −1.
func (l Linedef) Encode(w *Writer, vertexes *IMap[Vertex], sidedefs *IMap[Sidedef]) error {
	vStartPos, ok := l.VStart.Position(vertexes)
	if !ok {
		return &DanglingRefError{Record: "Linedef", Field: "v_start"}
	}
	vEndPos, ok := l.VEnd.Position(vertexes)
	if !ok {
		return &DanglingRefError{Record: "Linedef", Field: "v_end"}
	}

	if err := w.WriteI16(int16(vStartPos)); err != nil {
		return err
	}
	if err := w.WriteI16(int16(vEndPos)); err != nil {
		return err
	}
	if err := w.WriteU16(l.Flags); err != nil {
		return err
	}
	if err := w.WriteI16(l.Special); err != nil {
		return err
	}
	if err := w.WriteI16(l.Tag); err != nil {
		return err
	}

	frontOrd := int16(-1)
	if pos, ok := l.Front.Position(sidedefs); ok {
		frontOrd = int16(pos)
	}
	if err := w.WriteI16(frontOrd); err != nil {
		return err
	}

	backOrd := int16(-1)
	if pos, ok := l.Back.Position(sidedefs); ok {
		backOrd = int16(pos)
	}
	return w.WriteI16(backOrd)
}

// DecodeLinedefs reads Linedef records from r until the input is
// exhausted.
func DecodeLinedefs(r *Reader, vertexes *IMap[Vertex], sidedefs *IMap[Sidedef]) (*IMap[Linedef], error) {
	m := NewIMap[Linedef]()
	remaining, err := r.Len()
	if err != nil {
		return nil, err
	}
	for remaining >= 14 {
		l, err := DecodeLinedef(r, vertexes, sidedefs)
		if err != nil {
			return nil, err
		}
		if _, err := m.PushBack(l); err != nil {
			return nil, err
		}
		remaining -= 14
	}
	return m, nil
}

// EncodeLinedefs writes every Linedef in m, in positional order.
func EncodeLinedefs(w *Writer, m *IMap[Linedef], vertexes *IMap[Vertex], sidedefs *IMap[Sidedef]) error {
	var err error
	m.Each(func(_ int, _ uint64, l Linedef) {
		if err != nil {
			return
		}
		err = l.Encode(w, vertexes, sidedefs)
	})
	return err
}

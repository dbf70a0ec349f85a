package wad

// Vertex is a Doom map's (x, y) coordinate record: 4 bytes on disk.
type Vertex struct {
	X, Y int16
}

// DecodeVertex reads one Vertex.
func DecodeVertex(r *Reader) (Vertex, error) {
	x, err := r.ReadI16()
	if err != nil {
		return Vertex{}, err
	}
	y, err := r.ReadI16()
	if err != nil {
		return Vertex{}, err
	}
	return Vertex{X: x, Y: y}, nil
}

// Encode writes this Vertex.
func (v Vertex) Encode(w *Writer) error {
	if err := w.WriteI16(v.X); err != nil {
		return err
	}
	return w.WriteI16(v.Y)
}

// DecodeVertexes reads Vertex records from r until the input is
// exhausted; the WAD lump's length implicitly bounds the sequence,
// there is no count prefix on disk.
func DecodeVertexes(r *Reader) (*IMap[Vertex], error) {
	m := NewIMap[Vertex]()
	remaining, err := r.Len()
	if err != nil {
		return nil, err
	}
	for remaining >= 4 {
		v, err := DecodeVertex(r)
		if err != nil {
			return nil, err
		}
		if _, err := m.PushBack(v); err != nil {
			return nil, err
		}
		remaining -= 4
	}
	return m, nil
}

// EncodeVertexes writes every Vertex in m, in positional order.
func EncodeVertexes(w *Writer, m *IMap[Vertex]) error {
	var err error
	m.Each(func(_ int, _ uint64, v Vertex) {
		if err != nil {
			return
		}
		err = v.Encode(w)
	})
	return err
}

package wad

// Directory is an ordered sequence of Lumps. Two Lumps at different
// positions may share the same name. A Directory owns its Lumps and
// is, in turn, owned by whatever Wad or Zip produced it; it carries no
// back-reference to its owner and has no thread-safety guarantee of its
// own (spec §5).
type Directory struct {
	lumps []Lump
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Len returns the number of lumps.
func (d *Directory) Len() int {
	return len(d.lumps)
}

// At returns the lump at 0-based position pos.
func (d *Directory) At(pos int) (Lump, error) {
	if pos < 0 || pos >= len(d.lumps) {
		return Lump{}, &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(d.lumps))}
	}
	return d.lumps[pos], nil
}

// Set overwrites the lump at 0-based position pos.
func (d *Directory) Set(pos int, l Lump) error {
	if pos < 0 || pos >= len(d.lumps) {
		return &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(d.lumps))}
	}
	d.lumps[pos] = l
	return nil
}

// PushBack appends a lump to the end of the directory.
func (d *Directory) PushBack(l Lump) {
	d.lumps = append(d.lumps, l)
}

// InsertAt inserts l at 0-based position pos, shifting later lumps up
// by one.
func (d *Directory) InsertAt(pos int, l Lump) error {
	if pos < 0 || pos > len(d.lumps) {
		return &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(d.lumps))}
	}
	d.lumps = append(d.lumps, Lump{})
	copy(d.lumps[pos+1:], d.lumps[pos:])
	d.lumps[pos] = l
	return nil
}

// EraseAt removes the lump at 0-based position pos.
func (d *Directory) EraseAt(pos int) error {
	if pos < 0 || pos >= len(d.lumps) {
		return &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(d.lumps))}
	}
	d.lumps = append(d.lumps[:pos], d.lumps[pos+1:]...)
	return nil
}

// Find returns the position of the first lump at or after start (both
// 0-based) whose name equals name, or ok=false if none matches.
func (d *Directory) Find(name string, start int) (pos int, ok bool) {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(d.lumps); i++ {
		if d.lumps[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Each calls fn for every lump in positional order.
func (d *Directory) Each(fn func(pos int, l Lump)) {
	for i, l := range d.lumps {
		fn(i, l)
	}
}

// CopyRange copies the half-open position range [start, end) from src
// to this Directory, inserting at dstPos. src and this Directory may be
// the same object (self-copy): the source range is staged into a
// temporary slice before any mutation, so a self-copy into the middle
// of its own source range never observes partially-shifted data.
func (d *Directory) CopyRange(src *Directory, start, end, dstPos int) error {
	if start < 0 || end > len(src.lumps) || start > end {
		return &OutOfRangeError{Field: "range", Value: int64(start), Bound: int64(len(src.lumps))}
	}
	if dstPos < 0 || dstPos > len(d.lumps) {
		return &OutOfRangeError{Field: "position", Value: int64(dstPos), Bound: int64(len(d.lumps))}
	}

	staged := make([]Lump, end-start)
	copy(staged, src.lumps[start:end])

	d.lumps = append(d.lumps, make([]Lump, len(staged))...)
	copy(d.lumps[dstPos+len(staged):], d.lumps[dstPos:])
	copy(d.lumps[dstPos:], staged)
	return nil
}

package wad

// DirectoryHandle wraps a Directory with the host-facing Find
// convention a scripting binding would expose: start is 1-based, and
// a negative start counts back from the last lump (-1 is the last
// lump, -2 the one before it, and so on). Directory itself stays
// 0-based throughout; this wrapper only exists at the API boundary,
// mirroring how the original's Lua binding normalized arguments
// before calling into its 0-based core.
type DirectoryHandle struct {
	Dir *Directory
}

// NewDirectoryHandle wraps dir for host-facing, 1-based access.
func NewDirectoryHandle(dir *Directory) DirectoryHandle {
	return DirectoryHandle{Dir: dir}
}

// Find normalizes start to Directory's 0-based convention, searches,
// and returns the match as a 1-based position.
func (h DirectoryHandle) Find(name string, start int) (int, bool) {
	n := h.Dir.Len()

	var zero int
	if start < 0 {
		zero = n + start
	} else if start == 0 {
		zero = 0
	} else {
		zero = start - 1
	}
	if zero < 0 {
		zero = 0
	}
	if zero > n {
		return 0, false
	}

	pos, ok := h.Dir.Find(name, zero)
	if !ok {
		return 0, false
	}
	return pos + 1, true
}

// At returns the lump at the 1-based position pos.
func (h DirectoryHandle) At(pos int) (Lump, error) {
	return h.Dir.At(pos - 1)
}

// Set replaces the lump at the 1-based position pos.
func (h DirectoryHandle) Set(pos int, l Lump) error {
	return h.Dir.Set(pos-1, l)
}

// InsertAt inserts l before the 1-based position pos.
func (h DirectoryHandle) InsertAt(pos int, l Lump) error {
	return h.Dir.InsertAt(pos-1, l)
}

// EraseAt removes the lump at the 1-based position pos.
func (h DirectoryHandle) EraseAt(pos int) error {
	return h.Dir.EraseAt(pos - 1)
}

// Len returns the number of lumps.
func (h DirectoryHandle) Len() int {
	return h.Dir.Len()
}

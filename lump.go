package wad

// Lump is a named byte blob, the unit of storage in both WAD and ZIP
// containers. Names are compared byte-exact (case-sensitive) and are
// not required to be unique within a Directory. Data is owned by the
// Lump; callers that need to retain a Lump's bytes beyond a mutation of
// its Directory should copy them.
type Lump struct {
	Name string
	Data []byte
}

// NewLump constructs a Lump, failing if name is longer than 8 bytes
// (the on-disk width of a WAD infotable name). ParseZip builds its
// Lumps directly and keeps member names of any length, and EmitZip
// accepts names up to 65,535 bytes.
func NewLump(name string, data []byte) (Lump, error) {
	if len(name) > 8 {
		return Lump{}, &NameTooLongError{Name: name}
	}
	return Lump{Name: name, Data: data}, nil
}

// Clone returns a Lump with its own copy of Data, so mutating the copy
// never affects the original.
func (l Lump) Clone() Lump {
	data := make([]byte, len(l.Data))
	copy(data, l.Data)
	return Lump{Name: l.Name, Data: data}
}

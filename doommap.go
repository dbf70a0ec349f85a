package wad

// DoomMap is the aggregate of a Doom map's five record collections plus
// five opaque BSP-output blobs that this module never interprets.
type DoomMap struct {
	Things   *IMap[Thing]
	Linedefs *IMap[Linedef]
	Sidedefs *IMap[Sidedef]
	Vertexes *IMap[Vertex]
	Sectors  *IMap[Sector]

	Segs     []byte
	SSectors []byte
	Nodes    []byte
	Reject   []byte
	Blockmap []byte
}

// NewDoomMap returns an empty DoomMap.
func NewDoomMap() *DoomMap {
	return &DoomMap{
		Things:   NewIMap[Thing](),
		Linedefs: NewIMap[Linedef](),
		Sidedefs: NewIMap[Sidedef](),
		Vertexes: NewIMap[Vertex](),
		Sectors:  NewIMap[Sector](),
	}
}

// GetThing returns the Thing at the 1-based position pos.
func (m *DoomMap) GetThing(pos int) (Thing, error) {
	return m.Things.At(pos - 1)
}

// SetThing replaces the Thing at the 1-based position pos.
func (m *DoomMap) SetThing(pos int, t Thing) error {
	return m.Things.Set(pos-1, t)
}

// GetVertex returns the Vertex at the 1-based position pos.
func (m *DoomMap) GetVertex(pos int) (Vertex, error) {
	return m.Vertexes.At(pos - 1)
}

// SetVertex replaces the Vertex at the 1-based position pos.
func (m *DoomMap) SetVertex(pos int, v Vertex) error {
	return m.Vertexes.Set(pos-1, v)
}

// GetSector returns the Sector at the 1-based position pos.
func (m *DoomMap) GetSector(pos int) (Sector, error) {
	return m.Sectors.At(pos - 1)
}

// SetSector replaces the Sector at the 1-based position pos.
func (m *DoomMap) SetSector(pos int, s Sector) error {
	return m.Sectors.Set(pos-1, s)
}

// GetSidedef returns the Sidedef at the 1-based position pos.
func (m *DoomMap) GetSidedef(pos int) (Sidedef, error) {
	return m.Sidedefs.At(pos - 1)
}

// SetSidedef replaces the Sidedef at the 1-based position pos.
func (m *DoomMap) SetSidedef(pos int, s Sidedef) error {
	return m.Sidedefs.Set(pos-1, s)
}

// GetLinedef returns the Linedef at the 1-based position pos.
func (m *DoomMap) GetLinedef(pos int) (Linedef, error) {
	return m.Linedefs.At(pos - 1)
}

// SetLinedef replaces the Linedef at the 1-based position pos.
func (m *DoomMap) SetLinedef(pos int, l Linedef) error {
	return m.Linedefs.Set(pos-1, l)
}

// mapLumpNames is the fixed order of the 10 data lumps following a map's
// header lump, per spec §4.5.
var mapLumpNames = [10]string{
	"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES",
	"SEGS", "SSECTORS", "NODES", "SECTORS",
	"REJECT", "BLOCKMAP",
}

// UnpackMap reads the 11-lump run starting at 0-based position i of dir
// (the header lump at i, then the 10 canonical data lumps at i+1..i+10)
// into a DoomMap. Record types that reference other record types are
// decoded in dependency order — Vertexes and Sectors first, then
// Sidedefs (needs Sectors), then Linedefs (needs Vertexes and
// Sidedefs) — independent of the on-disk lump order.
func UnpackMap(dir *Directory, i int) (*DoomMap, error) {
	lumpAt := func(pos int) (Lump, error) {
		return dir.At(pos)
	}

	if _, err := lumpAt(i); err != nil {
		return nil, err
	}

	raw := make(map[string][]byte, 10)
	for j, name := range mapLumpNames {
		l, err := lumpAt(i + 1 + j)
		if err != nil {
			return nil, err
		}
		raw[name] = l.Data
	}

	m := &DoomMap{}

	var err error
	if m.Vertexes, err = DecodeVertexes(NewBufferReader(raw["VERTEXES"])); err != nil {
		return nil, err
	}
	if m.Sectors, err = DecodeSectors(NewBufferReader(raw["SECTORS"])); err != nil {
		return nil, err
	}
	if m.Sidedefs, err = DecodeSidedefs(NewBufferReader(raw["SIDEDEFS"]), m.Sectors); err != nil {
		return nil, err
	}
	if m.Linedefs, err = DecodeLinedefs(NewBufferReader(raw["LINEDEFS"]), m.Vertexes, m.Sidedefs); err != nil {
		return nil, err
	}
	if m.Things, err = DecodeThings(NewBufferReader(raw["THINGS"])); err != nil {
		return nil, err
	}

	m.Segs = raw["SEGS"]
	m.SSectors = raw["SSECTORS"]
	m.Nodes = raw["NODES"]
	m.Reject = raw["REJECT"]
	m.Blockmap = raw["BLOCKMAP"]

	return m, nil
}

// PackMap serializes m into a new Directory as an 11-lump run: a header
// lump carrying name with empty data, followed by the 10 data lumps in
// the canonical §4.5 order.
func PackMap(m *DoomMap, name string) (*Directory, error) {
	dir := NewDirectory()

	headerLump, err := NewLump(name, []byte{})
	if err != nil {
		return nil, err
	}
	dir.PushBack(headerLump)

	thingsBW := NewBufferWriter()
	if err := EncodeThings(thingsBW.Writer, m.Things); err != nil {
		return nil, err
	}
	linedefsBW := NewBufferWriter()
	if err := EncodeLinedefs(linedefsBW.Writer, m.Linedefs, m.Vertexes, m.Sidedefs); err != nil {
		return nil, err
	}
	sidedefsBW := NewBufferWriter()
	if err := EncodeSidedefs(sidedefsBW.Writer, m.Sidedefs, m.Sectors); err != nil {
		return nil, err
	}
	vertexesBW := NewBufferWriter()
	if err := EncodeVertexes(vertexesBW.Writer, m.Vertexes); err != nil {
		return nil, err
	}
	sectorsBW := NewBufferWriter()
	if err := EncodeSectors(sectorsBW.Writer, m.Sectors); err != nil {
		return nil, err
	}

	data := map[string][]byte{
		"THINGS":   thingsBW.Bytes(),
		"LINEDEFS": linedefsBW.Bytes(),
		"SIDEDEFS": sidedefsBW.Bytes(),
		"VERTEXES": vertexesBW.Bytes(),
		"SEGS":     m.Segs,
		"SSECTORS": m.SSectors,
		"NODES":    m.Nodes,
		"SECTORS":  sectorsBW.Bytes(),
		"REJECT":   m.Reject,
		"BLOCKMAP": m.Blockmap,
	}

	for _, lname := range mapLumpNames {
		l, err := NewLump(lname, data[lname])
		if err != nil {
			return nil, err
		}
		dir.PushBack(l)
	}

	return dir, nil
}

package wad

import "testing"

func buildSampleMap(t *testing.T) *DoomMap {
	t.Helper()
	m := NewDoomMap()

	v0, err := m.Vertexes.PushBack(Vertex{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("PushBack vertex: %v", err)
	}
	v1, err := m.Vertexes.PushBack(Vertex{X: 64, Y: 0})
	if err != nil {
		t.Fatalf("PushBack vertex: %v", err)
	}

	sec0, err := m.Sectors.PushBack(Sector{FloorHeight: 0, CeilHeight: 128, FloorTex: "FLOOR", CeilTex: "CEIL"})
	if err != nil {
		t.Fatalf("PushBack sector: %v", err)
	}

	side0 := Sidedef{MiddleTex: "WALL", SectorRef: m.Sectors.WeakOfID(sec0)}
	sd0, err := m.Sidedefs.PushBack(side0)
	if err != nil {
		t.Fatalf("PushBack sidedef: %v", err)
	}

	line0 := Linedef{
		VStart: m.Vertexes.WeakOfID(v0),
		VEnd:   m.Vertexes.WeakOfID(v1),
		Flags:  1,
		Front:  m.Sidedefs.WeakOfID(sd0),
	}
	if _, err := m.Linedefs.PushBack(line0); err != nil {
		t.Fatalf("PushBack linedef: %v", err)
	}

	if _, err := m.Things.PushBack(Thing{X: 10, Y: 20, Angle: 90, Type: 1, Flags: 7}); err != nil {
		t.Fatalf("PushBack thing: %v", err)
	}

	m.Segs = []byte("segs")
	m.SSectors = []byte("ssectors")
	m.Nodes = []byte("nodes")
	m.Reject = []byte("reject")
	m.Blockmap = []byte("blockmap")

	return m
}

func TestDoomMapPackLumpOrder(t *testing.T) {
	m := buildSampleMap(t)
	dir, err := PackMap(m, "MAP01")
	if err != nil {
		t.Fatalf("PackMap: %v", err)
	}

	if dir.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", dir.Len())
	}

	header, _ := dir.At(0)
	if header.Name != "MAP01" || len(header.Data) != 0 {
		t.Errorf("header lump = %+v, want {MAP01 <empty>}", header)
	}

	for i, name := range mapLumpNames {
		l, err := dir.At(i + 1)
		if err != nil {
			t.Fatalf("At(%d): %v", i+1, err)
		}
		if l.Name != name {
			t.Errorf("lump %d name = %q, want %q", i+1, l.Name, name)
		}
	}

	reject, _ := dir.At(9)
	blockmap, _ := dir.At(10)
	if string(reject.Data) != "reject" {
		t.Errorf("REJECT data = %q, want %q (packer must not swap reject/blockmap)", reject.Data, "reject")
	}
	if string(blockmap.Data) != "blockmap" {
		t.Errorf("BLOCKMAP data = %q, want %q", blockmap.Data, "blockmap")
	}
}

func TestDoomMapUnpackPackRoundTrip(t *testing.T) {
	m := buildSampleMap(t)
	dir, err := PackMap(m, "MAP01")
	if err != nil {
		t.Fatalf("PackMap: %v", err)
	}

	m2, err := UnpackMap(dir, 0)
	if err != nil {
		t.Fatalf("UnpackMap: %v", err)
	}

	if m2.Vertexes.Len() != 2 || m2.Sectors.Len() != 1 || m2.Sidedefs.Len() != 1 ||
		m2.Linedefs.Len() != 1 || m2.Things.Len() != 1 {
		t.Fatalf("unpacked map has wrong record counts: %+v", m2)
	}

	v0, _ := m2.Vertexes.At(0)
	if v0.X != 0 || v0.Y != 0 {
		t.Errorf("vertex 0 = %+v, want {0 0}", v0)
	}

	line0, _ := m2.Linedefs.At(0)
	_, vStartPos, ok := line0.VStart.Resolve(m2.Vertexes)
	if !ok || vStartPos != 0 {
		t.Errorf("linedef v_start resolves to pos %d ok=%v, want 0 true", vStartPos, ok)
	}
	_, frontPos, ok := line0.Front.Resolve(m2.Sidedefs)
	if !ok || frontPos != 0 {
		t.Errorf("linedef front resolves to pos %d ok=%v, want 0 true", frontPos, ok)
	}
	if !line0.Back.Empty() {
		t.Error("linedef back should be empty")
	}

	side0, _ := m2.Sidedefs.At(0)
	_, sectorPos, ok := side0.SectorRef.Resolve(m2.Sectors)
	if !ok || sectorPos != 0 {
		t.Errorf("sidedef sector_ref resolves to pos %d ok=%v, want 0 true", sectorPos, ok)
	}

	if string(m2.Reject) != "reject" || string(m2.Blockmap) != "blockmap" {
		t.Errorf("opaque blobs not preserved: reject=%q blockmap=%q", m2.Reject, m2.Blockmap)
	}
}

func TestDoomMapGetSetOneBased(t *testing.T) {
	m := buildSampleMap(t)

	v, err := m.GetVertex(1)
	if err != nil {
		t.Fatalf("GetVertex(1): %v", err)
	}
	if v.X != 0 || v.Y != 0 {
		t.Errorf("GetVertex(1) = %+v, want {0 0}", v)
	}

	if err := m.SetVertex(1, Vertex{X: 99, Y: 99}); err != nil {
		t.Fatalf("SetVertex(1): %v", err)
	}
	got, _ := m.Vertexes.At(0)
	if got.X != 99 || got.Y != 99 {
		t.Errorf("after SetVertex(1), Vertexes.At(0) = %+v, want {99 99}", got)
	}

	sec, err := m.GetSector(1)
	if err != nil {
		t.Fatalf("GetSector(1): %v", err)
	}
	if sec.FloorTex != "FLOOR" {
		t.Errorf("GetSector(1).FloorTex = %q, want FLOOR", sec.FloorTex)
	}
	if err := m.SetSector(1, Sector{FloorTex: "LAVA1"}); err != nil {
		t.Fatalf("SetSector(1): %v", err)
	}
	gotSec, _ := m.Sectors.At(0)
	if gotSec.FloorTex != "LAVA1" {
		t.Errorf("after SetSector(1), FloorTex = %q, want LAVA1", gotSec.FloorTex)
	}

	side, err := m.GetSidedef(1)
	if err != nil {
		t.Fatalf("GetSidedef(1): %v", err)
	}
	if side.MiddleTex != "WALL" {
		t.Errorf("GetSidedef(1).MiddleTex = %q, want WALL", side.MiddleTex)
	}
	if err := m.SetSidedef(1, Sidedef{MiddleTex: "STONE"}); err != nil {
		t.Fatalf("SetSidedef(1): %v", err)
	}
	gotSide, _ := m.Sidedefs.At(0)
	if gotSide.MiddleTex != "STONE" {
		t.Errorf("after SetSidedef(1), MiddleTex = %q, want STONE", gotSide.MiddleTex)
	}

	line, err := m.GetLinedef(1)
	if err != nil {
		t.Fatalf("GetLinedef(1): %v", err)
	}
	if line.Flags != 1 {
		t.Errorf("GetLinedef(1).Flags = %d, want 1", line.Flags)
	}
	if err := m.SetLinedef(1, Linedef{Flags: 7}); err != nil {
		t.Fatalf("SetLinedef(1): %v", err)
	}
	gotLine, _ := m.Linedefs.At(0)
	if gotLine.Flags != 7 {
		t.Errorf("after SetLinedef(1), Flags = %d, want 7", gotLine.Flags)
	}

	th, err := m.GetThing(1)
	if err != nil {
		t.Fatalf("GetThing(1): %v", err)
	}
	if th.Type != 1 {
		t.Errorf("GetThing(1).Type = %d, want 1", th.Type)
	}
	if err := m.SetThing(1, Thing{Type: 9}); err != nil {
		t.Fatalf("SetThing(1): %v", err)
	}
	gotThing, _ := m.Things.At(0)
	if gotThing.Type != 9 {
		t.Errorf("after SetThing(1), Type = %d, want 9", gotThing.Type)
	}
}

func TestLinedefDecodeDanglingVertexRef(t *testing.T) {
	vertexes := NewIMap[Vertex]()
	_, _ = vertexes.PushBack(Vertex{})
	sidedefs := NewIMap[Sidedef]()

	bw := NewBufferWriter()
	_ = bw.WriteI16(5) // v_start out of range
	_ = bw.WriteI16(0)
	_ = bw.WriteU16(0)
	_ = bw.WriteI16(0)
	_ = bw.WriteI16(0)
	_ = bw.WriteI16(-1)
	_ = bw.WriteI16(-1)

	_, err := DecodeLinedef(NewBufferReader(bw.Bytes()), vertexes, sidedefs)
	if _, ok := err.(*DanglingRefError); !ok {
		t.Fatalf("expected *DanglingRefError, got %T: %v", err, err)
	}
}

func TestLinedefEncodeFailsOnEmptyVertexRef(t *testing.T) {
	vertexes := NewIMap[Vertex]()
	sidedefs := NewIMap[Sidedef]()
	l := Linedef{} // VStart/VEnd empty

	err := l.Encode(NewBufferWriter().Writer, vertexes, sidedefs)
	if _, ok := err.(*DanglingRefError); !ok {
		t.Fatalf("expected *DanglingRefError, got %T: %v", err, err)
	}
}

func TestSidedefEncodeEmptySectorRefWritesZero(t *testing.T) {
	sectors := NewIMap[Sector]()
	_, _ = sectors.PushBack(Sector{})
	s := Sidedef{} // SectorRef empty, a well-formed-input precondition per spec §9

	bw := NewBufferWriter()
	if err := s.Encode(bw.Writer, sectors); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Last 2 bytes of the 30-byte sidedef record are the sector ordinal.
	b := bw.Bytes()
	ord := int16(b[28]) | int16(b[29])<<8
	if ord != 0 {
		t.Errorf("encoded ordinal = %d, want 0", ord)
	}
}

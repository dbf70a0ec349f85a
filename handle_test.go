package wad_test

import (
	"testing"

	"github.com/AlexMax/wadmake-go"
)

func TestDirectoryHandleFindOneBased(t *testing.T) {
	d := sampleDirectory(t)
	h := wad.NewDirectoryHandle(d)

	pos, ok := h.Find("SIDEDEFS", 1)
	if !ok || pos != 4 {
		t.Errorf("Find(SIDEDEFS, 1) = (%d, %v), want (4, true)", pos, ok)
	}
}

func TestDirectoryHandleFindNegativeStart(t *testing.T) {
	d := sampleDirectory(t)
	h := wad.NewDirectoryHandle(d)

	// -1 means "start searching at the last lump".
	pos, ok := h.Find("BLOCKMAP", -1)
	if !ok || pos != 11 {
		t.Errorf("Find(BLOCKMAP, -1) = (%d, %v), want (11, true)", pos, ok)
	}

	if _, ok := h.Find("MAP01", -1); ok {
		t.Error("Find(MAP01, -1) should be absent, MAP01 precedes the last lump")
	}
}

func TestDirectoryHandleAt(t *testing.T) {
	d := sampleDirectory(t)
	h := wad.NewDirectoryHandle(d)

	l, err := h.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if l.Name != "MAP01" {
		t.Errorf("At(1).Name = %q, want MAP01", l.Name)
	}
}

func TestDirectoryHandleSet(t *testing.T) {
	d := sampleDirectory(t)
	h := wad.NewDirectoryHandle(d)

	l, _ := wad.NewLump("REPLACED", []byte("x"))
	if err := h.Set(1, l); err != nil {
		t.Fatalf("Set(1): %v", err)
	}
	got, _ := d.At(0)
	if got.Name != "REPLACED" {
		t.Errorf("At(0).Name = %q, want REPLACED", got.Name)
	}
}

func TestDirectoryHandleInsertAt(t *testing.T) {
	d := sampleDirectory(t)
	h := wad.NewDirectoryHandle(d)

	l, _ := wad.NewLump("TEST", []byte("x"))
	if err := h.InsertAt(2, l); err != nil {
		t.Fatalf("InsertAt(2): %v", err)
	}
	got, _ := d.At(1)
	if got.Name != "TEST" {
		t.Errorf("At(1).Name = %q, want TEST (InsertAt(2) should land at 0-based position 1)", got.Name)
	}
}

func TestDirectoryHandleEraseAt(t *testing.T) {
	d := sampleDirectory(t)
	h := wad.NewDirectoryHandle(d)
	before := h.Len()

	if err := h.EraseAt(1); err != nil {
		t.Fatalf("EraseAt(1): %v", err)
	}
	if h.Len() != before-1 {
		t.Fatalf("Len() = %d, want %d", h.Len(), before-1)
	}
	got, _ := d.At(0)
	if got.Name != "THINGS" {
		t.Errorf("At(0).Name = %q, want THINGS (MAP01 should have been erased)", got.Name)
	}
}

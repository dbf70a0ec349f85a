package wad

// IMap is an ordered collection of elements of type T, each tagged at
// insertion time with a monotonically increasing stable id. It behaves
// both as a positional sequence (insert/remove/access by 0-based index)
// and as an identity map (lookup by id, with WeakRef back-references
// that survive unrelated removals). IMap owns its elements; it is not
// safe for concurrent use (see spec §5: single-threaded core).
type IMap[T any] struct {
	elems  []entry[T]
	byID   map[uint64]int // id -> index into elems
	nextID uint64
}

type entry[T any] struct {
	id   uint64
	elem T
}

// NewIMap creates an empty IMap with the id counter starting at 1.
func NewIMap[T any]() *IMap[T] {
	return &IMap[T]{byID: make(map[uint64]int), nextID: 1}
}

// Len returns the number of elements currently stored.
func (m *IMap[T]) Len() int {
	return len(m.elems)
}

// PushBack appends e, assigning it the next stable id, and returns that
// id. Fails with IdOverflowError if the 64-bit id counter is exhausted.
func (m *IMap[T]) PushBack(e T) (uint64, error) {
	if m.nextID == 0 {
		return 0, &IdOverflowError{}
	}
	id := m.nextID
	m.nextID++
	m.byID[id] = len(m.elems)
	m.elems = append(m.elems, entry[T]{id: id, elem: e})
	return id, nil
}

// At returns the element at 0-based position pos.
func (m *IMap[T]) At(pos int) (T, error) {
	var zero T
	if pos < 0 || pos >= len(m.elems) {
		return zero, &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(m.elems))}
	}
	return m.elems[pos].elem, nil
}

// Set overwrites the element currently at 0-based position pos,
// preserving its stable id.
func (m *IMap[T]) Set(pos int, e T) error {
	if pos < 0 || pos >= len(m.elems) {
		return &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(m.elems))}
	}
	m.elems[pos].elem = e
	return nil
}

// GetByID returns the element with the given stable id, if present.
func (m *IMap[T]) GetByID(id uint64) (T, bool) {
	var zero T
	idx, ok := m.byID[id]
	if !ok {
		return zero, false
	}
	return m.elems[idx].elem, true
}

// IDAt returns the stable id of the element at 0-based position pos.
func (m *IMap[T]) IDAt(pos int) (uint64, error) {
	if pos < 0 || pos >= len(m.elems) {
		return 0, &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(m.elems))}
	}
	return m.elems[pos].id, nil
}

// WeakOf produces a back-reference to the element currently at 0-based
// position pos. The reference tracks identity, not position: later
// positional edits elsewhere in the IMap never invalidate it, only
// Reindex or removal of the referent itself do.
func (m *IMap[T]) WeakOf(pos int) (WeakRef[T], error) {
	id, err := m.IDAt(pos)
	if err != nil {
		return WeakRef[T]{}, err
	}
	return WeakRef[T]{id: id, valid: true}, nil
}

// WeakOfID wraps an existing id as a WeakRef without requiring a
// position lookup; used when a caller already resolved an ordinal to
// an id (e.g. a map record's decode path).
func (m *IMap[T]) WeakOfID(id uint64) WeakRef[T] {
	return WeakRef[T]{id: id, valid: true}
}

// InsertAt inserts e at 0-based position pos, assigning it the next
// stable id. Existing ids are not renumbered.
func (m *IMap[T]) InsertAt(pos int, e T) (uint64, error) {
	if pos < 0 || pos > len(m.elems) {
		return 0, &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(m.elems))}
	}
	if m.nextID == 0 {
		return 0, &IdOverflowError{}
	}
	id := m.nextID
	m.nextID++

	m.elems = append(m.elems, entry[T]{})
	copy(m.elems[pos+1:], m.elems[pos:])
	m.elems[pos] = entry[T]{id: id, elem: e}
	m.reindexPositions(pos)
	return id, nil
}

// EraseAt removes the element at 0-based position pos. Weak references
// obtained before the call that named a different element remain valid
// afterward; a reference to the removed element becomes unresolvable.
func (m *IMap[T]) EraseAt(pos int) error {
	if pos < 0 || pos >= len(m.elems) {
		return &OutOfRangeError{Field: "position", Value: int64(pos), Bound: int64(len(m.elems))}
	}
	delete(m.byID, m.elems[pos].id)
	m.elems = append(m.elems[:pos], m.elems[pos+1:]...)
	m.reindexPositions(pos)
	return nil
}

// reindexPositions refreshes byID's index cache for every element at or
// after from, after an insert or erase shifted positions.
func (m *IMap[T]) reindexPositions(from int) {
	for i := from; i < len(m.elems); i++ {
		m.byID[m.elems[i].id] = i
	}
}

// Each calls fn for every element in insertion (positional) order.
func (m *IMap[T]) Each(fn func(pos int, id uint64, e T)) {
	for i, en := range m.elems {
		fn(i, en.id, en.elem)
	}
}

// Reindex reassigns dense ids 1..Len() in current positional order and
// resets the id counter to Len()+1. This is explicitly destructive:
// every WeakRef created before the call stops resolving, since it holds
// the old id.
func (m *IMap[T]) Reindex() {
	m.byID = make(map[uint64]int, len(m.elems))
	for i := range m.elems {
		id := uint64(i + 1)
		m.elems[i].id = id
		m.byID[id] = i
	}
	m.nextID = uint64(len(m.elems) + 1)
}

// WeakRef is a non-owning back-reference into an IMap[T], identified by
// stable id rather than position. It resolves to Absent (ok=false) once
// its referent is erased or the owning IMap is reindexed.
type WeakRef[T any] struct {
	id    uint64
	valid bool
}

// Empty reports whether this reference was never set (as opposed to set
// but now unresolvable).
func (r WeakRef[T]) Empty() bool {
	return !r.valid
}

// ID returns the referenced stable id and whether the reference was
// ever set (not whether it currently resolves).
func (r WeakRef[T]) ID() (uint64, bool) {
	return r.id, r.valid
}

// Resolve looks the reference up against m, returning the element and
// its current 0-based position if still present.
func (r WeakRef[T]) Resolve(m *IMap[T]) (e T, pos int, ok bool) {
	if !r.valid {
		return e, 0, false
	}
	idx, exists := m.byID[r.id]
	if !exists {
		return e, 0, false
	}
	return m.elems[idx].elem, idx, true
}

// Position looks up the reference's current 0-based position in m,
// without retrieving the element itself. Map record encoders use this
// to serialize a back-reference as an ordinal.
func (r WeakRef[T]) Position(m *IMap[T]) (pos int, ok bool) {
	if !r.valid {
		return 0, false
	}
	idx, exists := m.byID[r.id]
	return idx, exists
}

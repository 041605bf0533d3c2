package lsh

import (
	"fmt"
	"strings"

	"github.com/liliang-cn/lshmine/pkg/container"
)

// Bucket is one slot of the open-addressed table: a cached fingerprint
// used to distinguish logically distinct tuples that collide on the
// same slot, and the members stored there.
type Bucket struct {
	Fingerprint uint64
	Members     *container.List
}

// HashTable is the open-addressed, linearly-probed table shared by
// both hash families, parameterized by the family that computes its
// (fingerprint, slot) pairs.
type HashTable[R any] struct {
	capacity uint32
	family   HashFamily[R]
	buckets  []Bucket
	used     *container.List // Entry{Item: slot, Freq: 1}
}

// NewHashTable allocates a table of the given capacity (must be a
// power of two) for the given family. The bucket array is allocated
// once and reused across mining repetitions, emptied between them by
// Drain (or ClearTable).
func NewHashTable[R any](capacity uint32, family HashFamily[R]) (*HashTable[R], error) {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: capacity %d is not a power of two", ErrInvalidConfig, capacity)
	}

	buckets := make([]Bucket, capacity)
	for i := range buckets {
		buckets[i].Members = container.NewList(0)
	}

	return &HashTable[R]{
		capacity: capacity,
		family:   family,
		buckets:  buckets,
		used:     container.NewList(0),
	}, nil
}

// Family exposes the table's hash family, e.g. for the mining driver
// to call Regenerate once per repetition.
func (t *HashTable[R]) Family() HashFamily[R] {
	return t.family
}

// Capacity returns the table's fixed bucket count.
func (t *HashTable[R]) Capacity() uint32 {
	return t.capacity
}

// Used exposes the used-bucket roster read-only.
func (t *HashTable[R]) Used() *container.List {
	return t.used
}

// Bucket returns the bucket at the given slot.
func (t *HashTable[R]) Bucket(slot uint32) *Bucket {
	return &t.buckets[slot]
}

// GetIndex resolves record to a slot via the family hash and linear
// probing with open addressing.
func (t *HashTable[R]) GetIndex(record R) (uint32, error) {
	fingerprint, slot := t.family.Hash(record, t.capacity)

	if t.buckets[slot].Members.Size() == 0 {
		t.buckets[slot].Fingerprint = fingerprint
		return slot, nil
	}
	if t.buckets[slot].Fingerprint == fingerprint {
		return slot, nil
	}

	for probes := uint32(1); probes < t.capacity; probes++ {
		slot = (slot + 1) & (t.capacity - 1)
		if t.buckets[slot].Members.Size() == 0 {
			t.buckets[slot].Fingerprint = fingerprint
			return slot, nil
		}
		if t.buckets[slot].Fingerprint == fingerprint {
			return slot, nil
		}
	}

	return 0, ErrTableFull
}

// Store inserts id into the bucket record resolves to, marking the
// bucket used if it was previously empty.
func (t *HashTable[R]) Store(record R, id uint32) error {
	slot, err := t.GetIndex(record)
	if err != nil {
		return err
	}

	if t.buckets[slot].Members.Size() == 0 {
		t.used.Push(container.Entry{Item: slot, Freq: 1})
	}
	t.buckets[slot].Members.Push(container.Entry{Item: id, Freq: 1})
	return nil
}

// EraseByIndex destroys the members of the bucket at slot and removes
// it from the used roster. An out-of-range slot is a diagnostic no-op
// rather than a fatal error.
func (t *HashTable[R]) EraseByIndex(slot uint32) error {
	if slot >= t.capacity {
		return ErrIndexOutOfRange
	}

	t.buckets[slot].Members.Destroy()
	t.buckets[slot].Members = container.NewList(0)
	t.buckets[slot].Fingerprint = 0

	if pos := t.used.Find(slot); pos >= 0 {
		t.used.DeleteAt(pos)
	}
	return nil
}

// ClearTable empties every used bucket and the used roster without
// deallocating the bucket array.
func (t *HashTable[R]) ClearTable() {
	for i := 0; i < t.used.Size(); i++ {
		slot := t.used.At(i).Item
		t.buckets[slot].Members.Destroy()
		t.buckets[slot].Members = container.NewList(0)
		t.buckets[slot].Fingerprint = 0
	}
	t.used.Destroy()
	t.used = container.NewList(0)
}

// familyDebugInfo is implemented by hash families that can describe
// their own parameters for HashTable.DebugString; L1Family and
// LpFamily both satisfy it. A family that doesn't is simply omitted
// from the dump rather than treated as an error.
type familyDebugInfo interface {
	debugHeader() []string
	debugCoefficients() (a, b []uint32)
}

// DebugString renders the table size, the hash family's parameters
// (when available), the used-bucket roster, and the universal-hash
// coefficient arrays as a readable multi-line dump, the equivalent of
// the original l1lsh_print_head.
func (t *HashTable[R]) DebugString() string {
	var b strings.Builder
	b.WriteString("========== Hash table =========\n")
	fmt.Fprintf(&b, "Table size: %d\n", t.capacity)

	info, hasInfo := any(t.family).(familyDebugInfo)
	if hasInfo {
		for _, line := range info.debugHeader() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString("Used buckets: ")
	for i := 0; i < t.used.Size(); i++ {
		fmt.Fprintf(&b, "%d ", t.used.At(i).Item)
	}
	b.WriteByte('\n')

	if hasInfo {
		a, coefB := info.debugCoefficients()
		b.WriteString("a: ")
		for _, v := range a {
			fmt.Fprintf(&b, "%d ", v)
		}
		b.WriteString("\nb: ")
		for _, v := range coefB {
			fmt.Fprintf(&b, "%d ", v)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// Drain moves every used bucket's members into output (one List per
// nonempty bucket), reinitializes the bucket to empty, and finally
// empties the used roster, transferring ownership of each bucket's
// members rather than copying them. Bucket ids are drained in the
// order they appear in the used roster, which is itself insertion-
// ordered.
func (t *HashTable[R]) Drain(output *container.ListDB) {
	for i := 0; i < t.used.Size(); i++ {
		slot := t.used.At(i).Item
		members := t.buckets[slot].Members
		output.Push(members)

		t.buckets[slot].Members = container.NewList(0)
		t.buckets[slot].Fingerprint = 0
	}
	t.used.Destroy()
	t.used = container.NewList(0)
}

package container

import "testing"

func TestListPushAndAt(t *testing.T) {
	l := NewList(0)
	l.Push(Entry{Item: 1, Freq: 2})
	l.Push(Entry{Item: 3, Freq: 4})

	if l.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", l.Size())
	}
	if e := l.At(0); e.Item != 1 || e.Freq != 2 {
		t.Fatalf("At(0) = %+v, want {1 2}", e)
	}
	if e := l.At(1); e.Item != 3 || e.Freq != 4 {
		t.Fatalf("At(1) = %+v, want {3 4}", e)
	}
}

func TestListFind(t *testing.T) {
	l := NewListFromPairs([2]uint32{5, 1}, [2]uint32{9, 2}, [2]uint32{5, 3})

	if pos := l.Find(9); pos != 1 {
		t.Fatalf("Find(9) = %d, want 1", pos)
	}
	if pos := l.Find(5); pos != 0 {
		t.Fatalf("Find(5) = %d, want 0 (first match)", pos)
	}
	if pos := l.Find(42); pos != -1 {
		t.Fatalf("Find(42) = %d, want -1", pos)
	}
}

func TestListDeleteAtPreservesOrder(t *testing.T) {
	l := NewListFromPairs([2]uint32{1, 0}, [2]uint32{2, 0}, [2]uint32{3, 0})
	l.DeleteAt(1)

	if l.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", l.Size())
	}
	if l.At(0).Item != 1 || l.At(1).Item != 3 {
		t.Fatalf("order not preserved after DeleteAt: %+v", l.Data())
	}
}

func TestListDestroy(t *testing.T) {
	l := NewListFromPairs([2]uint32{1, 1})
	l.Destroy()
	if l.Size() != 0 {
		t.Fatalf("Size() after Destroy = %d, want 0", l.Size())
	}
}

func TestListCloneIsIndependent(t *testing.T) {
	l := NewListFromPairs([2]uint32{1, 1})
	c := l.Clone()
	c.Push(Entry{Item: 2, Freq: 2})

	if l.Size() != 1 {
		t.Fatalf("original list mutated by edits to clone: size = %d", l.Size())
	}
	if c.Size() != 2 {
		t.Fatalf("clone Size() = %d, want 2", c.Size())
	}
}

func TestDensifyFillsAbsentDimensionsWithZero(t *testing.T) {
	sparse := NewListFromPairs([2]uint32{0, 5}, [2]uint32{2, 9})
	dense := sparse.Densify(4)

	if dense.Size() != 4 {
		t.Fatalf("Densify(4) produced %d entries, want 4", dense.Size())
	}
	want := []uint32{5, 0, 9, 0}
	for d, w := range want {
		if got := dense.At(d).Freq; got != w {
			t.Fatalf("dense[%d].Freq = %d, want %d", d, got, w)
		}
		if dense.At(d).Item != uint32(d) {
			t.Fatalf("dense[%d].Item = %d, want %d", d, dense.At(d).Item, d)
		}
	}
}

func TestDensifyIgnoresOutOfRangeItems(t *testing.T) {
	sparse := NewListFromPairs([2]uint32{0, 1}, [2]uint32{99, 7})
	dense := sparse.Densify(2)

	if dense.Size() != 2 {
		t.Fatalf("Densify(2) produced %d entries, want 2", dense.Size())
	}
	if dense.At(0).Freq != 1 || dense.At(1).Freq != 0 {
		t.Fatalf("out-of-range item leaked into dense output: %+v", dense.Data())
	}
}

func TestEuclideanDistanceToIdenticalIsZero(t *testing.T) {
	a := NewList(0).Densify(3)
	b := a.Clone()
	if d := a.EuclideanDistanceTo(b); d != 0 {
		t.Fatalf("distance between identical lists = %v, want 0", d)
	}
}

func TestEuclideanDistanceToKnownValue(t *testing.T) {
	a := NewListFromPairs([2]uint32{0, 0}, [2]uint32{1, 0})
	b := NewListFromPairs([2]uint32{0, 3}, [2]uint32{1, 4})
	if d := a.EuclideanDistanceTo(b); d != 5 {
		t.Fatalf("distance = %v, want 5 (3-4-5 triangle)", d)
	}
}

func TestNilListSizeIsZero(t *testing.T) {
	var l *List
	if l.Size() != 0 {
		t.Fatalf("nil List Size() = %d, want 0", l.Size())
	}
}

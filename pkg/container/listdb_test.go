package container

import "testing"

func TestListDBPushAndAt(t *testing.T) {
	db := NewListDB(3)
	db.Push(NewListFromPairs([2]uint32{0, 1}))
	db.Push(NewListFromPairs([2]uint32{1, 2}))

	if db.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", db.Size())
	}
	if db.Dim != 3 {
		t.Fatalf("Dim = %d, want 3", db.Dim)
	}
	if db.At(1).At(0).Item != 1 {
		t.Fatalf("At(1) did not return the second pushed list")
	}
}

func TestListDBLists(t *testing.T) {
	db := NewListDB(0)
	a := NewList(0)
	b := NewList(0)
	db.Push(a)
	db.Push(b)

	lists := db.Lists()
	if len(lists) != 2 || lists[0] != a || lists[1] != b {
		t.Fatalf("Lists() did not return pushed lists in order")
	}
}

func TestEmptyListDBSize(t *testing.T) {
	db := NewListDB(0)
	if db.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", db.Size())
	}
}

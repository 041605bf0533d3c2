package container

// ListDB is a sized, append-only array of List, the integer-vector
// database type L1-LSH mines and the type co-occurrence output is
// returned as.
type ListDB struct {
	// Dim records database-level dimension metadata: for an input
	// database it is the declared dimensionality of its records; for
	// the co-occurrence output of a mining run it is repurposed to
	// record the number of input records that were mined.
	Dim   int
	lists []*List
}

// NewListDB returns an empty list database.
func NewListDB(dim int) *ListDB {
	return &ListDB{Dim: dim}
}

// Size returns the number of lists stored.
func (db *ListDB) Size() int {
	if db == nil {
		return 0
	}
	return len(db.lists)
}

// Push appends a list. Drain pushes lists by moving ownership rather
// than copying; callers must not reuse l after Push without first
// calling l.Destroy and rebuilding it.
func (db *ListDB) Push(l *List) {
	db.lists = append(db.lists, l)
}

// At returns the list at position i.
func (db *ListDB) At(i int) *List {
	return db.lists[i]
}

// Lists exposes the backing slice read-only.
func (db *ListDB) Lists() []*List {
	return db.lists
}

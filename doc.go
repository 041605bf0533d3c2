// Package lshmine provides a locality-sensitive-hashing indexing and
// co-occurrence mining engine for high-dimensional data.
//
// Two hash families are supported:
//
//   - L1-LSH: bit-sampling on a thermometer encoding of nonnegative
//     integer vectors, approximating L1 / Hamming similarity.
//   - Lp-LSH: p-stable random projections (Gaussian for L2, Cauchy for
//     L1) over real-valued sparse vectors.
//
// Both families feed a shared open-addressed hash table. A mining run
// repeats "regenerate family -> hash every record -> drain buckets ->
// reset table" R times and returns the drained buckets as co-occurrence
// groups: sets of record identifiers that collided under at least one
// of the R independently seeded hash families.
//
// # Quick start
//
//	records := container.NewListDB(3)
//	sparse := container.NewListFromPairs([2]uint32{0, 5}, [2]uint32{1, 3})
//	records.Push(sparse.Densify(3))
//
//	out, err := lshmine.L1Mine(records, lshmine.DefaultL1Config(8, 2, 16, 1024))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// out is a *Result: out.Groups is a ListDB holding one List of record
// IDs per nonempty bucket drained across all repetitions, and out.RunID
// identifies the run.
//
// # Persistence
//
// A finished run can be written to a SQLite file for later inspection
// with the minestore package; the live hash table itself is never
// persisted.
package lshmine

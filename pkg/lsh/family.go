package lsh

import "github.com/liliang-cn/lshmine/pkg/rng"

// HashFamily generalizes the L1 and Lp schemes behind one capability
// set: rather than duplicating the open-addressed table per family,
// the table is parameterized by a HashFamily[R] and the family owns
// only what is specific to its scheme (parameter generation and the
// per-record hash tuple computation).
type HashFamily[R any] interface {
	// Regenerate discards the family's current parameters and draws a
	// fresh set from rng, in place. Called once per mining repetition.
	Regenerate(rng rng.Source) error

	// Hash reduces record to a (fingerprint, slot) pair for a table of
	// the given capacity (a power of two). slot is the raw open-
	// addressing probe start; fingerprint distinguishes logically
	// distinct tuples that happen to probe to the same slot.
	Hash(record R, capacity uint32) (fingerprint uint64, slot uint32)
}

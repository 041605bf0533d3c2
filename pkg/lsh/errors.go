package lsh

import "errors"

// Sentinel errors for the hashing and table layer. The root lshmine
// package re-exports these under its own names so callers never need
// to import pkg/lsh directly to check an error kind.
var (
	// ErrInvalidConfig is returned when capacity is not a power of two,
	// tuple size exceeds the available bit space, or width <= 0.
	ErrInvalidConfig = errors.New("lsh: invalid configuration")

	// ErrTableFull is returned when every slot has been probed without
	// finding a match or an empty slot.
	ErrTableFull = errors.New("lsh: hash table is full")

	// ErrIndexOutOfRange is the diagnostic-only error for an erase call
	// with a slot index >= capacity; callers should treat it as a
	// no-op, not a fatal condition.
	ErrIndexOutOfRange = errors.New("lsh: bucket index out of range")
)

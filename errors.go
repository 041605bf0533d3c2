package lshmine

import (
	"errors"
	"fmt"

	"github.com/liliang-cn/lshmine/pkg/lsh"
)

// Sentinel errors for the mining engine's error kinds. The hashing
// and table layer (pkg/lsh) owns these values; they are re-exported
// here so callers can check errors.Is(err, lshmine.ErrTableFull)
// without importing pkg/lsh directly.
var (
	// ErrInvalidConfig is returned when capacity is not a power of two,
	// tuple size exceeds the available bit space, or width <= 0.
	ErrInvalidConfig = lsh.ErrInvalidConfig

	// ErrTableFull is returned when every slot has been probed without
	// finding a match or an empty slot.
	ErrTableFull = lsh.ErrTableFull

	// ErrIndexOutOfRange is the diagnostic-only error for an erase
	// call with a slot index >= capacity; callers should treat it as a
	// no-op, not a fatal condition.
	ErrIndexOutOfRange = lsh.ErrIndexOutOfRange

	// ErrMalformedRecord is returned when a textual database line
	// cannot be parsed.
	ErrMalformedRecord = errors.New("lshmine: malformed record")

	// ErrUnreadableFile is returned when a database file cannot be
	// opened or read.
	ErrUnreadableFile = errors.New("lshmine: unreadable file")
)

// MiningError wraps an error with the operation that produced it.
type MiningError struct {
	Op  string
	Err error
}

func (e *MiningError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("lshmine: %v", e.Err)
	}
	return fmt.Sprintf("lshmine: %s: %v", e.Op, e.Err)
}

func (e *MiningError) Unwrap() error {
	return e.Err
}

func (e *MiningError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &MiningError{Op: op, Err: err}
}

package lshmine

import (
	"errors"
	"testing"
)

func TestMiningErrorUnwrap(t *testing.T) {
	err := wrapError("l1mine", ErrTableFull)
	if !errors.Is(err, ErrTableFull) {
		t.Fatalf("errors.Is(%v, ErrTableFull) = false, want true", err)
	}
}

func TestMiningErrorMessageIncludesOp(t *testing.T) {
	err := wrapError("l1mine", ErrTableFull)
	if got := err.Error(); got == "" || got == ErrTableFull.Error() {
		t.Fatalf("Error() = %q, want it to include the op", got)
	}
}

func TestWrapErrorNilPassesThrough(t *testing.T) {
	if err := wrapError("op", nil); err != nil {
		t.Fatalf("wrapError(op, nil) = %v, want nil", err)
	}
}

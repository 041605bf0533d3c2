package lshmine

import "github.com/liliang-cn/lshmine/pkg/lsh"

// L1Config configures an L1-LSH mining run.
type L1Config struct {
	TupleSize   uint32
	Repetitions uint32
	MaxValue    uint32
	Capacity    uint32
	Seed        uint64
	Logger      Logger
}

// DefaultL1Config returns an L1Config with the given required
// parameters and sensible defaults for the rest (seed 1, a nop
// logger).
func DefaultL1Config(tupleSize, repetitions, maxValue, capacity uint32) L1Config {
	return L1Config{
		TupleSize:   tupleSize,
		Repetitions: repetitions,
		MaxValue:    maxValue,
		Capacity:    capacity,
		Seed:        1,
		Logger:      NewNopLogger(),
	}
}

// LpConfig configures an Lp-LSH mining run.
type LpConfig struct {
	TupleSize   uint32
	Repetitions uint32
	Width       float64
	Capacity    uint32
	Family      PStableFamily
	Seed        uint64
	Logger      Logger
}

// PStableFamily selects which p-stable distribution projections are
// drawn from.
type PStableFamily int

const (
	// FamilyL2 uses Gaussian projections, approximating Euclidean (L2)
	// distance.
	FamilyL2 PStableFamily = iota
	// FamilyL1 uses Cauchy projections, approximating L1 (Manhattan)
	// distance.
	FamilyL1
)

func (f PStableFamily) pstable() lsh.PStable {
	if f == FamilyL1 {
		return lsh.CauchyStable
	}
	return lsh.GaussianStable
}

// DefaultLpConfig returns an LpConfig with the given required
// parameters and sensible defaults for the rest (Gaussian/L2 family,
// seed 1, a nop logger).
func DefaultLpConfig(tupleSize, repetitions uint32, width float64, capacity uint32) LpConfig {
	return LpConfig{
		TupleSize:   tupleSize,
		Repetitions: repetitions,
		Width:       width,
		Capacity:    capacity,
		Family:      FamilyL2,
		Seed:        1,
		Logger:      NewNopLogger(),
	}
}

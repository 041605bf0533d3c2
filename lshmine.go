package lshmine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/liliang-cn/lshmine/pkg/container"
	"github.com/liliang-cn/lshmine/pkg/lsh"
)

// Result is the output of a mining run: the drained co-occurrence
// groups plus a stable identity for later persistence via the
// minestore package.
type Result struct {
	RunID  string
	Groups *container.ListDB
}

// L1Mine mines co-occurrence groups from a list database using
// bit-sampling L1-LSH. Records must already be dense
// (container.List.Densify) before being passed in.
func L1Mine(records *container.ListDB, cfg L1Config) (*Result, error) {
	family, err := lsh.NewL1Family(uint32(records.Dim), cfg.MaxValue, cfg.TupleSize)
	if err != nil {
		return nil, wrapError("l1mine", err)
	}

	groups, err := lsh.Mine[*container.List](
		lsh.L1Records(records),
		cfg.Repetitions, family, cfg.Capacity, cfg.Seed,
		progressAdapter(cfg.Logger),
	)
	if err != nil {
		return nil, wrapError("l1mine", err)
	}

	return &Result{RunID: uuid.New().String(), Groups: groups}, nil
}

// LpMine mines co-occurrence groups from a vector database using
// p-stable-projection Lp-LSH.
func LpMine(records *container.VectorDB, cfg LpConfig) (*Result, error) {
	family, err := lsh.NewLpFamily(uint32(records.Dim), cfg.TupleSize, cfg.Width, cfg.Family.pstable())
	if err != nil {
		return nil, wrapError("lpmine", err)
	}

	groups, err := lsh.Mine[*container.Vector](
		lsh.LpRecords(records),
		cfg.Repetitions, family, cfg.Capacity, cfg.Seed,
		progressAdapter(cfg.Logger),
	)
	if err != nil {
		return nil, wrapError("lpmine", err)
	}

	return &Result{RunID: uuid.New().String(), Groups: groups}, nil
}

// progressLoggerAdapter bridges the facade's structured Logger to the
// pkg/lsh package's minimal ProgressLogger interface, so pkg/lsh does
// not need to depend on the facade's richer logging type.
type progressLoggerAdapter struct{ logger Logger }

func (a progressLoggerAdapter) Progress(repetition, repetitions uint32, totalGroupsSoFar int) {
	a.logger.Info("repetition complete",
		"repetition", fmt.Sprintf("%d/%d", repetition+1, repetitions),
		"groups_so_far", totalGroupsSoFar,
	)
}

func progressAdapter(logger Logger) lsh.ProgressLogger {
	if logger == nil {
		logger = NewNopLogger()
	}
	return progressLoggerAdapter{logger: logger}
}

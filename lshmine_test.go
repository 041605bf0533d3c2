package lshmine

import (
	"errors"
	"testing"

	"github.com/liliang-cn/lshmine/pkg/container"
)

func TestL1MineProducesIdentifiedResult(t *testing.T) {
	records := container.NewListDB(4)
	records.Push(container.NewListFromPairs([2]uint32{0, 1}, [2]uint32{1, 2}, [2]uint32{2, 3}, [2]uint32{3, 4}).Densify(4))
	records.Push(container.NewListFromPairs([2]uint32{0, 1}, [2]uint32{1, 2}, [2]uint32{2, 3}, [2]uint32{3, 4}).Densify(4))

	cfg := DefaultL1Config(6, 3, 8, 16)
	result, err := L1Mine(records, cfg)
	if err != nil {
		t.Fatalf("L1Mine: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("RunID was not set")
	}
	if result.Groups == nil {
		t.Fatal("Groups was nil")
	}
}

func TestL1MineTwoRunsGetDifferentIDs(t *testing.T) {
	records := container.NewListDB(3)
	records.Push(container.NewListFromPairs([2]uint32{0, 1}).Densify(3))

	cfg := DefaultL1Config(4, 2, 4, 8)
	r1, err := L1Mine(records, cfg)
	if err != nil {
		t.Fatalf("L1Mine: %v", err)
	}
	r2, err := L1Mine(records, cfg)
	if err != nil {
		t.Fatalf("L1Mine: %v", err)
	}
	if r1.RunID == r2.RunID {
		t.Fatal("two independent mining runs got the same RunID")
	}
}

func TestL1MineWrapsInvalidConfig(t *testing.T) {
	records := container.NewListDB(2)
	cfg := DefaultL1Config(100, 1, 2, 8) // tuple size far exceeds dim*max_value
	_, err := L1Mine(records, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want wrapping ErrInvalidConfig", err)
	}
	var mErr *MiningError
	if !errors.As(err, &mErr) {
		t.Fatalf("error = %v, want a *MiningError", err)
	}
}

func TestLpMineProducesIdentifiedResult(t *testing.T) {
	records := container.NewVectorDB(3)
	records.Push(container.NewVectorFromPairs(container.Dim{Dim: 0, Value: 1}, container.Dim{Dim: 1, Value: 2}))
	records.Push(container.NewVectorFromPairs(container.Dim{Dim: 0, Value: 1}, container.Dim{Dim: 1, Value: 2}))

	cfg := DefaultLpConfig(4, 3, 1.0, 16)
	result, err := LpMine(records, cfg)
	if err != nil {
		t.Fatalf("LpMine: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("RunID was not set")
	}
}

func TestLpMineWithL1FamilyUsesCauchy(t *testing.T) {
	records := container.NewVectorDB(2)
	records.Push(container.NewVectorFromPairs(container.Dim{Dim: 0, Value: 3}))

	cfg := DefaultLpConfig(3, 2, 2.0, 8)
	cfg.Family = FamilyL1
	if _, err := LpMine(records, cfg); err != nil {
		t.Fatalf("LpMine with FamilyL1: %v", err)
	}
}

func TestLpMineWrapsInvalidConfig(t *testing.T) {
	records := container.NewVectorDB(2)
	cfg := DefaultLpConfig(4, 1, -1.0, 8) // negative width
	_, err := LpMine(records, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want wrapping ErrInvalidConfig", err)
	}
}

package lsh

import (
	"fmt"

	"github.com/liliang-cn/lshmine/pkg/container"
	"github.com/liliang-cn/lshmine/pkg/rng"
)

// Records is the minimal interface the mining driver needs of an input
// database: a size and positional access to records, satisfied by both
// container.ListDB and container.VectorDB.
type Records[R any] interface {
	Size() int
	At(i int) R
}

// listDBRecords adapts *container.ListDB to Records[*container.List].
type listDBRecords struct{ db *container.ListDB }

func (r listDBRecords) Size() int                { return r.db.Size() }
func (r listDBRecords) At(i int) *container.List { return r.db.At(i) }

// vectorDBRecords adapts *container.VectorDB to Records[*container.Vector].
type vectorDBRecords struct{ db *container.VectorDB }

func (r vectorDBRecords) Size() int                  { return r.db.Size() }
func (r vectorDBRecords) At(i int) *container.Vector { return r.db.At(i) }

// sizer is satisfied by any record type that can report whether it is
// empty, so Mine can skip empty records regardless of concrete type.
type sizer interface{ Size() int }

// Mine runs the seeded repetition loop: for the given number of
// repetitions, it regenerates the family's parameters, hashes every
// non-empty record in ascending id order, then drains the table into
// the returned co-occurrence output and resets the table for the next
// repetition.
func Mine[R any](records Records[R], repetitions uint32, family HashFamily[R], capacity uint32, seed uint64, logger ProgressLogger) (*container.ListDB, error) {
	table, err := NewHashTable[R](capacity, family)
	if err != nil {
		return nil, err
	}

	output := container.NewListDB(records.Size())
	source := rng.New(seed)

	for r := uint32(0); r < repetitions; r++ {
		if err := family.Regenerate(source); err != nil {
			return nil, wrapOpf("mine: repetition %d regenerate", r, err)
		}

		for id := 0; id < records.Size(); id++ {
			record := records.At(id)
			if s, ok := any(record).(sizer); ok && s.Size() == 0 {
				continue
			}
			if err := table.Store(record, uint32(id)); err != nil {
				return nil, wrapOpf("mine: repetition %d", r, err)
			}
		}

		table.Drain(output)
		if logger != nil {
			logger.Progress(r, repetitions, output.Size())
		}
	}

	return output, nil
}

// ProgressLogger receives a notification at the end of every
// repetition; *lshmine.Logger-backed adapters implement it in the
// facade package.
type ProgressLogger interface {
	Progress(repetition, repetitions uint32, totalGroupsSoFar int)
}

func wrapOpf(format string, r uint32, err error) error {
	return fmt.Errorf(format+": %w", r, err)
}

// L1Records adapts a *container.ListDB for L1Family mining.
func L1Records(db *container.ListDB) Records[*container.List] {
	return listDBRecords{db: db}
}

// LpRecords adapts a *container.VectorDB for LpFamily mining.
func LpRecords(db *container.VectorDB) Records[*container.Vector] {
	return vectorDBRecords{db: db}
}

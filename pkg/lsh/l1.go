package lsh

import (
	"fmt"
	"sort"

	"github.com/liliang-cn/lshmine/pkg/container"
	"github.com/liliang-cn/lshmine/pkg/rng"
)

// SampleBit identifies one bit of the thermometer encoding of a
// D-dimensional nonnegative integer vector: SampleBit{Dim,Loc} counts
// toward a record's sketch iff the record's Dim-th component is at
// least Loc (see sketchCount).
type SampleBit struct {
	Dim uint32
	Loc uint32
}

// L1Family implements HashFamily[*container.List] using bit-sampling
// over the thermometer encoding.
//
// Universal-hash indexing contract: this implementation indexes the
// a/b coefficient arrays by dimension, not by sample, matching the
// original l1lsh_compute_hash_value. To make that indexing always
// safe (the original's arrays were sized tuple_size and could be read
// out of bounds when dim > tuple_size), a and b here are sized
// max(dim, tupleSize).
type L1Family struct {
	dim           uint32
	maxValue      uint32
	tupleSize     uint32
	sampleBits    []SampleBit
	samplesPerDim []uint32
	a             []uint32
	b             []uint32
}

// NewL1Family validates the configuration and returns an L1Family with
// no parameters generated yet; call Regenerate before the first Hash.
func NewL1Family(dim, maxValue, tupleSize uint32) (*L1Family, error) {
	if dim == 0 || maxValue == 0 {
		return nil, fmt.Errorf("%w: dim and max_value must be positive", ErrInvalidConfig)
	}
	if uint64(tupleSize) > uint64(dim)*uint64(maxValue) {
		return nil, fmt.Errorf("%w: tuple_size %d exceeds dim*max_value %d", ErrInvalidConfig, tupleSize, uint64(dim)*uint64(maxValue))
	}
	return &L1Family{dim: dim, maxValue: maxValue, tupleSize: tupleSize}, nil
}

// Regenerate draws a fresh set of sample bits and universal-hash
// coefficients, discarding the previous ones.
func (f *L1Family) Regenerate(r rng.Source) error {
	sampleBits, samplesPerDim, err := GenerateSampleBits(f.dim, f.maxValue, f.tupleSize, r)
	if err != nil {
		return err
	}
	f.sampleBits = sampleBits
	f.samplesPerDim = samplesPerDim

	n := f.dim
	if f.tupleSize > n {
		n = f.tupleSize
	}
	f.a = make([]uint32, n)
	f.b = make([]uint32, n)
	for i := range f.a {
		f.a[i] = uint32(r.U64() & 0xFFFFFFFF)
		f.b[i] = uint32(r.U64() & 0xFFFFFFFF)
	}
	return nil
}

// GenerateSampleBits draws tupleSize distinct (dim,loc) bits uniformly
// without replacement from the dim*maxValue grid, using a presence
// map to reject duplicates, then sorts the result lexicographically
// by (dim,loc) and returns the per-dimension sample counts alongside
// it.
func GenerateSampleBits(dim, maxValue, tupleSize uint32, r rng.Source) ([]SampleBit, []uint32, error) {
	if uint64(tupleSize) > uint64(dim)*uint64(maxValue) {
		return nil, nil, fmt.Errorf("%w: tuple_size %d exceeds dim*max_value %d", ErrInvalidConfig, tupleSize, uint64(dim)*uint64(maxValue))
	}

	used := make(map[uint64]bool, tupleSize)
	sampleBits := make([]SampleBit, 0, tupleSize)
	samplesPerDim := make([]uint32, dim)

	for i := uint32(0); i < tupleSize; i++ {
		d := uint32(r.U64() % uint64(dim))
		loc := uint32(r.U64() % uint64(maxValue))
		key := uint64(d)*uint64(maxValue) + uint64(loc)
		for used[key] {
			d = uint32(r.U64() % uint64(dim))
			loc = uint32(r.U64() % uint64(maxValue))
			key = uint64(d)*uint64(maxValue) + uint64(loc)
		}
		used[key] = true
		sampleBits = append(sampleBits, SampleBit{Dim: d, Loc: loc})
		samplesPerDim[d]++
	}

	sort.Slice(sampleBits, func(i, j int) bool {
		if sampleBits[i].Dim != sampleBits[j].Dim {
			return sampleBits[i].Dim < sampleBits[j].Dim
		}
		return sampleBits[i].Loc < sampleBits[j].Loc
	})

	return sampleBits, samplesPerDim, nil
}

// Hash computes the T-bit sketch of a dense L1 record (list.Data()[d]
// is the record's d-th component) and reduces it via the two
// universal-hash coefficient streams.
func (f *L1Family) Hash(list *container.List, capacity uint32) (uint64, uint32) {
	data := list.Data()

	var fingerprint, rawIndex uint64
	offset := uint32(0)
	for d := uint32(0); d < f.dim; d++ {
		count := f.samplesPerDim[d]
		if count == 0 {
			offset += count
			continue
		}

		var xd uint32
		if int(d) < len(data) {
			xd = data[d].Freq
		}

		k := sketchCount(f.sampleBits[offset:offset+count], xd)
		offset += count

		fingerprint = (fingerprint + uint64(f.b[d])*uint64(k)) % LargestPrime
		rawIndex = (rawIndex + uint64(f.a[d])*uint64(k)) % LargestPrime
	}

	slot := uint32(rawIndex) & (capacity - 1)
	return fingerprint, slot
}

// debugHeader describes the family's parameters for HashTable.DebugString.
func (f *L1Family) debugHeader() []string {
	return []string{
		fmt.Sprintf("Sketch size: %d", f.tupleSize),
		fmt.Sprintf("Max feature value: %d", f.maxValue),
		fmt.Sprintf("Dimensionality: %d", f.dim),
	}
}

// debugCoefficients exposes the universal-hash coefficient arrays for
// HashTable.DebugString.
func (f *L1Family) debugCoefficients() (a, b []uint32) {
	return f.a, f.b
}

// sketchCount returns the count of entries in a dimension's sorted
// sample-bit run whose Loc is <= x, via binary search over the
// monotone-prefix structure that sort order guarantees.
func sketchCount(run []SampleBit, x uint32) uint32 {
	if len(run) == 0 {
		return 0
	}
	if run[0].Loc > x {
		return 0
	}
	if run[len(run)-1].Loc <= x {
		return uint32(len(run))
	}

	low, high := 0, len(run)-1
	for low+1 < high {
		mid := (low + high) / 2
		if run[mid].Loc <= x {
			low = mid
		} else {
			high = mid
		}
	}
	return uint32(low + 1)
}

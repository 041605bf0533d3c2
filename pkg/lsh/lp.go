package lsh

import (
	"fmt"
	"math"
	"math/big"

	"github.com/liliang-cn/lshmine/pkg/container"
	"github.com/liliang-cn/lshmine/pkg/rng"
)

// PStable draws one sample from a p-stable distribution: Gaussian for
// L2, Cauchy for L1.
type PStable func(rng.Source) float64

// GaussianStable draws a standard-normal sample, appropriate for L2.
func GaussianStable(r rng.Source) float64 { return r.Gaussian() }

// CauchyStable draws a standard-Cauchy sample, appropriate for L1.
func CauchyStable(r rng.Source) float64 { return r.Cauchy() }

// LpFamily implements HashFamily[*container.Vector] using p-stable
// random projections. Unlike L1Family, the universal-hash coefficients
// here are indexed by sample (tuple index), not by dimension: the
// original lplsh implementation never exhibited the L1 indexing
// ambiguity because its outer loop already runs over tuple_size.
type LpFamily struct {
	dim       uint32
	tupleSize uint32
	width     float64
	pstable   PStable

	proj   [][]float64 // tupleSize x dim
	offset []float64   // tupleSize
	a      []uint32
	b      []uint32
}

// NewLpFamily validates the configuration and returns an LpFamily with
// no parameters generated yet; call Regenerate before the first Hash.
func NewLpFamily(dim, tupleSize uint32, width float64, pstable PStable) (*LpFamily, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive", ErrInvalidConfig)
	}
	if dim == 0 || tupleSize == 0 {
		return nil, fmt.Errorf("%w: dim and tuple_size must be positive", ErrInvalidConfig)
	}
	if pstable == nil {
		pstable = GaussianStable
	}
	return &LpFamily{dim: dim, tupleSize: tupleSize, width: width, pstable: pstable}, nil
}

// Regenerate draws fresh projection vectors, offsets, and universal-
// hash coefficients, discarding the previous ones.
func (f *LpFamily) Regenerate(r rng.Source) error {
	proj := make([][]float64, f.tupleSize)
	offset := make([]float64, f.tupleSize)
	a := make([]uint32, f.tupleSize)
	b := make([]uint32, f.tupleSize)

	for i := uint32(0); i < f.tupleSize; i++ {
		row := make([]float64, f.dim)
		for j := uint32(0); j < f.dim; j++ {
			row[j] = f.pstable(r)
		}
		proj[i] = row
		offset[i] = r.Uniform(0, f.width)
		a[i] = uint32(r.U64() & 0xFFFFFFFF)
		b[i] = uint32(r.U64() & 0xFFFFFFFF)
	}

	f.proj = proj
	f.offset = offset
	f.a = a
	f.b = b
	return nil
}

// computeHashValue is the single p-stable hash function h_i(v),
// reinterpreting the floored signed quotient as an unsigned 64-bit
// value.
func computeHashValue(v *container.Vector, proj []float64, offset, width float64) uint64 {
	var dot float64
	for _, c := range v.Data() {
		dot += c.Value * proj[c.Dim]
	}
	dot += offset
	return uint64(int64(math.Floor(dot / width)))
}

// debugHeader describes the family's parameters for HashTable.DebugString.
func (f *LpFamily) debugHeader() []string {
	return []string{
		fmt.Sprintf("Sketch size: %d", f.tupleSize),
		fmt.Sprintf("Width: %g", f.width),
		fmt.Sprintf("Dimensionality: %d", f.dim),
	}
}

// debugCoefficients exposes the universal-hash coefficient arrays for
// HashTable.DebugString.
func (f *LpFamily) debugCoefficients() (a, b []uint32) {
	return f.a, f.b
}

// Hash computes the T-function Lp sketch of v and reduces it via the
// universal-hash coefficients, accumulating in 128-bit precision
// (math/big) to avoid overflow over the full tuple.
func (f *LpFamily) Hash(v *container.Vector, capacity uint32) (uint64, uint32) {
	fingerprint := new(big.Int)
	rawIndex := new(big.Int)
	modulus := new(big.Int).SetUint64(LargestPrime64)
	term := new(big.Int)

	for i := uint32(0); i < f.tupleSize; i++ {
		hv := computeHashValue(v, f.proj[i], f.offset[i], f.width)

		term.SetUint64(uint64(f.a[i]))
		term.Mul(term, new(big.Int).SetUint64(hv))
		rawIndex.Add(rawIndex, term)
		rawIndex.Mod(rawIndex, modulus)

		term.SetUint64(uint64(f.b[i]))
		term.Mul(term, new(big.Int).SetUint64(hv))
		fingerprint.Add(fingerprint, term)
		fingerprint.Mod(fingerprint, modulus)
	}

	slot := uint32(rawIndex.Uint64()) & (capacity - 1)
	return fingerprint.Uint64(), slot
}

package metric

import (
	"fmt"
	"math"

	"github.com/hupe1980/matchgo/tags"
)

// Compile-time checks that all bit-vector metrics satisfy the interface.
var (
	_ Metric[tags.BitVector] = (*Hamming)(nil)
	_ Metric[tags.BitVector] = (*AsymmetricWrap)(nil)
	_ Metric[tags.BitVector] = (*AsymmetricNoWrap)(nil)
	_ Metric[tags.BitVector] = (*SymmetricWrap)(nil)
	_ Metric[tags.BitVector] = (*SymmetricNoWrap)(nil)
	_ Metric[tags.BitVector] = (*Streak)(nil)
)

// Hamming scores two bit vectors by the fraction of differing bits.
// Symmetric; 0 iff the vectors are identical.
type Hamming struct {
	width int
}

// NewHamming creates a Hamming metric over width-bit vectors.
func NewHamming(width int) (*Hamming, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &Hamming{width: width}, nil
}

func (m *Hamming) Width() int { return m.width }

func (m *Hamming) Name() string {
	return fmt.Sprintf("%d-bit Hamming Metric", m.width)
}

func (m *Hamming) Distance(a, b tags.BitVector) float64 {
	return float64(a.Xor(b).OnesCount()) / float64(m.width)
}

// AsymmetricWrap treats both vectors as unsigned integers and measures how
// far forward the tag sits from the query, wrapping through the maximum.
// Zero when equal; asymmetric.
type AsymmetricWrap struct {
	width int
}

// NewAsymmetricWrap creates an AsymmetricWrap metric over width-bit vectors.
func NewAsymmetricWrap(width int) (*AsymmetricWrap, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &AsymmetricWrap{width: width}, nil
}

func (m *AsymmetricWrap) Width() int { return m.width }

func (m *AsymmetricWrap) Name() string {
	return fmt.Sprintf("%d-bit Asymmetric Wrap Metric", m.width)
}

func (m *AsymmetricWrap) Distance(a, b tags.BitVector) float64 {
	return b.Sub(a).Float64() / math.Ldexp(1, m.width)
}

// AsymmetricNoWrap is AsymmetricWrap without the wrap: a tag below the query
// scores the sentinel 1.0, strictly above any in-order score. In-order
// scores divide by 2^width + 1 so they stay below the sentinel.
type AsymmetricNoWrap struct {
	width int
}

// NewAsymmetricNoWrap creates an AsymmetricNoWrap metric over width-bit
// vectors.
func NewAsymmetricNoWrap(width int) (*AsymmetricNoWrap, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &AsymmetricNoWrap{width: width}, nil
}

func (m *AsymmetricNoWrap) Width() int { return m.width }

func (m *AsymmetricNoWrap) Name() string {
	return fmt.Sprintf("%d-bit Asymmetric No-Wrap Metric", m.width)
}

func (m *AsymmetricNoWrap) Distance(a, b tags.BitVector) float64 {
	if b.Cmp(a) < 0 {
		return 1.0
	}
	return b.Sub(a).Float64() / (math.Ldexp(1, m.width) + 1)
}

// SymmetricWrap measures cyclic distance on the integer ring of width-bit
// values: the shorter way around, scaled to [0, 1]. Symmetric.
type SymmetricWrap struct {
	width int
}

// NewSymmetricWrap creates a SymmetricWrap metric over width-bit vectors.
func NewSymmetricWrap(width int) (*SymmetricWrap, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &SymmetricWrap{width: width}, nil
}

func (m *SymmetricWrap) Width() int { return m.width }

func (m *SymmetricWrap) Name() string {
	return fmt.Sprintf("%d-bit Symmetric Wrap Metric", m.width)
}

func (m *SymmetricWrap) Distance(a, b tags.BitVector) float64 {
	forward := b.Sub(a)
	backward := a.Sub(b)

	shorter := forward
	if backward.Cmp(forward) < 0 {
		shorter = backward
	}
	return shorter.Float64() / math.Ldexp(1, m.width-1)
}

// SymmetricNoWrap measures plain unsigned distance |a - b| scaled by 2^width.
// Symmetric.
type SymmetricNoWrap struct {
	width int
}

// NewSymmetricNoWrap creates a SymmetricNoWrap metric over width-bit vectors.
func NewSymmetricNoWrap(width int) (*SymmetricNoWrap, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &SymmetricNoWrap{width: width}, nil
}

func (m *SymmetricNoWrap) Width() int { return m.width }

func (m *SymmetricNoWrap) Name() string {
	return fmt.Sprintf("%d-bit Symmetric No-Wrap Metric", m.width)
}

func (m *SymmetricNoWrap) Distance(a, b tags.BitVector) float64 {
	diff := b.Sub(a)
	if a.Cmp(b) > 0 {
		diff = a.Sub(b)
	}
	return diff.Float64() / math.Ldexp(1, m.width)
}

// Streak scores two bit vectors by the unusualness of their longest matching
// streak relative to their longest mismatching streak. A long shared streak
// that would be improbable by chance yields a small distance. Symmetric.
type Streak struct {
	width int
}

// NewStreak creates a Streak metric over width-bit vectors.
func NewStreak(width int) (*Streak, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &Streak{width: width}, nil
}

func (m *Streak) Width() int { return m.width }

func (m *Streak) Name() string {
	return fmt.Sprintf("%d-bit Streak Metric", m.width)
}

func (m *Streak) Distance(a, b tags.BitVector) float64 {
	x := a.Xor(b)
	same := x.Not().LongestRunOnes()
	different := x.LongestRunOnes()

	ps := m.probabilityKBitSequence(same)
	pd := m.probabilityKBitSequence(different)

	// Unreachable for width >= 1; guards the 0/0 ratio all the same.
	if ps+pd == 0 {
		return 0.5
	}
	return 1.0 - pd/(ps+pd)
}

// probabilityKBitSequence approximates the expected number of length-k runs
// in a random width-bit string.
func (m *Streak) probabilityKBitSequence(k int) float64 {
	return float64(m.width-k+1) / math.Pow(2, float64(k))
}

package metric

import "math"

// Compile-time interface checks for the integer metrics.
var (
	_ Metric[int64]  = (*AbsDiff)(nil)
	_ Metric[uint64] = (*NextUp)(nil)
)

// AbsDiff scores two signed integers by their absolute difference, scaled
// by the maximum integer value. Symmetric; 0 iff equal. The result stays in
// [0, 1] when the difference fits in an int64; operands of opposite sign far
// enough apart score above 1.0 (up to about 2.0).
type AbsDiff struct{}

// NewAbsDiff creates an AbsDiff metric.
func NewAbsDiff() *AbsDiff { return &AbsDiff{} }

func (*AbsDiff) Width() int { return 64 }

func (*AbsDiff) Name() string { return "Absolute Integer Difference Metric" }

func (*AbsDiff) Distance(a, b int64) float64 {
	if a < b {
		a, b = b, a
	}
	// Two's-complement subtraction yields the exact magnitude even when
	// a-b overflows int64.
	return float64(uint64(a)-uint64(b)) / float64(math.MaxInt64)
}

// NextUp scores unsigned integers on the ring [0, Max]: zero when the tag
// equals the query, growing as the tag moves forward from it and wrapping
// through Max back around. Asymmetric.
type NextUp struct {
	max uint64
}

// NewNextUp creates a NextUp metric over the ring [0, max].
func NewNextUp(max uint64) (*NextUp, error) {
	if max == 0 {
		return nil, ErrInvalidMax
	}
	return &NextUp{max: max}, nil
}

func (*NextUp) Width() int { return 64 }

func (*NextUp) Name() string { return "Next Up Metric" }

// Max returns the largest value on the ring; the ring modulus is Max+1.
func (m *NextUp) Max() uint64 { return m.max }

func (m *NextUp) Distance(a, b uint64) float64 {
	mod := m.max + 1
	if mod == 0 {
		// max is the full uint64 range; native wraparound is the ring.
		return float64(b-a) / float64(m.max)
	}

	a %= mod
	b %= mod

	var diff uint64
	if b >= a {
		diff = b - a
	} else {
		diff = mod - (a - b)
	}
	return float64(diff) / float64(m.max)
}

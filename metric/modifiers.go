package metric

import (
	"fmt"

	"github.com/hupe1980/matchgo/tags"
)

var _ Metric[tags.BitVector] = (*Slide)(nil)

// Slide wraps a bit-vector metric and scores the best alignment: the minimum
// of the inner metric over all cyclic shifts of the query. Use it when the
// phase of the query within the tag is irrelevant.
type Slide struct {
	inner Metric[tags.BitVector]
}

// NewSlide wraps inner in a Slide modifier.
func NewSlide(inner Metric[tags.BitVector]) *Slide {
	return &Slide{inner: inner}
}

func (m *Slide) Width() int { return m.inner.Width() }

func (m *Slide) Name() string { return "Sliding " + m.inner.Name() }

func (m *Slide) Distance(a, b tags.BitVector) float64 {
	dup := a
	best := 1.0
	for i := 0; i < m.inner.Width(); i++ {
		if d := m.inner.Distance(dup, b); d < best {
			best = d
		}
		dup = dup.RotL(1)
	}
	return best
}

// Anti wraps a metric and inverts its sense: distance becomes 1 - inner.
// Composing dissimilarity-seeking variants is its whole job, and wrapping
// twice restores the original metric.
type Anti[T any] struct {
	inner Metric[T]
}

// NewAnti wraps inner in an Anti modifier.
func NewAnti[T any](inner Metric[T]) *Anti[T] {
	return &Anti[T]{inner: inner}
}

func (m *Anti[T]) Width() int { return m.inner.Width() }

func (m *Anti[T]) Name() string { return "Inverse " + m.inner.Name() }

func (m *Anti[T]) Distance(a, b T) float64 {
	return 1.0 - m.inner.Distance(a, b)
}

// Dim lifts a metric over T to fixed-length slices of T, scoring the mean of
// the component distances.
type Dim[T any] struct {
	inner Metric[T]
	dim   int
}

// NewDim wraps inner in a Dim modifier over slices of length dim.
func NewDim[T any](inner Metric[T], dim int) (*Dim[T], error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	return &Dim[T]{inner: inner, dim: dim}, nil
}

func (m *Dim[T]) Width() int { return m.dim * m.inner.Width() }

func (m *Dim[T]) Name() string {
	return fmt.Sprintf("%d-Dimensional %s", m.dim, m.inner.Name())
}

func (m *Dim[T]) Distance(a, b []T) float64 {
	if len(a) != m.dim || len(b) != m.dim {
		panic(fmt.Sprintf("metric: dimension mismatch: want %d components, got %d and %d", m.dim, len(a), len(b)))
	}

	sum := 0.0
	for d := 0; d < m.dim; d++ {
		sum += m.inner.Distance(a[d], b[d])
	}
	return sum / float64(m.dim)
}

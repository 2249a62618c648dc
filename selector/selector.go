// Package selector provides the policies that turn a score table into a
// ranked sample of uids.
//
// A selector receives the candidate uids, a read-only score table, and the
// number of results wanted. It may reorder the candidate slice as scratch
// space; callers that care about the original order must pass a copy.
//
// Threshold-style parameters follow the "negative means +Inf" convention:
// passing any negative value disables the bound.
package selector

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSkew is returned when a roulette selector is constructed
	// with a zero skew. A negative skew is not an error: it means +Inf.
	ErrInvalidSkew = errors.New("skew must be greater than zero")

	// ErrNilRand is returned when a roulette selector is constructed
	// without a random source.
	ErrNilRand = errors.New("random source must not be nil")

	// ErrNoSelectors is returned when a dynamic selector is constructed
	// with no children.
	ErrNoSelectors = errors.New("dynamic selector requires at least one child")
)

// ErrInvalidMode indicates a dynamic-selector mode outside the child range.
type ErrInvalidMode struct {
	Mode int
	Len  int
}

func (e *ErrInvalidMode) Error() string {
	return fmt.Sprintf("invalid mode %d: selector has %d children", e.Mode, e.Len)
}

// Selector chooses up to n uids from the candidates according to a policy.
type Selector interface {
	// Select returns up to n chosen uids. The uids slice may be
	// reordered as a side effect; scores is never written.
	Select(uids []uint64, scores map[uint64]float64, n int) []uint64

	// Name returns a stable human-readable label for diagnostics.
	Name() string
}

// Rand is the source of randomness consumed by the roulette selector.
// Both *rand.Rand and *util.RNG satisfy it.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// resolveBound applies the negative-means-+Inf convention.
func resolveBound(v float64) float64 {
	if v < 0 {
		return math.Inf(1)
	}
	return v
}

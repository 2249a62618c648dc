package selector

import (
	"math"
	"sort"
)

var _ Selector = (*Ranked)(nil)

// Ranked returns the candidates with the n smallest scores, in non-decreasing
// score order, dropping any whose score exceeds the threshold. Ordering among
// equal scores is unspecified.
type Ranked struct {
	threshold float64
}

// NewRanked creates a ranked selector. A negative threshold means +Inf,
// i.e. no score is dropped.
func NewRanked(threshold float64) *Ranked {
	return &Ranked{threshold: resolveBound(threshold)}
}

func (s *Ranked) Name() string { return "Ranked Selector" }

// Threshold returns the resolved score threshold.
func (s *Ranked) Threshold() float64 { return s.threshold }

func (s *Ranked) Select(uids []uint64, scores map[uint64]float64, n int) []uint64 {
	if n <= 0 || len(uids) == 0 {
		return nil
	}

	back := 0

	if float64(n) < math.Log2(float64(len(uids))) {
		// Bounded selection sort: pull the sub-threshold minimum into
		// each of the first n slots. Cheaper than a full sort when n
		// is small relative to the candidate count.
		for ; back < n; back++ {
			minIndex := -1
			for j := back; j < len(uids); j++ {
				if scores[uids[j]] > s.threshold {
					continue
				}
				if minIndex == -1 || scores[uids[j]] < scores[uids[minIndex]] {
					minIndex = j
				}
			}
			if minIndex == -1 {
				break
			}
			uids[back], uids[minIndex] = uids[minIndex], uids[back]
		}
	} else {
		sort.Slice(uids, func(i, j int) bool {
			return scores[uids[i]] < scores[uids[j]]
		})

		for back < len(uids) && back < n && scores[uids[back]] <= s.threshold {
			back++
		}
	}

	out := make([]uint64, back)
	copy(out, uids[:back])
	return out
}

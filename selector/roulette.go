package selector

import (
	"math"

	"github.com/hupe1980/matchgo/internal/indexmap"
)

var _ Selector = (*Roulette)(nil)

// RouletteOptions contains configuration options for the roulette selector.
type RouletteOptions struct {
	// Threshold is the maximum raw score a candidate may have to be
	// considered at all. Negative means +Inf.
	Threshold float64

	// Skew shapes the sampling distribution: close to zero weights the
	// best matches very heavily, large values flatten toward uniform.
	// Negative means +Inf (fully uniform); zero is invalid.
	Skew float64

	// MaxBaseline clamps the normalization floor subtracted from scores
	// before weighting. Negative means +Inf (no clamp). The default of
	// 1.0 matches hosts whose unregulated scores never exceed 1.0.
	MaxBaseline float64
}

// DefaultRouletteOptions contains the default configuration options for the
// roulette selector.
var DefaultRouletteOptions = RouletteOptions{
	Threshold:   -1,
	Skew:        0.1,
	MaxBaseline: 1.0,
}

// Roulette chooses candidates probabilistically by match quality, with
// replacement: p(uid) is proportional to 1 / (skew + score - baseline) over
// the sub-threshold candidates.
type Roulette struct {
	rng         Rand
	threshold   float64
	skew        float64
	maxBaseline float64
}

// NewRoulette creates a roulette selector drawing from rng.
func NewRoulette(rng Rand, optFns ...func(o *RouletteOptions)) (*Roulette, error) {
	opts := DefaultRouletteOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if rng == nil {
		return nil, ErrNilRand
	}

	skew := opts.Skew
	if skew < 0 {
		skew = math.Inf(1)
	}
	if skew == 0 {
		return nil, ErrInvalidSkew
	}

	return &Roulette{
		rng:         rng,
		threshold:   resolveBound(opts.Threshold),
		skew:        skew,
		maxBaseline: resolveBound(opts.MaxBaseline),
	}, nil
}

func (s *Roulette) Name() string { return "Roulette Selector" }

func (s *Roulette) Select(uids []uint64, scores map[uint64]float64, n int) []uint64 {
	// Partition the sub-threshold candidates to the front, tracking the
	// best score seen anywhere.
	partition := 0
	minScore := math.Inf(1)
	for i := range uids {
		score := scores[uids[i]]
		if score < minScore {
			minScore = score
		}
		if score <= s.threshold {
			uids[i], uids[partition] = uids[partition], uids[i]
			partition++
		}
	}

	if partition == 0 || n <= 0 {
		return nil
	}

	// The baseline keeps regulated score ranges comparable: relative
	// weights depend on the gap above the best match, not its absolute
	// value, clamped so upregulation cannot blow up the dynamic range.
	baseline := math.Min(minScore, s.maxBaseline)

	weights := indexmap.New(partition)
	for p := 0; p < partition; p++ {
		w := 1.0
		if !math.IsInf(s.skew, 1) {
			w = 1.0 / (s.skew + scores[uids[p]] - baseline)
		}
		weights.Adjust(p, w)
	}

	res := make([]uint64, 0, n)
	total := weights.Total()
	for j := 0; j < n; j++ {
		res = append(res, uids[weights.Index(s.rng.Float64()*total)])
	}
	return res
}

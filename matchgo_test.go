package matchgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/matchgo/metric"
	"github.com/hupe1980/matchgo/selector"
	"github.com/hupe1980/matchgo/tags"
	"github.com/hupe1980/matchgo/util"
)

func newHammingBin(t *testing.T, sel selector.Selector, optFns ...func(o *Options)) *MatchBin[tags.BitVector, string] {
	t.Helper()

	hamming, err := metric.NewHamming(8)
	require.NoError(t, err)

	bin, err := New[tags.BitVector, string](hamming, sel, optFns...)
	require.NoError(t, err)
	return bin
}

func TestNewValidation(t *testing.T) {
	hamming, err := metric.NewHamming(8)
	require.NoError(t, err)

	t.Run("NilMetric", func(t *testing.T) {
		_, err := New[tags.BitVector, string](nil, selector.NewRanked(-1))
		assert.ErrorIs(t, err, ErrNilMetric)
	})

	t.Run("NilSelector", func(t *testing.T) {
		_, err := New[tags.BitVector, string](hamming, nil)
		assert.ErrorIs(t, err, ErrNilSelector)
	})
}

func TestPutGetErase(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	uid := bin.Put(tags.MustParse("00001111"), "first")
	assert.Equal(t, uint64(0), uid)

	second := bin.Put(tags.MustParse("11110000"), "second")
	assert.Equal(t, uint64(1), second)
	assert.Equal(t, 2, bin.Size())

	t.Run("Get", func(t *testing.T) {
		val, err := bin.Get(uid)
		require.NoError(t, err)
		assert.Equal(t, "first", val)
	})

	t.Run("GetTag", func(t *testing.T) {
		tag, err := bin.GetTag(uid)
		require.NoError(t, err)
		assert.True(t, tag.Equal(tags.MustParse("00001111")))
	})

	t.Run("GetUnknown", func(t *testing.T) {
		_, err := bin.Get(99)
		var unknown *ErrUnknownUID
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, uint64(99), unknown.UID)
	})

	t.Run("Erase", func(t *testing.T) {
		assert.True(t, bin.Erase(uid))
		assert.Equal(t, 1, bin.Size())

		_, err := bin.Get(uid)
		assert.Error(t, err)

		// Second erase is a silent no-op.
		assert.False(t, bin.Erase(uid))
	})

	t.Run("UIDsNeverReused", func(t *testing.T) {
		third := bin.Put(tags.MustParse("10101010"), "third")
		assert.Equal(t, uint64(2), third)
	})
}

func TestDuplicateTags(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	a := bin.Put(tags.MustParse("00000000"), "one")
	b := bin.Put(tags.MustParse("00000000"), "two")

	assert.NotEqual(t, a, b)

	got := bin.QueryIDs(tags.MustParse("00000000"), 2)
	assert.ElementsMatch(t, []uint64{a, b}, got)
}

// Hamming scores against query 00000001 rank the four tags a < b < c < d.
func TestQueryRanked(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	a := bin.Put(tags.MustParse("00000000"), "a")
	b := bin.Put(tags.MustParse("00001111"), "b")
	c := bin.Put(tags.MustParse("11110000"), "c")
	bin.Put(tags.MustParse("11111111"), "d")

	got := bin.QueryIDs(tags.MustParse("00000001"), 3)
	assert.Equal(t, []uint64{a, b, c}, got)

	values := bin.QueryValues(tags.MustParse("00000001"), 3)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

// With a threshold of 0.5, only scores 1/8 and 3/8 survive.
func TestQueryRankedThreshold(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(0.5))

	a := bin.Put(tags.MustParse("00000000"), "a")
	b := bin.Put(tags.MustParse("00001111"), "b")
	bin.Put(tags.MustParse("11110000"), "c")
	bin.Put(tags.MustParse("11111111"), "d")

	got := bin.QueryIDs(tags.MustParse("00000001"), 3)
	assert.Equal(t, []uint64{a, b}, got)
}

// NextUp on the ring [0, 9]: from query 8, tag 0 is 2 steps ahead, tag 3 is
// 5 steps, tag 7 a full 9.
func TestQueryNextUpWrap(t *testing.T) {
	nextUp, err := metric.NewNextUp(9)
	require.NoError(t, err)

	bin, err := New[uint64, string](nextUp, selector.NewRanked(-1))
	require.NoError(t, err)

	x := bin.Put(3, "x")
	bin.Put(7, "y")
	z := bin.Put(0, "z")

	got := bin.QueryIDs(8, 2)
	assert.Equal(t, []uint64{z, x}, got)
}

// Anti(Hamming) inverts the ranking of TestQueryRanked.
func TestQueryAnti(t *testing.T) {
	hamming, err := metric.NewHamming(8)
	require.NoError(t, err)

	bin, err := New[tags.BitVector, string](metric.NewAnti[tags.BitVector](hamming), selector.NewRanked(-1))
	require.NoError(t, err)

	bin.Put(tags.MustParse("00000000"), "a")
	bin.Put(tags.MustParse("00001111"), "b")
	c := bin.Put(tags.MustParse("11110000"), "c")
	d := bin.Put(tags.MustParse("11111111"), "d")

	got := bin.QueryIDs(tags.MustParse("00000001"), 2)
	assert.Equal(t, []uint64{d, c}, got)
}

func TestQuerySlide(t *testing.T) {
	hamming, err := metric.NewHamming(4)
	require.NoError(t, err)

	bin, err := New[tags.BitVector, string](metric.NewSlide(hamming), selector.NewRanked(-1))
	require.NoError(t, err)

	rotated := bin.Put(tags.MustParse("0011"), "rotated")
	bin.Put(tags.MustParse("0101"), "other")

	// Plain Hamming would score 1100 vs 0011 at the full 1.0; sliding
	// finds the exact match two rotations over.
	got := bin.QueryIDs(tags.MustParse("1100"), 1)
	require.Equal(t, []uint64{rotated}, got)
}

func TestQueryRoulette(t *testing.T) {
	roulette, err := selector.NewRoulette(util.NewRNG(99))
	require.NoError(t, err)

	bin := newHammingBin(t, roulette)

	t.Run("EmptyBin", func(t *testing.T) {
		assert.Empty(t, bin.QueryIDs(tags.MustParse("00000000"), 5))
	})

	best := bin.Put(tags.MustParse("00000000"), "best")
	bin.Put(tags.MustParse("11111111"), "worst")

	t.Run("FullLengthWithReplacement", func(t *testing.T) {
		got := bin.QueryIDs(tags.MustParse("00000000"), 100)
		require.Len(t, got, 100)

		hits := 0
		for _, uid := range got {
			if uid == best {
				hits++
			}
		}
		// Weights 1/0.1 vs 1/1.1: the exact match dominates.
		assert.Greater(t, hits, 80)
	})

	t.Run("Deterministic", func(t *testing.T) {
		r1, err := selector.NewRoulette(util.NewRNG(7))
		require.NoError(t, err)
		r2, err := selector.NewRoulette(util.NewRNG(7))
		require.NoError(t, err)

		b1 := newHammingBin(t, r1)
		b2 := newHammingBin(t, r2)
		for _, b := range []*MatchBin[tags.BitVector, string]{b1, b2} {
			b.Put(tags.MustParse("00000000"), "a")
			b.Put(tags.MustParse("00111100"), "b")
			b.Put(tags.MustParse("11111111"), "c")
		}

		assert.Equal(t,
			b1.QueryIDs(tags.MustParse("00000011"), 32),
			b2.QueryIDs(tags.MustParse("00000011"), 32),
		)
	})
}

func TestQueryDynamic(t *testing.T) {
	roulette, err := selector.NewRoulette(util.NewRNG(3))
	require.NoError(t, err)

	dyn, err := selector.NewDynamic([]selector.Selector{selector.NewRanked(-1), roulette}, 0)
	require.NoError(t, err)

	bin := newHammingBin(t, dyn)
	a := bin.Put(tags.MustParse("00000000"), "a")
	bin.Put(tags.MustParse("11111111"), "b")

	got := bin.QueryIDs(tags.MustParse("00000001"), 1)
	assert.Equal(t, []uint64{a}, got)

	require.NoError(t, dyn.SetMode(1))
	got = bin.QueryIDs(tags.MustParse("00000001"), 10)
	assert.Len(t, got, 10)
}

func TestRegulators(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	near := bin.Put(tags.MustParse("00000001"), "near")
	far := bin.Put(tags.MustParse("00111111"), "far")

	query := tags.MustParse("00000000")

	t.Run("DefaultNeutral", func(t *testing.T) {
		r, err := bin.ViewRegulator(near)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r, 0)

		got := bin.QueryIDs(query, 1)
		assert.Equal(t, []uint64{near}, got)
	})

	t.Run("DownregulationReranks", func(t *testing.T) {
		// Penalize the near entry hard enough that the far one wins:
		// 1/8 * 8 = 1.0 > 6/8.
		require.NoError(t, bin.SetRegulator(near, 8.0))

		got := bin.QueryIDs(query, 1)
		assert.Equal(t, []uint64{far}, got)
	})

	t.Run("AdjAndClamp", func(t *testing.T) {
		require.NoError(t, bin.AdjRegulator(near, -20.0))

		r, err := bin.ViewRegulator(near)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, r, 0)

		// A zero regulator makes the entry a perfect match.
		got := bin.QueryIDs(tags.MustParse("11111111"), 1)
		assert.Equal(t, []uint64{near}, got)
	})

	t.Run("UnknownUID", func(t *testing.T) {
		var unknown *ErrUnknownUID
		assert.ErrorAs(t, bin.SetRegulator(42, 1.0), &unknown)
		assert.ErrorAs(t, bin.AdjRegulator(42, 0.5), &unknown)
		_, err := bin.ViewRegulator(42)
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("EraseDropsRegulator", func(t *testing.T) {
		uid := bin.Put(tags.MustParse("01010101"), "tmp")
		require.NoError(t, bin.SetRegulator(uid, 3.0))
		require.True(t, bin.Erase(uid))

		_, err := bin.ViewRegulator(uid)
		assert.Error(t, err)
	})
}

func TestImprintRegulators(t *testing.T) {
	src := newHammingBin(t, selector.NewRanked(-1))
	dst := newHammingBin(t, selector.NewRanked(-1))

	// Same uid sequence in both bins.
	sa := src.Put(tags.MustParse("00000000"), "a")
	sb := src.Put(tags.MustParse("00000001"), "b")
	da := dst.Put(tags.MustParse("00000000"), "a")
	db := dst.Put(tags.MustParse("00000001"), "b")
	require.Equal(t, sa, da)
	require.Equal(t, sb, db)

	require.NoError(t, src.SetRegulator(sa, 0.25))
	dst.ImprintRegulators(src)

	r, err := dst.ViewRegulator(da)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r, 0)

	r, err = dst.ViewRegulator(db)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 0)
}

func TestPutMany(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	uids := bin.PutMany([]Pair[tags.BitVector, string]{
		{Tag: tags.MustParse("00000000"), Value: "a"},
		{Tag: tags.MustParse("11111111"), Value: "b"},
	})

	assert.Equal(t, []uint64{0, 1}, uids)
	assert.Equal(t, 2, bin.Size())
	assert.Equal(t, []uint64{0, 1}, bin.UIDs())
}

func TestClear(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	bin.Put(tags.MustParse("00000000"), "a")
	bin.Put(tags.MustParse("11111111"), "b")
	bin.Clear()

	assert.Equal(t, 0, bin.Size())
	assert.Empty(t, bin.QueryIDs(tags.MustParse("00000000"), 3))

	// Monotonic allocation survives a clear.
	uid := bin.Put(tags.MustParse("00000000"), "c")
	assert.Equal(t, uint64(2), uid)
}

func TestCandidateOrderIsInsertionOrder(t *testing.T) {
	bin := newHammingBin(t, selector.NewRanked(-1))

	first := bin.Put(tags.MustParse("00000000"), "first")
	second := bin.Put(tags.MustParse("00000000"), "second")
	third := bin.Put(tags.MustParse("00000000"), "third")

	bin.Erase(second)
	assert.Equal(t, []uint64{first, third}, bin.UIDs())

	// Erased entries are invisible to queries.
	got := bin.QueryIDs(tags.MustParse("00000000"), 10)
	assert.ElementsMatch(t, []uint64{first, third}, got)
}

func TestMetricsCollector(t *testing.T) {
	collector := &BasicMetricsCollector{}
	bin := newHammingBin(t, selector.NewRanked(-1), func(o *Options) {
		o.Metrics = collector
	})

	uid := bin.Put(tags.MustParse("00000000"), "a")
	bin.QueryIDs(tags.MustParse("00000001"), 1)
	bin.Erase(uid)
	bin.Erase(uid)

	assert.Equal(t, int64(1), collector.PutCount.Load())
	assert.Equal(t, int64(1), collector.QueryCount.Load())
	assert.Equal(t, int64(1), collector.ResultsTotal.Load())
	assert.Equal(t, int64(2), collector.EraseCount.Load())
	assert.Equal(t, int64(1), collector.EraseMisses.Load())
}

func TestIntegerBin(t *testing.T) {
	bin, err := New[int64, string](metric.NewAbsDiff(), selector.NewRanked(-1))
	require.NoError(t, err)

	low := bin.Put(10, "low")
	bin.Put(100000, "high")

	got := bin.QueryIDs(12, 1)
	assert.Equal(t, []uint64{low}, got)
}

func TestDimBin(t *testing.T) {
	hamming, err := metric.NewHamming(4)
	require.NoError(t, err)
	dim, err := metric.NewDim[tags.BitVector](hamming, 2)
	require.NoError(t, err)

	bin, err := New[[]tags.BitVector, string](dim, selector.NewRanked(-1))
	require.NoError(t, err)

	nearby := bin.Put([]tags.BitVector{tags.MustParse("0000"), tags.MustParse("1111")}, "nearby")
	bin.Put([]tags.BitVector{tags.MustParse("1111"), tags.MustParse("0000")}, "far")

	got := bin.QueryIDs([]tags.BitVector{tags.MustParse("0001"), tags.MustParse("1111")}, 1)
	assert.Equal(t, []uint64{nearby}, got)
}

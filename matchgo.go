package matchgo

import (
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/matchgo/metric"
	"github.com/hupe1980/matchgo/selector"
)

// Pair couples a tag with the value it labels, for bulk puts.
type Pair[T, V any] struct {
	Tag   T
	Value V
}

type binEntry[T, V any] struct {
	tag   T
	value V
}

// MatchBin is an indexed collection of (uid, tag, value) entries that
// services similarity queries by composing a metric with a selector.
//
// A bin is single-threaded: it performs no internal locking, and callers
// mixing Put/Erase/Query across goroutines must synchronize externally.
type MatchBin[T, V any] struct {
	metric   metric.Metric[T]
	selector selector.Selector

	entries    map[uint64]binEntry[T, V]
	live       *roaring64.Bitmap // uids with a live entry, ascending == insertion order
	regulators map[uint64]float64
	nextUID    uint64

	logger    *Logger
	collector MetricsCollector

	// Per-query scratch, reused across queries. Safe because the bin is
	// single-threaded.
	scratchUIDs   []uint64
	scratchScores map[uint64]float64
}

// New creates an empty MatchBin composing the given metric and selector.
func New[T, V any](m metric.Metric[T], sel selector.Selector, optFns ...func(o *Options)) (*MatchBin[T, V], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if m == nil {
		return nil, ErrNilMetric
	}
	if sel == nil {
		return nil, ErrNilSelector
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}

	collector := opts.Metrics
	if collector == nil {
		collector = NoopMetricsCollector{}
	}

	return &MatchBin[T, V]{
		metric:        m,
		selector:      sel,
		entries:       make(map[uint64]binEntry[T, V]),
		live:          roaring64.New(),
		regulators:    make(map[uint64]float64),
		logger:        logger,
		collector:     collector,
		scratchScores: make(map[uint64]float64),
	}, nil
}

// Put stores a tagged value and returns its freshly allocated uid.
// Uids are monotonically increasing and never reused, so duplicate tags
// remain distinguishable.
func (b *MatchBin[T, V]) Put(tag T, value V) uint64 {
	start := time.Now()

	uid := b.nextUID
	b.nextUID++

	b.entries[uid] = binEntry[T, V]{tag: tag, value: value}
	b.live.Add(uid)

	b.logger.LogPut(uid, len(b.entries))
	b.collector.RecordPut(time.Since(start))
	return uid
}

// PutMany stores a batch of tagged values, returning the allocated uids in
// input order.
func (b *MatchBin[T, V]) PutMany(pairs []Pair[T, V]) []uint64 {
	uids := make([]uint64, len(pairs))
	for i, p := range pairs {
		uids[i] = b.Put(p.Tag, p.Value)
	}
	return uids
}

// Erase removes the entry behind uid, reporting whether one was present.
// Erasing an absent uid is a silent no-op apart from the return value.
func (b *MatchBin[T, V]) Erase(uid uint64) bool {
	start := time.Now()

	_, found := b.entries[uid]
	if found {
		delete(b.entries, uid)
		delete(b.regulators, uid)
		b.live.Remove(uid)
	}

	b.logger.LogErase(uid, found)
	b.collector.RecordErase(time.Since(start), found)
	return found
}

// Get returns the value behind uid.
func (b *MatchBin[T, V]) Get(uid uint64) (V, error) {
	e, ok := b.entries[uid]
	if !ok {
		var zero V
		return zero, &ErrUnknownUID{UID: uid}
	}
	return e.value, nil
}

// GetTag returns the tag behind uid.
func (b *MatchBin[T, V]) GetTag(uid uint64) (T, error) {
	e, ok := b.entries[uid]
	if !ok {
		var zero T
		return zero, &ErrUnknownUID{UID: uid}
	}
	return e.tag, nil
}

// Size returns the number of live entries.
func (b *MatchBin[T, V]) Size() int {
	return int(b.live.GetCardinality())
}

// UIDs returns the live uids in insertion order.
func (b *MatchBin[T, V]) UIDs() []uint64 {
	return b.live.ToArray()
}

// Clear removes every entry and regulator. Uid allocation stays monotonic
// across clears.
func (b *MatchBin[T, V]) Clear() {
	removed := len(b.entries)

	b.entries = make(map[uint64]binEntry[T, V])
	b.regulators = make(map[uint64]float64)
	b.live.Clear()

	b.logger.LogClear(removed)
}

// QueryIDs scores every live tag against the query key and returns the uids
// chosen by the selector. An empty bin yields an empty result; queries never
// fail.
func (b *MatchBin[T, V]) QueryIDs(query T, n int) []uint64 {
	start := time.Now()

	uids := b.scratchUIDs[:0]
	scores := b.scratchScores
	clear(scores)

	it := b.live.Iterator()
	for it.HasNext() {
		uid := it.Next()
		score := b.metric.Distance(query, b.entries[uid].tag) * b.regulator(uid)
		if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
			panic("matchgo: metric produced a non-finite or negative score")
		}
		uids = append(uids, uid)
		scores[uid] = score
	}
	b.scratchUIDs = uids

	res := b.selector.Select(uids, scores, n)

	b.logger.LogQuery(n, len(uids), len(res))
	b.collector.RecordQuery(n, len(res), time.Since(start))
	return res
}

// QueryValues is QueryIDs with the chosen uids resolved to their values.
// Selectors sampling with replacement may repeat values.
func (b *MatchBin[T, V]) QueryValues(query T, n int) []V {
	uids := b.QueryIDs(query, n)

	values := make([]V, len(uids))
	for i, uid := range uids {
		values[i] = b.entries[uid].value
	}
	return values
}

// SetRegulator sets the multiplicative score regulator for uid. Values
// below zero clamp to zero; 1.0 is neutral, values below 1.0 upregulate
// (better match), values above 1.0 downregulate.
func (b *MatchBin[T, V]) SetRegulator(uid uint64, r float64) error {
	if _, ok := b.entries[uid]; !ok {
		return &ErrUnknownUID{UID: uid}
	}
	b.regulators[uid] = math.Max(0, r)
	return nil
}

// AdjRegulator adds delta to uid's regulator, clamping at zero.
func (b *MatchBin[T, V]) AdjRegulator(uid uint64, delta float64) error {
	if _, ok := b.entries[uid]; !ok {
		return &ErrUnknownUID{UID: uid}
	}
	b.regulators[uid] = math.Max(0, b.regulator(uid)+delta)
	return nil
}

// ViewRegulator returns uid's regulator.
func (b *MatchBin[T, V]) ViewRegulator(uid uint64) (float64, error) {
	if _, ok := b.entries[uid]; !ok {
		return 0, &ErrUnknownUID{UID: uid}
	}
	return b.regulator(uid), nil
}

// ImprintRegulators copies regulator state from other for every uid live in
// both bins.
func (b *MatchBin[T, V]) ImprintRegulators(other *MatchBin[T, V]) {
	it := b.live.Iterator()
	for it.HasNext() {
		uid := it.Next()
		if _, ok := other.entries[uid]; ok {
			b.regulators[uid] = other.regulator(uid)
		}
	}
}

// Stats logs a summary of the bin composition at Info level.
func (b *MatchBin[T, V]) Stats() {
	b.logger.Info("matchbin stats",
		"metric", b.metric.Name(),
		"selector", b.selector.Name(),
		"width", b.metric.Width(),
		"size", b.Size(),
		"next_uid", b.nextUID,
	)
}

func (b *MatchBin[T, V]) regulator(uid uint64) float64 {
	if r, ok := b.regulators[uid]; ok {
		return r
	}
	return 1.0
}

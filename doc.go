// Package matchgo provides a tag-based associative matching engine.
//
// A MatchBin owns a collection of (uid, tag, value) entries. Queries score
// every stored tag against a query key with a pluggable similarity metric,
// then hand the score table to a pluggable selector that turns it into a
// ranked (or sampled) list of uids. Symbolic references resolve by
// approximate similarity rather than identity, the mechanism behind
// tag-based modular genetic programming and related associative memories.
//
// The three cooperating pieces:
//
//   - metric: pure functions d(query, tag) in [0, 1], 0 meaning identical.
//     Eight variants over bit-vector and integer tag spaces, plus the
//     Slide/Anti/Dim modifiers that wrap a metric into a new one.
//   - selector: policies that turn a score table into up to n uids.
//     Ranked (lowest score first, thresholded), Roulette (thresholded
//     skew-weighted sampling with replacement), and Dynamic (mode switch
//     over owned children).
//   - MatchBin: the indexed entry collection composing one metric with one
//     selector to service queries.
//
// # Quick start
//
//	hamming, _ := metric.NewHamming(8)
//	bin, _ := matchgo.New[tags.BitVector, string](hamming, selector.NewRanked(-1))
//
//	uid := bin.Put(tags.MustParse("00001111"), "surface")
//	bin.Put(tags.MustParse("11110000"), "deep")
//
//	ids := bin.QueryIDs(tags.MustParse("00000001"), 1) // closest tag wins
//	val, _ := bin.Get(ids[0])
//
// Matching is exhaustive over the current bin contents; there are no
// approximate index structures and no persistence. A bin performs no
// internal locking: callers running Put/Erase/Query from multiple
// goroutines must synchronize externally.
package matchgo

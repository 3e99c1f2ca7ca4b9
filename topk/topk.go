// Package topk implements the bounded radix-bucketed Top-K selector: a
// fixed 260-bucket table that retains roughly the best TOP candidates
// without ever fully sorting the set.
package topk

import "sort"

const numBuckets = 260

// ScoredDoc is one candidate: a document id and its saturating score.
type ScoredDoc struct {
	DocID uint32
	Score int64
}

// bucketFor maps a non-negative score to its coarse radix bucket.
func bucketFor(score int64) int {
	switch {
	case score < 65536:
		return int(score / 256)
	case score < 100_000:
		return 256
	case score < 1_000_000:
		return 257
	case score < 10_000_000:
		return 258
	default:
		return 259
	}
}

// TopK is the query-local, single-consumer-while-building selector. It is
// not safe for concurrent Add calls.
type TopK struct {
	top        int
	buckets    [numBuckets][]ScoredDoc
	sorted     [numBuckets]bool
	minRadix   int
	maxRadix   int
	totalCount int
}

// New builds a selector that retains approximately the top `top` entries.
// top <= 0 is clamped to 1.
func New(top int) *TopK {
	if top <= 0 {
		top = 1
	}
	return &TopK{top: top, maxRadix: -1}
}

// Add records a candidate. Candidates whose bucket falls below the
// current min_radix cutoff are counted towards totalCount but not
// retained, bounding memory under a large candidate set.
func (t *TopK) Add(r ScoredDoc) {
	b := bucketFor(r.Score)
	t.totalCount++

	if b < t.minRadix {
		return
	}

	t.buckets[b] = append(t.buckets[b], r)
	t.sorted[b] = false
	if b > t.maxRadix {
		t.maxRadix = b
	}

	if t.totalCount%t.top == 0 {
		t.recomputeMinRadix()
	}
}

// recomputeMinRadix walks buckets from max_radix downward, summing sizes,
// and raises min_radix to the first bucket where the running total first
// exceeds TOP. Buckets that fall below the new cutoff are dropped.
func (t *TopK) recomputeMinRadix() {
	running := 0
	newMin := 0
	for b := t.maxRadix; b >= 0; b-- {
		running += len(t.buckets[b])
		if running > t.top {
			newMin = b
			break
		}
	}
	for b := t.minRadix; b < newMin; b++ {
		t.buckets[b] = nil
	}
	t.minRadix = newMin
}

// Len reports the number of candidates actually retained (not the total
// number of Add calls).
func (t *TopK) Len() int {
	n := 0
	for b := t.minRadix; b <= t.maxRadix; b++ {
		n += len(t.buckets[b])
	}
	return n
}

// Iterator yields the top TOP entries by descending bucket, sorting each
// bucket lazily on first visit; it is an explicit stand-in for a
// coroutine-style `yield return`.
type Iterator struct {
	t       *TopK
	radix   int
	idx     int
	yielded int
}

// Iterate returns a fresh iterator positioned at the highest populated
// bucket.
func (t *TopK) Iterate() *Iterator {
	return &Iterator{t: t, radix: t.maxRadix}
}

// Next returns the next entry in descending-bucket, then descending-score
// order, stopping once TOP entries have been yielded or buckets are
// exhausted.
func (it *Iterator) Next() (ScoredDoc, bool) {
	if it.yielded >= it.t.top {
		return ScoredDoc{}, false
	}
	for it.radix >= it.t.minRadix {
		bucket := it.t.buckets[it.radix]
		if len(bucket) == 0 {
			it.radix--
			it.idx = 0
			continue
		}
		if !it.t.sorted[it.radix] {
			sort.Slice(bucket, func(i, j int) bool { return bucket[i].Score > bucket[j].Score })
			it.t.sorted[it.radix] = true
		}
		if it.idx < len(bucket) {
			r := bucket[it.idx]
			it.idx++
			it.yielded++
			return r, true
		}
		it.radix--
		it.idx = 0
	}
	return ScoredDoc{}, false
}

// Collect drains the iterator into a slice of at most TOP entries.
func (t *TopK) Collect() []ScoredDoc {
	out := make([]ScoredDoc, 0, t.top)
	it := t.Iterate()
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

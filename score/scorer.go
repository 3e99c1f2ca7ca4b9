// Package score implements the two scorer modes on top of one shared
// driver/probe loop, unified around a single "computeFactor" seam: simple
// mode supplies a constant factor of 1, positional mode supplies the
// proximity formula.
package score

import (
	"context"
	"math"

	"github.com/ftquery/ftsearch/posting"
	"github.com/ftquery/ftsearch/query"
)

// Mode selects which proximity factor the driver/probe loop applies.
type Mode int

const (
	Simple Mode = iota
	Positional
)

// Options configures one Score call over a single segmenter group.
type Options struct {
	TotalDocuments  int64
	Mode            Mode
	OneWordOptimize bool // only meaningful when the group has one entry
	MinResultCount  int  // group_by_limit threshold for the one-word path
}

// Result is the scorer's output for one group: doc_id -> saturating score.
type Result struct {
	Scores map[uint32]int64
}

// Score runs simple mode (Mode == Simple) or positional mode (Mode ==
// Positional) over group, or the one-word optimisation when the group
// has a single entry and opts.OneWordOptimize is set.
func Score(ctx context.Context, group []*query.Entry, opts Options) (*Result, error) {
	if len(group) == 0 {
		return &Result{Scores: map[uint32]int64{}}, nil
	}
	if len(group) == 1 && opts.OneWordOptimize {
		return scoreOneWord(ctx, group[0], opts)
	}
	return scoreDriverProbe(ctx, group, opts)
}

func scoreOneWord(ctx context.Context, e *query.Entry, opts Options) (*Result, error) {
	scores := make(map[uint32]int64)
	var admitted int
	var maxSeen uint32

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok := e.Cursor.Next()
		if !ok {
			break
		}
		if admitted >= opts.MinResultCount && rec.TermFreq < maxSeen {
			continue
		}
		scores[rec.DocID] = baseScore(e, rec)
		admitted++
		if rec.TermFreq > maxSeen {
			maxSeen = rec.TermFreq
		}
	}
	return &Result{Scores: scores}, nil
}

func scoreDriverProbe(ctx context.Context, group []*query.Entry, opts Options) (*Result, error) {
	driverIdx := 0
	for i, e := range group {
		if e.Cursor.DocCount() < group[driverIdx].Cursor.DocCount() {
			driverIdx = i
		}
	}
	driver := group[driverIdx]

	scores := make(map[uint32]int64)
	matched := make([]posting.Record, len(group))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok := driver.Cursor.Next()
		if !ok {
			break
		}
		matched[driverIdx] = rec

		allMatch := true
		for i, e := range group {
			if i == driverIdx {
				continue
			}
			r, ok := e.Cursor.Seek(rec.DocID)
			if !ok || r.DocID != rec.DocID {
				allMatch = false
				break
			}
			matched[i] = r
		}
		if !allMatch {
			continue
		}

		scores[rec.DocID] = groupScore(group, matched, opts.Mode)
	}
	return &Result{Scores: scores}, nil
}

// groupScore sums the per-term contributions across one matched doc, in
// query-position order (the order segmenter groups are built in), applying
// the proximity factor relative to the previous term for every term but
// the first.
func groupScore(group []*query.Entry, matched []posting.Record, mode Mode) int64 {
	var total int64
	for i, e := range group {
		base := baseScore(e, matched[i])
		if i == 0 {
			total = AddSaturating(total, base)
			continue
		}
		factor := computeFactor(group[i-1], e, matched[i-1], matched[i], len(group), mode)
		total = AddSaturating(total, scaleSaturating(base, factor))
	}
	return total
}

// baseScore computes per_term's non-proximity-adjusted value:
// field_rank * query_rank * idf * term_freq * 1_000_000 / (norm_d_t * total_terms_in_doc).
func baseScore(e *query.Entry, rec posting.Record) int64 {
	num := mulSaturating(e.FieldRank, e.QueryRank, e.IDF, int64(rec.TermFreq), 1_000_000)
	den := e.NormDocTerm * int64(rec.TotalTermsInDoc)
	if den <= 0 {
		den = 1
	}
	return num / den
}

// computeFactor is the "unified scorer" seam named in the Design Notes: the
// only thing distinguishing simple from positional mode.
func computeFactor(prev, cur *query.Entry, prevRec, curRec posting.Record, numTerms int, mode Mode) float64 {
	if mode == Simple {
		return 1.0
	}

	qDelta := cur.FirstPosition - prev.FirstPosition
	pDelta := int(curRec.FirstPosition) - int(prevRec.FirstPosition)
	delta := math.Abs(float64(qDelta - pDelta))

	switch {
	case delta < 0.031:
		delta = 0.031
	case delta <= 1.1:
		delta = 0.5
	case delta <= 2.1:
		delta = 1.0
	}

	ratio := 1.0
	if numTerms > 1 {
		ratio = 2.0 / float64(numTerms-1)
	}

	return math.Pow(1/delta, ratio) * float64(curRec.TermFreq) * float64(prevRec.TermFreq) /
		float64(cur.QueryCount*prev.QueryCount)
}

// Package query turns the tokenized words of a user query into the
// TermEntry statistics the scorer needs, fanning out cursor acquisition
// across distinct words and partitioning overlapping tokens into disjoint
// segmenter groups.
package query

import (
	"context"
	"math"

	"github.com/ftquery/ftsearch/posting"
	"github.com/ftquery/ftsearch/util"
)

// Word is one token produced by the tokenizer port: a word, its rank
// (tokenizer-assigned weight), and its byte/character position in the
// source text.
type Word struct {
	Text     string
	Rank     int64
	Position int
}

// Entry is a TermEntry: the planner's per-distinct-word accumulator,
// carrying the cursor it acquired and the statics derived from it.
type Entry struct {
	Word          string
	QueryCount    int64
	QueryRank     int64
	FirstPosition int
	Len           int // byte length of Word, used by the segmenter

	Cursor      posting.Cursor
	IDF         int64
	NormDocTerm int64
	FieldRank   int64
}

// Flags mirrors the closed flag enumeration the query execution core accepts.
type Flags struct {
	CanLoadPartOfDocs bool
	NoAndExpression   bool
	NeedGroupBy       bool
	Not               bool
	End               int
}

// CursorSource is the injected capability the planner uses to turn a word
// into a posting cursor; concrete implementations live behind the index
// layer, out of this module's scope.
type CursorSource interface {
	Acquire(ctx context.Context, word string, withPositions, partial bool) (posting.Cursor, error)
}

// Plan is the planner's output: one Entry per distinct word plus the
// length-normalisation constant, and whether the one-word optimisation
// path applies.
type Plan struct {
	Entries         []*Entry
	NormRanks       int64
	OneWordOptimize bool
}

// clampPositive clamps field_rank/query_rank to the >= 1 invariant.
func clampPositive(v int64) int64 {
	if v <= 0 {
		return 1
	}
	return v
}

// BuildPlan runs the planner step over words: merges repeated words into a
// single Entry (summing query_rank, keeping the earliest first_position),
// acquires one cursor per distinct word concurrently (order preserved),
// and computes per-term idf/norm_d_t plus the global norm_ranks
// normaliser.
func BuildPlan(ctx context.Context, words []Word, fieldRank int64, totalDocuments int64, withPositions bool, flags Flags, src CursorSource) (*Plan, error) {
	fieldRank = clampPositive(fieldRank)

	order := make([]string, 0, len(words))
	byWord := make(map[string]*Entry, len(words))
	for _, w := range words {
		e, ok := byWord[w.Text]
		if !ok {
			e = &Entry{
				Word:          w.Text,
				FirstPosition: w.Position,
				Len:           len(w.Text),
				FieldRank:     fieldRank,
			}
			byWord[w.Text] = e
			order = append(order, w.Text)
		} else if w.Position < e.FirstPosition {
			e.FirstPosition = w.Position
		}
		e.QueryCount++
		e.QueryRank += clampPositive(w.Rank)
	}

	oneWordOptimize := flags.CanLoadPartOfDocs && flags.NoAndExpression && len(order) == 1
	partial := oneWordOptimize

	cursors, err := acquireCursors(ctx, order, withPositions, partial, src)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, len(order))
	var sumSquares int64
	for i, word := range order {
		e := byWord[word]
		c := cursors[i]
		e.Cursor = c
		e.NormDocTerm = posting.NormDocTerm(c.WordOccurrenceTotal())
		e.IDF = posting.IDF(totalDocuments, int64(c.DocCount()))
		entries[i] = e
		sumSquares += e.QueryRank * e.QueryRank
	}

	return &Plan{
		Entries:         entries,
		NormRanks:       int64(math.Sqrt(float64(sumSquares))),
		OneWordOptimize: oneWordOptimize,
	}, nil
}

// acquireCursors fans out cursor acquisition across distinct words,
// bounded concurrency, order preserved regardless of completion order.
func acquireCursors(ctx context.Context, words []string, withPositions, partial bool, src CursorSource) ([]posting.Cursor, error) {
	const maxConcurrency = 8
	return util.ConcurrentMapWithError(words, maxConcurrency, func(w string) (posting.Cursor, error) {
		return src.Acquire(ctx, w, withPositions, partial)
	})
}

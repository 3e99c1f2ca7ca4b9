package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftquery/ftsearch/posting"
	"github.com/ftquery/ftsearch/query"
)

func entryWithRecords(word string, queryRank int64, firstPos int, records []posting.Record) *query.Entry {
	c := posting.NewMemCursor(records, true)
	return &query.Entry{
		Word:          word,
		QueryCount:    1,
		QueryRank:     queryRank,
		FirstPosition: firstPos,
		Len:           len(word),
		Cursor:        c,
		FieldRank:     1,
		IDF:           posting.IDF(100, int64(c.DocCount())),
		NormDocTerm:   posting.NormDocTerm(c.WordOccurrenceTotal()),
	}
}

// Scenario 1: a single term ranks its three matching docs by term_freq.
func TestScore_SingleTermRanksByTermFreq(t *testing.T) {
	e := entryWithRecords("cat", 1, 0, []posting.Record{
		{DocID: 1, TermFreq: 3, TotalTermsInDoc: 10, FirstPosition: 0},
		{DocID: 2, TermFreq: 7, TotalTermsInDoc: 10, FirstPosition: 0},
		{DocID: 3, TermFreq: 1, TotalTermsInDoc: 10, FirstPosition: 0},
	})

	res, err := Score(context.Background(), []*query.Entry{e}, Options{TotalDocuments: 100, Mode: Simple})
	require.NoError(t, err)
	require.Len(t, res.Scores, 3)
	assert.Greater(t, res.Scores[2], res.Scores[1])
	assert.Greater(t, res.Scores[1], res.Scores[3])
}

// Scenario 2: two AND'd terms only score docs present in both postings.
func TestScore_TwoTermExactMatchOnly(t *testing.T) {
	a := entryWithRecords("black", 1, 0, []posting.Record{
		{DocID: 1, TermFreq: 2, TotalTermsInDoc: 20, FirstPosition: 0},
		{DocID: 2, TermFreq: 4, TotalTermsInDoc: 20, FirstPosition: 0},
	})
	b := entryWithRecords("cat", 1, 6, []posting.Record{
		{DocID: 2, TermFreq: 1, TotalTermsInDoc: 20, FirstPosition: 6},
		{DocID: 3, TermFreq: 5, TotalTermsInDoc: 20, FirstPosition: 6},
	})

	res, err := Score(context.Background(), []*query.Entry{a, b}, Options{TotalDocuments: 100, Mode: Simple})
	require.NoError(t, err)
	require.Len(t, res.Scores, 1)
	_, ok := res.Scores[2]
	assert.True(t, ok)
}

// Scenario 3: positional mode rewards the doc where the terms sit adjacent
// in the same order as the query over a doc where they're far apart.
func TestScore_PositionalRewardsProximity(t *testing.T) {
	a := entryWithRecords("black", 1, 0, []posting.Record{
		{DocID: 1, TermFreq: 1, TotalTermsInDoc: 50, FirstPosition: 0},
		{DocID: 2, TermFreq: 1, TotalTermsInDoc: 50, FirstPosition: 0},
	})
	bAdjacent := entryWithRecords("cat", 1, 6, []posting.Record{
		{DocID: 1, TermFreq: 1, TotalTermsInDoc: 50, FirstPosition: 1},
	})
	bFar := entryWithRecords("cat", 1, 6, []posting.Record{
		{DocID: 2, TermFreq: 1, TotalTermsInDoc: 50, FirstPosition: 40},
	})

	adjacent, err := Score(context.Background(), []*query.Entry{a, bAdjacent}, Options{TotalDocuments: 100, Mode: Positional})
	require.NoError(t, err)
	far, err := Score(context.Background(), []*query.Entry{a, bFar}, Options{TotalDocuments: 100, Mode: Positional})
	require.NoError(t, err)

	require.Contains(t, adjacent.Scores, uint32(1))
	require.Contains(t, far.Scores, uint32(2))
	assert.Greater(t, adjacent.Scores[1], far.Scores[2])
}

// The one-word optimisation admits unconditionally until MinResultCount
// records are in, then drops any term_freq below the running max.
func TestScore_OneWordOptimizationThreshold(t *testing.T) {
	records := []posting.Record{
		{DocID: 1, TermFreq: 2, TotalTermsInDoc: 10},
		{DocID: 2, TermFreq: 5, TotalTermsInDoc: 10},
		{DocID: 3, TermFreq: 3, TotalTermsInDoc: 10},
		{DocID: 4, TermFreq: 1, TotalTermsInDoc: 10},
		{DocID: 5, TermFreq: 6, TotalTermsInDoc: 10},
		{DocID: 6, TermFreq: 4, TotalTermsInDoc: 10},
	}
	c := posting.NewPartialMemCursor(records, 6, false)
	e := &query.Entry{
		Word: "cat", QueryCount: 1, QueryRank: 1, FieldRank: 1,
		Cursor:      c,
		IDF:         posting.IDF(100, int64(c.DocCount())),
		NormDocTerm: posting.NormDocTerm(c.WordOccurrenceTotal()),
	}

	res, err := Score(context.Background(), []*query.Entry{e}, Options{
		TotalDocuments: 100, Mode: Simple, OneWordOptimize: true, MinResultCount: 3,
	})
	require.NoError(t, err)

	_, has4 := res.Scores[4]
	_, has6 := res.Scores[6]
	assert.False(t, has4)
	assert.False(t, has6)
	for _, id := range []uint32{1, 2, 3, 5} {
		assert.Contains(t, res.Scores, id)
	}
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftquery/ftsearch/mirror"
	"github.com/ftquery/ftsearch/posting"
	"github.com/ftquery/ftsearch/query"
	"github.com/ftquery/ftsearch/resultset"
	"github.com/ftquery/ftsearch/score"
	"github.com/ftquery/ftsearch/tokenize"
)

type memSource struct {
	cursors map[string][]posting.Record
}

func (m memSource) Acquire(ctx context.Context, word string, withPositions, partial bool) (posting.Cursor, error) {
	recs, ok := m.cursors[word]
	if !ok {
		return posting.Empty(), nil
	}
	if partial {
		return posting.NewPartialMemCursor(recs, len(recs)*10, withPositions), nil
	}
	return posting.NewMemCursor(recs, withPositions), nil
}

type noDeletions struct{}

func (noDeletions) Contains(uint32) bool { return false }

type setDeletions map[uint32]struct{}

func (s setDeletions) Contains(id uint32) bool { _, ok := s[id]; return ok }

func newEngine(src memSource, deletion resultset.DeletionFilter) *Engine {
	return &Engine{
		Tokenizer:      tokenize.NewDefault(),
		Source:         src,
		Deletion:       deletion,
		Mode:           score.Simple,
		Top:            10,
		MinResultCount: 100,
	}
}

func TestExecute_TwoTermAndReturnsSharedDocOnly(t *testing.T) {
	src := memSource{cursors: map[string][]posting.Record{
		"black": {{DocID: 1, TermFreq: 2, TotalTermsInDoc: 20}, {DocID: 2, TermFreq: 4, TotalTermsInDoc: 20}},
		"cat":   {{DocID: 2, TermFreq: 1, TotalTermsInDoc: 20}, {DocID: 3, TermFreq: 5, TotalTermsInDoc: 20}},
	}}
	e := newEngine(src, noDeletions{})

	rs, err := e.Execute(context.Background(), Query{Kind: MultiString, Text: "black cat"}, 1, 100, query.Flags{}, nil)
	require.NoError(t, err)
	require.Len(t, rs.Scores, 1)
	assert.Contains(t, rs.Scores, uint32(2))
}

func TestExecute_DeletionFilterDropsTombstonedDoc(t *testing.T) {
	src := memSource{cursors: map[string][]posting.Record{
		"cat": {{DocID: 1, TermFreq: 3, TotalTermsInDoc: 10}, {DocID: 2, TermFreq: 5, TotalTermsInDoc: 10}},
	}}
	e := newEngine(src, setDeletions{2: struct{}{}})

	rs, err := e.Execute(context.Background(), Query{Kind: MultiString, Text: "cat"}, 1, 100, query.Flags{}, nil)
	require.NoError(t, err)
	assert.NotContains(t, rs.Scores, uint32(2))
	assert.Contains(t, rs.Scores, uint32(1))
}

func TestExecute_OneWordOptimizationThreshold(t *testing.T) {
	src := memSource{cursors: map[string][]posting.Record{
		"cat": {
			{DocID: 1, TermFreq: 2, TotalTermsInDoc: 10},
			{DocID: 2, TermFreq: 5, TotalTermsInDoc: 10},
			{DocID: 3, TermFreq: 3, TotalTermsInDoc: 10},
			{DocID: 4, TermFreq: 1, TotalTermsInDoc: 10},
			{DocID: 5, TermFreq: 6, TotalTermsInDoc: 10},
		},
	}}
	e := newEngine(src, noDeletions{})
	e.MinResultCount = 3

	rs, err := e.Execute(context.Background(),
		Query{Kind: MultiString, Text: "cat"}, 1, 100,
		query.Flags{CanLoadPartOfDocs: true, NoAndExpression: true}, nil)
	require.NoError(t, err)
	assert.NotContains(t, rs.Scores, uint32(4))
	assert.Contains(t, rs.Scores, uint32(5))
}

func TestExecute_InvalidLikeLiteralAfterStrippingIsEmpty(t *testing.T) {
	e := newEngine(memSource{}, noDeletions{})
	_, err := e.Execute(context.Background(), Query{Kind: Like, Text: "%%"}, 1, 100, query.Flags{}, nil)
	require.Error(t, err)
	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindInvalidQuery, engErr.Kind)
}

func TestExecute_CancelledContextSurfacesCancelledKind(t *testing.T) {
	e := newEngine(memSource{}, noDeletions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Execute(ctx, Query{Kind: MultiString, Text: "cat"}, 1, 100, query.Flags{}, nil)
	require.Error(t, err)
	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindCancelled, engErr.Kind)
}

// fakeMirror implements mirror.Database over an in-memory id->matches set,
// standing in for a LIKE post-filter that narrows candidates.
type fakeMirror struct {
	matches []int64
}

func (f fakeMirror) QuerySQL(ctx context.Context, text string) ([]int64, error) {
	return f.matches, nil
}

func (f fakeMirror) Close() error { return nil }

func TestExecute_LikeQueryAppliesMirrorPostFilter(t *testing.T) {
	src := memSource{cursors: map[string][]posting.Record{
		"quick": {
			{DocID: 10, TermFreq: 1, TotalTermsInDoc: 10},
			{DocID: 11, TermFreq: 1, TotalTermsInDoc: 10},
			{DocID: 12, TermFreq: 1, TotalTermsInDoc: 10},
		},
	}}
	e := newEngine(src, noDeletions{})
	e.Mirror = fakeMirror{matches: []int64{11, 12}}
	e.MirrorConfig = mirror.Config{
		IDField:        "id",
		MirrorTable:    "documents",
		Field:          "body",
		Dialect:        mirror.MySQL,
		MinResultCount: 100,
	}

	rs, err := e.Execute(context.Background(), Query{Kind: Like, Text: "%quick%"}, 1, 100,
		query.Flags{NeedGroupBy: true}, nil)
	require.NoError(t, err)
	require.Len(t, rs.Scores, 2)
	assert.Contains(t, rs.Scores, uint32(11))
	assert.Contains(t, rs.Scores, uint32(12))
	assert.NotContains(t, rs.Scores, uint32(10))
	require.NotNil(t, rs.GroupBy)
	assert.Len(t, rs.GroupBy, 3)
}

// fixedTokenizer emits a canned token list regardless of its input text,
// letting a test construct overlapping query ranges the default
// tokenizer would never produce on its own.
type fixedTokenizer struct {
	words []tokenize.Word
}

func (f fixedTokenizer) Tokenize(text string) ([]tokenize.Word, error) {
	return f.words, nil
}

// Three two-character words at positions 0, 1 and 3 overlap so that the
// segmenter must split them into two groups that both reuse the entry at
// position 3 ("de"): group 0 = [ab, de], group 1 = [bc, de]. Each group is
// scored in turn, so de's cursor must be reset before group 1 runs or it
// scores against an already-exhausted cursor and group 1 contributes
// nothing.
func TestExecute_MultiGroupScoringResetsSharedCursorBetweenGroups(t *testing.T) {
	mkRecords := func(docIDs ...uint32) []posting.Record {
		recs := make([]posting.Record, len(docIDs))
		for i, id := range docIDs {
			recs[i] = posting.Record{DocID: id, TermFreq: 1, TotalTermsInDoc: 10}
		}
		return recs
	}

	src := memSource{cursors: map[string][]posting.Record{
		"ab": mkRecords(1, 2, 3, 4, 5),
		"bc": mkRecords(1, 2, 3, 4, 6),
		"de": mkRecords(1),
	}}

	e := &Engine{
		Tokenizer: fixedTokenizer{words: []tokenize.Word{
			{Text: "ab", Rank: 1, Position: 0},
			{Text: "bc", Rank: 1, Position: 1},
			{Text: "de", Rank: 1, Position: 3},
		}},
		Source:         src,
		Deletion:       noDeletions{},
		Mode:           score.Simple,
		Top:            10,
		MinResultCount: 100,
	}

	rs, err := e.Execute(context.Background(), Query{Kind: MultiString, Text: "ab bc de"}, 1, 100, query.Flags{}, nil)
	require.NoError(t, err)
	require.Contains(t, rs.Scores, uint32(1))
	assert.Equal(t, int64(800_000), rs.Scores[1])
}

func TestExecute_PositionalModeUsesProximity(t *testing.T) {
	src := memSource{cursors: map[string][]posting.Record{
		"black": {{DocID: 1, TermFreq: 1, TotalTermsInDoc: 20, FirstPosition: 0}},
		"cat":   {{DocID: 1, TermFreq: 1, TotalTermsInDoc: 20, FirstPosition: 7}},
	}}
	e := newEngine(src, noDeletions{})
	e.Mode = score.Positional
	e.WithPositions = true

	rs, err := e.Execute(context.Background(), Query{Kind: MultiString, Text: "black cat"}, 1, 100, query.Flags{}, nil)
	require.NoError(t, err)
	require.Contains(t, rs.Scores, uint32(1))
	assert.Greater(t, rs.Scores[1], int64(0))
}

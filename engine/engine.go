// Package engine wires the posting cursor layer, the planner/segmenter,
// the scorer, the deletion filter, the combiner and (optionally) the
// mirror post-filter behind the single Execute entry point. It is the
// query execution core the rest of the packages in this module implement
// in isolation.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ftquery/ftsearch/mirror"
	"github.com/ftquery/ftsearch/query"
	"github.com/ftquery/ftsearch/resultset"
	"github.com/ftquery/ftsearch/score"
	"github.com/ftquery/ftsearch/tokenize"
	"github.com/ftquery/ftsearch/topk"
)

// QueryKind selects how the raw query text is interpreted: a closed tagged
// variant over {Like, MultiString}.
type QueryKind int

const (
	// MultiString is a plain multi-word query: Text is tokenized as-is.
	MultiString QueryKind = iota
	// Like is a SQL LIKE literal: Text carries '%' wildcards and doubled
	// quotes and is stripped before tokenization; the original Text is
	// also the like_string the mirror post-filter issues.
	Like
)

// Query is the engine's query-variant value: a kind tag plus the raw text
// the caller captured from the SQL-like front end.
type Query struct {
	Kind QueryKind
	Text string
}

// Engine holds everything Execute needs that is process-wide or
// table-wide: injected by the caller, never a static singleton.
type Engine struct {
	Tokenizer     tokenize.Tokenizer
	Source        query.CursorSource
	Deletion      resultset.DeletionFilter
	Mode          score.Mode
	WithPositions bool

	// Top bounds the Top-K selector TopK builds over a result set; it is
	// not applied inside Execute itself (the caller applies top-K
	// iteration), only exposed via the TopK helper below.
	Top int
	// MinResultCount is the group_by_limit threshold used by the
	// one-word optimisation. The LIKE path's fallback partial-sort size
	// when End is unbounded comes from MirrorConfig.MinResultCount.
	MinResultCount int

	// Mirror, MirrorConfig and Mapper are only consulted for Like
	// queries; Mirror == nil disables the post-filter and Like queries
	// return their scored-and-deletion-filtered candidates unverified.
	Mirror       mirror.Database
	MirrorConfig mirror.Config
	Mapper       mirror.IDMapper
}

// Execute runs the full pipeline for one query step: plan, segment,
// score each group, OR-merge and compose with upstream, drop tombstoned
// docs, and — for a Like query with a configured mirror — confirm the
// scored candidates against the relational mirror.
func (e *Engine) Execute(ctx context.Context, q Query, fieldRank, totalDocuments int64, flags query.Flags, upstream *resultset.UpstreamSet) (*resultset.ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr(KindCancelled, err)
	}

	tokenizeText := q.Text
	likeString := ""
	if q.Kind == Like {
		// Un-double quotes here: the post-filter doubles them again, so
		// the statement it issues carries Text exactly as captured.
		likeString = strings.ReplaceAll(q.Text, "''", "'")
		tokenizeText = tokenize.StripLikeLiteral(q.Text)
		if strings.TrimSpace(tokenizeText) == "" {
			return nil, wrapErr(KindInvalidQuery, fmt.Errorf("like literal %q is empty once wildcards are stripped", q.Text))
		}
	}

	tokens, err := e.Tokenizer.Tokenize(tokenizeText)
	if err != nil {
		return nil, wrapErr(KindInvalidQuery, err)
	}

	words := make([]query.Word, len(tokens))
	for i, tok := range tokens {
		words[i] = query.Word{Text: tok.Text, Rank: tok.Rank, Position: tok.Position}
	}
	slog.Debug("engine: tokenized query", "kind", q.Kind, "words", len(words))

	plan, err := query.BuildPlan(ctx, words, fieldRank, totalDocuments, e.WithPositions, flags, e.Source)
	if err != nil {
		return nil, e.classifyPipelineErr(ctx, err)
	}
	slog.Debug("engine: plan built", "entries", len(plan.Entries), "one_word_optimize", plan.OneWordOptimize)

	groups := query.Segment(plan.Entries)
	scoreGroups := make([]map[uint32]int64, 0, len(groups))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, wrapErr(KindCancelled, err)
		}
		for _, entry := range g {
			entry.Cursor.Reset()
		}
		res, err := score.Score(ctx, g, score.Options{
			TotalDocuments:  totalDocuments,
			Mode:            e.Mode,
			OneWordOptimize: plan.OneWordOptimize,
			MinResultCount:  e.MinResultCount,
		})
		if err != nil {
			return nil, e.classifyPipelineErr(ctx, err)
		}
		scoreGroups = append(scoreGroups, res.Scores)
	}

	combined := resultset.Combine(scoreGroups, flags.Not, upstream)

	oneWordNoUpstream := plan.OneWordOptimize && upstream == nil
	var relDocCount int
	if oneWordNoUpstream && len(plan.Entries) == 1 {
		relDocCount = plan.Entries[0].Cursor.RelDocCount()
	}
	filtered, deleted := resultset.ApplyDeletionFilter(combined, e.Deletion, oneWordNoUpstream, relDocCount)
	if deleted > 0 {
		slog.Debug("engine: deletion filter dropped candidates", "deleted", deleted)
	}

	if q.Kind != Like || e.Mirror == nil {
		return filtered, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, wrapErr(KindCancelled, err)
	}
	mapper := e.Mapper
	if mapper == nil {
		mapper = mirror.IdentityMapper{}
	}
	out, err := mirror.PostFilter(ctx, e.Mirror, mapper, e.MirrorConfig, filtered, likeString, flags.End, flags.NeedGroupBy)
	if err != nil {
		if ctx.Err() != nil {
			return nil, wrapErr(KindCancelled, ctx.Err())
		}
		slog.Error("engine: mirror post-filter failed", "err", err)
		return nil, wrapErr(KindMirrorUnavailable, err)
	}
	return out, nil
}

// classifyPipelineErr distinguishes a cancellation from a genuine index
// I/O failure: cursor acquisition and the scorer's per-record loop both
// check ctx between steps and simply return the context's own error, so
// any error surfacing here while ctx is already done is a cancellation,
// not a storage fault.
func (e *Engine) classifyPipelineErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return wrapErr(KindCancelled, ctx.Err())
	}
	slog.Error("engine: index I/O failure", "err", err)
	return wrapErr(KindIndexIO, err)
}

// TopK runs the bounded Top-K selector over rs's scored candidates,
// bounded at e.Top, and returns them ranked highest score first.
func (e *Engine) TopK(rs *resultset.ResultSet) []topk.ScoredDoc {
	tk := topk.New(e.Top)
	for id, s := range rs.Scores {
		tk.Add(topk.ScoredDoc{DocID: id, Score: s})
	}
	return tk.Collect()
}

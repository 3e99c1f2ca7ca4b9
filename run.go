// Package ftsearch is the module root: a thin shared driver used by every
// cmd/ftquery-<dialect> binary, in the shape of sqldef.go's Run, the
// function shared by the mysqldef/psqldef binaries it was adapted from.
// There it dumped DDLs and applied a diff; here it tokenizes one query,
// executes it against the engine, and prints the ranked candidates.
package ftsearch

import (
	"context"
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/ftquery/ftsearch/engine"
	"github.com/ftquery/ftsearch/query"
)

// RunOptions collects the per-invocation query parameters every
// cmd/ftquery-<dialect> binary parses from its own CLI flags plus
// presentation options.
type RunOptions struct {
	QueryText string
	Like      bool

	FieldRank      int64
	TotalDocuments int64

	CanLoadPartOfDocs bool
	NoAndExpression   bool
	NeedGroupBy       bool
	Not               bool
	End               int

	Verbose bool
}

// Run executes one query end to end against eng and prints the top-K
// ranked doc ids to out, in descending-score order. It is the function
// every ftquery-<dialect> main() delegates to after constructing its
// dialect-specific engine.Engine.
func Run(ctx context.Context, out io.Writer, eng *engine.Engine, opts RunOptions) error {
	kind := engine.MultiString
	if opts.Like {
		kind = engine.Like
	}

	flags := query.Flags{
		CanLoadPartOfDocs: opts.CanLoadPartOfDocs,
		NoAndExpression:   opts.NoAndExpression,
		NeedGroupBy:       opts.NeedGroupBy,
		Not:               opts.Not,
		End:               opts.End,
	}

	rs, err := eng.Execute(ctx, engine.Query{Kind: kind, Text: opts.QueryText}, opts.FieldRank, opts.TotalDocuments, flags, nil)
	if err != nil {
		return err
	}

	if opts.Verbose {
		pp.Println(rs)
	}

	for _, sd := range eng.TopK(rs) {
		fmt.Fprintf(out, "%d\t%d\n", sd.DocID, sd.Score)
	}
	return nil
}

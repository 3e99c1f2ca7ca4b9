// Command ftquery-sqlite3 runs one full-text query end to end against a
// SQLite3 mirror table. Its flag parsing is adapted from
// cmd/sqlite3def/sqlite3def.go.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	flags "github.com/jessevdk/go-flags"

	ftsearch "github.com/ftquery/ftsearch"
	"github.com/ftquery/ftsearch/config"
	"github.com/ftquery/ftsearch/engine"
	"github.com/ftquery/ftsearch/mirror"
	"github.com/ftquery/ftsearch/mirror/sqlite3"
	"github.com/ftquery/ftsearch/query"
	"github.com/ftquery/ftsearch/score"
	"github.com/ftquery/ftsearch/tokenize"
	"github.com/ftquery/ftsearch/util"
)

var version string

type cliOptions struct {
	Config         string `long:"config" description:"Table config YAML" value-name:"path" required:"true"`
	Like           bool   `long:"like" description:"Treat the query text as a SQL LIKE literal with %-wildcards"`
	FieldRank      int64  `long:"field-rank" description:"Per-query field rank override" default:"1"`
	TotalDocuments int64  `long:"total-documents" description:"Corpus-wide document count" required:"true"`
	Positional     bool   `long:"positional" description:"Score using positional proximity instead of simple mode"`
	Not            bool   `long:"not" description:"Invert the predicate"`
	NeedGroupBy    bool   `long:"need-group-by" description:"Request a group-by companion id set"`
	End            int    `long:"end" description:"Highest result index the caller will consume"`
	Verbose        bool   `long:"verbose" description:"Pretty-print the raw result set before the ranked ids"`
	Help           bool   `long:"help" description:"Show this help"`
	Version        bool   `long:"version" description:"Show this version"`
}

func main() {
	util.InitSlog()

	var opts cliOptions
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...] query-text"
	args, err := parser.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "exactly one query-text argument is required")
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	queryText := args[0]

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatal(err)
	}

	db, err := sqlite3.Open(sqlite3.Config{DBName: cfg.Connection.DBName})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	mode := score.Simple
	if opts.Positional {
		mode = score.Positional
	}

	var mapper mirror.IDMapper = mirror.IdentityMapper{}

	eng := &engine.Engine{
		Tokenizer:      tokenize.NewDefault(),
		Source:         query.UnavailableSource{},
		Mode:           mode,
		WithPositions:  opts.Positional,
		Top:            cfg.Top,
		MinResultCount: cfg.MinResultCount,
		Mirror:         db,
		MirrorConfig:   cfg.MirrorConfig(),
		Mapper:         mapper,
	}

	if err := ftsearch.Run(context.Background(), os.Stdout, eng, ftsearch.RunOptions{
		QueryText:      queryText,
		Like:           opts.Like,
		FieldRank:      opts.FieldRank,
		TotalDocuments: opts.TotalDocuments,
		NeedGroupBy:    opts.NeedGroupBy,
		Not:            opts.Not,
		End:            opts.End,
		Verbose:        opts.Verbose,
	}); err != nil {
		log.Fatal(err)
	}
}

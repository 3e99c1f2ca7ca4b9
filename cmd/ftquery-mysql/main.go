// Command ftquery-mysql runs one full-text query end to end against a
// MySQL mirror table, the LIKE-path verification store. Its flag
// parsing is adapted from cmd/mysqldef/cli.go and cmd/mysqldef/mysqldef.go.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"golang.org/x/term"

	ftsearch "github.com/ftquery/ftsearch"
	"github.com/ftquery/ftsearch/config"
	"github.com/ftquery/ftsearch/engine"
	"github.com/ftquery/ftsearch/mirror"
	"github.com/ftquery/ftsearch/mirror/mysql"
	"github.com/ftquery/ftsearch/query"
	"github.com/ftquery/ftsearch/score"
	"github.com/ftquery/ftsearch/tokenize"
	"github.com/ftquery/ftsearch/util"
)

var version string

type cliOptions struct {
	Config         string `short:"c" long:"config" description:"Table config YAML" value-name:"path" required:"true"`
	Like           bool   `long:"like" description:"Treat the query text as a SQL LIKE literal with %-wildcards"`
	FieldRank      int64  `long:"field-rank" description:"Per-query field rank override" default:"1"`
	TotalDocuments int64  `long:"total-documents" description:"Corpus-wide document count" required:"true"`
	Positional     bool   `long:"positional" description:"Score using positional proximity instead of simple mode"`
	Not            bool   `long:"not" description:"Invert the predicate"`
	NeedGroupBy    bool   `long:"need-group-by" description:"Request a group-by companion id set"`
	End            int    `long:"end" description:"Highest result index the caller will consume"`
	Verbose        bool   `long:"verbose" description:"Pretty-print the raw result set before the ranked ids"`
	PasswordPrompt bool   `long:"password-prompt" description:"Force an interactive mirror password prompt"`
	Version        bool   `long:"version" description:"Show this version"`
}

func main() {
	util.InitSlog()

	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options] query-text"
	args, err := parser.Parse()
	if err != nil {
		os.Exit(1)
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

	mysqlCfg := mysql.Config{
		Host:     cfg.Connection.Host,
		Port:     cfg.Connection.Port,
		User:     cfg.Connection.User,
		Password: cfg.Connection.Password,
		DBName:   cfg.Connection.DBName,
		Socket:   cfg.Connection.Socket,
		SslMode:  cfg.Connection.SslMode,
	}
	if opts.PasswordPrompt {
		fmt.Print("Enter mirror password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatal(err)
		}
		mysqlCfg.Password = string(pass)
	}

	db, err := mysql.Open(mysqlCfg)
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
		Source:         query.UnavailableSource{}, // real index client is injected by the embedder
		Mode:           mode,
		WithPositions:  opts.Positional,
		Top:            cfg.Top,
		MinResultCount: cfg.MinResultCount,
		Mirror:         db,
		MirrorConfig:   cfg.MirrorConfig(),
		Mapper:         mapper,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := ftsearch.Run(ctx, os.Stdout, eng, ftsearch.RunOptions{
		QueryText:         queryText,
		Like:              opts.Like,
		FieldRank:         opts.FieldRank,
		TotalDocuments:    opts.TotalDocuments,
		CanLoadPartOfDocs: false,
		NoAndExpression:   false,
		NeedGroupBy:       opts.NeedGroupBy,
		Not:               opts.Not,
		End:               opts.End,
		Verbose:           opts.Verbose,
	}); err != nil {
		log.Fatal(err)
	}
}

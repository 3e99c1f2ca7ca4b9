// Package postgres is the PostgreSQL mirror adapter, its DSN
// construction adapted from database/postgres's postgresBuildDSN.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/ftquery/ftsearch/mirror"
)

// Config is the subset of connection parameters the post-filter needs.
type Config struct {
	Host, User, Password, DBName, Socket, SslMode string
	Port                                          int
}

func buildDSN(cfg Config) string {
	host := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var options []string
	if cfg.Socket != "" {
		host = ""
		options = append(options, fmt.Sprintf("host=%s", cfg.Socket))
	}
	if cfg.SslMode != "" {
		options = append(options, fmt.Sprintf("sslmode=%s", cfg.SslMode))
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s", cfg.User, cfg.Password, host, cfg.DBName)
	if len(options) > 0 {
		dsn += "?" + strings.Join(options, "&")
	}
	return dsn
}

// Adapter is the mirror.Database implementation backed by database/sql +
// lib/pq.
type Adapter struct {
	db *sql.DB
}

// Open establishes the mirror connection.
func Open(cfg Config) (*Adapter, error) {
	db, err := sql.Open("postgres", buildDSN(cfg))
	if err != nil {
		return nil, err
	}
	return &Adapter{db: db}, nil
}

func (a *Adapter) QuerySQL(ctx context.Context, text string) ([]int64, error) {
	rows, err := a.db.QueryContext(ctx, text)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (a *Adapter) Close() error { return a.db.Close() }

var _ mirror.Database = (*Adapter)(nil)

// Package mssql is the SQL Server mirror adapter, its DSN construction
// adapted from database/mssql's mssqlBuildDSN.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/ftquery/ftsearch/mirror"
)

// Config is the subset of connection parameters the post-filter needs.
type Config struct {
	Host, User, Password, DBName string
	Port                         int
}

func buildDSN(cfg Config) string {
	query := url.Values{}
	query.Add("database", cfg.DBName)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// Adapter is the mirror.Database implementation backed by database/sql +
// denisenkom/go-mssqldb.
type Adapter struct {
	db *sql.DB
}

// Open establishes the mirror connection.
func Open(cfg Config) (*Adapter, error) {
	db, err := sql.Open("sqlserver", buildDSN(cfg))
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

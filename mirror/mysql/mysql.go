// Package mysql is the MySQL mirror adapter, its DSN construction
// adapted from database/mysql's mysqlBuildDSN.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"github.com/ftquery/ftsearch/mirror"
)

// Config is the subset of connection parameters the post-filter needs.
type Config struct {
	Host, User, Password, DBName, Socket, SslMode string
	Port                                          int
}

func buildDSN(cfg Config) string {
	c := driver.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.DBName = cfg.DBName
	c.TLSConfig = cfg.SslMode
	if cfg.Socket == "" {
		c.Net = "tcp"
		c.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	} else {
		c.Net = "unix"
		c.Addr = cfg.Socket
	}
	return c.FormatDSN()
}

// Adapter is the mirror.Database implementation backed by database/sql +
// go-sql-driver/mysql.
type Adapter struct {
	db *sql.DB
}

// Open establishes the mirror connection.
func Open(cfg Config) (*Adapter, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
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

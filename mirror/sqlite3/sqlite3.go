// Package sqlite3 is the SQLite3 mirror adapter, adapted from
// database/sqlite3's NewDatabase.
package sqlite3

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ftquery/ftsearch/mirror"
)

// Config is the subset of connection parameters the post-filter needs:
// sqlite3 mirrors identify their database by file path alone.
type Config struct {
	DBName string
}

// Adapter is the mirror.Database implementation backed by database/sql +
// mattn/go-sqlite3.
type Adapter struct {
	db *sql.DB
}

// Open establishes the mirror connection.
func Open(cfg Config) (*Adapter, error) {
	db, err := sql.Open("sqlite3", cfg.DBName)
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

// Package mirror implements the Mirror Post-Filter: verifying a LIKE
// predicate's scored candidates against the authoritative relational
// store, and the dialect-specific identifier quoting that SQL statement
// needs. Concrete dialect adapters live in mirror/mysql, mirror/postgres,
// mirror/mssql, mirror/sqlite3.
package mirror

import "context"

// Database is the mirror SQL contract: a single-column integer query,
// issued literally (no parameter binding).
type Database interface {
	QuerySQL(ctx context.Context, text string) ([]int64, error)
	Close() error
}

// IDMapper translates between the core's internal doc_id and the
// mirror's external (replacement-field) id, when the configured id_field
// is logically a replacement field.
type IDMapper interface {
	ToExternal(docID uint32) int64
	ToDoc(externalID int64) uint32
}

// IdentityMapper is the default IDMapper when id_field is the doc_id
// itself: no translation.
type IdentityMapper struct{}

func (IdentityMapper) ToExternal(docID uint32) int64 { return int64(docID) }
func (IdentityMapper) ToDoc(externalID int64) uint32 { return uint32(externalID) }

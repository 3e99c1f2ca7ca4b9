package mirror

import "strings"

// Dialect selects the SQL quoting rules a mirror statement is built with.
type Dialect int

const (
	MySQL Dialect = iota
	Postgres
	MSSQL
	SQLite3
)

// QuoteIdentifier quotes a table/column name literally, per dialect, in the
// shape of the per-dialect switch in schema.NormalizeIdentifierName: there
// it folds case for DDL comparison, here it escapes for literal SQL
// construction. Every identifier is quoted literally, never parameter-bound.
func QuoteIdentifier(name string, dialect Dialect) string {
	switch dialect {
	case MySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case MSSQL:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default: // Postgres, SQLite3
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// EscapeLikeString doubles embedded single quotes, the pre-escaping the
// mirror SQL contract requires.
func EscapeLikeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

package tokenize

import "strings"

// StripLikeLiteral undoes the SQL LIKE escaping of a captured like_string
// before tokenization: drop '%' wildcards, then un-double quoted
// apostrophes.
func StripLikeLiteral(likeString string) string {
	stripped := strings.ReplaceAll(likeString, "%", "")
	return strings.ReplaceAll(stripped, "''", "'")
}

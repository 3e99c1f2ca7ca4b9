// Package resultset implements the ResultSet/UpstreamSet data model, the
// Combiner, and the Deletion Filter pass.
package resultset

// ResultSet is a query step's output: a doc_id -> score mapping, an
// optional "this set is really its complement" flag, the caller-facing
// rel_total_count, and an optional group-by companion set.
type ResultSet struct {
	Scores        map[uint32]int64
	Not           bool
	RelTotalCount int
	GroupBy       map[uint32]struct{}
}

// UpstreamSet is a ResultSet borrowed as outer boolean context; the
// combiner never mutates it.
type UpstreamSet = ResultSet

// New returns an empty, non-negated result set.
func New() *ResultSet {
	return &ResultSet{Scores: make(map[uint32]int64)}
}

func (r *ResultSet) Contains(docID uint32) bool {
	_, ok := r.Scores[docID]
	return ok
}

func (r *ResultSet) Score(docID uint32) int64 {
	return r.Scores[docID]
}

func (r *ResultSet) Size() int {
	return len(r.Scores)
}

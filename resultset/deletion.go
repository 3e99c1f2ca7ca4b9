package resultset

import "github.com/ftquery/ftsearch/util"

// DeletionFilter is the process-lifetime membership test over tombstoned
// document ids.
type DeletionFilter interface {
	Contains(docID uint32) bool
}

// ApplyDeletionFilter walks rs in ascending doc_id order (deterministic),
// drops any key the filter tombstones, and sets rel_total_count according
// to whether the one-word-optimised path ran without an upstream set.
func ApplyDeletionFilter(rs *ResultSet, filter DeletionFilter, oneWordOptimizedNoUpstream bool, cursorRelDocCount int) (*ResultSet, int) {
	out := &ResultSet{Scores: make(map[uint32]int64, len(rs.Scores)), Not: rs.Not, GroupBy: rs.GroupBy}

	deletedCount := 0
	for id, s := range util.CanonicalUint32MapIter(rs.Scores) {
		if filter != nil && filter.Contains(id) {
			deletedCount++
			continue
		}
		out.Scores[id] = s
	}

	if oneWordOptimizedNoUpstream {
		out.RelTotalCount = cursorRelDocCount - deletedCount
	} else {
		out.RelTotalCount = out.Size()
	}

	return out, deletedCount
}

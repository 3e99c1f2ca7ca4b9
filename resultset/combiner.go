package resultset

import "github.com/ftquery/ftsearch/score"

// OrMergeGroups merges the per-segmenter-group score maps by key; on
// collision, scores add, saturating.
func OrMergeGroups(groups []map[uint32]int64) map[uint32]int64 {
	merged := make(map[uint32]int64)
	for _, g := range groups {
		for id, s := range g {
			if existing, ok := merged[id]; ok {
				merged[id] = score.AddSaturating(existing, s)
			} else {
				merged[id] = s
			}
		}
	}
	return merged
}

// Combine OR-merges the segmenter groups' score maps, marks the result as
// a complement set when not is true, then composes it with upstream (nil
// upstream is a no-op pass-through).
func Combine(groups []map[uint32]int64, not bool, upstream *UpstreamSet) *ResultSet {
	rs := &ResultSet{Scores: OrMergeGroups(groups), Not: not}
	return applyUpstream(rs, upstream)
}

// applyUpstream implements the three upstream cases (positive AND,
// negated AND-NOT, and plain OR pass-through), plus the complement-set
// AND-merge used when the current predicate is negated.
//
// Combining two already-negated sets has no single well-defined algebra;
// this implementation treats "complement AND complement" as producing no
// positive keys, since the core never materialises a complement set and
// has no key space to enumerate it against.
func applyUpstream(rs *ResultSet, upstream *UpstreamSet) *ResultSet {
	if upstream == nil {
		return rs
	}

	out := &ResultSet{Scores: make(map[uint32]int64), GroupBy: rs.GroupBy}

	if rs.Not {
		if upstream.Not {
			return out
		}
		for id, uScore := range upstream.Scores {
			if rs.Contains(id) {
				continue
			}
			out.Scores[id] = uScore
		}
		return out
	}

	for id, s := range rs.Scores {
		if upstream.Not {
			if upstream.Contains(id) {
				continue
			}
			out.Scores[id] = s
			continue
		}
		if !upstream.Contains(id) {
			continue
		}
		out.Scores[id] = score.AddSaturating(s, upstream.Score(id))
	}
	return out
}

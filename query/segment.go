package query

import "sort"

// Segment partitions entries into groups whose occupied character ranges
// [FirstPosition, FirstPosition+Len) are pairwise disjoint within each
// group. It exists because the tokenizer may emit overlapping candidate
// tokens (e.g. compound-word variants) at the same query range.
func Segment(entries []*Entry) [][]*Entry {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FirstPosition != sorted[j].FirstPosition {
			return sorted[i].FirstPosition < sorted[j].FirstPosition
		}
		return sorted[i].QueryRank > sorted[j].QueryRank
	})

	var groups [][]*Entry
	for _, t := range sorted {
		placed := false
		for gi := range groups {
			last := groups[gi][len(groups[gi])-1]
			if t.FirstPosition >= last.FirstPosition+last.Len {
				groups[gi] = append(groups[gi], t)
				placed = true
				break
			}
		}
		if !placed {
			group := prefixOfGroupZeroBefore(groups, t)
			group = append(group, t)
			groups = append(groups, group)
		}
	}

	extendWithGroupZeroTail(groups)
	return groups
}

// prefixOfGroupZeroBefore seeds a freshly opened group with any terms from
// group 0 whose ranges end at or before t's start, so the new group spans
// the query from its beginning.
func prefixOfGroupZeroBefore(groups [][]*Entry, t *Entry) []*Entry {
	if len(groups) == 0 {
		return nil
	}
	var prefix []*Entry
	for _, g0 := range groups[0] {
		if g0.FirstPosition+g0.Len <= t.FirstPosition {
			prefix = append(prefix, g0)
		}
	}
	return prefix
}

// extendWithGroupZeroTail appends to every group any compatible tail terms
// of group 0, so each group spans the full query.
func extendWithGroupZeroTail(groups [][]*Entry) {
	if len(groups) < 2 {
		return
	}
	groupZero := groups[0]
	for gi := 1; gi < len(groups); gi++ {
		g := groups[gi]
		for _, t := range groupZero {
			last := g[len(g)-1]
			if t.FirstPosition >= last.FirstPosition+last.Len && !containsEntry(g, t) {
				g = append(g, t)
				last = g[len(g)-1]
			}
		}
		groups[gi] = g
	}
}

func containsEntry(group []*Entry, t *Entry) bool {
	for _, e := range group {
		if e == t {
			return true
		}
	}
	return false
}

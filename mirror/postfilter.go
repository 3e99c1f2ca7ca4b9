package mirror

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ftquery/ftsearch/resultset"
	"github.com/ftquery/ftsearch/topk"
	"github.com/ftquery/ftsearch/util"
)

// Config names the table/column the post-filter queries and the dialect
// its SQL statement is quoted for.
type Config struct {
	IDField        string
	MirrorTable    string
	Field          string
	Dialect        Dialect
	MinResultCount int
}

// PartialSortSize computes the partial-sort bound: end+1+10 rounded up to
// the next multiple of 100, or MinResultCount when end is unbounded
// (end <= 0, meaning the caller declared no highest-consumed index).
func PartialSortSize(end, minResultCount int) int {
	if end <= 0 {
		if minResultCount <= 0 {
			return 100
		}
		return minResultCount
	}
	n := end + 1 + 10
	return ((n + 99) / 100) * 100
}

// BuildQuery constructs the single confirmatory SQL statement issued
// against the mirror table.
func BuildQuery(cfg Config, likeString string, externalIDs []int64) string {
	ids := util.TransformSlice(externalIDs, func(id int64) string {
		return strconv.FormatInt(id, 10)
	})
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s LIKE '%s' AND %s IN (%s)",
		QuoteIdentifier(cfg.IDField, cfg.Dialect),
		QuoteIdentifier(cfg.MirrorTable, cfg.Dialect),
		QuoteIdentifier(cfg.Field, cfg.Dialect),
		EscapeLikeString(likeString),
		QuoteIdentifier(cfg.IDField, cfg.Dialect),
		strings.Join(ids, ","),
	)
}

// PostFilter runs against rs, the already scored and deletion-filtered
// candidate set: partial-sorts by descending score,
// issues the confirmatory LIKE query through db (translating doc_id to
// the mirror's external id via mapper when id_field is a replacement
// field), and intersects the returned ids with the scored set.
func PostFilter(ctx context.Context, db Database, mapper IDMapper, cfg Config, rs *resultset.ResultSet, likeString string, end int, needGroupBy bool) (*resultset.ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := sortedScoredDocs(rs.Scores)
	n := PartialSortSize(end, cfg.MinResultCount)
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	externalIDs := util.TransformSlice(sorted, func(sd topk.ScoredDoc) int64 {
		return mapper.ToExternal(sd.DocID)
	})

	query := BuildQuery(cfg, likeString, externalIDs)
	matched, err := db.QuerySQL(ctx, query)
	if err != nil {
		return nil, err
	}

	matchedDocs := make(map[uint32]struct{}, len(matched))
	for _, ext := range matched {
		matchedDocs[mapper.ToDoc(ext)] = struct{}{}
	}

	out := &resultset.ResultSet{Scores: make(map[uint32]int64)}
	for _, sd := range sorted {
		if _, ok := matchedDocs[sd.DocID]; ok {
			out.Scores[sd.DocID] = sd.Score
		}
	}

	if needGroupBy && len(out.Scores) < len(sorted) {
		out.GroupBy = make(map[uint32]struct{}, len(sorted))
		for _, sd := range sorted {
			out.GroupBy[sd.DocID] = struct{}{}
		}
	}
	out.RelTotalCount = out.Size()

	return out, nil
}

func sortedScoredDocs(scores map[uint32]int64) []topk.ScoredDoc {
	out := make([]topk.ScoredDoc, 0, len(scores))
	for id, s := range util.CanonicalUint32MapIter(scores) {
		out = append(out, topk.ScoredDoc{DocID: id, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

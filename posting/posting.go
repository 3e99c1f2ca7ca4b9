// Package posting defines the per-term posting stream the query execution
// core reads from. The backing segment format is an external collaborator;
// this package only specifies the cursor contract and a reference in-memory
// implementation used by planner, scorer and engine tests.
package posting

import "math"

// NoMoreDocs is the sentinel DocID returned by Next/Seek once a cursor is
// exhausted, standing in for the "-1" sentinel of the source protocol.
const NoMoreDocs uint32 = math.MaxUint32

// Record is one entry in a term's inverted list.
type Record struct {
	DocID           uint32
	TermFreq        uint32
	TotalTermsInDoc uint32
	FirstPosition   uint32
}

// Cursor is a forward-only, optionally seekable stream over one term's
// postings. It is single-consumer: concurrent iteration by two owners is
// undefined behavior, not a guaranteed panic.
type Cursor interface {
	// Next advances to and returns the next record. ok is false once the
	// cursor is exhausted, in which case the returned record carries
	// DocID == NoMoreDocs.
	Next() (rec Record, ok bool)

	// Seek advances to the first record with DocID >= target, or exhausts
	// the cursor if none exists. Seeking to a target at or before the
	// current position behaves as if the cursor were reset first.
	Seek(target uint32) (rec Record, ok bool)

	// Reset repositions the cursor before its first record.
	Reset()

	// DocCount is the number of documents containing the term.
	DocCount() int

	// WordOccurrenceTotal is the term's occurrence count across the whole
	// corpus; norm_d_t is derived from it once, at acquisition time.
	WordOccurrenceTotal() int64

	// RelDocCount reports how many documents the cursor actually covers.
	// It differs from DocCount only for partial cursors: DocCount is the
	// true corpus-wide count, RelDocCount is how much of it this cursor
	// materialized.
	RelDocCount() int

	// WithPositions reports whether FirstPosition is meaningful on the
	// records this cursor yields. Positional scoring must not be selected
	// against a cursor that returns false here.
	WithPositions() bool
}

// NormDocTerm computes norm_d_t = floor(sqrt(wordOccurrenceTotal)).
func NormDocTerm(wordOccurrenceTotal int64) int64 {
	if wordOccurrenceTotal <= 0 {
		return 0
	}
	return int64(math.Sqrt(float64(wordOccurrenceTotal)))
}

// IDF computes idf = floor(log10(totalDocuments/docCount + 1)) + 1.
// A docCount of zero (missing term) is treated as a docCount of one,
// which yields the maximal idf the formula reaches.
func IDF(totalDocuments, docCount int64) int64 {
	if docCount <= 0 {
		docCount = 1
	}
	ratio := float64(totalDocuments)/float64(docCount) + 1
	return int64(math.Log10(ratio)) + 1
}

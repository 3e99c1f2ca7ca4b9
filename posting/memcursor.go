package posting

// MemCursor is a reference Cursor backed by a sorted, in-memory slice of
// records. It is what the planner and scorer are exercised against in
// tests, and what a small in-process index would hand out directly.
type MemCursor struct {
	records       []Record
	docCount      int
	wordOccurTotal int64
	relDocCount   int
	withPositions bool

	pos int // index of the next record Next() will return
}

// NewMemCursor builds a full cursor: relDocCount == docCount == len(records).
func NewMemCursor(records []Record, withPositions bool) *MemCursor {
	return NewPartialMemCursor(records, len(records), withPositions)
}

// NewPartialMemCursor builds a cursor whose records are only a prefix of a
// logically larger posting list of docCount documents (a "partial"
// cursor, used by the one-word optimisation).
func NewPartialMemCursor(records []Record, docCount int, withPositions bool) *MemCursor {
	var total int64
	for _, r := range records {
		total += int64(r.TermFreq)
	}
	return &MemCursor{
		records:        records,
		docCount:       docCount,
		wordOccurTotal: total,
		relDocCount:    len(records),
		withPositions:  withPositions,
	}
}

func (c *MemCursor) Next() (Record, bool) {
	if c.pos >= len(c.records) {
		return Record{DocID: NoMoreDocs}, false
	}
	rec := c.records[c.pos]
	c.pos++
	return rec, true
}

func (c *MemCursor) Seek(target uint32) (Record, bool) {
	// A seek to or before the current position restarts the scan, matching
	// seek(0) after reset being equivalent to next().
	if c.pos > 0 && c.records[c.pos-1].DocID >= target {
		c.pos = 0
	}
	for c.pos < len(c.records) {
		rec := c.records[c.pos]
		c.pos++
		if rec.DocID >= target {
			return rec, true
		}
	}
	return Record{DocID: NoMoreDocs}, false
}

func (c *MemCursor) Reset() {
	c.pos = 0
}

func (c *MemCursor) DocCount() int             { return c.docCount }
func (c *MemCursor) WordOccurrenceTotal() int64 { return c.wordOccurTotal }
func (c *MemCursor) RelDocCount() int           { return c.relDocCount }
func (c *MemCursor) WithPositions() bool        { return c.withPositions }

// Empty returns the cursor a missing term yields: doc_count = 0, never an
// error.
func Empty() *MemCursor {
	return NewMemCursor(nil, false)
}

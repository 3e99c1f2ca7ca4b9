package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemCursor_NextYieldsStrictlyIncreasingDocID(t *testing.T) {
	c := NewMemCursor([]Record{
		{DocID: 1}, {DocID: 5}, {DocID: 9},
	}, false)

	var last uint32
	var first = true
	for {
		rec, ok := c.Next()
		if !ok {
			break
		}
		if !first {
			assert.Greater(t, rec.DocID, last)
		}
		last = rec.DocID
		first = false
	}
}

func TestMemCursor_SeekFindsSmallestAtOrAboveTarget(t *testing.T) {
	c := NewMemCursor([]Record{
		{DocID: 1}, {DocID: 5}, {DocID: 9}, {DocID: 20},
	}, false)

	rec, ok := c.Seek(6)
	require.True(t, ok)
	assert.Equal(t, uint32(9), rec.DocID)

	rec, ok = c.Seek(21)
	assert.False(t, ok)
	assert.Equal(t, NoMoreDocs, rec.DocID)
}

func TestMemCursor_SeekZeroAfterResetEqualsNext(t *testing.T) {
	records := []Record{{DocID: 1}, {DocID: 5}}
	a := NewMemCursor(records, false)
	b := NewMemCursor(records, false)
	b.Reset()

	wantA, okA := a.Next()
	wantB, okB := b.Seek(0)
	assert.Equal(t, okA, okB)
	assert.Equal(t, wantA, wantB)
}

func TestMemCursor_EmptyYieldsNoRecords(t *testing.T) {
	c := Empty()
	assert.Equal(t, 0, c.DocCount())
	_, ok := c.Next()
	assert.False(t, ok)
}

func TestMemCursor_PartialTracksRelDocCountSeparateFromDocCount(t *testing.T) {
	records := []Record{{DocID: 1}, {DocID: 2}}
	c := NewPartialMemCursor(records, 50, false)
	assert.Equal(t, 50, c.DocCount())
	assert.Equal(t, 2, c.RelDocCount())
}

func TestNormDocTerm(t *testing.T) {
	assert.Equal(t, int64(3), NormDocTerm(9))
	assert.Equal(t, int64(0), NormDocTerm(0))
	assert.Equal(t, int64(0), NormDocTerm(-5))
}

func TestIDF_MonotonicInTotalDocumentsOverDocCount(t *testing.T) {
	common := IDF(100, 50)
	rare := IDF(100, 1)
	assert.GreaterOrEqual(t, rare, common)
	assert.GreaterOrEqual(t, IDF(100, 0), int64(1))
}

func TestVarintRoundTrip(t *testing.T) {
	for _, x := range []uint64{0, 1, 127, 128, 300, 1 << 20, (1 << 31) - 1} {
		buf := EncodeVarint(x)
		got, n := DecodeVarint(buf)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, x, got)
	}
}

func TestVarintDecodeTruncatedBufferReturnsZeroConsumed(t *testing.T) {
	buf := EncodeVarint(1 << 20)
	_, n := DecodeVarint(buf[:len(buf)-1])
	assert.Equal(t, 0, n)
}

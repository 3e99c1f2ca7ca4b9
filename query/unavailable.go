package query

import (
	"context"
	"fmt"

	"github.com/ftquery/ftsearch/posting"
)

// UnavailableSource is a CursorSource stand-in for an embedder that has
// not yet wired a real index client (the persistent inverted-index
// writer and segment format is an external collaborator, out of this
// module's scope). It fails every acquisition with a descriptive error
// instead of leaving a nil CursorSource to panic.
type UnavailableSource struct{}

func (UnavailableSource) Acquire(ctx context.Context, word string, withPositions, partial bool) (posting.Cursor, error) {
	return nil, fmt.Errorf("query: no posting cursor source configured for word %q", word)
}

// Package search maintains the profile search index.
//
// The index is written synchronously on the user write path (create, update,
// delete) rather than from storage-layer callbacks, so every mutation site
// is explicit.
package search

import "context"

// Indexer is the profile search index. Implementations must tolerate
// re-indexing the same user (idempotent upsert) and removing a user that
// was never indexed.
type Indexer interface {
	Index(ctx context.Context, userID uint, username, description string) error
	Remove(ctx context.Context, userID uint) error
	// Search returns the page of matching user IDs in ascending ID order
	// plus the total match count.
	Search(ctx context.Context, query string, page, perPage int) ([]uint, int, error)
}

// Noop is an Indexer that indexes nothing and matches nothing. Used when
// Redis is unavailable.
type Noop struct{}

func (Noop) Index(context.Context, uint, string, string) error { return nil }
func (Noop) Remove(context.Context, uint) error                { return nil }
func (Noop) Search(context.Context, string, int, int) ([]uint, int, error) {
	return nil, 0, nil
}

package retrieval

import "context"

// Store is the knowledge retrieval store.
type Store interface {
	Query(ctx context.Context, opt QueryOptions) ([]Snippet, error)
	Index(ctx context.Context, doc Document) (int, error)
}

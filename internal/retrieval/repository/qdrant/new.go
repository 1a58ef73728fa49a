package qdrant

import (
	"context"

	"project-assistant/internal/retrieval"
	"project-assistant/pkg/log"
	pkgQdrant "project-assistant/pkg/qdrant"
	"project-assistant/pkg/voyage"
)

// Client is the subset of the Qdrant client the store uses.
type Client interface {
	EnsureCollection(ctx context.Context, req pkgQdrant.CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collection string, req pkgQdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collection string, req pkgQdrant.SearchRequest) (*pkgQdrant.SearchResponse, error)
}

type implRepository struct {
	client     Client
	embedder   voyage.IVoyage
	collection string
	l          log.Logger
}

// New creates a Qdrant backed knowledge store.
func New(client Client, embedder voyage.IVoyage, collection string, l log.Logger) retrieval.Store {
	return &implRepository{
		client:     client,
		embedder:   embedder,
		collection: collection,
		l:          l,
	}
}

// EnsureCollection creates the knowledge collection sized for the embedder.
func (r *implRepository) EnsureCollection(ctx context.Context) error {
	return r.client.EnsureCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: r.collection,
		Vectors: pkgQdrant.VectorConfig{
			Size:     r.embedder.Dimensions(),
			Distance: pkgQdrant.DistanceCosine,
		},
	})
}

// Setup is implemented by stores that need their schema prepared at boot.
type Setup interface {
	EnsureCollection(ctx context.Context) error
}

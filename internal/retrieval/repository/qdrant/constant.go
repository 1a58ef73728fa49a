package qdrant

const (
	payloadProjectID = "project_id"
	payloadDocID     = "doc_id"
	payloadSource    = "source"
	payloadText      = "text"
	payloadChunk     = "chunk"

	chunkRunes   = 800
	chunkOverlap = 100
	maxChunks    = 64
)

// pointNamespace makes point ids deterministic per (document, chunk) so
// re-indexing the same upload overwrites instead of duplicating.
const pointNamespace = "9c3b1f0e-5a7d-4c2e-9f41-1d2a6b7e8c90"

package kb

import "context"

// Index is the vector-index collaborator. It is consumed by the chat
// assistant's retrieval side and implemented outside this repo; the pipeline
// only produces chunks for it.
type Index interface {
	// Upsert stores chunks under the named collection.
	Upsert(ctx context.Context, collection string, chunks []Chunk) error

	// Search returns the k chunks most similar to the query, best first.
	Search(ctx context.Context, query string, k int) ([]Chunk, error)
}

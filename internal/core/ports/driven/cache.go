package driven

import "context"

// EmbeddingCache stores computed embeddings keyed by model and text so
// repeated builds over an unchanged corpus skip the backend entirely.
// This is an optional service - when nil, every text is re-embedded.
type EmbeddingCache interface {
	// Get returns the cached vector for (model, text), or nil when
	// absent.
	Get(ctx context.Context, model, text string) ([]float32, error)

	// Put stores the vector for (model, text), overwriting any
	// previous entry.
	Put(ctx context.Context, model, text string, embedding []float32) error

	// Close releases resources.
	Close() error
}

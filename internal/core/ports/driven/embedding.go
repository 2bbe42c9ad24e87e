package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The graph builder depends on it; when the backend is unreachable the
// whole run fails at startup.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. Results are
	// returned in input order; callers batch purely to bound memory.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup so a missing backend fails the run
	// before any work is done.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

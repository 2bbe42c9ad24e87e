package services

import (
	"context"
	"strings"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

// fakeParser returns a fixed set of quotes (or an error).
type fakeParser struct {
	quotes []domain.Quote
	err    error
	exts   []string
	called bool
}

func (p *fakeParser) Parse(_ context.Context, _ string) ([]domain.Quote, error) {
	p.called = true
	return p.quotes, p.err
}

func (p *fakeParser) Extensions() []string { return p.exts }

// memoryQuoteStore keeps saved quotes in memory keyed by path.
type memoryQuoteStore struct {
	saved map[string][]domain.Quote
}

func newMemoryQuoteStore() *memoryQuoteStore {
	return &memoryQuoteStore{saved: make(map[string][]domain.Quote)}
}

func (s *memoryQuoteStore) Save(_ context.Context, path string, quotes []domain.Quote) error {
	s.saved[path] = quotes
	return nil
}

func (s *memoryQuoteStore) Load(_ context.Context, path string) ([]domain.Quote, error) {
	return s.saved[path], nil
}

// memoryGraphStore records saved graph artefacts.
type memoryGraphStore struct {
	neighbors domain.NeighborMap
	lexical   domain.LexicalIndex
}

func (s *memoryGraphStore) SaveNeighbors(_ context.Context, _ string, n domain.NeighborMap) error {
	s.neighbors = n
	return nil
}

func (s *memoryGraphStore) SaveLexicalIndex(_ context.Context, _ string, idx domain.LexicalIndex) error {
	s.lexical = idx
	return nil
}

func (s *memoryGraphStore) LexicalIndexPath(path string) string {
	return strings.TrimSuffix(path, ".json") + "_lexical.json"
}

// keywordEmbedder is a deterministic embedder for tests: each vector
// dimension counts occurrences of a fixed keyword, so texts sharing
// words come out similar.
type keywordEmbedder struct {
	keywords   []string
	batchSizes []int
}

func newKeywordEmbedder(keywords ...string) *keywordEmbedder {
	return &keywordEmbedder{keywords: keywords}
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, len(e.keywords))
	lower := strings.ToLower(text)
	for i, kw := range e.keywords {
		vec[i] = float32(strings.Count(lower, kw))
	}
	return vec, nil
}

func (e *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.batchSizes = append(e.batchSizes, len(texts))
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int { return len(e.keywords) }

func (e *keywordEmbedder) ModelName() string { return "keyword-test" }

func (e *keywordEmbedder) Ping(_ context.Context) error { return nil }

func (e *keywordEmbedder) Close() error { return nil }

// memoryEmbeddingCache is an in-memory EmbeddingCache.
type memoryEmbeddingCache struct {
	entries map[string][]float32
	hits    int
	puts    int
}

func newMemoryEmbeddingCache() *memoryEmbeddingCache {
	return &memoryEmbeddingCache{entries: make(map[string][]float32)}
}

func (c *memoryEmbeddingCache) Get(_ context.Context, model, text string) ([]float32, error) {
	vec, ok := c.entries[model+"\x00"+text]
	if ok {
		c.hits++
	}
	return vec, nil
}

func (c *memoryEmbeddingCache) Put(_ context.Context, model, text string, embedding []float32) error {
	c.puts++
	c.entries[model+"\x00"+text] = embedding
	return nil
}

func (c *memoryEmbeddingCache) Close() error { return nil }

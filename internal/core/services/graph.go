package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driving"
	"github.com/mapkeeper/mapkeeper-cli/internal/logger"
)

// Ensure GraphService implements the interface.
var _ driving.GraphService = (*GraphService)(nil)

// commonTermThreshold prunes keywords present in at least this share
// of the corpus from the lexical index.
const commonTermThreshold = 0.1

var (
	textWords = regexp.MustCompile(`\b\w{4,}\b`)
	metaWords = regexp.MustCompile(`\b\w{3,}\b`)
)

// GraphService builds the semantic neighbor graph and the keyword
// index from canonical quote records.
type GraphService struct {
	quotes    driven.QuoteStore
	graphs    driven.GraphStore
	embedding driven.EmbeddingService
	cache     driven.EmbeddingCache
}

// NewGraphService creates a new graph service. The cache is optional
// (can be nil); without it every text is re-embedded.
func NewGraphService(
	quotes driven.QuoteStore,
	graphs driven.GraphStore,
	embedding driven.EmbeddingService,
	cache driven.EmbeddingCache,
) *GraphService {
	return &GraphService{
		quotes:    quotes,
		graphs:    graphs,
		embedding: embedding,
		cache:     cache,
	}
}

// Build reads quotes, embeds them in batches, computes the dense
// similarity matrix and per-quote top-K neighbours, optionally builds
// the lexical index, and persists the artefacts atomically.
func (s *GraphService) Build(
	ctx context.Context, quotesPath, outputPath string, opts domain.GraphOptions,
) (*driving.GraphResult, error) {
	logger.Section("Build Neighbor Graph")

	if opts.K <= 0 {
		opts.K = domain.DefaultGraphOptions().K
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = domain.DefaultGraphOptions().BatchSize
	}

	quotes, err := s.quotes.Load(ctx, quotesPath)
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoQuotes, quotesPath)
	}
	logger.Info("Loaded %d quotes", len(quotes))

	embeddings, err := s.embedAll(ctx, quotes, opts.BatchSize)
	if err != nil {
		return nil, err
	}

	logger.Debug("Computing similarity matrix (%d x %d)", len(quotes), len(quotes))
	matrix := similarityMatrix(embeddings)

	neighbors := make(domain.NeighborMap, len(quotes))
	for i, q := range quotes {
		ids := make([]string, 0, opts.K)
		for _, idx := range topK(matrix[i], i, opts.K) {
			ids = append(ids, quotes[idx].ID)
		}
		neighbors[q.ID] = ids
	}
	logger.Info("Found up to %d neighbors for each of %d quotes", opts.K, len(quotes))

	if err := s.graphs.SaveNeighbors(ctx, outputPath, neighbors); err != nil {
		return nil, fmt.Errorf("save neighbors: %w", err)
	}

	result := &driving.GraphResult{
		Quotes:    quotes,
		Neighbors: neighbors,
	}

	if opts.Lexical {
		index := BuildLexicalIndex(quotes)
		if err := s.graphs.SaveLexicalIndex(ctx, outputPath, index); err != nil {
			return nil, fmt.Errorf("save lexical index: %w", err)
		}
		result.LexicalTerms = len(index)
		logger.Info("Built lexical index with %d terms", len(index))
	}

	return result, nil
}

// embedAll embeds the composed text of every quote in fixed-size
// batches. Batching only bounds peak memory; results come back in
// input order. Cached vectors are reused per (model, text) pair.
func (s *GraphService) embedAll(ctx context.Context, quotes []domain.Quote, batchSize int) ([][]float32, error) {
	texts := make([]string, len(quotes))
	for i, q := range quotes {
		texts[i] = q.EmbeddingText()
	}

	embeddings := make([][]float32, len(texts))

	// Indices still needing a backend call after cache lookups.
	var pending []int
	if s.cache != nil {
		for i, text := range texts {
			vec, err := s.cache.Get(ctx, s.embedding.ModelName(), text)
			if err != nil {
				return nil, fmt.Errorf("embedding cache: %w", err)
			}
			if vec != nil {
				embeddings[i] = vec
				continue
			}
			pending = append(pending, i)
		}
		logger.Debug("Embedding cache: %d hits, %d misses", len(texts)-len(pending), len(pending))
	} else {
		pending = make([]int, len(texts))
		for i := range texts {
			pending[i] = i
		}
	}

	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}

		batch := make([]string, 0, end-start)
		for _, idx := range pending[start:end] {
			batch = append(batch, texts[idx])
		}

		vectors, err := s.embedding.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embed batch %d-%d: got %d vectors for %d texts",
				start, end, len(vectors), len(batch))
		}

		for j, idx := range pending[start:end] {
			embeddings[idx] = vectors[j]
			if s.cache != nil {
				if err := s.cache.Put(ctx, s.embedding.ModelName(), texts[idx], vectors[j]); err != nil {
					logger.Warn("embedding cache write failed: %v", err)
				}
			}
		}

		logger.Debug("Embedded %d/%d texts", end, len(pending))
	}

	return embeddings, nil
}

// BuildLexicalIndex tokenizes lowercased quote text (words of length
// >= 4) plus author/title words (length >= 3), unions them per quote,
// and inverts into word -> quote ids. Terms present in at least 10% of
// quotes are pruned.
func BuildLexicalIndex(quotes []domain.Quote) domain.LexicalIndex {
	wordToQuotes := make(map[string]map[string]bool)

	for _, q := range quotes {
		words := make(map[string]bool)
		for _, w := range textWords.FindAllString(strings.ToLower(q.Text), -1) {
			words[w] = true
		}
		if q.Author != "" {
			for _, w := range metaWords.FindAllString(strings.ToLower(q.Author), -1) {
				words[w] = true
			}
		}
		if q.BookTitle != "" {
			for _, w := range metaWords.FindAllString(strings.ToLower(q.BookTitle), -1) {
				words[w] = true
			}
		}

		for w := range words {
			if wordToQuotes[w] == nil {
				wordToQuotes[w] = make(map[string]bool)
			}
			wordToQuotes[w][q.ID] = true
		}
	}

	limit := float64(len(quotes)) * commonTermThreshold
	index := make(domain.LexicalIndex)
	for word, idSet := range wordToQuotes {
		// Terms covering >= 10% of the corpus are effectively stop
		// words for retrieval purposes.
		if float64(len(idSet)) >= limit {
			continue
		}
		ids := make([]string, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		index[word] = ids
	}
	return index
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/cache/sqlite"
	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/embedding/ollama"
	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/embedding/openai"
	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/storage/file"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driving"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/services"
	"github.com/mapkeeper/mapkeeper-cli/internal/logger"
)

// pingTimeout bounds the backend reachability check before any
// embedding work starts.
const pingTimeout = 5 * time.Second

var (
	graphK         int
	graphModel     string
	graphProvider  string
	graphBatchSize int
	graphNoLexical bool
	graphNoCache   bool
)

var graphCmd = &cobra.Command{
	Use:   "graph <quotes> <output>",
	Short: "Build the nearest-neighbour graph over canonical quotes",
	Long: `Graph embeds every quote, computes pairwise cosine similarity and
writes each quote's top-K most similar quote IDs as JSON. Unless
disabled, a lexical keyword index is written next to it.

Embeddings come from a local Ollama server by default; pass
--provider openai to use the OpenAI API instead (requires
OPENAI_API_KEY).`,
	Args: cobra.ExactArgs(2),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().IntVar(&graphK, "k", 0, "neighbours per quote (default 10)")
	graphCmd.Flags().StringVar(&graphModel, "model", "", "embedding model name")
	graphCmd.Flags().StringVar(&graphProvider, "provider", "", "embedding provider: ollama or openai")
	graphCmd.Flags().IntVar(&graphBatchSize, "batch-size", 0, "embedding batch size (default 32)")
	graphCmd.Flags().BoolVar(&graphNoLexical, "no-lexical", false, "skip the lexical keyword index")
	graphCmd.Flags().BoolVar(&graphNoCache, "no-cache", false, "disable the persistent embedding cache")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	quotesPath, outputPath := args[0], args[1]

	if _, err := os.Stat(quotesPath); err != nil {
		return fmt.Errorf("quotes file not found: %s (run `mapkeeper parse` first)", quotesPath)
	}

	opts := domain.DefaultGraphOptions()
	if cfg.Graph.K > 0 {
		opts.K = cfg.Graph.K
	}
	if cfg.Graph.BatchSize > 0 {
		opts.BatchSize = cfg.Graph.BatchSize
	}
	if graphK > 0 {
		opts.K = graphK
	}
	if graphBatchSize > 0 {
		opts.BatchSize = graphBatchSize
	}
	opts.Lexical = !graphNoLexical

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}
	defer embedder.Close()

	pingCtx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
	defer cancel()
	if err := embedder.Ping(pingCtx); err != nil {
		return embeddingUnavailable(err)
	}
	logger.Debug("Embedding backend ready (model: %s)", embedder.ModelName())

	var cache driven.EmbeddingCache
	if !graphNoCache && cfg.CacheEnabled() {
		c, err := sqlite.NewCache("")
		if err != nil {
			logger.Warn("embedding cache unavailable, continuing without: %v", err)
		} else {
			cache = c
			defer c.Close()
		}
	}

	graphs := file.NewGraphStore()
	svc := services.NewGraphService(file.NewQuoteStore(), graphs, embedder, cache)

	result, err := svc.Build(cmd.Context(), quotesPath, outputPath, opts)
	if err != nil {
		return err
	}

	printGraphReport(cmd, result, graphs, outputPath, opts)
	return nil
}

// buildEmbedder constructs the embedding backend from config, flags
// and environment. Flags win over config; OLLAMA_HOST and
// OPENAI_API_KEY fill in what neither provides.
func buildEmbedder() (driven.EmbeddingService, error) {
	provider := cfg.Embedding.Provider
	if graphProvider != "" {
		provider = graphProvider
	}
	model := cfg.Embedding.Model
	if graphModel != "" {
		model = graphModel
	}

	switch provider {
	case "", "ollama":
		baseURL := cfg.Embedding.BaseURL
		if baseURL == "" {
			baseURL = os.Getenv("OLLAMA_HOST")
		}
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           baseURL,
			Model:             model,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		}), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			apiKey = cfg.Embedding.APIKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider selected but no API key: set OPENAI_API_KEY or embedding.api_key in config")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  apiKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (want ollama or openai)", provider)
	}
}

func embeddingUnavailable(err error) error {
	return fmt.Errorf("%w: %v\n\nIs the backend running? For Ollama:\n"+
		"  ollama serve\n"+
		"  ollama pull nomic-embed-text",
		domain.ErrEmbeddingUnavailable, err)
}

func printGraphReport(
	cmd *cobra.Command, result *driving.GraphResult,
	graphs *file.GraphStore, outputPath string, opts domain.GraphOptions,
) {
	cmd.Println(headingStyle.Render("Graph complete"))
	cmd.Printf("%s %s\n", labelStyle.Render("Neighbors:"), outputPath)
	cmd.Printf("%s %d quotes, up to %d neighbours each\n",
		labelStyle.Render("Size:"), len(result.Quotes), opts.K)
	if opts.Lexical {
		cmd.Printf("%s %s (%d terms)\n", labelStyle.Render("Lexical:"),
			graphs.LexicalIndexPath(outputPath), result.LexicalTerms)
	}

	byID := make(map[string]domain.Quote, len(result.Quotes))
	for _, q := range result.Quotes {
		byID[q.ID] = q
	}

	cmd.Println(labelStyle.Render("Sample:"))
	for i, q := range result.Quotes {
		if i == 3 {
			break
		}
		cmd.Printf("  %s %s\n", successStyle.Render(q.ID), truncate(q.Text, 60))
		for j, id := range result.Neighbors[q.ID] {
			if j == 5 {
				break
			}
			cmd.Printf("      %s %s\n", mutedStyle.Render(id), mutedStyle.Render(truncate(byID[id].Text, 50)))
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

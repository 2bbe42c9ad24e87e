package domain

// NeighborMap maps a quote ID to the IDs of its most similar quotes,
// ordered by descending cosine similarity, self excluded.
type NeighborMap map[string][]string

// LexicalIndex maps a lowercase keyword to the IDs of the quotes whose
// text, author or title contains it. Terms present in too large a
// share of the corpus are pruned at build time.
type LexicalIndex map[string][]string

// ParseSummary reports what a normaliser run produced. It feeds the
// operator-facing summary only and is not part of the persisted
// contract.
type ParseSummary struct {
	// Total is the number of quotes emitted.
	Total int

	// Authors counts quotes per author name.
	Authors map[string]int

	// Books counts quotes per book title.
	Books map[string]int

	// EarliestAdded and LatestAdded bound the parseable added_at
	// timestamps, in ISO-8601. Empty when no timestamp parsed.
	EarliestAdded string
	LatestAdded   string
}

// GraphOptions controls a neighbor-graph build.
type GraphOptions struct {
	// K is the number of neighbours kept per quote.
	K int

	// BatchSize bounds how many texts are embedded per model call.
	// Batching only limits peak memory; it has no effect on output.
	BatchSize int

	// Lexical enables the keyword index alongside the neighbor map.
	Lexical bool
}

// DefaultGraphOptions returns the builder defaults.
func DefaultGraphOptions() GraphOptions {
	return GraphOptions{
		K:         10,
		BatchSize: 32,
		Lexical:   true,
	}
}

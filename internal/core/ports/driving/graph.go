package driving

import (
	"context"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

// GraphResult carries the artefacts of a graph build back to the
// caller, for display purposes. The persisted outputs are written by
// the service itself.
type GraphResult struct {
	// Quotes are the input records in file order.
	Quotes []domain.Quote

	// Neighbors is the computed neighbor map.
	Neighbors domain.NeighborMap

	// LexicalTerms is the number of terms kept in the keyword index,
	// zero when the index was disabled.
	LexicalTerms int
}

// GraphService builds the semantic neighbor graph from canonical
// quote records.
type GraphService interface {
	// Build reads quotes from quotesPath, computes the neighbor map
	// and optional lexical index, and writes them under outputPath.
	Build(ctx context.Context, quotesPath, outputPath string, opts domain.GraphOptions) (*GraphResult, error)
}

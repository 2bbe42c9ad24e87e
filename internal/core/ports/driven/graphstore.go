package driven

import (
	"context"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

// GraphStore persists the artefacts of a graph build.
type GraphStore interface {
	// SaveNeighbors writes the neighbor map as a single indented JSON
	// object to path, atomically.
	SaveNeighbors(ctx context.Context, path string, neighbors domain.NeighborMap) error

	// SaveLexicalIndex writes the keyword index next to the neighbor
	// map, using a filename derived from path (<stem>_lexical.json).
	SaveLexicalIndex(ctx context.Context, path string, index domain.LexicalIndex) error

	// LexicalIndexPath returns the derived sibling path the index is
	// written to for a given neighbor-map path.
	LexicalIndexPath(path string) string
}

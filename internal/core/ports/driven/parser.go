package driven

import (
	"context"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

// HighlightParser converts one raw export format into canonical quote
// records. One implementation exists per supported export format.
type HighlightParser interface {
	// Parse reads the export at path and returns the normalised
	// quotes in source order. Returns an empty slice, not an error,
	// when the file parses but contains no usable highlights.
	Parse(ctx context.Context, path string) ([]domain.Quote, error)

	// Extensions returns the lowercase file extensions (with dot)
	// this parser handles.
	Extensions() []string
}

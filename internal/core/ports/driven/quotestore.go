package driven

import (
	"context"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

// QuoteStore persists canonical quote records as newline-delimited
// JSON, the interchange format between the parser and the builder.
type QuoteStore interface {
	// Save writes quotes as one JSON object per line, creating parent
	// directories as needed. The write is atomic: a temporary file is
	// renamed into place on success.
	Save(ctx context.Context, path string, quotes []domain.Quote) error

	// Load reads quotes back from a JSONL file. Blank lines are
	// skipped; a malformed line is an error.
	Load(ctx context.Context, path string) ([]domain.Quote, error)
}

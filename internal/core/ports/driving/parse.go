package driving

import (
	"context"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

// ParseService normalises raw highlight exports into canonical quote
// records.
type ParseService interface {
	// Parse reads the export at inputPath, writes canonical quotes to
	// outputPath and returns a summary of the run. A run that yields
	// zero quotes is an error and writes nothing.
	Parse(ctx context.Context, inputPath, outputPath string) (*domain.ParseSummary, error)
}

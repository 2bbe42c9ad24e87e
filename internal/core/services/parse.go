package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driving"
	"github.com/mapkeeper/mapkeeper-cli/internal/logger"
)

// Ensure ParseService implements the interface.
var _ driving.ParseService = (*ParseService)(nil)

// ParseService normalises one raw export into canonical quote records.
type ParseService struct {
	tabular   driven.HighlightParser
	clippings driven.HighlightParser
	store     driven.QuoteStore
}

// NewParseService creates a new parse service. The clippings parser is
// the fallback for any extension the tabular parser does not claim.
func NewParseService(tabular, clippings driven.HighlightParser, store driven.QuoteStore) *ParseService {
	return &ParseService{
		tabular:   tabular,
		clippings: clippings,
		store:     store,
	}
}

// Parse reads the export at inputPath, writes canonical quotes to
// outputPath and returns a summary. A zero-quote result is fatal and
// nothing is written.
func (s *ParseService) Parse(ctx context.Context, inputPath, outputPath string) (*domain.ParseSummary, error) {
	logger.Section("Parse Highlights")

	parser := s.selectParser(inputPath)
	logger.Debug("Input: %s", inputPath)

	quotes, err := parser.Parse(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", inputPath, err)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoQuotes, inputPath)
	}

	for i := range quotes {
		if err := quotes[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	if err := s.store.Save(ctx, outputPath, quotes); err != nil {
		return nil, fmt.Errorf("save quotes: %w", err)
	}
	logger.Info("Saved %d quotes to %s", len(quotes), outputPath)

	return Summarize(quotes), nil
}

// selectParser picks the parser by file extension. Tabular formats are
// matched explicitly; everything else is treated as clippings.
func (s *ParseService) selectParser(path string) driven.HighlightParser {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.tabular.Extensions() {
		if ext == e {
			logger.Debug("Detected format: tabular (%s)", ext)
			return s.tabular
		}
	}
	logger.Debug("Detected format: clippings")
	return s.clippings
}

// Summarize computes the operator-facing run summary from the parsed
// records. Presentation only; not part of the persisted contract.
func Summarize(quotes []domain.Quote) *domain.ParseSummary {
	summary := &domain.ParseSummary{
		Total:   len(quotes),
		Authors: make(map[string]int),
		Books:   make(map[string]int),
	}

	var dates []string
	for _, q := range quotes {
		summary.Authors[orUnknown(q.Author)]++
		summary.Books[orUnknown(q.BookTitle)]++
		if isISODate(q.AddedAt) {
			dates = append(dates, q.AddedAt)
		}
	}

	if len(dates) > 0 {
		sort.Strings(dates)
		summary.EarliestAdded = dates[0]
		summary.LatestAdded = dates[len(dates)-1]
	}

	return summary
}

// TopAuthors returns up to n (author, count) pairs by descending
// count, ties by name.
func TopAuthors(summary *domain.ParseSummary, n int) []AuthorCount {
	counts := make([]AuthorCount, 0, len(summary.Authors))
	for author, count := range summary.Authors {
		counts = append(counts, AuthorCount{Author: author, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Author < counts[j].Author
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// AuthorCount pairs an author with their quote count.
type AuthorCount struct {
	Author string
	Count  int
}

func orUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// isISODate reports whether the normalised timestamp actually parsed;
// passthrough values are excluded from the date range. ISO timestamps
// sort correctly as strings.
func isISODate(s string) bool {
	return len(s) >= 10 && s[4] == '-' && s[7] == '-'
}

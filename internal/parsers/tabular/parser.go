// Package tabular parses delimited highlight exports (CSV/TSV) with a
// header row. Column names are matched case-insensitively against a
// fixed alias table per logical field, so exports from different tools
// map onto the same canonical record.
package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
	"github.com/mapkeeper/mapkeeper-cli/internal/logger"
	"github.com/mapkeeper/mapkeeper-cli/internal/parsers"
)

// Ensure Parser implements the interface.
var _ driven.HighlightParser = (*Parser)(nil)

// sniffLen bounds how much of the file is sampled for delimiter
// detection.
const sniffLen = 1024

// columnAliases maps each logical field to the header spellings it may
// appear under, in priority order. Matching is case-insensitive.
var columnAliases = map[string][]string{
	"highlight":      {"highlight", "text", "quote", "content"},
	"book_title":     {"book title", "title", "book", "book_title"},
	"author":         {"book author", "author", "book_author"},
	"location":       {"location"},
	"note":           {"note", "notes"},
	"color":          {"color", "colour"},
	"tags":           {"tags", "tag"},
	"location_type":  {"location type", "location_type"},
	"highlighted_at": {"highlighted at", "highlighted_at", "date", "timestamp"},
	"amazon_id":      {"amazon book id", "amazon_book_id", "book_id", "id"},
}

// placeholders are values treated as absent highlight text.
var placeholders = map[string]bool{
	"n/a":  true,
	"null": true,
	"none": true,
}

var (
	digitRun = regexp.MustCompile(`(\d+)`)
	tagSplit = regexp.MustCompile(`[,;|]`)
)

// Parser handles delimited tabular exports.
type Parser struct{}

// New creates a new tabular parser.
func New() *Parser {
	return &Parser{}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".csv", ".tsv"}
}

// Parse reads a delimited export and returns the normalised quotes.
// Structural failures (missing header, malformed rows) are fatal.
func (p *Parser) Parse(_ context.Context, path string) ([]domain.Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tabular file: %w", err)
	}
	defer f.Close()

	delimiter, err := sniffDelimiter(f)
	if err != nil {
		return nil, err
	}
	logger.Debug("tabular: detected delimiter %q", delimiter)

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header row", domain.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrUnsupportedFormat, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var quotes []domain.Quote
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row: %v", domain.ErrUnsupportedFormat, err)
		}

		quote, ok := parseRow(columns, record)
		if !ok {
			continue
		}

		quote.ID = domain.QuoteID(len(quotes) + 1)
		quotes = append(quotes, quote)
	}

	logger.Debug("tabular: parsed %d quotes from %s", len(quotes), path)
	return quotes, nil
}

// sniffDelimiter samples the start of the file and picks the first of
// comma, tab, semicolon that occurs in it, defaulting to comma. The
// reader is rewound afterwards.
func sniffDelimiter(f *os.File) (rune, error) {
	sample := make([]byte, sniffLen)
	n, err := f.Read(sample)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("sample tabular file: %w", err)
	}
	sample = sample[:n]

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind tabular file: %w", err)
	}

	for _, d := range []rune{',', '\t', ';'} {
		if strings.ContainsRune(string(sample), d) {
			return d, nil
		}
	}
	return ',', nil
}

// parseRow converts one data row into a quote. The second return
// value is false when the row lacks usable highlight text.
func parseRow(columns map[string]int, record []string) (domain.Quote, bool) {
	value := func(field string) string {
		for _, alias := range columnAliases[field] {
			idx, ok := columns[alias]
			if !ok || idx >= len(record) {
				continue
			}
			if v := strings.TrimSpace(record[idx]); v != "" {
				return v
			}
		}
		return ""
	}

	text := value("highlight")
	if text == "" || placeholders[strings.ToLower(text)] {
		return domain.Quote{}, false
	}

	quote := domain.Quote{
		Text:         text,
		Author:       value("author"),
		BookTitle:    value("book_title"),
		Location:     parseLocation(value("location")),
		Tags:         parseTags(value("tags")),
		Notes:        value("note"),
		Source:       domain.SourceKindle,
		Color:        value("color"),
		LocationType: value("location_type"),
		AmazonID:     value("amazon_id"),
	}

	if raw := value("highlighted_at"); raw != "" {
		quote.AddedAt = parsers.NormalizeDate(raw)
	}

	return quote, true
}

// parseLocation parses a location string as an integer, falling back
// to the first embedded digit run ("Location 630-631" -> 630).
func parseLocation(raw string) *int {
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return &n
	}
	if m := digitRun.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}
	return nil
}

// parseTags splits a tag string on comma, semicolon or pipe.
func parseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	for _, tag := range tagSplit.Split(raw, -1) {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

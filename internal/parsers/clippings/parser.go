// Package clippings parses the standard Kindle "My Clippings.txt"
// export: highlight blocks separated by a fixed delimiter line, each
// carrying a title line, a metadata line and the highlighted text.
package clippings

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
	"github.com/mapkeeper/mapkeeper-cli/internal/logger"
	"github.com/mapkeeper/mapkeeper-cli/internal/parsers"
)

// Ensure Parser implements the interface.
var _ driven.HighlightParser = (*Parser)(nil)

// separator is the delimiter line Kindle writes between highlights.
const separator = "=========="

// noteMarker prefixes entries that are notes rather than highlights.
// Notes are not imported as quotes.
const noteMarker = "Note:"

var (
	parenTitle = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)
	byTitle    = regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`)
	locationRe = regexp.MustCompile(`Location (\d+)`)
	pageRe     = regexp.MustCompile(`page (\d+)`)
	addedRe    = regexp.MustCompile(`Added on (.+)$`)
)

// Parser handles the plain-text clippings format.
type Parser struct{}

// New creates a new clippings parser.
func New() *Parser {
	return &Parser{}
}

// Extensions returns the file extensions this parser handles.
// The clippings parser is also the fallback for unknown extensions.
func (p *Parser) Extensions() []string {
	return []string{".txt"}
}

// Parse reads a clippings file and returns the normalised quotes.
func (p *Parser) Parse(_ context.Context, path string) ([]domain.Quote, error) {
	content, err := readTextFile(path)
	if err != nil {
		return nil, err
	}

	var quotes []domain.Quote
	for _, section := range strings.Split(content, separator) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		quote, ok := parseSection(section)
		if !ok {
			continue
		}

		quote.ID = domain.QuoteID(len(quotes) + 1)
		quotes = append(quotes, quote)
	}

	logger.Debug("clippings: parsed %d quotes from %s", len(quotes), path)
	return quotes, nil
}

// readTextFile reads the file as UTF-8, retrying once as Latin-1 when
// the content is not valid UTF-8.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read clippings file: %w", err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	logger.Warn("clippings: %s is not valid UTF-8, falling back to Latin-1", path)
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode clippings file: %w", err)
	}
	return string(decoded), nil
}

// parseSection parses one highlight block. The second return value is
// false when the block should be dropped (too short, empty text, or a
// note entry).
func parseSection(section string) (domain.Quote, bool) {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) < 3 {
		return domain.Quote{}, false
	}

	bookTitle, author := parseTitleLine(lines[0])
	location, page, addedAt := parseMetaLine(lines[1])

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	if text == "" || strings.HasPrefix(text, noteMarker) {
		return domain.Quote{}, false
	}

	return domain.Quote{
		Text:      text,
		Author:    author,
		BookTitle: bookTitle,
		Page:      page,
		Location:  location,
		AddedAt:   addedAt,
		Tags:      []string{},
		Source:    domain.SourceKindle,
	}, true
}

// parseTitleLine extracts book title and author from the first line.
// Supported patterns: "Title (Author)", "Title by Author", title-only.
func parseTitleLine(line string) (title, author string) {
	if m := parenTitle.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := byTitle.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(line), ""
}

// parseMetaLine extracts location, page and timestamp from the
// metadata line, e.g.
// "- Your Highlight on page 42 | Location 630-631 | Added on Monday, January 1, 2024 12:00:00 PM".
func parseMetaLine(line string) (location, page *int, addedAt string) {
	if m := locationRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			location = &n
		}
	}
	if m := pageRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			page = &n
		}
	}
	if m := addedRe.FindStringSubmatch(line); m != nil {
		addedAt = parsers.NormalizeDate(strings.TrimSpace(m[1]))
	}
	return location, page, addedAt
}

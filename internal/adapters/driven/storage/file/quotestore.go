package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
)

// Ensure QuoteStore implements the interface.
var _ driven.QuoteStore = (*QuoteStore)(nil)

// QuoteStore persists quotes as newline-delimited JSON.
type QuoteStore struct{}

// NewQuoteStore creates a new JSONL quote store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{}
}

// Save writes quotes as one compact JSON object per line.
func (s *QuoteStore) Save(_ context.Context, path string, quotes []domain.Quote) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i := range quotes {
		// Encode appends its own newline, giving one object per line.
		if err := enc.Encode(&quotes[i]); err != nil {
			return fmt.Errorf("encode quote %s: %w", quotes[i].ID, err)
		}
	}

	return writeFileAtomic(path, buf.Bytes())
}

// Load reads quotes back from a JSONL file. Blank lines are skipped;
// a malformed line fails the whole load.
func (s *QuoteStore) Load(_ context.Context, path string) ([]domain.Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quotes file: %w", err)
	}
	defer f.Close()

	var quotes []domain.Quote
	scanner := bufio.NewScanner(f)
	// Long highlights exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var q domain.Quote
		if err := json.Unmarshal([]byte(line), &q); err != nil {
			return nil, fmt.Errorf("%w: line %d of %s: %v", domain.ErrInvalidInput, lineNo, path, err)
		}
		quotes = append(quotes, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read quotes file: %w", err)
	}

	return quotes, nil
}

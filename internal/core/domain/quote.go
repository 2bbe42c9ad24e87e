package domain

import (
	"fmt"
	"strings"
)

// SourceKindle marks records produced from Kindle exports.
const SourceKindle = "Kindle"

// Quote represents one normalised highlight with its metadata.
// It is the canonical interchange unit between pipeline stages,
// persisted as one JSON object per line.
type Quote struct {
	// ID is the stable unique identifier, assigned sequentially at
	// parse time (quote_000001, quote_000002, ...).
	ID string `json:"id"`

	// Text is the highlighted passage. Always non-empty for emitted
	// records; empty or note-only entries are dropped at parse time.
	Text string `json:"text"`

	// Author is the book author, empty when the export did not carry one.
	Author string `json:"author"`

	// BookTitle is the title of the book the highlight came from.
	BookTitle string `json:"book_title"`

	// Page is the printed page number, when the export included one.
	Page *int `json:"page"`

	// Location is the Kindle location number, when available.
	Location *int `json:"location"`

	// AddedAt is the highlight timestamp, normalised to ISO-8601 on a
	// best-effort basis. Falls back to the original string when the
	// source format is unrecognised.
	AddedAt string `json:"added_at,omitempty"`

	// Tags holds user-assigned tags from tabular exports.
	Tags []string `json:"tags"`

	// Notes is an attached note, when the export carried one.
	Notes string `json:"notes,omitempty"`

	// Source identifies the export origin.
	Source string `json:"source"`

	// Color is the highlight colour from tabular exports.
	Color string `json:"color,omitempty"`

	// LocationType distinguishes location kinds (page, location, ...).
	LocationType string `json:"location_type,omitempty"`

	// AmazonID is the Amazon book identifier from tabular exports.
	AmazonID string `json:"amazon_id,omitempty"`
}

// QuoteID formats the sequential identifier for the n-th parsed quote.
func QuoteID(n int) string {
	return fmt.Sprintf("quote_%06d", n)
}

// Validate checks the record invariants.
func (q *Quote) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: quote has no id", ErrInvalidInput)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: quote %s has empty text", ErrInvalidInput, q.ID)
	}
	return nil
}

// EmbeddingText builds the string fed to the embedding model:
// the highlight text, followed by "by <author>" and
// "from <book_title>" clauses when present, joined as sentences.
func (q *Quote) EmbeddingText() string {
	parts := []string{q.Text}
	if q.Author != "" {
		parts = append(parts, "by "+q.Author)
	}
	if q.BookTitle != "" {
		parts = append(parts, "from "+q.BookTitle)
	}
	return strings.Join(parts, ". ")
}

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoQuotes indicates a run produced or consumed zero usable
	// quote records. A zero-record result is fatal for the whole
	// invocation.
	ErrNoQuotes = errors.New("no quotes found")

	// ErrUnsupportedFormat indicates the input file structure could
	// not be parsed in any supported export format.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrEmbeddingUnavailable indicates the embedding backend is not
	// reachable. The graph builder cannot run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

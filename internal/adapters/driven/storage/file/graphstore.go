package file

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
)

// Ensure GraphStore implements the interface.
var _ driven.GraphStore = (*GraphStore)(nil)

// GraphStore persists graph artefacts as JSON files.
type GraphStore struct{}

// NewGraphStore creates a new JSON graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{}
}

// SaveNeighbors writes the neighbor map as one indented JSON object.
func (s *GraphStore) SaveNeighbors(_ context.Context, path string, neighbors domain.NeighborMap) error {
	data, err := json.MarshalIndent(neighbors, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal neighbors: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// SaveLexicalIndex writes the keyword index to the derived sibling
// path of the neighbor map.
func (s *GraphStore) SaveLexicalIndex(_ context.Context, path string, index domain.LexicalIndex) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal lexical index: %w", err)
	}
	return writeFileAtomic(s.LexicalIndexPath(path), append(data, '\n'))
}

// LexicalIndexPath derives the lexical index filename from the
// neighbor-map path: <stem>_lexical.json in the same directory.
func (s *GraphStore) LexicalIndexPath(path string) string {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, stem+"_lexical.json")
}

// Package sqlite provides a persistent embedding cache so repeated
// graph builds over an unchanged corpus skip the embedding backend.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/cache/sqlite/migrations"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EmbeddingCache = (*Cache)(nil)

// Cache is a SQLite-backed embedding cache keyed by model and text
// hash.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the cache database at the specified data
// directory. If dataDir is empty, defaults to ~/.mapkeeper/cache.db.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mapkeeper")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// WAL keeps readers cheap if a second invocation overlaps.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db, path: dbPath}
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// migrate applies the embedded SQL files in lexical order.
func (c *Cache) migrate(fsys fs.FS) error {
	entries, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, name := range entries {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Get returns the cached vector for (model, text), or nil when absent.
func (c *Cache) Get(ctx context.Context, model, text string) ([]float32, error) {
	var (
		dimensions int
		blob       []byte
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT dimensions, vector FROM embeddings WHERE model = ? AND text_hash = ?",
		model, hashText(text),
	).Scan(&dimensions, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	vector, err := decodeVector(blob, dimensions)
	if err != nil {
		return nil, fmt.Errorf("cached embedding for model %s: %w", model, err)
	}
	return vector, nil
}

// Put stores the vector for (model, text), overwriting any previous
// entry.
func (c *Cache) Put(ctx context.Context, model, text string, embedding []float32) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO embeddings (model, text_hash, dimensions, vector)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (model, text_hash) DO UPDATE SET
		   dimensions = excluded.dimensions,
		   vector = excluded.vector`,
		model, hashText(text), len(embedding), encodeVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// encodeVector packs float32s as little-endian bytes.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte, dimensions int) ([]float32, error) {
	if len(blob) != 4*dimensions {
		return nil, fmt.Errorf("blob holds %d bytes, want %d", len(blob), 4*dimensions)
	}
	vector := make([]float32, dimensions)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector, nil
}

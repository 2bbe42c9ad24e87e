// Package file loads CLI defaults from a TOML file in the Mapkeeper
// config directory. Flags override config values, which override the
// built-in defaults.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the file read inside the config directory.
const ConfigFileName = "config.toml"

// EmbeddingConfig holds embedding backend defaults.
type EmbeddingConfig struct {
	// Provider selects the backend: "ollama" (default) or "openai".
	Provider string `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL overrides the backend base URL.
	BaseURL string `toml:"base_url"`

	// APIKey is the OpenAI API key. The OPENAI_API_KEY environment
	// variable takes precedence.
	APIKey string `toml:"api_key"`

	// RequestsPerSecond caps the Ollama request rate.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// GraphConfig holds graph builder defaults.
type GraphConfig struct {
	// K is the default neighbour count.
	K int `toml:"k"`

	// BatchSize is the default embedding batch size.
	BatchSize int `toml:"batch_size"`

	// Cache toggles the persistent embedding cache.
	Cache *bool `toml:"cache"`
}

// Config is the on-disk configuration shape.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	Graph     GraphConfig     `toml:"graph"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{Provider: "ollama"},
		Graph:     GraphConfig{K: 10, BatchSize: 32},
	}
}

// DefaultDir returns the Mapkeeper config directory (~/.mapkeeper).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mapkeeper"), nil
}

// Load reads config.toml from configDir, applying built-in defaults
// for anything unset. A missing file is not an error; a malformed one
// is.
func Load(configDir string) (Config, error) {
	cfg := Default()

	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return cfg, err
		}
		configDir = dir
	}

	data, err := os.ReadFile(filepath.Join(configDir, ConfigFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "ollama"
	}
	if cfg.Graph.K <= 0 {
		cfg.Graph.K = 10
	}
	if cfg.Graph.BatchSize <= 0 {
		cfg.Graph.BatchSize = 32
	}

	return cfg, nil
}

// CacheEnabled reports whether the embedding cache is on; it defaults
// to on when the config does not say otherwise.
func (c Config) CacheEnabled() bool {
	if c.Graph.Cache == nil {
		return true
	}
	return *c.Graph.Cache
}

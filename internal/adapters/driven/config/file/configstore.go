package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable setting, stored as TOML in the clockprose
// config directory. Zero values are never used directly; callers start
// from Default and overlay whatever the file provides.
type Config struct {
	Extraction ExtractionConfig `toml:"extraction"`
	Fetch      FetchConfig      `toml:"fetch"`
	Gutenberg  GutenbergConfig  `toml:"gutenberg"`
	Anthropic  AnthropicConfig  `toml:"anthropic"`
	Storage    StorageConfig    `toml:"storage"`
}

// ExtractionConfig controls excerpt building and deduplication.
type ExtractionConfig struct {
	CharsBefore    int     `toml:"chars_before"`
	CharsAfter     int     `toml:"chars_after"`
	MinQuoteLength int     `toml:"min_quote_length"`
	MaxQuoteLength int     `toml:"max_quote_length"`
	DedupThreshold float64 `toml:"dedup_threshold"`
}

// FetchConfig controls HTTP politeness and retry behaviour.
type FetchConfig struct {
	RequestDelaySeconds float64 `toml:"request_delay_seconds"`
	MaxWorkers          int     `toml:"max_workers"`
	MaxRetries          int     `toml:"max_retries"`
	RetryBackoffSeconds float64 `toml:"retry_backoff_seconds"`
}

// GutenbergConfig selects which Project Gutenberg books to scrape.
type GutenbergConfig struct {
	BookIDs []int `toml:"book_ids"`
}

// AnthropicConfig configures the optional quote refinement step.
// An empty APIKey disables refinement.
type AnthropicConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// StorageConfig locates on-disk state.
type StorageConfig struct {
	DataDir  string `toml:"data_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Extraction: ExtractionConfig{
			CharsBefore:    150,
			CharsAfter:     150,
			MinQuoteLength: 50,
			MaxQuoteLength: 500,
			DedupThreshold: 0.85,
		},
		Fetch: FetchConfig{
			RequestDelaySeconds: 0.5,
			MaxWorkers:          5,
			MaxRetries:          3,
			RetryBackoffSeconds: 1.0,
		},
		Gutenberg: GutenbergConfig{
			BookIDs: []int{1342, 84, 1661, 11, 98, 2701, 1952, 174, 345, 16328, 100, 1232, 76, 74, 1400},
		},
		Anthropic: AnthropicConfig{
			Model: "claude-3-haiku-20240307",
		},
		Storage: StorageConfig{},
	}
}

// ConfigStore loads and persists the TOML configuration file.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.clockprose/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".clockprose")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the configuration file, overlaying it on the defaults.
// A missing file yields Default unchanged.
func (s *ConfigStore) Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk with restricted permissions.
func (s *ConfigStore) Save(cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

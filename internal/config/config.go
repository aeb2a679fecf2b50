// Package config provides configuration loading and structs for erabu.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/erabu/internal/classify"
	"github.com/hyperjump/erabu/internal/ranking"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool                   `yaml:"debug"`
	Server     ServerConfig           `yaml:"server"`
	Data       DataConfig             `yaml:"data"`
	Build      BuildConfig            `yaml:"build"`
	Classifier classify.KeywordConfig `yaml:"classifier"`
	Scoring    ranking.ScoringConfig  `yaml:"scoring"`
	Retrieval  RetrievalConfig        `yaml:"retrieval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds paths to the raw inputs and the built indexes.
type DataConfig struct {
	MetadataPath        string `yaml:"metadata_path"`
	ReviewsPath         string `yaml:"reviews_path"`
	ProductIndexPath    string `yaml:"product_index_path"`
	ReviewIndexPath     string `yaml:"review_index_path"`
	AggregatedIndexPath string `yaml:"aggregated_index_path"`
}

// BuildConfig holds catalog build tuning.
type BuildConfig struct {
	// MaxSnippets caps the pros and cons evidence buffers per product.
	MaxSnippets int `yaml:"max_snippets"`
	// ProgressEvery is the per-pass progress logging interval in lines.
	ProgressEvery int `yaml:"progress_every"`
}

// RetrievalConfig holds query-time settings.
type RetrievalConfig struct {
	// TopK is the default number of ranked products returned.
	TopK int `yaml:"top_k"`
	// MaxExplainerProducts caps how many candidates the explanation
	// collaborator may receive.
	MaxExplainerProducts int `yaml:"max_explainer_products"`
	// BrowseLimit is the default hit count for free-text catalog browsing.
	BrowseLimit int `yaml:"browse_limit"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Data.MetadataPath = expandPath(cfg.Data.MetadataPath, configDir)
	cfg.Data.ReviewsPath = expandPath(cfg.Data.ReviewsPath, configDir)
	cfg.Data.ProductIndexPath = expandPath(cfg.Data.ProductIndexPath, configDir)
	cfg.Data.ReviewIndexPath = expandPath(cfg.Data.ReviewIndexPath, configDir)
	cfg.Data.AggregatedIndexPath = expandPath(cfg.Data.AggregatedIndexPath, configDir)

	return &cfg, nil
}

// Save writes the config to path. Used for persisting edited keyword lists
// or scoring weights.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}

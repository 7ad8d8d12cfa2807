// Package config provides configuration loading and structs for kotoba.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/kotoba/internal/highlight"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Corpus CorpusConfig `yaml:"corpus"`
	Search SearchConfig `yaml:"search"`
	Output OutputConfig `yaml:"output"`
	Prompt PromptConfig `yaml:"prompt"`
}

// CorpusConfig locates the corpus and bounds its lines.
type CorpusConfig struct {
	Path         string `yaml:"path"`
	MaxLineBytes int    `yaml:"max_line_bytes"`
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	Limit int `yaml:"limit"`
	// CollapseDuplicates is a pointer so that an explicit false survives
	// ApplyDefaults.
	CollapseDuplicates *bool `yaml:"collapse_duplicates"`
}

// CollapseOrDefault returns whether identical result lines collapse; true when unset.
func (s *SearchConfig) CollapseOrDefault() bool {
	if s.CollapseDuplicates != nil {
		return *s.CollapseDuplicates
	}
	return true
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format    string `yaml:"format"`
	Highlight string `yaml:"highlight"`
}

// PromptConfig holds the interactive loop's prompt and quit sentinel.
type PromptConfig struct {
	Text string `yaml:"text"`
	Quit string `yaml:"quit"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Corpus.Path != "" {
		cfg.Corpus.Path = expandPath(cfg.Corpus.Path, filepath.Dir(path))
	}
	return &cfg, nil
}

// Default returns a config with every default applied, for running without a file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Validate reports settings that cannot be honoured.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "compact", "json":
	default:
		return fmt.Errorf("invalid output.format %q: use text, compact, or json", c.Output.Format)
	}
	if _, err := highlight.MarkerByName(c.Output.Highlight); err != nil {
		return fmt.Errorf("invalid output.highlight: %w", err)
	}
	if strings.TrimSpace(c.Prompt.Quit) == "" {
		return fmt.Errorf("prompt.quit must not be blank")
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" or "../"
// are relative to configDir; other relative paths are left to the working
// directory. A leading "~/" is the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
		return path
	}
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}

package config

import "github.com/hyperjump/kotoba/internal/corpus"

// DefaultPrompt is shown before each interactive query.
const DefaultPrompt = "Enter keywords (Enter to search, q to quit): "

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Corpus.MaxLineBytes <= 0 {
		cfg.Corpus.MaxLineBytes = corpus.DefaultMaxLineBytes
	}
	// The engine never returns more than three results.
	if cfg.Search.Limit <= 0 || cfg.Search.Limit > 3 {
		cfg.Search.Limit = 3
	}
	if cfg.Search.CollapseDuplicates == nil {
		t := true
		cfg.Search.CollapseDuplicates = &t
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Highlight == "" {
		cfg.Output.Highlight = "ansi"
	}
	if cfg.Prompt.Text == "" {
		cfg.Prompt.Text = DefaultPrompt
	}
	if cfg.Prompt.Quit == "" {
		cfg.Prompt.Quit = "q"
	}
}

// Package cli provides the interactive query loop and result output for kotoba.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kotoba/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact prints one result per line: count, tab, highlighted line.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat maps a flag or config value to a format.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch f := SearchOutputFormat(s); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
// Unknown formats are written as text.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		return writeSearchResultsCompact(w, response)
	default:
		return writeSearchResultsText(w, response)
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) error {
	if _, err := fmt.Fprintln(w, "Top Three Results:"); err != nil {
		return err
	}
	for _, result := range response.Results {
		if _, err := fmt.Fprintf(w, "(count: %d) %s\n\n\n", result.Count, result.Highlighted); err != nil {
			return err
		}
	}
	return nil
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) error {
	for _, result := range response.Results {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", result.Count, result.Highlighted); err != nil {
			return err
		}
	}
	return nil
}

// Package extract converts corpus sources in office and PDF formats into
// line-oriented plain text. Each paragraph, spreadsheet row or PDF text line
// becomes one line of output.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor extracts line-oriented text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsPlain reports whether files with extension ext are read as plain text.
// Unknown extensions are plain.
func IsPlain(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".odt", ".xlsx", ".pptx", ".odp", ".ods":
		return false
	}
	return true
}

// Extract reads the file at path and returns its text, one logical line per
// paragraph or row.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, filepath.Ext(path))
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".odt", ".odp":
		return extractODFText(content)
	case ".ods":
		return extractODS(content)
	case ".xlsx":
		return extractExcel(content)
	case ".pptx":
		return extractPPTX(content)
	default:
		return extractPlain(content)
	}
}

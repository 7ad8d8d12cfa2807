// Package models defines core data structures for documents and search results.
package models

// Document is one line of a corpus. ID is 1-based in source order; Content
// is the line with surrounding whitespace removed.
type Document struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

// Span is a half-open byte range [Start, End) of a keyword match in a
// document's content.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

package models

// Hit is a document with at least one keyword match, before ranking.
type Hit struct {
	DocID   int
	Content string
	Spans   []Span
}

// Count returns the number of keyword occurrences in the document.
func (h Hit) Count() int {
	return len(h.Spans)
}

// Result is a single ranked search entry. It does not carry the originating
// document ID.
type Result struct {
	Line        string `json:"line"`
	Highlighted string `json:"highlighted"`
	Count       int    `json:"count"`
	Spans       []Span `json:"spans"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query    string   `json:"query"`
	Keywords []string `json:"keywords"`
	Results  []Result `json:"results"`
	// TotalMatched is the number of documents with a nonzero match count,
	// before duplicate collapsing and truncation.
	TotalMatched int   `json:"total_matched"`
	QueryTime    int64 `json:"query_time_ms"`
}

package search

import (
	"sort"

	"github.com/hyperjump/kotoba/internal/corpus"
	"github.com/hyperjump/kotoba/internal/highlight"
	"github.com/hyperjump/kotoba/internal/models"
)

// MaxResults is the largest number of results a search returns.
const MaxResults = 3

// Options controls ranking and rendering.
type Options struct {
	// Limit is the number of results to keep; values outside 1..MaxResults
	// mean MaxResults.
	Limit int
	// CollapseDuplicates keeps only the first of several results whose
	// highlighted lines are identical.
	CollapseDuplicates bool
	Marker             highlight.Marker
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Limit:              MaxResults,
		CollapseDuplicates: true,
		Marker:             highlight.ANSI,
	}
}

func (o Options) limit() int {
	if o.Limit < 1 || o.Limit > MaxResults {
		return MaxResults
	}
	return o.Limit
}

// Scan matches p against every document in ascending ID order and returns
// the documents with at least one match.
func Scan(c *corpus.Corpus, p *Pattern) []models.Hit {
	var hits []models.Hit
	c.Each(func(id int, content string) bool {
		if spans := p.FindAll(content); len(spans) > 0 {
			hits = append(hits, models.Hit{DocID: id, Content: content, Spans: spans})
		}
		return true
	})
	return hits
}

// Rank renders hits, orders them by match count descending and truncates to
// the limit. Hits must be in ascending document ID order; equal counts keep
// that order.
func Rank(hits []models.Hit, opts Options) []models.Result {
	results := make([]models.Result, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		rendered := highlight.Render(h.Content, h.Spans, opts.Marker)
		if opts.CollapseDuplicates {
			if _, dup := seen[rendered]; dup {
				continue
			}
			seen[rendered] = struct{}{}
		}
		results = append(results, models.Result{
			Line:        h.Content,
			Highlighted: rendered,
			Count:       h.Count(),
			Spans:       h.Spans,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	if n := opts.limit(); len(results) > n {
		results = results[:n]
	}
	return results
}

// Search answers query against c. It never panics on user input: a query
// with no keywords or one that cannot be compiled yields no results and the
// compile error.
func Search(c *corpus.Corpus, query string, opts Options) ([]models.Result, error) {
	p, err := Compile(Tokenize(query))
	if err != nil {
		return []models.Result{}, err
	}
	return Rank(Scan(c, p), opts), nil
}

package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/kotoba/internal/corpus"
	"github.com/hyperjump/kotoba/internal/models"
)

// ErrEmptyQuery is returned by Compile when the query has no keywords.
var ErrEmptyQuery = errors.New("query has no keywords")

// Tokenize splits a query into keywords, in order, on the same white space
// that is trimmed from corpus lines.
func Tokenize(query string) []string {
	return strings.FieldsFunc(query, corpus.IsSpace)
}

// Pattern matches any of a set of keywords as whole words, ignoring case.
// Keywords are literal text; pattern metacharacters have no meaning.
type Pattern struct {
	keywords []string
	// anyKeyword finds the next position where some keyword starts,
	// without regard to word boundaries.
	anyKeyword *regexp.Regexp
	// anchored holds one \A-anchored matcher per keyword, in query order.
	anchored []*regexp.Regexp
}

// Compile escapes each keyword and builds the case-insensitive alternation.
func Compile(keywords []string) (*Pattern, error) {
	if len(keywords) == 0 {
		return nil, ErrEmptyQuery
	}
	quoted := make([]string, len(keywords))
	anchored := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		if kw == "" {
			return nil, fmt.Errorf("keyword %d is empty", i+1)
		}
		quoted[i] = regexp.QuoteMeta(kw)
		re, err := regexp.Compile(`\A(?i:` + quoted[i] + `)`)
		if err != nil {
			return nil, fmt.Errorf("compile keyword %q: %w", kw, err)
		}
		anchored[i] = re
	}
	anyKeyword, err := regexp.Compile(`(?i:` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile query pattern: %w", err)
	}
	return &Pattern{
		keywords:   append([]string(nil), keywords...),
		anyKeyword: anyKeyword,
		anchored:   anchored,
	}, nil
}

// Keywords returns the keywords the pattern was compiled from.
func (p *Pattern) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// String returns the alternation used to locate candidates.
func (p *Pattern) String() string {
	return p.anyKeyword.String()
}

// FindAll returns every non-overlapping whole-word match in text, left to
// right. At each position the keywords are tried in query order and the
// first one bounded by word boundaries on both sides wins.
func (p *Pattern) FindAll(text string) []models.Span {
	var spans []models.Span
	pos := 0
	for pos < len(text) {
		loc := p.anyKeyword.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		if end, ok := p.matchAt(text, start); ok {
			spans = append(spans, models.Span{Start: start, End: end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return spans
}

// Count returns the number of whole-word matches in text.
func (p *Pattern) Count(text string) int {
	return len(p.FindAll(text))
}

func (p *Pattern) matchAt(text string, start int) (int, bool) {
	if !isBoundary(text, start) {
		return 0, false
	}
	rest := text[start:]
	for _, re := range p.anchored {
		loc := re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		if end := start + loc[1]; isBoundary(text, end) {
			return end, true
		}
	}
	return 0, false
}

// isWordRune reports whether r is a word character: a Unicode letter or
// number, or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isBoundary reports whether byte offset i of text lies between a word
// character and a non-word character (or a text edge).
func isBoundary(text string, i int) bool {
	before := false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	after := false
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

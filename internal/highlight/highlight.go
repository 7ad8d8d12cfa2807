// Package highlight renders emphasis spans into display text.
package highlight

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotoba/internal/models"
)

// Marker is the pair of strings wrapped around each emphasis span.
type Marker struct {
	Name  string
	Open  string
	Close string
}

var (
	// ANSI renders spans bold and bright red, resetting after each span.
	ANSI = Marker{Name: "ansi", Open: "\033[1m\033[91m", Close: "\033[0m"}
	// None leaves text unchanged.
	None = Marker{Name: "none"}
	// Brackets is a terminal-independent marker, useful in logs and files.
	Brackets = Marker{Name: "brackets", Open: "[[", Close: "]]"}
)

// MarkerByName returns the marker registered under name.
func MarkerByName(name string) (Marker, error) {
	switch strings.ToLower(name) {
	case ANSI.Name:
		return ANSI, nil
	case None.Name, "plain":
		return None, nil
	case Brackets.Name:
		return Brackets, nil
	default:
		return Marker{}, fmt.Errorf("unknown highlight marker %q (want ansi, none or brackets)", name)
	}
}

// Render wraps every span of content with m. Spans must be sorted and
// non-overlapping; text outside spans is copied unchanged.
func Render(content string, spans []models.Span, m Marker) string {
	if len(spans) == 0 || (m.Open == "" && m.Close == "") {
		return content
	}
	var b strings.Builder
	b.Grow(len(content) + len(spans)*(len(m.Open)+len(m.Close)))
	prev := 0
	for _, s := range spans {
		b.WriteString(content[prev:s.Start])
		b.WriteString(m.Open)
		b.WriteString(content[s.Start:s.End])
		b.WriteString(m.Close)
		prev = s.End
	}
	b.WriteString(content[prev:])
	return b.String()
}

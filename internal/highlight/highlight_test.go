package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kotoba/internal/models"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		content string
		spans   []models.Span
		marker  Marker
		want    string
	}{
		{"no spans", "A cat sat", nil, ANSI, "A cat sat"},
		{"ansi single", "A cat sat", []models.Span{{Start: 2, End: 5}}, ANSI, "A \033[1m\033[91mcat\033[0m sat"},
		{"preserves casing", "CAT", []models.Span{{Start: 0, End: 3}}, Brackets, "[[CAT]]"},
		{"each occurrence", "cat and cat", []models.Span{{Start: 0, End: 3}, {Start: 8, End: 11}}, Brackets, "[[cat]] and [[cat]]"},
		{"adjacent spans", "ab", []models.Span{{Start: 0, End: 1}, {Start: 1, End: 2}}, Brackets, "[[a]][[b]]"},
		{"none marker", "A cat", []models.Span{{Start: 2, End: 5}}, None, "A cat"},
		{"multibyte", "café au lait", []models.Span{{Start: 0, End: 5}}, Brackets, "[[café]] au lait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.content, tt.spans, tt.marker))
		})
	}
}

func TestMarkerByName(t *testing.T) {
	for _, name := range []string{"ansi", "ANSI", "none", "plain", "brackets"} {
		t.Run(name, func(t *testing.T) {
			_, err := MarkerByName(name)
			require.NoError(t, err)
		})
	}
	_, err := MarkerByName("blink")
	assert.ErrorContains(t, err, "unknown highlight marker")
}

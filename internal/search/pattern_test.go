package search

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kotoba/internal/models"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single", "cat", []string{"cat"}},
		{"multiple", "cat  dog\tbird", []string{"cat", "dog", "bird"}},
		{"surrounding space", "  cat \n", []string{"cat"}},
		{"ideographic space", "cat　dog", []string{"cat", "dog"}},
		{"information separators", "cat\x1cdog\x1fbird", []string{"cat", "dog", "bird"}},
		{"no-break space", "cat\u00a0dog", []string{"cat", "dog"}},
		{"empty", "", []string{}},
		{"whitespace only", " \t ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.query))
		})
	}
}

func TestCompile_empty(t *testing.T) {
	_, err := Compile(nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestCompile_invalidUTF8(t *testing.T) {
	_, err := Compile([]string{"\xff"})
	assert.Error(t, err)
}

func TestPattern_FindAll(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		text     string
		want     []models.Span
	}{
		{"whole word", []string{"cat"}, "The cat sat.", []models.Span{{Start: 4, End: 7}}},
		{"not inside larger word", []string{"cat"}, "The category is set.", nil},
		{"plural is another word", []string{"cat"}, "Cats and cats everywhere.", nil},
		{"case insensitive", []string{"cat"}, "CAT Cat cAt", []models.Span{{Start: 0, End: 3}, {Start: 4, End: 7}, {Start: 8, End: 11}}},
		{"underscore is a word char", []string{"cat"}, "cat_food cat", []models.Span{{Start: 9, End: 12}}},
		{"digit is a word char", []string{"cat"}, "cat9 9cat cat", []models.Span{{Start: 10, End: 13}}},
		{"regex dot is literal", []string{"a.b"}, "a.b axb a.b", []models.Span{{Start: 0, End: 3}, {Start: 8, End: 11}}},
		{"star is literal", []string{"a*"}, "aaa a* b", nil},
		{"parenthesis keyword", []string{"(1979)"}, "Alien (1979)", nil},
		{"parenthesis inside word", []string{"f(x"}, "f(x) = 1", []models.Span{{Start: 0, End: 3}}},
		{"two keywords", []string{"cat", "mat"}, "A cat sat on a mat.", []models.Span{{Start: 2, End: 5}, {Start: 15, End: 18}}},
		{"repeated keyword counts twice", []string{"cat"}, "cat, cat", []models.Span{{Start: 0, End: 3}, {Start: 5, End: 8}}},
		{"alternation order falls through", []string{"new", "new york"}, "new york", []models.Span{{Start: 0, End: 3}}},
		{"later keyword when first not bounded", []string{"new", "newark"}, "newark", []models.Span{{Start: 0, End: 6}}},
		{"unicode letters bound words", []string{"café"}, "un café noir, cafés", []models.Span{{Start: 3, End: 8}}},
		{"unicode case folding", []string{"ÉTÉ"}, "un été chaud", []models.Span{{Start: 3, End: 8}}},
		{"cjk run is one word", []string{"電影"}, "我愛電影", nil},
		{"cjk standalone", []string{"電影"}, "看 電影 吧", []models.Span{{Start: 4, End: 10}}},
		{"empty text", []string{"cat"}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.keywords)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.FindAll(tt.text))
			assert.Equal(t, len(tt.want), p.Count(tt.text))
		})
	}
}

func TestPattern_preservesMatchedCasing(t *testing.T) {
	p, err := Compile([]string{"cat"})
	require.NoError(t, err)
	text := "My CAT and my Cat"
	var got []string
	for _, s := range p.FindAll(text) {
		got = append(got, text[s.Start:s.End])
	}
	assert.Equal(t, []string{"CAT", "Cat"}, got)
}

func TestPattern_KeywordsIsCopy(t *testing.T) {
	p, err := Compile([]string{"a", "b"})
	require.NoError(t, err)
	kws := p.Keywords()
	kws[0] = "z"
	assert.Equal(t, []string{"a", "b"}, p.Keywords())
}

// referenceFindAll is a byte-at-a-time matcher for ASCII text.
func referenceFindAll(keywords []string, text string) []models.Span {
	isWord := func(c byte) bool {
		return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}
	boundary := func(i int) bool {
		before := i > 0 && isWord(text[i-1])
		after := i < len(text) && isWord(text[i])
		return before != after
	}
	var spans []models.Span
	for i := 0; i < len(text); {
		matched := false
		if boundary(i) {
			for _, kw := range keywords {
				end := i + len(kw)
				if end <= len(text) && strings.EqualFold(text[i:end], kw) && boundary(end) {
					spans = append(spans, models.Span{Start: i, End: end})
					i = end
					matched = true
					break
				}
			}
		}
		if !matched {
			i++
		}
	}
	return spans
}

func TestPattern_FindAllMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"cat", "Cat", "cats", "category", "a.b", "a", "b", "the", "_cat", "cat9", "CAT"}
	seps := []string{" ", ", ", ".", "-", "", "  ", "!"}
	queries := [][]string{
		{"cat"},
		{"a", "b"},
		{"a.b", "a"},
		{"cat", "cats", "the"},
		{"CAT", "category"},
	}
	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(12); n > 0; n-- {
			b.WriteString(words[rng.Intn(len(words))])
			b.WriteString(seps[rng.Intn(len(seps))])
		}
		text := b.String()
		kws := queries[rng.Intn(len(queries))]
		p, err := Compile(kws)
		require.NoError(t, err)
		require.Equal(t, referenceFindAll(kws, text), p.FindAll(text), "keywords %q text %q", kws, text)
	}
}

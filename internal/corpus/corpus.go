// Package corpus loads a line-oriented text source into an immutable set of
// documents, one per line, numbered from 1 in source order.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/extract"
	"github.com/hyperjump/kotoba/internal/models"
)

// DefaultMaxLineBytes bounds a single line when no option overrides it.
const DefaultMaxLineBytes = 1 << 20

// Corpus is the loaded document set. It is never modified after Load
// returns, so it may be shared freely between searches.
type Corpus struct {
	source string
	docs   []string
}

type loadOptions struct {
	maxLineBytes int
	extractor    *extract.Extractor
	logger       *zap.Logger
}

// Option configures Load and LoadReader.
type Option func(*loadOptions)

// WithMaxLineBytes sets the longest accepted line in bytes.
func WithMaxLineBytes(n int) Option {
	return func(o *loadOptions) {
		if n > 0 {
			o.maxLineBytes = n
		}
	}
}

// WithExtractor sets the extractor used for non-plain sources.
func WithExtractor(e *extract.Extractor) Option {
	return func(o *loadOptions) {
		if e != nil {
			o.extractor = e
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func newLoadOptions(opts []Option) *loadOptions {
	o := &loadOptions{
		maxLineBytes: DefaultMaxLineBytes,
		extractor:    extract.NewExtractor(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads the corpus at path. Office and PDF files are converted to text
// first; everything else is read as plain text.
func Load(path string, opts ...Option) (*Corpus, error) {
	o := newLoadOptions(opts)
	ext := filepath.Ext(path)
	if !extract.IsPlain(ext) {
		text, err := o.extractor.Extract(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		c, err := readLines(strings.NewReader(text), o)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		c.source = path
		o.logger.Info("corpus loaded", zap.String("path", path), zap.String("format", ext), zap.Int("documents", c.Len()))
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	c, err := readLines(f, o)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	c.source = path
	o.logger.Info("corpus loaded", zap.String("path", path), zap.Int("documents", c.Len()))
	return c, nil
}

// LoadReader reads a plain-text corpus from r.
func LoadReader(r io.Reader, opts ...Option) (*Corpus, error) {
	o := newLoadOptions(opts)
	c, err := readLines(r, o)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return c, nil
}

// FromLines builds a corpus directly from lines, applying the same trimming
// as Load.
func FromLines(lines []string) *Corpus {
	docs := make([]string, len(lines))
	for i, line := range lines {
		docs[i] = strip(line)
	}
	return &Corpus{docs: docs}
}

func readLines(r io.Reader, o *loadOptions) (*Corpus, error) {
	// The buffer must also hold a "\r\n" terminator after a line of the
	// maximum length.
	bufMax := o.maxLineBytes + 2
	scanner := bufio.NewScanner(r)
	initial := 64 * 1024
	if initial > bufMax {
		initial = bufMax
	}
	scanner.Buffer(make([]byte, 0, initial), bufMax)
	scanner.Split(scanLines)

	docs := make([]string, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > o.maxLineBytes {
			return nil, lineTooLong(len(docs)+1, o.maxLineBytes)
		}
		if !utf8.ValidString(line) {
			o.logger.Debug("replacing invalid UTF-8", zap.Int("line", len(docs)+1))
			line = strings.ToValidUTF8(line, "\uFFFD")
		}
		docs = append(docs, strip(line))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, lineTooLong(len(docs)+1, o.maxLineBytes)
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	return &Corpus{docs: docs}, nil
}

func lineTooLong(line, limit int) error {
	return fmt.Errorf("line %d: %w (max %d bytes)", line, ErrLineTooLong, limit)
}

// Source returns the path the corpus was loaded from, or "" for readers.
func (c *Corpus) Source() string {
	return c.source
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Get returns the content of document id.
func (c *Corpus) Get(id int) (string, bool) {
	if id < 1 || id > len(c.docs) {
		return "", false
	}
	return c.docs[id-1], true
}

// Documents returns a copy of all documents in ascending ID order.
func (c *Corpus) Documents() []models.Document {
	out := make([]models.Document, len(c.docs))
	for i, content := range c.docs {
		out[i] = models.Document{ID: i + 1, Content: content}
	}
	return out
}

// Each calls fn for every document in ascending ID order until fn returns
// false.
func (c *Corpus) Each(fn func(id int, content string) bool) {
	for i, content := range c.docs {
		if !fn(i+1, content) {
			return
		}
	}
}

// Blank returns the number of documents whose content is empty.
func (c *Corpus) Blank() int {
	n := 0
	for _, content := range c.docs {
		if content == "" {
			n++
		}
	}
	return n
}

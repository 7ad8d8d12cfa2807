// Package search provides the keyword query engine: whole-word,
// case-insensitive matching of query keywords against every document of a
// corpus, ranked by occurrence count.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/corpus"
	"github.com/hyperjump/kotoba/internal/highlight"
	"github.com/hyperjump/kotoba/internal/models"
)

// Engine answers queries against one immutable corpus.
type Engine struct {
	corpus *corpus.Corpus
	opts   Options
	logger *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLimit sets the number of results returned, at most MaxResults.
func WithLimit(n int) EngineOption {
	return func(e *Engine) { e.opts.Limit = n }
}

// WithMarker sets the emphasis marker used in highlighted lines.
func WithMarker(m highlight.Marker) EngineOption {
	return func(e *Engine) { e.opts.Marker = m }
}

// WithCollapseDuplicates toggles collapsing of identical highlighted lines.
func WithCollapseDuplicates(collapse bool) EngineOption {
	return func(e *Engine) { e.opts.CollapseDuplicates = collapse }
}

// NewEngine creates an engine over c.
func NewEngine(c *corpus.Corpus, opts ...EngineOption) *Engine {
	e := &Engine{
		corpus: c,
		opts:   DefaultOptions(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Corpus returns the corpus the engine searches.
func (e *Engine) Corpus() *corpus.Corpus {
	return e.corpus
}

// Search runs query and returns the ranked results. Malformed or empty
// queries produce an empty response rather than an error; only a cancelled
// context is reported.
func (e *Engine) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()
	log := e.logger.With(zap.String("query_id", uuid.NewString()))

	keywords := Tokenize(query)
	response := &models.SearchResponse{
		Query:    query,
		Keywords: keywords,
		Results:  []models.Result{},
	}

	p, err := Compile(keywords)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			log.Debug("empty query")
		} else {
			log.Warn("query pattern rejected", zap.String("query", query), zap.Error(err))
		}
		response.QueryTime = time.Since(startTime).Milliseconds()
		return response, nil
	}

	hits := Scan(e.corpus, p)
	response.TotalMatched = len(hits)
	response.Results = Rank(hits, e.opts)
	response.QueryTime = time.Since(startTime).Milliseconds()

	log.Debug("query executed",
		zap.Strings("keywords", keywords),
		zap.Int("documents", e.corpus.Len()),
		zap.Int("matched", response.TotalMatched),
		zap.Int("returned", len(response.Results)),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return response, nil
}

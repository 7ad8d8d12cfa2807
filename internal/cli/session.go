package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/models"
)

// Searcher answers a single query.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// Session is an interactive prompt loop: read a query, print its results,
// repeat until the quit sentinel or end of input.
type Session struct {
	searcher Searcher
	in       *bufio.Reader
	out      io.Writer
	prompt   string
	quit     string
	format   SearchOutputFormat
	logger   *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPrompt sets the text written before each query.
func WithPrompt(prompt string) SessionOption {
	return func(s *Session) { s.prompt = prompt }
}

// WithQuit sets the sentinel that ends the session, compared case-insensitively.
func WithQuit(quit string) SessionOption {
	return func(s *Session) {
		if quit != "" {
			s.quit = quit
		}
	}
}

// WithFormat sets the result output format.
func WithFormat(format SearchOutputFormat) SessionOption {
	return func(s *Session) { s.format = format }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session reading queries from in and writing to out.
func NewSession(searcher Searcher, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		searcher: searcher,
		in:       bufio.NewReader(in),
		out:      out,
		prompt:   "> ",
		quit:     "q",
		format:   OutputText,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type readResult struct {
	line string
	err  error
}

// Run loops until the quit sentinel, end of input, cancellation of ctx, or a
// search or write error. It returns the number of queries answered. A
// cancelled ctx returns ctx.Err() even while waiting for input.
func (s *Session) Run(ctx context.Context) (int, error) {
	log := s.logger.With(zap.String("session_id", uuid.NewString()))
	log.Debug("session started")

	// One line is read per request; nothing past the quit sentinel is consumed.
	requests := make(chan struct{})
	results := make(chan readResult, 1)
	defer close(requests)
	go func() {
		for range requests {
			line, err := s.in.ReadString('\n')
			results <- readResult{line: line, err: err}
		}
	}()

	answered := 0
	for {
		if err := ctx.Err(); err != nil {
			log.Debug("session ended", zap.String("reason", "cancelled"), zap.Int("queries", answered))
			return answered, err
		}
		if _, err := io.WriteString(s.out, s.prompt); err != nil {
			return answered, fmt.Errorf("write prompt: %w", err)
		}

		requests <- struct{}{}
		var r readResult
		select {
		case r = <-results:
		case <-ctx.Done():
			log.Debug("session ended", zap.String("reason", "cancelled"), zap.Int("queries", answered))
			return answered, ctx.Err()
		}

		line, err := r.line, r.err
		if err != nil && !errors.Is(err, io.EOF) {
			return answered, fmt.Errorf("read query: %w", err)
		}
		atEOF := err != nil
		if atEOF && line == "" {
			log.Debug("session ended", zap.String("reason", "eof"), zap.Int("queries", answered))
			return answered, nil
		}
		query := strings.TrimRight(line, "\r\n")
		if strings.EqualFold(query, s.quit) {
			log.Debug("session ended", zap.String("reason", "quit"), zap.Int("queries", answered))
			return answered, nil
		}

		response, err := s.searcher.Search(ctx, query)
		if err != nil {
			return answered, fmt.Errorf("search: %w", err)
		}
		if err := WriteSearchResults(s.out, response, s.format); err != nil {
			return answered, fmt.Errorf("write results: %w", err)
		}
		answered++
		if atEOF {
			log.Debug("session ended", zap.String("reason", "eof"), zap.Int("queries", answered))
			return answered, nil
		}
	}
}

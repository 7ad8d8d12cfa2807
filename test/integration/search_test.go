// Package integration wires config, corpus loading, the engine and the
// interactive session together over real files.
package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hyperjump/kotoba/internal/cli"
	"github.com/hyperjump/kotoba/internal/config"
	"github.com/hyperjump/kotoba/internal/corpus"
	"github.com/hyperjump/kotoba/internal/highlight"
	"github.com/hyperjump/kotoba/internal/search"
)

const movies = `The Shawshank Redemption (1994) Drama
The Godfather (1972) Crime, Drama
  The Dark Knight (2008) Action, Crime, Drama
Pulp Fiction (1994) Crime, Drama

Forrest Gump (1994) Drama, Romance
The Good, the Bad and the Ugly (1966) Western
`

func TestIntegration_Session(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.txt"), []byte(movies), 0644))
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
corpus:
  path: "./movies.txt"
output:
  format: compact
  highlight: brackets
`), 0644))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	c, err := corpus.Load(cfg.Corpus.Path,
		corpus.WithMaxLineBytes(cfg.Corpus.MaxLineBytes),
		corpus.WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())
	assert.Equal(t, 1, c.Blank())

	marker, err := highlight.MarkerByName(cfg.Output.Highlight)
	require.NoError(t, err)
	format, err := cli.ParseOutputFormat(cfg.Output.Format)
	require.NoError(t, err)

	engine := search.NewEngine(c,
		search.WithLogger(logger),
		search.WithLimit(cfg.Search.Limit),
		search.WithMarker(marker),
		search.WithCollapseDuplicates(cfg.Search.CollapseOrDefault()),
	)

	var out bytes.Buffer
	session := cli.NewSession(engine, strings.NewReader("crime\nWESTERN\n\nq\ndrama\n"), &out,
		cli.WithPrompt(""),
		cli.WithQuit(cfg.Prompt.Quit),
		cli.WithFormat(format),
		cli.WithLogger(logger),
	)
	n, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want := "1\tThe Godfather (1972) [[Crime]], Drama\n" +
		"1\tThe Dark Knight (2008) Action, [[Crime]], Drama\n" +
		"1\tPulp Fiction (1994) [[Crime]], Drama\n" +
		"1\tThe Good, the Bad and the Ugly (1966) [[Western]]\n"
	assert.Equal(t, want, out.String())

	assert.Equal(t, 1, logs.FilterMessage("corpus loaded").Len())
	assert.Equal(t, 2, logs.FilterMessage("query executed").Len())
	assert.Equal(t, 1, logs.FilterMessage("empty query").Len())
}

func TestIntegration_LoadFailureStopsBeforeSearch(t *testing.T) {
	_, err := corpus.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, corpus.ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

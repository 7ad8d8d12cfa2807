// Package main is the kotoba CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/cli"
	"github.com/hyperjump/kotoba/internal/config"
	"github.com/hyperjump/kotoba/internal/corpus"
	"github.com/hyperjump/kotoba/internal/extract"
	"github.com/hyperjump/kotoba/internal/highlight"
	"github.com/hyperjump/kotoba/internal/search"
	"github.com/hyperjump/kotoba/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/kotoba/config.yaml"
	// defaultCorpusPath is used when neither the config nor -corpus names one.
	defaultCorpusPath = "movies.txt"
)

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory is preferred if it exists; when no file exists at the
// default path either, built-in defaults are used. Returns the config and the
// path actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// commonFlags are shared by every subcommand that loads a corpus.
type commonFlags struct {
	configPath *string
	corpusPath *string
	output     *string
	highlight  *string
	limit      *int
	debug      *bool
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath: fs.String("config", defaultConfigPath, "config file path"),
		corpusPath: fs.String("corpus", "", "corpus file (overrides corpus.path)"),
		output:     fs.String("output", "", "output format: text, compact, or json (overrides output.format)"),
		highlight:  fs.String("highlight", "", "match highlighting: ansi, none, or brackets (overrides output.highlight)"),
		limit:      fs.Int("limit", 0, "results per query, 1-3 (overrides search.limit)"),
		debug:      fs.Bool("debug", false, "enable debug logging"),
	}
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(f *commonFlags) (*config.Config, string, error) {
	cfg, resolved, err := loadConfig(*f.configPath)
	if err != nil {
		return nil, "", err
	}
	if *f.corpusPath != "" {
		cfg.Corpus.Path = *f.corpusPath
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = defaultCorpusPath
	}
	if *f.output != "" {
		cfg.Output.Format = *f.output
	}
	if *f.highlight != "" {
		cfg.Output.Highlight = *f.highlight
	}
	if *f.limit != 0 {
		cfg.Search.Limit = *f.limit
	}
	cfg.Debug = cfg.Debug || *f.debug
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, resolved, nil
}

// app is everything a subcommand needs once the corpus is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	corpus *corpus.Corpus
	engine *search.Engine
	format cli.SearchOutputFormat
}

// setup resolves config, builds the logger and loads the corpus. Any failure
// is reported on stderr and the process exits 1 before a query runs.
func setup(f *commonFlags) *app {
	cfg, resolvedConfigPath, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.Bool("debug", cfg.Debug),
	)

	c, err := corpus.Load(cfg.Corpus.Path,
		corpus.WithMaxLineBytes(cfg.Corpus.MaxLineBytes),
		corpus.WithExtractor(extract.NewExtractor()),
		corpus.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Sync()
		fmt.Fprintf(os.Stderr, "Failed to load corpus: %v\n", err)
		os.Exit(1)
	}

	// Validate has already checked both names.
	marker, _ := highlight.MarkerByName(cfg.Output.Highlight)
	format, _ := cli.ParseOutputFormat(cfg.Output.Format)

	engine := search.NewEngine(c,
		search.WithLogger(logger),
		search.WithLimit(cfg.Search.Limit),
		search.WithMarker(marker),
		search.WithCollapseDuplicates(cfg.Search.CollapseOrDefault()),
	)
	return &app{cfg: cfg, logger: logger, corpus: c, engine: engine, format: format}
}

func main() {
	command := "repl"
	args := os.Args[1:]
	if len(args) > 0 {
		switch a := args[0]; {
		case !strings.HasPrefix(a, "-"), a == "-v", a == "--version", a == "-h", a == "--help":
			command, args = a, args[1:]
		}
	}
	switch command {
	case "repl":
		runRepl(args)
	case "search":
		runSearch(args)
	case "stats":
		runStats(args)
	case "version", "--version", "-v":
		fmt.Printf("kotoba version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	f := registerCommonFlags(fs)
	_ = fs.Parse(args)

	a := setup(f)
	defer a.logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := cli.NewSession(a.engine, os.Stdin, os.Stdout,
		cli.WithPrompt(a.cfg.Prompt.Text),
		cli.WithQuit(a.cfg.Prompt.Quit),
		cli.WithFormat(a.format),
		cli.WithLogger(a.logger),
	)
	if _, err := session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			// End the unanswered prompt line.
			fmt.Println()
			return
		}
		a.logger.Error("session failed", zap.Error(err))
		os.Exit(1)
	}
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kotoba search [flags] <keywords>\n\n")
	fmt.Fprintf(fs.Output(), "Keywords are all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
A line matches when it contains any keyword as a whole word, ignoring case.
Lines are ranked by the number of keyword occurrences.

Examples:
  kotoba search drama
  kotoba search crime drama                       # either keyword
  kotoba search -corpus films.txt -output json comedy
  kotoba search -highlight brackets comedy drama
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// keywords to the front so that flag.Parse sees them. The flag package stops
// at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	f := registerCommonFlags(fs)
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgsReorder(args))

	query := buildSearchQuery(fs.Args())
	if query == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	a := setup(f)
	defer a.logger.Sync()

	if err := executeSearch(context.Background(), a.engine, query, os.Stdout, a.format); err != nil {
		a.logger.Error("search failed", zap.Error(err))
		os.Exit(1)
	}
}

// executeSearch runs one query and writes its results.
func executeSearch(ctx context.Context, s cli.Searcher, query string, w io.Writer, format cli.SearchOutputFormat) error {
	response, err := s.Search(ctx, query)
	if err != nil {
		return err
	}
	return cli.WriteSearchResults(w, response, format)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	f := registerCommonFlags(fs)
	_ = fs.Parse(args)

	a := setup(f)
	defer a.logger.Sync()

	writeStats(os.Stdout, a.corpus)
}

func writeStats(w io.Writer, c *corpus.Corpus) {
	fmt.Fprintf(w, "Corpus:      %s\n", c.Source())
	fmt.Fprintf(w, "Documents:   %d\n", c.Len())
	fmt.Fprintf(w, "Blank lines: %d\n", c.Blank())
}

func printUsage() {
	fmt.Println(`kotoba - keyword search over a line-oriented text corpus

Usage:
  kotoba [repl] [flags]              Interactive search (default)
  kotoba search [flags] <keywords>   Run one query and exit
  kotoba stats [flags]               Show corpus statistics
  kotoba version                     Show version
  kotoba help                        Show this help

Flags:
  -config <path>      Config file (default: ./config.yaml, then /usr/local/etc/kotoba/config.yaml)
  -corpus <path>      Corpus file (default: movies.txt)
  -output <format>    text, compact, or json
  -highlight <style>  ansi, none, or brackets
  -limit <n>          Results per query, 1-3
  -debug              Debug logging to stderr

Corpus files may be plain text or .pdf, .docx, .odt, .xlsx, .pptx, .odp, .ods.
In the interactive loop, enter q on its own line to quit.`)
}

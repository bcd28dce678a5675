package main

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"utilgen/internal/analyze"
	"utilgen/internal/config"
	"utilgen/internal/diagnostic"
	"utilgen/internal/directive"
	"utilgen/internal/engine"
)

const defaultConfig = "utilgen.yaml"

// session is everything loaded before evaluation.
type session struct {
	cfg      *config.File
	graph    *analyze.TypeGraph
	requests []engine.Request
	diags    diagnostic.Diagnostics
	logger   *slog.Logger
}

func newLogger(w io.Writer, opts *rootOptions) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", opts.logLevel, err)
	}

	if opts.debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// loadConfig reads --config, or ./utilgen.yaml when it exists, or returns
// the defaults.
func loadConfig(path string) (*config.File, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfig); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return config.Parse(nil)
			}

			return nil, err
		}

		path = defaultConfig
	}

	return config.Load(path)
}

// load runs config loading, package analysis and declaration discovery.
// Problems with single declarations end up in session.diags; the returned
// error is for failures that leave nothing to evaluate.
func load(opts *rootOptions, stderr io.Writer, patterns []string) (*session, error) {
	logger, err := newLogger(stderr, opts)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger}
	s.diags.Merge(config.Validate(cfg))

	dir := ""
	if len(patterns) == 0 {
		patterns = cfg.Packages
		dir = cfg.Dir
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	logger.Debug("loading packages", "patterns", strings.Join(patterns, " "), "dir", dir)

	analyzer := analyze.NewAnalyzer(analyze.WithDir(dir), analyze.WithLogger(logger))

	s.graph, err = analyzer.LoadPackages(patterns...)
	if err != nil {
		s.diags.AddError(diagnostic.KindLoadFailure, err.Error(), cfgPos(cfg))
		return s, nil
	}

	found := directive.FromPackages(analyzer.Packages())
	s.diags.Merge(found.Diagnostics)

	for _, d := range found.Directives {
		s.requests = append(s.requests, d.Request())
	}

	reqs, diags := cfg.Requests(s.graph)
	s.diags.Merge(diags)
	s.requests = append(s.requests, reqs...)

	logger.Info("declarations discovered", "directives", len(found.Directives), "config", len(reqs))

	return s, nil
}

func cfgPos(cfg *config.File) (pos token.Position) {
	pos.Filename = cfg.Path
	return pos
}

// collect adds the diagnostics of failed results to the session's.
func (s *session) collect(results []engine.Result) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	diags.Merge(s.diags)

	for _, r := range results {
		if !r.OK() {
			diags.Add(*r.Diagnostic)
		}
	}

	return diags
}

// run evaluates the discovered requests.
func (s *session) run(ctx context.Context) ([]engine.Result, error) {
	if s.graph == nil {
		return nil, nil
	}

	return engine.Run(ctx, s.graph, s.requests, engine.Options{
		Concurrency: s.cfg.Output.Concurrency,
		Logger:      s.logger,
	})
}

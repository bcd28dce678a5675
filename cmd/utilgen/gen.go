package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"utilgen/internal/gen"
	"utilgen/internal/report"
)

func newGenCmd(opts *rootOptions) *cobra.Command {
	var (
		out   string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Evaluate declarations and write the generated files",
		Long: `Evaluate every //utilgen: directive and config declaration and write one
generated file per package. Packages default to the config's packages, or
the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				_, err := runGen(cmd.Context(), cmd, opts, out, args)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchGen(ctx, cmd, opts, out, args)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write all declarations into one package in this directory")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when .go or .yaml files change")

	return cmd
}

// runGen runs one generation pass. Declarations that evaluated are written
// even when others failed; failures make the pass return errFailed.
func runGen(ctx context.Context, cmd *cobra.Command, opts *rootOptions, out string, args []string) (*session, error) {
	s, err := load(opts, cmd.ErrOrStderr(), args)
	if err != nil {
		return nil, err
	}

	results, err := s.run(ctx)
	if err != nil {
		return s, err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Filename:  s.cfg.Output.Filename,
		Header:    s.cfg.Output.Header,
		OutputDir: out,
	})

	files, genDiags, genErr := generator.Generate(results)

	diags := s.collect(results)
	diags.Merge(genDiags)

	printer := report.NewPrinter(cmd.ErrOrStderr(), opts.noColor)
	failed := printer.Diagnostics(diags) > 0

	if genErr != nil {
		return s, fmt.Errorf("generate: %w", genErr)
	}

	if err := gen.WriteFiles(files); err != nil {
		return s, err
	}

	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", f.Path(), strings.Join(f.Declarations, ", "))
	}

	if failed {
		return s, errFailed
	}

	return s, nil
}

// watchGen runs generation once, then again whenever watched files change,
// until ctx is cancelled.
func watchGen(ctx context.Context, cmd *cobra.Command, opts *rootOptions, out string, args []string) error {
	s, err := runGen(ctx, cmd, opts, out, args)
	if err != nil && !errors.Is(err, errFailed) {
		return err
	}

	w, err := newWatcher(s)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %d directories\n", len(w.dirs))

	return w.loop(ctx, func() {
		next, err := runGen(ctx, cmd, opts, out, args)
		if err != nil && !errors.Is(err, errFailed) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

		if next != nil {
			w.logger = next.logger
		}
	})
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"utilgen/internal/report"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Evaluate declarations without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("invalid --format %q: use text or yaml", format)
			}

			s, err := load(opts, cmd.ErrOrStderr(), args)
			if err != nil {
				return err
			}

			results, err := s.run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			diagOut := out

			if format == "yaml" {
				if err := report.NewManifest(results).Write(out); err != nil {
					return err
				}

				diagOut = cmd.ErrOrStderr()
			} else {
				for _, r := range results {
					if r.OK() {
						fmt.Fprintf(out, "ok %s = %s (%d fields)\n", r.Request.Name, r.Request.Selector, len(r.Fields))
					}
				}
			}

			if report.NewPrinter(diagOut, opts.noColor).Diagnostics(s.collect(results)) > 0 {
				return errFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")

	return cmd
}

// Package main provides the CLI entrypoint for utilgen.
//
// utilgen derives Go structs and interfaces from existing types with
// selector expressions such as Pick<Order, ID|Status>:
//   - gen evaluates all declarations and writes the generated files
//   - check evaluates without writing and reports problems
//   - eval and repl evaluate single selectors against loaded packages
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errFailed reports that diagnostics were already printed.
var errFailed = errors.New("failed")

// rootOptions holds the persistent flags.
type rootOptions struct {
	config   string
	noColor  bool
	debug    bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "utilgen",
		Short:         "Generate Go types from selector expressions over existing types",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "Path to utilgen.yaml (default: ./utilgen.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newGenCmd(opts),
		newCheckCmd(opts),
		newEvalCmd(opts),
		newReplCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

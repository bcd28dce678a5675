package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"utilgen/internal/typesys"
)

const (
	historyFile = ".utilgen_history"
	prompt      = "utilgen> "
)

const replHelp = `Enter a selector such as Pick<Order, ID|Status> to print its fields.
Commands:
  :ns a,b     set candidate namespaces
  :name Name  set the declared name (lowercase names are internal)
  :types      list loaded type names
  :quit       exit
`

func newReplCmd(opts *rootOptions) *cobra.Command {
	eo := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "repl [packages...]",
		Short: "Evaluate selectors interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadForEval(opts, cmd, args)
			if err != nil {
				return err
			}

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			home, _ := os.UserHomeDir()
			histPath := filepath.Join(home, historyFile)

			if f, err := os.Open(histPath); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}

			defer func() {
				if f, err := os.Create(histPath); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()

			out := cmd.OutOrStdout()
			fmt.Fprint(out, replHelp)

			for {
				line, err := ln.Prompt(prompt)
				if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
					fmt.Fprintln(out)
					return nil
				}

				if err != nil {
					return err
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}

				ln.AppendHistory(line)

				if strings.HasPrefix(line, ":") {
					if quit := replCommand(s, eo, line, out); quit {
						return nil
					}

					continue
				}

				req, err := eo.request(s, line)
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}

				evalOne(s, req, out, opts)
			}
		},
	}

	eo.register(cmd)

	return cmd
}

// replCommand runs a colon command and reports whether to exit.
func replCommand(s *session, eo *evalOptions, line string, out io.Writer) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q":
		return true
	case ":ns":
		eo.namespaces = nil

		for _, ns := range strings.Split(arg, ",") {
			if ns = strings.TrimSpace(ns); ns != "" {
				eo.namespaces = append(eo.namespaces, ns)
			}
		}

		fmt.Fprintf(out, "namespaces: %v\n", eo.namespaces)
	case ":name":
		if arg != "" {
			eo.name = arg
		}

		fmt.Fprintf(out, "name: %s\n", eo.name)
	case ":types":
		for _, n := range typesys.AllTypeNames(s.graph) {
			fmt.Fprintln(out, n)
		}
	case ":help":
		fmt.Fprint(out, replHelp)
	default:
		fmt.Fprintf(out, "unknown command %s, type :help\n", name)
	}

	return false
}

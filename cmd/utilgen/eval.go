package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"utilgen/internal/common"
	"utilgen/internal/engine"
	"utilgen/internal/report"
	"utilgen/internal/selector"
	"utilgen/internal/typesys"
)

// evalOptions are shared by eval and repl.
type evalOptions struct {
	name       string
	category   string
	namespaces []string
}

func (o *evalOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.name, "name", "Result", "Declared name; lowercase names are internal")
	cmd.Flags().StringVar(&o.category, "kind", "struct", "Declaration kind: struct or interface")
	cmd.Flags().StringSliceVarP(&o.namespaces, "namespace", "n", nil, "Candidate namespaces (default: the loaded packages)")
}

func (o *evalOptions) request(s *session, text string) (engine.Request, error) {
	category, ok := typesys.ParseCategory(o.category)
	if !ok {
		return engine.Request{}, fmt.Errorf("invalid --kind %q: use struct or interface", o.category)
	}

	namespaces := o.namespaces
	if len(namespaces) == 0 && s.graph != nil {
		for _, p := range s.graph.RootPackages() {
			namespaces = append(namespaces, p.Name)
		}
	}

	return engine.Request{
		Name:       o.name,
		Selector:   text,
		Access:     typesys.AccessibilityOf(o.name),
		Namespaces: common.Dedupe(namespaces),
		Category:   category,
	}, nil
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	eo := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <selector> [packages...]",
		Short: "Evaluate one selector and print its fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadForEval(opts, cmd, args[1:])
			if err != nil {
				return err
			}

			req, err := eo.request(s, args[0])
			if err != nil {
				return err
			}

			if !evalOne(s, req, cmd.OutOrStdout(), opts) {
				return errFailed
			}

			return nil
		},
	}

	eo.register(cmd)

	return cmd
}

// loadForEval loads packages and fails when nothing could be loaded.
func loadForEval(opts *rootOptions, cmd *cobra.Command, patterns []string) (*session, error) {
	s, err := load(opts, cmd.ErrOrStderr(), patterns)
	if err != nil {
		return nil, err
	}

	if s.graph == nil {
		report.NewPrinter(cmd.ErrOrStderr(), opts.noColor).Diagnostics(s.diags)
		return nil, errFailed
	}

	return s, nil
}

// evalOne evaluates req and prints its fields or its diagnostic.
func evalOne(s *session, req engine.Request, w io.Writer, opts *rootOptions) bool {
	printer := report.NewPrinter(w, opts.noColor)

	res := engine.Evaluate(s.graph, req)
	if !res.OK() {
		printer.Diagnostic(*res.Diagnostic)
		return false
	}

	if opts.debug {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		dumper.Fdump(w, treeOf(res.Node))
	}

	printer.Fields(res.Fields)

	return true
}

// tree is a plain view of a selector tree for debug dumps.
type tree struct {
	Verb   string
	Access string
	Type   string
	Names  []string
	Of     []tree
}

func treeOf(n selector.Node) tree {
	t := tree{Access: n.Access().String()}

	switch n := n.(type) {
	case *selector.Import:
		t.Verb, t.Of = "Import", operands(n.Of)
	case *selector.Pick:
		t.Verb, t.Of, t.Names = "Pick", operands(n.Of), n.Names
	case *selector.Omit:
		t.Verb, t.Of, t.Names = "Omit", operands(n.Of), n.Names
	case *selector.NotNull:
		t.Verb, t.Of = "NotNull", operands(n.Of)
	case *selector.Nullable:
		t.Verb, t.Of = "Nullable", operands(n.Of)
	case *selector.Optional:
		t.Verb, t.Of = "Optional", operands(n.Of)
	case *selector.Required:
		t.Verb, t.Of = "Required", operands(n.Of)
	case *selector.Readonly:
		t.Verb, t.Of = "Readonly", operands(n.Of)
	case *selector.Union:
		t.Verb, t.Of = "Union", operands(n.Of...)
	case *selector.Intersection:
		t.Verb, t.Of = "Intersection", operands(n.Of...)
	}

	return t
}

func operands(ops ...selector.Operand) []tree {
	out := make([]tree, len(ops))

	for i, op := range ops {
		if op.Node != nil {
			out[i] = treeOf(op.Node)
			continue
		}

		out[i] = tree{Verb: "type", Type: op.String()}
	}

	return out
}

package selector

import (
	"errors"
	"fmt"

	"utilgen/internal/grammar"
	"utilgen/internal/typesys"
)

// Scope is what the declaring site contributes to a tree.
type Scope struct {
	// Access is stamped on every node.
	Access typesys.Accessibility
	// Namespaces are the candidate prefixes for unqualified type names, in
	// the order they are tried.
	Namespaces []string
}

// Compile parses text and builds its tree.
func Compile(table typesys.SymbolTable, text string, scope Scope) (Node, error) {
	expr, err := grammar.Parse(text)
	if err != nil {
		return nil, err
	}

	return Build(table, expr, scope)
}

// Build resolves every symbol of expr and returns the tree. It stops at the
// first failure. Operands repeated in a Union or Intersection are kept once.
func Build(table typesys.SymbolTable, expr *grammar.Expr, scope Scope) (Node, error) {
	b := &builder{table: table, scope: scope}
	return b.node(expr)
}

type builder struct {
	table typesys.SymbolTable
	scope Scope
}

func (b *builder) node(expr *grammar.Expr) (Node, error) {
	ops, err := b.operands(expr.Args)
	if err != nil {
		return nil, err
	}

	decl := Decl{Accessibility: b.scope.Access}

	switch expr.Verb {
	case grammar.VerbImport:
		return &Import{Decl: decl, Of: ops[0]}, nil
	case grammar.VerbNotNull:
		return &NotNull{Decl: decl, Of: ops[0]}, nil
	case grammar.VerbNullable:
		return &Nullable{Decl: decl, Of: ops[0]}, nil
	case grammar.VerbOptional:
		return &Optional{Decl: decl, Of: ops[0]}, nil
	case grammar.VerbRequired:
		return &Required{Decl: decl, Of: ops[0]}, nil
	case grammar.VerbReadonly:
		return &Readonly{Decl: decl, Of: ops[0]}, nil
	case grammar.VerbPick:
		return &Pick{Decl: decl, Of: ops[0], Names: expr.Props}, nil
	case grammar.VerbOmit:
		return &Omit{Decl: decl, Of: ops[0], Names: expr.Props}, nil
	case grammar.VerbUnion:
		return &Union{Decl: decl, Of: dedupe(ops)}, nil
	case grammar.VerbIntersection:
		return &Intersection{Decl: decl, Of: dedupe(ops)}, nil
	default:
		return nil, fmt.Errorf("unsupported verb %s", expr.Verb)
	}
}

func (b *builder) operands(args []grammar.Arg) ([]Operand, error) {
	if len(args) == 0 {
		return nil, errors.New("selector without operands")
	}

	ops := make([]Operand, 0, len(args))

	for _, a := range args {
		if a.Expr != nil {
			n, err := b.node(a.Expr)
			if err != nil {
				return nil, err
			}

			ops = append(ops, NodeOperand(n))

			continue
		}

		d, err := typesys.Resolve(b.table, a.Symbol, b.scope.Namespaces)
		if err != nil {
			return nil, err
		}

		ops = append(ops, TypeOperand(d))
	}

	return ops, nil
}

// dedupe keeps the first of operands that resolve to the same type or
// render to the same selector.
func dedupe(ops []Operand) []Operand {
	seen := make(map[string]struct{}, len(ops))
	out := ops[:0:0]

	for _, op := range ops {
		key := op.String()
		if op.Type != nil {
			key = "type:" + key
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, op)
	}

	return out
}

package typesys

import (
	"fmt"
	"strings"

	"utilgen/internal/suggest"
)

// UnresolvedTypeError reports a type name that matched nothing.
type UnresolvedTypeError struct {
	// Name is the text that was searched for.
	Name string
	// Namespaces are the candidate prefixes that were tried.
	Namespaces []string
	// Suggestions are similarly named types, best first.
	Suggestions []string
}

func (e *UnresolvedTypeError) Error() string {
	if len(e.Namespaces) == 0 {
		return fmt.Sprintf("type %q not found", e.Name)
	}

	return fmt.Sprintf("type %q not found (searched %s)", e.Name, strings.Join(e.Namespaces, ", "))
}

// SplitName decomposes a type name such as "store.Page<int, store.Item>"
// into its namespace parts ["store"], simple name "Page" and arity 2.
// Commas count toward the arity only at the top nesting level.
func SplitName(name string) (namespace []string, simple string, arity int) {
	base := name
	if lt := strings.IndexByte(name, '<'); lt >= 0 {
		base = name[:lt]
		arity = 1
		depth := 0

		for _, r := range name[lt+1:] {
			switch r {
			case '<':
				depth++
			case '>':
				depth--
			case ',':
				if depth == 0 {
					arity++
				}
			}
		}
	}

	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return nil, base, arity
	}

	return strings.Split(base[:dot], "."), base[dot+1:], arity
}

// Resolve maps a type name to exactly one Descriptor.
//
// An unqualified name is tried under each candidate namespace in order, then
// searched depth-first through the whole namespace tree. A qualified name is
// walked segment by segment from the global namespace, then tried under each
// candidate namespace. The first match wins; when several types are equally
// eligible the choice follows the table's namespace order.
func Resolve(table SymbolTable, name string, namespaces []string) (Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &UnresolvedTypeError{Name: name, Namespaces: namespaces}
	}

	parts, simple, arity := SplitName(name)
	global := table.Global()

	if len(parts) > 0 {
		if d := walk(global, parts, simple, arity); d != nil {
			return d, nil
		}
	}

	for _, ns := range namespaces {
		if ns == "" {
			continue
		}

		prefix := append(strings.Split(ns, "."), parts...)
		if d := walk(global, prefix, simple, arity); d != nil {
			return d, nil
		}
	}

	if len(parts) == 0 {
		if d := search(global, simple, arity); d != nil {
			return d, nil
		}
	}

	return nil, &UnresolvedTypeError{
		Name:        name,
		Namespaces:  namespaces,
		Suggestions: suggest.Closest(simple, AllTypeNames(table), suggest.DefaultLimit),
	}
}

// walk follows path from ns and looks simple up in the namespace it reaches.
// Sibling namespaces sharing a name are tried in order.
func walk(ns Namespace, path []string, simple string, arity int) Descriptor {
	if len(path) == 0 {
		return lookup(ns, simple, arity)
	}

	for _, child := range ns.Namespaces() {
		if child.Name() != path[0] {
			continue
		}

		if d := walk(child, path[1:], simple, arity); d != nil {
			return d
		}
	}

	return nil
}

// search looks for simple in ns and then in every descendant, depth first.
func search(ns Namespace, simple string, arity int) Descriptor {
	if d := lookup(ns, simple, arity); d != nil {
		return d
	}

	for _, child := range ns.Namespaces() {
		if d := search(child, simple, arity); d != nil {
			return d
		}
	}

	return nil
}

func lookup(ns Namespace, simple string, arity int) Descriptor {
	for _, d := range ns.Types(simple) {
		if d.Arity() == arity {
			return d
		}
	}

	return nil
}

// AllTypeNames lists every simple type name in the table, depth first,
// without duplicates.
func AllTypeNames(table SymbolTable) []string {
	seen := make(map[string]struct{})

	var names []string

	var visit func(Namespace)
	visit = func(ns Namespace) {
		for _, n := range ns.TypeNames() {
			if _, ok := seen[n]; ok {
				continue
			}

			seen[n] = struct{}{}
			names = append(names, n)
		}

		for _, child := range ns.Namespaces() {
			visit(child)
		}
	}
	visit(table.Global())

	return names
}

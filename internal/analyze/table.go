package analyze

import (
	"go/types"

	"utilgen/internal/typesys"
)

// Global implements typesys.SymbolTable. Its children are the packages of
// the graph: root packages first, then imported ones, each group ordered by
// import path.
func (g *TypeGraph) Global() typesys.Namespace {
	return globalNamespace{g: g}
}

// Identical implements typesys.SymbolTable.
func (g *TypeGraph) Identical(a, b typesys.Type) bool {
	ta, okA := a.(*TypeInfo)
	tb, okB := b.(*TypeInfo)

	if !okA || !okB {
		return a == b
	}

	return types.Identical(ta.GoType, tb.GoType)
}

// WrapNullable implements typesys.SymbolTable by taking a pointer.
func (g *TypeGraph) WrapNullable(t typesys.Type) typesys.Type {
	ti, ok := t.(*TypeInfo)
	if !ok {
		return t
	}

	return &TypeInfo{
		Kind:     TypeKindPointer,
		ElemType: ti,
		GoType:   types.NewPointer(ti.GoType),
	}
}

// UnwrapNullable implements typesys.SymbolTable: a pointer unwraps to its
// element type.
func (g *TypeGraph) UnwrapNullable(t typesys.Type) (typesys.Type, bool) {
	ti, ok := t.(*TypeInfo)
	if !ok || ti.Kind != TypeKindPointer || ti.ElemType == nil {
		return nil, false
	}

	return ti.ElemType, true
}

type globalNamespace struct {
	g *TypeGraph
}

func (n globalNamespace) Name() string { return "" }

func (n globalNamespace) Namespaces() []typesys.Namespace {
	out := make([]typesys.Namespace, len(n.g.order))
	for i, p := range n.g.order {
		out[i] = packageNamespace{g: n.g, pkg: p}
	}

	return out
}

func (n globalNamespace) Types(string) []typesys.Descriptor { return nil }

func (n globalNamespace) TypeNames() []string { return nil }

type packageNamespace struct {
	g   *TypeGraph
	pkg *PackageInfo
}

func (n packageNamespace) Name() string { return n.pkg.Name }

func (n packageNamespace) Namespaces() []typesys.Namespace { return nil }

func (n packageNamespace) Types(name string) []typesys.Descriptor {
	t := n.g.Types[TypeID{PkgPath: n.pkg.Path, Name: name}]
	if t == nil {
		return nil
	}

	return []typesys.Descriptor{t}
}

func (n packageNamespace) TypeNames() []string {
	names := make([]string, len(n.pkg.Types))
	for i, id := range n.pkg.Types {
		names[i] = id.Name
	}

	return names
}

package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilgen/internal/selector"
	"utilgen/internal/typesys"
)

const (
	pocoPath = "utilgen/examples/poco"
	shopPath = "utilgen/examples/shop"
)

func load(t *testing.T, patterns ...string) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(patterns...)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func recordByName(t *testing.T, d typesys.Descriptor, name string) typesys.Field {
	t.Helper()

	for _, f := range d.Fields() {
		if f.Name == name {
			return f
		}
	}

	t.Fatalf("%s has no field %s", d.QualifiedName(), name)

	return typesys.Field{}
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := load(t, shopPath, pocoPath)

	// Check that packages were loaded
	require.Contains(t, graph.Packages, pocoPath)
	require.Contains(t, graph.Packages, shopPath)
	assert.Contains(t, graph.Packages, "time")

	poco := graph.Packages[pocoPath]
	assert.True(t, poco.Root)
	assert.Equal(t, "poco", poco.Name)
	assert.Equal(t, "poco", filepath.Base(poco.Dir))
	assert.False(t, graph.Packages["time"].Root)
	assert.Equal(t, []string{"time"}, graph.Packages[shopPath].Imports)

	// Check that types were extracted
	assert.Contains(t, graph.Types, TypeID{PkgPath: pocoPath, Name: "TestPoco"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: shopPath, Name: "Order"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: "time", Name: "Time"})

	assert.Same(t, poco, graph.FindPackage(poco.Dir))
	assert.Same(t, poco, graph.FindPackage(pocoPath))
	assert.Nil(t, graph.FindPackage("nowhere"))
}

func TestAnalyzer_NamespaceOrder(t *testing.T) {
	graph := load(t, shopPath, pocoPath)

	var names []string
	for _, ns := range graph.Global().Namespaces() {
		names = append(names, ns.Name())
	}

	assert.Equal(t, []string{"poco", "shop", "time"}, names)

	var roots []string
	for _, p := range graph.RootPackages() {
		roots = append(roots, p.Name)
	}

	assert.Equal(t, []string{"poco", "shop"}, roots)
}

func TestAnalyzer_PromotedFields(t *testing.T) {
	graph := load(t, pocoPath)

	poco := graph.GetType(TypeID{PkgPath: pocoPath, Name: "TestPoco"})
	require.NotNil(t, poco)
	assert.Equal(t, TypeKindStruct, poco.Kind)

	assert.Equal(t, []string{
		"NotNullInt", "NotNullObject", "NotNullString", "NotNullStruct",
		"NullableInt", "NullableObject", "NullableString", "NullableStruct",
	}, typesys.Names(poco.Fields()))

	notNullInt := recordByName(t, poco, "NotNullInt")
	assert.Equal(t, "poco.TestPocoOnlyNotNull", notNullInt.Owner.QualifiedName())
	assert.Equal(t, "NotNullInt is a plain int.", notNullInt.Doc)
}

func TestAnalyzer_Nullability(t *testing.T) {
	graph := load(t, pocoPath)
	poco := graph.GetType(TypeID{PkgPath: pocoPath, Name: "TestPoco2"})
	require.NotNil(t, poco)

	tests := []struct {
		field    string
		typ      string
		nullable bool
		value    bool
	}{
		{"NotNullInt", "int", false, true},
		{"NotNullObject", "map[string]any", false, false},
		{"NotNullString", "string", false, true},
		{"NotNullStruct", "poco.TestStruct", false, true},
		{"NullableInt", "*int", true, false},
		{"NullableObject", "map[string]any", true, false},
		{"NullableString", "*string", true, false},
		{"NullableStruct", "*poco.TestStruct", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := recordByName(t, poco, tt.field)
			assert.Equal(t, tt.typ, f.Type.String())
			assert.Equal(t, tt.nullable, f.Nullable)
			assert.Equal(t, tt.value, f.Type.IsValueType())
		})
	}
}

func TestAnalyzer_TagFlags(t *testing.T) {
	graph := load(t, pocoPath)
	d := graph.GetType(TypeID{PkgPath: pocoPath, Name: "TestPocoWithReadonly"})
	require.NotNil(t, d)

	id := recordByName(t, d, "NotNullInt")
	assert.True(t, id.Readonly)
	assert.False(t, id.Required)
	assert.Equal(t, `json:"not_null_int"`, id.Tag)

	name := recordByName(t, d, "NotNullString")
	assert.False(t, name.Readonly)
	assert.True(t, name.Required)
	assert.Equal(t, `validate:"required,min=1"`, name.Tag)
}

func TestAnalyzer_GenericAndRecursive(t *testing.T) {
	graph := load(t, pocoPath)

	page := graph.GetType(TypeID{PkgPath: pocoPath, Name: "Page"})
	require.NotNil(t, page)
	assert.Equal(t, 1, page.Arity())
	assert.Equal(t, []string{"Items", "Total"}, typesys.Names(page.Fields()))

	node := graph.GetType(TypeID{PkgPath: pocoPath, Name: "Node"})
	require.NotNil(t, node)

	next := recordByName(t, node, "Next")
	assert.True(t, next.Nullable)
	assert.Equal(t, "*poco.Node", next.Type.String())
}

func TestAnalyzer_UnexportedTypes(t *testing.T) {
	graph := load(t, pocoPath)

	secret := graph.GetType(TypeID{PkgPath: pocoPath, Name: "secret"})
	require.NotNil(t, secret)
	assert.Equal(t, typesys.Internal, secret.Accessibility())
	assert.Equal(t, []string{"Token"}, typesys.Names(secret.Fields()))

	poco := graph.GetType(TypeID{PkgPath: pocoPath, Name: "TestPoco"})
	assert.Equal(t, typesys.Public, poco.Accessibility())
}

func TestAnalyzer_TypeAlias(t *testing.T) {
	graph := load(t, shopPath)

	status := graph.GetType(TypeID{PkgPath: shopPath, Name: "OrderStatus"})
	require.NotNil(t, status)

	// OrderStatus is a named string
	assert.Equal(t, TypeKindAlias, status.Kind)
	assert.Equal(t, TypeKindBasic, status.Underlying.Kind)
	assert.True(t, status.IsValueType())
}

func TestTypeGraph_Resolve(t *testing.T) {
	graph := load(t, shopPath, pocoPath)

	tests := []struct {
		name       string
		namespaces []string
		want       TypeID
	}{
		{"Order", nil, TypeID{PkgPath: shopPath, Name: "Order"}},
		{"shop.Order", nil, TypeID{PkgPath: shopPath, Name: "Order"}},
		{"TestPoco", []string{"shop", "poco"}, TypeID{PkgPath: pocoPath, Name: "TestPoco"}},
		{"Page<shop.Order>", []string{"poco"}, TypeID{PkgPath: pocoPath, Name: "Page"}},
		{"time.Time", nil, TypeID{PkgPath: "time", Name: "Time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := typesys.Resolve(graph, tt.name, tt.namespaces)
			require.NoError(t, err)
			assert.Same(t, graph.GetType(tt.want), d)
		})
	}

	_, err := typesys.Resolve(graph, "Page", nil)
	assert.Error(t, err, "Page needs one type argument")
}

func TestTypeGraph_NullableWrapping(t *testing.T) {
	graph := load(t, pocoPath)
	poco := graph.GetType(TypeID{PkgPath: pocoPath, Name: "TestPoco"})

	notNullInt := recordByName(t, poco, "NotNullInt")
	nullableInt := recordByName(t, poco, "NullableInt")

	wrapped := graph.WrapNullable(notNullInt.Type)
	assert.Equal(t, "*int", wrapped.String())
	assert.True(t, graph.Identical(wrapped, nullableInt.Type))

	inner, ok := graph.UnwrapNullable(nullableInt.Type)
	require.True(t, ok)
	assert.True(t, graph.Identical(inner, notNullInt.Type))

	_, ok = graph.UnwrapNullable(notNullInt.Type)
	assert.False(t, ok)

	assert.True(t, typesys.SameType(graph, notNullInt.Type, nullableInt.Type))
}

func TestTypeGraph_Selectors(t *testing.T) {
	graph := load(t, pocoPath)
	scope := selector.Scope{Access: typesys.Public, Namespaces: []string{"poco"}}

	eval := func(text string) []typesys.Field {
		t.Helper()

		n, err := selector.Compile(graph, text, scope)
		require.NoError(t, err)

		fields, err := selector.Evaluate(graph, n)
		require.NoError(t, err)

		return fields
	}

	assert.Len(t, eval("Union<TestPoco, TestPoco2>"), 8)
	assert.Len(t, eval("Intersect<TestPocoOnlyNotNull, TestPoco2>"), 4)

	nullable := eval("Nullable<Pick<TestPoco, NotNullInt|NotNullObject>>")
	assert.Equal(t, "*int", nullable[0].Type.String())
	assert.True(t, nullable[0].Nullable)
	assert.Equal(t, "map[string]any", nullable[1].Type.String())
	assert.True(t, nullable[1].Nullable)

	notNull := eval("NotNull<Pick<TestPoco, NullableStruct>>")
	assert.Equal(t, "poco.TestStruct", notNull[0].Type.String())
	assert.False(t, notNull[0].Nullable)

	n, err := selector.Compile(graph, "Union<TestPoco, TestPocoWithDifferentTypes>", scope)
	require.NoError(t, err)

	_, err = selector.Evaluate(graph, n)

	var conflict *selector.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"NotNullInt", "NullableInt"}, conflict.Names())
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("utilgen/examples/does-not-exist")
	assert.Error(t, err)
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "typeparam", TypeKindTypeParam.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
	assert.True(t, TypeKindSlice.IsReference())
	assert.False(t, TypeKindArray.IsReference())
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: shopPath, Name: "Order"}
	assert.Equal(t, "utilgen/examples/shop.Order", id.String())

	assert.Equal(t, "int", TypeID{Name: "int"}.String())
}

package typesys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilgen/internal/typesys"
	"utilgen/internal/typesys/typesystest"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		namespace []string
		simple    string
		arity     int
	}{
		{"TestPoco", nil, "TestPoco", 0},
		{"app.models.TestPoco", []string{"app", "models"}, "TestPoco", 0},
		{"Page<T>", nil, "Page", 1},
		{"store.Page<int, store.Item>", []string{"store"}, "Page", 2},
		{"Map<K, Pair<A, B>>", nil, "Map", 2},
		{"a.b.Tuple<x.Y<Z>, W, V>", []string{"a", "b"}, "Tuple", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, simple, arity := typesys.SplitName(tt.name)
			assert.Equal(t, tt.namespace, ns)
			assert.Equal(t, tt.simple, simple)
			assert.Equal(t, tt.arity, arity)
		})
	}
}

func TestResolve(t *testing.T) {
	f := typesystest.New()

	tests := []struct {
		desc       string
		name       string
		namespaces []string
		want       typesys.Descriptor
	}{
		{"candidate namespace", "TestPoco", []string{typesystest.Namespace}, f.TestPoco},
		{"first candidate wins", "TestPoco", []string{"other", typesystest.Namespace}, f.OtherTestPoco},
		{"missing candidate skipped", "TestPoco", []string{"nowhere", "other"}, f.OtherTestPoco},
		{"global search without candidates", "TestPoco", nil, f.TestPoco},
		{"global search after candidates miss", "TestPocoOnlyNullable", []string{"other"}, f.TestPocoOnlyNullable},
		{"global search reaches nested namespaces", "TestStruct", nil, f.TestStruct},
		{"qualified", "other.TestPoco", nil, f.OtherTestPoco},
		{"qualified deep", "app.deep.nested.TestPoco", nil, f.DeepTestPoco},
		{"qualified relative to candidate", "nested.TestPoco", []string{"app.deep"}, f.DeepTestPoco},
		{"generic arity", "TestGenericPoco<int>", nil, f.TestGenericPoco},
		{"surrounding whitespace", "  TestPoco2 ", nil, f.TestPoco2},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := typesys.Resolve(f.Table, tt.name, tt.namespaces)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestResolve_QualifiedNames(t *testing.T) {
	m := typesys.NewMemory()
	top := m.Namespace("models").Struct("User")
	nested := m.Namespace("app.models").Struct("User")
	m.Namespace("app.views").Struct("Card")

	tests := []struct {
		desc       string
		name       string
		namespaces []string
		want       string
	}{
		{"absolute walk wins over candidate prefix", "models.User", []string{"app"}, top.QualifiedName()},
		{"candidate prefix after absolute miss", "views.Card", []string{"app"}, "app.views.Card"},
		{"candidates tried in order", "views.Card", []string{"models", "x", "app"}, "app.views.Card"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := typesys.Resolve(m, tt.name, tt.namespaces)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.QualifiedName())
		})
	}

	t.Run("nested type reached only through its prefix", func(t *testing.T) {
		got, err := typesys.Resolve(m, "app.models.User", nil)
		require.NoError(t, err)
		assert.Same(t, nested, got)
	})

	t.Run("qualified miss never searches globally", func(t *testing.T) {
		for _, namespaces := range [][]string{nil, {"models"}} {
			_, err := typesys.Resolve(m, "views.Card", namespaces)

			var unresolved *typesys.UnresolvedTypeError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, "views.Card", unresolved.Name)
		}
	})
}

func TestResolve_GlobalSearchIsDeterministic(t *testing.T) {
	// Three types are named TestPoco; depth-first order reaches app.models first.
	for range 10 {
		f := typesystest.New()
		got, err := typesys.Resolve(f.Table, "TestPoco", nil)
		require.NoError(t, err)
		assert.Equal(t, "app.models.TestPoco", got.QualifiedName())
	}
}

func TestResolve_Failures(t *testing.T) {
	f := typesystest.New()

	tests := []struct {
		desc       string
		name       string
		namespaces []string
	}{
		{"unknown name", "Nope", nil},
		{"unknown name with candidates", "Nope", []string{typesystest.Namespace}},
		{"missing namespace segment", "app.missing.TestPoco", nil},
		{"wrong arity", "TestPoco<int>", nil},
		{"generic without arguments", "TestGenericPoco", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := typesys.Resolve(f.Table, tt.name, tt.namespaces)
			require.Error(t, err)
			assert.Nil(t, got)

			var unresolved *typesys.UnresolvedTypeError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, tt.namespaces, unresolved.Namespaces)
		})
	}
}

func TestResolve_Suggestions(t *testing.T) {
	f := typesystest.New()

	_, err := typesys.Resolve(f.Table, "TestPocoOnlyNotNul", nil)

	var unresolved *typesys.UnresolvedTypeError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "TestPocoOnlyNotNull", unresolved.Suggestions[0])
	assert.Contains(t, err.Error(), `"TestPocoOnlyNotNul"`)
}

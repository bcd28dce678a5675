package gen

import (
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilgen/internal/analyze"
	"utilgen/internal/diagnostic"
	"utilgen/internal/engine"
	"utilgen/internal/typesys"
)

const (
	pocoPath = "utilgen/examples/poco"
	shopPath = "utilgen/examples/shop"
)

var (
	graphOnce sync.Once
	graph     *analyze.TypeGraph
	graphErr  error
)

func loadGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	graphOnce.Do(func() {
		graph, graphErr = analyze.NewAnalyzer().LoadPackages(pocoPath, shopPath)
	})
	require.NoError(t, graphErr)

	return graph
}

// evaluate runs one declaration against the example packages.
func evaluate(t *testing.T, pkg, name, selector string, category typesys.Category) engine.Result {
	t.Helper()

	g := loadGraph(t)
	info := g.Packages[pkg]
	require.NotNil(t, info)

	res := engine.Evaluate(g, engine.Request{
		Name:       name,
		Selector:   selector,
		Access:     typesys.AccessibilityOf(name),
		Namespaces: []string{info.Name},
		Category:   category,
		Package:    pkg,
		PkgName:    info.Name,
		Dir:        info.Dir,
	})
	require.True(t, res.OK(), "%v", res.Diagnostic)

	return res
}

func generateOne(t *testing.T, results ...engine.Result) string {
	t.Helper()

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate(results)
	require.NoError(t, err)
	require.Empty(t, diags.All())
	require.Len(t, files, 1)

	return string(files[0].Content)
}

func TestGenerator_Struct(t *testing.T) {
	res := evaluate(t, pocoPath, "PocoSummary", "Pick<TestPoco, NotNullInt|NotNullString>", typesys.CategoryStruct)

	want := `// Code generated by utilgen. DO NOT EDIT.

package poco

// PocoSummary is generated from Pick<TestPoco, NotNullInt|NotNullString>.
type PocoSummary struct {
	// NotNullInt is a plain int.
	NotNullInt    int
	NotNullString string
}
`
	assert.Equal(t, want, generateOne(t, res))
}

func TestGenerator_File(t *testing.T) {
	res := evaluate(t, pocoPath, "PocoSummary", "Import<TestStruct>", typesys.CategoryStruct)

	files, _, err := NewGenerator(DefaultGeneratorConfig()).Generate([]engine.Result{res})
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "utilgen_types.go", f.Filename)
	assert.Equal(t, pocoPath, f.Package)
	assert.Equal(t, "poco", filepath.Base(f.Dir))
	assert.Equal(t, filepath.Join(f.Dir, "utilgen_types.go"), f.Path())
	assert.Equal(t, []string{"PocoSummary"}, f.Declarations)
}

func TestGenerator_Tags(t *testing.T) {
	content := generateOne(t,
		evaluate(t, pocoPath, "PocoObjects", "Pick<TestPoco, NotNullObject|NullableObject>", typesys.CategoryStruct))

	assert.Contains(t, content, "NotNullObject  map[string]any `utilgen:\"notnull\"`\n")
	assert.Contains(t, content, "NullableObject map[string]any\n")

	content = generateOne(t,
		evaluate(t, pocoPath, "Flags", "Required<Import<TestPocoWithReadonly>>", typesys.CategoryStruct))

	assert.Contains(t, content, "notNullInt    int    `json:\"not_null_int\" validate:\"required\"`")
	assert.Contains(t, content, "NotNullString string `validate:\"required,min=1\"`")

	content = generateOne(t,
		evaluate(t, pocoPath, "Loose", "Optional<Import<TestPocoWithReadonly>>", typesys.CategoryStruct))

	assert.Contains(t, content, "NotNullString string `validate:\"min=1\"`")
	assert.NotContains(t, content, "required")
}

func TestGenerator_ReadonlyGetter(t *testing.T) {
	content := generateOne(t,
		evaluate(t, pocoPath, "ReadonlyView", "Import<TestPocoWithReadonly>", typesys.CategoryStruct))

	assert.Contains(t, content, "\tnotNullInt    int    `json:\"not_null_int\"`\n")
	assert.Contains(t, content, `// NotNullInt returns the notNullInt field.
func (r ReadonlyView) NotNullInt() int {
	return r.notNullInt
}
`)
}

func TestGenerator_Interface(t *testing.T) {
	content := generateOne(t,
		evaluate(t, shopPath, "OrderView", "Pick<Order, ID|Items|OrderedAt>", typesys.CategoryInterface))

	want := `// Code generated by utilgen. DO NOT EDIT.

package shop

import (
	"time"
)

// OrderView is generated from Pick<Order, ID|Items|OrderedAt>.
type OrderView interface {
	ID() int64
	// Items are the order lines.
	Items() []OrderItem
	SetItems([]OrderItem)
	OrderedAt() time.Time
	SetOrderedAt(time.Time)
}
`
	assert.Equal(t, want, content)
}

func TestGenerator_Nullable(t *testing.T) {
	content := generateOne(t,
		evaluate(t, shopPath, "OrderPatch", "Nullable<Pick<Order, Status|OrderedAt|Items>>", typesys.CategoryStruct))

	// The doc comment on Items starts a new alignment section.
	assert.Contains(t, content, "\tStatus *OrderStatus `json:\"status\"`\n")
	assert.Contains(t, content, "\tItems     []OrderItem `json:\"items\"`\n")
	assert.Contains(t, content, "\tOrderedAt *time.Time  `json:\"ordered_at\"`\n")
}

func TestGenerator_InternalAccessibility(t *testing.T) {
	res := evaluate(t, shopPath, "ProductCard", "Pick<Product, Name>", typesys.CategoryStruct)
	res.Request.Access = typesys.Internal

	content := generateOne(t, res)
	assert.Contains(t, content, "// productCard is generated from Pick<Product, Name>.\ntype productCard struct {")
}

func TestGenerator_SortsAndGroups(t *testing.T) {
	failed := diagnostic.New(diagnostic.KindUnresolvedType, "missing")

	results := []engine.Result{
		evaluate(t, shopPath, "Zeta", "Pick<Order, ID>", typesys.CategoryStruct),
		evaluate(t, pocoPath, "Beta", "Import<TestStruct>", typesys.CategoryStruct),
		evaluate(t, shopPath, "Alpha", "Pick<Order, Status>", typesys.CategoryStruct),
		{Request: engine.Request{Name: "Broken", Dir: "/nowhere"}, Diagnostic: &failed},
	}

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate(results)
	require.NoError(t, err)
	assert.Empty(t, diags.All())
	require.Len(t, files, 2)

	assert.Equal(t, "poco", filepath.Base(files[0].Dir))
	assert.Equal(t, []string{"Beta"}, files[0].Declarations)
	assert.Equal(t, "shop", filepath.Base(files[1].Dir))
	assert.Equal(t, []string{"Alpha", "Zeta"}, files[1].Declarations)

	again, _, err := NewGenerator(DefaultGeneratorConfig()).Generate(results)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}

func TestGenerator_OutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "views")

	files, _, err := NewGenerator(GeneratorConfig{OutputDir: out, Filename: "types.go"}).Generate([]engine.Result{
		evaluate(t, pocoPath, "PocoStructs", "Pick<TestPoco, NotNullStruct|NullableStruct>", typesys.CategoryStruct),
		evaluate(t, shopPath, "OrderTimes", "Pick<Order, OrderedAt>", typesys.CategoryStruct),
	})
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.Equal(t, out, files[0].Dir)
	assert.Contains(t, content, "package views\n")
	assert.Contains(t, content, "\t\"time\"\n")
	assert.Contains(t, content, "\t\"utilgen/examples/poco\"\n")
	assert.Contains(t, content, "NotNullStruct  poco.TestStruct\n")
	assert.Contains(t, content, "NullableStruct *poco.TestStruct\n")
	assert.Contains(t, content, "OrderedAt time.Time `json:\"ordered_at\"`")
}

func TestGenerator_SkipsDeclarations(t *testing.T) {
	t.Run("type parameter", func(t *testing.T) {
		res := evaluate(t, pocoPath, "PageCopy", "Import<Page<TestStruct>>", typesys.CategoryStruct)
		res.Request.Pos = token.Position{Filename: "views.go", Line: 7}

		files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate([]engine.Result{res})
		require.NoError(t, err)
		assert.Empty(t, files)

		require.Len(t, diags.Errors, 1)
		d := diags.Errors[0]
		assert.Equal(t, diagnostic.KindEmitFailure, d.Kind)
		assert.Contains(t, d.Message, "PageCopy: field Items has type []T")
		assert.Equal(t, "PageCopy", d.Declaration)
		assert.Equal(t, 7, d.Pos.Line)
	})

	t.Run("without the parameter", func(t *testing.T) {
		res := evaluate(t, pocoPath, "PageInfo", "Omit<Page<TestStruct>, Items>", typesys.CategoryStruct)
		assert.Contains(t, generateOne(t, res), "\tTotal int\n")
	})

	t.Run("duplicate name", func(t *testing.T) {
		a := evaluate(t, pocoPath, "Twice", "Import<TestStruct>", typesys.CategoryStruct)
		b := evaluate(t, pocoPath, "Twice", "Import<Node>", typesys.CategoryStruct)

		files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate([]engine.Result{a, b})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, []string{"Twice"}, files[0].Declarations)
		assert.Contains(t, string(files[0].Content), "Twice is generated from Import<TestStruct>.")

		require.Len(t, diags.Errors, 1)
		assert.Contains(t, diags.Errors[0].Message, "Twice is generated twice")
		assert.Equal(t, "Import<Node>", diags.Errors[0].Selector)
	})

	t.Run("rest of the file is kept", func(t *testing.T) {
		results := []engine.Result{
			evaluate(t, pocoPath, "PageCopy", "Import<Page<TestStruct>>", typesys.CategoryStruct),
			evaluate(t, pocoPath, "PocoInts", "Pick<TestPoco, NotNullInt>", typesys.CategoryStruct),
		}

		files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate(results)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, []string{"PocoInts"}, files[0].Declarations)
		assert.NotContains(t, string(files[0].Content), "PageCopy")
		assert.True(t, diags.HasErrors())
	})
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	files := []GeneratedFile{{Dir: dir, Filename: "utilgen_types.go", Content: []byte("package out\n")}}
	require.NoError(t, WriteFiles(files))

	data, err := os.ReadFile(filepath.Join(dir, "utilgen_types.go"))
	require.NoError(t, err)
	assert.Equal(t, "package out\n", string(data))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "utilgen_types.go", []byte("package x\nfunc {")))

	data, err := os.ReadFile(filepath.Join(dir, "utilgen_types.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package x\nfunc {", string(data))

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}

package report

import (
	"bytes"
	"go/token"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"utilgen/internal/diagnostic"
	"utilgen/internal/engine"
	"utilgen/internal/typesys"
	"utilgen/internal/typesys/typesystest"
)

func evaluate(f *typesystest.Fixture, name, selector string) engine.Result {
	return engine.Evaluate(f.Table, engine.Request{
		Name:       name,
		Selector:   selector,
		Access:     typesys.AccessibilityOf(name),
		Namespaces: []string{typesystest.Namespace},
		Category:   typesys.CategoryStruct,
		Package:    "example.com/app/models",
		Pos:        token.Position{Filename: "views.go", Line: 3, Column: 1},
	})
}

func TestPrinter_Diagnostic(t *testing.T) {
	var buf bytes.Buffer

	d := diagnostic.New(diagnostic.KindInvalidPropertyName, "Pick: property Missing not found in app.models.TestPoco").
		At(token.Position{Filename: "views.go", Line: 3, Column: 1}).
		For("PocoSummary", "Pick<TestPoco, Missing>")
	d.Suggestions = []string{"Missing: did you mean NotNullInt?"}

	NewPrinter(&buf, true).Diagnostic(d)

	want := `error[UTG0004] views.go:3:1: Pick: property Missing not found in app.models.TestPoco
  --> PocoSummary = Pick<TestPoco, Missing>
  help: Missing: did you mean NotNullInt?
`
	assert.Equal(t, want, buf.String())
}

func TestPrinter_Diagnostics(t *testing.T) {
	var (
		buf   bytes.Buffer
		diags diagnostic.Diagnostics
	)

	diags.AddError(diagnostic.KindInvalidConfig, "version: must be one of: 1", token.Position{Filename: "utilgen.yaml"})
	diags.AddWarning(diagnostic.KindInvalidDirective, "unused", token.Position{})

	n := NewPrinter(&buf, true).Diagnostics(diags)
	assert.Equal(t, 1, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "error[UTG0101] utilgen.yaml: version: must be one of: 1", lines[0])
	assert.Equal(t, "warning[UTG0100] unused", lines[1])
	assert.Equal(t, "1 error, 1 warning", lines[2])

	buf.Reset()
	assert.Zero(t, NewPrinter(&buf, true).Diagnostics(diagnostic.Diagnostics{}))
	assert.Empty(t, buf.String())
}

func TestPrinter_Color(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false

	t.Cleanup(func() { color.NoColor = saved })

	var buf bytes.Buffer

	NewPrinter(&buf, false).Diagnostic(diagnostic.New(diagnostic.KindConflict, "boom"))
	assert.Contains(t, buf.String(), "\x1b[")

	buf.Reset()
	NewPrinter(&buf, true).Diagnostic(diagnostic.New(diagnostic.KindConflict, "boom"))
	assert.Equal(t, "error[UTG0002] boom\n", buf.String())
}

func TestPrinter_Fields(t *testing.T) {
	f := typesystest.New()
	res := evaluate(f, "Summary", "Pick<TestPocoWithReadonly, NotNullInt|NotNullString>")
	require.True(t, res.OK())

	var buf bytes.Buffer

	NewPrinter(&buf, true).Fields(res.Fields)

	want := "  NotNullInt    int (readonly)\n" +
		"  NotNullString string (required)\n"
	assert.Equal(t, want, buf.String())
}

func TestSummary(t *testing.T) {
	var diags diagnostic.Diagnostics

	assert.Equal(t, "0 errors, 0 warnings", Summary(diags))

	diags.AddError(diagnostic.KindConflict, "a", token.Position{})
	diags.AddError(diagnostic.KindConflict, "b", token.Position{})
	assert.Equal(t, "2 errors, 0 warnings", Summary(diags))
}

func TestManifest(t *testing.T) {
	f := typesystest.New()

	results := []engine.Result{
		evaluate(f, "Summary", "Pick<TestPoco, NotNullInt|NullableString>"),
		evaluate(f, "broken", "Omit<TestPoco, Missing>"),
	}

	m := NewManifest(results)
	require.Len(t, m.Declarations, 2)

	ok := m.Declarations[0]
	assert.Equal(t, Declaration{
		Name:          "Summary",
		Kind:          "struct",
		Package:       "example.com/app/models",
		Selector:      "Pick<TestPoco, NotNullInt|NullableString>",
		Accessibility: "public",
		Source:        "views.go:3:1",
		Fields: []Field{
			{Name: "NotNullInt", Type: "int"},
			{Name: "NullableString", Type: "string", Flags: []string{"nullable"}},
		},
	}, ok)

	bad := m.Declarations[1]
	assert.Equal(t, "internal", bad.Accessibility)
	assert.Empty(t, bad.Fields)
	require.NotNil(t, bad.Error)
	assert.Equal(t, "UTG0004", bad.Error.Code)
	assert.Contains(t, bad.Error.Message, "Missing")

	data, err := m.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "flags: [nullable]")
	assert.Contains(t, string(data), "  - name: Summary\n")

	var back Manifest
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, m.Declarations[0].Fields, back.Declarations[0].Fields)

	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf))
	assert.Equal(t, string(data), buf.String())
}

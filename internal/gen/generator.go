package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"utilgen/internal/analyze"
	"utilgen/internal/diagnostic"
	"utilgen/internal/engine"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file generated in each package.
	Filename string
	// Header is the first comment of each file, without the slashes.
	Header string
	// OutputDir, when set, collects every declaration into one package in
	// this directory instead of writing next to the declaring packages.
	OutputDir string
	// PackageName names the package in OutputDir. Defaults to the base name
	// of OutputDir.
	PackageName string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename: "utilgen_types.go",
		Header:   "Code generated by utilgen. DO NOT EDIT.",
	}
}

// Generator generates Go code from evaluation results.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()

	if config.Filename == "" {
		config.Filename = def.Filename
	}

	if config.Header == "" {
		config.Header = def.Header
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file within Dir.
	Filename string
	// Package is the import path of the package, if known.
	Package string
	// Declarations lists the generated type names in file order.
	Declarations []string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full path of the file.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// group is the set of results rendered into one file.
type group struct {
	dir     string
	pkgPath string
	pkgName string
	results []engine.Result
}

// Generate renders the successful results, one file per output package,
// in directory order. Failed results are skipped; the engine has already
// reported them. Declarations that cannot be emitted are reported in the
// returned diagnostics and left out of their file.
func (g *Generator) Generate(results []engine.Result) ([]GeneratedFile, diagnostic.Diagnostics, error) {
	var (
		files []GeneratedFile
		diags diagnostic.Diagnostics
		errs  []error
	)

	for _, grp := range g.groups(results) {
		file, err := g.generateFile(grp, &diags)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if file != nil {
			files = append(files, *file)
		}
	}

	if len(errs) > 0 {
		return nil, diags, errors.Join(errs...)
	}

	return files, diags, nil
}

func (g *Generator) groups(results []engine.Result) []*group {
	byDir := make(map[string]*group)

	var order []*group

	for _, r := range results {
		if !r.OK() {
			continue
		}

		key := r.Request.Dir
		if g.config.OutputDir != "" {
			key = g.config.OutputDir
		}

		grp, ok := byDir[key]
		if !ok {
			grp = &group{dir: key, pkgPath: r.Request.Package, pkgName: r.Request.PkgName}
			if g.config.OutputDir != "" {
				grp.pkgPath = ""
				grp.pkgName = g.packageName()
			}

			byDir[key] = grp
			order = append(order, grp)
		}

		grp.results = append(grp.results, r)
	}

	slices.SortFunc(order, func(a, b *group) int { return strings.Compare(a.dir, b.dir) })

	return order
}

func (g *Generator) packageName() string {
	if g.config.PackageName != "" {
		return g.config.PackageName
	}

	return sanitizePackageName(filepath.Base(g.config.OutputDir))
}

// generateFile returns nil when no declaration of grp can be emitted.
func (g *Generator) generateFile(grp *group, diags *diagnostic.Diagnostics) (*GeneratedFile, error) {
	if grp.pkgName == "" {
		return nil, fmt.Errorf("%s: no package name", grp.dir)
	}

	data := g.buildTemplateData(grp, diags)
	if len(data.Decls) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer

	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", grp.dir, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(grp.dir, g.config.Filename, buf.Bytes())

		return nil, fmt.Errorf("formatting code for %s: %w", grp.dir, err)
	}

	names := make([]string, len(data.Decls))
	for i, d := range data.Decls {
		names[i] = d.Name
	}

	return &GeneratedFile{
		Dir:          grp.dir,
		Filename:     g.config.Filename,
		Package:      grp.pkgPath,
		Declarations: names,
		Content:      formatted,
	}, nil
}

var fileTemplate = template.Must(template.New("file").Parse(`// {{.Header}}

package {{.PackageName}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{end}}
{{- range .Decls}}
{{- $decl := .}}
{{range .Doc}}
// {{.}}
{{- end}}
{{- if .Interface}}
type {{.Name}} interface {
{{- range .Methods}}
{{- range .Doc}}
	// {{.}}
{{- end}}
	{{.Name}}({{.Params}}){{if .Result}} {{.Result}}{{end}}
{{- end}}
}
{{- else}}
type {{.Name}} struct {
{{- range .Fields}}
{{- range .Doc}}
	// {{.}}
{{- end}}
	{{.Name}} {{.Type}}{{if .Tag}} ` + "`{{.Tag}}`" + `{{end}}
{{- end}}
}
{{- range .Getters}}

// {{.Method}} returns the {{.Field}} field.
func ({{$decl.Receiver}} {{$decl.Name}}) {{.Method}}() {{.Type}} {
	return {{$decl.Receiver}}.{{.Field}}
}
{{- end}}
{{- end}}
{{end}}
`))

// analyzeImports converts stringer imports for the template.
func analyzeImports(imports []analyze.Import) []importSpec {
	specs := make([]importSpec, len(imports))
	for i, imp := range imports {
		specs[i] = importSpec{Alias: imp.Alias, Path: imp.Path}
	}

	return specs
}

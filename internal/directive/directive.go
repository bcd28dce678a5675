// Package directive finds selector declarations in Go source files.
//
// A declaration is a line comment of the form
//
//	//utilgen:struct OrderSummary Pick<Order, ID|Status>
//	//utilgen:interface OrderView Readonly<Order>
//
// The word after the verb is the name of the type to generate and the rest
// of the line is the selector. Unqualified type names in the selector are
// looked up in the file's own package first, then in the packages the file
// imports, in import order.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"utilgen/internal/common"
	"utilgen/internal/diagnostic"
	"utilgen/internal/engine"
	"utilgen/internal/typesys"
)

// Prefix starts every directive comment.
const Prefix = "//utilgen:"

const usage = "expected " + Prefix + "struct|interface <Name> <Selector>"

// Directive is one parsed declaration.
type Directive struct {
	Category   typesys.Category
	Name       string
	Selector   string
	Access     typesys.Accessibility
	Namespaces []string
	Package    string // import path of the declaring package
	PkgName    string
	Dir        string
	Pos        token.Position
}

// Request converts d for the engine.
func (d Directive) Request() engine.Request {
	return engine.Request{
		Name:       d.Name,
		Selector:   d.Selector,
		Access:     d.Access,
		Namespaces: d.Namespaces,
		Category:   d.Category,
		Package:    d.Package,
		PkgName:    d.PkgName,
		Dir:        d.Dir,
		Pos:        d.Pos,
	}
}

// Result contains the directives found in a set of packages. Malformed
// directives are reported in Diagnostics and left out of Directives.
type Result struct {
	Directives  []Directive
	Diagnostics diagnostic.Diagnostics
}

// Scan loads the packages matching patterns, resolved in dir, and collects
// their directives. If dir is empty, the current directory is used.
func Scan(dir string, patterns ...string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", strings.Join(patterns, " "))
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
		}
	}

	return FromPackages(pkgs), nil
}

// FromPackages collects the directives of already loaded packages. The
// packages need syntax with comments; type information, when present, is
// used to name renamed imports.
func FromPackages(pkgs []*packages.Package) *Result {
	result := &Result{}

	for _, pkg := range pkgs {
		var dir string
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}

		seen := make(map[string]token.Position)

		for _, f := range pkg.Syntax {
			found := parseFile(pkg.Fset, f, pkg.Name, importNames(pkg, f), &result.Diagnostics)

			for _, d := range found {
				if prev, dup := seen[d.Name]; dup {
					diag := diagnostic.New(diagnostic.KindInvalidDirective,
						fmt.Sprintf("%s is already declared at %s", d.Name, prev)).At(d.Pos).For(d.Name, d.Selector)
					diag.Suggestions = []string{"rename one of the " + d.Name + " directives"}
					result.Diagnostics.Add(diag)

					continue
				}

				seen[d.Name] = d.Pos

				d.Package = pkg.PkgPath
				d.Dir = dir
				result.Directives = append(result.Directives, d)
			}
		}
	}

	return result
}

// importNames returns the names of the packages f imports, in import order.
func importNames(pkg *packages.Package, f *ast.File) []string {
	var names []string

	for _, spec := range f.Imports {
		if spec.Name != nil && spec.Name.Name == "_" {
			continue
		}

		if pkg.TypesInfo != nil {
			if pn := pkg.TypesInfo.PkgNameOf(spec); pn != nil {
				names = append(names, pn.Imported().Name())
				continue
			}
		}

		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		names = append(names, common.PkgAlias(path))
	}

	return names
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File, pkgName string, imports []string, diags *diagnostic.Diagnostics) []Directive {
	var directives []Directive

	namespaces := common.Dedupe(append([]string{pkgName}, imports...))

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}

			pos := fset.Position(c.Pos())

			d, err := parseLine(strings.TrimPrefix(c.Text, Prefix))
			if err != nil {
				diag := diagnostic.New(diagnostic.KindInvalidDirective, err.Error()).At(pos)
				diag.Suggestions = []string{usage}
				diags.Add(diag)

				continue
			}

			d.PkgName = pkgName
			d.Namespaces = namespaces
			d.Pos = pos
			directives = append(directives, d)
		}
	}

	return directives
}

// parseLine parses the text after the prefix: "<verb> <name> <selector>".
func parseLine(text string) (Directive, error) {
	verb, rest, _ := strings.Cut(text, " ")

	category, ok := typesys.ParseCategory(verb)
	if !ok || verb == "" {
		return Directive{}, fmt.Errorf("unknown directive %s%s", Prefix, verb)
	}

	name, selector, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if name == "" {
		return Directive{}, fmt.Errorf("%s%s: missing type name", Prefix, verb)
	}

	if !token.IsIdentifier(name) {
		return Directive{}, fmt.Errorf("%s%s: %q is not a valid type name", Prefix, verb, name)
	}

	selector = strings.TrimSpace(selector)
	if selector == "" {
		return Directive{}, fmt.Errorf("%s%s %s: missing selector", Prefix, verb, name)
	}

	return Directive{
		Category: category,
		Name:     name,
		Selector: selector,
		Access:   typesys.AccessibilityOf(name),
	}, nil
}

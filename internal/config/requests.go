package config

import (
	"fmt"
	"path/filepath"

	"utilgen/internal/analyze"
	"utilgen/internal/common"
	"utilgen/internal/diagnostic"
	"utilgen/internal/engine"
	"utilgen/internal/typesys"
)

// Requests converts the declarations of f into engine requests. Output
// packages must be loaded in graph; they are matched by import path first,
// then by directory. Declarations whose package is missing are reported and
// skipped.
func (f *File) Requests(graph *analyze.TypeGraph) ([]engine.Request, diagnostic.Diagnostics) {
	var (
		reqs  []engine.Request
		diags diagnostic.Diagnostics
	)

	for i, d := range f.Declarations {
		pkgField := fmt.Sprintf("declarations[%d].package", i)

		pkg := f.findPackage(graph, d.Package)
		if pkg == nil {
			diag := diagnostic.New(diagnostic.KindInvalidConfig,
				fmt.Sprintf("%s: package %s is not loaded", pkgField, d.Package)).At(f.position(pkgField)).For(d.Name, d.Selector)
			diag.Suggestions = []string{fmt.Sprintf("add %s to packages", d.Package)}
			diags.Add(diag)

			continue
		}

		category, _ := typesys.ParseCategory(d.Kind)

		access, ok := typesys.ParseAccessibility(d.Accessibility)
		if !ok {
			access = typesys.AccessibilityOf(d.Name)
		}

		namespaces := d.Namespaces
		if len(namespaces) == 0 {
			namespaces = common.Dedupe(append([]string{pkg.Name}, pkg.Imports...))
		}

		reqs = append(reqs, engine.Request{
			Name:       d.Name,
			Selector:   d.Selector,
			Access:     access,
			Namespaces: namespaces,
			Category:   category,
			Package:    pkg.Path,
			PkgName:    pkg.Name,
			Dir:        pkg.Dir,
			Pos:        f.position(fmt.Sprintf("declarations[%d]", i)),
		})
	}

	return reqs, diags
}

func (f *File) findPackage(graph *analyze.TypeGraph, ref string) *analyze.PackageInfo {
	if pkg := graph.FindPackage(ref); pkg != nil {
		return pkg
	}

	dir := ref
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(f.Dir, dir)
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	return graph.FindPackage(dir)
}

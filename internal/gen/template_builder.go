package gen

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"utilgen/internal/analyze"
	"utilgen/internal/diagnostic"
	"utilgen/internal/engine"
	"utilgen/internal/typesys"
)

// templateData holds all data needed for the file template.
type templateData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	Decls       []declData
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// declData is one generated type.
type declData struct {
	Name      string
	Doc       []string
	Interface bool
	Receiver  string
	Fields    []fieldData
	Methods   []methodData
	Getters   []getterData
}

type fieldData struct {
	Name string
	Type string
	Tag  string
	Doc  []string
}

type methodData struct {
	Name   string
	Params string
	Result string
	Doc    []string
}

// getterData exposes an unexported readonly field.
type getterData struct {
	Method string
	Field  string
	Type   string
}

// buildTemplateData constructs the template data for one output package.
// Declarations with fields that cannot be written, or with a name already
// taken in the package, are reported to diags and skipped.
func (g *Generator) buildTemplateData(grp *group, diags *diagnostic.Diagnostics) *templateData {
	stringer := analyze.NewTypeStringer(grp.pkgPath)

	data := &templateData{
		Header:      g.config.Header,
		PackageName: grp.pkgName,
	}

	seen := make(map[string]string)

	for _, r := range grp.results {
		if err := checkEmittable(r.Fields); err != nil {
			diags.Add(emitFailure(r, fmt.Sprintf("%s: %v", r.Request.Name, err)))
			continue
		}

		name := declName(r.Request)
		if prev, dup := seen[name]; dup {
			diags.Add(emitFailure(r, fmt.Sprintf("%s is generated twice in %s (from %q and %q)", name, grp.dir, prev, r.Request.Selector)))
			continue
		}

		seen[name] = r.Request.Selector
		data.Decls = append(data.Decls, buildDecl(r, stringer))
	}

	slices.SortFunc(data.Decls, func(a, b declData) int { return strings.Compare(a.Name, b.Name) })

	data.Imports = analyzeImports(stringer.Imports())

	taken := stringer.Names()
	for i := range data.Decls {
		data.Decls[i].Receiver = receiverName(data.Decls[i].Name, taken)
	}

	return data
}

func emitFailure(r engine.Result, message string) diagnostic.Diagnostic {
	return diagnostic.New(diagnostic.KindEmitFailure, message).At(r.Request.Pos).For(r.Request.Name, r.Request.Selector)
}

// declName is the Go name of the declaration requested by req.
func declName(req engine.Request) string {
	if req.Access == typesys.Internal || req.Access == typesys.Private {
		return unexport(req.Name)
	}

	return req.Name
}

func buildDecl(r engine.Result, stringer *analyze.TypeStringer) declData {
	req := r.Request
	name := declName(req)

	decl := declData{
		Name:      name,
		Doc:       []string{fmt.Sprintf("%s is generated from %s.", name, req.Selector)},
		Interface: req.Category == typesys.CategoryInterface,
	}

	for _, f := range r.Fields {
		typ := stringer.TypeString(f.Type)
		doc := docLines(f.Doc)

		switch {
		case decl.Interface:
			decl.Methods = append(decl.Methods, methodData{Name: f.Name, Result: typ, Doc: doc})
			if !f.Readonly {
				decl.Methods = append(decl.Methods, methodData{Name: "Set" + f.Name, Params: typ})
			}
		case f.Readonly:
			field := unexport(f.Name)
			decl.Fields = append(decl.Fields, fieldData{Name: field, Type: typ, Tag: buildTag(f), Doc: doc})
			decl.Getters = append(decl.Getters, getterData{Method: f.Name, Field: field, Type: typ})
		default:
			decl.Fields = append(decl.Fields, fieldData{Name: f.Name, Type: typ, Tag: buildTag(f), Doc: doc})
		}
	}

	return decl
}

// buildTag merges the source tag with the flags of f. The validate
// "required" option follows f.Required; non-nullable reference types are
// marked notnull so that loading the output again keeps the flag.
func buildTag(f typesys.Field) string {
	pairs := analyze.ParseTag(f.Tag)

	var validate []string

	at := -1

	for i, p := range pairs {
		if p.Key != "validate" {
			continue
		}

		at = i

		for _, opt := range strings.Split(p.Value, ",") {
			if opt != "required" && opt != "" {
				validate = append(validate, opt)
			}
		}
	}

	if f.Required {
		validate = append([]string{"required"}, validate...)
	}

	switch {
	case at >= 0 && len(validate) == 0:
		pairs = slices.Delete(pairs, at, at+1)
	case at >= 0:
		pairs[at].Value = strings.Join(validate, ",")
	case len(validate) > 0:
		pairs = append(pairs, analyze.TagPair{Key: "validate", Value: strings.Join(validate, ",")})
	}

	if !f.Nullable && f.Type != nil && !f.Type.IsValueType() {
		pairs = append(pairs, analyze.TagPair{Key: analyze.TagKey, Value: analyze.OptNotNull})
	}

	return analyze.FormatTag(pairs)
}

// checkEmittable rejects fields whose type mentions a type parameter;
// selector type arguments only select an arity and are not substituted.
func checkEmittable(fields []typesys.Field) error {
	for _, f := range fields {
		ti, ok := f.Type.(*analyze.TypeInfo)
		if !ok || ti.GoType == nil {
			continue
		}

		if hasTypeParam(ti.GoType) {
			return fmt.Errorf("field %s has type %s, which depends on a type parameter", f.Name, ti.GoType)
		}
	}

	return nil
}

func hasTypeParam(t types.Type) bool {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true
	case *types.Pointer:
		return hasTypeParam(t.Elem())
	case *types.Slice:
		return hasTypeParam(t.Elem())
	case *types.Array:
		return hasTypeParam(t.Elem())
	case *types.Chan:
		return hasTypeParam(t.Elem())
	case *types.Map:
		return hasTypeParam(t.Key()) || hasTypeParam(t.Elem())
	case *types.Named:
		args := t.TypeArgs()
		for i := range args.Len() {
			if hasTypeParam(args.At(i)) {
				return true
			}
		}
	case *types.Signature:
		return hasTypeParam(t.Params()) || hasTypeParam(t.Results())
	case *types.Tuple:
		for i := range t.Len() {
			if hasTypeParam(t.At(i).Type()) {
				return true
			}
		}
	case *types.Struct:
		for i := range t.NumFields() {
			if hasTypeParam(t.Field(i).Type()) {
				return true
			}
		}
	}

	return false
}

func docLines(doc string) []string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}

	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}

	return lines
}

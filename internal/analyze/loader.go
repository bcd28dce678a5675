package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"utilgen/internal/typesys"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	docs      map[types.Object]string
	built     map[*TypeInfo]bool
	loaded    []*packages.Package

	dir    string
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
		docs:      make(map[types.Object]string),
		built:     make(map[*TypeInfo]bool),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/shop", "utilgen/examples/poco").
// Types of directly imported packages are part of the graph too.
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %s", strings.Join(patterns, " "))
	}

	a.loaded = pkgs

	// Register every package before analyzing any type, so that
	// isExternalPackage sees the whole set.
	for _, pkg := range pkgs {
		info := a.register(pkg.Types, true)
		if len(pkg.GoFiles) > 0 {
			info.Dir = filepath.Dir(pkg.GoFiles[0])
		}

		a.collectDocs(pkg)
	}

	for _, pkg := range pkgs {
		for _, imp := range pkg.Types.Imports() {
			a.register(imp, false)
		}
	}

	a.graph.sortPackages()

	for _, info := range a.graph.order {
		a.processPackage(info)
	}

	for _, info := range a.graph.Types {
		a.buildRecords(info)
	}

	a.logger.Debug("loaded packages",
		slog.String("patterns", strings.Join(patterns, " ")),
		slog.Int("packages", len(a.graph.Packages)),
		slog.Int("types", len(a.graph.Types)))

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// Packages returns the packages matched by the last LoadPackages call, with
// syntax and type information.
func (a *Analyzer) Packages() []*packages.Package {
	return a.loaded
}

func (a *Analyzer) register(tp *types.Package, root bool) *PackageInfo {
	if info, ok := a.graph.Packages[tp.Path()]; ok {
		info.Root = info.Root || root
		return info
	}

	info := &PackageInfo{
		Path: tp.Path(),
		Name: tp.Name(),
		Root: root,
		pkg:  tp,
	}

	imports := tp.Imports()
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path() < imports[j].Path() })

	for _, imp := range imports {
		info.Imports = append(info.Imports, imp.Name())
	}

	a.graph.Packages[tp.Path()] = info

	return info
}

// collectDocs records the doc comment of every struct field declared in
// pkg's syntax. A trailing line comment is used when there is no doc.
func (a *Analyzer) collectDocs(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			st, ok := n.(*ast.StructType)
			if !ok {
				return true
			}

			for _, field := range st.Fields.List {
				doc := field.Doc.Text()
				if doc == "" {
					doc = field.Comment.Text()
				}

				doc = strings.TrimSpace(doc)
				if doc == "" {
					continue
				}

				for _, name := range field.Names {
					if obj := pkg.TypesInfo.Defs[name]; obj != nil {
						a.docs[obj] = doc
					}
				}
			}

			return true
		})
	}
}

// processPackage extracts the named types of a registered package. Imported
// packages contribute their exported types only.
func (a *Analyzer) processPackage(info *PackageInfo) {
	scope := info.pkg.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		// Only process type names (not variables, constants, functions)
		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		if !info.Root && !typeName.Exported() {
			continue
		}

		typeID := TypeID{
			PkgPath: info.Path,
			Name:    name,
		}

		a.graph.Types[typeID] = a.analyzeType(typeName.Type())
		info.Types = append(info.Types, typeID)
	}
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	if alias, ok := t.(*types.Alias); ok {
		return a.analyzeType(types.Unalias(alias))
	}

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Chan:
		info.Kind = TypeKindChan
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Signature:
		info.Kind = TypeKindFunc

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.TypeParam:
		info.Kind = TypeKindTypeParam

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	info.ID = TypeID{Name: obj.Name()}
	info.NumParams = named.TypeParams().Len()

	// Universe types such as error have no package.
	if obj.Pkg() == nil {
		info.Kind = TypeKindExternal
		return
	}

	info.ID.PkgPath = obj.Pkg().Path()
	info.pkgName = obj.Pkg().Name()

	if a.isExternalPackage(info.ID.PkgPath) {
		info.Kind = TypeKindExternal
		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else in our packages
		// (e.g., type OrderStatus string)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported fields
// are skipped unless embedded, since embedding promotes exported fields.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		if !field.Exported() && !field.Embedded() {
			continue
		}

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      st.Tag(i),
			Doc:      a.docs[field],
			Embedded: field.Embedded(),
			Index:    i,
		}

		info.Declared = append(info.Declared, fieldInfo)
	}
}

// buildRecords computes the field records of a struct type. Fields of
// embedded structs are promoted in place; a field declared by the outer
// struct wins over a promoted one of the same name.
func (a *Analyzer) buildRecords(info *TypeInfo) []typesys.Field {
	if a.built[info] {
		return info.records
	}

	// Marked before recursing: a struct embedding itself through a pointer
	// promotes nothing from the inner occurrence.
	a.built[info] = true

	if info.Kind != TypeKindStruct {
		return nil
	}

	own := make(map[string]bool)
	for _, f := range info.Declared {
		if !f.Embedded {
			own[f.Name] = true
		}
	}

	seen := make(map[string]bool)

	var records []typesys.Field

	for _, f := range info.Declared {
		if f.Embedded {
			if inner := embeddedStruct(f.Type); inner != nil {
				for _, r := range a.buildRecords(inner) {
					if own[r.Name] || seen[r.Name] {
						continue
					}

					seen[r.Name] = true
					records = append(records, r)
				}

				continue
			}

			if !f.Exported {
				continue
			}
		}

		if seen[f.Name] {
			continue
		}

		seen[f.Name] = true
		records = append(records, newRecord(info, f))
	}

	info.records = records

	return records
}

// embeddedStruct returns the struct an embedded field promotes fields from.
func embeddedStruct(t *TypeInfo) *TypeInfo {
	if t.Kind == TypeKindPointer && t.ElemType != nil {
		t = t.ElemType
	}

	if t.Kind == TypeKindStruct && t.IsNamed() {
		return t
	}

	return nil
}

func newRecord(owner *TypeInfo, f FieldInfo) typesys.Field {
	return typesys.Field{
		Name:     f.Name,
		Type:     f.Type,
		Nullable: !f.Type.IsValueType() && !HasOption(f.Tag, TagKey, OptNotNull),
		Readonly: HasOption(f.Tag, TagKey, OptReadonly),
		Required: HasOption(f.Tag, TagKey, OptRequired) || HasOption(f.Tag, "validate", "required"),
		Owner:    owner,
		Tag:      StripTag(f.Tag, TagKey),
		Doc:      f.Doc,
	}
}

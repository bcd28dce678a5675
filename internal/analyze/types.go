package analyze

import (
	"go/types"
	"sort"

	"utilgen/internal/common"
	"utilgen/internal/typesys"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "utilgen/examples/shop"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindChan               // channel type
	TypeKindFunc               // function type
	TypeKindTypeParam          // type parameter of a generic type
	TypeKindAlias              // named type wrapping a non-struct type
	TypeKindExternal           // named type from a package outside the graph
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindChan:
		return "chan"
	case TypeKindFunc:
		return "func"
	case TypeKindTypeParam:
		return "typeparam"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// IsReference reports whether values of kind k can be nil.
func (k TypeKind) IsReference() bool {
	switch k {
	case TypeKindPointer, TypeKindSlice, TypeKindMap, TypeKindInterface, TypeKindChan, TypeKindFunc:
		return true
	default:
		return false
	}
}

// TypeInfo describes a Go type in the type graph. Named types are
// typesys.Descriptors; every TypeInfo is a typesys.Type.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named non-struct types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays, maps and chans, the element type
	Declared   []FieldInfo // For structs, the declared fields
	GoType     types.Type  // The original go/types.Type
	NumParams  int         // Number of type parameters of a generic named type

	pkgName string
	records []typesys.Field
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// String implements typesys.Type. Packages are qualified by name.
func (t *TypeInfo) String() string {
	return types.TypeString(t.GoType, func(p *types.Package) string { return p.Name() })
}

// IsValueType implements typesys.Type.
func (t *TypeInfo) IsValueType() bool {
	return isValue(t.GoType)
}

// Name implements typesys.Descriptor.
func (t *TypeInfo) Name() string {
	return t.ID.Name
}

// QualifiedName implements typesys.Descriptor.
func (t *TypeInfo) QualifiedName() string {
	if t.pkgName == "" {
		return t.ID.Name
	}

	return t.pkgName + "." + t.ID.Name
}

// Accessibility implements typesys.Descriptor.
func (t *TypeInfo) Accessibility() typesys.Accessibility {
	return typesys.AccessibilityOf(t.ID.Name)
}

// Arity implements typesys.Descriptor.
func (t *TypeInfo) Arity() int {
	return t.NumParams
}

// Fields implements typesys.Descriptor: the field records of a struct type,
// promoted fields included, in declaration order.
func (t *TypeInfo) Fields() []typesys.Field {
	return t.records
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string    // Go field name
	Exported bool      // Whether the field is exported
	Type     *TypeInfo // Field type
	Tag      string    // Raw struct tag
	Doc      string    // Doc comment, when the package was loaded from source
	Embedded bool      // Whether the field is embedded (anonymous)
	Index    int       // Field index in the struct
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	_, ok := LookupTag(f.Tag, key)
	return ok
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	v, _ := LookupTag(f.Tag, key)
	return v
}

// TypeGraph holds all analyzed types from loaded packages. It is immutable
// once LoadPackages returns and implements typesys.SymbolTable.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo

	order []*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// FindPackage returns the package with the given import path or directory.
func (g *TypeGraph) FindPackage(pathOrDir string) *PackageInfo {
	if p, ok := g.Packages[pathOrDir]; ok {
		return p
	}

	for _, p := range g.order {
		if p.Dir != "" && p.Dir == pathOrDir {
			return p
		}
	}

	return nil
}

// RootPackages returns the packages matched by the load patterns, sorted by
// import path.
func (g *TypeGraph) RootPackages() []*PackageInfo {
	var roots []*PackageInfo

	for _, p := range g.order {
		if p.Root {
			roots = append(roots, p)
		}
	}

	return roots
}

// sortPackages fixes namespace order: root packages first, then imports,
// each by import path.
func (g *TypeGraph) sortPackages() {
	g.order = g.order[:0]
	for _, p := range g.Packages {
		g.order = append(g.order, p)
	}

	sort.Slice(g.order, func(i, j int) bool {
		a, b := g.order[i], g.order[j]
		if a.Root != b.Root {
			return a.Root
		}

		return a.Path < b.Path
	})
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Dir     string   // Directory of the package's files, for root packages
	Root    bool     // Matched by a load pattern rather than imported
	Imports []string // Names of directly imported packages, by import path
	Types   []TypeID // Named types defined in this package

	pkg *types.Package
}

func isValue(t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return true
	}

	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Interface, *types.Chan, *types.Signature:
		return false
	default:
		return true
	}
}

package analyze

import (
	"go/types"
	"sort"
	"strconv"

	"utilgen/internal/typesys"
)

// Import is one import a rendered type needs.
type Import struct {
	Alias string // Empty unless the package name is taken by another path
	Path  string
}

// TypeStringer renders types as they are written in a given package,
// collecting the imports the rendered text needs. Packages whose names
// clash get numbered aliases.
type TypeStringer struct {
	from    string
	aliases map[string]string // import path -> name used in source
	names   map[string]string // import path -> package name
	taken   map[string]string // name used in source -> import path
}

// NewTypeStringer creates a TypeStringer for code in package pkgPath.
func NewTypeStringer(pkgPath string) *TypeStringer {
	return &TypeStringer{
		from:    pkgPath,
		aliases: make(map[string]string),
		names:   make(map[string]string),
		taken:   make(map[string]string),
	}
}

// TypeString returns the Go source form of t. Types that do not come from
// a TypeGraph render as their display string.
func (s *TypeStringer) TypeString(t typesys.Type) string {
	ti, ok := t.(*TypeInfo)
	if !ok || ti.GoType == nil {
		return t.String()
	}

	return types.TypeString(ti.GoType, s.qualify)
}

func (s *TypeStringer) qualify(p *types.Package) string {
	if p.Path() == s.from {
		return ""
	}

	if name, ok := s.aliases[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for i := 2; ; i++ {
		if _, clash := s.taken[name]; !clash {
			break
		}

		name = p.Name() + strconv.Itoa(i)
	}

	s.aliases[p.Path()] = name
	s.names[p.Path()] = p.Name()
	s.taken[name] = p.Path()

	return name
}

// Imports returns the imports used so far, sorted by path.
func (s *TypeStringer) Imports() []Import {
	imports := make([]Import, 0, len(s.aliases))

	for path, name := range s.aliases {
		imp := Import{Path: path}
		if name != s.names[path] {
			imp.Alias = name
		}

		imports = append(imports, imp)
	}

	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })

	return imports
}

// Names reports the package names the rendered text refers to.
func (s *TypeStringer) Names() map[string]bool {
	names := make(map[string]bool, len(s.taken))
	for name := range s.taken {
		names[name] = true
	}

	return names
}

package typesys

import "strings"

// Memory is an in-memory SymbolTable. Build it fully, then share it; it is
// not safe to add types while selectors are evaluated against it.
type Memory struct {
	global *MemoryNamespace
}

// NewMemory creates an empty table.
func NewMemory() *Memory {
	return &Memory{global: &MemoryNamespace{}}
}

// Global implements SymbolTable.
func (m *Memory) Global() Namespace {
	return m.global
}

// Namespace returns the namespace at the dotted path, creating missing
// levels. An empty path is the global namespace.
func (m *Memory) Namespace(path string) *MemoryNamespace {
	ns := m.global
	if path == "" {
		return ns
	}

	for _, part := range strings.Split(path, ".") {
		ns = ns.child(part)
	}

	return ns
}

// Identical implements SymbolTable. Named types compare by identity,
// wrappers compare by what they wrap.
func (m *Memory) Identical(a, b Type) bool {
	ma, okA := a.(*MemoryType)
	mb, okB := b.(*MemoryType)

	if !okA || !okB {
		return a == b
	}

	if ma == mb {
		return true
	}

	if ma.elem != nil && mb.elem != nil {
		return m.Identical(ma.elem, mb.elem)
	}

	return false
}

// WrapNullable implements SymbolTable.
func (m *Memory) WrapNullable(t Type) Type {
	return &MemoryType{name: "*" + t.String(), elem: t}
}

// UnwrapNullable implements SymbolTable.
func (m *Memory) UnwrapNullable(t Type) (Type, bool) {
	mt, ok := t.(*MemoryType)
	if !ok || mt.elem == nil {
		return nil, false
	}

	return mt.elem, true
}

// MemoryNamespace is a namespace of a Memory table.
type MemoryNamespace struct {
	name     string
	path     string
	children []*MemoryNamespace
	types    []*MemoryType
}

func (n *MemoryNamespace) child(name string) *MemoryNamespace {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}

	path := name
	if n.path != "" {
		path = n.path + "." + name
	}

	c := &MemoryNamespace{name: name, path: path}
	n.children = append(n.children, c)

	return c
}

// Name implements Namespace.
func (n *MemoryNamespace) Name() string { return n.name }

// Namespaces implements Namespace; children keep insertion order.
func (n *MemoryNamespace) Namespaces() []Namespace {
	out := make([]Namespace, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}

	return out
}

// Types implements Namespace.
func (n *MemoryNamespace) Types(name string) []Descriptor {
	var out []Descriptor

	for _, t := range n.types {
		if t.name == name {
			out = append(out, t)
		}
	}

	return out
}

// TypeNames implements Namespace.
func (n *MemoryNamespace) TypeNames() []string {
	names := make([]string, 0, len(n.types))
	for _, t := range n.types {
		names = append(names, t.name)
	}

	return names
}

// Struct declares a public, non-generic value type with the given fields.
// Each field's Owner is set to the new type.
func (n *MemoryNamespace) Struct(name string, fields ...Field) *MemoryType {
	return n.Declare(name, 0, Public, true, fields...)
}

// Class declares a public, non-generic reference type with the given fields.
func (n *MemoryNamespace) Class(name string, fields ...Field) *MemoryType {
	return n.Declare(name, 0, Public, false, fields...)
}

// Declare adds a type to the namespace.
func (n *MemoryNamespace) Declare(name string, arity int, access Accessibility, value bool, fields ...Field) *MemoryType {
	t := &MemoryType{
		name:      name,
		namespace: n.path,
		arity:     arity,
		access:    access,
		value:     value,
	}

	t.fields = make([]Field, len(fields))
	for i, f := range fields {
		f.Owner = t
		t.fields[i] = f
	}

	n.types = append(n.types, t)

	return t
}

// MemoryType is a type of a Memory table: a declared type, a builtin
// created by Builtin, or a nullable wrapper.
type MemoryType struct {
	name      string
	namespace string
	arity     int
	access    Accessibility
	value     bool
	fields    []Field
	elem      Type
}

// Builtin returns a type that lives outside any namespace, such as "int".
func Builtin(name string, value bool) *MemoryType {
	return &MemoryType{name: name, value: value, access: Public}
}

// String implements Type.
func (t *MemoryType) String() string { return t.QualifiedName() }

// IsValueType implements Type. Wrappers are reference types.
func (t *MemoryType) IsValueType() bool { return t.value && t.elem == nil }

// Name implements Descriptor.
func (t *MemoryType) Name() string { return t.name }

// QualifiedName implements Descriptor.
func (t *MemoryType) QualifiedName() string {
	if t.namespace == "" {
		return t.name
	}

	return t.namespace + "." + t.name
}

// Arity implements Descriptor.
func (t *MemoryType) Arity() int { return t.arity }

// Accessibility implements Descriptor.
func (t *MemoryType) Accessibility() Accessibility { return t.access }

// Fields implements Descriptor.
func (t *MemoryType) Fields() []Field { return t.fields }

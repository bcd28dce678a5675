package typesys

import "go/token"

// Type is an opaque handle to a type in the host program.
type Type interface {
	// String returns the display form used in messages and generated code.
	String() string
	// IsValueType reports whether the type is made nullable by wrapping
	// (value types) rather than by annotation (reference types).
	IsValueType() bool
}

// Descriptor is a named type whose fields selectors operate on.
type Descriptor interface {
	Type

	// Name is the simple name without namespace or generic arguments.
	Name() string
	// QualifiedName is the namespace-qualified name, e.g. "store.Order".
	QualifiedName() string
	// Arity is the number of generic type parameters.
	Arity() int
	// Accessibility is the declared visibility of the type.
	Accessibility() Accessibility
	// Fields returns the declared fields in source order.
	Fields() []Field
}

// Namespace is one node of the host's namespace tree.
type Namespace interface {
	Name() string
	// Namespaces returns child namespaces in a stable order.
	Namespaces() []Namespace
	// Types returns the types declared directly in this namespace with the
	// given simple name, of any arity, in a stable order.
	Types(name string) []Descriptor
	// TypeNames lists the simple names declared directly in this namespace.
	TypeNames() []string
}

// SymbolTable is a read-only snapshot of the host program.
type SymbolTable interface {
	// Global returns the root of the namespace tree.
	Global() Namespace
	// Identical reports whether a and b denote the same type.
	Identical(a, b Type) bool
	// WrapNullable returns the nullable wrapper of the value type t.
	WrapNullable(t Type) Type
	// UnwrapNullable returns the wrapped type when t is a nullable wrapper.
	UnwrapNullable(t Type) (Type, bool)
}

// Accessibility is the declared visibility of a type or declaration.
type Accessibility int

const (
	AccessibilityUnknown Accessibility = iota
	Private
	Internal
	Public
)

// String returns a human-readable accessibility name.
func (a Accessibility) String() string {
	switch a {
	case Private:
		return "private"
	case Internal:
		return "internal"
	case Public:
		return "public"
	default:
		return "unknown"
	}
}

// ParseAccessibility parses the lower-case names returned by String.
func ParseAccessibility(s string) (Accessibility, bool) {
	switch s {
	case "private":
		return Private, true
	case "internal":
		return Internal, true
	case "public":
		return Public, true
	default:
		return AccessibilityUnknown, false
	}
}

// AccessibilityOf maps Go's export rule onto accessibility: exported names
// are Public, other names Internal.
func AccessibilityOf(name string) Accessibility {
	if token.IsExported(name) {
		return Public
	}

	return Internal
}

// Category is the kind of declaration a finished field list is rendered as.
// The engine passes it through untouched.
type Category int

const (
	CategoryStruct Category = iota
	CategoryInterface
)

// String returns the directive spelling of the category.
func (c Category) String() string {
	switch c {
	case CategoryStruct:
		return "struct"
	case CategoryInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// ParseCategory parses the spelling returned by String.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "struct", "":
		return CategoryStruct, true
	case "interface":
		return CategoryInterface, true
	default:
		return CategoryStruct, false
	}
}

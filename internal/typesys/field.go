package typesys

// Field is the immutable record of one field.
//
// Transformations return modified copies; a Field is never mutated after it
// leaves the symbol table.
type Field struct {
	Name     string
	Type     Type
	Nullable bool
	Readonly bool
	Required bool

	// Owner is the type that declared the field.
	Owner Descriptor

	// Tag and Doc are carried for the emitter; the algebra ignores them.
	Tag string
	Doc string
}

// Equal reports whether f and o count as the same field when merging field
// sets: same name and flags, and the same type up to one nullable wrapper.
func (f Field) Equal(o Field, table SymbolTable) bool {
	return f.Name == o.Name &&
		f.Nullable == o.Nullable &&
		f.Readonly == o.Readonly &&
		f.Required == o.Required &&
		SameType(table, f.Type, o.Type)
}

// SameType reports whether a and b are identical, or one is the nullable
// wrapper of the other.
func SameType(table SymbolTable, a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	if table.Identical(a, b) {
		return true
	}

	if inner, ok := table.UnwrapNullable(a); ok && table.Identical(inner, b) {
		return true
	}

	if inner, ok := table.UnwrapNullable(b); ok && table.Identical(a, inner) {
		return true
	}

	return false
}

// MakeNullable returns f as a nullable field. Value types are wrapped,
// reference types only change the flag. Already nullable fields are
// returned unchanged.
func (f Field) MakeNullable(table SymbolTable) Field {
	if f.Nullable {
		return f
	}

	if f.Type != nil && f.Type.IsValueType() {
		f.Type = table.WrapNullable(f.Type)
	}

	f.Nullable = true

	return f
}

// MakeNotNull returns f as a non-nullable field. A nullable wrapper is
// replaced by its inner type; reference types only change the flag.
func (f Field) MakeNotNull(table SymbolTable) Field {
	if !f.Nullable {
		return f
	}

	if inner, ok := table.UnwrapNullable(f.Type); ok {
		f.Type = inner
	}

	f.Nullable = false

	return f
}

// Names returns the field names in order.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	return names
}

// Package typesys describes the host program as the selector engine sees it.
//
// Key types:
//   - Type: opaque handle to a field type (display string + value/reference kind)
//   - Descriptor: a named type with an ordered field set
//   - Namespace: one level of the host's namespace tree
//   - SymbolTable: read-only snapshot of the host program
//   - Field: the immutable record of one field
//
// Resolve maps a type name written in a selector to exactly one Descriptor.
// Memory is an in-memory SymbolTable for tests and demos; the Go-backed table
// lives in package analyze.
//
// A SymbolTable must not change while selectors are evaluated against it.
package typesys

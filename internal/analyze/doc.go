// Package analyze loads Go packages and exposes their types as a
// typesys.SymbolTable.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// immutable graph of the named types declared by the loaded packages and
// their direct imports. Each package is a namespace named by its package
// name; struct fields become field records whose nullability, readonly and
// required flags come from the Go type and the field's struct tags:
//
//	Name  string  `utilgen:"readonly"`
//	Email *string `validate:"required,email"`
//	Tags  []string `utilgen:"notnull"`
//
// Pointer, slice, map, interface, chan and func fields are nullable unless
// tagged notnull. Other fields are not nullable and are made nullable by
// wrapping them in a pointer.
package analyze

// Package diagnostic turns failures into reportable diagnostics.
//
// Selector failures are classified into a fixed set of kinds, each with a
// stable code:
//   - UTG0001 malformed expression
//   - UTG0002 unresolved type, or conflicting fields
//   - UTG0003 internal failure
//   - UTG0004 invalid property name
//
// Directive, config and package loading problems use UTG01xx codes.
package diagnostic

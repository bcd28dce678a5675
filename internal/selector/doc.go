// Package selector holds the selector tree and its evaluation algebra.
//
// A tree is built from a parsed expression by resolving every symbol against
// a typesys.SymbolTable (Build, Compile) and evaluated into an ordered list
// of field records (Evaluate). Evaluation is pure: it reads the table and
// the tree and returns fresh records, so one tree may be evaluated from
// several goroutines.
package selector

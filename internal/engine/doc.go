// Package engine evaluates selector declarations against a symbol table.
//
// Evaluate handles one declaration and never fails: every problem ends up
// as a diagnostic on the Result. Run evaluates a batch concurrently; one
// failing declaration does not stop the others.
package engine

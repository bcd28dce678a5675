// Package report presents evaluation outcomes: colored diagnostics for
// terminals and a YAML manifest of evaluated declarations.
package report

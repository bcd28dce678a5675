// Package grammar tokenizes and parses selector expressions such as
//
//	Omit<Pick<store.Order, ID|Status|"Created At">, Status>
//
// into a parse tree. It knows the verb vocabulary but nothing about the
// types a program declares: symbols are kept as raw text and resolved later
// by the selector builder.
package grammar

package diagnostic

import (
	"errors"
	"fmt"

	"utilgen/internal/grammar"
	"utilgen/internal/selector"
	"utilgen/internal/suggest"
	"utilgen/internal/typesys"
)

// Classify maps a failure of parsing, resolving or evaluating a selector to
// an error diagnostic. Anything it does not recognize is an internal
// failure.
func Classify(err error) Diagnostic {
	var (
		syntax     *grammar.SyntaxError
		unresolved *typesys.UnresolvedTypeError
		invalid    *selector.InvalidPropertyNameError
		conflict   *selector.ConflictError
	)

	switch {
	case errors.As(err, &syntax):
		return New(KindMalformedExpression, err.Error())
	case errors.As(err, &unresolved):
		d := New(KindUnresolvedType, err.Error())
		for _, s := range unresolved.Suggestions {
			d.Suggestions = append(d.Suggestions, fmt.Sprintf("did you mean %s?", s))
		}

		return d
	case errors.As(err, &invalid):
		d := New(KindInvalidPropertyName, err.Error())
		for _, name := range invalid.Names {
			for _, s := range suggest.Closest(name, invalid.Available, 1) {
				d.Suggestions = append(d.Suggestions, fmt.Sprintf("%s: did you mean %s?", name, s))
			}
		}

		return d
	case errors.As(err, &conflict):
		d := New(KindConflict, err.Error())
		for _, name := range conflict.Names() {
			d.Suggestions = append(d.Suggestions, fmt.Sprintf("Omit %s from all but one operand", name))
		}

		return d
	default:
		return New(KindInternalFailure, fmt.Sprintf("internal failure: %v", err))
	}
}

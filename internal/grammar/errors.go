package grammar

import "fmt"

// SyntaxError reports a malformed selector.
type SyntaxError struct {
	Input  string
	Offset int
	// Near is the offending part of the input.
	Near string
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("malformed selector at offset %d: %s", e.Offset, e.Msg)
	}

	return fmt.Sprintf("malformed selector at offset %d near %q: %s", e.Offset, e.Near, e.Msg)
}

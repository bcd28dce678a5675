package selector

import (
	"fmt"
	"strings"

	"utilgen/internal/typesys"
)

// InvalidPropertyNameError reports Pick or Omit names missing from the base
// field set. Names lists every missing name, not just the first.
type InvalidPropertyNameError struct {
	Verb string
	// Of is the operand the names were looked up in.
	Of        string
	Names     []string
	Available []string
}

func (e *InvalidPropertyNameError) Error() string {
	noun := "property"
	if len(e.Names) > 1 {
		noun = "properties"
	}

	return fmt.Sprintf("%s: %s %s not found in %s", e.Verb, noun, strings.Join(e.Names, ", "), e.Of)
}

// ConflictError reports fields that share a name but are not equal. Each
// group holds every distinct record found for one name.
type ConflictError struct {
	Verb   string
	Groups [][]typesys.Field
}

func (e *ConflictError) Error() string {
	groups := make([]string, len(e.Groups))

	for i, g := range e.Groups {
		pairs := make([]string, len(g))
		for j, f := range g {
			pairs[j] = describeField(f)
		}

		groups[i] = strings.Join(pairs, ", ")
	}

	return fmt.Sprintf("%s: Conflicting property names with different types: %s.", e.Verb, strings.Join(groups, "; "))
}

// Names returns the conflicting names in first-seen order.
func (e *ConflictError) Names() []string {
	names := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		names[i] = g[0].Name
	}

	return names
}

// describeField renders "<type> <name>", with any set flags in parentheses
// so that records differing only by flags can be told apart.
func describeField(f typesys.Field) string {
	s := fmt.Sprintf("%s %s", f.Type, f.Name)

	var flags []string
	if f.Nullable {
		flags = append(flags, "nullable")
	}

	if f.Readonly {
		flags = append(flags, "readonly")
	}

	if f.Required {
		flags = append(flags, "required")
	}

	if len(flags) == 0 {
		return s
	}

	return s + " (" + strings.Join(flags, " ") + ")"
}

package selector

import "utilgen/internal/typesys"

// union concatenates sets in order, drops records equal to an earlier one
// and fails when two survivors share a name.
func union(table typesys.SymbolTable, sets [][]typesys.Field) ([]typesys.Field, error) {
	var all []typesys.Field
	for _, s := range sets {
		all = append(all, s...)
	}

	out := distinct(table, all)
	if groups := conflicts(out); len(groups) > 0 {
		return nil, &ConflictError{Verb: "Union", Groups: groups}
	}

	return out, nil
}

// intersect keeps the names present in every set, represented by the first
// set's record. Every distinct record the sets hold for a kept name must be
// equal, otherwise the names conflict.
func intersect(table typesys.SymbolTable, sets [][]typesys.Field) ([]typesys.Field, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	var out, candidates []typesys.Field

	for _, f := range distinct(table, sets[0]) {
		if !inAll(f.Name, sets[1:]) {
			continue
		}

		out = append(out, f)

		for _, s := range sets {
			for _, g := range s {
				if g.Name == f.Name {
					candidates = append(candidates, g)
				}
			}
		}
	}

	if groups := conflicts(distinct(table, candidates)); len(groups) > 0 {
		return nil, &ConflictError{Verb: "Intersection", Groups: groups}
	}

	return out, nil
}

// distinct drops every record equal to an earlier one.
func distinct(table typesys.SymbolTable, fields []typesys.Field) []typesys.Field {
	var out []typesys.Field

next:
	for _, f := range fields {
		for _, kept := range out {
			if f.Equal(kept, table) {
				continue next
			}
		}

		out = append(out, f)
	}

	return out
}

// conflicts groups records sharing a name, keeping only names with more
// than one record. Groups and records keep first-seen order.
func conflicts(fields []typesys.Field) [][]typesys.Field {
	var order []string

	byName := make(map[string][]typesys.Field)

	for _, f := range fields {
		if _, ok := byName[f.Name]; !ok {
			order = append(order, f.Name)
		}

		byName[f.Name] = append(byName[f.Name], f)
	}

	var groups [][]typesys.Field

	for _, name := range order {
		if g := byName[name]; len(g) > 1 {
			groups = append(groups, g)
		}
	}

	return groups
}

func inAll(name string, sets [][]typesys.Field) bool {
	for _, s := range sets {
		found := false

		for _, f := range s {
			if f.Name == name {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

package selector

import (
	"slices"

	"utilgen/internal/typesys"
)

// Evaluate computes the ordered field list of n. Fields keep first-seen
// order: declaration order within a type, operand order across operands.
func Evaluate(table typesys.SymbolTable, n Node) ([]typesys.Field, error) {
	return n.Accept(&evaluator{table: table})
}

type evaluator struct {
	table typesys.SymbolTable
}

// base returns a fresh copy of op's fields.
func (e *evaluator) base(op Operand) ([]typesys.Field, error) {
	if op.Node != nil {
		return op.Node.Accept(e)
	}

	return slices.Clone(op.Type.Fields()), nil
}

func (e *evaluator) bases(ops []Operand) ([][]typesys.Field, error) {
	out := make([][]typesys.Field, 0, len(ops))

	for _, op := range ops {
		fields, err := e.base(op)
		if err != nil {
			return nil, err
		}

		out = append(out, fields)
	}

	return out, nil
}

func (e *evaluator) VisitImport(n *Import) ([]typesys.Field, error) {
	return e.base(n.Of)
}

func (e *evaluator) VisitPick(n *Pick) ([]typesys.Field, error) {
	fields, err := e.base(n.Of)
	if err != nil {
		return nil, err
	}

	keep, err := lookupNames("Pick", n.Of, fields, n.Names)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(fields, func(f typesys.Field) bool {
		_, ok := keep[f.Name]
		return !ok
	}), nil
}

func (e *evaluator) VisitOmit(n *Omit) ([]typesys.Field, error) {
	fields, err := e.base(n.Of)
	if err != nil {
		return nil, err
	}

	drop, err := lookupNames("Omit", n.Of, fields, n.Names)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(fields, func(f typesys.Field) bool {
		_, ok := drop[f.Name]
		return ok
	}), nil
}

func (e *evaluator) VisitNotNull(n *NotNull) ([]typesys.Field, error) {
	return e.mapFields(n.Of, func(f typesys.Field) typesys.Field {
		return f.MakeNotNull(e.table)
	})
}

func (e *evaluator) VisitNullable(n *Nullable) ([]typesys.Field, error) {
	return e.mapFields(n.Of, func(f typesys.Field) typesys.Field {
		return f.MakeNullable(e.table)
	})
}

func (e *evaluator) VisitOptional(n *Optional) ([]typesys.Field, error) {
	return e.mapFields(n.Of, func(f typesys.Field) typesys.Field {
		f.Required = false
		return f
	})
}

func (e *evaluator) VisitRequired(n *Required) ([]typesys.Field, error) {
	return e.mapFields(n.Of, func(f typesys.Field) typesys.Field {
		f.Required = true
		return f
	})
}

func (e *evaluator) VisitReadonly(n *Readonly) ([]typesys.Field, error) {
	return e.mapFields(n.Of, func(f typesys.Field) typesys.Field {
		f.Readonly = true
		return f
	})
}

func (e *evaluator) VisitUnion(n *Union) ([]typesys.Field, error) {
	sets, err := e.bases(n.Of)
	if err != nil {
		return nil, err
	}

	return union(e.table, sets)
}

func (e *evaluator) VisitIntersection(n *Intersection) ([]typesys.Field, error) {
	sets, err := e.bases(n.Of)
	if err != nil {
		return nil, err
	}

	return intersect(e.table, sets)
}

func (e *evaluator) mapFields(op Operand, fn func(typesys.Field) typesys.Field) ([]typesys.Field, error) {
	fields, err := e.base(op)
	if err != nil {
		return nil, err
	}

	for i := range fields {
		fields[i] = fn(fields[i])
	}

	return fields, nil
}

// lookupNames checks that every name is present in fields and returns the
// names as a set.
func lookupNames(verb string, of Operand, fields []typesys.Field, names []string) (map[string]struct{}, error) {
	present := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		present[f.Name] = struct{}{}
	}

	set := make(map[string]struct{}, len(names))

	var missing []string

	for _, name := range names {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}

		set[name] = struct{}{}
	}

	if len(missing) > 0 {
		return nil, &InvalidPropertyNameError{
			Verb:      verb,
			Of:        of.String(),
			Names:     missing,
			Available: typesys.Names(fields),
		}
	}

	return set, nil
}

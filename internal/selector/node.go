package selector

import (
	"strings"

	"utilgen/internal/typesys"
)

// Node is one selector verb applied to its operands.
//
// The set of implementations is closed: each variant dispatches to its own
// Visitor method, so a new verb does not compile until every visitor
// handles it.
type Node interface {
	Accept(v Visitor) ([]typesys.Field, error)
	// Access is the accessibility of the declaration the tree belongs to.
	Access() typesys.Accessibility
	String() string
}

// Visitor has one method per verb.
type Visitor interface {
	VisitImport(n *Import) ([]typesys.Field, error)
	VisitPick(n *Pick) ([]typesys.Field, error)
	VisitOmit(n *Omit) ([]typesys.Field, error)
	VisitNotNull(n *NotNull) ([]typesys.Field, error)
	VisitNullable(n *Nullable) ([]typesys.Field, error)
	VisitOptional(n *Optional) ([]typesys.Field, error)
	VisitRequired(n *Required) ([]typesys.Field, error)
	VisitReadonly(n *Readonly) ([]typesys.Field, error)
	VisitUnion(n *Union) ([]typesys.Field, error)
	VisitIntersection(n *Intersection) ([]typesys.Field, error)
}

// Decl carries the declared accessibility stamped on every node of a tree.
type Decl struct {
	Accessibility typesys.Accessibility
}

// Access implements Node.
func (d Decl) Access() typesys.Accessibility { return d.Accessibility }

// Operand is either a resolved type or a nested selector.
type Operand struct {
	Type typesys.Descriptor
	Node Node
}

// TypeOperand wraps a resolved type.
func TypeOperand(d typesys.Descriptor) Operand { return Operand{Type: d} }

// NodeOperand wraps a nested selector.
func NodeOperand(n Node) Operand { return Operand{Node: n} }

func (o Operand) String() string {
	switch {
	case o.Node != nil:
		return o.Node.String()
	case o.Type != nil:
		return o.Type.QualifiedName()
	default:
		return "<nil>"
	}
}

// Import passes its operand's fields through unchanged.
type Import struct {
	Decl
	Of Operand
}

// Pick keeps the named fields.
type Pick struct {
	Decl
	Of    Operand
	Names []string
}

// Omit drops the named fields.
type Omit struct {
	Decl
	Of    Operand
	Names []string
}

// NotNull makes every field non-nullable.
type NotNull struct {
	Decl
	Of Operand
}

// Nullable makes every field nullable.
type Nullable struct {
	Decl
	Of Operand
}

// Optional clears the required flag of every field.
type Optional struct {
	Decl
	Of Operand
}

// Required sets the required flag of every field.
type Required struct {
	Decl
	Of Operand
}

// Readonly sets the readonly flag of every field.
type Readonly struct {
	Decl
	Of Operand
}

// Union merges the fields of all operands.
type Union struct {
	Decl
	Of []Operand
}

// Intersection keeps the fields named in every operand.
type Intersection struct {
	Decl
	Of []Operand
}

func (n *Import) Accept(v Visitor) ([]typesys.Field, error)       { return v.VisitImport(n) }
func (n *Pick) Accept(v Visitor) ([]typesys.Field, error)         { return v.VisitPick(n) }
func (n *Omit) Accept(v Visitor) ([]typesys.Field, error)         { return v.VisitOmit(n) }
func (n *NotNull) Accept(v Visitor) ([]typesys.Field, error)      { return v.VisitNotNull(n) }
func (n *Nullable) Accept(v Visitor) ([]typesys.Field, error)     { return v.VisitNullable(n) }
func (n *Optional) Accept(v Visitor) ([]typesys.Field, error)     { return v.VisitOptional(n) }
func (n *Required) Accept(v Visitor) ([]typesys.Field, error)     { return v.VisitRequired(n) }
func (n *Readonly) Accept(v Visitor) ([]typesys.Field, error)     { return v.VisitReadonly(n) }
func (n *Union) Accept(v Visitor) ([]typesys.Field, error)        { return v.VisitUnion(n) }
func (n *Intersection) Accept(v Visitor) ([]typesys.Field, error) { return v.VisitIntersection(n) }

func (n *Import) String() string       { return render("Import", n.Of) }
func (n *Pick) String() string         { return renderProps("Pick", n.Of, n.Names) }
func (n *Omit) String() string         { return renderProps("Omit", n.Of, n.Names) }
func (n *NotNull) String() string      { return render("NotNull", n.Of) }
func (n *Nullable) String() string     { return render("Nullable", n.Of) }
func (n *Optional) String() string     { return render("Optional", n.Of) }
func (n *Required) String() string     { return render("Required", n.Of) }
func (n *Readonly) String() string     { return render("Readonly", n.Of) }
func (n *Union) String() string        { return render("Union", n.Of...) }
func (n *Intersection) String() string { return render("Intersection", n.Of...) }

func render(verb string, ops ...Operand) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}

	return verb + "<" + strings.Join(parts, ", ") + ">"
}

func renderProps(verb string, op Operand, names []string) string {
	return verb + "<" + op.String() + ", " + strings.Join(names, "|") + ">"
}

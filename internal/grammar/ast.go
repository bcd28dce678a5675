package grammar

import "strings"

// Verb is one of the fixed selector verbs.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbImport
	VerbNotNull
	VerbNullable
	VerbOptional
	VerbReadonly
	VerbRequired
	VerbPick
	VerbOmit
	VerbUnion
	VerbIntersection
)

// Shape describes which arguments a verb takes.
type Shape int

const (
	// ShapeType is a single operand: Readonly<T>.
	ShapeType Shape = iota
	// ShapeProps is an operand plus property names: Pick<T, A|B>.
	ShapeProps
	// ShapeTypes is two or more operands: Union<A, B>.
	ShapeTypes
)

var verbs = map[string]Verb{
	"Import":       VerbImport,
	"NotNull":      VerbNotNull,
	"Nullable":     VerbNullable,
	"Optional":     VerbOptional,
	"Readonly":     VerbReadonly,
	"Required":     VerbRequired,
	"Pick":         VerbPick,
	"Omit":         VerbOmit,
	"Union":        VerbUnion,
	"Intersection": VerbIntersection,
	"Intersect":    VerbIntersection,
}

// LookupVerb maps a keyword to its verb. Keywords are case-sensitive.
func LookupVerb(keyword string) (Verb, bool) {
	v, ok := verbs[keyword]
	return v, ok
}

// String returns the canonical keyword.
func (v Verb) String() string {
	switch v {
	case VerbImport:
		return "Import"
	case VerbNotNull:
		return "NotNull"
	case VerbNullable:
		return "Nullable"
	case VerbOptional:
		return "Optional"
	case VerbReadonly:
		return "Readonly"
	case VerbRequired:
		return "Required"
	case VerbPick:
		return "Pick"
	case VerbOmit:
		return "Omit"
	case VerbUnion:
		return "Union"
	case VerbIntersection:
		return "Intersection"
	default:
		return "Unknown"
	}
}

// Shape returns the argument shape of v.
func (v Verb) Shape() Shape {
	switch v {
	case VerbPick, VerbOmit:
		return ShapeProps
	case VerbUnion, VerbIntersection:
		return ShapeTypes
	default:
		return ShapeType
	}
}

// Span is a half-open byte range of the input.
type Span struct {
	Start int
	End   int
}

// Expr is a parsed selector.
type Expr struct {
	Verb Verb
	// Keyword is the verb as written, e.g. "Intersect".
	Keyword string
	// Args holds one operand, or two or more for ShapeTypes.
	Args []Arg
	// Props holds the property names of Pick and Omit, duplicates removed,
	// in first-seen order.
	Props []string
	Span  Span
}

// Arg is an operand: a raw symbol or a nested selector, never both.
type Arg struct {
	// Symbol is the type name with whitespace removed, e.g. "store.Page<int>".
	Symbol string
	Expr   *Expr
	Span   Span
}

// String renders e in canonical form.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)

	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	b.WriteString(e.Keyword)
	b.WriteByte('<')

	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}

		if a.Expr != nil {
			a.Expr.write(b)
		} else {
			b.WriteString(a.Symbol)
		}
	}

	if len(e.Props) > 0 {
		b.WriteString(", ")

		for i, p := range e.Props {
			if i > 0 {
				b.WriteByte('|')
			}

			b.WriteString(quoteProp(p))
		}
	}

	b.WriteByte('>')
}

func quoteProp(p string) string {
	l := NewLexer(p)
	if tok := l.Next(); tok.Kind == TokenIdent && tok.Text == p {
		return p
	}

	if strings.ContainsRune(p, '"') {
		return "'" + p + "'"
	}

	return `"` + p + `"`
}

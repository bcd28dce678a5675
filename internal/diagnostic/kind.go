package diagnostic

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind classifies a diagnostic.
type Kind int

const (
	KindInternalFailure Kind = iota
	KindMalformedExpression
	KindUnresolvedType
	KindInvalidPropertyName
	KindConflict
	KindInvalidDirective
	KindInvalidConfig
	KindLoadFailure
	KindEmitFailure
)

// Diagnostic codes.
const (
	CodeMalformedExpression = "UTG0001"
	CodeTypeError           = "UTG0002"
	CodeInternalFailure     = "UTG0003"
	CodeInvalidPropertyName = "UTG0004"
	CodeInvalidDirective    = "UTG0100"
	CodeInvalidConfig       = "UTG0101"
	CodeLoadFailure         = "UTG0102"
	CodeEmitFailure         = "UTG0103"
)

// Code returns the stable code of k. Unresolved types and conflicts share
// the type error code.
func (k Kind) Code() string {
	switch k {
	case KindMalformedExpression:
		return CodeMalformedExpression
	case KindUnresolvedType, KindConflict:
		return CodeTypeError
	case KindInvalidPropertyName:
		return CodeInvalidPropertyName
	case KindInvalidDirective:
		return CodeInvalidDirective
	case KindInvalidConfig:
		return CodeInvalidConfig
	case KindLoadFailure:
		return CodeLoadFailure
	case KindEmitFailure:
		return CodeEmitFailure
	default:
		return CodeInternalFailure
	}
}

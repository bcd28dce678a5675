package grammar

//go:generate go tool stringer -type=TokenKind -trimprefix=Token

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal
	TokenIdent
	TokenQuoted
	TokenLAngle
	TokenRAngle
	TokenComma
	TokenPipe
	TokenDot
)

// Token is one lexical token of a selector.
type Token struct {
	Kind TokenKind
	// Text is the token as written. For TokenQuoted it excludes the quotes.
	Text string
	// Offset is the byte offset of the first character in the input.
	Offset int
	// End is the byte offset just past the token, quotes included.
	End int
}

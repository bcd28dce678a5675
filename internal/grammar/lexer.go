package grammar

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits a selector into tokens. Whitespace between tokens is skipped.
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. After the input is exhausted it keeps
// returning TokenEOF. Characters outside the language, and quoted names
// missing their closing quote, come back as TokenIllegal.
func (l *Lexer) Next() Token {
	l.skipSpace()

	start := l.pos
	if start >= len(l.input) {
		return Token{Kind: TokenEOF, Offset: start, End: start}
	}

	r, size := utf8.DecodeRuneInString(l.input[start:])

	switch {
	case r == '<':
		return l.single(TokenLAngle, size)
	case r == '>':
		return l.single(TokenRAngle, size)
	case r == ',':
		return l.single(TokenComma, size)
	case r == '|':
		return l.single(TokenPipe, size)
	case r == '.':
		return l.single(TokenDot, size)
	case r == '"' || r == '\'':
		return l.quoted(r)
	case isIdentStart(r):
		return l.ident()
	default:
		return l.single(TokenIllegal, size)
	}
}

func (l *Lexer) single(kind TokenKind, size int) Token {
	tok := Token{Kind: kind, Text: l.input[l.pos : l.pos+size], Offset: l.pos, End: l.pos + size}
	l.pos += size

	return tok
}

func (l *Lexer) ident() Token {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentStart(r) && !unicode.IsDigit(r) {
			break
		}

		l.pos += size
	}

	return Token{Kind: TokenIdent, Text: l.input[start:l.pos], Offset: start, End: l.pos}
}

// quoted reads a name between matching quote characters. There are no
// escapes: the name ends at the next quote of the same kind.
func (l *Lexer) quoted(quote rune) Token {
	start := l.pos
	body := start + 1

	for i, r := range l.input[body:] {
		if r == quote {
			end := body + i
			l.pos = end + 1

			return Token{Kind: TokenQuoted, Text: l.input[body:end], Offset: start, End: l.pos}
		}
	}

	l.pos = len(l.input)

	return Token{Kind: TokenIllegal, Text: l.input[start:], Offset: start, End: l.pos}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}

		l.pos += size
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// Lex returns every token of input, ending with TokenEOF.
func Lex(input string) []Token {
	l := NewLexer(input)

	var tokens []Token

	for {
		tok := l.Next()
		tokens = append(tokens, tok)

		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

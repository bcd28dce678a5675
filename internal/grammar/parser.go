package grammar

import (
	"fmt"
	"strings"
)

// Parse parses a complete selector. The whole input must be one selector;
// a bare type name, an empty string or trailing tokens are errors.
func Parse(input string) (*Expr, error) {
	p := &parser{input: input, tokens: Lex(input)}

	if p.peek().Kind == TokenEOF {
		return nil, p.errorf(p.peek(), "empty selector")
	}

	expr, err := p.selector()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, p.errorf(tok, "unexpected %s after selector", describe(tok))
	}

	return expr, nil
}

type parser struct {
	input  string
	tokens []Token
	pos    int
	// open holds the start offsets of selectors still waiting for '>'.
	open []int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+n]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	tok := p.next()
	if tok.Kind != kind {
		return tok, p.errorf(tok, "expected %s, found %s", what, describe(tok))
	}

	return tok, nil
}

// selector := verb '<' args '>'
func (p *parser) selector() (*Expr, error) {
	tok := p.next()
	if tok.Kind != TokenIdent {
		return nil, p.errorf(tok, "expected selector verb, found %s", describe(tok))
	}

	verb, ok := LookupVerb(tok.Text)
	if !ok {
		return nil, p.errorf(tok, "unknown verb %q", tok.Text)
	}

	p.open = append(p.open, tok.Offset)
	defer func() { p.open = p.open[:len(p.open)-1] }()

	if _, err := p.expect(TokenLAngle, fmt.Sprintf("'<' after %s", tok.Text)); err != nil {
		return nil, err
	}

	expr := &Expr{Verb: verb, Keyword: tok.Text}

	first, err := p.operand()
	if err != nil {
		return nil, err
	}

	expr.Args = append(expr.Args, first)

	switch verb.Shape() {
	case ShapeProps:
		if _, err := p.expect(TokenComma, "',' before property names"); err != nil {
			return nil, err
		}

		if expr.Props, err = p.properties(); err != nil {
			return nil, err
		}
	case ShapeTypes:
		if p.peek().Kind != TokenComma {
			return nil, p.errorf(p.peek(), "%s needs at least two types, found %s", tok.Text, describe(p.peek()))
		}

		for p.peek().Kind == TokenComma {
			p.next()

			arg, err := p.operand()
			if err != nil {
				return nil, err
			}

			expr.Args = append(expr.Args, arg)
		}
	case ShapeType:
	}

	end, err := p.expect(TokenRAngle, fmt.Sprintf("'>' to close %s", tok.Text))
	if err != nil {
		return nil, err
	}

	expr.Span = Span{Start: tok.Offset, End: end.End}

	return expr, nil
}

// operand := selector | symbol. An identifier is a nested selector only
// when it is a verb directly followed by '<'.
func (p *parser) operand() (Arg, error) {
	tok := p.peek()

	if tok.Kind == TokenIdent && p.peekAt(1).Kind == TokenLAngle {
		if _, ok := LookupVerb(tok.Text); ok {
			expr, err := p.selector()
			if err != nil {
				return Arg{}, err
			}

			return Arg{Expr: expr, Span: expr.Span}, nil
		}
	}

	var b strings.Builder

	end, err := p.symbol(&b)
	if err != nil {
		return Arg{}, err
	}

	return Arg{Symbol: b.String(), Span: Span{Start: tok.Offset, End: end}}, nil
}

// symbol := ident ('.' ident)* ('<' symbol (',' symbol)* '>')?
//
// The symbol is written to b without whitespace; the returned offset is the
// end of its last token.
func (p *parser) symbol(b *strings.Builder) (int, error) {
	tok, err := p.expect(TokenIdent, "type name")
	if err != nil {
		return 0, err
	}

	b.WriteString(tok.Text)
	end := tok.End

	for p.peek().Kind == TokenDot {
		p.next()

		tok, err := p.expect(TokenIdent, "identifier after '.'")
		if err != nil {
			return 0, err
		}

		b.WriteByte('.')
		b.WriteString(tok.Text)
		end = tok.End
	}

	if p.peek().Kind != TokenLAngle {
		return end, nil
	}

	p.next()
	b.WriteByte('<')

	for {
		if _, err := p.symbol(b); err != nil {
			return 0, err
		}

		if p.peek().Kind != TokenComma {
			break
		}

		p.next()
		b.WriteByte(',')
	}

	closing, err := p.expect(TokenRAngle, "'>' to close type arguments")
	if err != nil {
		return 0, err
	}

	b.WriteByte('>')

	return closing.End, nil
}

// properties := name ('|' name)*
func (p *parser) properties() ([]string, error) {
	var props []string

	seen := make(map[string]struct{})

	for {
		tok := p.next()

		switch tok.Kind {
		case TokenIdent:
		case TokenQuoted:
			if tok.Text == "" {
				return nil, p.errorf(tok, "empty property name")
			}
		default:
			return nil, p.errorf(tok, "expected property name, found %s", describe(tok))
		}

		if _, dup := seen[tok.Text]; !dup {
			seen[tok.Text] = struct{}{}
			props = append(props, tok.Text)
		}

		if p.peek().Kind != TokenPipe {
			return props, nil
		}

		p.next()
	}
}

// errorf builds a SyntaxError at tok. At the end of input the offending
// text is the innermost selector left open.
func (p *parser) errorf(tok Token, format string, args ...any) error {
	near := p.input[tok.Offset:tok.End]

	if tok.Kind == TokenEOF {
		if len(p.open) > 0 {
			near = p.input[p.open[len(p.open)-1]:]
		}
	}

	return &SyntaxError{
		Input:  p.input,
		Offset: tok.Offset,
		Near:   strings.TrimSpace(near),
		Msg:    fmt.Sprintf(format, args...),
	}
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Text)
	case TokenQuoted:
		return fmt.Sprintf("quoted name %q", tok.Text)
	case TokenIllegal:
		return fmt.Sprintf("illegal character %q", tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}

package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer splits dice notation into counts, the die marker and operators.
// Anything else becomes an Other token so errors keep their position.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Die", Pattern: `[dD]`},
	{Name: "Op", Pattern: `[+-]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Other", Pattern: `.`},
})

var (
	tokInt   = Lexer.Symbols()["Int"]
	tokDie   = Lexer.Symbols()["Die"]
	tokOp    = Lexer.Symbols()["Op"]
	tokSpace = Lexer.Symbols()["Whitespace"]
)

// ParseDiceError reports a malformed single term, such as "0d6", "2d7" or "3d".
type ParseDiceError struct {
	Input string
	Pos   lexer.Position
	Msg   string
}

func (e *ParseDiceError) Error() string {
	return fmt.Sprintf("invalid dice %q at column %d: %s", e.Input, e.Pos.Column, e.Msg)
}

// ParseDiceExpressionError reports a malformed combination of terms, such as
// an empty expression or a dangling operator.
type ParseDiceExpressionError struct {
	Input string
	Pos   lexer.Position
	Msg   string
}

func (e *ParseDiceExpressionError) Error() string {
	return fmt.Sprintf("invalid dice expression %q at column %d: %s", e.Input, e.Pos.Column, e.Msg)
}

// Parse reads dice notation: [sign] term (('+'|'-') term)*, where a term is
// [count] 'd' faces or an integer constant.
func Parse(text string) (*Expression, error) {
	lex, err := Lexer.LexString("", text)
	if err != nil {
		return nil, &ParseDiceExpressionError{Input: text, Pos: lexer.Position{Line: 1, Column: 1}, Msg: err.Error()}
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, &ParseDiceExpressionError{Input: text, Pos: lexer.Position{Line: 1, Column: 1}, Msg: err.Error()}
	}
	p := &parser{input: text}
	for _, t := range tokens {
		if t.Type != tokSpace {
			p.tokens = append(p.tokens, t)
		}
	}
	return p.parse()
}

// MustParse is Parse for static input; it panics on error.
func MustParse(text string) *Expression {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	input  string
	tokens []lexer.Token
	pos    int
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() lexer.Token {
	t := p.tokens[p.pos]
	if !t.EOF() {
		p.pos++
	}
	return t
}

func (p *parser) exprErr(t lexer.Token, format string, args ...any) error {
	return &ParseDiceExpressionError{Input: p.input, Pos: t.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) termErr(t lexer.Token, format string, args ...any) error {
	return &ParseDiceError{Input: p.input, Pos: t.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (*Expression, error) {
	if p.peek().EOF() {
		return nil, p.exprErr(p.peek(), "empty expression")
	}
	expr := &Expression{}
	negative := false
	if t := p.peek(); t.Type == tokOp {
		p.next()
		negative = t.Value == "-"
	}
	for {
		if err := p.term(expr, negative); err != nil {
			return nil, err
		}
		t := p.next()
		switch {
		case t.EOF():
			return expr, nil
		case t.Type == tokOp:
			negative = t.Value == "-"
		default:
			return nil, p.exprErr(t, "expected '+' or '-' but found %q", t.Value)
		}
	}
}

func (p *parser) term(expr *Expression, negative bool) error {
	t := p.next()
	switch {
	case t.EOF():
		return p.exprErr(t, "expected a term after operator")
	case t.Type == tokInt:
		n, err := strconv.Atoi(t.Value)
		if err != nil {
			return p.termErr(t, "count %q out of range", t.Value)
		}
		switch next := p.peek(); {
		case next.Type == tokDie:
			p.next()
			if n == 0 {
				return p.termErr(t, "dice count must be at least 1")
			}
			return p.faces(expr, n, negative)
		case !next.EOF() && next.Type != tokOp && isLetter(next.Value):
			return p.termErr(next, "expected 'd' but found %q", next.Value)
		}
		if negative {
			n = -n
		}
		expr.Modifier += n
		return nil
	case t.Type == tokDie:
		return p.faces(expr, 1, negative)
	case t.Type == tokOp:
		return p.exprErr(t, "unexpected operator %q", t.Value)
	default:
		return p.exprErr(t, "unexpected %q", t.Value)
	}
}

func (p *parser) faces(expr *Expression, count int, negative bool) error {
	t := p.next()
	if t.Type != tokInt {
		return p.termErr(t, "expected die faces after 'd'")
	}
	n, err := strconv.Atoi(t.Value)
	if err != nil || !Die(n).Valid() {
		return p.termErr(t, "invalid die face %s, must be one of 4, 6, 8, 10, 12, 20 or 100", t.Value)
	}
	expr.addTerm(Term{Count: count, Die: Die(n), Negative: negative})
	return nil
}

func isLetter(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) == 0
}

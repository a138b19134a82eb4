package interpolate

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes the inside of a ${...} directive.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(?:then|else)\b`},
	{Name: "Dice", Pattern: `[0-9]*[dD][0-9]+\b`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Op", Pattern: `==|!=|<=|>=|/<|/>|[-+*<>()@]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Expr is a conditional: `cond then a else b`, or just cond.
type Expr struct {
	Pos  lexer.Position
	Cond *Compare `parser:"@@"`
	Then *Expr    `parser:"( \"then\" @@"`
	Else *Expr    `parser:"  \"else\" @@ )?"`
}

// Compare is an optional single comparison between two sums.
type Compare struct {
	Pos   lexer.Position
	Left  *Sum   `parser:"@@"`
	Op    string `parser:"( @(\"==\" | \"!=\" | \"<=\" | \">=\" | \"<\" | \">\")"`
	Right *Sum   `parser:"  @@ )?"`
}

type Sum struct {
	Pos  lexer.Position
	Head *Product `parser:"@@"`
	Tail []*SumOp `parser:"@@*"`
}

type SumOp struct {
	Pos     lexer.Position
	Op      string   `parser:"@(\"+\" | \"-\")"`
	Operand *Product `parser:"@@"`
}

type Product struct {
	Pos  lexer.Position
	Head *Unary       `parser:"@@"`
	Tail []*ProductOp `parser:"@@*"`
}

// ProductOp is multiplication, floor division (/<) or ceiling division (/>).
type ProductOp struct {
	Pos     lexer.Position
	Op      string `parser:"@(\"*\" | \"/<\" | \"/>\")"`
	Operand *Unary `parser:"@@"`
}

// Unary negates, or with "+" marks a number for signed display ("+5").
type Unary struct {
	Pos     lexer.Position
	Op      string   `parser:"@(\"-\" | \"+\")?"`
	Operand *Primary `parser:"@@"`
}

type Primary struct {
	Pos      lexer.Position
	Dice     *string `parser:"  @Dice"`
	Int      *int    `parser:"| @Int"`
	String   *string `parser:"| @String"`
	Template *string `parser:"| \"@\" @(Ident | String)"`
	Var      *string `parser:"| @Ident"`
	Sub      *Expr   `parser:"| \"(\" @@ \")\""`
}

// template returns the reference when the whole expression is a bare
// template splice such as ${@pack_tactics}.
func (e *Expr) template() (string, bool) {
	if e.Then != nil || e.Cond.Right != nil {
		return "", false
	}
	sum := e.Cond.Left
	if len(sum.Tail) > 0 || len(sum.Head.Tail) > 0 {
		return "", false
	}
	u := sum.Head.Head
	if u.Op != "" || u.Operand.Template == nil {
		return "", false
	}
	return *u.Operand.Template, true
}

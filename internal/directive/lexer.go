package directive

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the .creature literal notation.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[\[\](),:]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Build creates the parser from the struct tags in ast.go.
func Build() *participle.Parser[fileAST] {
	return participle.MustBuild[fileAST](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
}

var creatureParser = Build()

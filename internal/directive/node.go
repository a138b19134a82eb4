package directive

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// NodeKind is the shape of a literal value.
type NodeKind int

const (
	KindIdent NodeKind = iota
	KindString
	KindInt
	KindList
	KindCall
)

func (k NodeKind) String() string {
	switch k {
	case KindIdent:
		return "identifier"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindList:
		return "list"
	case KindCall:
		return "call"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is the syntax-independent value tree both file formats produce.
// A call holds its tag in Ident, its positional arguments in Items and its
// named arguments in Named.
type Node struct {
	Pos   lexer.Position
	Kind  NodeKind
	Ident string
	Str   string
	Int   int
	Items []Node
	Named []Field
}

// Field is a named call argument.
type Field struct {
	Name  string
	Pos   lexer.Position
	Value Node
}

// Tag returns the tag of a call or bare identifier, and whether n is one.
func (n Node) Tag() (string, bool) {
	if n.Kind == KindCall || n.Kind == KindIdent {
		return n.Ident, true
	}
	return "", false
}

// Text returns the value of an identifier or string node.
func (n Node) Text() (string, bool) {
	switch n.Kind {
	case KindIdent:
		return n.Ident, true
	case KindString:
		return n.Str, true
	}
	return "", false
}

package directive

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// fileAST is the whole .creature file: a bracketed list of values.
type fileAST struct {
	Pos   lexer.Position
	Items []*valueAST `parser:"'[' ( @@ ( ',' @@ )* ','? )? ']'"`
}

// valueAST is any literal: a call, a list, a string, an integer or a bare
// identifier.
type valueAST struct {
	Pos   lexer.Position
	Call  *callAST `parser:"(  @@"`
	List  *listAST `parser:" | @@"`
	Str   *string  `parser:" | @String"`
	Int   *int     `parser:" | @Int"`
	Ident *string  `parser:" | @Ident )"`
}

// listAST is a bracketed list. It is a separate node so that an empty list
// can be told apart from no list at all.
type listAST struct {
	Items []*valueAST `parser:"'[' ( @@ ( ',' @@ )* ','? )? ']'"`
}

// callAST is a tag applied to arguments, e.g. Weapon(Scimitar, magic: 1).
type callAST struct {
	Pos  lexer.Position
	Tag  string    `parser:"@Ident '('"`
	Args []*argAST `parser:"( @@ ( ',' @@ )* ','? )? ')'"`
}

// argAST is a positional or named argument.
type argAST struct {
	Pos   lexer.Position
	Name  *string   `parser:"( @Ident ':' )?"`
	Value *valueAST `parser:"@@"`
}

func (v *valueAST) node() Node {
	n := Node{Pos: v.Pos}
	switch {
	case v.Call != nil:
		n.Kind = KindCall
		n.Pos = v.Call.Pos
		n.Ident = v.Call.Tag
		for _, a := range v.Call.Args {
			if a.Name != nil {
				n.Named = append(n.Named, Field{Name: *a.Name, Pos: a.Pos, Value: a.Value.node()})
				continue
			}
			n.Items = append(n.Items, a.Value.node())
		}
	case v.List != nil:
		n.Kind = KindList
		n.Items = make([]Node, 0, len(v.List.Items))
		for _, item := range v.List.Items {
			n.Items = append(n.Items, item.node())
		}
	case v.Str != nil:
		n.Kind = KindString
		n.Str = *v.Str
	case v.Int != nil:
		n.Kind = KindInt
		n.Int = *v.Int
	case v.Ident != nil:
		n.Kind = KindIdent
		n.Ident = *v.Ident
	}
	return n
}

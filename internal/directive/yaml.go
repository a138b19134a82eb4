package directive

import (
	"strconv"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads the YAML form of a creature file: a sequence whose items
// are either bare tags or single-key mappings from tag to arguments.
//
//	# goblin.yaml
//	- Monstorr: [1, 0]
//	- Name: Goblin
//	- Small
//	- Weapon: {weapon: Scimitar, multiattack: 1}
func ParseYAML(src []byte, filename string) ([]Directive, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &SyntaxError{Pos: lexer.Position{Filename: filename, Line: 1, Column: 1}, Msg: err.Error(), Kind: ErrArguments}
	}
	start := lexer.Position{Filename: filename, Line: 1, Column: 1}
	if len(doc.Content) == 0 {
		return decodeAll(filename, start, nil)
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, &SyntaxError{Pos: yamlPos(filename, root), Msg: "expected a sequence of directives", Kind: ErrArguments}
	}
	nodes := make([]Node, 0, len(root.Content))
	for _, item := range root.Content {
		nodes = append(nodes, directiveNode(filename, item))
	}
	return decodeAll(filename, start, nodes)
}

func yamlPos(filename string, n *yaml.Node) lexer.Position {
	return lexer.Position{Filename: filename, Line: n.Line, Column: n.Column}
}

// directiveNode turns a sequence item into a call. A scalar is a bare tag;
// a single-key mapping carries its arguments as the value.
func directiveNode(filename string, n *yaml.Node) Node {
	if n.Kind == yaml.MappingNode && len(n.Content) == 2 {
		return callNode(filename, n.Content[0], n.Content[1])
	}
	if n.Kind == yaml.ScalarNode {
		return Node{Pos: yamlPos(filename, n), Kind: KindIdent, Ident: n.Value}
	}
	return valueNode(filename, n)
}

// callNode builds a call from a tag and its arguments: a sequence gives
// positional arguments, a mapping gives named ones and a scalar is a single
// positional argument.
func callNode(filename string, key, args *yaml.Node) Node {
	call := Node{Pos: yamlPos(filename, key), Kind: KindCall, Ident: key.Value}
	switch args.Kind {
	case yaml.SequenceNode:
		for _, item := range args.Content {
			call.Items = append(call.Items, valueNode(filename, item))
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(args.Content); i += 2 {
			k, v := args.Content[i], args.Content[i+1]
			call.Named = append(call.Named, Field{Name: k.Value, Pos: yamlPos(filename, k), Value: valueNode(filename, v)})
		}
	default:
		if args.Tag != "!!null" {
			call.Items = append(call.Items, valueNode(filename, args))
		}
	}
	return call
}

// valueNode converts an argument value. A mapping with one capitalized key
// is a nested call such as {Damage: [1d6, Fire]}.
func valueNode(filename string, n *yaml.Node) Node {
	pos := yamlPos(filename, n)
	switch n.Kind {
	case yaml.AliasNode:
		return valueNode(filename, n.Alias)
	case yaml.SequenceNode:
		list := Node{Pos: pos, Kind: KindList, Items: []Node{}}
		for _, item := range n.Content {
			list.Items = append(list.Items, valueNode(filename, item))
		}
		return list
	case yaml.MappingNode:
		if len(n.Content) == 2 && isTag(n.Content[0].Value) {
			return callNode(filename, n.Content[0], n.Content[1])
		}
		call := Node{Pos: pos, Kind: KindCall}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			call.Named = append(call.Named, Field{Name: k.Value, Pos: yamlPos(filename, k), Value: valueNode(filename, v)})
		}
		return call
	}
	if n.Tag == "!!int" {
		if v, err := strconv.Atoi(n.Value); err == nil {
			return Node{Pos: pos, Kind: KindInt, Int: v}
		}
	}
	if n.Tag == "!!bool" {
		return Node{Pos: pos, Kind: KindIdent, Ident: n.Value}
	}
	// Unquoted capitalized words read as identifiers, so that
	// `limit: RechargeAfterRest` means the same as in .creature files.
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 && isTag(n.Value) && isIdent(n.Value) {
		return Node{Pos: pos, Kind: KindIdent, Ident: n.Value}
	}
	return Node{Pos: pos, Kind: KindString, Str: n.Value}
}

func isTag(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func isIdent(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

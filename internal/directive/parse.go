package directive

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// SupportedMajor is the only file format major version understood.
const SupportedMajor = 1

// Parse reads a creature file, choosing the syntax by extension: .yaml and
// .yml are YAML, anything else is the .creature literal notation.
func Parse(src []byte, filename string) ([]Directive, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseYAML(src, filename)
	}
	return ParseCreature(src, filename)
}

// ParseCreature reads the .creature literal notation:
//
//	[ Monstorr(1, 0), Name("Goblin"), Small, Dex(14) ]
func ParseCreature(src []byte, filename string) ([]Directive, error) {
	file, err := creatureParser.ParseBytes(filename, src)
	if err != nil {
		return nil, mapParseError(filename, err)
	}
	nodes := make([]Node, 0, len(file.Items))
	for _, item := range file.Items {
		nodes = append(nodes, item.node())
	}
	return decodeAll(filename, file.Pos, nodes)
}

func mapParseError(filename string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Pos: perr.Position(), Msg: perr.Message(), Kind: ErrArguments}
	}
	return &SyntaxError{Pos: lexer.Position{Filename: filename, Line: 1, Column: 1}, Msg: err.Error(), Kind: ErrArguments}
}

// decodeAll checks the version marker and decodes every node in order,
// stopping at the first failure.
func decodeAll(filename string, start lexer.Position, nodes []Node) ([]Directive, error) {
	if start.Filename == "" {
		start.Filename = filename
	}
	if start.Line == 0 {
		start.Line, start.Column = 1, 1
	}
	if len(nodes) == 0 {
		return nil, &SyntaxError{Pos: start, Msg: "first directive must be Monstorr(major, minor)", Kind: ErrVersion}
	}
	if tag, _ := nodes[0].Tag(); tag != "Monstorr" {
		return nil, &SyntaxError{Pos: nodes[0].Pos, Tag: tag, Msg: "first directive must be Monstorr(major, minor)", Kind: ErrVersion}
	}
	out := make([]Directive, 0, len(nodes))
	for i, n := range nodes {
		d, err := Decode(n)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			if v := d.(*Monstorr); v.Major != SupportedMajor {
				return nil, &SyntaxError{Pos: n.Pos, Tag: "Monstorr", Msg: fmt.Sprintf("version %d.%d is not supported", v.Major, v.Minor), Kind: ErrVersion}
			}
		} else if _, ok := d.(*Monstorr); ok {
			return nil, &SyntaxError{Pos: n.Pos, Tag: "Monstorr", Msg: "version marker must come first", Kind: ErrVersion}
		}
		out = append(out, d)
	}
	return out, nil
}

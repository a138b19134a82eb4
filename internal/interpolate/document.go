package interpolate

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type tokenKind int

const (
	tokText tokenKind = iota
	tokBold
	tokItalic
	tokDirective
	tokBreak
)

type token struct {
	kind   tokenKind
	text   string
	expr   *Expr
	sub    bool // tokBreak: the new block is a sub-paragraph
	offset int  // byte offset of the token in the source
}

// Document is the parsed form of one authored text. It can be evaluated
// against any number of subjects.
type Document struct {
	Label         string
	Source        string
	ParagraphMode bool
	tokens        []token
}

// Parse tokenizes raw text and parses every ${...} directive it contains.
// Unterminated directives and markup are reported here, before evaluation.
func Parse(raw, label string, paragraphMode bool) (*Document, error) {
	s := &scanner{doc: &Document{Label: label, Source: raw, ParagraphMode: paragraphMode}, bold: -1, italic: -1}
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.doc, nil
}

type scanner struct {
	doc       *Document
	text      strings.Builder
	textStart int
	bold      int // offset of the open "**", or -1
	italic    int // offset of the open "*", or -1
}

func (s *scanner) flush() {
	if s.text.Len() > 0 {
		s.doc.tokens = append(s.doc.tokens, token{kind: tokText, text: s.text.String(), offset: s.textStart})
		s.text.Reset()
	}
}

func (s *scanner) emit(t token) {
	s.flush()
	s.doc.tokens = append(s.doc.tokens, t)
}

func (s *scanner) writeText(offset int, text string) {
	if s.text.Len() == 0 {
		s.textStart = offset
	}
	s.text.WriteString(text)
}

func (s *scanner) scan() error {
	raw := s.doc.Source
	i := 0
	if s.doc.ParagraphMode {
		i = skipBlank(raw, 0)
		if strings.HasPrefix(raw[i:], "- ") {
			s.emit(token{kind: tokBreak, sub: true, offset: i})
			i += 2
		}
	}
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			_, size := utf8.DecodeRuneInString(raw[i+1:])
			s.writeText(i, raw[i+1:i+1+size])
			i += 1 + size
		case c == '$' && i+1 < len(raw) && raw[i+1] == '{':
			end := directiveEnd(raw, i+2)
			if end < 0 {
				return s.errorAt(ErrUnterminatedDirective, i, "missing closing '}'", nil)
			}
			expr, err := s.parseExpr(i+2, raw[i+2:end])
			if err != nil {
				return err
			}
			s.emit(token{kind: tokDirective, expr: expr, offset: i})
			i = end + 1
		case c == '*' && i+1 < len(raw) && raw[i+1] == '*':
			s.bold = toggle(s.bold, i)
			s.emit(token{kind: tokBold, offset: i})
			i += 2
		case c == '*':
			s.italic = toggle(s.italic, i)
			s.emit(token{kind: tokItalic, offset: i})
			i++
		case c == '\n' || c == '\r':
			j := i + 1
			if c == '\r' && j < len(raw) && raw[j] == '\n' {
				j++
			}
			j = skipSpaces(raw, j)
			if s.doc.ParagraphMode && j < len(raw) && (raw[j] == '\n' || raw[j] == '\r') {
				if err := s.checkClosed(); err != nil {
					return err
				}
				j = skipBlank(raw, j)
				sub := strings.HasPrefix(raw[j:], "- ")
				s.emit(token{kind: tokBreak, sub: sub, offset: i})
				if sub {
					j += 2
				}
				i = j
				continue
			}
			s.writeText(i, " ")
			i = j
		default:
			_, size := utf8.DecodeRuneInString(raw[i:])
			s.writeText(i, raw[i:i+size])
			i += size
		}
	}
	s.flush()
	return s.checkClosed()
}

func (s *scanner) checkClosed() error {
	if s.bold >= 0 {
		return s.errorAt(ErrUnterminatedMarkup, s.bold, "bold text opened with '**' is never closed", nil)
	}
	if s.italic >= 0 {
		return s.errorAt(ErrUnterminatedMarkup, s.italic, "italic text opened with '*' is never closed", nil)
	}
	return nil
}

func (s *scanner) parseExpr(offset int, src string) (*Expr, error) {
	expr, err := exprParser.ParseString(s.doc.Label, src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, s.errorAt(ErrSyntax, offset+perr.Position().Offset, perr.Message(), nil)
		}
		return nil, s.errorAt(ErrSyntax, offset, err.Error(), nil)
	}
	return expr, nil
}

func (s *scanner) errorAt(kind error, offset int, detail string, cause error) error {
	return &InterpolationError{
		Kind:   kind,
		Label:  s.doc.Label,
		Pos:    positionAt(s.doc.Label, s.doc.Source, offset),
		Detail: detail,
		Err:    cause,
	}
}

func toggle(open, at int) int {
	if open >= 0 {
		return -1
	}
	return at
}

// directiveEnd finds the '}' closing a directive whose body starts at from,
// skipping over string literals. It returns -1 when there is none.
func directiveEnd(raw string, from int) int {
	inString := false
	for i := from; i < len(raw); i++ {
		switch c := raw[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case !inString && c == '}':
			return i
		}
	}
	return -1
}

func skipSpaces(raw string, i int) int {
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	return i
}

func skipBlank(raw string, i int) int {
	for i < len(raw) && strings.ContainsRune(" \t\r\n", rune(raw[i])) {
		i++
	}
	return i
}

// positionAt converts a byte offset in source into a line and column.
func positionAt(filename, source string, offset int) lexer.Position {
	if offset > len(source) {
		offset = len(source)
	}
	pos := lexer.Position{Filename: filename, Offset: offset, Line: 1, Column: 1}
	for _, r := range source[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

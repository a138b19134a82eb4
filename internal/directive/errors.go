package directive

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrVersion means the file does not start with a supported
	// Monstorr(major, minor) marker.
	ErrVersion = errors.New("unsupported file version")
	// ErrUnknownTag means no directive has the tag.
	ErrUnknownTag = errors.New("unknown directive")
	// ErrArguments means a directive's arguments do not fit its usage.
	ErrArguments = errors.New("invalid arguments")
)

// SyntaxError is any failure to turn a file into directives. Usage is the
// expected form of the directive when the tag is known.
type SyntaxError struct {
	Pos   lexer.Position
	Tag   string
	Msg   string
	Usage string
	Kind  error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s:%d:%d: ", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	if e.Tag != "" {
		msg += e.Tag + ": "
	}
	msg += e.Msg
	if e.Usage != "" {
		msg += " (usage: " + e.Usage + ")"
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return e.Kind }

package interpolate

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	ErrUnknownVariable       = errors.New("unknown variable")
	ErrUnterminatedDirective = errors.New("unterminated directive")
	ErrUnterminatedMarkup    = errors.New("unterminated markup")
	ErrSyntax                = errors.New("syntax error")
	ErrDice                  = errors.New("invalid dice")
	ErrType                  = errors.New("type error")
	ErrTemplate              = errors.New("template error")
	ErrTemplateCycle         = errors.New("template cycle")
)

// InterpolationError is any failure to parse or evaluate authored text.
// Kind is one of the Err* sentinels above; errors.Is matches on it.
type InterpolationError struct {
	Kind   error
	Label  string
	Pos    lexer.Position
	Detail string
	Err    error
}

func (e *InterpolationError) Error() string {
	msg := fmt.Sprintf("%s:%d:%d: %v", e.Label, e.Pos.Line, e.Pos.Column, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InterpolationError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

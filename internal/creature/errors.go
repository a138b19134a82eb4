package creature

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	ErrMissingName       = errors.New("creature has no name")
	ErrNoHitDice         = errors.New("hit dice count must be positive")
	ErrAbilityOutOfRange = errors.New("ability score out of range")
	ErrIncludeCycle      = errors.New("include cycle")
	ErrInclude           = errors.New("include failed")
	ErrInterpolation     = errors.New("interpolation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidValue      = errors.New("invalid value")
	ErrExpectationFailed = errors.New("expectation failed")
)

// CreatureError is any failure while building or deriving a creature.
// Context names the feature, action or reference involved.
type CreatureError struct {
	Kind    error
	Context string
	Pos     lexer.Position
	Err     error
}

func (e *CreatureError) Error() string {
	msg := e.Kind.Error()
	if e.Context != "" {
		msg = e.Context + ": " + msg
	}
	if e.Pos.Line > 0 {
		msg = fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CreatureError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func fail(kind error, context string, pos lexer.Position, err error) error {
	return &CreatureError{Kind: kind, Context: context, Pos: pos, Err: err}
}

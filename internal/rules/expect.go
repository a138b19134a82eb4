package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/user4815162342/monstorr/internal/dice"
)

// Expectations evaluates author-written checks against a derived creature,
// e.g. `creature.armor_class >= 15 && cr(creature.challenge) <= 2.0`.
type Expectations struct {
	env *cel.Env
}

// NewExpectations builds the CEL environment. The creature is exposed as a
// single dynamic map named "creature".
func NewExpectations() (*Expectations, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		ext.Lists(),

		cel.Variable("creature", cel.DynType),

		cel.Function("mod",
			cel.Overload("mod_int",
				[]*cel.Type{cel.IntType},
				cel.IntType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					return types.Int(Modifier(int(val.Value().(int64))))
				}),
			),
		),
		cel.Function("cr",
			cel.Overload("cr_string",
				[]*cel.Type{cel.StringType},
				cel.DoubleType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					c, err := ParseChallenge(val.Value().(string))
					if err != nil {
						return types.NewErr("%v", err)
					}
					return types.Double(c.Value())
				}),
			),
		),
		cel.Function("avg",
			cel.Overload("avg_string",
				[]*cel.Type{cel.StringType},
				cel.IntType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					e, err := dice.Parse(val.Value().(string))
					if err != nil {
						return types.NewErr("%v", err)
					}
					return types.Int(e.Rounded())
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Expectations{env: env}, nil
}

// Check compiles and runs expr. The expression must produce a boolean.
func (x *Expectations) Check(expr string, creature map[string]any) (bool, error) {
	ast, iss := x.env.Compile(expr)
	if iss.Err() != nil {
		return false, fmt.Errorf("CEL compile error: %w", iss.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return false, fmt.Errorf("expectation %q yields %s, want bool", expr, ast.OutputType())
	}
	prog, err := x.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("CEL program error: %w", err)
	}
	out, _, err := prog.Eval(map[string]any{"creature": creature})
	if err != nil {
		return false, fmt.Errorf("CEL eval error: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expectation %q yields %T, want bool", expr, out.Value())
	}
	return b, nil
}

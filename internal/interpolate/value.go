package interpolate

import (
	"fmt"
	"strconv"

	"github.com/user4815162342/monstorr/internal/dice"
)

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindDice
	kindBool
)

func (k valueKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindDice:
		return "dice"
	case kindBool:
		return "boolean"
	}
	return "string"
}

type value struct {
	kind   valueKind
	str    string
	num    int
	signed bool
	dice   *dice.Expression
	b      bool
}

func stringValue(s string) value                 { return value{kind: kindString, str: s} }
func numberValue(n int) value                    { return value{kind: kindNumber, num: n} }
func diceValue(e *dice.Expression) value         { return value{kind: kindDice, dice: e} }
func boolValue(b bool) value                     { return value{kind: kindBool, b: b} }
func (v value) is(k valueKind) bool              { return v.kind == k }
func (v value) either(k valueKind, o value) bool { return v.kind == k || o.kind == k }

func (v value) render() string {
	switch v.kind {
	case kindNumber:
		if v.signed {
			return fmt.Sprintf("%+d", v.num)
		}
		return strconv.Itoa(v.num)
	case kindDice:
		return v.dice.Display()
	case kindBool:
		return strconv.FormatBool(v.b)
	}
	return v.str
}

func (v value) truthy() bool {
	switch v.kind {
	case kindNumber:
		return v.num != 0
	case kindDice:
		return true
	case kindBool:
		return v.b
	}
	return v.str != ""
}

// asDice widens a number into a dice-free expression.
func (v value) asDice() *dice.Expression {
	if v.kind == kindDice {
		return v.dice
	}
	return dice.Constant(v.num)
}

func add(a, b value) (value, error) {
	switch {
	case a.either(kindString, b):
		return stringValue(a.render() + b.render()), nil
	case a.either(kindBool, b):
		return value{}, fmt.Errorf("cannot add %s and %s", a.kind, b.kind)
	case a.either(kindDice, b):
		return diceValue(a.asDice().Add(b.asDice())), nil
	}
	return value{kind: kindNumber, num: a.num + b.num, signed: a.signed}, nil
}

func subtract(a, b value) (value, error) {
	switch {
	case a.either(kindString, b) || a.either(kindBool, b):
		return value{}, fmt.Errorf("cannot subtract %s from %s", b.kind, a.kind)
	case a.either(kindDice, b):
		return diceValue(a.asDice().Sub(b.asDice())), nil
	}
	return value{kind: kindNumber, num: a.num - b.num, signed: a.signed}, nil
}

func multiply(op string, a, b value) (value, error) {
	if a.either(kindDice, b) {
		return value{}, fmt.Errorf("cannot multiply or divide dice")
	}
	if !a.is(kindNumber) || !b.is(kindNumber) {
		return value{}, fmt.Errorf("cannot apply %q to %s and %s", op, a.kind, b.kind)
	}
	out := value{kind: kindNumber, signed: a.signed}
	switch op {
	case "*":
		out.num = a.num * b.num
	case "/<", "/>":
		if b.num == 0 {
			return value{}, errDivideByZero
		}
		out.num = floorDiv(a.num, b.num)
		if op == "/>" && a.num%b.num != 0 {
			out.num++
		}
	}
	return out, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func compareValues(op string, a, b value) (bool, error) {
	var c int
	switch {
	case a.is(kindNumber) && b.is(kindNumber):
		c = a.num - b.num
	case a.either(kindDice, b) && !a.either(kindString, b) && !a.either(kindBool, b):
		c = a.asDice().Average().Cmp(b.asDice().Average())
	case a.kind == b.kind && (op == "==" || op == "!="):
		eq := a.render() == b.render()
		return eq == (op == "=="), nil
	default:
		return false, fmt.Errorf("cannot compare %s and %s with %q", a.kind, b.kind, op)
	}
	switch op {
	case "==":
		return c == 0, nil
	case "!=":
		return c != 0, nil
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	}
	return c >= 0, nil
}

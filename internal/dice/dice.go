package dice

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Die is the number of faces on a die. Only the canonical polyhedral set is valid.
type Die int

const (
	D4   Die = 4
	D6   Die = 6
	D8   Die = 8
	D10  Die = 10
	D12  Die = 12
	D20  Die = 20
	D100 Die = 100
)

// Faces lists every valid die, smallest first.
var Faces = []Die{D4, D6, D8, D10, D12, D20, D100}

// Valid reports whether d is one of the canonical faces.
func (d Die) Valid() bool {
	for _, f := range Faces {
		if d == f {
			return true
		}
	}
	return false
}

func (d Die) String() string {
	return "d" + strconv.Itoa(int(d))
}

// Average returns the expected value of a single roll, (faces+1)/2.
func (d Die) Average() *big.Rat {
	return big.NewRat(int64(d)+1, 2)
}

// ParseDie accepts "d8", "D8" or "8".
func ParseDie(s string) (Die, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "d")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid die %q", s)
	}
	d := Die(n)
	if !d.Valid() {
		return 0, fmt.Errorf("invalid die face %d", n)
	}
	return d, nil
}

// Term is one "NdS" group inside an expression.
type Term struct {
	Count    int
	Die      Die
	Negative bool
}

func (t Term) String() string {
	return strconv.Itoa(t.Count) + t.Die.String()
}

// halves is twice the term's average, signed. Averages of dice are always
// multiples of one half, so doubling keeps the arithmetic in integers.
func (t Term) halves() int {
	h := t.Count * (int(t.Die) + 1)
	if t.Negative {
		return -h
	}
	return h
}

// Expression is a parsed dice formula: ordered dice terms plus a constant.
// Values are immutable; every operation returns a new Expression.
type Expression struct {
	Terms    []Term
	Modifier int
}

// New builds an expression of count dice of the given face plus a modifier.
func New(count int, die Die, modifier int) *Expression {
	e := &Expression{Modifier: modifier}
	if count > 0 {
		e.Terms = []Term{{Count: count, Die: die}}
	}
	return e
}

// Constant builds a dice-free expression.
func Constant(n int) *Expression {
	return &Expression{Modifier: n}
}

// HasDice reports whether any dice term is present.
func (e *Expression) HasDice() bool {
	return len(e.Terms) > 0
}

// Average is the exact expected value of the expression.
func (e *Expression) Average() *big.Rat {
	return big.NewRat(int64(e.halves()), 2)
}

func (e *Expression) halves() int {
	total := 2 * e.Modifier
	for _, t := range e.Terms {
		total += t.halves()
	}
	return total
}

// Rounded is the average rounded to the nearest integer, ties rounding down.
// Because the exact average is a multiple of one half, that is the floor.
func (e *Expression) Rounded() int {
	h := e.halves()
	if h >= 0 || h%2 == 0 {
		return h / 2
	}
	return h/2 - 1
}

// String renders the canonical form, e.g. "2d6 + 1d4 - 1".
func (e *Expression) String() string {
	if len(e.Terms) == 0 {
		return strconv.Itoa(e.Modifier)
	}
	var b strings.Builder
	for i, t := range e.Terms {
		switch {
		case i == 0 && t.Negative:
			b.WriteString("-")
		case i > 0 && t.Negative:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(t.String())
	}
	switch {
	case e.Modifier > 0:
		fmt.Fprintf(&b, " + %d", e.Modifier)
	case e.Modifier < 0:
		fmt.Fprintf(&b, " - %d", -e.Modifier)
	}
	return b.String()
}

// Display is the prose form used in stat blocks, e.g. "7 (2d6)". A
// dice-free expression displays as its value alone.
func (e *Expression) Display() string {
	if len(e.Terms) == 0 {
		return strconv.Itoa(e.Modifier)
	}
	return fmt.Sprintf("%d (%s)", e.Rounded(), e.String())
}

// Add sums two expressions, merging dice of the same face and sign.
func (e *Expression) Add(other *Expression) *Expression {
	out := e.clone()
	for _, t := range other.Terms {
		out.addTerm(t)
	}
	out.Modifier += other.Modifier
	return out
}

// Sub subtracts other from e.
func (e *Expression) Sub(other *Expression) *Expression {
	return e.Add(other.Negate())
}

// AddModifier returns e with n added to the constant.
func (e *Expression) AddModifier(n int) *Expression {
	out := e.clone()
	out.Modifier += n
	return out
}

// Negate flips the sign of every term and of the constant.
func (e *Expression) Negate() *Expression {
	out := e.clone()
	for i := range out.Terms {
		out.Terms[i].Negative = !out.Terms[i].Negative
	}
	out.Modifier = -out.Modifier
	return out
}

// Scale multiplies every dice count by factor, leaving the constant alone.
// Weapons wielded by large creatures roll extra dice this way.
func (e *Expression) Scale(factor int) *Expression {
	out := e.clone()
	for i := range out.Terms {
		out.Terms[i].Count *= factor
	}
	return out
}

// Equal compares two expressions term by term.
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Modifier != other.Modifier || len(e.Terms) != len(other.Terms) {
		return false
	}
	for i := range e.Terms {
		if e.Terms[i] != other.Terms[i] {
			return false
		}
	}
	return true
}

func (e *Expression) addTerm(t Term) {
	for i := range e.Terms {
		if e.Terms[i].Die == t.Die && e.Terms[i].Negative == t.Negative {
			e.Terms[i].Count += t.Count
			return
		}
	}
	e.Terms = append(e.Terms, t)
}

func (e *Expression) clone() *Expression {
	out := &Expression{Modifier: e.Modifier}
	if len(e.Terms) > 0 {
		out.Terms = make([]Term, len(e.Terms))
		copy(out.Terms, e.Terms)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler with the canonical form.
func (e *Expression) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Expression) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = *parsed
	return nil
}

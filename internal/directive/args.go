package directive

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/rules"
)

// args reads the arguments of one call. The first failure sticks; later
// reads return zero values so decoders can be written straight through.
type args struct {
	call   Node
	tag    string
	usage  string
	used   map[string]bool
	maxPos int
	err    *SyntaxError
}

func newArgs(call Node, usage string) *args {
	return &args{call: call, tag: call.Ident, usage: usage, used: map[string]bool{}}
}

func (a *args) fail(pos lexer.Position, format string, v ...any) {
	if a.err != nil {
		return
	}
	a.err = &SyntaxError{Pos: pos, Tag: a.tag, Msg: fmt.Sprintf(format, v...), Usage: a.usage, Kind: ErrArguments}
}

// get returns the argument given by name, or else at position i. A negative
// i makes the argument named-only.
func (a *args) get(i int, name string) (Node, bool) {
	if name != "" {
		for _, f := range a.call.Named {
			if f.Name == name {
				a.used[name] = true
				return f.Value, true
			}
		}
	}
	if i < 0 {
		return Node{}, false
	}
	if i+1 > a.maxPos {
		a.maxPos = i + 1
	}
	if i < len(a.call.Items) {
		return a.call.Items[i], true
	}
	return Node{}, false
}

func (a *args) need(i int, name string) (Node, bool) {
	n, ok := a.get(i, name)
	if !ok {
		a.fail(a.call.Pos, "missing argument %q", name)
	}
	return n, ok
}

// rest returns the arguments from position i on, flattening a single list,
// or the named argument's items.
func (a *args) rest(i int, name string) []Node {
	if n, ok := a.get(-1, name); ok {
		return flatten(n)
	}
	if len(a.call.Items) > a.maxPos {
		a.maxPos = len(a.call.Items)
	}
	if i >= len(a.call.Items) {
		return nil
	}
	items := a.call.Items[i:]
	if len(items) == 1 {
		return flatten(items[0])
	}
	return items
}

func flatten(n Node) []Node {
	if n.Kind == KindList {
		return n.Items
	}
	return []Node{n}
}

// done reports arguments no decoder asked for.
func (a *args) done() {
	if len(a.call.Items) > a.maxPos {
		a.fail(a.call.Items[a.maxPos].Pos, "too many arguments")
	}
	for _, f := range a.call.Named {
		if !a.used[f.Name] {
			a.fail(f.Pos, "unknown argument %q", f.Name)
		}
	}
}

func (a *args) asInt(n Node) int {
	if n.Kind != KindInt {
		a.fail(n.Pos, "expected an integer, found %s", n.Kind)
		return 0
	}
	return n.Int
}

func (a *args) asText(n Node) string {
	s, ok := n.Text()
	if !ok {
		a.fail(n.Pos, "expected a string, found %s", n.Kind)
	}
	return s
}

func (a *args) num(i int, name string) int {
	if n, ok := a.need(i, name); ok {
		return a.asInt(n)
	}
	return 0
}

func (a *args) optNum(i int, name string, def int) int {
	if n, ok := a.get(i, name); ok {
		return a.asInt(n)
	}
	return def
}

func (a *args) str(i int, name string) string {
	if n, ok := a.need(i, name); ok {
		return a.asText(n)
	}
	return ""
}

func (a *args) optStr(i int, name string) string {
	if n, ok := a.get(i, name); ok {
		return a.asText(n)
	}
	return ""
}

func (a *args) optBool(name string, def bool) bool {
	n, ok := a.get(-1, name)
	if !ok {
		return def
	}
	switch s, _ := n.Text(); strings.ToLower(s) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	a.fail(n.Pos, "expected true or false")
	return def
}

func (a *args) texts(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, a.asText(n))
	}
	return out
}

func (a *args) asAbility(n Node) rules.Ability {
	ab, err := rules.ParseAbility(a.asText(n))
	if err != nil && a.err == nil {
		a.fail(n.Pos, "%v", err)
	}
	return ab
}

func (a *args) ability(i int, name string) rules.Ability {
	if n, ok := a.need(i, name); ok {
		return a.asAbility(n)
	}
	return 0
}

func (a *args) optAbility(i int, name string) *rules.Ability {
	n, ok := a.get(i, name)
	if !ok {
		return nil
	}
	ab := a.asAbility(n)
	return &ab
}

func (a *args) asChallenge(n Node) rules.Challenge {
	var (
		c   rules.Challenge
		err error
	)
	if n.Kind == KindInt {
		c, err = rules.Whole(n.Int)
	} else {
		c, err = rules.ParseChallenge(a.asText(n))
	}
	if err != nil {
		a.fail(n.Pos, "%v", err)
	}
	return c
}

func (a *args) asDice(n Node) *dice.Expression {
	if n.Kind == KindInt {
		return dice.Constant(n.Int)
	}
	text := a.asText(n)
	if a.err != nil {
		return dice.Constant(0)
	}
	e, err := dice.Parse(text)
	if err != nil {
		a.fail(n.Pos, "%v", err)
		return dice.Constant(0)
	}
	return e
}

func (a *args) asDamageType(n Node) string {
	t, err := rules.ParseDamageType(a.asText(n))
	if err != nil {
		a.fail(n.Pos, "%v", err)
	}
	return t
}

// sub opens a nested call such as Damage("1d6", Fire). finish hands its
// first failure back to the parent.
func (a *args) sub(n Node, tag, usage string) (*args, bool) {
	got, _ := n.Tag()
	if got != tag {
		a.fail(n.Pos, "expected %s", usage)
		return nil, false
	}
	sub := newArgs(n, usage)
	return sub, true
}

func (a *args) finish(sub *args) {
	sub.done()
	if a.err == nil && sub.err != nil {
		a.err = sub.err
	}
}

const damageUsage = `Damage("1d6", Piercing)`

func (a *args) asDamage(n Node) Damage {
	sub, ok := a.sub(n, "Damage", damageUsage)
	if !ok {
		return Damage{Dice: dice.Constant(0)}
	}
	d := Damage{Dice: dice.Constant(0)}
	if dn, ok := sub.need(0, "dice"); ok {
		d.Dice = sub.asDice(dn)
	}
	if tn, ok := sub.need(1, "type"); ok {
		d.Type = sub.asDamageType(tn)
	}
	a.finish(sub)
	return d
}

func (a *args) damage(i int, name string) Damage {
	if n, ok := a.need(i, name); ok {
		return a.asDamage(n)
	}
	return Damage{Dice: dice.Constant(0)}
}

func (a *args) damages(name string) []Damage {
	n, ok := a.get(-1, name)
	if !ok {
		return nil
	}
	var out []Damage
	for _, item := range flatten(n) {
		out = append(out, a.asDamage(item))
	}
	return out
}

const limitUsage = "Recharge(5), PerDay(3), PerTurn(1), RechargeAfterRest or FormOnly(\"Bear\")"

func (a *args) limit() *rules.UsageLimit {
	n, ok := a.get(-1, "limit")
	if !ok {
		return nil
	}
	tag, _ := n.Tag()
	l := &rules.UsageLimit{}
	sub := newArgs(n, limitUsage)
	switch tag {
	case "Recharge":
		l.Kind = rules.Recharge
		l.N = sub.optNum(0, "n", 6)
	case "PerDay":
		l.Kind = rules.PerDay
		l.N = sub.num(0, "n")
	case "PerTurn":
		l.Kind = rules.PerTurn
		l.N = sub.num(0, "n")
	case "RechargeAfterRest":
		l.Kind = rules.RechargeAfterRest
	case "FormOnly":
		l.Kind = rules.AlternateFormOnly
		l.Form = sub.str(0, "form")
	default:
		a.fail(n.Pos, "expected %s", limitUsage)
		return nil
	}
	a.finish(sub)
	if err := l.Validate(); err != nil {
		a.fail(n.Pos, "%v", err)
	}
	return l
}

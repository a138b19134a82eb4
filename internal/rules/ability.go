// Package rules holds the fixed vocabulary and reference tables of the
// fifth-edition ruleset: abilities, sizes, skills, armor, weapons, the
// challenge ladder and its benchmarks.
package rules

import (
	"fmt"
	"strings"
)

// Ability is one of the six ability scores.
type Ability int

const (
	Strength Ability = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma
)

// Abilities lists the six abilities in stat block order.
var Abilities = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

var abilityNames = [...]string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}
var abilityShort = [...]string{"str", "dex", "con", "int", "wis", "cha"}

// Score bounds accepted by the interpreter.
const (
	MinScore     = 1
	MaxScore     = 30
	DefaultScore = 10
)

func (a Ability) String() string {
	if a < Strength || a > Charisma {
		return fmt.Sprintf("Ability(%d)", int(a))
	}
	return abilityNames[a]
}

// Short returns the three-letter lowercase form used as a variable name.
func (a Ability) Short() string {
	if a < Strength || a > Charisma {
		return "?"
	}
	return abilityShort[a]
}

// ParseAbility accepts the full or three-letter name in any case.
func ParseAbility(s string) (Ability, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Abilities {
		if key == abilityShort[a] || key == strings.ToLower(abilityNames[a]) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown ability %q", s)
}

// Modifier is floor((score - 10) / 2).
func Modifier(score int) int {
	d := score - 10
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}
	return d / 2
}

// Signed formats n with an explicit sign: "+2", "-1", "+0".
func Signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

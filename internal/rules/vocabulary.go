package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// Skill pairs a skill with the ability it is checked against.
type Skill struct {
	Name    string
	Ability Ability
}

// Skills in stat block order.
var Skills = []Skill{
	{"Acrobatics", Dexterity},
	{"Animal Handling", Wisdom},
	{"Arcana", Intelligence},
	{"Athletics", Strength},
	{"Deception", Charisma},
	{"History", Intelligence},
	{"Insight", Wisdom},
	{"Intimidation", Charisma},
	{"Investigation", Intelligence},
	{"Medicine", Wisdom},
	{"Nature", Intelligence},
	{"Perception", Wisdom},
	{"Performance", Charisma},
	{"Persuasion", Charisma},
	{"Religion", Intelligence},
	{"Sleight of Hand", Dexterity},
	{"Stealth", Dexterity},
	{"Survival", Wisdom},
}

// LookupSkill finds a skill by name, ignoring case and spacing, so that
// "SleightOfHand" and "sleight of hand" both match.
func LookupSkill(name string) (Skill, error) {
	key := squash(name)
	for _, s := range Skills {
		if squash(s.Name) == key {
			return s, nil
		}
	}
	return Skill{}, fmt.Errorf("unknown skill %q", name)
}

// DamageTypes are the thirteen damage types.
var DamageTypes = []string{
	"acid", "bludgeoning", "cold", "fire", "force", "lightning", "necrotic",
	"piercing", "poison", "psychic", "radiant", "slashing", "thunder",
}

// ParseDamageType returns the canonical lowercase damage type.
func ParseDamageType(s string) (string, error) {
	key := squash(s)
	for _, d := range DamageTypes {
		if d == key {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown damage type %q", s)
}

// Conditions are the conditions a creature can be immune to.
var Conditions = []string{
	"blinded", "charmed", "deafened", "exhaustion", "frightened", "grappled",
	"incapacitated", "invisible", "paralyzed", "petrified", "poisoned", "prone",
	"restrained", "stunned", "unconscious",
}

// ParseCondition returns the canonical lowercase condition.
func ParseCondition(s string) (string, error) {
	key := squash(s)
	for _, c := range Conditions {
		if c == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// CreatureTypes are the standard creature types.
var CreatureTypes = []string{
	"aberration", "beast", "celestial", "construct", "dragon", "elemental", "fey",
	"fiend", "giant", "humanoid", "monstrosity", "ooze", "plant", "undead",
}

// Alignments are the standard alignment phrases, keyed by their directive tag.
var Alignments = map[string]string{
	"AnyAlignment":   "any alignment",
	"AnyNonGood":     "any non-good alignment",
	"AnyNonEvil":     "any non-evil alignment",
	"AnyNonLawful":   "any non-lawful alignment",
	"AnyNonChaotic":  "any non-chaotic alignment",
	"AnyGood":        "any good alignment",
	"AnyEvil":        "any evil alignment",
	"AnyLawful":      "any lawful alignment",
	"AnyChaotic":     "any chaotic alignment",
	"LawfulGood":     "lawful good",
	"NeutralGood":    "neutral good",
	"ChaoticGood":    "chaotic good",
	"LawfulNeutral":  "lawful neutral",
	"Neutral":        "neutral",
	"ChaoticNeutral": "chaotic neutral",
	"LawfulEvil":     "lawful evil",
	"NeutralEvil":    "neutral evil",
	"ChaoticEvil":    "chaotic evil",
	"Unaligned":      "unaligned",
}

// Words splits a CamelCase identifier into words: "DeepSpeech" becomes
// "Deep Speech". Other text is returned unchanged.
func Words(ident string) string {
	var sb strings.Builder
	runes := []rune(ident)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Ordinal formats 1 as "1st", 2 as "2nd" and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

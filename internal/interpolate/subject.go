package interpolate

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pronouns are the lowercase forms used for a creature. The capitalized
// variables (Subj, Poss, ...) are derived from these.
type Pronouns struct {
	Subject    string `json:"subject" yaml:"subject"`
	Possessive string `json:"possessive" yaml:"possessive"`
	Object     string `json:"object" yaml:"object"`
	Reflexive  string `json:"reflexive" yaml:"reflexive"`
}

// It is the default pronoun set for creatures.
var It = Pronouns{Subject: "it", Possessive: "its", Object: "it", Reflexive: "itself"}

// StatNames is the closed set of numeric variables a Subject may supply.
var StatNames = []string{
	"str", "dex", "con", "int", "wis", "cha",
	"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
	"str_save", "dex_save", "con_save", "int_save", "wis_save", "cha_save",
	"prof", "atk", "spell_atk", "spell_dc", "armor_class", "hit_points",
}

// TemplateResolver supplies the raw text of a named snippet for ${@name}.
type TemplateResolver interface {
	Template(ref string) (string, error)
}

// Subject is the evaluation context: who the text is about.
type Subject struct {
	// Name is the display name used mid-sentence, e.g. "the goblin".
	Name     string
	Pronouns Pronouns
	Stats    map[string]int
	// Templates may be nil when no ${@...} references are expected.
	Templates TemplateResolver
}

func (s *Subject) lookup(name string) (value, bool, string) {
	p := s.Pronouns
	switch name {
	case "name":
		return stringValue(s.Name), true, ""
	case "Name":
		return stringValue(Capitalize(s.Name)), true, ""
	case "subj":
		return stringValue(p.Subject), true, ""
	case "Subj":
		return stringValue(Capitalize(p.Subject)), true, ""
	case "poss":
		return stringValue(p.Possessive), true, ""
	case "Poss":
		return stringValue(Capitalize(p.Possessive)), true, ""
	case "obj":
		return stringValue(p.Object), true, ""
	case "Obj":
		return stringValue(Capitalize(p.Object)), true, ""
	case "refl":
		return stringValue(p.Reflexive), true, ""
	case "Refl":
		return stringValue(Capitalize(p.Reflexive)), true, ""
	}
	for _, stat := range StatNames {
		if stat != name {
			continue
		}
		if v, ok := s.Stats[name]; ok {
			return numberValue(v), true, ""
		}
		return value{}, false, "not available for this creature"
	}
	return value{}, false, ""
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.English).String(s[:size]) + s[size:]
}

// Package statblock flattens a derived creature into display strings and
// structured text, ready for any renderer.
package statblock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/user4815162342/monstorr/internal/creature"
	"github.com/user4815162342/monstorr/internal/interpolate"
	"github.com/user4815162342/monstorr/internal/rules"
	"github.com/user4815162342/monstorr/internal/structured"
)

// StatBlock is the flat, render-ready projection of a creature. Empty
// strings and nil slices are lines the block does not show.
type StatBlock struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Type      string `json:"type"`
	Alignment string `json:"alignment"`

	ArmorClass string `json:"armor_class"`
	HitPoints  string `json:"hit_points"`
	Speed      string `json:"speed"`

	Abilities []Ability `json:"abilities"`

	SavingThrows          string `json:"saving_throws,omitempty"`
	Skills                string `json:"skills,omitempty"`
	DamageVulnerabilities string `json:"damage_vulnerabilities,omitempty"`
	DamageResistances     string `json:"damage_resistances,omitempty"`
	DamageImmunities      string `json:"damage_immunities,omitempty"`
	ConditionImmunities   string `json:"condition_immunities,omitempty"`
	Senses                string `json:"senses"`
	Languages             string `json:"languages"`
	Challenge             string `json:"challenge"`
	ProficiencyBonus      string `json:"proficiency_bonus"`

	SpecialAbilities []Feature  `json:"special_abilities,omitempty"`
	Actions          []Feature  `json:"actions,omitempty"`
	Reactions        []Feature  `json:"reactions,omitempty"`
	LegendaryActions *Legendary `json:"legendary_actions,omitempty"`

	Source string `json:"source,omitempty"`
}

// Ability is one column of the ability table.
type Ability struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Modifier int    `json:"modifier"`
	// Display is "14 (+2)".
	Display string `json:"display"`
}

// Feature is a titled block of text: a trait, action or reaction.
type Feature struct {
	Title string          `json:"title"`
	Text  structured.Text `json:"text"`
}

// Legendary holds the legendary action intro and its options.
type Legendary struct {
	Intro   structured.Text `json:"intro"`
	Options []Feature       `json:"options"`
}

// Heading is the italic line under the name: "Small humanoid (goblinoid), neutral evil".
func (s *StatBlock) Heading() string {
	return fmt.Sprintf("%s %s, %s", s.Size, s.Type, s.Alignment)
}

// Project maps a derived creature onto a stat block. It does not modify c.
func Project(c *creature.Creature) *StatBlock {
	d := c.Derived
	s := &StatBlock{
		Name:             c.Name,
		Size:             c.Size.String(),
		Type:             c.Type,
		Alignment:        c.Alignment,
		ArmorClass:       armorClass(d.ArmorClass, d.ArmorDescription),
		HitPoints:        fmt.Sprintf("%d (%s)", d.HitPoints, d.HitDice),
		Speed:            speed(c.Speeds),
		SavingThrows:     saves(c),
		Skills:           skills(c),
		Senses:           senses(c),
		Languages:        languages(c),
		Challenge:        d.Challenge.Display(),
		ProficiencyBonus: rules.Signed(d.Proficiency),
		Source:           c.Source,
	}
	if c.Subtype != "" {
		s.Type += " (" + c.Subtype + ")"
	}
	for _, a := range rules.Abilities {
		score, mod := c.Score(a), c.Modifier(a)
		s.Abilities = append(s.Abilities, Ability{
			Name:     strings.ToUpper(a.Short()),
			Score:    score,
			Modifier: mod,
			Display:  fmt.Sprintf("%d (%s)", score, rules.Signed(mod)),
		})
	}

	s.DamageVulnerabilities = defenses(c.Vulnerabilities)
	s.DamageResistances = defenses(c.Resistances)
	s.DamageImmunities = defenses(c.Immunities)
	s.ConditionImmunities = strings.Join(c.ConditionImmunities, ", ")

	s.SpecialAbilities = features(c.Features)
	if d.Multiattack != nil {
		s.Actions = append(s.Actions, Feature{Title: d.Multiattack.Title(), Text: d.Multiattack.Text})
	}
	s.Actions = append(s.Actions, features(c.Actions)...)
	s.Reactions = features(c.Reactions)

	if len(c.LegendaryOptions) > 0 {
		l := &Legendary{Intro: d.LegendaryIntro}
		for _, o := range c.LegendaryOptions {
			l.Options = append(l.Options, Feature{Title: o.Title(), Text: o.Text})
		}
		s.LegendaryActions = l
	}
	return s
}

func features(entries []*creature.Entry) []Feature {
	var out []Feature
	for _, e := range entries {
		out = append(out, Feature{Title: e.Title(), Text: e.Text})
	}
	return out
}

func armorClass(ac int, desc string) string {
	if desc == "" {
		return fmt.Sprint(ac)
	}
	return fmt.Sprintf("%d (%s)", ac, desc)
}

// speed writes walk first, then the other modes in authored order.
func speed(speeds []creature.Speed) string {
	parts := make([]string, 0, len(speeds))
	for _, sp := range speeds {
		if sp.Mode == "walk" {
			parts = append([]string{fmt.Sprintf("%d ft.", sp.Feet)}, parts...)
			continue
		}
		part := fmt.Sprintf("%s %d ft.", sp.Mode, sp.Feet)
		if sp.Hover {
			part += " (hover)"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// saves lists proficient saving throws in ability order: "Dex +4, Wis +2".
func saves(c *creature.Creature) string {
	var parts []string
	for _, a := range rules.Abilities {
		for _, s := range c.Saves {
			if s == a {
				parts = append(parts, interpolate.Capitalize(a.Short())+" "+rules.Signed(c.SaveBonus(a)))
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}

func skills(c *creature.Creature) string {
	profs := append([]creature.SkillProficiency(nil), c.Skills...)
	sort.SliceStable(profs, func(i, j int) bool { return profs[i].Skill.Name < profs[j].Skill.Name })
	parts := make([]string, 0, len(profs))
	for _, p := range profs {
		bonus, _ := c.SkillBonus(p.Skill)
		parts = append(parts, p.Skill.Name+" "+rules.Signed(bonus))
	}
	return strings.Join(parts, ", ")
}

const nonmagical = "bludgeoning, piercing, and slashing from nonmagical attacks"

// defenses joins damage types with commas and the other clauses with
// semicolons: "fire, poison; bludgeoning, piercing, and slashing from nonmagical attacks".
func defenses(d creature.Defenses) string {
	var clauses []string
	if len(d.Types) > 0 {
		clauses = append(clauses, strings.Join(d.Types, ", "))
	}
	if d.Nonmagical {
		clauses = append(clauses, nonmagical)
	}
	clauses = append(clauses, d.Custom...)
	return strings.Join(clauses, "; ")
}

func senses(c *creature.Creature) string {
	parts := make([]string, 0, len(c.Senses)+1)
	for _, s := range c.Senses {
		part := fmt.Sprintf("%s %d ft.", s.Sense, s.Range)
		if s.BlindBeyond {
			part += " (blind beyond this radius)"
		}
		parts = append(parts, part)
	}
	parts = append(parts, fmt.Sprintf("passive Perception %d", c.Derived.PassivePercept))
	return strings.Join(parts, ", ")
}

func languages(c *creature.Creature) string {
	var parts []string
	if len(c.Languages) > 0 {
		parts = append(parts, strings.Join(c.Languages, ", "))
	}
	if len(c.Unspoken) > 0 {
		parts = append(parts, "understands "+joinAnd(c.Unspoken)+" but can't speak")
	}
	if c.Telepathy > 0 {
		parts = append(parts, fmt.Sprintf("telepathy %d ft.", c.Telepathy))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

func joinAnd(words []string) string {
	if len(words) < 2 {
		return strings.Join(words, "")
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
}

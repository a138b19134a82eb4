// Package render writes stat blocks as plain text, Markdown, JSON or
// styled terminal output.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/user4815162342/monstorr/internal/statblock"
)

// Renderer writes one stat block.
type Renderer interface {
	Render(w io.Writer, s *statblock.StatBlock) error
}

var formats = map[string]func() Renderer{
	"plain":    func() Renderer { return Plain{} },
	"markdown": func() Renderer { return Markdown{} },
	"json":     func() Renderer { return JSON{Indent: "  "} },
	"terminal": func() Renderer { return Terminal{Width: 80} },
}

// Formats lists the format names New accepts.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the renderer for a format name. "md" and "text" are
// accepted as aliases.
func New(format string) (Renderer, error) {
	switch f := strings.ToLower(format); f {
	case "md":
		format = "markdown"
	case "text", "txt":
		format = "plain"
	default:
		format = f
	}
	mk, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return mk(), nil
}

// property is one "Label value" line of the block.
type property struct {
	Label string
	Value string
}

// defense returns the armor class, hit points and speed lines.
func defense(s *statblock.StatBlock) []property {
	return []property{
		{"Armor Class", s.ArmorClass},
		{"Hit Points", s.HitPoints},
		{"Speed", s.Speed},
	}
}

// details returns the lines between the ability table and the traits,
// skipping empty ones.
func details(s *statblock.StatBlock) []property {
	all := []property{
		{"Saving Throws", s.SavingThrows},
		{"Skills", s.Skills},
		{"Damage Vulnerabilities", s.DamageVulnerabilities},
		{"Damage Resistances", s.DamageResistances},
		{"Damage Immunities", s.DamageImmunities},
		{"Condition Immunities", s.ConditionImmunities},
		{"Senses", s.Senses},
		{"Languages", s.Languages},
		{"Challenge", s.Challenge},
		{"Proficiency Bonus", s.ProficiencyBonus},
	}
	out := all[:0]
	for _, p := range all {
		if p.Value != "" {
			out = append(out, p)
		}
	}
	return out
}

// section is a titled group of features such as "Actions".
type section struct {
	Title    string
	Intro    []statblock.Feature
	Features []statblock.Feature
}

func sections(s *statblock.StatBlock) []section {
	out := []section{{Features: s.SpecialAbilities}}
	if len(s.Actions) > 0 {
		out = append(out, section{Title: "Actions", Features: s.Actions})
	}
	if len(s.Reactions) > 0 {
		out = append(out, section{Title: "Reactions", Features: s.Reactions})
	}
	if l := s.LegendaryActions; l != nil {
		sec := section{Title: "Legendary Actions", Features: l.Options}
		if len(l.Intro) > 0 {
			sec.Intro = []statblock.Feature{{Text: l.Intro}}
		}
		out = append(out, sec)
	}
	return out
}

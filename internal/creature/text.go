package creature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/interpolate"
	"github.com/user4815162342/monstorr/internal/rules"
	"github.com/user4815162342/monstorr/internal/structured"
)

const legendaryIntro = "${Name} can take %d legendary %s, choosing from the options below. " +
	"Only one legendary action option can be used at a time and only at the end of another creature's turn. " +
	"${Name} regains spent legendary actions at the start of ${poss} turn."

// describe generates the remaining markup and interpolates every text of
// the creature. Interpolation failures carry the entry's name.
func (in *Interpreter) describe(c *Creature) error {
	subject := c.Subject(in.templates)
	render := func(raw, label string, pos lexer.Position) (structured.Text, error) {
		text, err := interpolate.Interpolate(subject, raw, label, true, true)
		if err != nil {
			return nil, fail(ErrInterpolation, label, pos, err)
		}
		return text, nil
	}

	for _, f := range c.Features {
		switch {
		case f.spells != nil:
			f.Raw = c.spellcastingMarkup(f.spells)
		case f.innate != nil:
			f.Raw = c.innateMarkup(f.innate)
		}
		if f.override != "" {
			f.Raw = f.override
		}
	}

	d := &c.Derived
	d.Multiattack = nil
	if raw := c.multiattackMarkup(); raw != "" {
		d.Multiattack = &Entry{Name: "Multiattack", Raw: raw}
	}

	for _, list := range [][]*Entry{c.Features, c.Actions, c.Reactions} {
		for _, e := range list {
			text, err := render(e.Raw, e.Name, e.Pos)
			if err != nil {
				return err
			}
			e.Text = text
		}
	}
	if m := d.Multiattack; m != nil {
		text, err := render(m.Raw, m.Name, m.Pos)
		if err != nil {
			return err
		}
		m.Text = text
	}

	d.LegendaryIntro = nil
	if len(c.LegendaryOptions) == 0 {
		return nil
	}
	word := "actions"
	if c.LegendaryCount == 1 {
		word = "action"
	}
	intro, err := render(fmt.Sprintf(legendaryIntro, c.LegendaryCount, word), "Legendary Actions", c.LegendaryOptions[0].pos)
	if err != nil {
		return err
	}
	d.LegendaryIntro = intro
	for _, o := range c.LegendaryOptions {
		if o.action != "" {
			target := c.findAction(o.action)
			if target == nil {
				return fail(ErrNotFound, o.Name, o.pos, fmt.Errorf("legendary action uses unknown action %q", o.action))
			}
			o.Raw = useActionMarkup(target)
		}
		text, err := render(o.Raw, o.Name, o.pos)
		if err != nil {
			return err
		}
		o.Text = text
	}
	return nil
}

func useActionMarkup(e *Entry) string {
	if e.Attack != nil {
		return "${Name} makes " + article(lower(e.Name)) + " attack."
	}
	return "${Name} uses " + e.Name + "."
}

// multiattackMarkup is the authored multiattack text, or a sentence built
// from the attacks tagged for multiattack in directive order:
// "${Name} makes three attacks: one with ${poss} bite and two with ${poss} claws."
func (c *Creature) multiattackMarkup() string {
	if c.MultiattackText != "" {
		return c.MultiattackText
	}
	type use struct {
		name  string
		count int
	}
	var uses []use
	total := 0
	for _, e := range c.Actions {
		if e.Attack == nil || e.Attack.Multiattack <= 0 {
			continue
		}
		uses = append(uses, use{lower(e.Name), e.Attack.Multiattack})
		total += e.Attack.Multiattack
	}
	switch {
	case total < 2:
		return ""
	case len(uses) == 1:
		return fmt.Sprintf("${Name} makes %s %s attacks.", numberWord(total), uses[0].name)
	}
	parts := make([]string, len(uses))
	for i, u := range uses {
		name := u.name
		if u.count > 1 {
			name = pluralize(name)
		}
		parts[i] = fmt.Sprintf("%s with ${poss} %s", numberWord(u.count), name)
	}
	return fmt.Sprintf("${Name} makes %s attacks: %s.", numberWord(total), joinAnd(parts))
}

// spellcastingMarkup writes the class spellcasting trait. Spell lists are
// sub-paragraphs; spells cast before combat are starred.
func (c *Creature) spellcastingMarkup(sc *directive.Spellcasting) string {
	attack, dc := c.spellNumbers(sc.Ability, sc.Attack, sc.SaveDC)
	var sb strings.Builder
	fmt.Fprintf(&sb, "${Name} is a %s-level spellcaster. ${Poss} spellcasting ability is %s (spell save DC %d, %s to hit with spell attacks). ",
		rules.Ordinal(sc.Level), sc.Ability, dc, rules.Signed(attack))
	verb := "prepared"
	if sc.Style == rules.Warlock {
		verb = "known"
	}
	fmt.Fprintf(&sb, "${Subj} has the following %s spells %s:", sc.Class, verb)

	before := map[string]bool{}
	for _, s := range sc.BeforeCombat {
		before[strings.ToLower(s)] = true
	}
	spells := func(names []string) string {
		out := make([]string, len(names))
		for i, n := range names {
			out[i] = "*" + n + "*"
			if before[strings.ToLower(n)] {
				out[i] += `\*`
			}
		}
		return strings.Join(out, ", ")
	}

	if sc.Style == rules.Warlock {
		count, slotLevel := rules.WarlockSlots(sc.Level)
		var leveled []string
		for _, l := range sc.Lists {
			if l.Level == 0 {
				fmt.Fprintf(&sb, "\n\n- Cantrips (at will): %s", spells(l.Spells))
				continue
			}
			leveled = append(leveled, l.Spells...)
		}
		if len(leveled) > 0 {
			fmt.Fprintf(&sb, "\n\n- 1st–%s level (%d %s-level %s): %s",
				rules.Ordinal(slotLevel), count, rules.Ordinal(slotLevel), plural(count, "slot"), spells(leveled))
		}
	} else {
		slots := rules.SpellSlots(sc.Style, sc.Level)
		for _, l := range sc.Lists {
			if l.Level == 0 {
				fmt.Fprintf(&sb, "\n\n- Cantrips (at will): %s", spells(l.Spells))
				continue
			}
			n := slots[l.Level-1]
			fmt.Fprintf(&sb, "\n\n- %s level (%d %s): %s", rules.Ordinal(l.Level), n, plural(n, "slot"), spells(l.Spells))
		}
	}
	if len(sc.BeforeCombat) > 0 {
		sb.WriteString("\n\n\\*${Name} casts these spells on ${refl} before combat.")
	}
	return sb.String()
}

// innateMarkup writes the innate spellcasting trait.
func (c *Creature) innateMarkup(is *directive.InnateSpellcasting) string {
	attack, dc := c.spellNumbers(is.Ability, is.Attack, is.SaveDC)
	var sb strings.Builder
	fmt.Fprintf(&sb, "${Name}'s innate spellcasting ability is %s (spell save DC %d", is.Ability, dc)
	if is.Attack != 0 {
		fmt.Fprintf(&sb, ", %s to hit with spell attacks", rules.Signed(attack))
	}
	fmt.Fprintf(&sb, "). ${Subj} can innately cast the following spells, %s:", is.Components)
	for _, l := range is.Lists {
		names := make([]string, len(l.Spells))
		for i, n := range l.Spells {
			names[i] = "*" + n + "*"
		}
		label := "At will"
		if l.PerDay > 0 {
			label = fmt.Sprintf("%d/day", l.PerDay)
			if len(l.Spells) > 1 {
				label += " each"
			}
		}
		fmt.Fprintf(&sb, "\n\n- %s: %s", label, strings.Join(names, ", "))
	}
	return sb.String()
}

var numberWords = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

func numberWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return itoa(n)
}

// pluralize handles the regular English endings, which covers attack names.
func pluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"),
		strings.HasSuffix(s, "ch"), strings.HasSuffix(s, "sh"):
		return s + "es"
	case strings.HasSuffix(s, "y") && len(s) > 1 && !strings.ContainsRune("aeiou", rune(s[len(s)-2])):
		return s[:len(s)-1] + "ies"
	}
	return s + "s"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return pluralize(word)
}

func article(s string) string {
	if s != "" && strings.ContainsRune("aeiou", rune(s[0])) {
		return "an " + s
	}
	return "a " + s
}

func joinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
}

func itoa(n int) string { return strconv.Itoa(n) }

func lower(s string) string { return strings.ToLower(s) }

package creature

import (
	"fmt"
	"strings"

	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/interpolate"
	"github.com/user4815162342/monstorr/internal/rules"
)

const parryText = "${Name} adds %d to ${poss} AC against one melee attack that would hit ${obj}. " +
	"To do so, ${subj} must see the attacker and be wielding a melee weapon."

func newCreature() *Creature {
	c := &Creature{
		Pronouns:  interpolate.It,
		Size:      rules.Medium,
		Type:      "humanoid",
		Alignment: "any alignment",
		Speeds:    []Speed{{Mode: "walk", Feet: 30}},
	}
	for i := range c.Scores {
		c.Scores[i] = 10
	}
	return c
}

// apply performs one directive. Scalars are replaced, lists are appended
// to in order.
func (in *Interpreter) apply(c *Creature, d directive.Directive) error {
	switch d := d.(type) {
	case *directive.Monstorr, *directive.Include:
	case *directive.Source:
		c.Source = d.Text
	case *directive.Name:
		c.Name = d.Name
	case *directive.SubjectName:
		c.SubjectName = d.Name
		c.ProperName = d.Proper
	case *directive.Pronouns:
		c.Pronouns = interpolate.Pronouns{Subject: d.Subject, Possessive: d.Possessive, Object: d.Object, Reflexive: d.Reflexive}

	case *directive.Size:
		c.Size = d.Size
	case *directive.Type:
		c.Type = d.Type
	case *directive.Subtype:
		c.Subtype = d.Subtype
	case *directive.Alignment:
		c.Alignment = d.Alignment

	case *directive.HitDie:
		c.HitDie = d.Die
	case *directive.HitDice:
		if d.Count < 0 {
			return fail(ErrInvalidValue, "HitDice", d.Pos, fmt.Errorf("count %d is negative", d.Count))
		}
		c.HitDiceCount = d.Count
	case *directive.HitPoints:
		if d.HitPoints < 1 {
			return fail(ErrInvalidValue, "HitPoints", d.Pos, fmt.Errorf("hit points %d must be positive", d.HitPoints))
		}
		c.HitPointsOverride = d.HitPoints

	case *directive.Armor:
		armor := d.Armor
		c.Armor, c.NaturalArmor = &armor, nil
	case *directive.NaturalArmor:
		c.Armor, c.NaturalArmor = nil, d
	case *directive.ArmorClass:
		c.ACOverride = d
	case *directive.Shield:
		c.Shield = d.On

	case *directive.Speed:
		setSpeed(c, d)
	case *directive.Score:
		if d.Score < 1 || d.Score > 30 {
			return fail(ErrAbilityOutOfRange, d.Ability.String(), d.Pos, fmt.Errorf("score %d outside 1..30", d.Score))
		}
		c.Scores[d.Ability] = d.Score
	case *directive.Saves:
		for _, a := range d.Abilities {
			if !containsAbility(c.Saves, a) {
				c.Saves = append(c.Saves, a)
			}
		}
	case *directive.Skills:
		addSkills(c, d)

	case *directive.Defense:
		defenses := c.defenses(d.Level)
		for _, t := range d.Types {
			defenses.Types = appendUnique(defenses.Types, t)
		}
		if d.Custom != "" {
			defenses.Custom = append(defenses.Custom, d.Custom)
		}
		defenses.Nonmagical = defenses.Nonmagical || d.Nonmagical
	case *directive.ConditionImmunity:
		for _, cond := range d.Conditions {
			c.ConditionImmunities = appendUnique(c.ConditionImmunities, cond)
		}
	case *directive.Languages:
		for _, l := range d.Languages {
			if d.Unspoken {
				c.Unspoken = appendUnique(c.Unspoken, l)
			} else {
				c.Languages = appendUnique(c.Languages, l)
			}
		}
	case *directive.Telepathy:
		c.Telepathy = d.Range
	case *directive.Sense:
		setSense(c, d)

	case *directive.OverrideChallenge:
		ch := d.Challenge
		c.ChallengeOverride = &ch
	case *directive.ExpectChallenge:
		c.expectChallenge = append(c.expectChallenge, d)
	case *directive.Expect:
		c.expects = append(c.expects, d)

	case *directive.Weapon:
		name := d.Name
		if name == "" {
			name = d.Weapon.Name
		}
		c.Actions = append(c.Actions, &Entry{Name: name, Pos: d.Pos, weapon: d})
	case *directive.Attack:
		c.Actions = append(c.Actions, &Entry{Name: d.Name, Pos: d.Pos, attack: d})
	case *directive.Action:
		c.Actions = append(c.Actions, &Entry{Name: d.Name, Limit: d.Limit, Raw: d.Text, Pos: d.Pos})
	case *directive.SaveAction:
		c.Actions = append(c.Actions, &Entry{Name: d.Name, Limit: d.Limit, Pos: d.Pos, saveDir: d})
	case *directive.Multiattack:
		c.MultiattackText = d.Text
	case *directive.Reaction:
		c.Reactions = append(c.Reactions, &Entry{Name: d.Name, Limit: d.Limit, Raw: d.Text, Pos: d.Pos})
	case *directive.Parry:
		c.Reactions = append(c.Reactions, &Entry{Name: "Parry", Raw: fmt.Sprintf(parryText, d.Bonus), Pos: d.Pos})
	case *directive.Feature:
		c.Features = append(c.Features, &Entry{Name: d.Name, Limit: d.Limit, Raw: d.Text, Pos: d.Pos})
	case *directive.Spellcasting:
		c.Features = append(c.Features, &Entry{Name: "Spellcasting", Pos: d.Pos, spells: d})
	case *directive.InnateSpellcasting:
		c.Features = append(c.Features, &Entry{Name: "Innate Spellcasting", Pos: d.Pos, innate: d})
	case *directive.LegendaryActions:
		c.LegendaryCount = d.Count
		c.LegendaryOptions = nil
		for _, a := range d.Actions {
			c.LegendaryOptions = append(c.LegendaryOptions, &LegendaryOption{
				Name: a.Name, Cost: a.Cost, Raw: a.Text, action: a.Action, pos: d.Pos,
			})
		}

	case *directive.Remove:
		return remove(c, d)
	case *directive.OverrideDescription:
		return overrideDescription(c, d)
	default:
		return fail(ErrInvalidValue, fmt.Sprintf("%T", d), d.Position(), fmt.Errorf("unsupported directive"))
	}
	return nil
}

func (c *Creature) defenses(level directive.DefenseLevel) *Defenses {
	switch level {
	case directive.Vulnerable:
		return &c.Vulnerabilities
	case directive.Immune:
		return &c.Immunities
	}
	return &c.Resistances
}

// setSpeed replaces the speed for the mode. A zero speed removes any mode
// but walk.
func setSpeed(c *Creature, d *directive.Speed) {
	for i, s := range c.Speeds {
		if s.Mode != d.Mode {
			continue
		}
		if d.Feet == 0 && d.Mode != "walk" {
			c.Speeds = append(c.Speeds[:i], c.Speeds[i+1:]...)
			return
		}
		c.Speeds[i] = Speed{Mode: d.Mode, Feet: d.Feet, Hover: d.Hover}
		return
	}
	if d.Feet > 0 {
		c.Speeds = append(c.Speeds, Speed{Mode: d.Mode, Feet: d.Feet, Hover: d.Hover})
	}
}

func setSense(c *Creature, d *directive.Sense) {
	for i, s := range c.Senses {
		if s.Sense != d.Sense {
			continue
		}
		if d.Range == 0 {
			c.Senses = append(c.Senses[:i], c.Senses[i+1:]...)
			return
		}
		c.Senses[i] = *d
		return
	}
	if d.Range > 0 {
		c.Senses = append(c.Senses, *d)
	}
}

func addSkills(c *Creature, d *directive.Skills) {
next:
	for _, s := range d.Skills {
		for i := range c.Skills {
			if c.Skills[i].Skill.Name == s.Name {
				c.Skills[i].Expertise = c.Skills[i].Expertise || d.Expertise
				continue next
			}
		}
		c.Skills = append(c.Skills, SkillProficiency{Skill: s, Expertise: d.Expertise})
	}
}

func remove(c *Creature, d *directive.Remove) error {
	notFound := func(list string) error {
		return fail(ErrNotFound, d.Name, d.Pos, fmt.Errorf("no %s named %q", list, d.Name))
	}
	switch d.Kind {
	case directive.RemoveAction:
		var ok bool
		if c.Actions, ok = removeEntry(c.Actions, d.Name); !ok {
			return notFound("action")
		}
	case directive.RemoveReaction:
		var ok bool
		if c.Reactions, ok = removeEntry(c.Reactions, d.Name); !ok {
			return notFound("reaction")
		}
	case directive.RemoveFeature:
		var ok bool
		if c.Features, ok = removeEntry(c.Features, d.Name); !ok {
			return notFound("feature")
		}
	case directive.RemoveLegendaryAction:
		if d.Name == "" {
			c.LegendaryOptions, c.LegendaryCount = nil, 0
			return nil
		}
		for i, o := range c.LegendaryOptions {
			if strings.EqualFold(o.Name, d.Name) {
				c.LegendaryOptions = append(c.LegendaryOptions[:i], c.LegendaryOptions[i+1:]...)
				return nil
			}
		}
		return notFound("legendary action")
	case directive.RemoveSaves:
		if d.Name == "" {
			c.Saves = nil
			return nil
		}
		a, err := rules.ParseAbility(d.Name)
		if err != nil {
			return fail(ErrInvalidValue, d.Name, d.Pos, err)
		}
		for i, s := range c.Saves {
			if s == a {
				c.Saves = append(c.Saves[:i], c.Saves[i+1:]...)
				return nil
			}
		}
		return notFound("saving throw")
	case directive.RemoveSkills:
		if d.Name == "" {
			c.Skills = nil
			return nil
		}
		skill, err := rules.LookupSkill(d.Name)
		if err != nil {
			return fail(ErrInvalidValue, d.Name, d.Pos, err)
		}
		for i, s := range c.Skills {
			if s.Skill.Name == skill.Name {
				c.Skills = append(c.Skills[:i], c.Skills[i+1:]...)
				return nil
			}
		}
		return notFound("skill")
	case directive.RemoveLanguages:
		if d.Name == "" {
			c.Languages, c.Unspoken, c.Telepathy = nil, nil, 0
			return nil
		}
		var spoken, unspoken bool
		c.Languages, spoken = removeString(c.Languages, rules.Words(d.Name))
		c.Unspoken, unspoken = removeString(c.Unspoken, rules.Words(d.Name))
		if !spoken && !unspoken {
			return notFound("language")
		}
	case directive.RemoveSpellcasting:
		kept := c.Features[:0]
		found := false
		for _, f := range c.Features {
			caster := f.spells != nil || f.innate != nil
			if caster && (d.Name == "" || strings.EqualFold(f.Name, d.Name)) {
				found = true
				continue
			}
			kept = append(kept, f)
		}
		c.Features = kept
		if !found && d.Name != "" {
			return notFound("spellcasting")
		}
	}
	return nil
}

// removeEntry deletes the first entry named name, or every entry when name
// is empty.
func removeEntry(entries []*Entry, name string) ([]*Entry, bool) {
	if name == "" {
		return nil, true
	}
	for i, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return append(entries[:i], entries[i+1:]...), true
		}
	}
	return entries, false
}

func removeString(list []string, s string) ([]string, bool) {
	for i, v := range list {
		if strings.EqualFold(v, s) {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func overrideDescription(c *Creature, d *directive.OverrideDescription) error {
	for _, list := range [][]*Entry{c.Features, c.Actions, c.Reactions} {
		for _, e := range list {
			if strings.EqualFold(e.Name, d.Name) {
				e.override = d.Text
				return nil
			}
		}
	}
	for _, o := range c.LegendaryOptions {
		if strings.EqualFold(o.Name, d.Name) {
			o.Raw, o.action = d.Text, ""
			return nil
		}
	}
	return fail(ErrNotFound, d.Name, d.Pos, fmt.Errorf("nothing named %q to describe", d.Name))
}

func containsAbility(list []rules.Ability, a rules.Ability) bool {
	for _, v := range list {
		if v == a {
			return true
		}
	}
	return false
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func (c *Creature) findAction(name string) *Entry {
	for _, e := range c.Actions {
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}

package creature

import (
	"fmt"

	"github.com/user4815162342/monstorr/internal/rules"
)

// Facts exposes the derived creature to Expect expressions as
// `creature.<field>`.
func (c *Creature) Facts() map[string]any {
	d := c.Derived
	scores := map[string]any{}
	for _, a := range rules.Abilities {
		scores[a.Short()] = c.Score(a)
	}
	speeds := map[string]any{}
	for _, s := range c.Speeds {
		speeds[s.Mode] = s.Feet
	}
	var saves, skills []string
	for _, a := range c.Saves {
		saves = append(saves, a.Short())
	}
	for _, s := range c.Skills {
		skills = append(skills, s.Skill.Name)
	}
	facts := map[string]any{
		"name":                c.Name,
		"size":                c.Size.String(),
		"type":                c.Type,
		"alignment":           c.Alignment,
		"armor_class":         d.ArmorClass,
		"hit_points":          d.HitPoints,
		"hit_dice":            d.HitDice.String(),
		"proficiency":         d.Proficiency,
		"challenge":           d.Challenge.String(),
		"defensive_challenge": d.Defensive.String(),
		"offensive_challenge": d.Offensive.String(),
		"damage_per_round":    d.DamagePerRound,
		"attack_bonus":        d.AttackBonus,
		"passive_perception":  d.PassivePercept,
		"scores":              scores,
		"speed":               speeds,
		"saves":               nonNil(saves),
		"skills":              nonNil(skills),
		"languages":           nonNil(c.Languages),
		"features":            entryNames(c.Features),
		"actions":             entryNames(c.Actions),
		"reactions":           entryNames(c.Reactions),
	}
	for _, a := range rules.Abilities {
		facts[a.Short()] = c.Modifier(a)
	}
	return facts
}

// check verifies ExpectChallenge and Expect directives against the
// derived values.
func (in *Interpreter) check(c *Creature) error {
	for _, e := range c.expectChallenge {
		if e.Challenge != c.Derived.Challenge {
			return fail(ErrExpectationFailed, "ExpectChallenge", e.Pos,
				fmt.Errorf("expected challenge %s, derived %s", e.Challenge, c.Derived.Challenge))
		}
	}
	if len(c.expects) == 0 {
		return nil
	}
	x, err := rules.NewExpectations()
	if err != nil {
		return err
	}
	facts := c.Facts()
	for _, e := range c.expects {
		ok, err := x.Check(e.Expr, facts)
		if err != nil {
			return fail(ErrInvalidValue, e.Expr, e.Pos, err)
		}
		if !ok {
			return fail(ErrExpectationFailed, e.Expr, e.Pos, nil)
		}
	}
	return nil
}

func entryNames(entries []*Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

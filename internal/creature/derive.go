package creature

import (
	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/zap"

	"github.com/user4815162342/monstorr/internal/rules"
)

// maxChallengePasses bounds the proficiency/challenge iteration.
const maxChallengePasses = 4

// derive computes every secondary statistic once all directives are
// applied, then interpolates the creature's prose.
func (in *Interpreter) derive(c *Creature) error {
	if c.Name == "" {
		return fail(ErrMissingName, "", lexer.Position{}, nil)
	}
	if c.HitDiceCount <= 0 {
		return fail(ErrNoHitDice, c.Name, lexer.Position{}, nil)
	}

	d := &c.Derived
	for i, a := range rules.Abilities {
		d.Modifiers[i] = c.Modifier(a)
	}
	d.ArmorClass, d.ArmorDescription = c.armorClass()

	die := c.HitDie
	if die == 0 {
		die = c.Size.HitDie()
	}
	d.HitPoints, d.HitDice = rules.HitPoints(c.HitDiceCount, die, c.Modifier(rules.Constitution), in.rounding)
	if c.HitPointsOverride > 0 {
		d.HitPoints = c.HitPointsOverride
	}

	in.rate(c)
	bonus, _ := c.SkillBonus(rules.Skill{Name: "Perception", Ability: rules.Wisdom})
	d.PassivePercept = 10 + bonus

	return in.describe(c)
}

// rate settles the proficiency bonus and challenge rating. Attack numbers
// depend on proficiency, which depends on the rating, so the rating is
// recomputed from +2 until the bonus stops changing.
func (in *Interpreter) rate(c *Creature) {
	d := &c.Derived
	if c.ChallengeOverride != nil {
		d.Challenge = *c.ChallengeOverride
		d.Proficiency = d.Challenge.ProficiencyBonus()
		c.buildActions()
		d.Defensive, d.Offensive = c.defensive(), c.offensive()
		return
	}

	d.Proficiency = 2
	for pass := 1; ; pass++ {
		c.buildActions()
		d.Defensive, d.Offensive = c.defensive(), c.offensive()
		d.Challenge = rules.Average(d.Defensive, d.Offensive)
		in.logger.Debug("Challenge pass",
			zap.Int("pass", pass),
			zap.Int("proficiency", d.Proficiency),
			zap.Stringer("defensive", d.Defensive),
			zap.Stringer("offensive", d.Offensive),
			zap.Stringer("challenge", d.Challenge))

		next := d.Challenge.ProficiencyBonus()
		if next == d.Proficiency {
			return
		}
		if pass == maxChallengePasses {
			break
		}
		d.Proficiency = next
	}
	// The rating oscillated; keep the last rating and make the attack
	// numbers agree with its bonus.
	d.Proficiency = d.Challenge.ProficiencyBonus()
	c.buildActions()
}

func (c *Creature) armorClass() (int, string) {
	if c.ACOverride != nil {
		return c.ACOverride.Value, c.ACOverride.Description
	}
	dex := c.Modifier(rules.Dexterity)
	ac, desc := 10+dex, ""
	switch {
	case c.Armor != nil:
		ac, desc = c.Armor.ArmorClass(dex), c.Armor.Description
	case c.NaturalArmor != nil:
		ac, desc = 10+dex+c.NaturalArmor.Bonus, c.NaturalArmor.Description
		if desc == "" {
			desc = "natural armor"
		}
	}
	if c.Shield {
		ac += rules.ShieldBonus
		if desc == "" {
			desc = "shield"
		} else {
			desc += ", shield"
		}
	}
	return ac, desc
}

func (c *Creature) resilience() rules.Resilience {
	immune := c.Immunities.Count()
	switch {
	case immune >= 3:
		return rules.Immune
	case immune+c.Resistances.Count() >= 3:
		return rules.Resistant
	}
	return rules.Ordinary
}

// defensive rates hit points and armor class. Resistances scale hit points
// by the multiplier for the rating the raw hit points suggest.
func (c *Creature) defensive() rules.Challenge {
	d := &c.Derived
	expected := rules.DefensiveChallenge(d.HitPoints, d.ArmorClass)
	effective := float64(d.HitPoints) * rules.HitPointMultiplier(expected, c.resilience())
	return rules.DefensiveChallenge(int(effective), d.ArmorClass)
}

// offensive rates the best of the multiattack, the best single attack and
// the best saving throw action. Legendary actions are not counted.
func (c *Creature) offensive() rules.Challenge {
	d := &c.Derived
	d.DamagePerRound, d.AttackBonus, d.UsesSaveDC = 0, d.Proficiency+c.Modifier(rules.Strength), false

	multi, multiBonus := 0, 0
	for _, e := range c.Actions {
		if e.Attack == nil {
			continue
		}
		avg := e.Attack.AverageDamage()
		if e.Attack.Multiattack > 0 {
			multi += avg * e.Attack.Multiattack
			multiBonus = max(multiBonus, e.Attack.ToHit)
		}
		if avg > d.DamagePerRound {
			d.DamagePerRound, d.AttackBonus = avg, e.Attack.ToHit
		}
	}
	if multi > d.DamagePerRound {
		d.DamagePerRound, d.AttackBonus = multi, multiBonus
	}
	for _, e := range c.Actions {
		if e.Save == nil || e.Save.Damage == nil {
			continue
		}
		if avg := e.Save.Damage.Rounded(); avg > d.DamagePerRound {
			d.DamagePerRound, d.AttackBonus, d.UsesSaveDC = avg, e.Save.DC, true
		}
	}
	return rules.OffensiveChallenge(d.DamagePerRound, d.AttackBonus, d.UsesSaveDC)
}

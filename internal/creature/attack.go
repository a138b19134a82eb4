package creature

import (
	"fmt"
	"strings"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/rules"
)

var attackHeadings = map[directive.AttackKind]string{
	directive.MeleeWeapon:         "Melee Weapon Attack",
	directive.RangedWeapon:        "Ranged Weapon Attack",
	directive.MeleeOrRangedWeapon: "Melee or Ranged Weapon Attack",
	directive.MeleeSpell:          "Melee Spell Attack",
	directive.RangedSpell:         "Ranged Spell Attack",
}

// buildActions recomputes the numbers and markup of every generated
// action from the current proficiency bonus.
func (c *Creature) buildActions() {
	for _, e := range c.Actions {
		switch {
		case e.weapon != nil:
			e.Attack = c.weaponAttack(e.weapon)
			e.Raw = attackMarkup(e.Attack, e.weapon.Rider)
		case e.attack != nil:
			e.Attack = c.customAttack(e.attack)
			e.Raw = attackMarkup(e.Attack, e.attack.Rider)
		case e.saveDir != nil:
			e.Save = c.saveEffect(e.saveDir)
			e.Raw = saveMarkup(e.saveDir, e.Save)
		}
		if e.override != "" {
			e.Raw = e.override
		}
	}
}

func (c *Creature) weaponAttack(w *directive.Weapon) *Attack {
	wp := w.Weapon
	str, dex := c.Modifier(rules.Strength), c.Modifier(rules.Dexterity)
	ability := rules.Strength
	switch {
	case wp.Finesse && dex > str:
		ability = rules.Dexterity
	case !wp.Melee():
		ability = rules.Dexterity
	}
	bonus := c.Modifier(ability) + w.Magic

	kind := directive.MeleeWeapon
	switch {
	case wp.Melee() && wp.Ranged():
		kind = directive.MeleeOrRangedWeapon
	case wp.Ranged():
		kind = directive.RangedWeapon
	}

	a := &Attack{
		Kind:        kind,
		Ability:     ability,
		ToHit:       c.Modifier(ability) + c.Derived.Proficiency + w.Magic,
		Reach:       wp.Reach,
		Range:       wp.Range,
		LongRange:   wp.LongRange,
		Target:      wp.Target,
		Plus:        w.Plus,
		Special:     wp.Special,
		Multiattack: w.Multiattack,
	}
	if wp.Special != "" {
		return a
	}
	a.Damage = atLeastOne(wp.Damage(c.Size).AddModifier(bonus))
	a.DamageType = wp.DamageType
	if two := wp.TwoHanded(c.Size); two != nil {
		a.TwoHanded = two.AddModifier(bonus)
	}
	return a
}

func (c *Creature) customAttack(d *directive.Attack) *Attack {
	ability := rules.Strength
	switch {
	case d.Ability != nil:
		ability = *d.Ability
	case d.Kind == directive.MeleeSpell || d.Kind == directive.RangedSpell:
		ability = rules.Charisma
		if sc := c.spellcasting(); sc != nil {
			ability = sc.Ability
		}
	case d.Kind == directive.RangedWeapon:
		ability = rules.Dexterity
	}
	bonus := c.Modifier(ability) + d.Magic
	return &Attack{
		Kind:        d.Kind,
		Ability:     ability,
		ToHit:       c.Modifier(ability) + c.Derived.Proficiency + d.Magic,
		Reach:       d.Reach,
		Range:       d.Range,
		LongRange:   d.LongRange,
		Target:      d.Target,
		Damage:      atLeastOne(d.Damage.Dice.AddModifier(bonus)),
		DamageType:  d.Damage.Type,
		Plus:        d.Plus,
		Multiattack: d.Multiattack,
	}
}

func (c *Creature) saveEffect(d *directive.SaveAction) *SaveEffect {
	dc := d.DC
	if dc == 0 {
		dc = 8 + c.Derived.Proficiency + c.Modifier(d.Ability)
	}
	s := &SaveEffect{DC: dc, Save: d.Save, DamageType: d.Damage.Type, Half: d.Half}
	if d.Damage.Dice != nil && (d.Damage.Dice.HasDice() || d.Damage.Dice.Modifier != 0) {
		s.Damage = d.Damage.Dice
	}
	return s
}

// atLeastOne keeps a dice-free damage expression from dropping below 1.
func atLeastOne(e *dice.Expression) *dice.Expression {
	if !e.HasDice() && e.Modifier < 1 {
		return dice.Constant(1)
	}
	return e
}

// attackMarkup writes the attack line, e.g.
// "*Melee Weapon Attack:* +4 to hit, reach 5 ft., one target. *Hit:* 5 (1d6 + 2) slashing damage."
func attackMarkup(a *Attack, rider string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s:* %s to hit, ", attackHeadings[a.Kind], rules.Signed(a.ToHit))
	reach := fmt.Sprintf("reach %d ft.", a.Reach)
	rng := fmt.Sprintf("range %d ft.", a.Range)
	if a.LongRange > a.Range {
		rng = fmt.Sprintf("range %d/%d ft.", a.Range, a.LongRange)
	}
	switch a.Kind {
	case directive.MeleeOrRangedWeapon:
		sb.WriteString(reach + " or " + rng)
	case directive.RangedWeapon, directive.RangedSpell:
		sb.WriteString(rng)
	default:
		sb.WriteString(reach)
	}
	fmt.Fprintf(&sb, ", %s. *Hit:* ", a.Target)

	if a.Special != "" {
		sb.WriteString(a.Special)
	} else {
		fmt.Fprintf(&sb, "%s %s damage", a.Damage.Display(), a.DamageType)
		if a.TwoHanded != nil {
			fmt.Fprintf(&sb, ", or %s %s damage if used with two hands", a.TwoHanded.Display(), a.DamageType)
		}
		for i, p := range a.Plus {
			if i == 0 {
				sb.WriteString(" plus ")
			} else {
				sb.WriteString(" and ")
			}
			fmt.Fprintf(&sb, "%s %s damage", p.Dice.Display(), p.Type)
		}
		sb.WriteString(".")
	}
	if rider != "" {
		sb.WriteString(" " + rider)
	}
	return sb.String()
}

// saveMarkup writes the lead-in followed by the saving throw sentence, e.g.
// "The target must make a DC 13 Dexterity saving throw, taking 24 (7d6)
// fire damage on a failed save, or half as much damage on a successful one."
func saveMarkup(d *directive.SaveAction, s *SaveEffect) string {
	var sb strings.Builder
	if d.Lead != "" {
		sb.WriteString(d.Lead + " ")
	}
	if s.Damage == nil {
		fmt.Fprintf(&sb, "%s must succeed on a DC %d %s saving throw.", d.Target, s.DC, s.Save)
	} else {
		fmt.Fprintf(&sb, "%s must make a DC %d %s saving throw, taking %s %s damage on a failed save",
			d.Target, s.DC, s.Save, s.Damage.Display(), s.DamageType)
		if s.Half {
			sb.WriteString(", or half as much damage on a successful one.")
		} else {
			sb.WriteString(".")
		}
	}
	if d.Rider != "" {
		sb.WriteString(" " + d.Rider)
	}
	return sb.String()
}

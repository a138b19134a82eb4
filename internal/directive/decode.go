package directive

import (
	"sort"
	"strings"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/rules"
)

type tagSpec struct {
	usage  string
	decode func(a *args) Directive
}

var tags = map[string]tagSpec{}

func register(tag, usage string, decode func(a *args) Directive) {
	tags[tag] = tagSpec{usage: usage, decode: decode}
}

// Tags lists every directive tag, sorted.
func Tags() []string {
	out := make([]string, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Usage returns the expected form of a tag, or "" if the tag is unknown.
func Usage(tag string) string {
	return tags[tag].usage
}

// Decode turns one value of the directive list into a directive.
func Decode(n Node) (Directive, error) {
	tag, ok := n.Tag()
	if !ok {
		return nil, &SyntaxError{Pos: n.Pos, Msg: "expected a directive, found " + n.Kind.String(), Kind: ErrArguments}
	}
	def, ok := tags[tag]
	if !ok {
		return nil, &SyntaxError{Pos: n.Pos, Tag: tag, Msg: "unknown directive", Kind: ErrUnknownTag}
	}
	a := newArgs(n, def.usage)
	d := def.decode(a)
	a.done()
	if a.err != nil {
		return nil, a.err
	}
	return d, nil
}

func at(a *args) base { return base{Pos: a.call.Pos} }

func init() {
	register("Monstorr", "Monstorr(major, minor)", func(a *args) Directive {
		return &Monstorr{base: at(a), Major: a.num(0, "major"), Minor: a.optNum(1, "minor", 0)}
	})
	register("Include", `Include("creature")`, func(a *args) Directive {
		return &Include{base: at(a), Ref: a.str(0, "ref")}
	})
	register("Source", `Source("text")`, func(a *args) Directive {
		return &Source{base: at(a), Text: a.str(0, "text")}
	})
	register("Name", `Name("Goblin")`, func(a *args) Directive {
		return &Name{base: at(a), Name: a.str(0, "name")}
	})
	register("SubjectName", `SubjectName("the goblin")`, func(a *args) Directive {
		return &SubjectName{base: at(a), Name: a.str(0, "name"), Proper: a.optBool("proper", false)}
	})
	register("ProperName", `ProperName("Tiamat")`, func(a *args) Directive {
		return &SubjectName{base: at(a), Name: a.str(0, "name"), Proper: true}
	})
	register("Pronouns", `Pronouns("she", "her", "her", "herself")`, func(a *args) Directive {
		return &Pronouns{base: at(a),
			Subject:    a.str(0, "subject"),
			Possessive: a.str(1, "possessive"),
			Object:     a.str(2, "object"),
			Reflexive:  a.str(3, "reflexive"),
		}
	})

	for _, s := range rules.Sizes {
		size := s
		register(size.String(), size.String(), func(a *args) Directive {
			return &Size{base: at(a), Size: size}
		})
	}
	register("Size", "Size(Medium)", func(a *args) Directive {
		n, _ := a.need(0, "size")
		size, err := rules.ParseSize(a.asText(n))
		if err != nil {
			a.fail(n.Pos, "%v", err)
		}
		return &Size{base: at(a), Size: size}
	})

	for _, t := range rules.CreatureTypes {
		typ := t
		tag := strings.ToUpper(typ[:1]) + typ[1:]
		register(tag, tag, func(a *args) Directive {
			return &Type{base: at(a), Type: typ}
		})
	}
	register("Type", `Type("swarm of Tiny beasts")`, func(a *args) Directive {
		return &Type{base: at(a), Type: a.str(0, "type")}
	})
	register("Subtype", `Subtype("goblinoid")`, func(a *args) Directive {
		return &Subtype{base: at(a), Subtype: a.str(0, "subtype")}
	})

	for tag, phrase := range rules.Alignments {
		text := phrase
		register(tag, tag, func(a *args) Directive {
			return &Alignment{base: at(a), Alignment: text}
		})
	}
	register("Alignment", `Alignment("neutral evil (50%) or neutral good (50%)")`, func(a *args) Directive {
		return &Alignment{base: at(a), Alignment: a.str(0, "alignment")}
	})

	register("HitDie", "HitDie(d8)", func(a *args) Directive {
		n, _ := a.need(0, "die")
		var text string
		if n.Kind == KindInt {
			text = dice.Die(n.Int).String()
		} else {
			text = a.asText(n)
		}
		die, err := dice.ParseDie(text)
		if err != nil && a.err == nil {
			a.fail(n.Pos, "%v", err)
		}
		return &HitDie{base: at(a), Die: die}
	})
	register("HitDice", "HitDice(count)", func(a *args) Directive {
		return &HitDice{base: at(a), Count: a.num(0, "count")}
	})
	register("HitPoints", "HitPoints(value)", func(a *args) Directive {
		return &HitPoints{base: at(a), HitPoints: a.num(0, "hit_points")}
	})

	for _, armor := range rules.ArmorTable {
		ar := armor
		register(ar.Name, ar.Name, func(a *args) Directive {
			return &Armor{base: at(a), Armor: ar}
		})
	}
	register("Armor", "Armor(ChainMail)", func(a *args) Directive {
		n, _ := a.need(0, "armor")
		ar, err := rules.LookupArmor(a.asText(n))
		if err != nil && a.err == nil {
			a.fail(n.Pos, "%v", err)
		}
		return &Armor{base: at(a), Armor: ar}
	})
	register("NaturalArmor", `NaturalArmor(bonus, "description")`, func(a *args) Directive {
		return &NaturalArmor{base: at(a), Bonus: a.num(0, "bonus"), Description: a.optStr(1, "description")}
	})
	register("ArmorClass", `ArmorClass(value, "description")`, func(a *args) Directive {
		return &ArmorClass{base: at(a), Value: a.num(0, "value"), Description: a.optStr(1, "description")}
	})
	register("Shield", "Shield", func(a *args) Directive {
		return &Shield{base: at(a), On: true}
	})
	register("NoShield", "NoShield", func(a *args) Directive {
		return &Shield{base: at(a), On: false}
	})

	for _, mode := range []string{"Walk", "Swim", "Fly", "Burrow", "Climb"} {
		m := strings.ToLower(mode)
		register(mode, mode+"(feet)", func(a *args) Directive {
			return &Speed{base: at(a), Mode: m, Feet: a.num(0, "feet"), Hover: a.optBool("hover", false)}
		})
	}
	register("Hover", "Hover(feet)", func(a *args) Directive {
		return &Speed{base: at(a), Mode: "fly", Feet: a.num(0, "feet"), Hover: true}
	})
	register("Speed", `Speed("mode", feet)`, func(a *args) Directive {
		return &Speed{base: at(a), Mode: strings.ToLower(a.str(0, "mode")), Feet: a.num(1, "feet"), Hover: a.optBool("hover", false)}
	})

	for _, ab := range rules.Abilities {
		ability := ab
		tag := strings.ToUpper(ability.Short()[:1]) + ability.Short()[1:]
		register(tag, tag+"(score)", func(a *args) Directive {
			return &Score{base: at(a), Ability: ability, Score: a.num(0, "score")}
		})
	}

	register("Saves", "Saves([Dex, Con])", func(a *args) Directive {
		d := &Saves{base: at(a)}
		for _, n := range a.rest(0, "abilities") {
			d.Abilities = append(d.Abilities, a.asAbility(n))
		}
		return d
	})
	skills := func(expertise bool) func(a *args) Directive {
		return func(a *args) Directive {
			d := &Skills{base: at(a), Expertise: expertise}
			for _, n := range a.rest(0, "skills") {
				s, err := rules.LookupSkill(a.asText(n))
				if err != nil && a.err == nil {
					a.fail(n.Pos, "%v", err)
				}
				d.Skills = append(d.Skills, s)
			}
			return d
		}
	}
	register("Skills", "Skills([Perception, Stealth])", skills(false))
	register("Expertise", "Expertise([Stealth])", skills(true))

	defense := func(level DefenseLevel) func(a *args) Directive {
		return func(a *args) Directive {
			d := &Defense{base: at(a), Level: level}
			for _, n := range a.rest(0, "types") {
				if n.Kind == KindString {
					if t, err := rules.ParseDamageType(n.Str); err == nil {
						d.Types = append(d.Types, t)
						continue
					}
					d.Custom = n.Str
					continue
				}
				d.Types = append(d.Types, a.asDamageType(n))
			}
			return d
		}
	}
	register("Vulnerability", `Vulnerability([Fire, Cold]) or Vulnerability("custom text")`, defense(Vulnerable))
	register("Resistance", `Resistance([Fire, Cold]) or Resistance("custom text")`, defense(Resistant))
	register("Immunity", `Immunity([Fire, Cold]) or Immunity("custom text")`, defense(Immune))
	register("NonmagicalResistance", "NonmagicalResistance", func(a *args) Directive {
		return &Defense{base: at(a), Level: Resistant, Nonmagical: true}
	})
	register("NonmagicalImmunity", "NonmagicalImmunity", func(a *args) Directive {
		return &Defense{base: at(a), Level: Immune, Nonmagical: true}
	})
	register("ConditionImmunity", "ConditionImmunity([Poisoned, Charmed])", func(a *args) Directive {
		d := &ConditionImmunity{base: at(a)}
		for _, n := range a.rest(0, "conditions") {
			c, err := rules.ParseCondition(a.asText(n))
			if err != nil && a.err == nil {
				a.fail(n.Pos, "%v", err)
			}
			d.Conditions = append(d.Conditions, c)
		}
		return d
	})

	languages := func(unspoken bool) func(a *args) Directive {
		return func(a *args) Directive {
			d := &Languages{base: at(a), Unspoken: unspoken}
			for _, s := range a.texts(a.rest(0, "languages")) {
				d.Languages = append(d.Languages, rules.Words(s))
			}
			return d
		}
	}
	register("Languages", "Languages([Common, Goblin])", languages(false))
	register("UnspokenLanguages", "UnspokenLanguages([Common])", languages(true))
	register("Telepathy", "Telepathy(range)", func(a *args) Directive {
		return &Telepathy{base: at(a), Range: a.num(0, "range")}
	})

	for _, sense := range []string{"Darkvision", "Blindsight", "Truesight", "Tremorsense"} {
		name := strings.ToLower(sense)
		register(sense, sense+"(range)", func(a *args) Directive {
			return &Sense{base: at(a), Sense: name, Range: a.num(0, "range"), BlindBeyond: a.optBool("blind_beyond", false)}
		})
	}
	register("Sense", `Sense("name", range)`, func(a *args) Directive {
		return &Sense{base: at(a), Sense: a.str(0, "sense"), Range: a.num(1, "range"), BlindBeyond: a.optBool("blind_beyond", false)}
	})

	register("OverrideChallenge", `OverrideChallenge(5) or OverrideChallenge("1/4")`, func(a *args) Directive {
		n, _ := a.need(0, "challenge")
		return &OverrideChallenge{base: at(a), Challenge: a.asChallenge(n)}
	})
	for tag, c := range map[string]rules.Challenge{
		"OverrideHalf":    rules.ChallengeHalf,
		"OverrideQuarter": rules.ChallengeQuarter,
		"OverrideEighth":  rules.ChallengeEighth,
		"NoChallenge":     rules.NoChallenge,
	} {
		challenge := c
		register(tag, tag, func(a *args) Directive {
			return &OverrideChallenge{base: at(a), Challenge: challenge}
		})
	}
	register("ExpectChallenge", `ExpectChallenge(5) or ExpectChallenge("1/4")`, func(a *args) Directive {
		n, _ := a.need(0, "challenge")
		return &ExpectChallenge{base: at(a), Challenge: a.asChallenge(n)}
	})
	register("Expect", `Expect("creature.armor_class >= 15")`, func(a *args) Directive {
		return &Expect{base: at(a), Expr: a.str(0, "expr")}
	})

	register("Weapon", `Weapon(Scimitar, name: "Cutlass", magic: 1, multiattack: 2, plus: Damage("1d6", Fire), rider: "text")`, func(a *args) Directive {
		n, _ := a.need(0, "weapon")
		w, err := rules.LookupWeapon(a.asText(n))
		if err != nil && a.err == nil {
			a.fail(n.Pos, "%v", err)
		}
		return &Weapon{base: at(a),
			Weapon:      w,
			Name:        a.optStr(-1, "name"),
			Magic:       a.optNum(-1, "magic", 0),
			Multiattack: a.optNum(-1, "multiattack", 0),
			Plus:        a.damages("plus"),
			Rider:       a.optStr(-1, "rider"),
		}
	})
	register("Attack", `Attack("Bite", Damage("1d6", Piercing), kind: Melee, ability: Str, reach: 5, range: 30, long_range: 120, target: "one target", magic: 0, plus: Damage("1d6", Fire), rider: "text", multiattack: 1)`, decodeAttack)

	register("Action", `Action("Name", "text", limit: Recharge(5))`, func(a *args) Directive {
		return &Action{base: at(a), Name: a.str(0, "name"), Text: a.str(1, "text"), Limit: a.limit()}
	})
	register("SaveAction", `SaveAction("Fire Breath", "lead-in text", save: Dex, ability: Con, damage: Damage("12d6", Fire), target: "Each creature in that area", half: true, dc: 15, rider: "text", limit: Recharge(5))`, func(a *args) Directive {
		target := a.optStr(-1, "target")
		if target == "" {
			target = "The target"
		}
		return &SaveAction{base: at(a),
			Name:    a.str(0, "name"),
			Lead:    a.str(1, "text"),
			Target:  target,
			Save:    a.ability(-1, "save"),
			Ability: abilityOr(a.optAbility(-1, "ability"), rules.Constitution),
			DC:      a.optNum(-1, "dc", 0),
			Damage:  a.damage(-1, "damage"),
			Half:    a.optBool("half", true),
			Rider:   a.optStr(-1, "rider"),
			Limit:   a.limit(),
		}
	})
	register("Multiattack", `Multiattack("text")`, func(a *args) Directive {
		return &Multiattack{base: at(a), Text: a.str(0, "text")}
	})
	register("Reaction", `Reaction("Name", "text", limit: PerDay(1))`, func(a *args) Directive {
		return &Reaction{base: at(a), Name: a.str(0, "name"), Text: a.str(1, "text"), Limit: a.limit()}
	})
	register("Parry", "Parry(bonus)", func(a *args) Directive {
		return &Parry{base: at(a), Bonus: a.num(0, "bonus")}
	})
	register("Feature", `Feature("Name", "text", limit: PerDay(1))`, func(a *args) Directive {
		return &Feature{base: at(a), Name: a.str(0, "name"), Text: a.str(1, "text"), Limit: a.limit()}
	})

	register("Spellcasting", `Spellcasting(Int, 9, "wizard", [Cantrips(["fire bolt"]), Spells(1, ["shield"])], style: Full, before_combat: ["mage armor"], dc: 15, attack: 7)`, decodeSpellcasting)
	register("InnateSpellcasting", `InnateSpellcasting(Cha, [AtWill(["detect magic"]), PerDay(1, ["darkness"])], components: "requiring no material components", dc: 13, attack: 5)`, decodeInnate)
	register("LegendaryActions", `LegendaryActions(3, [Legendary("Detect", "text", cost: 1), UseAction("Tail Attack", cost: 1)])`, decodeLegendary)

	for tag, kind := range map[string]RemoveKind{
		"RemoveAction":          RemoveAction,
		"RemoveReaction":        RemoveReaction,
		"RemoveFeature":         RemoveFeature,
		"RemoveLegendaryAction": RemoveLegendaryAction,
		"RemoveSaves":           RemoveSaves,
		"RemoveSkills":          RemoveSkills,
		"RemoveLanguages":       RemoveLanguages,
		"RemoveSpellcasting":    RemoveSpellcasting,
	} {
		k := kind
		register(tag, tag+`("Name")`, func(a *args) Directive {
			return &Remove{base: at(a), Kind: k, Name: a.optStr(0, "name")}
		})
	}
	register("OverrideDescription", `OverrideDescription("Name", "text")`, func(a *args) Directive {
		return &OverrideDescription{base: at(a), Name: a.str(0, "name"), Text: a.str(1, "text")}
	})
}

func abilityOr(ab *rules.Ability, def rules.Ability) rules.Ability {
	if ab == nil {
		return def
	}
	return *ab
}

var attackKinds = map[string]AttackKind{
	"Melee":         MeleeWeapon,
	"Ranged":        RangedWeapon,
	"MeleeOrRanged": MeleeOrRangedWeapon,
	"MeleeSpell":    MeleeSpell,
	"RangedSpell":   RangedSpell,
}

func decodeAttack(a *args) Directive {
	d := &Attack{base: at(a),
		Name:        a.str(0, "name"),
		Damage:      a.damage(1, "damage"),
		Ability:     a.optAbility(-1, "ability"),
		Reach:       a.optNum(-1, "reach", 0),
		Range:       a.optNum(-1, "range", 0),
		Target:      a.optStr(-1, "target"),
		Magic:       a.optNum(-1, "magic", 0),
		Plus:        a.damages("plus"),
		Rider:       a.optStr(-1, "rider"),
		Multiattack: a.optNum(-1, "multiattack", 0),
	}
	d.LongRange = a.optNum(-1, "long_range", d.Range)
	if n, ok := a.get(-1, "kind"); ok {
		kind, found := attackKinds[a.asText(n)]
		if !found {
			a.fail(n.Pos, "attack kind must be Melee, Ranged, MeleeOrRanged, MeleeSpell or RangedSpell")
		}
		d.Kind = kind
	} else {
		switch {
		case d.Range > 0 && d.Reach > 0:
			d.Kind = MeleeOrRangedWeapon
		case d.Range > 0:
			d.Kind = RangedWeapon
		}
	}
	if d.Kind != RangedWeapon && d.Kind != RangedSpell && d.Reach == 0 {
		d.Reach = 5
	}
	if d.Target == "" {
		d.Target = "one target"
	}
	return d
}

var casterStyles = map[string]rules.CasterStyle{
	"Full":    rules.FullCaster,
	"Half":    rules.HalfCaster,
	"Third":   rules.ThirdCaster,
	"Warlock": rules.Warlock,
}

func decodeSpellcasting(a *args) Directive {
	d := &Spellcasting{base: at(a),
		Ability: a.ability(0, "ability"),
		Level:   a.num(1, "level"),
		Class:   a.str(2, "class"),
		SaveDC:  a.optNum(-1, "dc", 0),
		Attack:  a.optNum(-1, "attack", 0),
	}
	if n, ok := a.get(-1, "style"); ok {
		style, found := casterStyles[a.asText(n)]
		if !found {
			a.fail(n.Pos, "caster style must be Full, Half, Third or Warlock")
		}
		d.Style = style
	}
	if n, ok := a.get(-1, "before_combat"); ok {
		d.BeforeCombat = a.texts(flatten(n))
	}
	if n, ok := a.get(3, "spells"); ok {
		for _, item := range flatten(n) {
			tag, _ := item.Tag()
			switch tag {
			case "Cantrips":
				sub := newArgs(item, `Cantrips(["fire bolt", "light"])`)
				d.Lists = append(d.Lists, SpellList{Level: 0, Spells: sub.texts(sub.rest(0, "spells"))})
				a.finish(sub)
			case "Spells":
				sub := newArgs(item, `Spells(level, ["shield"])`)
				level := sub.num(0, "level")
				if level < 1 || level > 9 {
					sub.fail(item.Pos, "spell level %d outside 1..9", level)
				}
				d.Lists = append(d.Lists, SpellList{Level: level, Spells: sub.texts(sub.rest(1, "spells"))})
				a.finish(sub)
			default:
				a.fail(item.Pos, `expected Cantrips([...]) or Spells(level, [...])`)
			}
		}
	}
	if d.Level < 1 || d.Level > 20 {
		a.fail(a.call.Pos, "caster level %d outside 1..20", d.Level)
	}
	return d
}

func decodeInnate(a *args) Directive {
	d := &InnateSpellcasting{base: at(a),
		Ability:    a.ability(0, "ability"),
		Components: a.optStr(-1, "components"),
		SaveDC:     a.optNum(-1, "dc", 0),
		Attack:     a.optNum(-1, "attack", 0),
	}
	if d.Components == "" {
		d.Components = "requiring no material components"
	}
	n, _ := a.need(1, "spells")
	for _, item := range flatten(n) {
		tag, _ := item.Tag()
		switch tag {
		case "AtWill":
			sub := newArgs(item, `AtWill(["detect magic"])`)
			d.Lists = append(d.Lists, InnateList{Spells: sub.texts(sub.rest(0, "spells"))})
			a.finish(sub)
		case "PerDay":
			sub := newArgs(item, `PerDay(times, ["darkness"])`)
			times := sub.num(0, "times")
			if times < 1 {
				sub.fail(item.Pos, "times per day must be positive")
			}
			d.Lists = append(d.Lists, InnateList{PerDay: times, Spells: sub.texts(sub.rest(1, "spells"))})
			a.finish(sub)
		default:
			a.fail(item.Pos, `expected AtWill([...]) or PerDay(times, [...])`)
		}
	}
	return d
}

func decodeLegendary(a *args) Directive {
	d := &LegendaryActions{base: at(a), Count: a.num(0, "count")}
	n, _ := a.need(1, "actions")
	for _, item := range flatten(n) {
		tag, _ := item.Tag()
		switch tag {
		case "Legendary":
			sub := newArgs(item, `Legendary("Name", "text", cost: 1)`)
			d.Actions = append(d.Actions, LegendaryAction{
				Name: sub.str(0, "name"),
				Text: sub.str(1, "text"),
				Cost: sub.optNum(-1, "cost", 1),
			})
			a.finish(sub)
		case "UseAction":
			sub := newArgs(item, `UseAction("Action", name: "Name", cost: 1)`)
			action := sub.str(0, "action")
			name := sub.optStr(-1, "name")
			if name == "" {
				name = action
			}
			d.Actions = append(d.Actions, LegendaryAction{
				Name:   name,
				Action: action,
				Cost:   sub.optNum(-1, "cost", 1),
			})
			a.finish(sub)
		default:
			a.fail(item.Pos, `expected Legendary(...) or UseAction(...)`)
		}
	}
	if d.Count < 1 {
		a.fail(a.call.Pos, "legendary action count must be positive")
	}
	return d
}

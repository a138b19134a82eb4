// Package creature applies directives to build a creature and derives its
// secondary statistics.
package creature

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/interpolate"
	"github.com/user4815162342/monstorr/internal/rules"
	"github.com/user4815162342/monstorr/internal/structured"
)

// Creature is the model built by the interpreter. It is mutated only while
// directives are applied and is read-only once Run returns.
type Creature struct {
	Name        string
	SubjectName string
	ProperName  bool
	Pronouns    interpolate.Pronouns
	Source      string

	Size      rules.Size
	Type      string
	Subtype   string
	Alignment string

	Scores [6]int

	HitDie            dice.Die
	HitDiceCount      int
	HitPointsOverride int

	Armor        *rules.Armor
	NaturalArmor *directive.NaturalArmor
	Shield       bool
	ACOverride   *directive.ArmorClass

	Speeds []Speed

	Saves  []rules.Ability
	Skills []SkillProficiency

	Vulnerabilities     Defenses
	Resistances         Defenses
	Immunities          Defenses
	ConditionImmunities []string

	Senses    []directive.Sense
	Languages []string
	Unspoken  []string
	Telepathy int

	ChallengeOverride *rules.Challenge

	Features         []*Entry
	Actions          []*Entry
	Reactions        []*Entry
	MultiattackText  string
	LegendaryCount   int
	LegendaryOptions []*LegendaryOption

	expectChallenge []*directive.ExpectChallenge
	expects         []*directive.Expect

	Derived Derived
}

// Speed is one movement mode. Walk is always first.
type Speed struct {
	Mode  string
	Feet  int
	Hover bool
}

// SkillProficiency marks a proficient skill; expertise doubles the bonus.
type SkillProficiency struct {
	Skill     rules.Skill
	Expertise bool
}

// Defenses are the damage types one defense level covers.
type Defenses struct {
	Types      []string
	Custom     []string
	Nonmagical bool
}

// Count is the number of entries the challenge rating sees.
func (d Defenses) Count() int {
	n := len(d.Types)
	if d.Nonmagical {
		n += 3
	}
	return n
}

// Entry is a named feature, action or reaction. Raw is the authored or
// generated markup; Text is its interpolated form.
type Entry struct {
	Name   string            `json:"name"`
	Limit  *rules.UsageLimit `json:"limit,omitempty"`
	Raw    string            `json:"raw"`
	Text   structured.Text   `json:"text"`
	Attack *Attack           `json:"attack,omitempty"`
	Save   *SaveEffect       `json:"save,omitempty"`
	Pos    lexer.Position    `json:"-"`

	override string
	weapon   *directive.Weapon
	attack   *directive.Attack
	saveDir  *directive.SaveAction
	spells   *directive.Spellcasting
	innate   *directive.InnateSpellcasting
}

// Title is the name followed by the usage limit, e.g.
// "Fire Breath (Recharge 5–6)".
func (e *Entry) Title() string {
	if e.Limit == nil {
		return e.Name
	}
	return e.Name + " (" + e.Limit.String() + ")"
}

// Attack is the derived form of a weapon or custom attack.
type Attack struct {
	Kind        directive.AttackKind `json:"kind"`
	Ability     rules.Ability        `json:"ability"`
	ToHit       int                  `json:"to_hit"`
	Reach       int                  `json:"reach,omitempty"`
	Range       int                  `json:"range,omitempty"`
	LongRange   int                  `json:"long_range,omitempty"`
	Target      string               `json:"target"`
	Damage      *dice.Expression     `json:"damage,omitempty"`
	DamageType  string               `json:"damage_type,omitempty"`
	TwoHanded   *dice.Expression     `json:"two_handed,omitempty"`
	Plus        []directive.Damage   `json:"plus,omitempty"`
	Special     string               `json:"special,omitempty"`
	Multiattack int                  `json:"multiattack,omitempty"`
}

// AverageDamage is the rounded average of one hit, extra damage included.
func (a *Attack) AverageDamage() int {
	if a.Damage == nil {
		return 0
	}
	total := a.Damage
	for _, p := range a.Plus {
		total = total.Add(p.Dice)
	}
	return total.Rounded()
}

// SaveEffect is the derived form of a saving throw action.
type SaveEffect struct {
	DC         int              `json:"dc"`
	Save       rules.Ability    `json:"save"`
	Damage     *dice.Expression `json:"damage"`
	DamageType string           `json:"damage_type"`
	Half       bool             `json:"half"`
}

// LegendaryOption is one legendary action.
type LegendaryOption struct {
	Name   string          `json:"name"`
	Cost   int             `json:"cost"`
	Raw    string          `json:"raw"`
	Text   structured.Text `json:"text"`
	action string
	pos    lexer.Position
}

// Title includes the cost when above one: "Wing Attack (Costs 2 Actions)".
func (o *LegendaryOption) Title() string {
	if o.Cost <= 1 {
		return o.Name
	}
	return o.Name + " (Costs " + itoa(o.Cost) + " Actions)"
}

// Derived holds every value computed by the derivation pass.
type Derived struct {
	Modifiers        [6]int
	Proficiency      int
	ArmorClass       int
	ArmorDescription string
	HitPoints        int
	HitDice          *dice.Expression
	Challenge        rules.Challenge
	Defensive        rules.Challenge
	Offensive        rules.Challenge
	DamagePerRound   int
	AttackBonus      int
	UsesSaveDC       bool
	PassivePercept   int
	Multiattack      *Entry
	LegendaryIntro   structured.Text
}

// Score returns the ability score.
func (c *Creature) Score(a rules.Ability) int { return c.Scores[a] }

// Modifier returns the derived ability modifier.
func (c *Creature) Modifier(a rules.Ability) int { return rules.Modifier(c.Scores[a]) }

// SaveBonus is the saving throw bonus, with proficiency when proficient.
func (c *Creature) SaveBonus(a rules.Ability) int {
	bonus := c.Modifier(a)
	for _, s := range c.Saves {
		if s == a {
			return bonus + c.Derived.Proficiency
		}
	}
	return bonus
}

// SkillBonus is the skill bonus and whether the creature is proficient.
func (c *Creature) SkillBonus(s rules.Skill) (int, bool) {
	bonus := c.Modifier(s.Ability)
	for _, p := range c.Skills {
		if p.Skill.Name != s.Name {
			continue
		}
		if p.Expertise {
			return bonus + 2*c.Derived.Proficiency, true
		}
		return bonus + c.Derived.Proficiency, true
	}
	return bonus, false
}

// Subject is the interpolation context for the creature's prose.
func (c *Creature) Subject(templates interpolate.TemplateResolver) *interpolate.Subject {
	stats := map[string]int{
		"prof":        c.Derived.Proficiency,
		"atk":         c.Modifier(rules.Strength) + c.Derived.Proficiency,
		"armor_class": c.Derived.ArmorClass,
		"hit_points":  c.Derived.HitPoints,
	}
	for _, a := range rules.Abilities {
		stats[a.Short()] = c.Modifier(a)
		stats[lower(a.String())] = c.Score(a)
		stats[a.Short()+"_save"] = c.SaveBonus(a)
	}
	if sc := c.spellcasting(); sc != nil {
		stats["spell_atk"], stats["spell_dc"] = c.spellNumbers(sc.Ability, sc.Attack, sc.SaveDC)
	}
	return &interpolate.Subject{
		Name:      c.DisplayName(),
		Pronouns:  c.Pronouns,
		Stats:     stats,
		Templates: templates,
	}
}

// DisplayName is the mid-sentence name: "the goblin" unless a subject
// name was given.
func (c *Creature) DisplayName() string {
	switch {
	case c.SubjectName != "":
		return c.SubjectName
	case c.ProperName:
		return c.Name
	}
	return "the " + lower(c.Name)
}

func (c *Creature) spellcasting() *directive.Spellcasting {
	for _, f := range c.Features {
		if f.spells != nil {
			return f.spells
		}
	}
	return nil
}

func (c *Creature) spellNumbers(ability rules.Ability, attack, dc int) (int, int) {
	if attack == 0 {
		attack = c.Derived.Proficiency + c.Modifier(ability)
	}
	if dc == 0 {
		dc = 8 + c.Derived.Proficiency + c.Modifier(ability)
	}
	return attack, dc
}

package directive

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/rules"
)

// Directive is one authoring instruction. The set is closed: every concrete
// type is declared in this file.
type Directive interface {
	Position() lexer.Position
	directive()
}

type base struct {
	Pos lexer.Position `json:"-" yaml:"-"`
}

func (b base) Position() lexer.Position { return b.Pos }
func (base) directive()                 {}

// Monstorr is the version marker every file starts with.
type Monstorr struct {
	base
	Major, Minor int
}

// Include splices the directives of another creature file in place.
type Include struct {
	base
	Ref string
}

// Source records where the creature was published.
type Source struct {
	base
	Text string
}

// Name sets the creature's title, e.g. "Goblin".
type Name struct {
	base
	Name string
}

// SubjectName sets the mid-sentence name, e.g. "the goblin".
type SubjectName struct {
	base
	Name string
	// Proper names are never prefixed with "the".
	Proper bool
}

// Pronouns sets the four pronoun forms used in prose.
type Pronouns struct {
	base
	Subject, Possessive, Object, Reflexive string
}

// Size sets the creature's size.
type Size struct {
	base
	Size rules.Size
}

// Type sets the creature type, e.g. "humanoid".
type Type struct {
	base
	Type string
}

// Subtype sets the parenthetical after the type, e.g. "goblinoid".
type Subtype struct {
	base
	Subtype string
}

// Alignment sets the alignment phrase.
type Alignment struct {
	base
	Alignment string
}

// HitDie overrides the hit die implied by size.
type HitDie struct {
	base
	Die dice.Die
}

// HitDice sets the number of hit dice.
type HitDice struct {
	base
	Count int
}

// HitPoints pins the hit point total.
type HitPoints struct {
	base
	HitPoints int
}

// Armor equips manufactured armor from the armor table.
type Armor struct {
	base
	Armor rules.Armor
}

// NaturalArmor gives 10 + Dex + Bonus, described as "natural armor".
type NaturalArmor struct {
	base
	Bonus int
	// Description replaces "natural armor" when set.
	Description string
}

// ArmorClass overrides the computed armor class.
type ArmorClass struct {
	base
	Value       int
	Description string
}

// Shield adds or removes a shield.
type Shield struct {
	base
	On bool
}

// Speed sets the speed for one movement mode; "walk" is the base speed.
type Speed struct {
	base
	Mode string
	Feet int
	// Hover applies to fly speeds.
	Hover bool
}

// Score sets one ability score.
type Score struct {
	base
	Ability rules.Ability
	Score   int
}

// Saves adds saving throw proficiencies.
type Saves struct {
	base
	Abilities []rules.Ability
}

// Skills adds skill proficiencies, or expertise when Expertise is set.
type Skills struct {
	base
	Skills    []rules.Skill
	Expertise bool
}

// DefenseLevel is how a creature weathers a damage type.
type DefenseLevel int

const (
	Vulnerable DefenseLevel = iota
	Resistant
	Immune
)

// Defense adds vulnerabilities, resistances or immunities. Damage types are
// canonical; anything else is kept verbatim in Custom.
type Defense struct {
	base
	Level  DefenseLevel
	Types  []string
	Custom string
	// Nonmagical covers bludgeoning, piercing and slashing from
	// nonmagical attacks.
	Nonmagical bool
}

// ConditionImmunity adds condition immunities.
type ConditionImmunity struct {
	base
	Conditions []string
}

// Languages adds languages. Unspoken languages are understood but not
// spoken.
type Languages struct {
	base
	Languages []string
	Unspoken  bool
}

// Telepathy adds telepathy to the languages line.
type Telepathy struct {
	base
	Range int
}

// Sense adds a special sense, e.g. darkvision 60 ft.
type Sense struct {
	base
	Sense       string
	Range       int
	BlindBeyond bool
}

// OverrideChallenge pins the challenge rating and skips its computation.
type OverrideChallenge struct {
	base
	Challenge rules.Challenge
}

// ExpectChallenge fails derivation unless the computed rating matches.
type ExpectChallenge struct {
	base
	Challenge rules.Challenge
}

// Expect fails derivation unless the CEL expression holds.
type Expect struct {
	base
	Expr string
}

// Damage is a dice expression with its damage type.
type Damage struct {
	Dice *dice.Expression
	Type string
}

// Weapon adds an attack with a weapon from the weapon table.
type Weapon struct {
	base
	Weapon rules.Weapon
	Name   string
	Magic  int
	// Multiattack is how many times the multiattack uses it; 0 means never.
	Multiattack int
	Plus        []Damage
	Rider       string
}

// AttackKind is the heading of an attack.
type AttackKind int

const (
	MeleeWeapon AttackKind = iota
	RangedWeapon
	MeleeOrRangedWeapon
	MeleeSpell
	RangedSpell
)

// Attack adds a custom attack, typically natural weapons.
type Attack struct {
	base
	Name string
	Kind AttackKind
	// Ability supplies the to-hit and damage modifier; nil picks Strength
	// for melee and Dexterity for ranged attacks.
	Ability     *rules.Ability
	Reach       int
	Range       int
	LongRange   int
	Target      string
	Magic       int
	Damage      Damage
	Plus        []Damage
	Rider       string
	Multiattack int
}

// Action adds an action with authored text.
type Action struct {
	base
	Name  string
	Text  string
	Limit *rules.UsageLimit
}

// SaveAction adds an action forcing a saving throw, such as a breath
// weapon.
type SaveAction struct {
	base
	Name string
	// Lead is the text before the saving throw sentence.
	Lead string
	// Target opens the saving throw sentence, "The target" by default.
	Target string
	Save   rules.Ability
	// Ability sets the DC as 8 + prof + its modifier. DC overrides it.
	Ability rules.Ability
	DC      int
	Damage  Damage
	Half    bool
	Rider   string
	Limit   *rules.UsageLimit
}

// Multiattack replaces the synthesized multiattack text.
type Multiattack struct {
	base
	Text string
}

// Reaction adds a reaction.
type Reaction struct {
	base
	Name  string
	Text  string
	Limit *rules.UsageLimit
}

// Parry adds the standard parry reaction.
type Parry struct {
	base
	Bonus int
}

// Feature adds a special trait. Text may be a single ${@template}.
type Feature struct {
	base
	Name  string
	Text  string
	Limit *rules.UsageLimit
}

// SpellList is a group of spells sharing a level or usage.
type SpellList struct {
	// Level is 0 for cantrips.
	Level  int
	Spells []string
}

// Spellcasting adds the class spellcasting trait.
type Spellcasting struct {
	base
	Ability      rules.Ability
	Level        int
	Class        string
	Style        rules.CasterStyle
	Lists        []SpellList
	BeforeCombat []string
	// SaveDC and Attack override the computed values when non-zero.
	SaveDC int
	Attack int
}

// InnateList is a group of innate spells. PerDay is 0 for at will.
type InnateList struct {
	PerDay int
	Spells []string
}

// InnateSpellcasting adds the innate spellcasting trait.
type InnateSpellcasting struct {
	base
	Ability    rules.Ability
	Lists      []InnateList
	Components string
	SaveDC     int
	Attack     int
}

// LegendaryAction is one option of a legendary action block. Action names
// an existing action whose use it describes when Text is empty.
type LegendaryAction struct {
	Name   string
	Text   string
	Cost   int
	Action string
}

// LegendaryActions sets the legendary action block.
type LegendaryActions struct {
	base
	Count   int
	Actions []LegendaryAction
}

// RemoveKind is the list a Remove directive deletes from.
type RemoveKind int

const (
	RemoveAction RemoveKind = iota
	RemoveReaction
	RemoveFeature
	RemoveLegendaryAction
	RemoveSaves
	RemoveSkills
	RemoveLanguages
	RemoveSpellcasting
)

// Remove deletes the first entry named Name, or the whole list when Name
// is empty.
type Remove struct {
	base
	Kind RemoveKind
	Name string
}

// OverrideDescription replaces the generated text of an action or feature.
type OverrideDescription struct {
	base
	Name string
	Text string
}

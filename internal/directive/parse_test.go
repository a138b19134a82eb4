package directive_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/rules"
)

const goblinSource = `[
	Monstorr(1, 0),
	Name("Goblin"),
	// size and type
	Small, Humanoid, Subtype("goblinoid"), NeutralEvil,
	Leather, Shield,
	HitDice(2),
	Walk(30),
	Str(8), Dex(14), Wis(8), Cha(8),
	Expertise([Stealth]),
	Darkvision(60),
	Languages([Common, Goblin]),
	OverrideChallenge("1/4"),
	Feature("Nimble Escape", "${Subj} can take the Disengage or Hide action as a bonus action on each of ${poss} turns."),
	Weapon(Scimitar, multiattack: 1),
	Weapon(Shortbow),
]`

func TestParseCreature(t *testing.T) {
	ds, err := directive.ParseCreature([]byte(goblinSource), "goblin.creature")
	require.NoError(t, err)
	require.Len(t, ds, 21)

	t.Run("Version Marker", func(t *testing.T) {
		v, ok := ds[0].(*directive.Monstorr)
		require.True(t, ok)
		assert.Equal(t, 1, v.Major)
		assert.Equal(t, 0, v.Minor)
	})

	t.Run("Bare Tags", func(t *testing.T) {
		assert.Equal(t, rules.Small, ds[2].(*directive.Size).Size)
		assert.Equal(t, "humanoid", ds[3].(*directive.Type).Type)
		assert.Equal(t, "neutral evil", ds[5].(*directive.Alignment).Alignment)
		assert.Equal(t, "leather armor", ds[6].(*directive.Armor).Armor.Description)
		assert.True(t, ds[7].(*directive.Shield).On)
	})

	t.Run("Positions", func(t *testing.T) {
		pos := ds[1].Position()
		assert.Equal(t, "goblin.creature", pos.Filename)
		assert.Equal(t, 3, pos.Line)
		assert.Equal(t, 2, pos.Column)
	})

	t.Run("Lists And Named Arguments", func(t *testing.T) {
		skills := ds[14].(*directive.Skills)
		assert.True(t, skills.Expertise)
		assert.Equal(t, "Stealth", skills.Skills[0].Name)

		langs := ds[16].(*directive.Languages)
		assert.Equal(t, []string{"Common", "Goblin"}, langs.Languages)

		w := ds[19].(*directive.Weapon)
		assert.Equal(t, "Scimitar", w.Weapon.Name)
		assert.Equal(t, 1, w.Multiattack)
	})

	t.Run("Challenge", func(t *testing.T) {
		assert.Equal(t, rules.ChallengeQuarter, ds[17].(*directive.OverrideChallenge).Challenge)
	})
}

func TestParseNested(t *testing.T) {
	src := `[Monstorr(1),
		Attack("Bite", Damage("2d6", Piercing), reach: 10, plus: [Damage("1d8", Fire)], multiattack: 2),
		SaveAction("Fire Breath", "${Subj} exhales fire in a 15-foot cone.", save: Dex, damage: Damage("7d6", Fire), limit: Recharge(5)),
		Action("Frightful Presence", "text", limit: RechargeAfterRest),
		Spellcasting(Int, 9, "wizard", [Cantrips(["fire bolt", "light"]), Spells(1, ["shield"])], before_combat: ["mage armor"]),
		InnateSpellcasting(Cha, [AtWill(["detect magic"]), PerDay(3, ["darkness"])]),
		LegendaryActions(3, [Legendary("Detect", "${Subj} makes a check."), UseAction("Bite", cost: 2)]),
		HitDie(d10),
		RemoveAction("Claw"),
	]`
	ds, err := directive.ParseCreature([]byte(src), "dragon.creature")
	require.NoError(t, err)

	bite := ds[1].(*directive.Attack)
	assert.Equal(t, directive.MeleeWeapon, bite.Kind)
	assert.Equal(t, 10, bite.Reach)
	assert.Equal(t, "2d6", bite.Damage.Dice.String())
	assert.Equal(t, "piercing", bite.Damage.Type)
	require.Len(t, bite.Plus, 1)
	assert.Equal(t, "fire", bite.Plus[0].Type)
	assert.Equal(t, "one target", bite.Target)

	breath := ds[2].(*directive.SaveAction)
	assert.Equal(t, rules.Dexterity, breath.Save)
	assert.Equal(t, rules.Constitution, breath.Ability)
	assert.True(t, breath.Half)
	assert.Equal(t, "Recharge 5–6", breath.Limit.String())

	assert.Equal(t, rules.RechargeAfterRest, ds[3].(*directive.Action).Limit.Kind)

	sc := ds[4].(*directive.Spellcasting)
	assert.Equal(t, rules.Intelligence, sc.Ability)
	require.Len(t, sc.Lists, 2)
	assert.Equal(t, 0, sc.Lists[0].Level)
	assert.Equal(t, []string{"shield"}, sc.Lists[1].Spells)
	assert.Equal(t, []string{"mage armor"}, sc.BeforeCombat)

	innate := ds[5].(*directive.InnateSpellcasting)
	assert.Equal(t, 3, innate.Lists[1].PerDay)
	assert.Equal(t, "requiring no material components", innate.Components)

	legendary := ds[6].(*directive.LegendaryActions)
	assert.Equal(t, 3, legendary.Count)
	assert.Equal(t, "Bite", legendary.Actions[1].Action)
	assert.Equal(t, 2, legendary.Actions[1].Cost)

	assert.Equal(t, 10, int(ds[7].(*directive.HitDie).Die))
	assert.Equal(t, directive.RemoveAction, ds[8].(*directive.Remove).Kind)
}

func TestParseYAML(t *testing.T) {
	src := `
- Monstorr: [1, 0]
- Name: Goblin
- Small
- Leather
- Shield
- HitDice: 2
- Dex: 14
- Languages: [Common, Goblin]
- Weapon: {weapon: Scimitar, multiattack: 1}
- Attack:
    name: Bite
    damage: {Damage: [1d4, Piercing]}
- Action:
    name: Shriek
    text: "${Subj} shrieks."
    limit: RechargeAfterRest
- Resistance: "piercing from magic weapons wielded by good creatures"
- OverrideChallenge: "1/4"
`
	ds, err := directive.ParseYAML([]byte(src), "goblin.yaml")
	require.NoError(t, err)
	require.Len(t, ds, 13)

	assert.Equal(t, "Goblin", ds[1].(*directive.Name).Name)
	assert.Equal(t, rules.Small, ds[2].(*directive.Size).Size)
	assert.Equal(t, 2, ds[5].(*directive.HitDice).Count)
	assert.Equal(t, 14, ds[6].(*directive.Score).Score)
	assert.Equal(t, []string{"Common", "Goblin"}, ds[7].(*directive.Languages).Languages)
	assert.Equal(t, 1, ds[8].(*directive.Weapon).Multiattack)
	assert.Equal(t, "1d4", ds[9].(*directive.Attack).Damage.Dice.String())
	assert.Equal(t, rules.RechargeAfterRest, ds[10].(*directive.Action).Limit.Kind)
	assert.Equal(t, "piercing from magic weapons wielded by good creatures", ds[11].(*directive.Defense).Custom)
	assert.Equal(t, rules.ChallengeQuarter, ds[12].(*directive.OverrideChallenge).Challenge)
	assert.Equal(t, 3, ds[1].Position().Line)
}

func TestParseByExtension(t *testing.T) {
	ds, err := directive.Parse([]byte("- Monstorr: [1, 0]\n- Name: Imp\n"), "imp.yml")
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	ds, err = directive.Parse([]byte(`[Monstorr(1, 0), Name("Imp")]`), "imp.creature")
	require.NoError(t, err)
	assert.Len(t, ds, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  error
		tag   string
		line  int
		usage bool
	}{
		{"Missing Version", `[Name("Goblin")]`, directive.ErrVersion, "Name", 1, false},
		{"Empty File", `[]`, directive.ErrVersion, "", 1, false},
		{"Unsupported Version", `[Monstorr(2, 0)]`, directive.ErrVersion, "Monstorr", 1, false},
		{"Late Version", "[Monstorr(1, 0),\nMonstorr(1, 0)]", directive.ErrVersion, "Monstorr", 2, false},
		{"Unknown Tag", "[Monstorr(1, 0),\n  Fangs(3)]", directive.ErrUnknownTag, "Fangs", 2, false},
		{"Too Many Arguments", "[Monstorr(1, 0),\nDex(14, 15)]", directive.ErrArguments, "Dex", 2, true},
		{"Missing Argument", "[Monstorr(1, 0),\nName()]", directive.ErrArguments, "Name", 2, true},
		{"Wrong Type", "[Monstorr(1, 0),\nDex(\"high\")]", directive.ErrArguments, "Dex", 2, true},
		{"Unknown Named Argument", "[Monstorr(1, 0),\nWeapon(Club, sharp: 1)]", directive.ErrArguments, "Weapon", 2, true},
		{"Unknown Weapon", "[Monstorr(1, 0),\nWeapon(Banana)]", directive.ErrArguments, "Weapon", 2, true},
		{"Bad Dice", "[Monstorr(1, 0),\nAttack(\"Bite\", Damage(\"2d7\", Piercing))]", directive.ErrArguments, "Damage", 2, true},
		{"Bad Limit", "[Monstorr(1, 0),\nAction(\"Roar\", \"text\", limit: Recharge(1))]", directive.ErrArguments, "Action", 2, true},
		{"Malformed", "[Monstorr(1, 0),\nName(\"x\"", directive.ErrArguments, "", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := directive.ParseCreature([]byte(tt.src), "bad.creature")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var se *directive.SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.tag, se.Tag)
			assert.Equal(t, tt.line, se.Pos.Line)
			assert.Equal(t, tt.usage, se.Usage != "")
		})
	}
}

func TestTags(t *testing.T) {
	tags := directive.Tags()
	assert.Contains(t, tags, "Weapon")
	assert.Contains(t, tags, "Gargantuan")
	assert.Contains(t, tags, "ChaoticEvil")
	assert.Equal(t, "Parry(bonus)", directive.Usage("Parry"))
	assert.Empty(t, directive.Usage("Nope"))
}

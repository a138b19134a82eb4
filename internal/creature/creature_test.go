package creature_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/user4815162342/monstorr/internal/creature"
	"github.com/user4815162342/monstorr/internal/creature/mock"
	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/interpolate"
	"github.com/user4815162342/monstorr/internal/rules"
	"github.com/user4815162342/monstorr/internal/structured"
)

const goblin = `[
	Monstorr(1, 0),
	Name("Goblin"),
	Small, Humanoid, Subtype("goblinoid"), NeutralEvil,
	Leather, Shield,
	HitDice(2),
	Str(8), Dex(14), Wis(8), Cha(8),
	Expertise([Stealth]),
	Darkvision(60),
	Languages([Common, Goblin]),
	Feature("Nimble Escape", "${Subj} can take the Disengage or Hide action as a bonus action on each of ${poss} turns."),
	Weapon(Scimitar),
	Weapon(Shortbow),
]`

type mapTemplates map[string]string

func (m mapTemplates) Template(ref string) (string, error) {
	raw, ok := m[ref]
	if !ok {
		return "", fmt.Errorf("no template named %q", ref)
	}
	return raw, nil
}

func run(t *testing.T, src string, opts ...creature.Option) (*creature.Creature, error) {
	t.Helper()
	ds, err := directive.ParseCreature([]byte(src), "test.creature")
	require.NoError(t, err)
	return creature.NewInterpreter(opts...).Run(ds)
}

// with appends directives to the goblin.
func with(extra ...string) string {
	return strings.TrimSuffix(goblin, "]") + strings.Join(extra, ",\n") + "]"
}

// scout is a bare creature with no armor.
func scout(extra ...string) string {
	return `[Monstorr(1, 0), Name("Scout"), HitDice(2),` + strings.Join(extra, ",\n") + "]"
}

func TestGoblin(t *testing.T) {
	c, err := run(t, goblin)
	require.NoError(t, err)
	d := c.Derived

	t.Run("Defense", func(t *testing.T) {
		assert.Equal(t, 15, d.ArmorClass)
		assert.Equal(t, "leather armor, shield", d.ArmorDescription)
		assert.Equal(t, 6, d.HitPoints)
		assert.Equal(t, "2d6", d.HitDice.String())
	})

	t.Run("Computed Challenge", func(t *testing.T) {
		assert.Equal(t, rules.ChallengeQuarter, d.Challenge)
		assert.Equal(t, rules.ChallengeEighth, d.Defensive)
		assert.Equal(t, rules.ChallengeQuarter, d.Offensive)
		assert.Equal(t, 2, d.Proficiency)
		assert.Equal(t, 5, d.DamagePerRound)
		assert.Equal(t, 4, d.AttackBonus)
	})

	t.Run("Skills And Senses", func(t *testing.T) {
		stealth, _ := rules.LookupSkill("Stealth")
		bonus, proficient := c.SkillBonus(stealth)
		assert.True(t, proficient)
		assert.Equal(t, 6, bonus)
		assert.Equal(t, 9, d.PassivePercept)
	})

	t.Run("Attacks", func(t *testing.T) {
		require.Len(t, c.Actions, 2)
		scimitar := c.Actions[0]
		require.NotNil(t, scimitar.Attack)
		assert.Equal(t, rules.Dexterity, scimitar.Attack.Ability)
		assert.Equal(t, 4, scimitar.Attack.ToHit)
		assert.Equal(t, "1d6 + 2", scimitar.Attack.Damage.String())
		assert.Equal(t, "*Melee Weapon Attack:* +4 to hit, reach 5 ft., one target. *Hit:* 5 (1d6 + 2) slashing damage.", scimitar.Raw)
		assert.Equal(t, "Melee Weapon Attack: +4 to hit, reach 5 ft., one target. Hit: 5 (1d6 + 2) slashing damage.", scimitar.Text.Plain())

		bow := c.Actions[1]
		assert.Equal(t, "*Ranged Weapon Attack:* +4 to hit, range 80/320 ft., one target. *Hit:* 5 (1d6 + 2) piercing damage.", bow.Raw)
		assert.Nil(t, d.Multiattack)
	})

	t.Run("Feature Text", func(t *testing.T) {
		require.Len(t, c.Features, 1)
		assert.Equal(t, "It can take the Disengage or Hide action as a bonus action on each of its turns.", c.Features[0].Text.Plain())
	})
}

func TestArmorClass(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		ac    int
		desc  string
	}{
		{"Dex 13 Unarmored", []string{"Dex(13)"}, 11, ""},
		{"Dex 17 Unarmored", []string{"Dex(17)"}, 13, ""},
		{"Natural Armor", []string{"Dex(12)", "NaturalArmor(3)"}, 14, "natural armor"},
		{"Medium Armor Caps Dex", []string{"Dex(18)", "Hide"}, 14, "hide armor"},
		{"Heavy Armor Ignores Dex", []string{"Dex(18)", "Plate", "Shield"}, 20, "plate, shield"},
		{"Last Armor Wins", []string{"ChainMail", "NaturalArmor(1)"}, 11, "natural armor"},
		{"Override", []string{"Dex(18)", `ArmorClass(17, "mage armor")`}, 17, "mage armor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := run(t, scout(tt.extra...))
			require.NoError(t, err)
			assert.Equal(t, tt.ac, c.Derived.ArmorClass)
			assert.Equal(t, tt.desc, c.Derived.ArmorDescription)
		})
	}
}

func TestHitPoints(t *testing.T) {
	t.Run("Bugbear", func(t *testing.T) {
		c, err := run(t, `[Monstorr(1, 0), Name("Bugbear"), HitDice(5), Con(13)]`)
		require.NoError(t, err)
		assert.Equal(t, 25, c.Derived.HitPoints)
		assert.Equal(t, "5d8 + 5", c.Derived.HitDice.String())
	})

	t.Run("Small Creature Never Below One", func(t *testing.T) {
		c, err := run(t, `[Monstorr(1, 0), Name("Rat"), Small, HitDice(6), Con(3)]`)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Derived.HitPoints)
		assert.Equal(t, "6d6 - 24", c.Derived.HitDice.String())
	})

	t.Run("Rounding Policy", func(t *testing.T) {
		src := `[Monstorr(1, 0), Name("Kobold"), Small, HitDice(6), Con(8)]`
		c, err := run(t, src)
		require.NoError(t, err)
		assert.Equal(t, 12, c.Derived.HitPoints)

		c, err = run(t, src, creature.WithHitPointRounding(rules.RoundTotal))
		require.NoError(t, err)
		assert.Equal(t, 15, c.Derived.HitPoints)
	})

	t.Run("Small Six Dice Round Each Die", func(t *testing.T) {
		c, err := run(t, `[Monstorr(1, 0), Name("Imp"), Small, HitDice(6), Con(10)]`)
		require.NoError(t, err)
		assert.Equal(t, 18, c.Derived.HitPoints)
		assert.Equal(t, "6d6", c.Derived.HitDice.String())
	})

	t.Run("Hit Die Follows Size Unless Set", func(t *testing.T) {
		c, err := run(t, `[Monstorr(1, 0), Name("Ogre"), HitDice(7), Large]`)
		require.NoError(t, err)
		assert.Equal(t, "7d10", c.Derived.HitDice.String())

		c, err = run(t, `[Monstorr(1, 0), Name("Ogre"), HitDie(d8), HitDice(7), Large]`)
		require.NoError(t, err)
		assert.Equal(t, "7d8", c.Derived.HitDice.String())
	})

	t.Run("Override", func(t *testing.T) {
		c, err := run(t, `[Monstorr(1, 0), Name("Ogre"), HitDice(7), HitPoints(100)]`)
		require.NoError(t, err)
		assert.Equal(t, 100, c.Derived.HitPoints)
	})
}

func TestChallengeOverride(t *testing.T) {
	brute := `[Monstorr(1, 0), Name("Brute"), HitDice(30), Con(20), Str(24),
		Attack("Smash", Damage("10d12", Bludgeoning)),
		%s]`

	c, err := run(t, fmt.Sprintf(brute, ""))
	require.NoError(t, err)
	computed := c.Derived.Challenge
	require.NotEqual(t, rules.ChallengeHalf, computed)

	c, err = run(t, fmt.Sprintf(brute, "OverrideHalf"))
	require.NoError(t, err)
	assert.Equal(t, rules.ChallengeHalf, c.Derived.Challenge)
	assert.Equal(t, 2, c.Derived.Proficiency)

	c, err = run(t, fmt.Sprintf(brute, "NoChallenge"))
	require.NoError(t, err)
	assert.Equal(t, rules.NoChallenge, c.Derived.Challenge)
	assert.Equal(t, "0 (0 XP)", c.Derived.Challenge.Display())
}

func TestProficiencyIteration(t *testing.T) {
	// Strong enough to leave the +2 bracket, so attack numbers must be
	// recomputed with the higher bonus.
	c, err := run(t, `[Monstorr(1, 0), Name("Giant"), Huge, HitDice(16), Con(20), Str(25),
		NaturalArmor(5),
		Weapon(Greatclub, multiattack: 2)]`)
	require.NoError(t, err)
	d := c.Derived
	assert.Equal(t, d.Challenge.ProficiencyBonus(), d.Proficiency)
	assert.Greater(t, d.Proficiency, 2)
	assert.Equal(t, 7+d.Proficiency, c.Actions[0].Attack.ToHit)
	assert.Equal(t, "3d8 + 7", c.Actions[0].Attack.Damage.String())
}

func TestMultiattack(t *testing.T) {
	t.Run("Single Weapon", func(t *testing.T) {
		c, err := run(t, with(`Weapon(Scimitar, name: "Scimitar", multiattack: 2)`))
		require.NoError(t, err)
		require.NotNil(t, c.Derived.Multiattack)
		assert.Equal(t, "The goblin makes two scimitar attacks.", c.Derived.Multiattack.Text.Plain())
	})

	t.Run("Mixed Attacks", func(t *testing.T) {
		c, err := run(t, `[Monstorr(1, 0), Name("Owlbear"), Large, HitDice(7), Str(20),
			Attack("Beak", Damage("1d10", Piercing), multiattack: 1),
			Attack("Claw", Damage("2d8", Slashing), multiattack: 2)]`)
		require.NoError(t, err)
		require.NotNil(t, c.Derived.Multiattack)
		assert.Equal(t, "The owlbear makes three attacks: one with its beak and two with its claws.", c.Derived.Multiattack.Text.Plain())
		assert.Equal(t, "2d8 + 5", c.Actions[1].Attack.Damage.String())
	})

	t.Run("Authored Text Wins", func(t *testing.T) {
		c, err := run(t, with(`Weapon(Scimitar, multiattack: 2)`, `Multiattack("${Name} attacks twice.")`))
		require.NoError(t, err)
		assert.Equal(t, "The goblin attacks twice.", c.Derived.Multiattack.Text.Plain())
	})
}

func TestAttacks(t *testing.T) {
	t.Run("Versatile And Extra Damage", func(t *testing.T) {
		c, err := run(t, scout(`Str(16)`, `Weapon(Longsword, magic: 1, plus: Damage("1d6", Fire), rider: "The target catches fire.")`))
		require.NoError(t, err)
		assert.Equal(t, "*Melee Weapon Attack:* +6 to hit, reach 5 ft., one target. *Hit:* 8 (1d8 + 4) slashing damage, "+
			"or 9 (1d10 + 4) slashing damage if used with two hands plus 3 (1d6) fire damage. The target catches fire.", c.Actions[0].Raw)
	})

	t.Run("Thrown Weapon", func(t *testing.T) {
		c, err := run(t, scout(`Weapon(Javelin)`))
		require.NoError(t, err)
		assert.Contains(t, c.Actions[0].Raw, "*Melee or Ranged Weapon Attack:* +2 to hit, reach 5 ft. or range 30/120 ft., one target.")
	})

	t.Run("Size Scales Weapon Dice", func(t *testing.T) {
		c, err := run(t, scout(`Huge`, `Weapon(Greatsword)`))
		require.NoError(t, err)
		assert.Equal(t, "6d6", c.Actions[0].Attack.Damage.String())
	})

	t.Run("Net", func(t *testing.T) {
		c, err := run(t, scout(`Weapon(Net)`))
		require.NoError(t, err)
		assert.Nil(t, c.Actions[0].Attack.Damage)
		assert.Contains(t, c.Actions[0].Raw, "one Large or smaller creature. *Hit:* The target is restrained.")
	})

	t.Run("Save Action", func(t *testing.T) {
		c, err := run(t, scout(`Con(17)`, `OverrideChallenge(2)`,
			`SaveAction("Fire Breath", "${Subj} exhales fire in a 15-foot cone.", save: Dex, damage: Damage("7d6", Fire), target: "Each creature in that area", limit: Recharge(5))`))
		require.NoError(t, err)
		breath := c.Actions[0]
		assert.Equal(t, "Fire Breath (Recharge 5–6)", breath.Title())
		require.NotNil(t, breath.Save)
		assert.Equal(t, 13, breath.Save.DC)
		assert.Equal(t, "It exhales fire in a 15-foot cone. Each creature in that area must make a DC 13 Dexterity saving throw, "+
			"taking 24 (7d6) fire damage on a failed save, or half as much damage on a successful one.", breath.Text.Plain())
	})

	t.Run("Override Description", func(t *testing.T) {
		c, err := run(t, with(`OverrideDescription("Scimitar", "${Subj} slashes wildly.")`))
		require.NoError(t, err)
		assert.Equal(t, "It slashes wildly.", c.Actions[0].Text.Plain())
		assert.NotNil(t, c.Actions[0].Attack)
	})
}

func TestSpellcasting(t *testing.T) {
	c, err := run(t, `[Monstorr(1, 0), Name("Mage"), HitDice(9), Int(17), OverrideChallenge(6),
		Spellcasting(Int, 9, "wizard", [Cantrips(["fire bolt", "light"]), Spells(1, ["shield", "mage armor"])], before_combat: ["mage armor"]),
		InnateSpellcasting(Cha, [AtWill(["detect magic"]), PerDay(1, ["fly", "misty step"])])]`)
	require.NoError(t, err)
	require.Len(t, c.Features, 2)

	spells := c.Features[0].Text
	require.Len(t, spells, 4)
	assert.Equal(t, "The mage is a 9th-level spellcaster. Its spellcasting ability is Intelligence "+
		"(spell save DC 14, +6 to hit with spell attacks). It has the following wizard spells prepared:", spells[0].Body[0].Content+plainRest(spells[0]))
	assert.Equal(t, structured.SubParagraph, spells[1].Kind)
	assert.Equal(t, "Cantrips (at will): fire bolt, light", plain(spells[1]))
	assert.Equal(t, "1st level (4 slots): shield, mage armor*", plain(spells[2]))
	assert.Equal(t, "*The mage casts these spells on itself before combat.", plain(spells[3]))

	innate := c.Features[1].Text
	assert.Equal(t, "The mage's innate spellcasting ability is Charisma (spell save DC 13). "+
		"It can innately cast the following spells, requiring no material components:", plain(innate[0]))
	assert.Equal(t, "1/day each: fly, misty step", plain(innate[2]))
}

func plain(b structured.Block) string { return structured.Text{b}.Plain() }

func plainRest(b structured.Block) string {
	return strings.TrimPrefix(plain(b), b.Body[0].Content)
}

func TestLegendaryActions(t *testing.T) {
	c, err := run(t, `[Monstorr(1, 0), Name("Dragon"), Huge, HitDice(17),
		Attack("Tail", Damage("2d8", Bludgeoning), reach: 15),
		LegendaryActions(3, [Legendary("Detect", "${Subj} makes a Wisdom (Perception) check."), UseAction("Tail", name: "Tail Attack", cost: 2)])]`)
	require.NoError(t, err)
	require.Len(t, c.LegendaryOptions, 2)
	assert.Contains(t, c.Derived.LegendaryIntro.Plain(), "The dragon can take 3 legendary actions")
	assert.Equal(t, "It makes a Wisdom (Perception) check.", c.LegendaryOptions[0].Text.Plain())
	assert.Equal(t, "Tail Attack (Costs 2 Actions)", c.LegendaryOptions[1].Title())
	assert.Equal(t, "The dragon makes a tail attack.", c.LegendaryOptions[1].Text.Plain())
}

func TestDirectiveOrder(t *testing.T) {
	c, err := run(t, with(
		`Medium`, `Dex(10)`,
		`Walk(25)`, `Fly(40, hover: true)`, `Fly(0)`,
		`Resistance([Fire])`, `Resistance([Fire, Cold])`,
		`RemoveAction("Shortbow")`,
		`Reaction("Dodge", "${Subj} dodges.")`, `Parry(2)`,
		`Pronouns("she", "her", "her", "herself")`,
	))
	require.NoError(t, err)
	assert.Equal(t, rules.Medium, c.Size)
	assert.Equal(t, []creature.Speed{{Mode: "walk", Feet: 25}}, c.Speeds)
	assert.Equal(t, []string{"fire", "cold"}, c.Resistances.Types)
	require.Len(t, c.Actions, 1)
	assert.Equal(t, "Scimitar", c.Actions[0].Name)
	assert.Equal(t, "+2 to hit", strings.Fields(c.Actions[0].Raw)[3]+" to hit")
	require.Len(t, c.Reactions, 2)
	assert.Equal(t, "She dodges.", c.Reactions[0].Text.Plain())
	assert.Equal(t, "The goblin adds 2 to her AC against one melee attack that would hit her. "+
		"To do so, she must see the attacker and be wielding a melee weapon.", c.Reactions[1].Text.Plain())
}

func TestTemplates(t *testing.T) {
	templates := mapTemplates{
		"pack_tactics": "${Subj} has advantage on an attack roll against a creature if at least one of ${poss} allies is within 5 feet of the creature.",
	}
	c, err := run(t, with(`Feature("Pack Tactics", "${@pack_tactics}")`), creature.WithTemplates(templates))
	require.NoError(t, err)
	assert.Equal(t, "It has advantage on an attack roll against a creature if at least one of its allies is within 5 feet of the creature.",
		c.Features[1].Text.Plain())
}

func TestExpectations(t *testing.T) {
	t.Run("Pass", func(t *testing.T) {
		_, err := run(t, with(`ExpectChallenge("1/4")`, `Expect("creature.armor_class == 15 && creature.dex == 2 && 'Scimitar' in creature.actions")`))
		require.NoError(t, err)
	})

	t.Run("Facts", func(t *testing.T) {
		c, err := run(t, goblin)
		require.NoError(t, err)
		facts := c.Facts()
		assert.Equal(t, 6, facts["hit_points"])
		assert.Equal(t, "1/4", facts["challenge"])
		assert.Equal(t, []string{"Stealth"}, facts["skills"])
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    error
		context string
	}{
		{"Missing Name", `[Monstorr(1, 0), HitDice(2)]`, creature.ErrMissingName, ""},
		{"No Hit Dice", `[Monstorr(1, 0), Name("Ghost")]`, creature.ErrNoHitDice, "Ghost"},
		{"Score Too High", with(`Str(31)`), creature.ErrAbilityOutOfRange, "Strength"},
		{"Score Too Low", with(`Dex(0)`), creature.ErrAbilityOutOfRange, "Dexterity"},
		{"Unknown Variable", with(`Feature("Bad", "${Subj} ${whatever}.")`), creature.ErrInterpolation, "Bad"},
		{"Unknown Template", with(`Feature("Bad", "${@missing}")`), creature.ErrInterpolation, "Bad"},
		{"Remove Missing Action", with(`RemoveAction("Claw")`), creature.ErrNotFound, "Claw"},
		{"Describe Missing Entry", with(`OverrideDescription("Claw", "text")`), creature.ErrNotFound, "Claw"},
		{"Legendary Uses Missing Action", with(`LegendaryActions(1, [UseAction("Claw")])`), creature.ErrNotFound, "Claw"},
		{"Include Without Resolver", with(`Include("orc")`), creature.ErrInclude, "orc"},
		{"Challenge Mismatch", with(`ExpectChallenge(5)`), creature.ErrExpectationFailed, "ExpectChallenge"},
		{"Expectation Fails", with(`Expect("creature.armor_class > 20")`), creature.ErrExpectationFailed, "creature.armor_class > 20"},
		{"Expectation Does Not Compile", with(`Expect("creature.armor_class >")`), creature.ErrInvalidValue, "creature.armor_class >"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := run(t, tt.src)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var ce *creature.CreatureError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.context, ce.Context)
		})
	}

	t.Run("Interpolation Cause Is Kept", func(t *testing.T) {
		_, err := run(t, with(`Feature("Bad", "${whatever}")`))
		assert.True(t, errors.Is(err, interpolate.ErrUnknownVariable))
	})
}

func TestIncludes(t *testing.T) {
	t.Run("Splice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock.NewMockResolver(ctrl)
		resolver.EXPECT().Resolve("goblin").Return(creature.Source{Name: "goblin.creature", Text: []byte(goblin)}, nil)

		c, err := run(t, `[Monstorr(1, 0), Include("goblin"), Name("Goblin Boss"), HitDice(6), Cha(10), RemoveAction("Shortbow")]`,
			creature.WithResolver(resolver))
		require.NoError(t, err)
		assert.Equal(t, "Goblin Boss", c.Name)
		assert.Equal(t, 15, c.Derived.ArmorClass)
		assert.Equal(t, 18, c.Derived.HitPoints)
		require.Len(t, c.Actions, 1)
	})

	t.Run("YAML Include", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock.NewMockResolver(ctrl)
		resolver.EXPECT().Resolve("base").Return(creature.Source{Name: "base.yaml", Text: []byte("- Monstorr: [1, 0]\n- Large\n- HitDice: 4\n")}, nil)

		c, err := run(t, `[Monstorr(1, 0), Name("Horse"), Include("base")]`, creature.WithResolver(resolver))
		require.NoError(t, err)
		assert.Equal(t, rules.Large, c.Size)
		assert.Equal(t, "4d10", c.Derived.HitDice.String())
	})

	t.Run("Cycle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock.NewMockResolver(ctrl)
		resolver.EXPECT().Resolve("a").Return(creature.Source{Name: "a.creature", Text: []byte(`[Monstorr(1, 0), Include("b")]`)}, nil)
		resolver.EXPECT().Resolve("b").Return(creature.Source{Name: "b.creature", Text: []byte(`[Monstorr(1, 0), Include("a")]`)}, nil)

		_, err := run(t, `[Monstorr(1, 0), Name("Loop"), Include("a")]`, creature.WithResolver(resolver))
		require.Error(t, err)
		assert.True(t, errors.Is(err, creature.ErrIncludeCycle))
		assert.Contains(t, err.Error(), "test.creature -> a.creature -> b.creature -> a.creature")
	})

	t.Run("Direct Self Include", func(t *testing.T) {
		tests := []struct {
			name  string
			setup func(r *mock.MockResolver)
			src   string
			chain string
		}{
			{
				name: "Root Includes Itself",
				setup: func(r *mock.MockResolver) {
					r.EXPECT().Resolve("test").Return(creature.Source{Name: "test.creature", Text: []byte(`[Monstorr(1, 0), Name("Loop")]`)}, nil)
				},
				src:   `[Monstorr(1, 0), Name("Loop"), Include("test")]`,
				chain: "test.creature -> test.creature",
			},
			{
				name: "Included File Includes Itself",
				setup: func(r *mock.MockResolver) {
					r.EXPECT().Resolve("self").Return(creature.Source{Name: "self.creature", Text: []byte(`[Monstorr(1, 0), Include("self")]`)}, nil).Times(2)
				},
				src:   `[Monstorr(1, 0), Name("Loop"), Include("self")]`,
				chain: "test.creature -> self.creature -> self.creature",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				resolver := mock.NewMockResolver(ctrl)
				tt.setup(resolver)

				_, err := run(t, tt.src, creature.WithResolver(resolver))
				require.ErrorIs(t, err, creature.ErrIncludeCycle)
				assert.Contains(t, err.Error(), tt.chain)
			})
		}
	})

	t.Run("Resolver Failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock.NewMockResolver(ctrl)
		resolver.EXPECT().Resolve("orc").Return(creature.Source{}, errors.New("no such creature"))

		_, err := run(t, with(`Include("orc")`), creature.WithResolver(resolver))
		assert.True(t, errors.Is(err, creature.ErrInclude))
		assert.Contains(t, err.Error(), "no such creature")
	})
}

func TestDeterminism(t *testing.T) {
	src := with(`Weapon(Scimitar, name: "Scimitar", multiattack: 2)`, `LegendaryActions(1, [UseAction("Shortbow")])`)
	first, err := run(t, src)
	require.NoError(t, err)
	second, err := run(t, src)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

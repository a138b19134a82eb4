package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user4815162342/monstorr/internal/dice"
)

func TestModifier(t *testing.T) {
	tests := []struct {
		score, want int
	}{
		{1, -5}, {7, -2}, {8, -1}, {9, -1}, {10, 0}, {11, 0}, {12, 1},
		{17, 3}, {20, 5}, {30, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Modifier(tt.score), "score %d", tt.score)
	}
	assert.Equal(t, "+0", Signed(0))
	assert.Equal(t, "-1", Signed(-1))
}

func TestParseAbility(t *testing.T) {
	a, err := ParseAbility("Dex")
	require.NoError(t, err)
	assert.Equal(t, Dexterity, a)
	a, err = ParseAbility("charisma")
	require.NoError(t, err)
	assert.Equal(t, "cha", a.Short())
	_, err = ParseAbility("luck")
	assert.Error(t, err)
}

func TestChallenge(t *testing.T) {
	t.Run("Parse And Display", func(t *testing.T) {
		tests := []struct {
			in, display string
			prof        int
		}{
			{"0", "0 (10 XP)", 2},
			{"1/8", "1/8 (25 XP)", 2},
			{"1/4", "1/4 (50 XP)", 2},
			{"1/2", "1/2 (100 XP)", 2},
			{"1", "1 (200 XP)", 2},
			{"4", "4 (1,100 XP)", 2},
			{"5", "5 (1,800 XP)", 3},
			{"9", "9 (5,000 XP)", 4},
			{"11", "11 (7,200 XP)", 4},
			{"17", "17 (18,000 XP)", 6},
			{"30", "30 (155,000 XP)", 9},
			{"none", "0 (0 XP)", 2},
		}
		for _, tt := range tests {
			t.Run(tt.in, func(t *testing.T) {
				c, err := ParseChallenge(tt.in)
				require.NoError(t, err)
				assert.Equal(t, tt.display, c.Display())
				assert.Equal(t, tt.prof, c.ProficiencyBonus())
			})
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, s := range []string{"31", "-1", "1/3", "x"} {
			_, err := ParseChallenge(s)
			assert.Error(t, err, s)
		}
	})

	t.Run("Value", func(t *testing.T) {
		assert.Equal(t, 0.25, ChallengeQuarter.Value())
		assert.Equal(t, 12.0, MustWhole(12).Value())
	})
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name     string
		def, off Challenge
		want     Challenge
	}{
		{"Equal", MustWhole(3), MustWhole(3), MustWhole(3)},
		{"Halves Round Up", MustWhole(1), MustWhole(2), MustWhole(2)},
		{"Exact Mean", MustWhole(2), MustWhole(6), MustWhole(4)},
		{"Fractions", ChallengeZero, ChallengeQuarter, ChallengeEighth},
		{"Nearest Fraction", ChallengeEighth, ChallengeHalf, ChallengeQuarter},
		{"Fraction And Whole", ChallengeHalf, MustWhole(1), MustWhole(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Average(tt.def, tt.off))
		})
	}
}

func TestDefensiveOffensive(t *testing.T) {
	t.Run("Goblin", func(t *testing.T) {
		// 7 hp at AC 15, 5 damage at +4.
		def := DefensiveChallenge(7, 15)
		off := OffensiveChallenge(5, 4, false)
		assert.Equal(t, ChallengeQuarter, def)
		assert.Equal(t, ChallengeQuarter, off)
		assert.Equal(t, ChallengeQuarter, Average(def, off))
	})

	t.Run("Armor Adjusts", func(t *testing.T) {
		assert.Equal(t, MustWhole(3), DefensiveChallenge(110, 13))
		assert.Equal(t, MustWhole(4), DefensiveChallenge(110, 15))
		assert.Equal(t, MustWhole(2), DefensiveChallenge(110, 11))
	})

	t.Run("Save DC", func(t *testing.T) {
		assert.Equal(t, MustWhole(3), OffensiveChallenge(24, 13, true))
		assert.Equal(t, MustWhole(4), OffensiveChallenge(24, 15, true))
	})

	t.Run("Clamped", func(t *testing.T) {
		assert.Equal(t, ChallengeZero, DefensiveChallenge(1, 1))
		assert.Equal(t, MaxChallenge, OffensiveChallenge(1000, 20, false))
	})

	t.Run("Multiplier", func(t *testing.T) {
		assert.Equal(t, 2.0, HitPointMultiplier(MustWhole(2), Resistant))
		assert.Equal(t, 1.5, HitPointMultiplier(MustWhole(8), Resistant))
		assert.Equal(t, 1.25, HitPointMultiplier(MustWhole(20), Immune))
		assert.Equal(t, 1.0, HitPointMultiplier(MustWhole(2), Ordinary))
	})
}

func TestHitPoints(t *testing.T) {
	t.Run("Total Rounding", func(t *testing.T) {
		hp, expr := HitPoints(2, dice.D6, 0, RoundTotal)
		assert.Equal(t, 7, hp)
		assert.Equal(t, "2d6", expr.String())

		hp, expr = HitPoints(5, dice.D8, 1, RoundTotal)
		assert.Equal(t, 27, hp)
		assert.Equal(t, "5d8 + 5", expr.String())
	})

	t.Run("Per Die Rounding", func(t *testing.T) {
		hp, _ := HitPoints(2, dice.D6, 0, RoundPerDie)
		assert.Equal(t, 6, hp)
		hp, _ = HitPoints(6, Small.HitDie(), -1, RoundPerDie)
		assert.Equal(t, 12, hp)
	})

	t.Run("Never Below One", func(t *testing.T) {
		hp, _ := HitPoints(1, dice.D4, -5, RoundTotal)
		assert.Equal(t, 1, hp)
	})

	tests := []struct {
		in   string
		want HitPointRounding
	}{
		{"", RoundPerDie},
		{"per-die", RoundPerDie},
		{"Total", RoundTotal},
	}
	for _, tt := range tests {
		r, err := ParseHitPointRounding(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, r)
	}
	var zero HitPointRounding
	assert.Equal(t, RoundPerDie, zero)

	_, err := ParseHitPointRounding("nearest")
	assert.Error(t, err)
}

func TestArmorAndWeapons(t *testing.T) {
	leather, err := LookupArmor("leather")
	require.NoError(t, err)
	assert.Equal(t, 13, leather.ArmorClass(2))

	plate, err := LookupArmor("Plate")
	require.NoError(t, err)
	assert.Equal(t, 18, plate.ArmorClass(3))

	hide, err := LookupArmor("hide armor")
	require.NoError(t, err)
	assert.Equal(t, 14, hide.ArmorClass(4))

	_, err = LookupArmor("mithral")
	assert.Error(t, err)

	bow, err := LookupWeapon("LightCrossbow")
	require.NoError(t, err)
	assert.True(t, bow.Ranged())
	assert.False(t, bow.Melee())

	sword, err := LookupWeapon("greatsword")
	require.NoError(t, err)
	assert.Equal(t, "4d6", sword.Damage(Large).String())

	longsword, err := LookupWeapon("Longsword")
	require.NoError(t, err)
	assert.Equal(t, "3d10", longsword.TwoHanded(Huge).String())

	fist, err := LookupWeapon("UnarmedStrike")
	require.NoError(t, err)
	assert.Equal(t, "1", fist.Damage(Medium).String())
}

func TestUsageLimit(t *testing.T) {
	tests := []struct {
		limit UsageLimit
		want  string
	}{
		{UsageLimit{Kind: Recharge, N: 5}, "Recharge 5–6"},
		{UsageLimit{Kind: Recharge, N: 6}, "Recharge 6"},
		{UsageLimit{Kind: PerDay, N: 3}, "3/Day"},
		{UsageLimit{Kind: PerTurn, N: 1}, "1/Turn"},
		{UsageLimit{Kind: RechargeAfterRest}, "Recharges after a Short or Long Rest"},
		{UsageLimit{Kind: AlternateFormOnly, Form: "Bear"}, "Bear Form Only"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.String())
			assert.NoError(t, tt.limit.Validate())
		})
	}
	assert.Error(t, UsageLimit{Kind: Recharge, N: 1}.Validate())
	assert.Error(t, UsageLimit{Kind: PerDay}.Validate())
}

func TestSpellSlots(t *testing.T) {
	assert.Equal(t, [9]int{4, 3, 3, 3, 1}, SpellSlots(FullCaster, 9))
	assert.Equal(t, [9]int{4, 3, 3, 3, 3, 2, 2, 1, 1}, SpellSlots(FullCaster, 20))
	assert.Equal(t, [9]int{}, SpellSlots(HalfCaster, 1))
	assert.Equal(t, [9]int{4, 3, 2}, SpellSlots(HalfCaster, 10))
	assert.Equal(t, [9]int{3}, SpellSlots(ThirdCaster, 4))
	assert.Equal(t, [9]int{0, 0, 2}, SpellSlots(Warlock, 5))

	count, level := WarlockSlots(11)
	assert.Equal(t, 3, count)
	assert.Equal(t, 5, level)
}

func TestVocabulary(t *testing.T) {
	s, err := LookupSkill("SleightOfHand")
	require.NoError(t, err)
	assert.Equal(t, Dexterity, s.Ability)

	_, err = ParseDamageType("Fire")
	assert.NoError(t, err)
	_, err = ParseCondition("bored")
	assert.Error(t, err)

	assert.Equal(t, "Deep Speech", Words("DeepSpeech"))
	assert.Equal(t, "neutral evil", Alignments["NeutralEvil"])

	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 21: "21st"} {
		assert.Equal(t, want, Ordinal(n))
	}

	size, err := ParseSize("huge")
	require.NoError(t, err)
	assert.Equal(t, dice.D12, size.HitDie())
}

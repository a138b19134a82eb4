package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectations(t *testing.T) {
	x, err := NewExpectations()
	require.NoError(t, err)

	goblin := map[string]any{
		"name":        "Goblin",
		"armor_class": 15,
		"hit_points":  7,
		"challenge":   "1/4",
		"dexterity":   14,
		"skills":      []string{"Stealth"},
	}

	t.Run("Basic Boolean Expression", func(t *testing.T) {
		ok, err := x.Check("creature.armor_class > 10", goblin)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Modifier Function", func(t *testing.T) {
		ok, err := x.Check("mod(creature.dexterity) == 2 && mod(8) == -1 && mod(11) == 0", goblin)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Challenge Function", func(t *testing.T) {
		ok, err := x.Check("cr(creature.challenge) == 0.25", goblin)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = x.Check("cr(creature.challenge) > cr('1/2')", goblin)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Dice Average", func(t *testing.T) {
		ok, err := x.Check("creature.hit_points == avg('2d6')", goblin)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("List Membership", func(t *testing.T) {
		ok, err := x.Check("'Stealth' in creature.skills", goblin)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Compile Error", func(t *testing.T) {
		_, err := x.Check("creature.armor_class >", goblin)
		assert.ErrorContains(t, err, "CEL compile error")
	})

	t.Run("Non Boolean Result", func(t *testing.T) {
		_, err := x.Check("1 + 2", goblin)
		assert.Error(t, err)
	})

	t.Run("Bad Dice", func(t *testing.T) {
		_, err := x.Check("avg('2d7') > 0", goblin)
		assert.ErrorContains(t, err, "CEL eval error")
	})
}

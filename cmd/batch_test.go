package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user4815162342/monstorr/internal/creature"
	"github.com/user4815162342/monstorr/internal/data"
	"github.com/user4815162342/monstorr/internal/dice"
)

func writeCreature(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCreatureFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeCreature(t, dir, "b.creature", "[]")
	a := writeCreature(t, dir, "nested/a.yaml", "[]")
	writeCreature(t, dir, "notes.txt", "ignored")
	c := writeCreature(t, dir, "c.YML", "[]")

	files, err := creatureFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{b, c, a}, files)

	_, err = creatureFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDeriveAll(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeCreature(t, dir, "bandit.creature", `[Monstorr(1, 0), Name("Bandit"), HitDice(2), Leather, Weapon(Scimitar)]`),
		writeCreature(t, dir, "ghost.creature", `[Monstorr(1, 0), Name("Ghost")]`),
		writeCreature(t, dir, "boss.yaml", "- Monstorr: [1, 0]\n- Include: goblin\n- Name: Goblin Captain\n- HitDice: 4\n"),
		filepath.Join(dir, "missing.creature"),
	}
	loader := data.NewLoader(nil, nil)
	opts := []creature.Option{creature.WithResolver(loader), creature.WithTemplates(loader)}

	var done atomic.Int32
	results, err := deriveAll(context.Background(), files, 2, opts, func() { done.Add(1) })
	require.NoError(t, err)
	require.Len(t, results, len(files))
	assert.Equal(t, int32(len(files)), done.Load())

	for i, r := range results {
		assert.Equal(t, files[i], r.Path)
	}

	t.Run("Derived", func(t *testing.T) {
		require.NoError(t, results[0].Err)
		assert.Equal(t, "Bandit", results[0].StatBlock.Name)
		require.NoError(t, results[2].Err)
		assert.Equal(t, "Goblin Captain", results[2].StatBlock.Name)
		assert.Equal(t, "15 (leather armor, shield)", results[2].StatBlock.ArmorClass)
	})

	t.Run("Failures Do Not Stop Others", func(t *testing.T) {
		assert.ErrorIs(t, results[1].Err, creature.ErrNoHitDice)
		assert.Nil(t, results[1].StatBlock)
		assert.ErrorIs(t, results[3].Err, os.ErrNotExist)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := deriveAll(ctx, files, 1, opts, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFormatRolls(t *testing.T) {
	assert.Equal(t, "[3, 5, 1]", formatRolls([]int{3, 5, 1}))
}

func TestRollErr(t *testing.T) {
	failed := errors.New("no entropy")
	tests := []struct {
		name   string
		roller dice.Roller
		want   error
	}{
		{"Toolkit Clean", &dice.ToolkitRoller{}, nil},
		{"Crypto Failed", &dice.CryptoRoller{Err: failed}, failed},
		{"Toolkit Failed", &dice.ToolkitRoller{Err: failed}, failed},
		{"Queue", &dice.QueueRoller{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rollErr(tt.roller))
		})
	}
}

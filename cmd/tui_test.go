package cmd

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/persistence"
	"github.com/user4815162342/monstorr/internal/statblock"
)

func blocks(names ...string) []*statblock.StatBlock {
	out := make([]*statblock.StatBlock, len(names))
	for i, n := range names {
		out[i] = &statblock.StatBlock{Name: n, Size: "Medium", Type: "humanoid", Challenge: "1/8 (25 XP)"}
	}
	return out
}

func TestViewerModel(t *testing.T) {
	m := newViewerModel(blocks("Bandit", "Guard", "Thug"))
	assert.Equal(t, "Initializing...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Contains(t, m.View(), "Bandit (1/3)")

	tests := []struct {
		name string
		key  tea.KeyMsg
		want int
	}{
		{"Right", tea.KeyMsg{Type: tea.KeyRight}, 1},
		{"Right Again", tea.KeyMsg{Type: tea.KeyRight}, 2},
		{"Wraps Forward", tea.KeyMsg{Type: tea.KeyRight}, 0},
		{"Wraps Back", tea.KeyMsg{Type: tea.KeyLeft}, 2},
		{"Vim Left", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Update(tt.key)
			assert.Equal(t, tt.want, m.current)
		})
	}
	assert.Contains(t, m.View(), "Guard (2/3)")

	t.Run("Picker", func(t *testing.T) {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		require.True(t, m.showPicker)
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.False(t, m.showPicker)
		assert.Equal(t, 2, m.current)
	})

	t.Run("Roll Prompt", func(t *testing.T) {
		m.roller = &dice.QueueRoller{Results: []int{4, 2}}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
		require.True(t, m.rolling)
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2d6+3")})
		assert.Equal(t, 2, m.current, "keys go to the prompt while rolling")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.False(t, m.rolling)
		assert.Equal(t, "2d6 + 3: 9 [4, 2]", m.status)
		assert.Contains(t, m.View(), "2d6 + 3: 9 [4, 2]")

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xyz")})
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.NotEmpty(t, m.status)
		assert.NotContains(t, m.status, "9 [4, 2]")
	})

	t.Run("Quit", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestWriteEntries(t *testing.T) {
	var buf bytes.Buffer
	bs := blocks("Bandit", "Guard")
	require.NoError(t, writeEntries(&buf, []persistence.Entry{
		{ID: "a1", StatBlock: bs[0]},
		{ID: "b2", StatBlock: bs[1]},
	}))
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Bandit")
	assert.Contains(t, out, "b2")
	assert.Less(t, strings.Index(out, "Bandit"), strings.Index(out, "Guard"))
}

package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/render"
	"github.com/user4815162342/monstorr/internal/statblock"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7A200D")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	pickerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#922610"))
)

// blockItem lists a stat block in the picker.
type blockItem struct {
	sb *statblock.StatBlock
}

func (b blockItem) Title() string       { return b.sb.Name }
func (b blockItem) Description() string { return "CR " + b.sb.Challenge }
func (b blockItem) FilterValue() string { return b.sb.Name }

// viewerModel pages through stat blocks. Left and right move between
// blocks, tab opens a picker and r prompts for a dice roll.
type viewerModel struct {
	blocks     []*statblock.StatBlock
	current    int
	viewport   viewport.Model
	picker     list.Model
	showPicker bool
	prompt     textinput.Model
	rolling    bool
	roller     dice.Roller
	status     string
	width      int
	height     int
}

func newViewerModel(blocks []*statblock.StatBlock) viewerModel {
	items := make([]list.Item, len(blocks))
	for i, sb := range blocks {
		items[i] = blockItem{sb: sb}
	}
	picker := list.New(items, list.NewDefaultDelegate(), 40, 20)
	picker.Title = "Creatures"
	picker.SetShowHelp(false)

	prompt := textinput.New()
	prompt.Prompt = "roll: "
	prompt.Placeholder = "2d6 + 3"
	prompt.CharLimit = 64

	return viewerModel{
		blocks:   blocks,
		viewport: viewport.New(80, 20),
		picker:   picker,
		prompt:   prompt,
		roller:   &dice.ToolkitRoller{},
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

// show re-renders the current block at the viewport width.
func (m *viewerModel) show(i int) {
	if len(m.blocks) == 0 {
		return
	}
	m.current = (i + len(m.blocks)) % len(m.blocks)
	m.viewport.SetContent(render.Terminal{Width: m.viewport.Width}.String(m.blocks[m.current]))
	m.viewport.GotoTop()
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		if m.viewport.Height < 4 {
			m.viewport.Height = 4
		}
		m.picker.SetSize(msg.Width-2, m.viewport.Height-2)
		m.show(m.current)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.showPicker {
			return m.updatePicker(msg)
		}
		if m.rolling {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.show(m.current - 1)
			return m, nil
		case "right", "l":
			m.show(m.current + 1)
			return m, nil
		case "tab":
			m.showPicker = true
			m.picker.Select(m.current)
			return m, nil
		case "r":
			m.rolling = true
			m.prompt.SetValue("")
			return m, m.prompt.Focus()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *viewerModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		if m.picker.FilterState() != list.Filtering {
			m.showPicker = false
			return m, nil
		}
	case tea.KeyEnter:
		if m.picker.FilterState() != list.Filtering {
			if item, ok := m.picker.SelectedItem().(blockItem); ok {
				for i, sb := range m.blocks {
					if sb == item.sb {
						m.show(i)
					}
				}
			}
			m.showPicker = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *viewerModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.rolling = false
		m.prompt.Blur()
		return m, nil
	case tea.KeyEnter:
		m.rolling = false
		m.prompt.Blur()
		m.status = m.roll(m.prompt.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// roll evaluates a dice expression for the status line.
func (m *viewerModel) roll(text string) string {
	expr, err := dice.Parse(text)
	if err != nil {
		return err.Error()
	}
	res := expr.Roll(m.roller)
	return fmt.Sprintf("%s: %d %s", expr, res.Total, formatRolls(res.RawRolls))
}

func (m *viewerModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.showPicker {
		return pickerStyle.Render(m.picker.View())
	}
	name := ""
	if len(m.blocks) > 0 {
		name = m.blocks[m.current].Name
	}
	title := titleStyle.Render(fmt.Sprintf(" %s (%d/%d) ", name, m.current+1, len(m.blocks)))
	footer := infoStyle.Render("(q to quit, left/right to page, tab to pick, r to roll, up/down to scroll)")
	switch {
	case m.rolling:
		footer = m.prompt.View()
	case m.status != "":
		footer = infoStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.viewport.View(),
		footer,
	)
}

// RunViewer shows the blocks full screen until the user quits.
func RunViewer(blocks []*statblock.StatBlock) error {
	m := newViewerModel(blocks)
	m.show(0)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

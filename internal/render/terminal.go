package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user4815162342/monstorr/internal/statblock"
	"github.com/user4815162342/monstorr/internal/structured"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7A200D"))

	headingStyle = lipgloss.NewStyle().
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7A200D"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7A200D")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#922610"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#922610"))

	abilityStyle = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Center)

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#922610")).
			Padding(0, 1)
)

// Terminal writes the block with colors and a border for a terminal of
// the given width.
type Terminal struct {
	Width int
}

func (t Terminal) Render(w io.Writer, s *statblock.StatBlock) error {
	_, err := io.WriteString(w, t.String(s)+"\n")
	return err
}

// String renders the block without writing it. The viewer uses it to fill
// its viewport.
func (t Terminal) String(s *statblock.StatBlock) string {
	width := t.Width
	if width < 40 {
		width = 40
	}
	inner := width - 4
	rule := ruleStyle.Render(strings.Repeat("─", inner))

	parts := []string{
		nameStyle.Render(s.Name),
		headingStyle.Render(s.Heading()),
		rule,
		terminalProperties(defense(s)),
		rule,
		terminalAbilities(s.Abilities),
		rule,
		terminalProperties(details(s)),
	}
	for _, sec := range sections(s) {
		if sec.Title != "" {
			parts = append(parts, "", sectionStyle.Width(inner).Render(sec.Title))
		}
		for _, f := range sec.Intro {
			parts = append(parts, "", terminalText(f.Text, ""))
		}
		for _, f := range sec.Features {
			lead := headingStyle.Bold(true).Render(f.Title + ".")
			parts = append(parts, "", terminalText(f.Text, lead))
		}
	}
	if s.Source != "" {
		parts = append(parts, "", headingStyle.Render("Source: "+s.Source))
	}
	return blockStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func terminalProperties(props []property) string {
	lines := make([]string, len(props))
	for i, p := range props {
		lines[i] = labelStyle.Render(p.Label) + " " + p.Value
	}
	return strings.Join(lines, "\n")
}

func terminalAbilities(abilities []statblock.Ability) string {
	cols := make([]string, len(abilities))
	for i, a := range abilities {
		cols[i] = abilityStyle.Render(labelStyle.Render(a.Name) + "\n" + a.Display)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func terminalText(t structured.Text, lead string) string {
	parts := make([]string, 0, len(t))
	for i, b := range t {
		var sb strings.Builder
		if i == 0 && lead != "" {
			sb.WriteString(lead + " ")
		}
		if b.Kind == structured.SubParagraph {
			sb.WriteString("  • ")
		}
		for _, sp := range b.Heading {
			sb.WriteString(terminalSpan(sp))
		}
		if len(b.Heading) > 0 && len(b.Body) > 0 {
			sb.WriteString(" ")
		}
		for _, sp := range b.Body {
			sb.WriteString(terminalSpan(sp))
		}
		parts = append(parts, sb.String())
	}
	if len(parts) == 0 {
		return lead
	}
	return strings.Join(parts, "\n\n")
}

func terminalSpan(sp structured.Span) string {
	if sp.Style == structured.Normal {
		return sp.Content
	}
	return lipgloss.NewStyle().
		Bold(sp.Style.IsBold()).
		Italic(sp.Style.IsItalic()).
		Render(sp.Content)
}

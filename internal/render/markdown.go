package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/user4815162342/monstorr/internal/statblock"
	"github.com/user4815162342/monstorr/internal/structured"
)

// Markdown writes the block in the layout of the SRD Markdown sources.
type Markdown struct{}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`")

func (Markdown) Render(w io.Writer, s *statblock.StatBlock) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "## %s\n\n*%s*\n\n---\n\n", s.Name, s.Heading())
	writeProperties(bw, defense(s))
	bw.WriteString("\n---\n\n")

	head, rule, row := "|", "|", "|"
	for _, a := range s.Abilities {
		head += " " + a.Name + " |"
		rule += ":---:|"
		row += " " + a.Display + " |"
	}
	fmt.Fprintf(bw, "%s\n%s\n%s\n\n---\n\n", head, rule, row)

	writeProperties(bw, details(s))
	for _, sec := range sections(s) {
		if sec.Title != "" {
			fmt.Fprintf(bw, "\n### %s\n", sec.Title)
		}
		for _, f := range sec.Intro {
			fmt.Fprintf(bw, "\n%s\n", markdownText(f.Text))
		}
		for _, f := range sec.Features {
			fmt.Fprintf(bw, "\n***%s.*** %s\n", markdownEscaper.Replace(f.Title), markdownText(f.Text))
		}
	}
	if s.Source != "" {
		fmt.Fprintf(bw, "\n*Source: %s*\n", markdownEscaper.Replace(s.Source))
	}
	return bw.Flush()
}

// writeProperties writes "**Label** value" lines joined by hard breaks.
func writeProperties(w *bufio.Writer, props []property) {
	for i, p := range props {
		fmt.Fprintf(w, "**%s** %s", p.Label, p.Value)
		if i < len(props)-1 {
			w.WriteString("  ")
		}
		w.WriteString("\n")
	}
}

func markdownText(t structured.Text) string {
	parts := make([]string, 0, len(t))
	for _, b := range t {
		var sb strings.Builder
		if b.Kind == structured.SubParagraph {
			sb.WriteString("- ")
		}
		for _, sp := range b.Heading {
			sb.WriteString(markdownSpan(sp))
		}
		if len(b.Heading) > 0 && len(b.Body) > 0 {
			sb.WriteString(" ")
		}
		for _, sp := range b.Body {
			sb.WriteString(markdownSpan(sp))
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

// markdownSpan wraps the span in emphasis markers, keeping surrounding
// whitespace outside them.
func markdownSpan(sp structured.Span) string {
	text := markdownEscaper.Replace(sp.Content)
	marker := ""
	switch sp.Style {
	case structured.Bold:
		marker = "**"
	case structured.Italic:
		marker = "*"
	case structured.BoldItalic:
		marker = "***"
	}
	core := strings.TrimSpace(text)
	if marker == "" || core == "" {
		return text
	}
	start := strings.Index(text, core)
	return text[:start] + marker + core + marker + text[start+len(core):]
}

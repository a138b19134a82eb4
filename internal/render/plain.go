package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/user4815162342/monstorr/internal/statblock"
	"github.com/user4815162342/monstorr/internal/structured"
)

// Plain writes unstyled text.
type Plain struct{}

func (Plain) Render(w io.Writer, s *statblock.StatBlock) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.ToUpper(s.Name))
	fmt.Fprintln(bw, s.Heading())
	fmt.Fprintln(bw)
	for _, p := range defense(s) {
		fmt.Fprintf(bw, "%s %s\n", p.Label, p.Value)
	}
	fmt.Fprintln(bw)

	var names, values strings.Builder
	for _, a := range s.Abilities {
		fmt.Fprintf(&names, "%-9s", a.Name)
		fmt.Fprintf(&values, "%-9s", a.Display)
	}
	fmt.Fprintln(bw, strings.TrimRight(names.String(), " "))
	fmt.Fprintln(bw, strings.TrimRight(values.String(), " "))
	fmt.Fprintln(bw)

	for _, p := range details(s) {
		fmt.Fprintf(bw, "%s %s\n", p.Label, p.Value)
	}
	for _, sec := range sections(s) {
		if sec.Title != "" {
			fmt.Fprintf(bw, "\n%s\n", strings.ToUpper(sec.Title))
		}
		for _, f := range sec.Intro {
			fmt.Fprintf(bw, "\n%s\n", plainText(f.Text, ""))
		}
		for _, f := range sec.Features {
			fmt.Fprintf(bw, "\n%s\n", plainText(f.Text, f.Title+". "))
		}
	}
	if s.Source != "" {
		fmt.Fprintf(bw, "\nSource: %s\n", s.Source)
	}
	return bw.Flush()
}

// plainText writes blocks separated by blank lines, indenting
// sub-paragraphs. lead prefixes the first block.
func plainText(t structured.Text, lead string) string {
	parts := make([]string, 0, len(t))
	for i, b := range t {
		line := structured.Text{b}.Plain()
		if i == 0 {
			line = lead + line
		}
		if b.Kind == structured.SubParagraph {
			line = "  " + line
		}
		parts = append(parts, line)
	}
	if len(parts) == 0 {
		return strings.TrimSuffix(lead, " ")
	}
	return strings.Join(parts, "\n\n")
}

package render

import (
	"encoding/json"
	"io"

	"github.com/user4815162342/monstorr/internal/statblock"
)

// JSON writes the stat block as a JSON document. Output is byte-identical
// for identical blocks.
type JSON struct {
	Indent string
}

func (j JSON) Render(w io.Writer, s *statblock.StatBlock) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(s)
}

package dice

import (
	toolkit "github.com/KirkDiggler/rpg-toolkit/dice"
)

// ToolkitRoller rolls through an rpg-toolkit roller. A nil Roller uses
// the toolkit's default.
type ToolkitRoller struct {
	Roller toolkit.Roller
	// Err holds the first error the toolkit returned. Rolls after an
	// error count as 1.
	Err error
}

func (t *ToolkitRoller) Roll(faces int) int {
	r := t.Roller
	if r == nil {
		r = toolkit.DefaultRoller
	}
	v, err := r.Roll(faces)
	if err != nil {
		if t.Err == nil {
			t.Err = err
		}
		return 1
	}
	return v
}

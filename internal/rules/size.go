package rules

import (
	"fmt"
	"strings"

	"github.com/user4815162342/monstorr/internal/dice"
)

// Size is a creature size category.
type Size int

const (
	Tiny Size = iota
	Small
	Medium
	Large
	Huge
	Gargantuan
)

var sizeNames = [...]string{"Tiny", "Small", "Medium", "Large", "Huge", "Gargantuan"}

// Sizes lists every size from smallest to largest.
var Sizes = []Size{Tiny, Small, Medium, Large, Huge, Gargantuan}

func (s Size) String() string {
	if s < Tiny || s > Gargantuan {
		return fmt.Sprintf("Size(%d)", int(s))
	}
	return sizeNames[s]
}

// HitDie is the hit die a creature of this size rolls.
func (s Size) HitDie() dice.Die {
	switch s {
	case Tiny:
		return dice.D4
	case Small:
		return dice.D6
	case Large:
		return dice.D10
	case Huge:
		return dice.D12
	case Gargantuan:
		return dice.D20
	}
	return dice.D8
}

// WeaponScale multiplies the damage dice of a manufactured weapon wielded
// by a creature of this size.
func (s Size) WeaponScale() int {
	switch s {
	case Large:
		return 2
	case Huge:
		return 3
	case Gargantuan:
		return 4
	}
	return 1
}

// ParseSize matches a size name case-insensitively.
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if strings.EqualFold(s, sizeNames[size]) {
			return size, nil
		}
	}
	return 0, fmt.Errorf("unknown size %q", s)
}

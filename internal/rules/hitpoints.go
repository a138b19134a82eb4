package rules

import (
	"fmt"
	"strings"

	"github.com/user4815162342/monstorr/internal/dice"
)

// HitPointRounding decides where the half point of a die's average is
// dropped when hit dice are summed.
type HitPointRounding int

const (
	// RoundPerDie rounds each die's average down before summing: 2d6 gives 6.
	RoundPerDie HitPointRounding = iota
	// RoundTotal sums the exact averages and rounds the total down, as the
	// published stat blocks do: 2d6 gives 7.
	RoundTotal
)

func (r HitPointRounding) String() string {
	if r == RoundTotal {
		return "total"
	}
	return "per-die"
}

// ParseHitPointRounding accepts "per-die" or "total". Empty means per-die.
func ParseHitPointRounding(s string) (HitPointRounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per-die", "perdie", "die":
		return RoundPerDie, nil
	case "total":
		return RoundTotal, nil
	}
	return RoundPerDie, fmt.Errorf("unknown hit point rounding %q", s)
}

// HitPoints computes count hit dice of the given die plus the Constitution
// modifier per die. The result is never below 1. The returned expression is
// the "2d6 + 2" formula shown in the stat block.
func HitPoints(count int, die dice.Die, conMod int, rounding HitPointRounding) (int, *dice.Expression) {
	expr := dice.New(count, die, count*conMod)
	var hp int
	if rounding == RoundTotal {
		hp = count*(int(die)+1)/2 + count*conMod
	} else {
		hp = count*((int(die)+1)/2) + count*conMod
	}
	if hp < 1 {
		hp = 1
	}
	return hp, expr
}

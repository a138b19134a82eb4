package rules

// CasterStyle selects the spell slot progression.
type CasterStyle int

const (
	FullCaster CasterStyle = iota
	HalfCaster
	ThirdCaster
	Warlock
)

// Slots per spell level (index 0 is 1st level) for caster levels 1..20.
var fullCasterSlots = [20][9]int{
	{2},
	{3},
	{4, 2},
	{4, 3},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 2},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 2},
	{4, 3, 3, 3, 2, 1},
	{4, 3, 3, 3, 2, 1},
	{4, 3, 3, 3, 2, 1, 1},
	{4, 3, 3, 3, 2, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 2, 1, 1},
}

var halfCasterSlots = [20][9]int{
	{},
	{2},
	{3},
	{3},
	{4, 2},
	{4, 2},
	{4, 3},
	{4, 3},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 1},
	{4, 3, 3, 2},
	{4, 3, 3, 2},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 2},
	{4, 3, 3, 3, 2},
}

var thirdCasterSlots = [20][9]int{
	{},
	{},
	{2},
	{3},
	{3},
	{3},
	{4, 2},
	{4, 2},
	{4, 2},
	{4, 3},
	{4, 3},
	{4, 3},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 1},
}

// SpellSlots returns the slots per spell level (index 0 is 1st level) for
// a caster of the given style and level. Warlocks use WarlockSlots.
func SpellSlots(style CasterStyle, level int) [9]int {
	if level < 1 {
		return [9]int{}
	}
	if level > 20 {
		level = 20
	}
	switch style {
	case HalfCaster:
		return halfCasterSlots[level-1]
	case ThirdCaster:
		return thirdCasterSlots[level-1]
	case Warlock:
		count, slotLevel := WarlockSlots(level)
		var out [9]int
		out[slotLevel-1] = count
		return out
	}
	return fullCasterSlots[level-1]
}

// WarlockSlots returns the number of pact slots and their level.
func WarlockSlots(level int) (count, slotLevel int) {
	switch {
	case level < 1:
		return 0, 1
	case level == 1:
		count = 1
	case level <= 10:
		count = 2
	case level <= 16:
		count = 3
	default:
		count = 4
	}
	slotLevel = (level + 1) / 2
	if slotLevel > 5 {
		slotLevel = 5
	}
	return count, slotLevel
}

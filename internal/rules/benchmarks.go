package rules

// Benchmark is one row of the monster statistics by challenge rating table.
type Benchmark struct {
	ArmorClass  int
	HPMin       int
	HPMax       int
	AttackBonus int
	DPRMin      int
	DPRMax      int
	SaveDC      int
}

// Benchmarks is indexed by Challenge, from 0 to 30.
var Benchmarks = [...]Benchmark{
	{13, 1, 6, 3, 0, 1, 13},
	{13, 7, 35, 3, 2, 3, 13},
	{13, 36, 49, 3, 4, 5, 13},
	{13, 50, 70, 3, 6, 8, 13},
	{13, 71, 85, 3, 9, 14, 13},
	{13, 86, 100, 3, 15, 20, 13},
	{13, 101, 115, 4, 21, 26, 13},
	{14, 116, 130, 5, 27, 32, 14},
	{15, 131, 145, 6, 33, 38, 15},
	{15, 146, 160, 6, 39, 44, 15},
	{15, 161, 175, 6, 45, 50, 15},
	{16, 176, 190, 7, 51, 56, 16},
	{16, 191, 205, 7, 57, 62, 16},
	{17, 206, 220, 7, 63, 68, 16},
	{17, 221, 235, 8, 69, 74, 17},
	{17, 236, 250, 8, 75, 80, 17},
	{18, 251, 265, 8, 81, 86, 18},
	{18, 266, 280, 8, 87, 92, 18},
	{18, 281, 295, 8, 93, 98, 18},
	{18, 296, 310, 9, 99, 104, 18},
	{19, 311, 325, 10, 105, 110, 19},
	{19, 326, 340, 10, 111, 116, 19},
	{19, 341, 355, 10, 117, 122, 19},
	{19, 356, 400, 10, 123, 140, 19},
	{19, 401, 445, 11, 141, 158, 20},
	{19, 446, 490, 11, 159, 176, 20},
	{19, 491, 535, 11, 177, 194, 20},
	{19, 536, 580, 12, 195, 212, 21},
	{19, 581, 625, 12, 213, 230, 21},
	{19, 626, 670, 12, 231, 248, 21},
	{19, 671, 715, 13, 249, 266, 22},
	{19, 716, 760, 13, 267, 284, 22},
	{19, 761, 805, 13, 285, 302, 22},
	{19, 806, 850, 14, 303, 320, 23},
}

// Benchmark returns the table row for c, clamped to the ladder.
func (c Challenge) Benchmark() Benchmark {
	return Benchmarks[clamp(c)]
}

// Resilience describes how much damage a creature shrugs off.
type Resilience int

const (
	Vulnerable Resilience = iota
	Ordinary
	Resistant
	Immune
)

// HitPointMultiplier scales hit points into effective hit points for a
// creature of the expected challenge rating. Vulnerability is not scaled.
func HitPointMultiplier(expected Challenge, r Resilience) float64 {
	whole := expected.Eighths() / 8
	switch r {
	case Resistant:
		switch {
		case whole <= 4:
			return 2
		case whole <= 10:
			return 1.5
		case whole <= 16:
			return 1.25
		}
		return 1
	case Immune:
		switch {
		case whole <= 10:
			return 2
		case whole <= 16:
			return 1.5
		}
		return 1.25
	}
	return 1
}

// DefensiveChallenge looks effective hit points up in the table, then
// moves one step for every two points the armor class differs from the
// row's expectation.
func DefensiveChallenge(effectiveHP, armorClass int) Challenge {
	c := rowFor(effectiveHP, func(b Benchmark) (int, int) { return b.HPMin, b.HPMax })
	return clamp(c + Challenge((armorClass-Benchmarks[c].ArmorClass)/2))
}

// OffensiveChallenge looks damage per round up in the table, then moves
// one step for every two points the attack bonus (or save DC, when
// usesDC is set) differs from the row's expectation.
func OffensiveChallenge(damagePerRound, bonus int, usesDC bool) Challenge {
	c := rowFor(damagePerRound, func(b Benchmark) (int, int) { return b.DPRMin, b.DPRMax })
	expected := Benchmarks[c].AttackBonus
	if usesDC {
		expected = Benchmarks[c].SaveDC
	}
	return clamp(c + Challenge((bonus-expected)/2))
}

// Average combines the defensive and offensive ratings: their mean is
// rounded to the nearest rating on the ladder, halves rounding up.
func Average(defensive, offensive Challenge) Challenge {
	// Work in sixteenths so that the mean of two eighths stays integral.
	target := defensive.Eighths() + offensive.Eighths()
	best := ChallengeZero
	bestDist := -1
	for c := ChallengeZero; c <= MaxChallenge; c++ {
		dist := 2*c.Eighths() - target
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist <= bestDist {
			best, bestDist = c, dist
		}
		if 2*c.Eighths() > target {
			break
		}
	}
	return best
}

func rowFor(v int, bounds func(Benchmark) (int, int)) Challenge {
	for i, b := range Benchmarks {
		if _, max := bounds(b); v <= max {
			return Challenge(i)
		}
	}
	return MaxChallenge
}

func clamp(c Challenge) Challenge {
	if c < ChallengeZero {
		return ChallengeZero
	}
	if c > MaxChallenge {
		return MaxChallenge
	}
	return c
}

package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Challenge is a position on the challenge rating ladder: 0, 1/8, 1/4,
// 1/2, then 1 through 30. NoChallenge marks a creature with no rating
// at all (a non-combatant).
type Challenge int

const (
	NoChallenge Challenge = -1

	ChallengeZero    Challenge = 0
	ChallengeEighth  Challenge = 1
	ChallengeQuarter Challenge = 2
	ChallengeHalf    Challenge = 3

	// MaxChallenge is challenge 30.
	MaxChallenge Challenge = 33
)

// Whole returns the challenge for a whole-number rating, 0 through 30.
func Whole(n int) (Challenge, error) {
	if n < 0 || n > 30 {
		return NoChallenge, fmt.Errorf("challenge rating %d outside 0..30", n)
	}
	if n == 0 {
		return ChallengeZero, nil
	}
	return Challenge(n + 3), nil
}

// MustWhole is Whole for constant input.
func MustWhole(n int) Challenge {
	c, err := Whole(n)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseChallenge accepts "0", "1/8", "1/4", "1/2", "1".."30" and "none".
func ParseChallenge(s string) (Challenge, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "none", "-":
		return NoChallenge, nil
	case "1/8":
		return ChallengeEighth, nil
	case "1/4":
		return ChallengeQuarter, nil
	case "1/2":
		return ChallengeHalf, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return NoChallenge, fmt.Errorf("invalid challenge rating %q", s)
	}
	return Whole(n)
}

// Valid reports whether c is on the ladder or is NoChallenge.
func (c Challenge) Valid() bool {
	return c >= NoChallenge && c <= MaxChallenge
}

func (c Challenge) String() string {
	switch {
	case c == NoChallenge:
		return "0"
	case c == ChallengeEighth:
		return "1/8"
	case c == ChallengeQuarter:
		return "1/4"
	case c == ChallengeHalf:
		return "1/2"
	case c <= ChallengeZero:
		return "0"
	}
	return strconv.Itoa(int(c) - 3)
}

// Eighths is the rating expressed in eighths: 1/8 is 1, 1 is 8.
func (c Challenge) Eighths() int {
	switch {
	case c <= ChallengeZero:
		return 0
	case c == ChallengeEighth:
		return 1
	case c == ChallengeQuarter:
		return 2
	case c == ChallengeHalf:
		return 4
	}
	return (int(c) - 3) * 8
}

// Value is the rating as a number, 0.25 for 1/4.
func (c Challenge) Value() float64 {
	return float64(c.Eighths()) / 8
}

var xpByChallenge = [...]int{
	10, 25, 50, 100, 200, 450, 700, 1100, 1800, 2300, 2900, 3900, 5000, 5900,
	7200, 8400, 10000, 11500, 13000, 15000, 18000, 20000, 22000, 25000, 33000,
	41000, 50000, 62000, 75000, 90000, 105000, 120000, 135000, 155000,
}

// XP is the experience award for the rating. NoChallenge awards nothing.
func (c Challenge) XP() int {
	if c < ChallengeZero || c > MaxChallenge {
		return 0
	}
	return xpByChallenge[c]
}

// Display is the stat block form, "1/4 (50 XP)".
func (c Challenge) Display() string {
	return fmt.Sprintf("%s (%s XP)", c, groupThousands(c.XP()))
}

// ProficiencyBonus follows the challenge rating progression: +2 up to
// challenge 4, then one more every four ratings.
func (c Challenge) ProficiencyBonus() int {
	whole := c.Eighths() / 8
	if whole < 5 {
		return 2
	}
	return 2 + (whole-1)/4
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

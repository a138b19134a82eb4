package statblock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user4815162342/monstorr/internal/creature"
	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/rules"
)

// Placeholder is the name Validate gives a creature that has none.
const Placeholder = "Unnamed Creature"

// PlaceholderHitDice is the hit dice count Validate gives a creature that
// has none.
const PlaceholderHitDice = 1

// challengeDrift is how many ladder steps an override may sit from the
// computed rating before Validate warns.
const challengeDrift = 3

// Derive runs the directives through a fresh interpreter and projects the
// result.
func Derive(ds []directive.Directive, opts ...creature.Option) (*StatBlock, error) {
	c, err := creature.NewInterpreter(opts...).Run(ds)
	if err != nil {
		return nil, err
	}
	return Project(c), nil
}

// DeriveSource parses a creature file and derives it.
func DeriveSource(src creature.Source, opts ...creature.Option) (*StatBlock, error) {
	ds, err := directive.Parse(src.Text, src.Name)
	if err != nil {
		return nil, err
	}
	return Derive(ds, opts...)
}

// Report is the outcome of Validate. Err is the first fatal error; when it
// is nil StatBlock is set.
type Report struct {
	StatBlock *StatBlock
	Warnings  []string
	Err       error
}

// OK reports whether the creature derived without a fatal error.
func (r *Report) OK() bool { return r.Err == nil }

// Validate derives the creature like Derive but collects findings instead
// of stopping at the first one. A missing name or missing hit dice is only
// a warning; a placeholder stands in for it.
func Validate(ds []directive.Directive, opts ...creature.Option) *Report {
	r := &Report{}
	in := creature.NewInterpreter(opts...)
	ds = append([]directive.Directive{}, ds...)
	c, err := in.Run(ds)
	for retry := true; retry && err != nil; {
		switch {
		case errors.Is(err, creature.ErrMissingName):
			r.warn("creature has no name; using %q", Placeholder)
			ds = append(ds, &directive.Name{Name: Placeholder})
		case errors.Is(err, creature.ErrNoHitDice):
			r.warn("creature has no hit dice; using %d", PlaceholderHitDice)
			ds = append(ds, &directive.HitDice{Count: PlaceholderHitDice})
		default:
			retry = false
			continue
		}
		c, err = in.Run(ds)
	}
	if err != nil {
		r.Err = err
		return r
	}

	for _, group := range []struct {
		label   string
		entries []*creature.Entry
	}{
		{"feature", c.Features},
		{"action", c.Actions},
		{"reaction", c.Reactions},
	} {
		seen := map[string]bool{}
		for _, e := range group.entries {
			key := strings.ToLower(e.Name)
			if seen[key] {
				r.warn("duplicate %s %q", group.label, e.Name)
			}
			seen[key] = true
		}
	}

	attacks, tagged := 0, 0
	for _, e := range c.Actions {
		if e.Attack == nil {
			continue
		}
		attacks++
		tagged += e.Attack.Multiattack
	}
	switch {
	case c.MultiattackText != "" && attacks == 0:
		r.warn("multiattack is described but the creature has no attacks")
	case c.MultiattackText == "" && tagged == 1:
		r.warn("only one attack is tagged for multiattack; no Multiattack action is written")
	}

	if o := c.ChallengeOverride; o != nil && *o != rules.NoChallenge {
		computed := rules.Average(c.Derived.Defensive, c.Derived.Offensive)
		if diff := int(*o) - int(computed); diff > challengeDrift || -diff > challengeDrift {
			r.warn("challenge %s is far from the computed %s", *o, computed)
		}
	}

	r.StatBlock = Project(c)
	return r
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

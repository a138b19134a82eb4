package creature

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/interpolate"
	"github.com/user4815162342/monstorr/internal/rules"
)

//go:generate mockgen -destination=mock/mock_resolver.go -package=mock github.com/user4815162342/monstorr/internal/creature Resolver

// Source is the raw text of an included creature file. Name is the
// canonical name of the file; its extension selects the syntax.
type Source struct {
	Name string
	Text []byte
}

// Resolver supplies the text behind an Include reference.
type Resolver interface {
	Resolve(ref string) (Source, error)
}

// Interpreter turns a directive list into a derived creature. It keeps no
// state between runs and may be shared by goroutines.
type Interpreter struct {
	resolver  Resolver
	templates interpolate.TemplateResolver
	logger    *zap.Logger
	rounding  rules.HitPointRounding
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithResolver sets the resolver used for Include directives.
func WithResolver(r Resolver) Option {
	return func(in *Interpreter) { in.resolver = r }
}

// WithTemplates sets the resolver used for ${@template} references.
func WithTemplates(t interpolate.TemplateResolver) Option {
	return func(in *Interpreter) { in.templates = t }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithHitPointRounding selects how the hit die average is rounded.
func WithHitPointRounding(r rules.HitPointRounding) Option {
	return func(in *Interpreter) { in.rounding = r }
}

// NewInterpreter creates an interpreter.
func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{logger: zap.NewNop(), rounding: rules.RoundPerDie}
	for _, opt := range opts {
		opt(in)
	}
	in.logger = in.logger.Named("creature")
	return in
}

// Run expands includes, applies every directive in order and derives the
// creature. The first error aborts the run.
func (in *Interpreter) Run(ds []directive.Directive) (*Creature, error) {
	root := "<input>"
	if len(ds) > 0 && ds[0].Position().Filename != "" {
		root = ds[0].Position().Filename
	}
	expanded, err := in.expand(ds, []string{root})
	if err != nil {
		return nil, err
	}

	c := newCreature()
	for _, d := range expanded {
		in.logger.Debug("Applying directive",
			zap.String("directive", fmt.Sprintf("%T", d)),
			zap.Stringer("pos", d.Position()))
		if err := in.apply(c, d); err != nil {
			return nil, err
		}
	}
	if err := in.derive(c); err != nil {
		return nil, err
	}
	if err := in.check(c); err != nil {
		return nil, err
	}
	in.logger.Debug("Creature derived",
		zap.String("name", c.Name),
		zap.Int("armor_class", c.Derived.ArmorClass),
		zap.Int("hit_points", c.Derived.HitPoints),
		zap.Stringer("challenge", c.Derived.Challenge))
	return c, nil
}

// expand splices included files in place. chain holds the files currently
// being expanded, outermost first.
func (in *Interpreter) expand(ds []directive.Directive, chain []string) ([]directive.Directive, error) {
	out := make([]directive.Directive, 0, len(ds))
	for _, d := range ds {
		inc, ok := d.(*directive.Include)
		if !ok {
			out = append(out, d)
			continue
		}
		if in.resolver == nil {
			return nil, fail(ErrInclude, inc.Ref, inc.Pos, errors.New("no resolver configured"))
		}
		src, err := in.resolver.Resolve(inc.Ref)
		if err != nil {
			return nil, fail(ErrInclude, inc.Ref, inc.Pos, err)
		}
		name := src.Name
		if name == "" {
			name = inc.Ref
		}
		for _, seen := range chain {
			if seen == name {
				cycle := strings.Join(append(append([]string{}, chain...), name), " -> ")
				return nil, fail(ErrIncludeCycle, cycle, inc.Pos, nil)
			}
		}
		in.logger.Debug("Including creature", zap.String("ref", inc.Ref), zap.String("file", name))

		included, err := directive.Parse(src.Text, name)
		if err != nil {
			return nil, fail(ErrInclude, inc.Ref, inc.Pos, err)
		}
		nested, err := in.expand(included, append(chain[:len(chain):len(chain)], name))
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

package interpolate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user4815162342/monstorr/internal/dice"
	"github.com/user4815162342/monstorr/internal/structured"
)

// Interpolate parses raw and evaluates it against subject in one step.
func Interpolate(subject *Subject, raw, label string, paragraphMode, capitalizeFirst bool) (structured.Text, error) {
	doc, err := Parse(raw, label, paragraphMode)
	if err != nil {
		return nil, err
	}
	return doc.Evaluate(subject, capitalizeFirst)
}

// Evaluate renders the document for subject. It holds no state between
// calls, so a Document may be evaluated concurrently.
func (d *Document) Evaluate(subject *Subject, capitalizeFirst bool) (structured.Text, error) {
	if subject == nil {
		subject = &Subject{Pronouns: It}
	}
	ev := &evaluator{subject: subject}
	var b structured.Builder
	if err := ev.run(d, &b, false, false, capitalizeFirst, []string{d.Label}); err != nil {
		return nil, err
	}
	return liftSubHeadings(b.Text()), nil
}

type evaluator struct {
	subject *Subject
}

// run appends the document to b. Bold and italic are the flags inherited
// from an enclosing document when d is a spliced template.
func (ev *evaluator) run(d *Document, b *structured.Builder, bold, italic, capitalizeFirst bool, chain []string) error {
	for _, t := range d.tokens {
		switch t.kind {
		case tokText:
			b.Write(structured.StyleOf(bold, italic), t.text)
		case tokBold:
			bold = !bold
		case tokItalic:
			italic = !italic
		case tokBreak:
			if t.sub {
				b.Break(structured.SubParagraph)
			} else {
				b.Break(structured.Paragraph)
			}
		case tokDirective:
			if ref, ok := t.expr.template(); ok {
				if err := ev.splice(d, t, ref, b, bold, italic, capitalizeFirst, chain); err != nil {
					return err
				}
				continue
			}
			v, err := ev.expr(d, t.offset+2, t.expr)
			if err != nil {
				return err
			}
			s := v.render()
			if capitalizeFirst && v.kind == kindString && b.Blank() {
				s = Capitalize(s)
			}
			b.Append(structured.StyleOf(bold, italic), s)
		}
	}
	return nil
}

func (ev *evaluator) splice(d *Document, t token, ref string, b *structured.Builder, bold, italic, capitalizeFirst bool, chain []string) error {
	label := "@" + ref
	for _, seen := range chain {
		if seen == label {
			return ev.fail(d, t.offset, ErrTemplateCycle, strings.Join(append(chain, label), " -> "), nil)
		}
	}
	if ev.subject.Templates == nil {
		return ev.fail(d, t.offset, ErrTemplate, fmt.Sprintf("no template source for %q", ref), nil)
	}
	raw, err := ev.subject.Templates.Template(ref)
	if err != nil {
		return ev.fail(d, t.offset, ErrTemplate, fmt.Sprintf("resolving %q", ref), err)
	}
	inner, err := Parse(raw, label, false)
	if err != nil {
		return err
	}
	return ev.run(inner, b, bold, italic, capitalizeFirst, append(chain[:len(chain):len(chain)], label))
}

func (ev *evaluator) fail(d *Document, offset int, kind error, detail string, cause error) error {
	return &InterpolationError{
		Kind:   kind,
		Label:  d.Label,
		Pos:    positionAt(d.Label, d.Source, offset),
		Detail: detail,
		Err:    cause,
	}
}

// expr evaluates a directive body. base is the source offset where the
// body starts; AST positions are relative to it.
func (ev *evaluator) expr(d *Document, base int, e *Expr) (value, error) {
	cond, err := ev.compare(d, base, e.Cond)
	if err != nil || e.Then == nil {
		return cond, err
	}
	// Both branches are evaluated so that errors in either always surface.
	then, err := ev.expr(d, base, e.Then)
	if err != nil {
		return value{}, err
	}
	otherwise, err := ev.expr(d, base, e.Else)
	if err != nil {
		return value{}, err
	}
	if cond.truthy() {
		return then, nil
	}
	return otherwise, nil
}

func (ev *evaluator) compare(d *Document, base int, c *Compare) (value, error) {
	left, err := ev.sum(d, base, c.Left)
	if err != nil || c.Op == "" {
		return left, err
	}
	right, err := ev.sum(d, base, c.Right)
	if err != nil {
		return value{}, err
	}
	result, err := compareValues(c.Op, left, right)
	if err != nil {
		return value{}, ev.fail(d, base+c.Pos.Offset, ErrType, err.Error(), nil)
	}
	return boolValue(result), nil
}

func (ev *evaluator) sum(d *Document, base int, s *Sum) (value, error) {
	acc, err := ev.product(d, base, s.Head)
	if err != nil {
		return value{}, err
	}
	for _, op := range s.Tail {
		right, err := ev.product(d, base, op.Operand)
		if err != nil {
			return value{}, err
		}
		if op.Op == "+" {
			acc, err = add(acc, right)
		} else {
			acc, err = subtract(acc, right)
		}
		if err != nil {
			return value{}, ev.fail(d, base+op.Pos.Offset, ErrType, err.Error(), nil)
		}
	}
	return acc, nil
}

func (ev *evaluator) product(d *Document, base int, p *Product) (value, error) {
	acc, err := ev.unary(d, base, p.Head)
	if err != nil {
		return value{}, err
	}
	for _, op := range p.Tail {
		right, err := ev.unary(d, base, op.Operand)
		if err != nil {
			return value{}, err
		}
		acc, err = multiply(op.Op, acc, right)
		if err != nil {
			return value{}, ev.fail(d, base+op.Pos.Offset, ErrType, err.Error(), nil)
		}
	}
	return acc, nil
}

func (ev *evaluator) unary(d *Document, base int, u *Unary) (value, error) {
	v, err := ev.primary(d, base, u.Operand)
	if err != nil || u.Op == "" {
		return v, err
	}
	switch {
	case v.kind == kindNumber && u.Op == "-":
		v.num = -v.num
	case v.kind == kindNumber:
		v.signed = true
	case v.kind == kindDice && u.Op == "-":
		v.dice = v.dice.Negate()
	case v.kind == kindDice:
	default:
		return value{}, ev.fail(d, base+u.Pos.Offset, ErrType, fmt.Sprintf("unary %q needs a number", u.Op), nil)
	}
	return v, nil
}

func (ev *evaluator) primary(d *Document, base int, p *Primary) (value, error) {
	switch {
	case p.Dice != nil:
		expr, err := dice.Parse(*p.Dice)
		if err != nil {
			return value{}, ev.fail(d, base+p.Pos.Offset, ErrDice, *p.Dice, err)
		}
		return diceValue(expr), nil
	case p.Int != nil:
		return numberValue(*p.Int), nil
	case p.String != nil:
		return stringValue(*p.String), nil
	case p.Template != nil:
		return value{}, ev.fail(d, base+p.Pos.Offset, ErrType, "a template can only be spliced on its own", nil)
	case p.Var != nil:
		v, ok, detail := ev.subject.lookup(*p.Var)
		if !ok {
			if detail == "" {
				detail = strconv.Quote(*p.Var)
			} else {
				detail = strconv.Quote(*p.Var) + " " + detail
			}
			return value{}, ev.fail(d, base+p.Pos.Offset, ErrUnknownVariable, detail, nil)
		}
		return v, nil
	case p.Sub != nil:
		return ev.expr(d, base, p.Sub)
	}
	return value{}, ev.fail(d, base+p.Pos.Offset, ErrSyntax, "empty expression", nil)
}

func liftSubHeadings(text structured.Text) structured.Text {
	for i, blk := range text {
		if blk.Kind != structured.SubParagraph || len(blk.Heading) > 0 || len(blk.Body) < 2 || !blk.Body[0].Style.IsBold() {
			continue
		}
		text[i].Heading = blk.Body[:1:1]
		rest := append([]structured.Span{}, blk.Body[1:]...)
		rest[0].Content = strings.TrimLeft(rest[0].Content, " ")
		if rest[0].Content == "" {
			rest = rest[1:]
		}
		text[i].Body = rest
	}
	return text
}

var errDivideByZero = errors.New("division by zero")

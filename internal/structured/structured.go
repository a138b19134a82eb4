// Package structured holds the block/span tree produced by interpolation.
// Markup never survives as literal characters: bold and italic are span
// styles, and paragraph boundaries are explicit blocks.
package structured

import (
	"fmt"
	"strings"
)

// Style is the markup applied to a span.
type Style int

const (
	Normal Style = iota
	Italic
	Bold
	BoldItalic
)

var styleNames = map[Style]string{
	Normal:     "normal",
	Italic:     "italic",
	Bold:       "bold",
	BoldItalic: "bold-italic",
}

// StyleOf combines the bold and italic flags into a Style.
func StyleOf(bold, italic bool) Style {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	}
	return Normal
}

// IsBold reports whether the style carries bold.
func (s Style) IsBold() bool { return s == Bold || s == BoldItalic }

// IsItalic reports whether the style carries italic.
func (s Style) IsItalic() bool { return s == Italic || s == BoldItalic }

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

func (s Style) MarshalText() ([]byte, error) {
	n, ok := styleNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown span style %d", int(s))
	}
	return []byte(n), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	for k, v := range styleNames {
		if v == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown span style %q", string(b))
}

// Span is a run of text in a single style.
type Span struct {
	Style   Style  `json:"style"`
	Content string `json:"content"`
}

// BlockKind distinguishes ordinary paragraphs from the hanging-indent
// sub-paragraphs used by legendary actions and spell lists.
type BlockKind int

const (
	Paragraph BlockKind = iota
	SubParagraph
)

func (k BlockKind) String() string {
	if k == SubParagraph {
		return "sub-paragraph"
	}
	return "paragraph"
}

func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BlockKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "paragraph":
		*k = Paragraph
	case "sub-paragraph":
		*k = SubParagraph
	default:
		return fmt.Errorf("unknown block kind %q", string(b))
	}
	return nil
}

// Block is one paragraph with an optional heading.
type Block struct {
	Kind    BlockKind `json:"block"`
	Heading []Span    `json:"heading,omitempty"`
	Body    []Span    `json:"body"`
}

// Text is an ordered list of blocks.
type Text []Block

// Plain flattens the text, dropping styles. Blocks are separated by a blank line.
func (t Text) Plain() string {
	parts := make([]string, 0, len(t))
	for _, b := range t {
		var sb strings.Builder
		for _, s := range b.Heading {
			sb.WriteString(s.Content)
		}
		if len(b.Heading) > 0 && len(b.Body) > 0 {
			sb.WriteString(" ")
		}
		for _, s := range b.Body {
			sb.WriteString(s.Content)
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

// WithHeading returns a copy of t whose first block carries heading.
// An empty text gains a block holding only the heading.
func (t Text) WithHeading(heading ...Span) Text {
	out := make(Text, len(t))
	copy(out, t)
	if len(out) == 0 {
		return Text{{Kind: Paragraph, Heading: heading, Body: []Span{}}}
	}
	out[0].Heading = append(append([]Span{}, heading...), out[0].Heading...)
	return out
}

// Builder accumulates spans into blocks, merging adjacent runs of equal style.
type Builder struct {
	blocks  Text
	current *Block
	sealed  bool // the last span came from Append and must stay whole
}

// Write appends text in the given style to the current block.
func (b *Builder) Write(style Style, text string) {
	if text == "" {
		return
	}
	if b.current == nil {
		b.Break(Paragraph)
	}
	body := b.current.Body
	if n := len(body); n > 0 && body[n-1].Style == style && !b.sealed {
		body[n-1].Content += text
		return
	}
	b.current.Body = append(body, Span{Style: style, Content: text})
	b.sealed = false
}

// Append adds text as a span of its own, never merged with its neighbours.
// Interpolated values use it so they stay addressable in the output.
func (b *Builder) Append(style Style, text string) {
	if text == "" {
		return
	}
	if b.current == nil {
		b.Break(Paragraph)
	}
	b.current.Body = append(b.current.Body, Span{Style: style, Content: text})
	b.sealed = true
}

// Break starts a new block of the given kind.
func (b *Builder) Break(kind BlockKind) {
	b.flush()
	b.current = &Block{Kind: kind, Body: []Span{}}
	b.sealed = false
}

// Blank reports whether nothing but whitespace has been written yet.
func (b *Builder) Blank() bool {
	if len(b.blocks) > 0 {
		return false
	}
	if b.current == nil {
		return true
	}
	for _, sp := range b.current.Body {
		if strings.TrimSpace(sp.Content) != "" {
			return false
		}
	}
	return true
}

// Text finishes the build. Whitespace at block edges is trimmed and empty
// blocks are dropped.
func (b *Builder) Text() Text {
	b.flush()
	if b.blocks == nil {
		return Text{}
	}
	return b.blocks
}

func (b *Builder) flush() {
	if b.current == nil {
		return
	}
	blk := *b.current
	b.current = nil
	blk.Body = trim(blk.Body)
	if len(blk.Body) == 0 && len(blk.Heading) == 0 {
		return
	}
	b.blocks = append(b.blocks, blk)
}

func trim(spans []Span) []Span {
	for len(spans) > 0 {
		spans[0].Content = strings.TrimLeft(spans[0].Content, " \t\n")
		if spans[0].Content != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		n := len(spans) - 1
		spans[n].Content = strings.TrimRight(spans[n].Content, " \t\n")
		if spans[n].Content != "" {
			break
		}
		spans = spans[:n]
	}
	return spans
}

package structured

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("merges adjacent spans of the same style", func(t *testing.T) {
		var b Builder
		b.Write(Normal, "The goblin ")
		b.Write(Normal, "hides. ")
		b.Write(Bold, "Nimble")
		b.Write(Normal, " escape.")
		got := b.Text()
		require.Len(t, got, 1)
		assert.Equal(t, []Span{
			{Normal, "The goblin hides. "},
			{Bold, "Nimble"},
			{Normal, " escape."},
		}, got[0].Body)
	})

	t.Run("drops empty blocks and trims edges", func(t *testing.T) {
		var b Builder
		b.Write(Normal, "  first ")
		b.Break(Paragraph)
		b.Write(Normal, "   ")
		b.Break(SubParagraph)
		b.Write(Italic, "second\n")
		got := b.Text()
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Body[0].Content)
		assert.Equal(t, SubParagraph, got[1].Kind)
		assert.Equal(t, Span{Italic, "second"}, got[1].Body[0])
	})

	t.Run("empty input yields empty text", func(t *testing.T) {
		var b Builder
		assert.True(t, b.Blank())
		assert.Equal(t, Text{}, b.Text())
	})

	t.Run("whitespace is still blank", func(t *testing.T) {
		var b Builder
		b.Write(Normal, "  \n ")
		assert.True(t, b.Blank())
		b.Append(Italic, "x")
		assert.False(t, b.Blank())
	})
}

func TestStyleOf(t *testing.T) {
	assert.Equal(t, Normal, StyleOf(false, false))
	assert.Equal(t, Bold, StyleOf(true, false))
	assert.Equal(t, Italic, StyleOf(false, true))
	assert.Equal(t, BoldItalic, StyleOf(true, true))
	assert.True(t, BoldItalic.IsBold())
	assert.True(t, BoldItalic.IsItalic())
	assert.False(t, Italic.IsBold())
}

func TestJSONForm(t *testing.T) {
	text := Text{
		{Kind: SubParagraph, Heading: []Span{{BoldItalic, "Claw."}}, Body: []Span{{Normal, "Rakes."}}},
	}
	out, err := json.Marshal(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"block":"sub-paragraph","heading":[{"style":"bold-italic","content":"Claw."}],"body":[{"style":"normal","content":"Rakes."}]}]`, string(out))

	var back Text
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, text, back)
}

func TestPlainAndHeading(t *testing.T) {
	text := Text{{Kind: Paragraph, Body: []Span{{Normal, "It bites."}}}}
	headed := text.WithHeading(Span{BoldItalic, "Bite."})
	assert.Equal(t, "Bite. It bites.", headed.Plain())
	assert.Empty(t, text[0].Heading, "WithHeading must not modify the receiver")

	assert.Equal(t, "Keen Smell.", Text{}.WithHeading(Span{BoldItalic, "Keen Smell."}).Plain())
}

package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenListOps(t *testing.T) {
	l := NewList(
		New(" ", Whitespace),
		New("10px", Dimension),
		New(" ", Whitespace),
	)

	l.Trim()
	require.Equal(t, 1, l.Size())
	require.Equal(t, "10px", l.Front().Text)

	l.Push(New("solid", Identifier))
	l.Unshift(New("border", Identifier))
	require.Equal(t, "border10pxsolid", l.String())

	front := l.Shift()
	require.Equal(t, "border", front.Text)
	require.Equal(t, 2, l.Size())
}

func TestTokenListCloneIsDeep(t *testing.T) {
	l := NewList(New("red", Identifier))
	clone := l.Clone()
	clone.Push(New("blue", Identifier))

	require.Equal(t, 1, l.Size())
	require.Equal(t, 2, clone.Size())
}

func TestTokenListEquals(t *testing.T) {
	a := NewList(New("10px", Dimension), New(" ", Whitespace), New("red", Identifier))
	b := NewList(New("10px", Dimension), New(" ", Whitespace), New("red", Identifier))
	c := NewList(New("10px", Dimension))

	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))

	// origin and position do not participate in equality
	src := b.Tokens()
	src[0].Origin = OriginSource
	src[0].Line = 42
	require.True(t, a.Equals(b))
}

func TestSelectorParts(t *testing.T) {
	sel := NewSelector(
		New(".", Other), New("a", Identifier),
		New(",", Other),
		New(" ", Whitespace),
		New(".", Other), New("b", Identifier),
	)

	parts := sel.Parts()
	require.Len(t, parts, 2)
	require.Equal(t, ".a", parts[0].String())
	require.Equal(t, ".b", parts[1].String())
}

func TestSelectorPartsNestedCommas(t *testing.T) {
	// :not(a, b) must not split
	sel := NewSelector(
		New(":", Colon), New("not", Identifier),
		New("(", ParenOpen),
		New("a", Identifier), New(",", Other), New("b", Identifier),
		New(")", ParenClosed),
	)

	require.Len(t, sel.Parts(), 1)
}

func TestSplitExtensions(t *testing.T) {
	// .a:extend(.b all)
	sel := NewSelector(
		New(".", Other), New("a", Identifier),
		New(":", Colon), New("extend", Identifier),
		New("(", ParenOpen),
		New(".", Other), New("b", Identifier),
		New(" ", Whitespace), New("all", Identifier),
		New(")", ParenClosed),
	)

	clean, clauses := sel.SplitExtensions()
	require.Equal(t, ".a", clean.String())
	require.Len(t, clauses, 1)
	require.True(t, clauses[0].All)
	require.Equal(t, ".b", clauses[0].Target.String())
}

func TestSplitExtensionsNoClause(t *testing.T) {
	sel := NewSelector(
		New(".", Other), New("a", Identifier),
		New(":", Colon), New("hover", Identifier),
	)

	clean, clauses := sel.SplitExtensions()
	require.Empty(t, clauses)
	require.Equal(t, ".a:hover", clean.String())
}

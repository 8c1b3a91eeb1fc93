package less

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc/css"
	"github.com/titpetric/lessc/tokens"
)

func cssRuleset(selector ...tokens.Token) *css.Ruleset {
	r := &css.Ruleset{Selector: tokens.NewSelector(selector...)}
	r.AddDeclaration(css.Declaration{Property: "color", Value: tokens.NewList(tokens.New("red", tokens.Identifier))})
	return r
}

func classSelector(name string) []tokens.Token {
	return []tokens.Token{tokens.New(".", tokens.Other), tokens.New(name, tokens.Identifier)}
}

func TestRewriteExtensionsAppends(t *testing.T) {
	sheet := &css.Stylesheet{}
	b := cssRuleset(classSelector("b")...)
	sheet.Add(b)

	ext := Extension{
		Target:      tokens.NewList(classSelector("b")...),
		Replacement: tokens.NewSelector(classSelector("a")...),
	}
	RewriteExtensions(sheet, []Extension{ext}, 0)

	parts := b.Selector.Parts()
	require.Len(t, parts, 2)
	require.Equal(t, ".b", parts[0].String())
	require.Equal(t, ".a", parts[1].String())
}

func TestRewriteExtensionsFixpoint(t *testing.T) {
	sheet := &css.Stylesheet{}
	b := cssRuleset(classSelector("b")...)
	sheet.Add(b)

	exts := []Extension{{
		Target:      tokens.NewList(classSelector("b")...),
		Replacement: tokens.NewSelector(classSelector("a")...),
	}}

	RewriteExtensions(sheet, exts, 0)
	after := b.Selector.String()

	// applying the same rules again must be a no-op
	RewriteExtensions(sheet, exts, 0)
	require.Equal(t, after, b.Selector.String())
}

func TestRewriteExtensionsTransitive(t *testing.T) {
	sheet := &css.Stylesheet{}
	b := cssRuleset(classSelector("b")...)
	sheet.Add(b)

	// .a extends .b, .c extends .a: .b ends up with all three
	exts := []Extension{
		{Target: tokens.NewList(classSelector("b")...), Replacement: tokens.NewSelector(classSelector("a")...)},
		{Target: tokens.NewList(classSelector("a")...), Replacement: tokens.NewSelector(classSelector("c")...)},
	}
	RewriteExtensions(sheet, exts, 0)

	parts := b.Selector.Parts()
	require.Len(t, parts, 3)
}

func TestRewriteExtensionsAllMode(t *testing.T) {
	sheet := &css.Stylesheet{}
	r := cssRuleset(
		tokens.New(".", tokens.Other), tokens.New("nav", tokens.Identifier),
		tokens.Space(),
		tokens.New(".", tokens.Other), tokens.New("b", tokens.Identifier),
	)
	sheet.Add(r)

	exts := []Extension{{
		Target:      tokens.NewList(classSelector("b")...),
		Replacement: tokens.NewSelector(classSelector("a")...),
		All:         true,
	}}
	RewriteExtensions(sheet, exts, 0)

	parts := r.Selector.Parts()
	require.Len(t, parts, 2)
	require.Equal(t, ".nav .a", normalizeSelector(parts[1]))
}

func TestRewriteExtensionsInsideMedia(t *testing.T) {
	sheet := &css.Stylesheet{}
	media := &css.MediaQuery{Selector: tokens.NewSelector(tokens.New("@media", tokens.AtKeyword))}
	b := cssRuleset(classSelector("b")...)
	media.Add(b)
	sheet.Add(media)

	exts := []Extension{{
		Target:      tokens.NewList(classSelector("b")...),
		Replacement: tokens.NewSelector(classSelector("a")...),
	}}
	RewriteExtensions(sheet, exts, 0)

	require.Len(t, b.Selector.Parts(), 2)
}

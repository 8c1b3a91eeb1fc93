package css

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc/tokens"
)

func class(name string) []tokens.Token {
	return []tokens.Token{tokens.New(".", tokens.Other), tokens.New(name, tokens.Identifier)}
}

func decl(property, value string) Declaration {
	return Declaration{
		Property: property,
		Value:    tokens.NewList(tokens.New(value, tokens.Identifier)),
	}
}

func render(t *testing.T, sheet *Stylesheet) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	sheet.Write(w)
	require.NoError(t, w.Err())
	return buf.String()
}

func TestWriterRuleset(t *testing.T) {
	sheet := &Stylesheet{}
	r := &Ruleset{Selector: tokens.NewSelector(class("a")...)}
	r.AddDeclaration(decl("color", "red"))
	r.AddDeclaration(Declaration{
		Property:  "width",
		Value:     tokens.NewList(tokens.New("10px", tokens.Dimension)),
		Important: true,
	})
	sheet.Add(r)

	expected := ".a {\n  color: red;\n  width: 10px !important;\n}\n"
	if diff := cmp.Diff(expected, render(t, sheet)); diff != "" {
		t.Error(diff)
	}
}

func TestWriterSelectorList(t *testing.T) {
	sel := tokens.NewSelector(class("b")...)
	sel.Push(tokens.New(",", tokens.Other))
	sel.PushList(tokens.NewList(class("a")...))

	sheet := &Stylesheet{}
	r := &Ruleset{Selector: sel}
	r.AddDeclaration(decl("color", "red"))
	sheet.Add(r)

	expected := ".b,\n.a {\n  color: red;\n}\n"
	if diff := cmp.Diff(expected, render(t, sheet)); diff != "" {
		t.Error(diff)
	}
}

func TestWriterSkipsEmptyRulesets(t *testing.T) {
	sheet := &Stylesheet{}
	sheet.Add(&Ruleset{Selector: tokens.NewSelector(class("empty")...)})

	require.Equal(t, "", render(t, sheet))
}

func TestWriterMediaQuery(t *testing.T) {
	media := &MediaQuery{Selector: tokens.NewSelector(
		tokens.New("@media", tokens.AtKeyword),
		tokens.Space(),
		tokens.New("screen", tokens.Identifier),
	)}
	r := &Ruleset{Selector: tokens.NewSelector(class("a")...)}
	r.AddDeclaration(decl("color", "red"))
	media.Add(r)

	sheet := &Stylesheet{}
	sheet.Add(media)

	expected := "@media screen {\n  .a {\n    color: red;\n  }\n}\n"
	if diff := cmp.Diff(expected, render(t, sheet)); diff != "" {
		t.Error(diff)
	}
}

func TestWriterEmptyMediaSkipped(t *testing.T) {
	media := &MediaQuery{Selector: tokens.NewSelector(tokens.New("@media", tokens.AtKeyword))}
	media.Add(&Ruleset{Selector: tokens.NewSelector(class("a")...)})

	sheet := &Stylesheet{}
	sheet.Add(media)

	require.Equal(t, "", render(t, sheet))
}

func TestWriterAtRuleAndComment(t *testing.T) {
	sheet := &Stylesheet{}
	sheet.Add(&AtRule{Keyword: "@import", Rule: tokens.NewList(tokens.New(`url("x.css")`, tokens.URL))})
	sheet.Add(&Comment{Text: "/* note */"})

	expected := "@import url(\"x.css\");\n/* note */\n"
	if diff := cmp.Diff(expected, render(t, sheet)); diff != "" {
		t.Error(diff)
	}
}

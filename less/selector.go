package less

import (
	"github.com/titpetric/lessc/tokens"
)

// Parameter is one mixin parameter: a named parameter with an optional
// default, or an anonymous literal pattern the call must match.
type Parameter struct {
	Name    string // with @ prefix; empty for pattern literals
	Default *tokens.TokenList
	Pattern *tokens.TokenList // set when Name is empty
}

// Selector is a ruleset selector with the mixin-definition extras parsed
// out: the parameter list, the rest parameter, the guard expression and any
// :extend clauses. Plain rulesets have only the Tokens part.
type Selector struct {
	Tokens *tokens.Selector // cleaned: no params, no guard, no :extend

	Parameters []Parameter
	Rest       string // name of the ... rest parameter, with @ prefix
	Guard      *tokens.TokenList
	Extends    []tokens.ExtendClause

	parametric bool
}

// ParseSelector splits a raw selector token list into its selector text,
// parameter list, guard and extend clauses.
//
// Shapes handled: ".name", ".name(params)", ".name(params) when (guard)",
// "a:hover", ".a:extend(.b)".
func ParseSelector(raw *tokens.Selector) *Selector {
	s := &Selector{}

	clean, guard := splitGuard(raw)
	s.Guard = guard

	clean, params, parametric := splitParameters(clean)
	s.parametric = parametric
	if parametric {
		s.Parameters, s.Rest = parseParameters(params)
	}

	s.Tokens, s.Extends = clean.SplitExtensions()
	return s
}

// IsParametric reports whether the definition takes an argument list.
func (s *Selector) IsParametric() bool {
	return s.parametric
}

// IsMixinDefinition reports whether the ruleset only exists to be called:
// it declares parameters or a guard.
func (s *Selector) IsMixinDefinition() bool {
	return s.parametric || s.Guard != nil
}

// MinArguments is the number of arguments a call must supply.
func (s *Selector) MinArguments() int {
	min := 0
	for _, p := range s.Parameters {
		if p.Name != "" && p.Default == nil {
			min++
		}
		if p.Name == "" {
			min++
		}
	}
	return min
}

// MaxArguments is the number of arguments a call may supply.
func (s *Selector) MaxArguments() int {
	if s.Rest != "" {
		return int(^uint(0) >> 1)
	}
	return len(s.Parameters)
}

// splitGuard cuts off a trailing "when <condition>" clause.
func splitGuard(raw *tokens.Selector) (*tokens.Selector, *tokens.TokenList) {
	items := raw.Tokens()
	for i, t := range items {
		if t.Is(tokens.Identifier, "when") {
			clean := tokens.NewSelector(items[:i]...)
			clean.Trim()
			guard := tokens.NewList(items[i+1:]...)
			guard.Trim()
			return clean, guard
		}
	}
	return raw, nil
}

// splitParameters cuts off a trailing (param list). The parens must close
// the selector; ".a:not(.b)" keeps its parens.
func splitParameters(raw *tokens.Selector) (*tokens.Selector, *tokens.TokenList, bool) {
	items := raw.Tokens()
	last := len(items) - 1
	for last >= 0 && items[last].IsWhitespace() {
		last--
	}
	if last < 0 || items[last].Kind != tokens.ParenClosed {
		return raw, nil, false
	}

	depth := 0
	open := -1
	for i := last; i >= 0; i-- {
		switch items[i].Kind {
		case tokens.ParenClosed:
			depth++
		case tokens.ParenOpen:
			depth--
			if depth == 0 {
				open = i
			}
		}
		if open >= 0 {
			break
		}
	}
	if open <= 0 {
		return raw, nil, false
	}

	// a pseudo-class before the parens means this is selector syntax,
	// not a parameter list
	before := open - 1
	for before >= 0 && items[before].IsWhitespace() {
		before--
	}
	if before >= 0 && items[before].Kind == tokens.Identifier {
		prev := before - 1
		if prev >= 0 && items[prev].Kind == tokens.Colon {
			return raw, nil, false
		}
	}

	clean := tokens.NewSelector(items[:open]...)
	clean.Trim()
	params := tokens.NewList(items[open+1 : last]...)
	params.Trim()
	return clean, params, true
}

// parseParameters splits a parameter list on commas and semicolons into
// named parameters, defaults, literal patterns, and the rest parameter.
func parseParameters(params *tokens.TokenList) ([]Parameter, string) {
	var out []Parameter
	rest := ""

	var current []tokens.Token
	depth := 0

	flush := func() {
		group := tokens.NewList(current...)
		group.Trim()
		current = current[:0]
		if group.Empty() {
			return
		}

		items := group.Tokens()

		// "..." alone or "@name..." marks the rest parameter
		if isEllipsis(items[len(items)-1:]) || endsWithEllipsis(items) {
			name := "@rest"
			if items[0].Kind == tokens.AtKeyword {
				name = items[0].Text
			}
			rest = name
			return
		}

		if items[0].Kind == tokens.AtKeyword {
			p := Parameter{Name: items[0].Text}
			remainder := tokens.NewList(items[1:]...)
			remainder.Ltrim()
			if !remainder.Empty() && remainder.Front().Kind == tokens.Colon {
				remainder.Shift()
				remainder.Trim()
				p.Default = remainder
			}
			out = append(out, p)
			return
		}

		out = append(out, Parameter{Pattern: group})
	}

	for _, t := range params.Tokens() {
		switch t.Kind {
		case tokens.ParenOpen, tokens.BracketOpen:
			depth++
		case tokens.ParenClosed, tokens.BracketClosed:
			depth--
		}
		if depth == 0 && (t.Text == "," || t.Text == ";") {
			flush()
			continue
		}
		current = append(current, t)
	}
	flush()

	return out, rest
}

func isEllipsis(items []tokens.Token) bool {
	return len(items) == 1 && items[0].Kind == tokens.Other && items[0].Text == "..."
}

func endsWithEllipsis(items []tokens.Token) bool {
	if len(items) < 2 {
		return false
	}
	last := items[len(items)-1]
	return items[0].Kind == tokens.AtKeyword && last.Kind == tokens.Other && last.Text == "..."
}

// JoinSelectors builds the Cartesian join of a prefix selector and a nested
// selector. & substitutes the prefix in place; otherwise the prefix is
// prepended with a descendant combinator.
func JoinSelectors(prefix, nested *tokens.Selector) *tokens.Selector {
	if prefix == nil || prefix.Empty() {
		return nested.CloneSelector()
	}

	out := &tokens.Selector{}
	first := true

	for _, prefixPart := range prefix.Parts() {
		for _, nestedPart := range nested.Parts() {
			if !first {
				out.Push(tokens.New(",", tokens.Other))
			}
			first = false
			appendJoined(out, prefixPart, nestedPart)
		}
	}
	return out
}

func appendJoined(out *tokens.Selector, prefixPart, nestedPart *tokens.TokenList) {
	hasAmp := false
	for _, t := range nestedPart.Tokens() {
		if t.Kind == tokens.Other && t.Text == "&" {
			hasAmp = true
			break
		}
	}

	if !hasAmp {
		out.PushList(prefixPart)
		out.Push(tokens.Space())
		out.PushList(nestedPart)
		return
	}

	for _, t := range nestedPart.Tokens() {
		if t.Kind == tokens.Other && t.Text == "&" {
			out.PushList(prefixPart)
			continue
		}
		out.Push(t)
	}
}

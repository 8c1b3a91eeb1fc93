package less

import (
	"github.com/titpetric/lessc/css"
	"github.com/titpetric/lessc/tokens"
)

// builtinAnd joins nested media queries, the same way the output joins
// "@media a" inside "@media b" into "@media b and a".
var builtinAnd = tokens.New("and", tokens.Identifier)

// Media is an @media block: the query selector and an anonymous body
// ruleset holding its statements and nested rules.
type Media struct {
	// Keyword is the at-rule this block came from, "@media" unless the
	// source used another block at-rule (@supports, @keyframes).
	Keyword string

	// Query holds the tokens after the keyword.
	Query *tokens.Selector

	// Body carries declarations and nested rulesets.
	Body *Ruleset
}

func (m *Media) body() {}

// Process materializes the media query at the root of the output. Nested
// media queries join their enclosing query with "and"; rulesets inside the
// body keep the enclosing selector prefix.
func (m *Media) Process(dst Destination, ctx *Context) error {
	query := m.Query.CloneSelector()
	ctx.Interpolate(&query.TokenList)

	joined := joinMediaQueries(dst.Media, query)

	keyword := m.Keyword
	if keyword == "" {
		keyword = "@media"
	}
	block := &css.MediaQuery{Selector: mediaSelector(keyword, joined)}
	dst.Root.Add(block)

	next := dst
	next.Container = block
	next.Media = joined
	next.Ruleset = nil

	// declarations directly inside the media block attach to the
	// enclosing selector
	if dst.Prefix != nil && !dst.Prefix.Empty() && len(m.Body.statements) > 0 {
		wrapper := &css.Ruleset{Selector: dst.Prefix.CloneSelector()}
		block.Add(wrapper)
		next.Ruleset = wrapper
	}

	// the body owns its variable scope
	if err := ctx.PushMixinCall(m.Body, nil, true); err != nil {
		return err
	}
	err := m.Body.processBody(next, ctx)
	ctx.PopMixinCall()
	return err
}

// joinMediaQueries appends a nested query to its enclosing one with the
// builtin "and".
func joinMediaQueries(enclosing, query *tokens.Selector) *tokens.Selector {
	if enclosing == nil || enclosing.Empty() {
		return query
	}
	out := enclosing.CloneSelector()
	out.Push(tokens.Space())
	out.Push(builtinAnd)
	out.Push(tokens.Space())
	out.PushList(&query.TokenList)
	return out
}

// mediaSelector prints the query with its at-keyword restored.
func mediaSelector(keyword string, query *tokens.Selector) *tokens.Selector {
	out := tokens.NewSelector(tokens.New(keyword, tokens.AtKeyword))
	if !query.Empty() {
		out.Push(tokens.Space())
		out.PushList(&query.TokenList)
	}
	return out
}

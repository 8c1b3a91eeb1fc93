package less

import (
	"github.com/titpetric/lessc/css"
	"github.com/titpetric/lessc/tokens"
)

// Comment is a passthrough block comment.
type Comment struct {
	Text string
}

func (c *Comment) body() {}

// AtRule is an uninterpreted at-rule carried through to the output:
// @charset, @import of a plain css file, and the like.
type AtRule struct {
	Keyword string
	Rule    *tokens.TokenList
}

// sheetItem is an ordered top-level item of a LESS stylesheet.
type sheetItem interface {
	sheet()
}

type sheetRuleset struct{ *Ruleset }
type sheetMedia struct{ *Media }
type sheetComment struct{ *Comment }
type sheetAtRule struct{ *AtRule }
type sheetMixin struct{ *Mixin }

func (sheetRuleset) sheet() {}
func (sheetMedia) sheet()   {}
func (sheetComment) sheet() {}
func (sheetAtRule) sheet()  {}
func (sheetMixin) sheet()   {}

// Stylesheet is the root of the LESS-side document: ordered top-level
// items plus the top-level variable block. It owns every nested ruleset
// and assigns their function identities.
type Stylesheet struct {
	items     []sheetItem
	variables *VariableMap

	rulesetSeq int
}

// NewStylesheet returns an empty stylesheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{variables: NewVariableMap()}
}

func (s *Stylesheet) newRuleset(sel *Selector) *Ruleset {
	s.rulesetSeq++
	return &Ruleset{
		id:         s.rulesetSeq,
		selector:   sel,
		variables:  NewVariableMap(),
		stylesheet: s,
	}
}

// AddRuleset appends a top-level ruleset.
func (s *Stylesheet) AddRuleset(sel *Selector) *Ruleset {
	r := s.newRuleset(sel)
	s.items = append(s.items, sheetRuleset{r})
	return r
}

// AddMedia appends a top-level media query. Its body ruleset carries the
// nested statements.
func (s *Stylesheet) AddMedia(m *Media) {
	s.items = append(s.items, sheetMedia{m})
}

// AddComment appends a passthrough comment.
func (s *Stylesheet) AddComment(text string) {
	s.items = append(s.items, sheetComment{&Comment{Text: text}})
}

// AddAtRule appends a passthrough at-rule.
func (s *Stylesheet) AddAtRule(a *AtRule) {
	s.items = append(s.items, sheetAtRule{a})
}

// AddMixinCall appends a top-level mixin call. Only the rulesets its body
// produces reach the output; stray declarations have no home at the root.
func (s *Stylesheet) AddMixinCall(m *Mixin) {
	s.items = append(s.items, sheetMixin{m})
}

// NewBodyRuleset builds a ruleset not listed at the top level, used for
// media query bodies. It still receives an identity and back reference.
func (s *Stylesheet) NewBodyRuleset() *Ruleset {
	return s.newRuleset(&Selector{Tokens: &tokens.Selector{}})
}

// PutVariable binds a top-level variable; the flag reports a rebind.
func (s *Stylesheet) PutVariable(name string, v *tokens.TokenList) bool {
	return s.variables.Put(name, v)
}

// Variable resolves a top-level variable.
func (s *Stylesheet) Variable(name string) *tokens.TokenList {
	return s.variables.Get(name)
}

// Rulesets returns the top-level rulesets in order.
func (s *Stylesheet) Rulesets() []*Ruleset {
	var out []*Ruleset
	for _, item := range s.items {
		if r, ok := item.(sheetRuleset); ok {
			out = append(out, r.Ruleset)
		}
	}
	return out
}

// GetFunctions collects definitions matching a mixin call at stylesheet
// scope.
func (s *Stylesheet) GetFunctions(out *[]Function, call *Mixin, ctx *Context) {
	segs := callSegments(call.Name)
	argc := len(call.Arguments) + call.Named.Len()

	for _, r := range s.Rulesets() {
		r.matchSegments(segs, argc, out)
	}
	appendClosureMatches(out, ctx.BaseClosures(), segs, argc)
}

// Process evaluates the whole document into a css stylesheet and applies
// the accumulated extensions.
func (s *Stylesheet) Process(out *css.Stylesheet, ctx *Context) error {
	dst := Destination{Root: out, Container: out}

	for _, item := range s.items {
		switch it := item.(type) {
		case sheetRuleset:
			if it.selector.IsMixinDefinition() || it.reference {
				continue
			}
			if err := it.Process(dst, ctx); err != nil {
				return err
			}
		case sheetMedia:
			if err := it.Process(dst, ctx); err != nil {
				return err
			}
		case sheetComment:
			out.Add(&css.Comment{Text: it.Text})
		case sheetAtRule:
			out.Add(&css.AtRule{Keyword: it.Keyword, Rule: it.Rule})
		case sheetMixin:
			root := s.NewBodyRuleset()
			if err := root.invokeMixin(it.Mixin, dst, ctx); err != nil {
				return err
			}
		}
	}

	RewriteExtensions(out, ctx.Extensions(), DefaultExtensionDepth)
	return nil
}

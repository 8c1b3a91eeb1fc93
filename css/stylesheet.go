// Package css holds the output data model: a plain CSS stylesheet built
// during evaluation, and the writer that renders it as text.
package css

import (
	"github.com/titpetric/lessc/tokens"
)

// Item is anything that can appear at stylesheet level.
type Item interface {
	// Empty items are skipped by the writer.
	Empty() bool
	Write(w *Writer)
}

// Stylesheet is the root of the output document.
type Stylesheet struct {
	Items []Item
}

// Add appends an item.
func (s *Stylesheet) Add(item Item) {
	s.Items = append(s.Items, item)
}

// Rulesets returns every ruleset in the sheet, including those nested
// inside media queries. The extension rewriter walks this.
func (s *Stylesheet) Rulesets() []*Ruleset {
	var out []*Ruleset
	for _, item := range s.Items {
		switch it := item.(type) {
		case *Ruleset:
			out = append(out, it)
		case *MediaQuery:
			for _, inner := range it.Items {
				if r, ok := inner.(*Ruleset); ok {
					out = append(out, r)
				}
			}
		}
	}
	return out
}

// Write renders the whole document through the writer.
func (s *Stylesheet) Write(w *Writer) {
	for _, item := range s.Items {
		if item.Empty() {
			continue
		}
		item.Write(w)
	}
}

// Declaration is one property: value pair.
type Declaration struct {
	Property  string
	Value     *tokens.TokenList
	Important bool
}

// Ruleset is a selector list with declarations.
type Ruleset struct {
	Selector     *tokens.Selector
	Declarations []Declaration
}

// AddDeclaration appends a declaration.
func (r *Ruleset) AddDeclaration(d Declaration) {
	r.Declarations = append(r.Declarations, d)
}

// Empty rulesets carry no declarations and are not emitted.
func (r *Ruleset) Empty() bool {
	return len(r.Declarations) == 0
}

func (r *Ruleset) Write(w *Writer) {
	w.RulesetStart(r.Selector)
	for _, d := range r.Declarations {
		w.Declaration(d.Property, d.Value, d.Important)
	}
	w.RulesetEnd()
}

// MediaQuery is an @media block holding nested items.
type MediaQuery struct {
	Selector *tokens.Selector
	Items    []Item
}

// Add appends a nested item.
func (m *MediaQuery) Add(item Item) {
	m.Items = append(m.Items, item)
}

func (m *MediaQuery) Empty() bool {
	for _, item := range m.Items {
		if !item.Empty() {
			return false
		}
	}
	return true
}

func (m *MediaQuery) Write(w *Writer) {
	w.MediaQueryStart(m.Selector)
	for _, item := range m.Items {
		if item.Empty() {
			continue
		}
		item.Write(w)
	}
	w.MediaQueryEnd()
}

// AtRule is a passthrough at-rule: @import of a css file, @charset, and
// any block-less rule the language does not interpret.
type AtRule struct {
	Keyword string
	Rule    *tokens.TokenList
}

func (a *AtRule) Empty() bool {
	return false
}

func (a *AtRule) Write(w *Writer) {
	w.AtRule(a.Keyword, a.Rule)
}

// Comment is a block comment carried through from the source.
type Comment struct {
	Text string
}

func (c *Comment) Empty() bool {
	return false
}

func (c *Comment) Write(w *Writer) {
	w.Comment(c.Text)
}

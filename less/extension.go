package less

import (
	"github.com/titpetric/lessc/css"
	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/tokens"
)

// DefaultExtensionDepth bounds the extend fixpoint iteration. Extensions
// are transitive, so rewriting repeats until nothing changes or the bound
// is hit.
const DefaultExtensionDepth = 32

// Extension is one accumulated :extend directive: selectors matching
// Target additionally get Replacement. Exact mode matches whole selector
// parts; All matches the target anywhere inside a part and substitutes it
// there.
type Extension struct {
	Target      *tokens.TokenList
	Replacement *tokens.Selector
	All         bool
}

// RewriteExtensions post-processes the output stylesheet, appending
// extender selectors wherever a target matches, to a fixpoint.
func RewriteExtensions(sheet *css.Stylesheet, extensions []Extension, maxDepth int) {
	if len(extensions) == 0 {
		return
	}
	if maxDepth <= 0 {
		maxDepth = DefaultExtensionDepth
	}

	for i := 0; i < maxDepth; i++ {
		changed := false
		for _, ruleset := range sheet.Rulesets() {
			for _, ext := range extensions {
				if extendSelector(ruleset.Selector, ext) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// extendSelector applies one extension to one selector, reporting whether
// it grew.
func extendSelector(selector *tokens.Selector, ext Extension) bool {
	target := normalizeSelector(ext.Target)
	if target == "" {
		return false
	}

	existing := map[string]bool{}
	for _, part := range selector.Parts() {
		existing[normalizeSelector(part)] = true
	}

	var additions []*tokens.TokenList

	for _, part := range selector.Parts() {
		partText := normalizeSelector(part)

		if partText == target {
			for _, replacement := range ext.Replacement.Parts() {
				if !existing[normalizeSelector(replacement)] {
					additions = append(additions, replacement.Clone())
					existing[normalizeSelector(replacement)] = true
				}
			}
			continue
		}

		if ext.All && strings.Contains(partText, target) {
			for _, replacement := range ext.Replacement.Parts() {
				rewritten := strings.ReplaceAll(partText, target, normalizeSelector(replacement))
				if !existing[rewritten] {
					additions = append(additions, tokens.NewList(tokens.New(rewritten, tokens.Identifier)))
					existing[rewritten] = true
				}
			}
		}
	}

	for _, addition := range additions {
		selector.Push(tokens.New(",", tokens.Other))
		selector.PushList(addition)
	}
	return len(additions) > 0
}

// normalizeSelector prints a selector part with whitespace runs collapsed
// to single spaces, the form selector parts are compared in.
func normalizeSelector(part *tokens.TokenList) string {
	var b strings.Builder
	lastSpace := false
	for _, t := range part.Tokens() {
		if t.IsWhitespace() {
			lastSpace = true
			continue
		}
		if lastSpace && b.Len() > 0 {
			b.WriteString(" ")
		}
		lastSpace = false
		b.WriteString(t.Text)
	}
	return b.String()
}

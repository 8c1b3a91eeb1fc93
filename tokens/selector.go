package tokens

// Selector is a TokenList with selector semantics: comma-separated parts and
// :extend(...) clauses.
type Selector struct {
	TokenList
}

// NewSelector builds a selector from the given tokens.
func NewSelector(toks ...Token) *Selector {
	s := &Selector{}
	s.items = append(s.items, toks...)
	return s
}

// SelectorFromList wraps a TokenList as a Selector, sharing no storage.
func SelectorFromList(l *TokenList) *Selector {
	s := &Selector{}
	s.items = append(s.items, l.items...)
	return s
}

// CloneSelector returns a deep copy.
func (s *Selector) CloneSelector() *Selector {
	return SelectorFromList(&s.TokenList)
}

// Parts splits the selector on top-level commas. Commas nested inside
// parentheses or brackets (:not(a, b), [attr="a,b"]) do not split.
func (s *Selector) Parts() []*TokenList {
	var parts []*TokenList
	current := &TokenList{}
	depth := 0

	for _, t := range s.items {
		switch t.Kind {
		case ParenOpen, BracketOpen:
			depth++
		case ParenClosed, BracketClosed:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && t.Kind == Other && t.Text == "," {
			current.Trim()
			if !current.Empty() {
				parts = append(parts, current)
			}
			current = &TokenList{}
			continue
		}
		current.Push(t)
	}
	current.Trim()
	if !current.Empty() {
		parts = append(parts, current)
	}
	return parts
}

// ExtendClause is one :extend(...) directive found on a selector.
type ExtendClause struct {
	Target *TokenList
	All    bool
}

// SplitExtensions returns the selector with every :extend(...) clause
// removed, plus the clauses themselves. A trailing "all" keyword inside the
// clause selects nested matching.
func (s *Selector) SplitExtensions() (*Selector, []ExtendClause) {
	clean := &Selector{}
	var clauses []ExtendClause

	for i := 0; i < len(s.items); i++ {
		t := s.items[i]
		if t.Kind == Colon && i+2 < len(s.items) &&
			s.items[i+1].Is(Identifier, "extend") &&
			s.items[i+2].Kind == ParenOpen {

			target := &TokenList{}
			depth := 1
			j := i + 3
			for ; j < len(s.items) && depth > 0; j++ {
				switch s.items[j].Kind {
				case ParenOpen:
					depth++
				case ParenClosed:
					depth--
					if depth == 0 {
						continue
					}
				}
				if depth > 0 {
					target.Push(s.items[j])
				}
			}

			target.Trim()
			all := false
			if !target.Empty() && target.Back().Is(Identifier, "all") {
				all = true
				target.items = target.items[:len(target.items)-1]
				target.Rtrim()
			}
			if !target.Empty() {
				clauses = append(clauses, ExtendClause{Target: target, All: all})
			}
			i = j - 1
			continue
		}
		clean.Push(t)
	}

	clean.Trim()
	return clean, clauses
}

// ContainsAmpersand reports whether the selector references its parent with &.
func (s *Selector) ContainsAmpersand() bool {
	for _, t := range s.items {
		if t.Kind == Other && t.Text == "&" {
			return true
		}
	}
	return false
}

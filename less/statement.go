package less

import (
	"github.com/titpetric/lessc/tokens"
)

// Statement is an unprocessed ruleset statement: a raw token sequence whose
// category (declaration or mixin call) is only decided at evaluation time,
// because a leading identifier may be either a property name or part of a
// mixin selector.
type Statement struct {
	Tokens *tokens.TokenList

	// PropertyEnd is the number of leading tokens forming a property
	// name followed by a colon. Zero means no property shape was seen
	// at parse time and the statement resolves as a mixin call.
	PropertyEnd int

	Line   int
	Column int
	Source string
}

// Property returns the property-name tokens.
func (s *Statement) Property() *tokens.TokenList {
	out := &tokens.TokenList{}
	for i := 0; i < s.PropertyEnd && i < s.Tokens.Size(); i++ {
		out.Push(s.Tokens.At(i))
	}
	out.Trim()
	return out
}

// Value returns a copy of the value tokens after the colon, with a trailing
// !important split off.
func (s *Statement) Value() (*tokens.TokenList, bool) {
	out := &tokens.TokenList{}
	i := s.PropertyEnd
	for i < s.Tokens.Size() && (s.Tokens.At(i).IsWhitespace() || s.Tokens.At(i).Kind == tokens.Colon) {
		i++
	}
	for ; i < s.Tokens.Size(); i++ {
		out.Push(s.Tokens.At(i))
	}
	out.Trim()
	return splitImportant(out)
}

// splitImportant removes a trailing "! important" and reports it.
func splitImportant(l *tokens.TokenList) (*tokens.TokenList, bool) {
	items := l.Tokens()
	last := len(items) - 1
	for last >= 0 && items[last].IsWhitespace() {
		last--
	}
	if last < 1 || !items[last].Is(tokens.Identifier, "important") {
		return l, false
	}
	bang := last - 1
	for bang >= 0 && items[bang].IsWhitespace() {
		bang--
	}
	if bang < 0 || items[bang].Text != "!" {
		return l, false
	}
	out := tokens.NewList(items[:bang]...)
	out.Trim()
	return out, true
}

// Mixin is a parsed mixin call: the selector path naming the definition and
// the raw argument groups, to be evaluated in the caller's scope.
type Mixin struct {
	Name      *tokens.TokenList
	Arguments []*tokens.TokenList
	Named     *VariableMap
	Important bool

	Line   int
	Column int
	Source string
}

// ParseMixin reads a mixin call out of statement tokens:
// ".name", ".ns .name(args)", ".name(args) !important".
func ParseMixin(list *tokens.TokenList, s *Statement) *Mixin {
	m := &Mixin{
		Name:  &tokens.TokenList{},
		Named: NewVariableMap(),
	}
	if s != nil {
		m.Line, m.Column, m.Source = s.Line, s.Column, s.Source
	}

	work := list.Clone()
	work.Trim()

	// name runs until the argument parens
	for !work.Empty() && work.Front().Kind != tokens.ParenOpen {
		m.Name.Push(work.Shift())
	}
	m.Name.Rtrim()

	if !work.Empty() && work.Front().Kind == tokens.ParenOpen {
		work.Shift()
		args := collectArguments(work)
		for _, arg := range args {
			if name, value, ok := namedArgument(arg); ok {
				m.Named.Put(name, value)
				continue
			}
			m.Arguments = append(m.Arguments, arg)
		}
	}

	work.Trim()
	if trimmed, important := splitImportant(work); important {
		_ = trimmed
		m.Important = true
	}

	return m
}

// collectArguments splits the argument tokens up to the closing paren.
// When any top-level semicolon is present it is the separator and commas
// belong to the values.
func collectArguments(l *tokens.TokenList) []*tokens.TokenList {
	var groups []*tokens.TokenList
	current := &tokens.TokenList{}
	depth := 0

	semicolons := false
	scan := 0
	for _, t := range l.Tokens() {
		switch t.Kind {
		case tokens.ParenOpen, tokens.BracketOpen:
			scan++
		case tokens.ParenClosed, tokens.BracketClosed:
			scan--
		}
		if scan < 0 {
			break
		}
		if t.Kind == tokens.Delimiter && scan == 0 {
			semicolons = true
			break
		}
	}

	flush := func() {
		current.Trim()
		if !current.Empty() {
			groups = append(groups, current)
		}
		current = &tokens.TokenList{}
	}

	for !l.Empty() {
		t := l.Front()
		switch t.Kind {
		case tokens.ParenOpen, tokens.BracketOpen:
			depth++
		case tokens.ParenClosed:
			if depth == 0 {
				l.Shift()
				flush()
				return groups
			}
			depth--
		case tokens.BracketClosed:
			depth--
		}

		separator := false
		if depth == 0 {
			if semicolons {
				separator = t.Kind == tokens.Delimiter
			} else {
				separator = t.Text == "," || t.Kind == tokens.Delimiter
			}
		}
		if separator {
			l.Shift()
			flush()
			continue
		}
		current.Push(l.Shift())
	}

	flush()
	return groups
}

// namedArgument recognizes "@name: value" argument groups.
func namedArgument(arg *tokens.TokenList) (string, *tokens.TokenList, bool) {
	items := arg.Tokens()
	if len(items) < 2 || items[0].Kind != tokens.AtKeyword {
		return "", nil, false
	}
	i := 1
	for i < len(items) && items[i].IsWhitespace() {
		i++
	}
	if i >= len(items) || items[i].Kind != tokens.Colon {
		return "", nil, false
	}
	value := tokens.NewList(items[i+1:]...)
	value.Trim()
	return items[0].Text, value, true
}

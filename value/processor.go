package value

import (
	"sync"

	"github.com/titpetric/lessc/evaluator"
	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
)

// Processor evaluates value expressions over token lists: constants,
// variables, arithmetic, function calls, escapes, negation, interpolation
// and deep variables. It is stateless apart from the function library;
// scope travels with every call.
type Processor struct {
	library *Library
}

// defaultLibrary is built on first use and shared by every processor
// created without a library of its own.
var defaultLibrary = sync.OnceValue(DefaultLibrary)

// NewProcessor builds a processor around the given library, defaulting to
// the full builtin set.
func NewProcessor(library *Library) *Processor {
	if library == nil {
		library = defaultLibrary()
	}
	return &Processor{library: library}
}

// Library exposes the builtin table, shared between compilations.
func (p *Processor) Library() *Library {
	return p.library
}

const operatorChars = "+-*/=<>"

func isOperatorToken(t tokens.Token) bool {
	return len(t.Text) == 1 && strings.Contains(operatorChars, t.Text)
}

// precedence tiers: comparisons bind loosest, additive next, multiplicative
// tightest. Left associative throughout.
func precedence(op string) int {
	switch op {
	case "=", "<", ">", "=<", "<=", ">=", "=>":
		return 1
	case "+", "-":
		return 2
	case "*", "/":
		return 3
	}
	return 0
}

// NeedsProcessing reports whether a token list contains anything the
// processor would evaluate: a variable, a url, a call to a known function,
// an arithmetic operator, or a ~"" escape. Lists that need no processing
// are only touched by string interpolation.
func (p *Processor) NeedsProcessing(l *tokens.TokenList) bool {
	items := l.Tokens()
	for i, t := range items {
		switch {
		case t.Kind == tokens.AtKeyword:
			return true
		case t.Kind == tokens.URL:
			return true
		case t.Kind == tokens.Identifier &&
			i+1 < len(items) &&
			items[i+1].Kind == tokens.ParenOpen &&
			p.library.Exists(t.Text):
			return true
		case len(t.Text) == 1 && strings.Contains("+-*/", t.Text) && t.Kind == tokens.Other:
			return true
		case t.Text == "~" && i+1 < len(items) && items[i+1].Kind == tokens.String:
			return true
		}
	}
	return false
}

// ProcessValue evaluates the list in place, replacing it with fully
// evaluated tokens. Chunks are separated by a single space when both
// neighbors ask for one.
func (p *Processor) ProcessValue(l *tokens.TokenList, scope Scope) error {
	if !p.NeedsProcessing(l) {
		for i := range l.Tokens() {
			t := &l.Tokens()[i]
			if t.Kind == tokens.String {
				p.InterpolateToken(t, scope)
			}
		}
		return nil
	}

	out := &tokens.TokenList{}

	for !l.Empty() {
		v, err := p.processStatement(l, scope)
		if err != nil {
			return err
		}

		if v != nil || !l.Empty() {
			if !out.Empty() && needsSpace(out.Back(), false) &&
				(v != nil || needsSpace(l.Front(), true)) {
				out.Push(tokens.Space())
			}
		}

		if v != nil {
			out.PushList(v.Tokens())
			continue
		}
		if l.Empty() {
			break
		}

		front := l.Front()
		switch {
		case front.Kind == tokens.AtKeyword && scope.Variable(front.Text) != nil:
			// variable bound to a non-value: evaluate its tokens
			// recursively and splice them in
			bound := scope.Variable(front.Text).Clone()
			if err := p.ProcessValue(bound, scope); err != nil {
				return err
			}
			out.PushList(bound)
			l.Shift()

		default:
			if deep := p.deepVariable(l, scope); deep != nil {
				out.PushList(deep)
				l.Shift()
				l.Shift()
				continue
			}
			if front.Kind == tokens.Other && front.Text == "@" &&
				l.Size() > 1 && l.At(1).Kind == tokens.AtKeyword {
				// unresolved deep variable: keep @@name verbatim
				out.Push(l.Shift())
				out.Push(l.Shift())
				continue
			}
			if l.Size() > 2 &&
				front.Kind == tokens.Identifier &&
				l.At(1).Kind == tokens.ParenOpen {
				// unknown function call: pass name and paren through
				// so the writer emits it verbatim
				out.Push(l.Shift())
				out.Push(l.Shift())
				continue
			}
			out.Push(l.Shift())
		}
	}

	l.Clear()
	l.PushList(out)
	return nil
}

// needsSpace implements the output whitespace policy: no space next to the
// separator characters, none after an opening paren, none before a closing
// one.
func needsSpace(t tokens.Token, before bool) bool {
	if t.Kind == tokens.Other && len(t.Text) == 1 && strings.Contains(",:=.", t.Text) {
		return false
	}
	if t.Kind == tokens.Colon {
		return false
	}
	if t.Kind == tokens.ParenOpen {
		return false
	}
	if before && t.Kind == tokens.ParenClosed {
		return false
	}
	return true
}

// processStatement parses constant (op constant)* and folds it left to
// right with precedence climbing. A nil value without error means the list
// does not start with a value expression.
func (p *Processor) processStatement(l *tokens.TokenList, scope Scope) (Value, error) {
	l.Ltrim()

	v, err := p.processConstant(l, scope)
	if err != nil || v == nil {
		return v, err
	}
	l.Ltrim()

	for {
		op, err := p.processOperator(l, v, "", scope)
		if err != nil {
			return nil, err
		}
		if op == nil {
			return v, nil
		}
		v = op
		l.Ltrim()
	}
}

// processOperator consumes one operator and its right operand, recursing
// into operators of strictly higher precedence first. lastop is the
// operator whose right side is being parsed; "" at statement level.
func (p *Processor) processOperator(l *tokens.TokenList, v1 Value, lastop string, scope Scope) (Value, error) {
	if l.Empty() || !isOperatorToken(l.Front()) {
		return nil, nil
	}

	op := l.Front().Text
	// join two-char operators: >= and =< arrive as two tokens
	if l.Size() > 1 && isOperatorToken(l.At(1)) {
		op += l.At(1).Text
	}

	if lastop != "" && precedence(lastop) >= precedence(op) {
		return nil, nil
	}

	l.Shift()
	if len(op) == 2 {
		l.Shift()
	}
	l.Ltrim()

	v2, err := p.processConstant(l, scope)
	if err != nil {
		return nil, err
	}
	if v2 == nil {
		if l.Empty() {
			return nil, lesserr.Expected("end of line", "constant or @-variable")
		}
		return nil, lesserr.Expected(l.Front().Text, "constant or @-variable")
	}
	l.Ltrim()

	for {
		tmp, err := p.processOperator(l, v2, op, scope)
		if err != nil {
			return nil, err
		}
		if tmp == nil {
			break
		}
		v2 = tmp
		l.Ltrim()
	}

	warnUnitMismatch(scope, op, v1, v2)

	switch op {
	case "+":
		return v1.Add(v2)
	case "-":
		return v1.Subtract(v2)
	case "*":
		return v1.Multiply(v2)
	case "/":
		return v1.Divide(v2)
	case "=":
		return v1.Equals(v2)
	case "<":
		return v1.Less(v2)
	case ">":
		return v1.Greater(v2)
	case "=<", "<=":
		return v1.LessEq(v2)
	case ">=", "=>":
		return v1.GreaterEq(v2)
	}
	return nil, lesserr.Expected(op, "an operator")
}

// Warner is implemented by scopes that accept non-fatal diagnostics.
type Warner interface {
	Warnf(format string, args ...any)
}

// warnUnitMismatch surfaces additive arithmetic over units with no defined
// conversion; the left unit wins but the author probably wants to know.
func warnUnitMismatch(scope Scope, op string, v1, v2 Value) {
	if op != "+" && op != "-" {
		return
	}
	w, ok := scope.(Warner)
	if !ok {
		return
	}
	n1, ok1 := v1.(*Number)
	n2, ok2 := v2.(*Number)
	if !ok1 || !ok2 {
		return
	}
	if n1.Unit == "" || n2.Unit == "" || n1.Unit == n2.Unit {
		return
	}
	if _, convertible := n2.ConvertTo(n1.Unit); !convertible {
		w.Warnf("no conversion between %s and %s, keeping %s", n2.Unit, n1.Unit, n1.Unit)
	}
}

// processConstant parses a single value-producing term. nil without error
// means the leading tokens are not a constant; the list is left untouched
// in that case.
func (p *Processor) processConstant(l *tokens.TokenList, scope Scope) (Value, error) {
	if l.Empty() {
		return nil, nil
	}

	front := l.Front()

	switch front.Kind {
	case tokens.Hash:
		c, err := ParseHexColor(front)
		if err != nil {
			return nil, err
		}
		l.Shift()
		return c, nil

	case tokens.Number, tokens.Percentage, tokens.Dimension:
		n, err := ParseNumber(front)
		if err != nil {
			return nil, err
		}
		l.Shift()
		return n, nil

	case tokens.AtKeyword:
		bound := scope.Variable(front.Text)
		if bound == nil {
			return nil, nil
		}
		clone := bound.Clone()
		v, err := p.processStatement(clone, scope)
		if err != nil {
			return nil, err
		}
		clone.Ltrim()
		if !clone.Empty() {
			// residue: the binding is not a single value expression
			return nil, nil
		}
		l.Shift()
		return v, nil

	case tokens.String:
		t := l.Shift()
		p.InterpolateToken(&t, scope)
		return NewQuotedString(t), nil

	case tokens.URL:
		t := l.Shift()
		p.InterpolateToken(&t, scope)
		return NewURL(t), nil

	case tokens.Identifier:
		if l.Size() > 2 && l.At(1).Kind == tokens.ParenOpen {
			if !p.library.Exists(front.Text) {
				return nil, nil
			}
			l.Shift()
			l.Shift()
			return p.processFunction(front.Text, l, scope)
		}
		if IsUnit(front.Text) {
			l.Shift()
			return &Unit{Unit: front.Text}, nil
		}
		if front.Text == "true" {
			l.Shift()
			return &Boolean{Value: true}, nil
		}
		l.Shift()
		return NewKeyword(front.Text), nil

	case tokens.ParenOpen:
		open := l.Shift()
		v, err := p.processStatement(l, scope)
		if err != nil {
			return nil, err
		}
		l.Ltrim()
		if l.Empty() {
			return nil, lesserr.Expected("end of line", `")"`)
		}
		if v != nil {
			if l.Front().Kind == tokens.ParenClosed {
				l.Shift()
				return v, nil
			}
			l.UnshiftList(v.Tokens())
		}
		l.Unshift(open)
		return nil, nil
	}

	if deep := p.deepVariable(l, scope); deep != nil {
		v, err := p.processStatement(deep, scope)
		if err != nil {
			return nil, err
		}
		if v != nil {
			l.Shift()
			l.Shift()
		}
		return v, nil
	}

	if front.Text == "%" && l.Size() > 2 && l.At(1).Kind == tokens.ParenOpen {
		l.Shift()
		l.Shift()
		return p.processFunction("%", l, scope)
	}

	if v, err := p.processEscape(l, scope); v != nil || err != nil {
		return v, err
	}

	return p.processNegative(l, scope)
}

// deepVariable resolves @@name: the string value of @name becomes the name
// of the variable to read. nil when the construct does not apply or the
// intermediate binding is not a single quoted string.
func (p *Processor) deepVariable(l *tokens.TokenList, scope Scope) *tokens.TokenList {
	if l.Size() < 2 {
		return nil
	}
	first, second := l.Front(), l.At(1)
	if first.Kind != tokens.Other || first.Text != "@" || second.Kind != tokens.AtKeyword {
		return nil
	}

	bound := scope.Variable(second.Text)
	if bound == nil || bound.Size() != 1 || bound.Front().Kind != tokens.String {
		return nil
	}

	key := "@" + strings.Unquote(bound.Front().Text)
	target := scope.Variable(key)
	if target == nil {
		return nil
	}
	return target.Clone()
}

// processFunction evaluates a builtin call; the name and opening paren are
// already consumed.
func (p *Processor) processFunction(name string, l *tokens.TokenList, scope Scope) (Value, error) {
	args, err := p.processArguments(l, scope)
	if err != nil {
		return nil, err
	}
	return p.library.Call(name, args)
}

// processArguments consumes a comma or semicolon separated argument list
// terminated by the closing paren. Arguments that are not value
// expressions are wrapped as unquoted strings.
func (p *Processor) processArguments(l *tokens.TokenList, scope Scope) ([]Value, error) {
	var args []Value

	if l.Empty() {
		return nil, lesserr.Expected("end of value", `")"`)
	}

	if l.Front().Kind != tokens.ParenClosed {
		arg, err := p.processStatement(l, scope)
		if err != nil {
			return nil, err
		}
		if arg != nil {
			args = append(args, arg)
		} else {
			args = append(args, NewKeyword(l.Shift().Text))
		}
	}

	for !l.Empty() && (l.Front().Text == "," || l.Front().Text == ";") {
		l.Shift()

		arg, err := p.processStatement(l, scope)
		if err != nil {
			return nil, err
		}
		if arg != nil {
			args = append(args, arg)
		} else if !l.Empty() && l.Front().Kind != tokens.ParenClosed {
			args = append(args, NewKeyword(l.Shift().Text))
		}
	}

	if l.Empty() {
		return nil, lesserr.Expected("end of value", `")"`)
	}
	if l.Front().Kind != tokens.ParenClosed {
		return nil, lesserr.Expected(l.Front().Text, `")"`)
	}
	l.Shift()

	return args, nil
}

// processEscape handles ~"text": the string is interpolated, unquoted and
// passed through as-is.
func (p *Processor) processEscape(l *tokens.TokenList, scope Scope) (Value, error) {
	if l.Size() < 2 || l.Front().Text != "~" || l.At(1).Kind != tokens.String {
		return nil, nil
	}

	l.Shift()
	t := l.Shift()
	p.InterpolateToken(&t, scope)
	return NewKeyword(strings.Unquote(t.Text)), nil
}

// processNegative handles unary minus as 0 - constant. The minus is
// restored when no constant follows.
func (p *Processor) processNegative(l *tokens.TokenList, scope Scope) (Value, error) {
	if l.Empty() || l.Front().Text != "-" {
		return nil, nil
	}

	minus := l.Shift()
	l.Ltrim()

	c, err := p.processConstant(l, scope)
	if err != nil {
		return nil, err
	}
	if c == nil {
		l.Unshift(minus)
		return nil, nil
	}

	zero := &Number{}
	return zero.Subtract(c)
}

// InterpolateToken replaces every @{name} fragment in the token's text with
// the printed value of @name. One level of quotes is stripped when the
// binding is a single quoted string. Unknown names stay verbatim.
func (p *Processor) InterpolateToken(t *tokens.Token, scope Scope) {
	text := t.Text
	end := 0

	for {
		start := strings.Index(text[end:], "@{")
		if start < 0 {
			break
		}
		start += end
		close := strings.Index(text[start:], "}")
		if close < 0 {
			break
		}
		close += start

		key := "@" + text[start+2:close]
		bound := scope.Variable(key)
		if bound == nil {
			end = close + 1
			continue
		}

		clone := bound.Clone()
		if err := p.ProcessValue(clone, scope); err != nil {
			end = close + 1
			continue
		}

		printed := clone.String()
		if clone.Size() == 1 && clone.Front().Kind == tokens.String {
			printed = strings.Unquote(printed)
		}

		text = text[:start] + printed + text[close+1:]
		end = start + len(printed)
	}

	t.Text = text
}

// Interpolate applies InterpolateToken to every token kind interpolation is
// defined over.
func (p *Processor) Interpolate(l *tokens.TokenList, scope Scope) {
	items := l.Tokens()
	for i := range items {
		switch items[i].Kind {
		case tokens.String, tokens.URL, tokens.Identifier, tokens.AtKeyword:
			p.InterpolateToken(&items[i], scope)
		}
	}
}

// ValidateCondition evaluates a mixin guard: a comma or "and" separated
// conjunction of boolean statements, all of which must hold. Clauses using
// boolean algebra beyond the value grammar (or, not) are delegated to the
// expression engine.
func (p *Processor) ValidateCondition(l *tokens.TokenList, scope Scope) (bool, error) {
	if usesBooleanAlgebra(l) {
		return evaluator.EvalBool(l.Tokens(), p.resolver(scope))
	}

	clone := l.Clone()
	ok, err := p.validateValue(clone, scope)
	if err != nil {
		return false, err
	}
	clone.Ltrim()

	for ok && !clone.Empty() {
		front := clone.Front()
		if front.Is(tokens.Identifier, "and") || front.Text == "," {
			clone.Shift()
			clone.Ltrim()
			ok, err = p.validateValue(clone, scope)
			if err != nil {
				return false, err
			}
			clone.Ltrim()
			continue
		}
		return false, lesserr.Expected(front.Text, `"and" or ","`)
	}

	return ok, nil
}

func (p *Processor) validateValue(l *tokens.TokenList, scope Scope) (bool, error) {
	v, err := p.processStatement(l, scope)
	if err != nil {
		return false, err
	}
	if v == nil {
		found := "end of condition"
		if !l.Empty() {
			found = l.Front().Text
		}
		return false, lesserr.Expected(found, "condition")
	}

	if b, ok := v.(*Boolean); ok {
		return b.Value, nil
	}
	eq, err := v.Equals(&Boolean{Value: true})
	if err != nil {
		return false, err
	}
	return Truthy(eq), nil
}

// usesBooleanAlgebra reports whether the condition needs the expression
// engine: "or"/"not" connectives at any nesting level.
func usesBooleanAlgebra(l *tokens.TokenList) bool {
	for _, t := range l.Tokens() {
		if t.Is(tokens.Identifier, "or") || t.Is(tokens.Identifier, "not") {
			return true
		}
	}
	return false
}

// resolver adapts a Scope to the expression engine: variables resolve to
// their printed evaluated text.
func (p *Processor) resolver(scope Scope) evaluator.Resolver {
	return func(name string) (string, bool) {
		bound := scope.Variable("@" + name)
		if bound == nil {
			return "", false
		}
		clone := bound.Clone()
		if err := p.ProcessValue(clone, scope); err != nil {
			return "", false
		}
		return clone.String(), true
	}
}

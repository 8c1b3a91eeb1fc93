package less

import (
	"errors"

	"github.com/titpetric/lessc/css"
	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
)

// Container is anything the evaluator can add output items to: the root
// stylesheet or a media query block.
type Container interface {
	Add(css.Item)
}

// Destination bundles where evaluation output goes: the root sheet for
// bubbled media queries, the container for new rulesets, the enclosing css
// ruleset for declarations, the enclosing media query and the joined
// selector prefix.
type Destination struct {
	Root      *css.Stylesheet
	Container Container
	Ruleset   *css.Ruleset
	Media     *tokens.Selector
	Prefix    *tokens.Selector
	Important bool
}

// bodyItem is an ordered member of a ruleset body next to the unprocessed
// statements: a nested ruleset, a nested media query, or a comment.
type bodyItem interface {
	body()
}

// Ruleset is a LESS ruleset: selector with mixin extras, its own variable
// block, unprocessed statements and nested items. A ruleset doubles as a
// Function when called as a mixin.
type Ruleset struct {
	id       int
	selector *Selector

	variables  *VariableMap
	statements []*Statement
	nested     []bodyItem

	parent     *Ruleset
	stylesheet *Stylesheet

	// reference rulesets come from (reference) imports: usable as
	// mixins, never emitted on their own.
	reference bool
}

// SetReference marks the ruleset as reference-only.
func (r *Ruleset) SetReference(ref bool) {
	r.reference = ref
}

func (r *Ruleset) body() {}

// FunctionID implements Function identity.
func (r *Ruleset) FunctionID() int {
	return r.id
}

// Definition returns the parsed selector.
func (r *Ruleset) Definition() *Selector {
	return r.selector
}

// Parent returns the lexically enclosing ruleset, nil at the top level.
func (r *Ruleset) Parent() *Ruleset {
	return r.parent
}

// Stylesheet returns the owning stylesheet.
func (r *Ruleset) Stylesheet() *Stylesheet {
	return r.stylesheet
}

// PutVariable binds a variable in this ruleset's block. The flag reports a
// rebind within the same scope.
func (r *Ruleset) PutVariable(name string, v *tokens.TokenList) bool {
	return r.variables.Put(name, v)
}

// AddStatement appends an unprocessed statement.
func (r *Ruleset) AddStatement(s *Statement) {
	r.statements = append(r.statements, s)
}

// Statements returns the unprocessed statements in source order.
func (r *Ruleset) Statements() []*Statement {
	return r.statements
}

// Variables exposes the ruleset's variable block.
func (r *Ruleset) Variables() *VariableMap {
	return r.variables
}

// AddNested appends a nested ruleset, keeping the back references.
func (r *Ruleset) AddNested(sel *Selector) *Ruleset {
	nested := r.stylesheet.newRuleset(sel)
	nested.parent = r
	nested.reference = r.reference
	r.nested = append(r.nested, nested)
	return nested
}

// AddMedia appends a nested media query.
func (r *Ruleset) AddMedia(m *Media) {
	r.nested = append(r.nested, m)
}

// AddComment appends a passthrough comment.
func (r *Ruleset) AddComment(text string) {
	r.nested = append(r.nested, &Comment{Text: text})
}

// NestedRulesets returns the directly nested rulesets.
func (r *Ruleset) NestedRulesets() []*Ruleset {
	var out []*Ruleset
	for _, item := range r.nested {
		if n, ok := item.(*Ruleset); ok {
			out = append(out, n)
		}
	}
	return out
}

// matchesName reports whether any comma part of the selector prints as the
// given compact name.
func (r *Ruleset) matchesName(name string) bool {
	for _, part := range r.selector.Tokens.Parts() {
		if compactSelector(part) == name {
			return true
		}
	}
	return false
}

// compactSelector prints a selector part with whitespace removed, the form
// mixin paths are compared in.
func compactSelector(part *tokens.TokenList) string {
	var b strings.Builder
	for _, t := range part.Tokens() {
		if t.IsWhitespace() {
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// callSegments splits a mixin call path into compact segments:
// "#ns > .m" and "#ns .m" both become ["#ns", ".m"].
func callSegments(name *tokens.TokenList) []string {
	var segs []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			segs = append(segs, b.String())
			b.Reset()
		}
	}

	for _, t := range name.Tokens() {
		if t.IsWhitespace() || (t.Kind == tokens.Other && t.Text == ">") {
			flush()
			continue
		}
		b.WriteString(t.Text)
	}
	flush()
	return segs
}

// matchSegments descends the path segments through nested rulesets,
// collecting arity-compatible definitions.
func (r *Ruleset) matchSegments(segs []string, argc int, out *[]Function) {
	if len(segs) == 0 || !r.matchesName(segs[0]) {
		return
	}
	if len(segs) == 1 {
		if r.arityMatches(argc) {
			*out = append(*out, r)
		}
		return
	}
	for _, nested := range r.NestedRulesets() {
		nested.matchSegments(segs[1:], argc, out)
	}
}

func (r *Ruleset) arityMatches(argc int) bool {
	return argc >= r.selector.MinArguments() && argc <= r.selector.MaxArguments()
}

// appendClosureMatches adds closure-resolved definitions the direct search
// did not already find. A match on the closure's own ruleset resolves
// through the closure so its body sees the captured scope.
func appendClosureMatches(out *[]Function, closures []*Closure, segs []string, argc int) {
	seen := map[int]bool{}
	for _, f := range *out {
		seen[f.FunctionID()] = true
	}

	for _, closure := range closures {
		var matches []Function
		closure.ruleset.matchSegments(segs, argc, &matches)
		for _, f := range matches {
			if seen[f.FunctionID()] {
				continue
			}
			seen[f.FunctionID()] = true
			if f.FunctionID() == closure.ruleset.FunctionID() {
				f = closure
			}
			*out = append(*out, f)
		}
	}
}

// LocalFunctions implements mixin lookup from inside this ruleset: nested
// rules first, then captured closures, then the lexical chain up to the
// stylesheet.
func (r *Ruleset) LocalFunctions(out *[]Function, call *Mixin, ctx *Context) {
	segs := callSegments(call.Name)
	argc := len(call.Arguments) + call.Named.Len()

	for _, nested := range r.NestedRulesets() {
		nested.matchSegments(segs, argc, out)
	}

	appendClosureMatches(out, ctx.Closures(r), segs, argc)

	if len(*out) > 0 {
		return
	}

	if r.parent != nil {
		r.parent.LocalFunctions(out, call, ctx)
	} else if r.stylesheet != nil {
		r.stylesheet.GetFunctions(out, call, ctx)
	}
}

// Process instantiates the ruleset as a rule: joins the selector with the
// prefix, registers extend clauses, and evaluates the body into a new css
// ruleset.
func (r *Ruleset) Process(dst Destination, ctx *Context) error {
	own := r.selector.Tokens.CloneSelector()
	ctx.Interpolate(&own.TokenList)

	joined := JoinSelectors(dst.Prefix, own)

	for _, clause := range r.selector.Extends {
		target := clause.Target.Clone()
		ctx.Interpolate(target)
		ctx.AddExtension(Extension{Target: target, Replacement: joined, All: clause.All})
	}

	out := &css.Ruleset{Selector: joined}
	dst.Container.Add(out)

	if err := ctx.PushMixinCall(r, nil, true); err != nil {
		return err
	}

	next := dst
	next.Ruleset = out
	next.Prefix = joined

	err := r.processBody(next, ctx)
	ctx.PopMixinCall()
	return err
}

// Invoke runs the ruleset as a mixin: binds arguments, verifies patterns
// and the guard, and evaluates the body into the caller's destination.
// A false return without error means the definition rejected the call.
func (r *Ruleset) Invoke(call *Mixin, _ *VariableMap, dst Destination, ctx *Context) (bool, error) {
	args, checks, ok := bindArguments(r.selector, call)
	if !ok {
		return false, nil
	}

	// literal patterns compare against the evaluated argument, in the
	// caller's scope
	for _, check := range checks {
		matched, err := patternMatches(check, ctx)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}

	if err := ctx.PushMixinCall(r, args, true); err != nil {
		return false, err
	}

	if r.selector.Guard != nil {
		ok, err := ctx.ValidateCondition(r.selector.Guard)
		if err != nil || !ok {
			ctx.PopMixinCall()
			return false, err
		}
	}

	next := dst
	next.Important = dst.Important || call.Important

	err := r.processBody(next, ctx)
	ctx.PopMixinCall()
	return err == nil, err
}

// processBody evaluates statements and nested items in order, with this
// ruleset's variable block and closures attached to the current frame.
func (r *Ruleset) processBody(dst Destination, ctx *Context) error {
	ctx.AddVariables(r.variables)

	for _, nested := range r.NestedRulesets() {
		if nested.selector.IsMixinDefinition() {
			ctx.AddClosure(nested)
		}
	}

	for _, stmt := range r.statements {
		if err := r.resolveStatement(stmt, dst, ctx); err != nil {
			return err
		}
	}

	for _, item := range r.nested {
		switch n := item.(type) {
		case *Ruleset:
			if n.selector.IsMixinDefinition() {
				continue
			}
			if err := n.Process(dst, ctx); err != nil {
				return err
			}
		case *Media:
			if err := n.Process(dst, ctx); err != nil {
				return err
			}
		case *Comment:
			dst.Container.Add(&css.Comment{Text: n.Text})
		}
	}

	return nil
}

// resolveStatement decides what an unprocessed statement is: a declaration,
// an &:extend directive, or a mixin call.
func (r *Ruleset) resolveStatement(stmt *Statement, dst Destination, ctx *Context) error {
	if stmt.PropertyEnd > 0 {
		return r.resolveDeclaration(stmt, dst, ctx)
	}

	work := stmt.Tokens.Clone()
	work.Trim()
	if work.Empty() {
		return nil
	}

	if clauses, ok := extendStatement(work); ok {
		for _, clause := range clauses {
			target := clause.Target.Clone()
			ctx.Interpolate(target)
			ctx.AddExtension(Extension{Target: target, Replacement: dst.Prefix, All: clause.All})
		}
		return nil
	}

	mixin := ParseMixin(work, stmt)
	ctx.Interpolate(mixin.Name)
	return r.invokeMixin(mixin, dst, ctx)
}

func (r *Ruleset) resolveDeclaration(stmt *Statement, dst Destination, ctx *Context) error {
	if dst.Ruleset == nil {
		return nil
	}

	property := stmt.Property()
	ctx.Interpolate(property)

	valueTokens, important := stmt.Value()
	work := valueTokens.Clone()
	if err := ctx.ProcessValue(work); err != nil {
		var e *lesserr.Error
		if errors.As(err, &e) {
			return lesserr.At(e, stmt.Source, stmt.Line, stmt.Column)
		}
		return err
	}

	dst.Ruleset.AddDeclaration(css.Declaration{
		Property:  property.String(),
		Value:     work,
		Important: important || dst.Important,
	})
	return nil
}

// invokeMixin resolves the call and applies every definition that accepts
// it. No reachable definition is a MixinNotFound error; definitions only
// unreachable because they are already executing raise the recursion error.
func (r *Ruleset) invokeMixin(mixin *Mixin, dst Destination, ctx *Context) error {
	candidates := ctx.GetFunctions(mixin)
	if len(candidates) == 0 {
		return lesserr.At(
			lesserr.New(lesserr.MixinNotFound, "no mixin matches %q", compactSelector(mixin.Name)),
			mixin.Source, mixin.Line, mixin.Column)
	}

	matched := 0
	inStack := 0
	for _, fn := range candidates {
		if ctx.IsInStack(fn) {
			inStack++
			continue
		}
		ok, err := fn.Invoke(mixin, nil, dst, ctx)
		if err != nil {
			return err
		}
		if ok {
			matched++
		}
	}

	if matched == 0 {
		if inStack > 0 {
			return lesserr.At(
				lesserr.New(lesserr.RecursionLimit, "recursive mixin call %q", compactSelector(mixin.Name)),
				mixin.Source, mixin.Line, mixin.Column)
		}
		return lesserr.At(
			lesserr.New(lesserr.MixinNotFound, "no mixin accepts the call %q", compactSelector(mixin.Name)),
			mixin.Source, mixin.Line, mixin.Column)
	}
	return nil
}

// extendStatement recognizes the "&:extend(...)" statement form.
func extendStatement(l *tokens.TokenList) ([]tokens.ExtendClause, bool) {
	sel := tokens.SelectorFromList(l)
	clean, clauses := sel.SplitExtensions()
	if len(clauses) == 0 {
		return nil, false
	}
	rest := compactSelector(&clean.TokenList)
	if rest != "" && rest != "&" {
		return nil, false
	}
	return clauses, true
}

// patternCheck pairs a literal parameter pattern with the argument bound
// to it.
type patternCheck struct {
	pattern  *tokens.TokenList
	argument *tokens.TokenList
}

func patternMatches(check patternCheck, ctx *Context) (bool, error) {
	arg := check.argument.Clone()
	if err := ctx.ProcessValue(arg); err != nil {
		return false, err
	}
	want := check.pattern.Clone()
	if err := ctx.ProcessValue(want); err != nil {
		return false, err
	}
	return strings.TrimSpace(arg.String()) == strings.TrimSpace(want.String()), nil
}

// bindArguments binds a call's arguments against a definition's parameter
// list: named arguments first, positional in order, defaults for the rest.
// The rest parameter swallows the remaining positional arguments.
func bindArguments(sel *Selector, call *Mixin) (*VariableMap, []patternCheck, bool) {
	args := NewVariableMap()
	var checks []patternCheck
	pi := 0

	for _, param := range sel.Parameters {
		if param.Name == "" {
			if pi >= len(call.Arguments) {
				return nil, nil, false
			}
			checks = append(checks, patternCheck{pattern: param.Pattern, argument: call.Arguments[pi]})
			pi++
			continue
		}

		if v := call.Named.Get(param.Name); v != nil {
			args.Put(param.Name, v.Clone())
			continue
		}
		if pi < len(call.Arguments) {
			args.Put(param.Name, call.Arguments[pi].Clone())
			pi++
			continue
		}
		if param.Default != nil {
			args.Put(param.Name, param.Default.Clone())
			continue
		}
		return nil, nil, false
	}

	if sel.Rest != "" {
		rest := &tokens.TokenList{}
		for ; pi < len(call.Arguments); pi++ {
			if !rest.Empty() {
				rest.Push(tokens.Space())
			}
			rest.PushList(call.Arguments[pi])
		}
		args.Put(sel.Rest, rest)
	} else if pi < len(call.Arguments) {
		return nil, nil, false
	}

	// @arguments holds every positional argument, space separated
	all := &tokens.TokenList{}
	for i, arg := range call.Arguments {
		if i > 0 {
			all.Push(tokens.Space())
		}
		all.PushList(arg)
	}
	args.Put("@arguments", all)

	return args, checks, true
}

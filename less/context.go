package less

import (
	"fmt"

	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
	"github.com/titpetric/lessc/value"
)

// DefaultRecursionLimit bounds the mixin call depth.
const DefaultRecursionLimit = 100

// Context carries the per-compilation evaluation state: the mixin call
// stack, per-function augmented variables and closures, the extend
// accumulator and the value processor. A Context is not shared between
// compilations; the processor's function library may be.
type Context struct {
	processor  *value.Processor
	stylesheet *Stylesheet

	stack *MixinCall
	depth int

	// RecursionLimit caps the stack depth; zero means the default.
	RecursionLimit int

	// Warn receives non-fatal diagnostics. nil disables them.
	Warn func(msg string, line int)

	variables map[int]*VariableMap
	closures  map[int][]*Closure

	baseVariables *VariableMap
	baseClosures  []*Closure

	extensions []Extension

	functionSeq int
}

// NewContext builds a context for one compilation of the given stylesheet.
func NewContext(sheet *Stylesheet, processor *value.Processor) *Context {
	if processor == nil {
		processor = value.NewProcessor(nil)
	}
	return &Context{
		processor:     processor,
		stylesheet:    sheet,
		variables:     make(map[int]*VariableMap),
		closures:      make(map[int][]*Closure),
		baseVariables: NewVariableMap(),
	}
}

// Processor exposes the value processor.
func (c *Context) Processor() *value.Processor {
	return c.processor
}

// Variable implements value.Scope: call arguments and function variables
// frame by frame, then the base scope, then the top-level stylesheet.
func (c *Context) Variable(name string) *tokens.TokenList {
	if c.stack != nil {
		if v := c.stack.Variable(name, c); v != nil {
			return v
		}
	}
	if v := c.baseVariables.Get(name); v != nil {
		return v
	}
	if c.stylesheet != nil {
		return c.stylesheet.Variable(name)
	}
	return nil
}

// PushMixinCall pushes a frame. Every push must be balanced by a pop on
// every exit path.
func (c *Context) PushMixinCall(fn Function, args *VariableMap, savepoint bool) error {
	limit := c.RecursionLimit
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}
	if c.depth >= limit {
		return lesserr.New(lesserr.RecursionLimit, "mixin call depth exceeds %d", limit)
	}
	if args == nil {
		args = NewVariableMap()
	}
	c.stack = &MixinCall{parent: c.stack, function: fn, arguments: args, savepoint: savepoint}
	c.depth++
	return nil
}

// PopMixinCall pops the top frame.
func (c *Context) PopMixinCall() {
	if c.stack != nil {
		c.stack = c.stack.parent
		c.depth--
	}
}

// StackEmpty reports whether any frame is live.
func (c *Context) StackEmpty() bool {
	return c.stack == nil
}

// IsSavePoint reports whether the top frame owns a scope.
func (c *Context) IsSavePoint() bool {
	return c.stack != nil && c.stack.savepoint
}

// SavePoint returns the function of the nearest savepoint frame.
func (c *Context) SavePoint() Function {
	if c.stack == nil {
		return nil
	}
	return c.stack.SavePoint()
}

// IsInStack reports whether fn is anywhere on the stack.
func (c *Context) IsInStack(fn Function) bool {
	return c.stack != nil && c.stack.IsInStack(fn)
}

// GetFunctions resolves the definitions a mixin call can reach from the
// current scope.
func (c *Context) GetFunctions(call *Mixin) []Function {
	var out []Function
	if c.stack != nil {
		c.stack.GetFunctions(&out, call, c)
	}
	if len(out) == 0 && c.stylesheet != nil {
		c.stylesheet.GetFunctions(&out, call, c)
	}
	return out
}

// AddVariables merges variables into the current savepoint's scope, or the
// base scope outside any savepoint.
func (c *Context) AddVariables(vars *VariableMap) {
	fn := c.SavePoint()
	if fn == nil {
		c.baseVariables.Overwrite(vars)
		return
	}
	existing, ok := c.variables[fn.FunctionID()]
	if !ok {
		existing = NewVariableMap()
		c.variables[fn.FunctionID()] = existing
	}
	existing.Overwrite(vars)
}

func (c *Context) functionVariables(fn Function) *VariableMap {
	return c.variables[fn.FunctionID()]
}

// AddClosure records a closure of the ruleset against the current
// savepoint, snapshotting the live stack.
func (c *Context) AddClosure(r *Ruleset) {
	if c.stack == nil {
		return
	}
	closure := &Closure{id: c.nextFunctionID(), ruleset: r, captured: c.stack}

	fn := c.SavePoint()
	if fn == nil {
		c.baseClosures = append(c.baseClosures, closure)
		return
	}
	c.closures[fn.FunctionID()] = append(c.closures[fn.FunctionID()], closure)
}

// Closures returns the closures captured for a function.
func (c *Context) Closures(fn Function) []*Closure {
	return c.closures[fn.FunctionID()]
}

// BaseClosures returns the closures captured outside any savepoint.
func (c *Context) BaseClosures() []*Closure {
	return c.baseClosures
}

// AddExtension accumulates one :extend directive.
func (c *Context) AddExtension(e Extension) {
	c.extensions = append(c.extensions, e)
}

// Extensions returns the accumulated extend directives in source order.
func (c *Context) Extensions() []Extension {
	return c.extensions
}

// Interpolate rewrites @{name} fragments against the current scope.
func (c *Context) Interpolate(l *tokens.TokenList) {
	c.processor.Interpolate(l, c)
}

// ProcessValue evaluates a value token list against the current scope.
func (c *Context) ProcessValue(l *tokens.TokenList) error {
	return c.processor.ProcessValue(l, c)
}

// ValidateCondition evaluates a guard against the current scope.
func (c *Context) ValidateCondition(l *tokens.TokenList) (bool, error) {
	return c.processor.ValidateCondition(l, c)
}

// Warnf implements value.Warner for the processor's diagnostics.
func (c *Context) Warnf(format string, args ...any) {
	if c.Warn != nil {
		c.Warn(fmt.Sprintf(format, args...), 0)
	}
}

func (c *Context) nextFunctionID() int {
	c.functionSeq++
	return -c.functionSeq
}

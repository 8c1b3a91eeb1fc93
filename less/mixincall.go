package less

import (
	"github.com/titpetric/lessc/tokens"
)

// Function is anything that participates in the mixin call stack and has a
// definition selector: a ruleset used as a mixin, or a closure wrapping one.
type Function interface {
	// FunctionID is a stable identity assigned at construction, used to
	// key per-function scope maps and to detect recursion.
	FunctionID() int

	// Definition exposes the parsed selector with parameters and guard.
	Definition() *Selector

	// LocalFunctions appends definitions matching the call that are
	// visible from inside this function's body: nested rules, captured
	// closures, then the lexical chain.
	LocalFunctions(out *[]Function, call *Mixin, ctx *Context)

	// Invoke binds arguments, checks the guard, and processes the body
	// into the destination. The matched flag is false when the guard or
	// the argument pattern rejected the call.
	Invoke(call *Mixin, args *VariableMap, dst Destination, ctx *Context) (bool, error)
}

// MixinCall is one frame of the mixin call stack. Frames marked savepoint
// own a variable and closure scope; other frames are transparent when
// looking for the current savepoint.
type MixinCall struct {
	parent    *MixinCall
	function  Function
	arguments *VariableMap
	savepoint bool
}

// Variable resolves a name against this frame and its parents: call
// arguments first, then the variables attached to the frame's function.
func (f *MixinCall) Variable(name string, ctx *Context) *tokens.TokenList {
	for frame := f; frame != nil; frame = frame.parent {
		if v := frame.arguments.Get(name); v != nil {
			return v
		}
		if vars := ctx.functionVariables(frame.function); vars != nil {
			if v := vars.Get(name); v != nil {
				return v
			}
		}
	}
	return nil
}

// GetFunctions resolves a mixin call from this frame outward: the nearest
// frame whose function body can see a matching definition wins.
func (f *MixinCall) GetFunctions(out *[]Function, call *Mixin, ctx *Context) {
	f.function.LocalFunctions(out, call, ctx)
	if len(*out) == 0 && f.parent != nil {
		f.parent.GetFunctions(out, call, ctx)
	}
}

// IsInStack reports whether the function is already on the stack.
func (f *MixinCall) IsInStack(fn Function) bool {
	for frame := f; frame != nil; frame = frame.parent {
		if frame.function.FunctionID() == fn.FunctionID() {
			return true
		}
	}
	return false
}

// SavePoint returns the function of the nearest savepoint frame, or nil.
func (f *MixinCall) SavePoint() Function {
	for frame := f; frame != nil; frame = frame.parent {
		if frame.savepoint {
			return frame.function
		}
	}
	return nil
}

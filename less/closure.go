package less

// Closure is a ruleset captured together with the call stack that was live
// when its definition was seen, so later lookups resolve names from that
// position.
type Closure struct {
	id       int
	ruleset  *Ruleset
	captured *MixinCall
}

func (c *Closure) FunctionID() int {
	return c.id
}

func (c *Closure) Definition() *Selector {
	return c.ruleset.Definition()
}

func (c *Closure) LocalFunctions(out *[]Function, call *Mixin, ctx *Context) {
	c.ruleset.LocalFunctions(out, call, ctx)
}

// Invoke runs the wrapped ruleset with the captured stack swapped in, so
// the body resolves variables and mixins from its capture position. The
// arguments were already evaluated in the caller's scope.
func (c *Closure) Invoke(call *Mixin, args *VariableMap, dst Destination, ctx *Context) (bool, error) {
	live := ctx.stack
	ctx.stack = c.captured
	defer func() {
		ctx.stack = live
	}()

	return c.ruleset.Invoke(call, args, dst, ctx)
}

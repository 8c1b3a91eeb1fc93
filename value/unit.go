package value

import (
	"github.com/titpetric/lessc/tokens"
)

// Unit is a bare unit identifier appearing as a value, as in unit(5, px).
type Unit struct {
	Unit string
}

func (u *Unit) Type() Type {
	return TypeUnit
}

func (u *Unit) Tokens() *tokens.TokenList {
	return tokens.NewList(tokens.New(u.Unit, tokens.Identifier))
}

func (u *Unit) Add(other Value) (Value, error)      { return nil, typeError("+", u, other) }
func (u *Unit) Subtract(other Value) (Value, error) { return nil, typeError("-", u, other) }
func (u *Unit) Multiply(other Value) (Value, error) { return nil, typeError("*", u, other) }
func (u *Unit) Divide(other Value) (Value, error)   { return nil, typeError("/", u, other) }

func (u *Unit) Equals(other Value) (Value, error) {
	o, ok := other.(*Unit)
	if !ok {
		return &Boolean{Value: false}, nil
	}
	return &Boolean{Value: u.Unit == o.Unit}, nil
}

func (u *Unit) Less(other Value) (Value, error)      { return nil, typeError("<", u, other) }
func (u *Unit) Greater(other Value) (Value, error)   { return nil, typeError(">", u, other) }
func (u *Unit) LessEq(other Value) (Value, error)    { return nil, typeError("=<", u, other) }
func (u *Unit) GreaterEq(other Value) (Value, error) { return nil, typeError(">=", u, other) }

// Boolean is the result of comparisons and guards.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type {
	return TypeBoolean
}

func (b *Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (b *Boolean) Tokens() *tokens.TokenList {
	return tokens.NewList(tokens.New(b.String(), tokens.Identifier))
}

func (b *Boolean) Add(other Value) (Value, error)      { return nil, typeError("+", b, other) }
func (b *Boolean) Subtract(other Value) (Value, error) { return nil, typeError("-", b, other) }
func (b *Boolean) Multiply(other Value) (Value, error) { return nil, typeError("*", b, other) }
func (b *Boolean) Divide(other Value) (Value, error)   { return nil, typeError("/", b, other) }

func (b *Boolean) Equals(other Value) (Value, error) {
	switch o := other.(type) {
	case *Boolean:
		return &Boolean{Value: b.Value == o.Value}, nil
	case *String:
		// guard context compares bare identifiers against true
		return &Boolean{Value: b.Value == (!o.Quoted && o.Text == "true")}, nil
	}
	return &Boolean{Value: false}, nil
}

func (b *Boolean) Less(other Value) (Value, error)      { return nil, typeError("<", b, other) }
func (b *Boolean) Greater(other Value) (Value, error)   { return nil, typeError(">", b, other) }
func (b *Boolean) LessEq(other Value) (Value, error)    { return nil, typeError("=<", b, other) }
func (b *Boolean) GreaterEq(other Value) (Value, error) { return nil, typeError(">=", b, other) }

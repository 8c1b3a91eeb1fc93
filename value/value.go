// Package value implements the typed value model of the compiler: numbers
// with units, colors, strings, urls, bare units and booleans, the pairwise
// operators over them, the builtin function library, and the token-driven
// expression processor.
package value

import (
	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
)

// Type tags the members of the value sum type.
type Type int

const (
	TypeNumber Type = iota
	TypeColor
	TypeString
	TypeURL
	TypeUnit
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeColor:
		return "color"
	case TypeString:
		return "string"
	case TypeURL:
		return "url"
	case TypeUnit:
		return "unit"
	case TypeBoolean:
		return "boolean"
	}
	return "unknown"
}

// Value is one evaluated expression result. Every value prints itself back
// to tokens so results can be spliced into a surrounding token stream.
type Value interface {
	Type() Type

	// Tokens renders the value as builtin tokens.
	Tokens() *tokens.TokenList

	Add(other Value) (Value, error)
	Subtract(other Value) (Value, error)
	Multiply(other Value) (Value, error)
	Divide(other Value) (Value, error)

	// The comparisons return a Boolean for =, <, >, =< and >=.
	Equals(other Value) (Value, error)
	Less(other Value) (Value, error)
	Greater(other Value) (Value, error)
	LessEq(other Value) (Value, error)
	GreaterEq(other Value) (Value, error)
}

// Scope resolves variable names for the processor. Bindings are token lists;
// nil means unbound.
type Scope interface {
	Variable(name string) *tokens.TokenList
}

// typeError is the shared failure for operators applied across incompatible
// members of the sum type.
func typeError(op string, left, right Value) error {
	return lesserr.New(lesserr.Type, "operation %s not supported between %s and %s", op, left.Type(), right.Type())
}

// Truthy reports whether a value passes a guard. Only Boolean(true) and the
// identifier spelling of it are truthy; everything else compares false.
func Truthy(v Value) bool {
	if b, ok := v.(*Boolean); ok {
		return b.Value
	}
	if s, ok := v.(*String); ok {
		return !s.Quoted && s.Text == "true"
	}
	return false
}

package value

import (
	"math"
)

// loadNumberFunctions registers the numeric builtins. Algorithms follow the
// language reference; rounding keeps the operand's unit.
func loadNumberFunctions(l *Library) {
	unary := func(f func(float64) float64) Native {
		return func(args []Value) (Value, error) {
			n := args[0].(*Number)
			return &Number{Value: f(n.Value), Unit: n.Unit}, nil
		}
	}

	l.Register("ceil", "N", unary(math.Ceil))
	l.Register("floor", "N", unary(math.Floor))
	l.Register("sqrt", "N", unary(math.Sqrt))
	l.Register("abs", "N", unary(math.Abs))
	l.Register("sin", "N", unary(math.Sin))
	l.Register("cos", "N", unary(math.Cos))
	l.Register("tan", "N", unary(math.Tan))
	l.Register("asin", "N", unary(math.Asin))
	l.Register("acos", "N", unary(math.Acos))
	l.Register("atan", "N", unary(math.Atan))

	l.Register("round", "N", unary(math.Round))
	l.Register("round", "NN", func(args []Value) (Value, error) {
		n := args[0].(*Number)
		places := int(args[1].(*Number).Value)
		return n.Round(places), nil
	})

	l.Register("pow", "NN", func(args []Value) (Value, error) {
		base := args[0].(*Number)
		exp := args[1].(*Number)
		return &Number{Value: math.Pow(base.Value, exp.Value), Unit: base.Unit}, nil
	})

	l.Register("mod", "NN", func(args []Value) (Value, error) {
		a := args[0].(*Number)
		b := args[1].(*Number)
		if b.Value == 0 {
			return &Number{Value: 0, Unit: a.Unit}, nil
		}
		return &Number{Value: math.Mod(a.Value, b.Value), Unit: a.Unit}, nil
	})

	l.Register("min", "N+", func(args []Value) (Value, error) {
		best := args[0].(*Number)
		for _, arg := range args[1:] {
			if n := arg.(*Number); n.Value < best.Value {
				best = n
			}
		}
		return best, nil
	})

	l.Register("max", "N+", func(args []Value) (Value, error) {
		best := args[0].(*Number)
		for _, arg := range args[1:] {
			if n := arg.(*Number); n.Value > best.Value {
				best = n
			}
		}
		return best, nil
	})

	l.Register("percentage", "N", func(args []Value) (Value, error) {
		n := args[0].(*Number)
		return &Number{Value: n.Value * 100, Unit: "%"}, nil
	})

	l.Register("pi", "", func([]Value) (Value, error) {
		// the reference compiler prints pi to 8 decimal places
		return (&Number{Value: math.Pi}).Round(8), nil
	})

	changeUnit := func(args []Value) (Value, error) {
		n := args[0].(*Number)
		unit := ""
		switch u := args[1].(type) {
		case *Unit:
			unit = u.Unit
		case *String:
			unit = u.Text
		}
		return &Number{Value: n.Value, Unit: unit}, nil
	}
	l.Register("unit", "N", func(args []Value) (Value, error) {
		n := args[0].(*Number)
		return &Number{Value: n.Value}, nil
	})
	l.Register("unit", "NT", changeUnit)
	l.Register("unit", "NS", changeUnit)

	l.Register("get-unit", "N", func(args []Value) (Value, error) {
		return NewKeyword(args[0].(*Number).Unit), nil
	})

	convert := func(args []Value) (Value, error) {
		n := args[0].(*Number)
		unit := ""
		switch u := args[1].(type) {
		case *Unit:
			unit = u.Unit
		case *String:
			unit = u.Text
		}
		if converted, ok := n.ConvertTo(unit); ok {
			return converted, nil
		}
		// no conversion defined: the value passes through unchanged
		return n, nil
	}
	l.Register("convert", "NT", convert)
	l.Register("convert", "NS", convert)

	l.Register("increment", "N", func(args []Value) (Value, error) {
		n := args[0].(*Number)
		return &Number{Value: n.Value + 1, Unit: n.Unit}, nil
	})

	// type predicates
	is := func(want Type) Native {
		return func(args []Value) (Value, error) {
			return &Boolean{Value: args[0].Type() == want}, nil
		}
	}
	l.Register("isnumber", ".", is(TypeNumber))
	l.Register("iscolor", ".", is(TypeColor))
	l.Register("isurl", ".", is(TypeURL))

	l.Register("isstring", ".", func(args []Value) (Value, error) {
		s, ok := args[0].(*String)
		return &Boolean{Value: ok && s.Quoted}, nil
	})
	l.Register("iskeyword", ".", func(args []Value) (Value, error) {
		s, ok := args[0].(*String)
		return &Boolean{Value: ok && !s.Quoted}, nil
	})

	hasUnit := func(unit string) Native {
		return func(args []Value) (Value, error) {
			n, ok := args[0].(*Number)
			return &Boolean{Value: ok && n.Unit == unit}, nil
		}
	}
	l.Register("ispixel", ".", hasUnit("px"))
	l.Register("isem", ".", hasUnit("em"))
	l.Register("ispercentage", ".", hasUnit("%"))

	isUnitOf := func(args []Value) (Value, error) {
		n, ok := args[0].(*Number)
		if !ok {
			return &Boolean{Value: false}, nil
		}
		unit := ""
		switch u := args[1].(type) {
		case *Unit:
			unit = u.Unit
		case *String:
			unit = u.Text
		}
		return &Boolean{Value: n.Unit == unit}, nil
	}
	l.Register("isunit", ".T", isUnitOf)
	l.Register("isunit", ".S", isUnitOf)

	l.Register("boolean", ".", func(args []Value) (Value, error) {
		return &Boolean{Value: Truthy(args[0])}, nil
	})

	l.Register("if", "B..", func(args []Value) (Value, error) {
		if args[0].(*Boolean).Value {
			return args[1], nil
		}
		return args[2], nil
	})
}

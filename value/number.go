package value

import (
	"math"
	"strconv"

	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
)

// Number is a numeric value with an optional unit. The empty unit is the
// bare number.
type Number struct {
	Value float64
	Unit  string
}

// unitGroups maps convertible units to their ratio against the group's base
// unit. Units in the same group convert; px and the font-relative units are
// deliberately absent, matching the language: 1px + 2em keeps px.
var unitGroups = map[string]map[string]float64{
	// base millimeter
	"length": {
		"m":  1000,
		"cm": 10,
		"mm": 1,
		"in": 25.4,
		"pt": 25.4 / 72,
		"pc": 25.4 / 6,
	},
	// base millisecond
	"duration": {
		"s":  1000,
		"ms": 1,
	},
	// base degree
	"angle": {
		"rad":  180 / math.Pi,
		"deg":  1,
		"grad": 0.9,
		"turn": 360,
	},
}

// knownUnits is every unit the value model accepts as a bare identifier.
var knownUnits = map[string]bool{
	"em": true, "ex": true, "px": true, "ch": true,
	"in": true, "mm": true, "cm": true, "pt": true, "pc": true,
	"ms": true, "m": true, "s": true,
	"rad": true, "deg": true, "grad": true, "turn": true,
	"%": true,
}

// IsUnit reports whether name is a recognized unit identifier.
func IsUnit(name string) bool {
	return knownUnits[name]
}

// unitGroup returns the conversion group a unit belongs to, or "".
func unitGroup(unit string) string {
	for group, units := range unitGroups {
		if _, ok := units[unit]; ok {
			return group
		}
	}
	return ""
}

// ParseNumber builds a Number from a NUMBER, PERCENTAGE or DIMENSION token.
func ParseNumber(t tokens.Token) (*Number, error) {
	text := t.Text
	unit := ""

	switch t.Kind {
	case tokens.Percentage:
		unit = "%"
		text = strings.TrimSuffix(text, "%")
	case tokens.Dimension:
		i := len(text)
		for i > 0 && !isNumericChar(text[i-1]) {
			i--
		}
		unit = text[i:]
		text = text[:i]
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, lesserr.New(lesserr.Value, "malformed number %q", t.Text)
	}
	return &Number{Value: v, Unit: unit}, nil
}

func isNumericChar(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (n *Number) Type() Type {
	return TypeNumber
}

// ConvertTo returns the number expressed in the target unit, when a
// conversion between the two units exists.
func (n *Number) ConvertTo(unit string) (*Number, bool) {
	if n.Unit == unit {
		return n, true
	}
	group := unitGroup(n.Unit)
	if group == "" || group != unitGroup(unit) {
		return nil, false
	}
	ratios := unitGroups[group]
	return &Number{Value: n.Value * ratios[n.Unit] / ratios[unit], Unit: unit}, true
}

// coerce expresses other in the unit of n per the language's unit rules: a
// unitless operand adopts n's unit, a convertible unit converts, anything
// else keeps n's unit with the raw magnitude. The reported flag is false
// when units differed and no conversion existed.
func (n *Number) coerce(other *Number) (float64, bool) {
	switch {
	case other.Unit == "" || n.Unit == "" || other.Unit == n.Unit:
		return other.Value, true
	default:
		if converted, ok := other.ConvertTo(n.Unit); ok {
			return converted.Value, true
		}
		return other.Value, false
	}
}

// resultUnit is n's unit unless n is unitless and the other operand is not.
func (n *Number) resultUnit(other *Number) string {
	if n.Unit == "" {
		return other.Unit
	}
	return n.Unit
}

func (n *Number) Add(other Value) (Value, error) {
	switch o := other.(type) {
	case *Number:
		v, _ := n.coerce(o)
		return &Number{Value: n.Value + v, Unit: n.resultUnit(o)}, nil
	case *Color:
		return o.addScalar(n.Value), nil
	}
	return nil, typeError("+", n, other)
}

func (n *Number) Subtract(other Value) (Value, error) {
	switch o := other.(type) {
	case *Number:
		v, _ := n.coerce(o)
		return &Number{Value: n.Value - v, Unit: n.resultUnit(o)}, nil
	}
	return nil, typeError("-", n, other)
}

func (n *Number) Multiply(other Value) (Value, error) {
	switch o := other.(type) {
	case *Number:
		v, _ := n.coerce(o)
		return &Number{Value: n.Value * v, Unit: n.resultUnit(o)}, nil
	case *Color:
		return o.mapComponents(func(c float64) float64 { return c * n.Value }), nil
	}
	return nil, typeError("*", n, other)
}

func (n *Number) Divide(other Value) (Value, error) {
	switch o := other.(type) {
	case *Number:
		v, _ := n.coerce(o)
		if v == 0 {
			return nil, lesserr.New(lesserr.Arithmetic, "division by zero")
		}
		return &Number{Value: n.Value / v, Unit: n.resultUnit(o)}, nil
	}
	return nil, typeError("/", n, other)
}

func (n *Number) compare(other Value, op string) (float64, float64, error) {
	o, ok := other.(*Number)
	if !ok {
		return 0, 0, typeError(op, n, other)
	}
	v, _ := n.coerce(o)
	return n.Value, v, nil
}

func (n *Number) Equals(other Value) (Value, error) {
	a, b, err := n.compare(other, "=")
	if err != nil {
		// = is defined across the whole sum type; mismatched members
		// compare unequal.
		return &Boolean{Value: false}, nil
	}
	return &Boolean{Value: a == b}, nil
}

func (n *Number) Less(other Value) (Value, error) {
	a, b, err := n.compare(other, "<")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: a < b}, nil
}

func (n *Number) Greater(other Value) (Value, error) {
	a, b, err := n.compare(other, ">")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: a > b}, nil
}

func (n *Number) LessEq(other Value) (Value, error) {
	a, b, err := n.compare(other, "=<")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: a <= b}, nil
}

func (n *Number) GreaterEq(other Value) (Value, error) {
	a, b, err := n.compare(other, ">=")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: a >= b}, nil
}

// String formats the magnitude the way stylesheets expect: no exponent and
// no trailing zeros.
func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

func (n *Number) Tokens() *tokens.TokenList {
	kind := tokens.Number
	switch {
	case n.Unit == "%":
		kind = tokens.Percentage
	case n.Unit != "":
		kind = tokens.Dimension
	}
	return tokens.NewList(tokens.New(n.String(), kind))
}

// Round returns the value rounded to the given number of decimal places.
func (n *Number) Round(places int) *Number {
	scale := math.Pow(10, float64(places))
	return &Number{Value: math.Round(n.Value*scale) / scale, Unit: n.Unit}
}

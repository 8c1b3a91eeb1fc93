package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
)

// Color is an RGBA color. R, G and B are kept in [0,255], A in [0,1].
// origin preserves the source spelling (hex or name) so an untouched color
// re-emits exactly as written.
type Color struct {
	R, G, B float64
	A       float64
	origin  string
}

// NewColor builds a color from components, clamped into range.
func NewColor(r, g, b, a float64) *Color {
	return &Color{
		R: clamp(r, 0, 255),
		G: clamp(g, 0, 255),
		B: clamp(b, 0, 255),
		A: clamp(a, 0, 1),
	}
}

// namedColors covers the CSS basic palette plus the extended names that
// commonly appear as function arguments.
var namedColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"magenta": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
	"cyan":    "#00ffff",
	"orange":  "#ffa500",
	"brown":   "#a52a2a",
	"pink":    "#ffc0cb",
	"gold":    "#ffd700",
	"indigo":  "#4b0082",
	"violet":  "#ee82ee",
	"khaki":   "#f0e68c",
	"salmon":  "#fa8072",
	"coral":   "#ff7f50",
	"tomato":  "#ff6347",
	"crimson": "#dc143c",
	"beige":   "#f5f5dc",
	"ivory":   "#fffff0",
	"tan":     "#d2b48c",
	"plum":    "#dda0dd",
	"orchid":  "#da70d6",
	"azure":   "#f0ffff",
	"wheat":   "#f5deb3",
	"sienna":  "#a0522d",
	"transparent": "#00000000",
}

// ParseHexColor parses a HASH token (#fff, #ffff, #ffffff, #ffffffff).
func ParseHexColor(t tokens.Token) (*Color, error) {
	c, err := parseHex(t.Text)
	if err != nil {
		return nil, err
	}
	c.origin = t.Text
	return c, nil
}

// NamedColor resolves a CSS color name; the second result is false when the
// identifier is not a known name.
func NamedColor(name string) (*Color, bool) {
	hex, ok := namedColors[name]
	if !ok {
		return nil, false
	}
	c, err := parseHex(hex)
	if err != nil {
		return nil, false
	}
	c.origin = name
	return c, true
}

func parseHex(s string) (*Color, error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	digit := func(i int) float64 {
		n, _ := strconv.ParseInt(hex[i:i+1], 16, 64)
		return float64(n)
	}
	pair := func(i int) float64 {
		n, _ := strconv.ParseInt(hex[i:i+2], 16, 64)
		return float64(n)
	}

	for _, ch := range hex {
		if !isHexDigit(byte(ch)) {
			return nil, lesserr.New(lesserr.Value, "bad hex color %q", s)
		}
	}

	c := &Color{A: 1}
	switch len(hex) {
	case 3:
		c.R, c.G, c.B = digit(0)*17, digit(1)*17, digit(2)*17
	case 4:
		c.R, c.G, c.B = digit(0)*17, digit(1)*17, digit(2)*17
		c.A = digit(3) / 15
	case 6:
		c.R, c.G, c.B = pair(0), pair(2), pair(4)
	case 8:
		c.R, c.G, c.B = pair(0), pair(2), pair(4)
		c.A = pair(6) / 255
	default:
		return nil, lesserr.New(lesserr.Value, "bad hex color %q", s)
	}
	return c, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (c *Color) Type() Type {
	return TypeColor
}

// mapComponents applies f to each RGB component, clamping the result. The
// origin spelling no longer matches a computed color and is dropped.
func (c *Color) mapComponents(f func(float64) float64) *Color {
	return NewColor(f(c.R), f(c.G), f(c.B), c.A)
}

func (c *Color) addScalar(v float64) *Color {
	return c.mapComponents(func(x float64) float64 { return x + v })
}

// combine merges two colors component-wise. Alpha comes from the left
// operand unless both operands carry one, in which case the smaller wins.
func (c *Color) combine(other *Color, f func(a, b float64) float64) *Color {
	return NewColor(
		f(c.R, other.R),
		f(c.G, other.G),
		f(c.B, other.B),
		math.Min(c.A, other.A),
	)
}

func (c *Color) Add(other Value) (Value, error) {
	switch o := other.(type) {
	case *Color:
		return c.combine(o, func(a, b float64) float64 { return a + b }), nil
	case *Number:
		return c.addScalar(o.Value), nil
	}
	return nil, typeError("+", c, other)
}

func (c *Color) Subtract(other Value) (Value, error) {
	switch o := other.(type) {
	case *Color:
		return c.combine(o, func(a, b float64) float64 { return a - b }), nil
	case *Number:
		return c.addScalar(-o.Value), nil
	}
	return nil, typeError("-", c, other)
}

func (c *Color) Multiply(other Value) (Value, error) {
	switch o := other.(type) {
	case *Color:
		return c.combine(o, func(a, b float64) float64 { return a * b }), nil
	case *Number:
		return c.mapComponents(func(x float64) float64 { return x * o.Value }), nil
	}
	return nil, typeError("*", c, other)
}

func (c *Color) Divide(other Value) (Value, error) {
	switch o := other.(type) {
	case *Color:
		if o.R == 0 || o.G == 0 || o.B == 0 {
			return nil, lesserr.New(lesserr.Arithmetic, "division by zero")
		}
		return c.combine(o, func(a, b float64) float64 { return a / b }), nil
	case *Number:
		if o.Value == 0 {
			return nil, lesserr.New(lesserr.Arithmetic, "division by zero")
		}
		return c.mapComponents(func(x float64) float64 { return x / o.Value }), nil
	}
	return nil, typeError("/", c, other)
}

func (c *Color) Equals(other Value) (Value, error) {
	o, ok := other.(*Color)
	if !ok {
		return &Boolean{Value: false}, nil
	}
	return &Boolean{Value: c.R == o.R && c.G == o.G && c.B == o.B && c.A == o.A}, nil
}

func (c *Color) Less(other Value) (Value, error) {
	return nil, typeError("<", c, other)
}

func (c *Color) Greater(other Value) (Value, error) {
	return nil, typeError(">", c, other)
}

func (c *Color) LessEq(other Value) (Value, error) {
	return nil, typeError("=<", c, other)
}

func (c *Color) GreaterEq(other Value) (Value, error) {
	return nil, typeError(">=", c, other)
}

// Hex returns the #rrggbb spelling.
func (c *Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(math.Round(c.R)), uint8(math.Round(c.G)), uint8(math.Round(c.B)))
}

// String prints the color: the original spelling when untouched, #rrggbb
// when opaque, rgba() otherwise.
func (c *Color) String() string {
	if c.origin != "" {
		return c.origin
	}
	if c.A >= 1 {
		return c.Hex()
	}
	alpha := strconv.FormatFloat(c.A, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)",
		int(math.Round(c.R)), int(math.Round(c.G)), int(math.Round(c.B)), alpha)
}

func (c *Color) Tokens() *tokens.TokenList {
	s := c.String()
	if len(s) > 0 && s[0] == '#' {
		return tokens.NewList(tokens.New(s, tokens.Hash))
	}
	return tokens.NewList(tokens.New(s, tokens.Identifier))
}

// HSL returns hue in degrees, saturation and lightness in [0,1].
// Adapted from the classic RGB<->HSL identities.
func (c *Color) HSL() (h, s, l float64) {
	r, g, b := c.R/255, c.G/255, c.B/255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

// FromHSL builds a color from hue (degrees), saturation and lightness in
// [0,1], keeping the given alpha.
func FromHSL(h, s, l, a float64) *Color {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	s = clamp(s, 0, 1)
	l = clamp(l, 0, 1)

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}
	return NewColor(r*255, g*255, b*255, a)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// Lighten raises lightness by amount in [0,1].
func (c *Color) Lighten(amount float64) *Color {
	h, s, l := c.HSL()
	return FromHSL(h, s, l+amount, c.A)
}

// Darken lowers lightness by amount in [0,1].
func (c *Color) Darken(amount float64) *Color {
	h, s, l := c.HSL()
	return FromHSL(h, s, l-amount, c.A)
}

// Saturate raises saturation by amount in [0,1].
func (c *Color) Saturate(amount float64) *Color {
	h, s, l := c.HSL()
	return FromHSL(h, s+amount, l, c.A)
}

// Desaturate lowers saturation by amount in [0,1].
func (c *Color) Desaturate(amount float64) *Color {
	h, s, l := c.HSL()
	return FromHSL(h, s-amount, l, c.A)
}

// Spin rotates the hue by the given number of degrees.
func (c *Color) Spin(degrees float64) *Color {
	h, s, l := c.HSL()
	return FromHSL(h+degrees, s, l, c.A)
}

// Greyscale removes all saturation.
func (c *Color) Greyscale() *Color {
	return c.Desaturate(1)
}

// Mix blends c with other; weight is the share of c in [0,1].
// Ported from the SASS-compatible algorithm the language documents.
func (c *Color) Mix(other *Color, weight float64) *Color {
	w := weight*2 - 1
	a := c.A - other.A

	var w1 float64
	if w*a == -1 {
		w1 = (w + 1) / 2
	} else {
		w1 = ((w+a)/(1+w*a) + 1) / 2
	}
	w2 := 1 - w1

	return NewColor(
		c.R*w1+other.R*w2,
		c.G*w1+other.G*w2,
		c.B*w1+other.B*w2,
		c.A*weight+other.A*(1-weight),
	)
}

// Luma is the perceptual brightness in [0,1] with gamma correction.
func (c *Color) Luma() float64 {
	channel := func(v float64) float64 {
		v = v / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(c.R) + 0.7152*channel(c.G) + 0.0722*channel(c.B)
}

// WithAlpha returns a copy with the given alpha.
func (c *Color) WithAlpha(a float64) *Color {
	return NewColor(c.R, c.G, c.B, a)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

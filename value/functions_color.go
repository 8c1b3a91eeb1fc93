package value

import (
	"fmt"
	"math"
)

// loadColorFunctions registers the color builtins. The HSL manipulation
// family takes its amount as a percentage.
func loadColorFunctions(l *Library) {
	num := func(v Value) float64 { return v.(*Number).Value }

	// percentage arguments arrive as 0-100 regardless of the % sign
	amount := func(v Value) float64 { return clamp(num(v)/100, 0, 1) }

	l.Register("rgb", "NNN", func(args []Value) (Value, error) {
		return NewColor(num(args[0]), num(args[1]), num(args[2]), 1), nil
	})

	l.Register("rgba", "NNNN", func(args []Value) (Value, error) {
		return NewColor(num(args[0]), num(args[1]), num(args[2]), num(args[3])), nil
	})
	l.Register("rgba", "CN", func(args []Value) (Value, error) {
		c := args[0].(*Color)
		return c.WithAlpha(num(args[1])), nil
	})

	hsl := func(args []Value) (Value, error) {
		h := num(args[0])
		s := hslRatio(args[1].(*Number))
		lightness := hslRatio(args[2].(*Number))
		a := 1.0
		if len(args) > 3 {
			a = num(args[3])
		}
		return FromHSL(h, s, lightness, a), nil
	}
	l.Register("hsl", "NNN", hsl)
	l.Register("hsla", "NNNN", hsl)

	channel := func(f func(*Color) float64, unit string) Native {
		return func(args []Value) (Value, error) {
			return &Number{Value: f(args[0].(*Color)), Unit: unit}, nil
		}
	}
	l.Register("red", "C", channel(func(c *Color) float64 { return math.Round(c.R) }, ""))
	l.Register("green", "C", channel(func(c *Color) float64 { return math.Round(c.G) }, ""))
	l.Register("blue", "C", channel(func(c *Color) float64 { return math.Round(c.B) }, ""))
	l.Register("alpha", "C", channel(func(c *Color) float64 { return c.A }, ""))

	l.Register("hue", "C", channel(func(c *Color) float64 {
		h, _, _ := c.HSL()
		return math.Round(h)
	}, ""))
	l.Register("saturation", "C", channel(func(c *Color) float64 {
		_, s, _ := c.HSL()
		return math.Round(s * 100)
	}, "%"))
	l.Register("lightness", "C", channel(func(c *Color) float64 {
		_, _, lt := c.HSL()
		return math.Round(lt * 100)
	}, "%"))

	l.Register("luma", "C", func(args []Value) (Value, error) {
		c := args[0].(*Color)
		return (&Number{Value: c.Luma() * c.A * 100, Unit: "%"}).Round(2), nil
	})
	l.Register("luminance", "C", func(args []Value) (Value, error) {
		return (&Number{Value: args[0].(*Color).Luma() * 100, Unit: "%"}).Round(2), nil
	})

	adjust := func(f func(*Color, float64) *Color) Native {
		return func(args []Value) (Value, error) {
			return f(args[0].(*Color), amount(args[1])), nil
		}
	}
	l.Register("lighten", "CN", adjust((*Color).Lighten))
	l.Register("darken", "CN", adjust((*Color).Darken))
	l.Register("saturate", "CN", adjust((*Color).Saturate))
	l.Register("desaturate", "CN", adjust((*Color).Desaturate))

	l.Register("spin", "CN", func(args []Value) (Value, error) {
		return args[0].(*Color).Spin(num(args[1])), nil
	})

	l.Register("greyscale", "C", func(args []Value) (Value, error) {
		return args[0].(*Color).Greyscale(), nil
	})
	l.Register("grayscale", "C", func(args []Value) (Value, error) {
		return args[0].(*Color).Greyscale(), nil
	})

	l.Register("mix", "CC", func(args []Value) (Value, error) {
		return args[0].(*Color).Mix(args[1].(*Color), 0.5), nil
	})
	l.Register("mix", "CCN", func(args []Value) (Value, error) {
		return args[0].(*Color).Mix(args[1].(*Color), amount(args[2])), nil
	})

	l.Register("tint", "CN", func(args []Value) (Value, error) {
		white, _ := NamedColor("white")
		return white.Mix(args[0].(*Color), amount(args[1])), nil
	})
	l.Register("shade", "CN", func(args []Value) (Value, error) {
		black, _ := NamedColor("black")
		return black.Mix(args[0].(*Color), amount(args[1])), nil
	})

	l.Register("fade", "CN", func(args []Value) (Value, error) {
		return args[0].(*Color).WithAlpha(amount(args[1])), nil
	})
	l.Register("fadein", "CN", func(args []Value) (Value, error) {
		c := args[0].(*Color)
		return c.WithAlpha(c.A + amount(args[1])), nil
	})
	l.Register("fadeout", "CN", func(args []Value) (Value, error) {
		c := args[0].(*Color)
		return c.WithAlpha(c.A - amount(args[1])), nil
	})

	contrast := func(args []Value) (Value, error) {
		c := args[0].(*Color)
		dark, _ := NamedColor("black")
		light, _ := NamedColor("white")
		threshold := 0.43
		if len(args) > 1 {
			dark = args[1].(*Color)
		}
		if len(args) > 2 {
			light = args[2].(*Color)
		}
		if len(args) > 3 {
			threshold = num(args[3]) / 100
		}
		// the darker candidate goes on bright backgrounds
		if dark.Luma() > light.Luma() {
			dark, light = light, dark
		}
		if c.Luma() < threshold {
			return light, nil
		}
		return dark, nil
	}
	l.Register("contrast", "C", contrast)
	l.Register("contrast", "CC", contrast)
	l.Register("contrast", "CCC", contrast)
	l.Register("contrast", "CCCN", contrast)

	l.Register("argb", "C", func(args []Value) (Value, error) {
		c := args[0].(*Color)
		return NewKeyword(fmt.Sprintf("#%02x%02x%02x%02x",
			uint8(math.Round(c.A*255)), uint8(math.Round(c.R)),
			uint8(math.Round(c.G)), uint8(math.Round(c.B)))), nil
	})
}

// hslRatio normalizes an hsl() component: percentages map to [0,1], bare
// numbers are taken as ratios already.
func hslRatio(n *Number) float64 {
	if n.Unit == "%" {
		return clamp(n.Value/100, 0, 1)
	}
	return clamp(n.Value, 0, 1)
}

package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
	"github.com/titpetric/lessc/value"
)

func hex(t *testing.T, text string) *value.Color {
	t.Helper()
	c, err := value.ParseHexColor(tokens.New(text, tokens.Hash))
	require.NoError(t, err)
	return c
}

func TestParseHexColor(t *testing.T) {
	c := hex(t, "#ff0044")
	require.Equal(t, float64(255), c.R)
	require.Equal(t, float64(0), c.G)
	require.Equal(t, float64(68), c.B)
	require.Equal(t, float64(1), c.A)

	short := hex(t, "#fff")
	require.Equal(t, float64(255), short.R)
	require.Equal(t, float64(255), short.B)

	_, err := value.ParseHexColor(tokens.New("#header", tokens.Hash))
	require.Error(t, err)
	require.True(t, lesserr.IsKind(err, lesserr.Value))
}

func TestColorOriginPreserved(t *testing.T) {
	// untouched colors re-emit exactly as written
	require.Equal(t, "#fff", hex(t, "#fff").String())

	named, ok := value.NamedColor("red")
	require.True(t, ok)
	require.Equal(t, "red", named.String())
}

func TestColorAddition(t *testing.T) {
	sum, err := hex(t, "#ff0000").Add(hex(t, "#000044"))
	require.NoError(t, err)
	require.Equal(t, "#ff0044", sum.(*value.Color).String())
}

func TestColorArithmeticClamps(t *testing.T) {
	sum, err := hex(t, "#ffffff").Add(hex(t, "#808080"))
	require.NoError(t, err)
	require.Equal(t, "#ffffff", sum.(*value.Color).String())

	diff, err := hex(t, "#000000").Subtract(hex(t, "#101010"))
	require.NoError(t, err)
	require.Equal(t, "#000000", diff.(*value.Color).String())
}

func TestColorEquality(t *testing.T) {
	eq, err := hex(t, "#ff0000").Equals(hex(t, "#ff0000"))
	require.NoError(t, err)
	require.True(t, eq.(*value.Boolean).Value)

	ne, err := hex(t, "#ff0000").Equals(hex(t, "#ff0001"))
	require.NoError(t, err)
	require.False(t, ne.(*value.Boolean).Value)
}

func TestColorOrderingUndefined(t *testing.T) {
	_, err := hex(t, "#ff0000").Less(hex(t, "#00ff00"))
	require.Error(t, err)
	require.True(t, lesserr.IsKind(err, lesserr.Type))
}

func TestHSLRoundTrip(t *testing.T) {
	h, s, l := hex(t, "#ff0000").HSL()
	require.InDelta(t, 0, h, 0.01)
	require.InDelta(t, 1, s, 0.01)
	require.InDelta(t, 0.5, l, 0.01)

	back := value.FromHSL(h, s, l, 1)
	require.Equal(t, "#ff0000", back.Hex())
}

func TestLightenDarken(t *testing.T) {
	c := hex(t, "#800000")

	lighter := c.Lighten(0.1)
	_, _, l0 := c.HSL()
	_, _, l1 := lighter.HSL()
	require.Greater(t, l1, l0)

	darker := c.Darken(0.1)
	_, _, l2 := darker.HSL()
	require.Less(t, l2, l0)
}

func TestMix(t *testing.T) {
	mixed := hex(t, "#ff0000").Mix(hex(t, "#0000ff"), 0.5)
	require.Equal(t, "#800080", mixed.Hex())
}

func TestLuma(t *testing.T) {
	require.InDelta(t, 1, hex(t, "#ffffff").Luma(), 0.001)
	require.InDelta(t, 0, hex(t, "#000000").Luma(), 0.001)
}

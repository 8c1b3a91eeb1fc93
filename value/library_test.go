package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
	"github.com/titpetric/lessc/value"
)

func TestLibraryDispatch(t *testing.T) {
	lib := value.DefaultLibrary()

	out, err := lib.Call("floor", []value.Value{num(t, "2.6px", tokens.Dimension)})
	require.NoError(t, err)
	require.Equal(t, "2px", out.(*value.Number).String())
}

func TestLibraryCaseInsensitive(t *testing.T) {
	lib := value.DefaultLibrary()
	require.True(t, lib.Exists("FLOOR"))
	require.True(t, lib.Exists("Lighten"))
	require.False(t, lib.Exists("no-such-function"))

	_, err := lib.Call("CEIL", []value.Value{num(t, "1.2", tokens.Number)})
	require.NoError(t, err)
}

func TestLibraryOverloads(t *testing.T) {
	lib := value.DefaultLibrary()

	one, err := lib.Call("round", []value.Value{num(t, "2.567", tokens.Number)})
	require.NoError(t, err)
	require.Equal(t, "3", one.(*value.Number).String())

	two, err := lib.Call("round", []value.Value{
		num(t, "2.567", tokens.Number),
		num(t, "2", tokens.Number),
	})
	require.NoError(t, err)
	require.Equal(t, "2.57", two.(*value.Number).String())
}

func TestLibraryArityError(t *testing.T) {
	lib := value.DefaultLibrary()

	_, err := lib.Call("lighten", []value.Value{num(t, "10", tokens.Number)})
	require.Error(t, err)
	require.True(t, lesserr.IsKind(err, lesserr.FunctionArity))
	// the diagnostic carries the printed call and accepted signature
	require.Contains(t, err.Error(), "lighten(10)")
	require.Contains(t, err.Error(), "color")
}

func TestLibraryVariadic(t *testing.T) {
	lib := value.DefaultLibrary()

	out, err := lib.Call("max", []value.Value{
		num(t, "1px", tokens.Dimension),
		num(t, "5px", tokens.Dimension),
		num(t, "3px", tokens.Dimension),
	})
	require.NoError(t, err)
	require.Equal(t, "5px", out.(*value.Number).String())
}

func TestLibraryColorFunctions(t *testing.T) {
	lib := value.DefaultLibrary()

	c, err := lib.Call("rgb", []value.Value{
		num(t, "255", tokens.Number),
		num(t, "0", tokens.Number),
		num(t, "68", tokens.Number),
	})
	require.NoError(t, err)
	require.Equal(t, "#ff0044", c.(*value.Color).String())

	hue, err := lib.Call("hue", []value.Value{hex(t, "#00ff00")})
	require.NoError(t, err)
	require.Equal(t, "120", hue.(*value.Number).String())
}

func TestLibraryStringFunctions(t *testing.T) {
	lib := value.DefaultLibrary()

	e, err := lib.Call("e", []value.Value{
		value.NewQuotedString(tokens.New(`"ms:something"`, tokens.String)),
	})
	require.NoError(t, err)
	s := e.(*value.String)
	require.False(t, s.Quoted)
	require.Equal(t, "ms:something", s.Text)

	formatted, err := lib.Call("%", []value.Value{
		value.NewQuotedString(tokens.New(`"width: %s"`, tokens.String)),
		num(t, "10px", tokens.Dimension),
	})
	require.NoError(t, err)
	require.Equal(t, `"width: 10px"`, formatted.(*value.String).String())
}

package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/parser"
	"github.com/titpetric/lessc/tokens"
	"github.com/titpetric/lessc/value"
)

// mapScope resolves variables from literal LESS source snippets.
type mapScope map[string]string

func (m mapScope) Variable(name string) *tokens.TokenList {
	src, ok := m[name]
	if !ok {
		return nil
	}
	return list(src)
}

func list(src string) *tokens.TokenList {
	return tokens.NewList(parser.NewLexer(src, "test.less").Tokenize()...)
}

func process(t *testing.T, src string, scope mapScope) string {
	t.Helper()
	l := list(src)
	p := value.NewProcessor(nil)
	require.NoError(t, p.ProcessValue(l, scope))
	return l.String()
}

func TestProcessValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		scope    mapScope
		expected string
	}{
		{"variable", "@w", mapScope{"@w": "10px"}, "10px"},
		{"multiply", "@w * 2", mapScope{"@w": "10px"}, "20px"},
		{"add units", "1px + 2", nil, "3px"},
		{"no conversion keeps left", "1px + 2em", nil, "3px"},
		{"angle conversion", "180deg + 1turn", nil, "540deg"},
		{"duration conversion", "1s + 100ms", nil, "1.1s"},
		{"precedence", "2 + 3 * 4", nil, "14"},
		{"parens", "(2 + 3) * 4", nil, "20"},
		{"negation", "-@w", mapScope{"@w": "5px"}, "-5px"},
		{"color arithmetic", "#ff0000 + #000044", nil, "#ff0044"},
		{"function call", "floor(2.6px)", nil, "2px"},
		{"nested function", "ceil(1.1 + 0.4)", nil, "2"},
		{"keyword list", "1px solid @c", mapScope{"@c": "red"}, "1px solid red"},
		{"escape", `~"anything: @{w}"`, mapScope{"@w": "10px"}, "anything: 10px"},
		{"unknown function passes through", "repeat(2,1fr)", nil, "repeat(2,1fr)"},
		{"deep variable", "@@name", mapScope{"@name": `"width"`, "@width": "10px"}, "10px"},
		{"string concat", `"a" + "b"`, nil, `"ab"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, process(t, tt.input, tt.scope))
		})
	}
}

// TestProcessValueFastPath pins the needsProcessing contract: lists without
// variables, escapes, operators or known calls are only touched by string
// interpolation.
func TestProcessValueFastPath(t *testing.T) {
	p := value.NewProcessor(nil)

	l := list(`1px   solid  #ddd`)
	original := l.Clone()
	require.False(t, p.NeedsProcessing(l))
	require.NoError(t, p.ProcessValue(l, mapScope{}))
	require.True(t, original.Equals(l))

	// strings still interpolate on the fast path
	s := list(`"hello @{n}"`)
	require.NoError(t, p.ProcessValue(s, mapScope{"@n": `"world"`}))
	require.Equal(t, `"hello world"`, s.String())
}

func TestProcessValueIdempotent(t *testing.T) {
	p := value.NewProcessor(nil)

	l := list("@w * 2")
	require.NoError(t, p.ProcessValue(l, mapScope{"@w": "10px"}))
	first := l.String()

	require.NoError(t, p.ProcessValue(l, mapScope{"@w": "10px"}))
	require.Equal(t, first, l.String())
}

func TestInterpolateUnknownStaysVerbatim(t *testing.T) {
	p := value.NewProcessor(nil)

	l := list(`"hello @{missing}"`)
	require.NoError(t, p.ProcessValue(l, mapScope{}))
	require.Equal(t, `"hello @{missing}"`, l.String())
}

func TestDeepVariableNonStringIsNone(t *testing.T) {
	// @name is bound to a number, not a single quoted string: the deep
	// variable does not resolve and the tokens stay in place
	result := process(t, "@@name", mapScope{"@name": "10px"})
	require.Equal(t, "@@name", result)
}

func TestProcessValueDivisionByZero(t *testing.T) {
	p := value.NewProcessor(nil)
	err := p.ProcessValue(list("1 / 0"), mapScope{})
	require.Error(t, err)
	require.True(t, lesserr.IsKind(err, lesserr.Arithmetic))
}

func TestVariableBoundToNonValueSplices(t *testing.T) {
	// a variable holding a token sequence that is not a single value
	// expression splices its evaluated tokens
	result := process(t, "@list", mapScope{"@list": "1px 2px 3px"})
	require.Equal(t, "1px 2px 3px", result)
}

func TestUnresolvedVariableStays(t *testing.T) {
	result := process(t, "@missing + 0px", mapScope{})
	require.Equal(t, "@missing + 0px", result)
}

func TestValidateCondition(t *testing.T) {
	p := value.NewProcessor(nil)

	tests := []struct {
		name     string
		cond     string
		scope    mapScope
		expected bool
	}{
		{"greater", "(@x > 0)", mapScope{"@x": "3"}, true},
		{"greater false", "(@x > 0)", mapScope{"@x": "-1"}, false},
		{"less equal", "(@x <= 0)", mapScope{"@x": "-1"}, true},
		{"and", "(@x > 0) and (@y > 0)", mapScope{"@x": "1", "@y": "2"}, true},
		{"and fails", "(@x > 0) and (@y > 0)", mapScope{"@x": "1", "@y": "-2"}, false},
		{"comma conjunction", "(@x > 0), (@y > 0)", mapScope{"@x": "1", "@y": "2"}, true},
		{"bare true", "(true)", nil, true},
		{"bare keyword is false", "(dark)", nil, false},
		{"equality on keyword", "(@mode = dark)", mapScope{"@mode": "dark"}, true},
		{"or via expression engine", "(@x > 0) or (@y > 0)", mapScope{"@x": "-1", "@y": "2"}, true},
		{"not via expression engine", "not (@x > 0)", mapScope{"@x": "-1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := p.ValidateCondition(list(tt.cond), tt.scope)
			require.NoError(t, err)
			require.Equal(t, tt.expected, ok)
		})
	}
}

func TestFunctionArityErrorSurfaces(t *testing.T) {
	p := value.NewProcessor(nil)
	err := p.ProcessValue(list("lighten(10, 20)"), mapScope{})
	require.Error(t, err)
	require.True(t, lesserr.IsKind(err, lesserr.FunctionArity))
}

func TestUnitMismatchWarning(t *testing.T) {
	p := value.NewProcessor(nil)

	scope := &warnScope{vars: mapScope{}}
	l := list("1px + 2em")
	require.NoError(t, p.ProcessValue(l, scope))
	require.Equal(t, "3px", l.String())
	require.Len(t, scope.warnings, 1)
}

type warnScope struct {
	vars     mapScope
	warnings []string
}

func (w *warnScope) Variable(name string) *tokens.TokenList {
	return w.vars.Variable(name)
}

func (w *warnScope) Warnf(format string, args ...any) {
	w.warnings = append(w.warnings, format)
}

package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc/evaluator"
	"github.com/titpetric/lessc/parser"
	"github.com/titpetric/lessc/tokens"
)

func toks(src string) []tokens.Token {
	return parser.NewLexer(src, "test.less").Tokenize()
}

func resolver(vars map[string]string) evaluator.Resolver {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestEvalBool(t *testing.T) {
	tests := []struct {
		name     string
		cond     string
		vars     map[string]string
		expected bool
	}{
		{"or left", "(@x > 0) or (@y > 0)", map[string]string{"x": "1", "y": "-1"}, true},
		{"or right", "(@x > 0) or (@y > 0)", map[string]string{"x": "-1", "y": "1"}, true},
		{"or neither", "(@x > 0) or (@y > 0)", map[string]string{"x": "-1", "y": "-1"}, false},
		{"not", "not (@x > 10)", map[string]string{"x": "5"}, true},
		{"and or mix", "(@a > 0) and ((@b > 0) or (@c > 0))", map[string]string{"a": "1", "b": "-1", "c": "1"}, true},
		{"units are stripped", "@w > 12px", map[string]string{"w": "14px"}, true},
		{"percentage scales", "@r > 25%", map[string]string{"r": "50%"}, true},
		{"keyword equality", "@mode = dark", map[string]string{"mode": "dark"}, true},
		{"keyword inequality", "@mode = dark", map[string]string{"mode": "light"}, false},
		{"two char operator", "@x >= 3", map[string]string{"x": "3"}, true},
		{"reversed two char", "@x =< 3", map[string]string{"x": "2"}, true},
		{"dashed variable name", "@base-size > 10", map[string]string{"base-size": "12px"}, true},
		{"boolean variable", "@on", map[string]string{"on": "true"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluator.EvalBool(toks(tt.cond), resolver(tt.vars))
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestEvalBoolUnboundVariable(t *testing.T) {
	// unresolved variables evaluate as undefined and fail comparisons
	got, err := evaluator.EvalBool(toks("@missing > 0"), resolver(nil))
	require.NoError(t, err)
	require.False(t, got)
}

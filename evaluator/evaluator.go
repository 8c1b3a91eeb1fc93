// Package evaluator bridges guard conditions to the expr expression engine.
// The value processor evaluates plain comparison guards natively; conditions
// using boolean algebra (or, not, nested grouping) are translated into an
// expr program over the resolved variable values and run here.
package evaluator

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"

	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/tokens"
)

// Resolver returns the printed, fully evaluated value of a variable by bare
// name (no @), and whether the variable is bound.
type Resolver func(name string) (string, bool)

// EvalBool translates a guard token sequence into an expr program and runs
// it against the resolved variables. Unbound variables evaluate as
// undefined and fail comparisons, matching guard semantics.
func EvalBool(toks []tokens.Token, resolve Resolver) (bool, error) {
	source, env := translate(toks, resolve)

	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return false, fmt.Errorf("compile guard %q: %w", source, err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		// runtime failures mean an unbound variable or a type mismatch
		// inside the condition; the guard simply does not match
		return false, nil
	}

	switch v := result.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true"), nil
	default:
		return false, nil
	}
}

// translate renders guard tokens as expr source. Variables become
// sanitized identifiers bound in the environment; units are stripped from
// numbers so comparisons work on magnitudes; bare identifiers other than
// the connectives become string literals.
func translate(toks []tokens.Token, resolve Resolver) (string, map[string]any) {
	var out []string
	env := map[string]any{}

	for i := 0; i < len(toks); i++ {
		t := toks[i]

		switch t.Kind {
		case tokens.Whitespace, tokens.Comment:
			continue

		case tokens.AtKeyword:
			name := identFor(t.Text)
			if _, seen := env[name]; !seen {
				if printed, ok := resolve(strings.TrimPrefix(t.Text, "@")); ok {
					env[name] = coerce(printed)
				}
			}
			out = append(out, name)

		case tokens.Number, tokens.Percentage, tokens.Dimension:
			out = append(out, formatNumber(t))

		case tokens.String:
			out = append(out, strconv.Quote(strings.Unquote(t.Text)))

		case tokens.Identifier:
			switch t.Text {
			case "and", "or", "not", "true", "false":
				out = append(out, t.Text)
			default:
				out = append(out, strconv.Quote(t.Text))
			}

		case tokens.ParenOpen:
			out = append(out, "(")
		case tokens.ParenClosed:
			out = append(out, ")")

		default:
			op := t.Text
			// join two-token comparison operators
			if next, ok := peekOperator(toks, i+1); ok && joinable(op, next) {
				op += next
				i++
			}
			switch op {
			case "=":
				op = "=="
			case "=<":
				op = "<="
			case "=>":
				op = ">="
			}
			out = append(out, op)
		}
	}

	return strings.Join(out, " "), env
}

func peekOperator(toks []tokens.Token, i int) (string, bool) {
	if i >= len(toks) {
		return "", false
	}
	t := toks[i]
	if t.Kind == tokens.Other && len(t.Text) == 1 && strings.Contains("=<>", t.Text) {
		return t.Text, true
	}
	return "", false
}

func joinable(a, b string) bool {
	switch a + b {
	case ">=", "<=", "=<", "=>", "==":
		return true
	}
	return false
}

// identFor maps a variable token to a safe expr identifier.
func identFor(atkeyword string) string {
	name := strings.TrimPrefix(atkeyword, "@")
	return "v_" + strings.ReplaceAll(name, "-", "_")
}

// formatNumber strips the unit: guards compare magnitudes, with
// percentages scaled to their ratio.
func formatNumber(t tokens.Token) string {
	text := t.Text
	switch t.Kind {
	case tokens.Percentage:
		if v, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64); err == nil {
			return strconv.FormatFloat(v/100, 'f', -1, 64)
		}
	case tokens.Dimension:
		i := len(text)
		for i > 0 && !isNumeric(text[i-1]) {
			i--
		}
		text = text[:i]
	}
	return text
}

func isNumeric(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// coerce converts a printed variable value into the type expr should see.
func coerce(printed string) any {
	printed = strings.TrimSpace(printed)

	if printed == "true" {
		return true
	}
	if printed == "false" {
		return false
	}
	if strings.HasSuffix(printed, "%") {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(printed, "%"), 64); err == nil {
			return v / 100
		}
	}
	if v, err := strconv.ParseFloat(trimUnit(printed), 64); err == nil {
		return v
	}
	return strings.Unquote(printed)
}

func trimUnit(s string) string {
	i := len(s)
	for i > 0 && !isNumeric(s[i-1]) {
		i--
	}
	if i == 0 {
		return s
	}
	return s[:i]
}

package value

import (
	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/lesserr"
)

// Native is a builtin function over the value model.
type Native func(args []Value) (Value, error)

// overload pairs an argument-type signature with its handler. Signatures
// are one code per argument: N number, C color, S string, U url, T unit,
// B boolean, '.' any. A trailing '+' repeats the previous code one or more
// times.
type overload struct {
	signature string
	fn        Native
}

// Library is the builtin function dispatch table. Names are
// case-insensitive. A Library is immutable after loading and safe to share
// between compilations.
type Library struct {
	funcs map[string][]overload
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{funcs: make(map[string][]overload)}
}

// DefaultLibrary returns a library with every builtin loaded.
func DefaultLibrary() *Library {
	l := NewLibrary()
	loadNumberFunctions(l)
	loadColorFunctions(l)
	loadStringFunctions(l)
	loadURLFunctions(l)
	return l
}

// Register adds an overload for name. Later registrations with the same
// name become alternative signatures, tried in order.
func (l *Library) Register(name, signature string, fn Native) {
	key := strings.ToLower(name)
	l.funcs[key] = append(l.funcs[key], overload{signature: signature, fn: fn})
}

// Exists reports whether a function with the given name is registered.
func (l *Library) Exists(name string) bool {
	_, ok := l.funcs[strings.ToLower(name)]
	return ok
}

// Call dispatches to the first overload whose signature matches the
// argument types. No match raises a FunctionArity error carrying the
// printed call and the accepted signatures.
func (l *Library) Call(name string, args []Value) (Value, error) {
	overloads, ok := l.funcs[strings.ToLower(name)]
	if !ok {
		return nil, lesserr.New(lesserr.FunctionArity, "unknown function %q", name)
	}

	for _, o := range overloads {
		if signatureMatches(o.signature, args) {
			return o.fn(args)
		}
	}

	return nil, lesserr.New(lesserr.FunctionArity, "%s does not match %s",
		printCall(name, args), l.Signatures(name))
}

// Signatures prints the accepted signatures for a function name, for
// diagnostics.
func (l *Library) Signatures(name string) string {
	overloads := l.funcs[strings.ToLower(name)]
	parts := make([]string, 0, len(overloads))
	for _, o := range overloads {
		parts = append(parts, name+"("+expandSignature(o.signature)+")")
	}
	return strings.Join(parts, " or ")
}

func signatureMatches(signature string, args []Value) bool {
	variadic := strings.HasSuffix(signature, "+")
	codes := strings.TrimSuffix(signature, "+")

	if variadic {
		if len(args) < len(codes) {
			return false
		}
	} else if len(args) != len(codes) {
		return false
	}

	for i, arg := range args {
		code := codes[len(codes)-1]
		if i < len(codes) {
			code = codes[i]
		}
		if code != '.' && typeCode(arg) != code {
			return false
		}
	}
	return true
}

func typeCode(v Value) byte {
	switch v.Type() {
	case TypeNumber:
		return 'N'
	case TypeColor:
		return 'C'
	case TypeString:
		return 'S'
	case TypeURL:
		return 'U'
	case TypeUnit:
		return 'T'
	case TypeBoolean:
		return 'B'
	}
	return '?'
}

func expandSignature(signature string) string {
	names := map[byte]string{
		'N': "number", 'C': "color", 'S': "string",
		'U': "url", 'T': "unit", 'B': "boolean", '.': "any",
	}
	var parts []string
	for i := 0; i < len(signature); i++ {
		if signature[i] == '+' {
			if len(parts) > 0 {
				parts[len(parts)-1] += "..."
			}
			continue
		}
		parts = append(parts, names[signature[i]])
	}
	return strings.Join(parts, ", ")
}

func printCall(name string, args []Value) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Tokens().String())
	}
	b.WriteByte(')')
	return b.String()
}

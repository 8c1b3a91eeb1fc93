package lessc_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc"
	"github.com/titpetric/lessc/importer"
	"github.com/titpetric/lessc/lesserr"
)

// normalize collapses whitespace runs so comparisons pin token content, not
// layout.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func compile(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := lessc.Compile("test.less", strings.NewReader(input), nil, &out)
	require.NoError(t, err)
	return out.String()
}

func compileErr(t *testing.T, input string) error {
	t.Helper()
	var out bytes.Buffer
	err := lessc.Compile("test.less", strings.NewReader(input), nil, &out)
	require.Error(t, err)
	require.Empty(t, out.String(), "failed compilation must not produce output")
	return err
}

func TestCompileScenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"variable arithmetic",
			`@w: 10px; .a { width: @w * 2; }`,
			`.a { width: 20px; }`,
		},
		{
			"parametric mixin",
			`.m(@c) { color: @c; } .a { .m(red); }`,
			`.a { color: red; }`,
		},
		{
			"nesting",
			`.a { .b { color: red; } }`,
			`.a .b { color: red; }`,
		},
		{
			"color arithmetic",
			`.a { color: #ff0000 + #000044; }`,
			`.a { color: #ff0044; }`,
		},
		{
			"extend",
			`.a:extend(.b) {} .b { color: red; }`,
			`.b, .a { color: red; }`,
		},
		{
			"interpolation",
			`@n: "world"; .a::before { content: "hello @{n}"; }`,
			`.a::before { content: "hello world"; }`,
		},
		{
			"guards",
			`.m(@x) when (@x > 0) { p: pos; } .m(@x) when (@x <= 0) { p: neg; } .a { .m(3); } .b { .m(-1); }`,
			`.a { p: pos; } .b { p: neg; }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, normalize(compile(t, tt.input))); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestCompileFeatures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"plain css round trip",
			`.a { color: red; margin: 0 auto; }`,
			`.a { color: red; margin: 0 auto; }`,
		},
		{
			"parent reference",
			`.a { &:hover { color: red; } }`,
			`.a:hover { color: red; }`,
		},
		{
			"mixin defaults",
			`.m(@c: green) { color: @c; } .a { .m(); }`,
			`.a { color: green; }`,
		},
		{
			"named arguments",
			`.m(@a: 1px; @b: 2px) { margin: @a @b; } .x { .m(@b: 5px); }`,
			`.x { margin: 1px 5px; }`,
		},
		{
			"rest parameter",
			`.m(@a, @rest...) { margin: @a; padding: @rest; } .x { .m(1px, 2px, 3px); }`,
			`.x { margin: 1px; padding: 2px 3px; }`,
		},
		{
			"arguments variable",
			`.box(@w, @c) { border: @arguments; } .a { .box(1px, red); }`,
			`.a { border: 1px red; }`,
		},
		{
			"pattern matching",
			`.m(dark) { color: black; } .m(light) { color: white; } .a { .m(dark); }`,
			`.a { color: black; }`,
		},
		{
			"namespaced mixin",
			`#ns { .m() { color: red; } } .a { #ns .m(); }`,
			`.a { color: red; }`,
		},
		{
			"plain rule as mixin",
			`.base { color: red; } .a { .base; }`,
			`.base { color: red; } .a { color: red; }`,
		},
		{
			"mixin important",
			`.m() { color: red; } .a { .m() !important; }`,
			`.a { color: red !important; }`,
		},
		{
			"interpolated selector",
			`@name: blk; .@{name} { color: red; }`,
			`.blk { color: red; }`,
		},
		{
			"builtin function",
			`.a { color: lighten(#000000, 50%); }`,
			`.a { color: #808080; }`,
		},
		{
			"escape passthrough",
			`.a { width: ~"calc(100% - 10px)"; }`,
			`.a { width: calc(100% - 10px); }`,
		},
		{
			"media bubbles up",
			`.a { color: red; @media screen { color: blue; } }`,
			`.a { color: red; } @media screen { .a { color: blue; } }`,
		},
		{
			"nested media joins with and",
			`@media screen { @media (min-width: 768px) { .a { color: red; } } }`,
			`@media screen and (min-width: 768px) { .a { color: red; } }`,
		},
		{
			"comment passthrough",
			`/* banner */ .a { color: red; }`,
			`/* banner */ .a { color: red; }`,
		},
		{
			"guard with or",
			`.m(@x) when (@x > 10) or (@x < -10) { p: out; } .m(@x) when (@x >= -10) and (@x =< 10) { p: in; } .a { .m(20); } .b { .m(5); }`,
			`.a { p: out; } .b { p: in; }`,
		},
		{
			"deep variable",
			`@name: "width"; @width: 10px; .a { w: @@name; }`,
			`.a { w: 10px; }`,
		},
		{
			"variable scope shadows",
			`@c: red; .a { @c: blue; color: @c; } .b { color: @c; }`,
			`.a { color: blue; } .b { color: red; }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, normalize(compile(t, tt.input))); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestCompileRecursionFails(t *testing.T) {
	err := compileErr(t, `.a { color: red; .a; }`)
	require.True(t, lesserr.IsKind(err, lesserr.RecursionLimit))

	err = compileErr(t, `.x() { .y(); } .y() { .x(); } .a { .x(); }`)
	require.True(t, lesserr.IsKind(err, lesserr.RecursionLimit))
}

func TestCompileDivisionByZero(t *testing.T) {
	err := compileErr(t, `.a { w: 1 / 0; }`)
	require.True(t, lesserr.IsKind(err, lesserr.Arithmetic))
}

func TestCompileMixinNotFound(t *testing.T) {
	err := compileErr(t, `.a { .missing(); }`)
	require.True(t, lesserr.IsKind(err, lesserr.MixinNotFound))

	var e *lesserr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "test.less", e.File)
}

func TestCompileImports(t *testing.T) {
	fsys := fstest.MapFS{
		"main.less":  {Data: []byte("@import \"vars\";\n.a { color: @c; }")},
		"vars.less":  {Data: []byte("@c: red;")},
		"plain.less": {Data: []byte("@import url(\"theme.css\");\n.b { color: blue; }")},
	}
	loader := importer.FS(fsys)

	var out bytes.Buffer
	f, err := fsys.Open("main.less")
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, lessc.Compile("main.less", f, loader, &out))
	require.Equal(t, ".a { color: red; }", normalize(out.String()))

	// css imports pass through verbatim
	out.Reset()
	p, err := fsys.Open("plain.less")
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, lessc.Compile("plain.less", p, loader, &out))
	require.Equal(t, `@import url("theme.css"); .b { color: blue; }`, normalize(out.String()))
}

func TestCompileImportNotFound(t *testing.T) {
	loader := importer.FS(fstest.MapFS{})

	var out bytes.Buffer
	err := lessc.Compile("main.less", strings.NewReader(`@import "missing";`), loader, &out)
	require.Error(t, err)
	require.True(t, lesserr.IsKind(err, lesserr.Import))

	// optional imports are silently skipped
	out.Reset()
	err = lessc.Compile("main.less", strings.NewReader(`@import (optional) "missing"; .a { color: red; }`), loader, &out)
	require.NoError(t, err)
	require.Equal(t, ".a { color: red; }", normalize(out.String()))
}

func TestCompileImportOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"inc.less": {Data: []byte(".inc { color: red; }")},
	}

	var out bytes.Buffer
	input := `@import "inc"; @import "inc";`
	require.NoError(t, lessc.Compile("main.less", strings.NewReader(input), importer.FS(fsys), &out))
	require.Equal(t, 1, strings.Count(out.String(), ".inc"))
}

func TestCompileReferenceImport(t *testing.T) {
	fsys := fstest.MapFS{
		"lib.less": {Data: []byte(".btn { color: red; }")},
	}

	var out bytes.Buffer
	input := `@import (reference) "lib"; .a { .btn; }`
	require.NoError(t, lessc.Compile("main.less", strings.NewReader(input), importer.FS(fsys), &out))

	// the referenced ruleset is usable as a mixin but not emitted
	require.Equal(t, ".a { color: red; }", normalize(out.String()))
}

func TestCompileWarnsOnRebind(t *testing.T) {
	var warnings []string
	c := &lessc.Compiler{
		Warn: func(msg, file string, line int) {
			warnings = append(warnings, msg)
		},
	}

	var out bytes.Buffer
	err := c.Compile("test.less", strings.NewReader("@x: 1;\n@x: 2;\n.a { w: @x; }"), &out)
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	// last binding wins
	require.Equal(t, ".a { w: 2; }", normalize(out.String()))
}

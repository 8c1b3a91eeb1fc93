// Package lessc compiles LESS stylesheets to CSS.
//
// The pipeline is: tokenize and parse into a LESS document with unprocessed
// statements (package parser), evaluate it through the scoped mixin machinery
// and the typed value processor (packages less and value) into a CSS document,
// rewrite selectors for the accumulated :extend directives, and print it
// (package css).
package lessc

import (
	"fmt"
	"io"
	"os"

	"github.com/titpetric/lessc/css"
	"github.com/titpetric/lessc/less"
	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/parser"
	"github.com/titpetric/lessc/value"
)

// Loader resolves an @import path relative to the importing file. See
// importer.FS for the filesystem-backed implementation.
type Loader = parser.Loader

// Compiler holds per-use configuration. The zero value compiles without
// import support and warns to stderr.
type Compiler struct {
	// Loader resolves @import statements; with nil, css imports pass
	// through, optional imports are skipped and any other import fails.
	Loader Loader

	// Warn receives non-fatal diagnostics; nil logs them to stderr.
	Warn func(msg, file string, line int)

	// RecursionLimit caps the mixin call depth; zero means the default.
	RecursionLimit int

	// Library overrides the builtin function table; nil uses the shared
	// default. A library is immutable and may be shared.
	Library *value.Library
}

// Compile reads LESS from src and writes CSS to out. Errors carry kind and
// position; nothing is written when compilation fails.
func (c *Compiler) Compile(sourceName string, src io.Reader, out io.Writer) error {
	content, err := io.ReadAll(src)
	if err != nil {
		return lesserr.Wrap(lesserr.Import, err, "read %s", sourceName)
	}

	warn := func(msg string, line int) {
		if c.Warn != nil {
			c.Warn(msg, sourceName, line)
			return
		}
		fmt.Fprintf(os.Stderr, "%s:%d: warning: %s\n", sourceName, line, msg)
	}

	sheet, err := parser.Parse(sourceName, string(content), c.Loader, warn)
	if err != nil {
		return err
	}

	ctx := less.NewContext(sheet, value.NewProcessor(c.Library))
	ctx.RecursionLimit = c.RecursionLimit
	ctx.Warn = warn

	output := &css.Stylesheet{}
	if err := sheet.Process(output, ctx); err != nil {
		return err
	}

	w := css.NewWriter(out)
	output.Write(w)
	return w.Err()
}

// Compile is the package-level convenience form: one compilation with the
// given loader and default settings.
func Compile(sourceName string, src io.Reader, loader Loader, out io.Writer) error {
	c := &Compiler{Loader: loader}
	return c.Compile(sourceName, src, out)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"github.com/titpetric/lessc"
	"github.com/titpetric/lessc/importer"
	"github.com/titpetric/lessc/parser"
)

type includeDirs []string

func (i *includeDirs) String() string {
	return fmt.Sprint([]string(*i))
}

func (i *includeDirs) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func main() {
	var (
		output  string
		include includeDirs
		debug   bool
	)

	flag.StringVar(&output, "o", "", "output file (default stdout)")
	flag.Var(&include, "I", "include search path for @import (repeatable)")
	flag.BoolVar(&debug, "debug", false, "dump the parsed stylesheet before compiling")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lessc [flags] <file.less> [more files...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lessc: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	for _, file := range files {
		if err := compileFile(file, include, debug, out); err != nil {
			fmt.Fprintf(os.Stderr, "lessc: %v\n", err)
			os.Exit(1)
		}
	}
}

func compileFile(file string, include includeDirs, debug bool, out *os.File) error {
	src, err := os.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	// imports resolve against the file's directory; -I paths are tried
	// in order after it
	dir := filepath.Dir(file)
	loader := importer.FS(os.DirFS(dir), include...)

	name := filepath.Base(file)

	if debug {
		content, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		sheet, err := parser.Parse(name, string(content), loader, nil)
		if err != nil {
			return err
		}
		spew.Fdump(os.Stderr, sheet)
		if _, err := src.Seek(0, 0); err != nil {
			return err
		}
	}

	compiler := &lessc.Compiler{Loader: loader}
	return compiler.Compile(name, src, out)
}

// Package importer provides @import loaders over io/fs filesystems and
// include search paths.
package importer

import (
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/titpetric/lessc/parser"
)

// FS returns a loader resolving import paths inside the given filesystem.
// Paths resolve relative to the importing file first, then through the
// include directories in order.
func FS(fsys fs.FS, include ...string) parser.Loader {
	return func(importPath, from string) (string, io.ReadCloser, error) {
		var tried []string

		candidates := []string{path.Join(path.Dir(from), importPath)}
		for _, dir := range include {
			candidates = append(candidates, path.Join(dir, importPath))
		}

		for _, candidate := range candidates {
			candidate = path.Clean(candidate)
			f, err := fsys.Open(candidate)
			if err == nil {
				return candidate, f, nil
			}
			tried = append(tried, candidate)
		}

		return "", nil, fmt.Errorf("not found (tried %v)", tried)
	}
}

package lessc

import (
	"io/fs"
	"net/http"
	"strings"
)

// NewMiddleware creates an HTTP middleware that compiles .less files to CSS
// on the fly. Requests under basePath ending in .less are compiled from
// fileSystem and served with a text/css content type; everything else
// passes to the next handler.
//
// Example usage with chi:
//
//	r.Use(lessc.NewMiddleware("/assets/css", os.DirFS("./assets/css")))
func NewMiddleware(basePath string, fileSystem fs.FS) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(r.URL.Path, basePath) {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasSuffix(r.URL.Path, ".less") {
				next.ServeHTTP(w, r)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

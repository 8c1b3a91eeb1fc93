package lessc

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/titpetric/lessc/importer"
)

// Error sentinels for callers embedding the handler.
var (
	ErrNotFound          = errors.New("not found")
	ErrCompilationFailed = errors.New("compilation failed")
)

// Handler compiles and serves .less files from a filesystem.
type Handler struct {
	pathPrefix string
	fileSystem fs.FS
}

// NewHandler creates a handler serving compiled CSS for .less files found
// in fileSystem. pathPrefix is the URL prefix to match and strip (e.g.
// "/assets/css").
func NewHandler(fileSystem fs.FS, pathPrefix string) http.Handler {
	return &Handler{
		pathPrefix: pathPrefix,
		fileSystem: fileSystem,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if !strings.HasSuffix(r.URL.Path, ".less") {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	lessPath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		lessPath = strings.TrimPrefix(lessPath, "/")
	}

	info, err := fs.Stat(h.fileSystem, lessPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	file, err := h.fileSystem.Open(lessPath)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	defer file.Close()

	compiler := &Compiler{Loader: importer.FS(h.fileSystem)}

	var out bytes.Buffer
	if err := compiler.Compile(lessPath, file, &out); err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write(out.Bytes())
	}
}

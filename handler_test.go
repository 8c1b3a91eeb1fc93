package lessc_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/lessc"
)

var testFS = fstest.MapFS{
	"style.less": {Data: []byte("@c: red;\n.a { color: @c; }")},
	"vars.less":  {Data: []byte("@w: 10px;")},
	"uses.less":  {Data: []byte("@import \"vars\";\n.b { width: @w; }")},
	"bad.less":   {Data: []byte(".a { w: 1 / 0; }")},
	"notes.txt":  {Data: []byte("not a stylesheet")},
}

func TestHandlerServesCompiledCSS(t *testing.T) {
	h := lessc.NewHandler(testFS, "/assets")

	req := httptest.NewRequest(http.MethodGet, "/assets/style.less", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "color: red;")
}

func TestHandlerResolvesImports(t *testing.T) {
	h := lessc.NewHandler(testFS, "")

	req := httptest.NewRequest(http.MethodGet, "/uses.less", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "width: 10px;")
}

func TestHandlerRejects(t *testing.T) {
	h := lessc.NewHandler(testFS, "")

	tests := []struct {
		name   string
		method string
		path   string
		code   int
	}{
		{"post", http.MethodPost, "/style.less", http.StatusMethodNotAllowed},
		{"not less", http.MethodGet, "/notes.txt", http.StatusNotFound},
		{"missing file", http.MethodGet, "/nope.less", http.StatusNotFound},
		{"compilation failure", http.MethodGet, "/bad.less", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandlerHead(t *testing.T) {
	h := lessc.NewHandler(testFS, "")

	req := httptest.NewRequest(http.MethodHead, "/style.less", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mw := lessc.NewMiddleware("/css", testFS)(next)

	// .less requests under the prefix compile
	req := httptest.NewRequest(http.MethodGet, "/css/style.less", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "color: red;")

	// everything else falls through
	req = httptest.NewRequest(http.MethodGet, "/css/app.js", nil)
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

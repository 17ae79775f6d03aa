package resources

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"script.js": {Data: []byte("function add(first, second) {\n  return first + second;\n}\nwindow.add = add;\n")},
		"style.css": {Data: []byte("body {\n  margin: 0;\n}\n")},
		"page.html": {Data: []byte("<!doctype html><title>x</title>")},
	}
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_EmbeddedMinifies(t *testing.T) {
	h := Handler(testFS(), true)

	rec := serve(h, "/static/script.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
	assert.NotContains(t, rec.Body.String(), "\n  return", "whitespace should be minified")
	assert.Contains(t, rec.Body.String(), "window.add")

	rec = serve(h, "/static/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, "body{margin:0}", strings.TrimSpace(rec.Body.String()))
}

func TestHandler_EmbeddedServesOtherFiles(t *testing.T) {
	h := Handler(testFS(), true)

	rec := serve(h, "/static/page.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>x</title>")

	rec = serve(h, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DiskServesVerbatim(t *testing.T) {
	h := Handler(testFS(), false)

	rec := serve(h, "/static/script.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "\n  return first + second;")
}

func TestFS_ContainsPages(t *testing.T) {
	fsys := FS()
	for _, name := range []string{EnterNumbersPage, PreviousTreesPage, "script.js", "style.css"} {
		body, err := ReadPage(fsys, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, body, name)
	}
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static/script.js", StaticPath("script.js"))
}

// Package resources provides static asset handling for the UI server.
package resources

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Page file names served by the pages feature.
const (
	EnterNumbersPage  = "index.html"
	PreviousTreesPage = "previous.html"
)

// Handler returns an HTTP handler serving fsys under /static/.
// With embedded set, scripts and stylesheets are minified once and every
// asset is marked immutable.
func Handler(fsys fs.FS, embedded bool) http.Handler {
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	if !embedded {
		return fileServer
	}

	minify := newMinifier(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Cache embedded static assets for 1 year (they never change in prod)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		name := strings.TrimPrefix(r.URL.Path, "/static/")
		if loader, ok := minifyLoader(name); ok {
			body, err := minify.get(name, loader)
			if err == nil {
				w.Header().Set("Content-Type", mime.TypeByExtension(path.Ext(name)))
				http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(body))
				return
			}
			if !errors.Is(err, fs.ErrNotExist) {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}

// ReadPage returns the contents of an HTML page in fsys.
func ReadPage(fsys fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name)
}

// StaticPath returns the URL path for a static asset.
func StaticPath(p string) string {
	return "/static/" + p
}

func minifyLoader(name string) (api.Loader, bool) {
	switch path.Ext(name) {
	case ".js":
		return api.LoaderJS, true
	case ".css":
		return api.LoaderCSS, true
	}
	return api.LoaderNone, false
}

// minifier caches esbuild output per asset.
type minifier struct {
	fsys  fs.FS
	mu    sync.Mutex
	cache map[string][]byte
}

func newMinifier(fsys fs.FS) *minifier {
	return &minifier{fsys: fsys, cache: make(map[string][]byte)}
}

func (m *minifier) get(name string, loader api.Loader) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if body, ok := m.cache[name]; ok {
		return body, nil
	}

	src, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return nil, err
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: loader == api.LoaderJS,
		Target:            api.ES2020,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("minify %s: %s", name, result.Errors[0].Text)
	}

	m.cache[name] = result.Code
	return result.Code, nil
}

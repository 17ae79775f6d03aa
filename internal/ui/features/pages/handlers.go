package pages

import (
	"bytes"
	"io/fs"
	"net/http"

	"github.com/leapstack-labs/bstree/internal/ui/resources"
)

// reloadSnippet connects a page to the dev reload stream.
const reloadSnippet = `<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"></script>
<div data-init="@get('/reload', {retryMaxCount: 1000})"></div>
`

// Handlers provides HTTP handlers for the pages feature.
type Handlers struct {
	assets fs.FS
	isDev  bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(assets fs.FS, isDev bool) *Handlers {
	return &Handlers{assets: assets, isDev: isDev}
}

// Root redirects to the number entry page.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/enter-numbers", http.StatusFound)
}

// EnterNumbers serves the build page.
func (h *Handlers) EnterNumbers(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, resources.EnterNumbersPage)
}

// PreviousTrees serves the history page.
func (h *Handlers) PreviousTrees(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, resources.PreviousTreesPage)
}

func (h *Handlers) servePage(w http.ResponseWriter, _ *http.Request, name string) {
	body, err := resources.ReadPage(h.assets, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.isDev {
		body = injectReload(body)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(body)
}

// injectReload inserts the reload snippet before </body>, or appends it.
func injectReload(page []byte) []byte {
	idx := bytes.LastIndex(page, []byte("</body>"))
	if idx < 0 {
		return append(page, reloadSnippet...)
	}

	out := make([]byte, 0, len(page)+len(reloadSnippet))
	out = append(out, page[:idx]...)
	out = append(out, reloadSnippet...)
	out = append(out, page[idx:]...)
	return out
}

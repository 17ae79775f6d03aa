package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bstree/internal/ui/features"
)

func setupRouter(t *testing.T, reloader *Reloader) chi.Router {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewMux()
	require.NoError(t, SetupRoutes(r, Deps{
		Service:      fixture.Service,
		SessionStore: fixture.SessionStore,
		Notifier:     fixture.Notifier,
		Assets: fstest.MapFS{
			"index.html":    {Data: []byte("<body>enter</body>")},
			"previous.html": {Data: []byte("<body>previous</body>")},
			"script.js":     {Data: []byte("console.log(1)")},
		},
		Reloader: reloader,
	}))
	return r
}

func TestReloader_TriggerCoalesces(t *testing.T) {
	r := NewReloader()
	r.Trigger()
	r.Trigger()

	assert.Len(t, r.ch, 1)
	<-r.ch
	assert.Empty(t, r.ch)
}

func TestSetupRoutes_ReloadOnlyInDev(t *testing.T) {
	prod := setupRouter(t, nil)
	rec := httptest.NewRecorder()
	prod.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	reloader := NewReloader()
	dev := setupRouter(t, reloader)
	rec = httptest.NewRecorder()
	dev.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, reloader.ch, 1, "hotreload should queue a reload")
}

func TestSetupRoutes_Mounted(t *testing.T) {
	r := setupRouter(t, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusFound},
		{http.MethodGet, "/enter-numbers", http.StatusOK},
		{http.MethodGet, "/previous-trees", http.StatusOK},
		{http.MethodGet, "/static/script.js", http.StatusOK},
		{http.MethodGet, "/api/previous", http.StatusOK},
		{http.MethodGet, "/api/previous/missing", http.StatusNotFound},
		{http.MethodGet, "/api/last-input", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/process-numbers", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

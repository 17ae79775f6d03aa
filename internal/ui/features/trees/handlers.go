package trees

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/internal/ui/notifier"
	"github.com/leapstack-labs/bstree/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName = "bstree"

	// maxBodyBytes bounds request bodies. Inputs longer than
	// core.MaxInputLength are rejected by the service with a 400.
	maxBodyBytes = 1 << 20
)

// Handlers provides HTTP handlers for the trees feature.
type Handlers struct {
	svc          *service.Service
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *service.Service, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		svc:          svc,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
	}
}

// ProcessNumbers builds and stores a tree from the form fields numbers and balanced.
func (h *Handlers) ProcessNumbers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid form: %w", err))
		return
	}

	if !r.PostForm.Has("numbers") {
		writeError(w, http.StatusBadRequest, errors.New(`missing form field "numbers"`))
		return
	}

	balanced := false
	if v := r.PostForm.Get("balanced"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid balanced value %q", v))
			return
		}
		balanced = b
	}

	h.process(w, r, r.PostForm.Get("numbers"), balanced)
}

// ProcessNumbersJSON builds and stores a tree from a JSON body.
func (h *Handlers) ProcessNumbersJSON(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed JSON body: %w", err))
		return
	}
	// A null or absent numbers field is the empty input.
	numbers := ""
	if req.Numbers != nil {
		numbers = *req.Numbers
	}

	h.process(w, r, numbers, req.Balanced)
}

func (h *Handlers) process(w http.ResponseWriter, r *http.Request, numbers string, balanced bool) {
	h.rememberInput(w, r, LastInput{Numbers: numbers, Balanced: balanced})

	node, err := h.svc.BuildAndStore(r.Context(), numbers, balanced)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// ListPrevious returns every history entry, newest first.
func (h *Handlers) ListPrevious(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListHistory(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetPrevious returns a single history entry.
func (h *Handlers) GetPrevious(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// PreviousEvents is the long-lived SSE endpoint for the history page.
// It patches the historyCount signal after each stored entry. Nothing is sent
// on connect; the page loads the list itself.
func (h *Handlers) PreviousEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendHistorySignals(sse, r); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - keep trying on next update
			}
		}
	}
}

func (h *Handlers) sendHistorySignals(sse *datastar.ServerSentEventGenerator, r *http.Request) error {
	ctx := r.Context()
	count, err := h.svc.CountHistory(ctx)
	if err != nil {
		return err
	}
	latest, err := h.svc.ListRecent(ctx, 1)
	if err != nil {
		return err
	}

	signals := HistorySignals{HistoryCount: count}
	if len(latest) > 0 {
		signals.LatestID = latest[0].ID
	}
	return sse.MarshalAndPatchSignals(signals)
}

// LastInput returns the last submission made from this browser session.
func (h *Handlers) LastInput(w http.ResponseWriter, r *http.Request) {
	last := LastInput{}

	session, err := h.sessionStore.Get(r, sessionName)
	if err == nil {
		if v, ok := session.Values["numbers"].(string); ok {
			last.Numbers = v
		}
		if v, ok := session.Values["balanced"].(bool); ok {
			last.Balanced = v
		}
	}
	writeJSON(w, http.StatusOK, last)
}

// Health reports whether the history store is reachable.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rememberInput stores the submission in the session cookie. Failures only
// cost the convenience, so they are logged and ignored.
func (h *Handlers) rememberInput(w http.ResponseWriter, r *http.Request, in LastInput) {
	session, _ := h.sessionStore.Get(r, sessionName)
	if session == nil {
		return
	}
	session.Values["numbers"] = in.Numbers
	session.Values["balanced"] = in.Balanced
	if err := session.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
}

// writeServiceError maps domain errors onto HTTP statuses.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	var (
		parseErr *core.ParseError
		longErr  *core.InputTooLongError
		storeErr *core.StorageError
		serErr   *core.SerializationError
	)

	switch {
	case errors.As(err, &parseErr), errors.As(err, &longErr):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, core.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &storeErr), errors.As(err, &serErr):
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	default:
		h.logger.Error("unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

package income

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// Handler handles income event HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new income handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "income").Logger(),
	}
}

// Routes mounts the income routes
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/{ticker}", h.HandleListByTicker)
	r.Post("/sync", h.HandleSync)
}

// HandleList returns all known income events
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.GetAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if events == nil {
		events = []accounting.DividendEvent{}
	}
	h.writeJSON(w, http.StatusOK, events)
}

// HandleListByTicker returns income events for one ticker
func (h *Handler) HandleListByTicker(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.GetByTicker(chi.URLParam(r, "ticker"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if events == nil {
		events = []accounting.DividendEvent{}
	}
	h.writeJSON(w, http.StatusOK, events)
}

// HandleSync accepts a bulk push of externally sourced events. The store
// does not care where they came from.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	var events []accounting.DividendEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	stored, err := h.repo.UpsertAll(events)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int{"stored": stored})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

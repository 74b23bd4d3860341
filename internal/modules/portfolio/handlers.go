package portfolio

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// Routes mounts the portfolio routes
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleGetPortfolio)
	r.Get("/receipts", h.HandleGetReceipts)
	r.Get("/totals", h.HandleGetTotals)
}

// HandleGetPortfolio returns the full assembled view: positions, receipts
// and totals
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Assemble()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// HandleGetReceipts returns only the resolved dividend receipts
func (h *Handler) HandleGetReceipts(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Assemble()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, view.Receipts)
}

// HandleGetTotals returns only the portfolio-level totals
func (h *Handler) HandleGetTotals(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Assemble()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, view.Totals)
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

package transactions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/events"
	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// Handler handles transaction HTTP requests
type Handler struct {
	repo   *Repository
	events *events.Manager
	log    zerolog.Logger
}

// NewHandler creates a new transaction handler
func NewHandler(repo *Repository, eventManager *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		events: eventManager,
		log:    log.With().Str("handler", "transactions").Logger(),
	}
}

// Routes mounts the transaction routes
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleList returns all transactions ordered by date
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var (
		txs []accounting.Transaction
		err error
	)

	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		txs, err = h.repo.GetByTicker(ticker)
	} else {
		txs, err = h.repo.GetAll()
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if txs == nil {
		txs = []accounting.Transaction{}
	}
	h.writeJSON(w, http.StatusOK, txs)
}

// HandleCreate creates a new transaction
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var tx accounting.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.repo.Create(&tx); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.events.Emit(events.TransactionCreated, "transactions", map[string]interface{}{
		"id":     tx.ID,
		"ticker": tx.Ticker,
		"type":   string(tx.Type),
	})

	h.writeJSON(w, http.StatusCreated, tx)
}

// HandleUpdate replaces an existing transaction
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var tx accounting.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	tx.ID = id

	if err := h.repo.Update(&tx); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.events.Emit(events.TransactionUpdated, "transactions", map[string]interface{}{
		"id": tx.ID,
	})

	h.writeJSON(w, http.StatusOK, tx)
}

// HandleDelete removes a transaction
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.events.Emit(events.TransactionDeleted, "transactions", map[string]interface{}{
		"id": id,
	})

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
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

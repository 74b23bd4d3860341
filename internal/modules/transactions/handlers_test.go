package transactions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/carteira/internal/events"
	"github.com/carteira-app/carteira/internal/modules/accounting"
)

func setupHandler(t *testing.T) (*Handler, *Repository, func()) {
	t.Helper()

	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), zerolog.Nop())

	return handler, repo, func() { db.Close() }
}

func testRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/transactions", h.Routes)
	return r
}

func TestHandleCreate(t *testing.T) {
	handler, repo, cleanup := setupHandler(t)
	defer cleanup()

	body := `{"ticker":"PETR4F","type":"BUY","quantity":10,"price":30.5,"date":"2024-01-10","asset_class":"STOCK"}`
	req := httptest.NewRequest("POST", "/api/transactions/", strings.NewReader(body))
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created accounting.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "PETR4F", stored.Ticker)
}

func TestHandleCreateInvalidBody(t *testing.T) {
	handler, _, cleanup := setupHandler(t)
	defer cleanup()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{{"},
		{"bad type", `{"ticker":"PETR4","type":"HOLD","quantity":10,"price":30,"date":"2024-01-10","asset_class":"STOCK"}`},
		{"bad date", `{"ticker":"PETR4","type":"BUY","quantity":10,"price":30,"date":"01-10-2024","asset_class":"STOCK"}`},
		{"zero quantity", `{"ticker":"PETR4","type":"BUY","quantity":0,"price":30,"date":"2024-01-10","asset_class":"STOCK"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/transactions/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			testRouter(handler).ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleList(t *testing.T) {
	handler, repo, cleanup := setupHandler(t)
	defer cleanup()

	require.NoError(t, repo.Create(buyTx("PETR4", 100, 30, "2024-01-10")))
	require.NoError(t, repo.Create(buyTx("VALE3", 10, 60, "2024-01-20")))

	req := httptest.NewRequest("GET", "/api/transactions/", nil)
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var txs []accounting.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&txs))
	assert.Len(t, txs, 2)
}

func TestHandleListEmptyIsJSONArray(t *testing.T) {
	handler, _, cleanup := setupHandler(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/api/transactions/", nil)
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestHandleListByTicker(t *testing.T) {
	handler, repo, cleanup := setupHandler(t)
	defer cleanup()

	require.NoError(t, repo.Create(buyTx("ABCD3", 100, 10, "2024-01-10")))
	require.NoError(t, repo.Create(buyTx("ABCD3F", 1, 10, "2024-01-20")))
	require.NoError(t, repo.Create(buyTx("VALE3", 10, 60, "2024-01-20")))

	req := httptest.NewRequest("GET", "/api/transactions/?ticker=ABCD3", nil)
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var txs []accounting.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&txs))
	assert.Len(t, txs, 2)
}

func TestHandleUpdate(t *testing.T) {
	handler, repo, cleanup := setupHandler(t)
	defer cleanup()

	tx := buyTx("PETR4", 100, 30, "2024-01-10")
	require.NoError(t, repo.Create(tx))

	body := `{"ticker":"PETR4","type":"BUY","quantity":150,"price":30,"date":"2024-01-10","asset_class":"STOCK"}`
	req := httptest.NewRequest("PUT", "/api/transactions/"+tx.ID, strings.NewReader(body))
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.GetByID(tx.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 150.0, stored.Quantity)
}

func TestHandleUpdateMissing(t *testing.T) {
	handler, _, cleanup := setupHandler(t)
	defer cleanup()

	body := `{"ticker":"PETR4","type":"BUY","quantity":150,"price":30,"date":"2024-01-10","asset_class":"STOCK"}`
	req := httptest.NewRequest("PUT", "/api/transactions/nope", strings.NewReader(body))
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDelete(t *testing.T) {
	handler, repo, cleanup := setupHandler(t)
	defer cleanup()

	tx := buyTx("PETR4", 100, 30, "2024-01-10")
	require.NoError(t, repo.Create(tx))

	req := httptest.NewRequest("DELETE", "/api/transactions/"+tx.ID, nil)
	w := httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("DELETE", "/api/transactions/"+tx.ID, nil)
	w = httptest.NewRecorder()
	testRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

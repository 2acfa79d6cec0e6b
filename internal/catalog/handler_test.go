package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, products ...Product) (chi.Router, *Service) {
	t.Helper()
	svc := newTestService(t, products...)
	r := chi.NewRouter()
	NewHandler(slog.Default(), svc).MountRoutes(r)
	return r, svc
}

func TestHandlerListProducts(t *testing.T) {
	r, _ := newTestRouter(t,
		Product{ID: "SF-001", Name: "Micro-Scalpel", Stock: 100, MinimumThreshold: 40},
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, StatusInStock, got[0].StockStatus)
}

func TestHandlerAdjust(t *testing.T) {
	r, svc := newTestRouter(t,
		Product{ID: "SF-001", Name: "Micro-Scalpel", Stock: 100, MinimumThreshold: 40},
	)

	body := bytes.NewBufferString(`{"delta":-30}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/SF-001/adjust", body))
	require.Equal(t, http.StatusOK, rec.Code)

	p, err := svc.Get(context.Background(), "SF-001")
	require.NoError(t, err)
	require.Equal(t, 70, p.Stock)

	// Unknown product maps to 404.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/SF-404/adjust", bytes.NewBufferString(`{"delta":1}`)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Missing delta fails validation.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/SF-001/adjust", bytes.NewBufferString(`{}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerResolve(t *testing.T) {
	r, _ := newTestRouter(t,
		Product{ID: "SF-001", Name: "Micro-Scalpel Elite 45", Stock: 100},
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewBufferString(`{"item":"scalpel"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp resolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Created)
	require.Equal(t, "SF-001", resp.Product.ID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewBufferString(`{"item":"Bone Saw","quantity":25}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Created)
	require.Equal(t, 25, resp.Product.Stock)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewBufferString(`{}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

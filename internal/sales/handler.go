package sales

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surgiflow/surgiflow/internal/platform/httpx"
)

// Handler wires HTTP endpoints for sales and quotations.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sales routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/transactions", h.listTransactions)
	r.Post("/transactions", h.commitSale)
	r.Get("/quotations", h.listQuotations)
	r.Post("/quotations", h.saveQuotation)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListTransactions(r.Context())
	if err != nil {
		h.logger.Error("list transactions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if txs == nil {
		txs = []Transaction{}
	}
	httpx.JSON(w, http.StatusOK, txs)
}

func (h *Handler) commitSale(w http.ResponseWriter, r *http.Request) {
	var tx Transaction
	if err := httpx.DecodeJSON(r, &tx); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	committed, err := h.service.CommitSale(r.Context(), tx)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, committed)
}

func (h *Handler) listQuotations(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.ListQuotations(r.Context())
	if err != nil {
		h.logger.Error("list quotations", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if quotes == nil {
		quotes = []Quotation{}
	}
	httpx.JSON(w, http.StatusOK, quotes)
}

func (h *Handler) saveQuotation(w http.ResponseWriter, r *http.Request) {
	var quote Quotation
	if err := httpx.DecodeJSON(r, &quote); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	saved, err := h.service.SaveQuotation(r.Context(), quote)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

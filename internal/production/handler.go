package production

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the batch lifecycle.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers production routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/batches", h.list)
	r.Post("/batches", h.advance)
	r.Post("/batches/{id}/qc", h.recordQC)
	r.Post("/batches/{id}/recall", h.recall)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	batches, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list wip batches", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if batches == nil {
		batches = []catalog.StockBatch{}
	}
	httpx.JSON(w, http.StatusOK, batches)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	var batch catalog.StockBatch
	if err := httpx.DecodeJSON(r, &batch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	advanced, err := h.service.Advance(r.Context(), batch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, advanced)
}

type qcRequest struct {
	InspectorID string `json:"inspectorId" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=PASSED REJECTED REWORK"`
	Notes       string `json:"notes"`
}

func (h *Handler) recordQC(w http.ResponseWriter, r *http.Request) {
	var req qcRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	batch, err := h.service.RecordQC(r.Context(), chi.URLParam(r, "id"), catalog.QCRecord{
		InspectorID: req.InspectorID,
		Status:      catalog.QCStatus(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, batch)
}

func (h *Handler) recall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Recall(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "recalled"})
}

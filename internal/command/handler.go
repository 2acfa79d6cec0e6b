package command

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/platform/httpx"
)

// Handler exposes the command dispatcher to voice/chat collaborators.
type Handler struct {
	logger     *slog.Logger
	dispatcher *Dispatcher
	validator  *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, dispatcher *Dispatcher) *Handler {
	return &Handler{logger: logger, dispatcher: dispatcher, validator: validator.New()}
}

// MountRoutes registers command routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/commands", h.execute)
}

type commandRequest struct {
	Action   string  `json:"action" validate:"required"`
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Stage    string  `json:"stage"`
	Target   string  `json:"target"`
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	cmd := Command{
		Action:   Action(req.Action),
		Item:     req.Item,
		Quantity: req.Quantity,
		Price:    req.Price,
		Stage:    stageFromString(req.Stage),
		Target:   req.Target,
	}
	result, err := h.dispatcher.Execute(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("command rejected",
			slog.String("action", req.Action),
			slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func stageFromString(s string) catalog.ManufacturingStage {
	return catalog.ManufacturingStage(strings.ToUpper(strings.TrimSpace(s)))
}

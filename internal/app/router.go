package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/command"
	"github.com/surgiflow/surgiflow/internal/delivery"
	"github.com/surgiflow/surgiflow/internal/production"
	"github.com/surgiflow/surgiflow/internal/sales"
	"github.com/surgiflow/surgiflow/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	CatalogHandler    *catalog.Handler
	ProductionHandler *production.Handler
	SalesHandler      *sales.Handler
	DeliveryHandler   *delivery.Handler
	CommandHandler    *command.Handler
	JobsHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with engine defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{Config: params.Config}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	params.CatalogHandler.MountRoutes(r)
	params.ProductionHandler.MountRoutes(r)
	params.SalesHandler.MountRoutes(r)
	params.DeliveryHandler.MountRoutes(r)
	params.CommandHandler.MountRoutes(r)
	if params.JobsHandler != nil {
		params.JobsHandler.MountRoutes(r)
	}

	return r
}

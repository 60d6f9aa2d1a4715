package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/thundernada/farm-management/internal/allocation"
	analytichttp "github.com/thundernada/farm-management/internal/analytics/http"
	"github.com/thundernada/farm-management/internal/assets"
	"github.com/thundernada/farm-management/internal/inventory"
	"github.com/thundernada/farm-management/internal/ledger"
	"github.com/thundernada/farm-management/internal/masterdata"
	"github.com/thundernada/farm-management/internal/reports"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	MasterDataHandler *masterdata.Handler
	LedgerHandler     *ledger.Handler
	InventoryHandler  *inventory.Handler
	AllocationHandler *allocation.Handler
	AssetsHandler     *assets.Handler
	DashboardHandler  *analytichttp.Handler
	ReportsHandler    *reports.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(api chi.Router) {
		if params.MasterDataHandler != nil {
			params.MasterDataHandler.MountRoutes(api)
		}
		if params.LedgerHandler != nil {
			params.LedgerHandler.MountRoutes(api)
		}
		if params.InventoryHandler != nil {
			api.Route("/inventory", func(sub chi.Router) {
				params.InventoryHandler.MountRoutes(sub)
			})
		}
		if params.AllocationHandler != nil {
			params.AllocationHandler.MountRoutes(api)
		}
		if params.AssetsHandler != nil {
			params.AssetsHandler.MountRoutes(api)
		}
		if params.DashboardHandler != nil {
			api.Route("/dashboard", func(sub chi.Router) {
				params.DashboardHandler.MountRoutes(sub)
			})
		}
		if params.ReportsHandler != nil {
			api.Route("/reports", func(sub chi.Router) {
				params.ReportsHandler.MountRoutes(sub)
			})
		}
	})

	return r
}

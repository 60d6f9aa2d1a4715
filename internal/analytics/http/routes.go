package analytichttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleDashboard)
	r.Get("/kpi", h.handleKPI)
	r.Get("/spend-by-cost-center", h.handleSpendByCostCenter)
	r.Get("/monthly-trend", h.handleMonthlyTrend)
}

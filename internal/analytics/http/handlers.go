package analytichttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thundernada/farm-management/internal/analytics"
	"github.com/thundernada/farm-management/internal/platform/httpx"
)

const requestTimeout = 2 * time.Second

// DashboardService defines the dashboard data contract used by the handler.
type DashboardService interface {
	GetKPISummary(ctx context.Context) (analytics.KPISummary, error)
	GetSpendByCostCenter(ctx context.Context) ([]analytics.SpendSlice, error)
	GetMonthlyTrend(ctx context.Context) ([]analytics.TrendPoint, error)
}

// Handler coordinates HTTP requests for the dashboard.
type Handler struct {
	logger  *slog.Logger
	service DashboardService
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service DashboardService) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var dashboard analytics.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		kpi, err := h.service.GetKPISummary(gctx)
		if err != nil {
			return err
		}
		dashboard.KPI = kpi
		return nil
	})
	g.Go(func() error {
		slices, err := h.service.GetSpendByCostCenter(gctx)
		if err != nil {
			return err
		}
		dashboard.SpendByCC = slices
		return nil
	})
	g.Go(func() error {
		points, err := h.service.GetMonthlyTrend(gctx)
		if err != nil {
			return err
		}
		dashboard.MonthlyTrend = points
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, dashboard)
}

func (h *Handler) handleKPI(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetKPISummary(r.Context())
	if err != nil {
		h.logger.Error("load kpi summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleSpendByCostCenter(w http.ResponseWriter, r *http.Request) {
	slices, err := h.service.GetSpendByCostCenter(r.Context())
	if err != nil {
		h.logger.Error("load spend by cost center", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"spend_by_cost_center": slices})
}

func (h *Handler) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.GetMonthlyTrend(r.Context())
	if err != nil {
		h.logger.Error("load monthly trend", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"monthly_trend": points})
}

package reports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thundernada/farm-management/internal/platform/httpx"
)

// Handler wires HTTP endpoints for report export.
type Handler struct {
	logger *slog.Logger
	repo   Repository
}

// NewHandler constructs the report handler.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/expenses.csv", h.handleExpenseCSV)
}

func (h *Handler) handleExpenseCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ExpenseReportRows(r.Context())
	if err != nil {
		h.logger.Error("load report rows", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	filename := fmt.Sprintf("farm_report_%s.csv", uuid.NewString())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := WriteCSV(w, rows); err != nil {
		h.logger.Error("stream report csv", slog.Any("error", err))
	}
}

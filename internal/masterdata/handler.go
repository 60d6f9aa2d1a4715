package masterdata

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thundernada/farm-management/internal/platform/httpx"
)

// Handler wires HTTP endpoints for cost centers.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the cost center handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers cost center routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/cost-centers", h.handleList)
	r.Get("/cost-centers/{id}", h.handleGet)
	r.Post("/cost-centers/seed", h.handleSeed)
	r.Put("/cost-centers/{id}", h.handleImmutable)
	r.Delete("/cost-centers/{id}", h.handleImmutable)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	centers, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list cost centers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cost_centers": centers})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid cost center id")
		return
	}
	center, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("get cost center", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, center)
}

func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	centers, err := h.service.Seed(r.Context())
	if err != nil {
		if errors.Is(err, ErrAlreadySeeded) {
			httpx.Problem(w, http.StatusConflict, "Already Seeded", err.Error())
			return
		}
		h.logger.Error("seed cost centers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"cost_centers": centers})
}

func (h *Handler) handleImmutable(w http.ResponseWriter, r *http.Request) {
	httpx.Problem(w, http.StatusConflict, "Immutable", ErrImmutable.Error())
}

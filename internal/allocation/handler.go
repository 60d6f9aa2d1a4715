package allocation

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/thundernada/farm-management/internal/masterdata"
	"github.com/thundernada/farm-management/internal/platform/httpx"
	"github.com/thundernada/farm-management/internal/shared"
)

// Handler wires HTTP endpoints for indirect costs.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the allocation handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers indirect cost routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/indirect-costs", h.handleList)
	r.Get("/indirect-costs/{id}", h.handleGet)
	r.Post("/indirect-costs", h.handleCreate)
	r.Post("/indirect-costs/{id}/allocations", h.handleManualAllocations)
}

type createIndirectCostRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	CostType string  `json:"cost_type" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Method   string  `json:"allocation_method" validate:"required,oneof=equal manual direct-cost-proportional"`
}

type manualAllocationRow struct {
	CostCenterID    int64   `json:"cost_center_id" validate:"required"`
	AllocatedAmount float64 `json:"allocated_amount" validate:"gt=0"`
}

type manualAllocationsRequest struct {
	Rows []manualAllocationRow `json:"rows" validate:"required,min=1,dive"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createIndirectCostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid date")
		return
	}
	detail, err := h.service.Create(r.Context(), CreateInput{
		Date:     date,
		CostType: req.CostType,
		Amount:   req.Amount,
		Method:   Method(req.Method),
	})
	if err != nil {
		h.respondError(w, "create indirect cost", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, detail)
}

func (h *Handler) handleManualAllocations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid indirect cost id")
		return
	}
	var req manualAllocationsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	rows := make([]ManualRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, ManualRow{CostCenterID: row.CostCenterID, AllocatedAmount: row.AllocatedAmount})
	}
	detail, err := h.service.SubmitManualAllocations(r.Context(), id, rows)
	if err != nil {
		h.respondError(w, "submit manual allocations", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, detail)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid indirect cost id")
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get indirect cost", err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.PageFromRequest(r)
	costs, total, err := h.service.List(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		h.respondError(w, "list indirect costs", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"indirect_costs": costs,
		"pagination":     shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, masterdata.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrMethodNotImplemented):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Not Implemented", err.Error())
	case errors.Is(err, ErrAlreadyAllocated):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidCostType),
		errors.Is(err, ErrInvalidMethod), errors.Is(err, ErrNoCostCenters),
		errors.Is(err, ErrMethodMismatch), errors.Is(err, ErrRowsMismatch),
		errors.Is(err, ErrDuplicateCostCenter):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

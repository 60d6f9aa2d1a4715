package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/thundernada/farm-management/internal/inventory"
	"github.com/thundernada/farm-management/internal/masterdata"
	"github.com/thundernada/farm-management/internal/platform/httpx"
	"github.com/thundernada/farm-management/internal/shared"
)

// Handler wires HTTP endpoints for the ledger.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the ledger handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/expenses", h.handleListExpenses)
	r.Get("/expenses/{id}", h.handleGetExpense)
	r.Post("/expenses", h.handleCreateExpense)
	r.Get("/revenue", h.handleListRevenue)
	r.Post("/revenue", h.handleCreateRevenue)
}

type createExpenseRequest struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	ItemName       string  `json:"item_name" validate:"required"`
	Category       string  `json:"category"`
	CostCenterID   int64   `json:"cost_center_id" validate:"required"`
	Amount         float64 `json:"amount" validate:"gt=0"`
	Quantity       float64 `json:"quantity" validate:"gte=0"`
	Unit           string  `json:"unit"`
	ReceiptImage   string  `json:"receipt_image"`
	Notes          string  `json:"notes"`
	TrackInventory bool    `json:"track_inventory"`
}

type createRevenueRequest struct {
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	CostCenterID int64   `json:"cost_center_id" validate:"required"`
	ProductName  string  `json:"product_name" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
}

type createExpenseResponse struct {
	Expense   Expense         `json:"expense"`
	Inventory *inventory.Item `json:"inventory,omitempty"`
}

func (h *Handler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
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
	expense, item, err := h.service.RecordExpense(r.Context(), ExpenseInput{
		Date:           date,
		ItemName:       req.ItemName,
		Category:       req.Category,
		CostCenterID:   req.CostCenterID,
		Amount:         req.Amount,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ReceiptImage:   req.ReceiptImage,
		Notes:          req.Notes,
		TrackInventory: req.TrackInventory,
	})
	if err != nil {
		h.respondError(w, "record expense", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, createExpenseResponse{Expense: expense, Inventory: item})
}

func (h *Handler) handleCreateRevenue(w http.ResponseWriter, r *http.Request) {
	var req createRevenueRequest
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
	revenue, err := h.service.RecordRevenue(r.Context(), RevenueInput{
		Date:         date,
		CostCenterID: req.CostCenterID,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
	})
	if err != nil {
		h.respondError(w, "record revenue", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, revenue)
}

func (h *Handler) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid expense id")
		return
	}
	expense, err := h.service.GetExpense(r.Context(), id)
	if err != nil {
		h.respondError(w, "get expense", err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

func (h *Handler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, page, perPage, err := listFilterFromRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	expenses, total, err := h.service.ListExpenses(r.Context(), filter)
	if err != nil {
		h.respondError(w, "list expenses", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"expenses":   expenses,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) handleListRevenue(w http.ResponseWriter, r *http.Request) {
	filter, page, perPage, err := listFilterFromRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	revenues, total, err := h.service.ListRevenue(r.Context(), filter)
	if err != nil {
		h.respondError(w, "list revenue", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"revenue":    revenues,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func listFilterFromRequest(r *http.Request) (ListFilter, int, int, error) {
	var filter ListFilter
	q := r.URL.Query()
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return ListFilter{}, 0, 0, errors.New("invalid from date")
		}
		filter.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return ListFilter{}, 0, 0, errors.New("invalid to date")
		}
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if cc := q.Get("cost_center_id"); cc != "" {
		id, err := strconv.ParseInt(cc, 10, 64)
		if err != nil {
			return ListFilter{}, 0, 0, errors.New("invalid cost center id")
		}
		filter.CostCenterID = id
	}
	page, perPage := shared.PageFromRequest(r)
	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage
	return filter, page, perPage, nil
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, masterdata.ErrNotFound):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidUnitPrice),
		errors.Is(err, ErrStockQuantityRequired), errors.Is(err, ErrReceiptInvalid),
		errors.Is(err, ErrReceiptTooLarge), errors.Is(err, ErrReceiptUnsupported):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

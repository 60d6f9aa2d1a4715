package assets

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/thundernada/farm-management/internal/platform/httpx"
)

// Handler wires HTTP endpoints for assets.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the asset handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers asset routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/assets", h.handleList)
	r.Get("/assets/{id}", h.handleGet)
	r.Post("/assets", h.handleCreate)
	r.Post("/assets/{id}/dispose", h.handleDispose)
}

type createAssetRequest struct {
	AssetName       string  `json:"asset_name" validate:"required"`
	PurchaseDate    string  `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice   float64 `json:"purchase_price" validate:"gte=0"`
	UsefulLifeYears int     `json:"useful_life_years" validate:"gte=1,lte=50"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid purchase date")
		return
	}
	valuation, err := h.service.Create(r.Context(), CreateInput{
		AssetName:       req.AssetName,
		PurchaseDate:    purchaseDate,
		PurchasePrice:   req.PurchasePrice,
		UsefulLifeYears: req.UsefulLifeYears,
	})
	if err != nil {
		h.respondError(w, "create asset", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, valuation)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	valuations, err := h.service.List(r.Context(), status)
	if err != nil {
		h.respondError(w, "list assets", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"assets": valuations})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid asset id")
		return
	}
	valuation, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get asset", err)
		return
	}
	httpx.JSON(w, http.StatusOK, valuation)
}

func (h *Handler) handleDispose(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid asset id")
		return
	}
	if err := h.service.Dispose(r.Context(), id); err != nil {
		h.respondError(w, "dispose asset", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": string(StatusDisposed)})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidLifeYears), errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

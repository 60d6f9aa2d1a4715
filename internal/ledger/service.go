package ledger

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/thundernada/farm-management/internal/inventory"
	"github.com/thundernada/farm-management/internal/masterdata"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	InsertExpenseWithStock(ctx context.Context, expense Expense, stock *StockLink) (Expense, *inventory.Item, error)
	InsertRevenue(ctx context.Context, revenue Revenue) (Revenue, error)
	GetExpense(ctx context.Context, id int64) (Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, int, error)
	ListRevenue(ctx context.Context, filter ListFilter) ([]Revenue, int, error)
}

// CostCenterPort verifies cost center references.
type CostCenterPort interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CacheInvalidator bumps derived-metric caches after ledger writes.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// ExpenseInput describes a new expense submission.
type ExpenseInput struct {
	Date           time.Time
	ItemName       string
	Category       string
	CostCenterID   int64
	Amount         float64
	Quantity       float64
	Unit           string
	ReceiptImage   string
	Notes          string
	TrackInventory bool
}

// RevenueInput describes a new revenue submission.
type RevenueInput struct {
	Date         time.Time
	CostCenterID int64
	ProductName  string
	Quantity     float64
	UnitPrice    float64
}

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	ReceiptMaxBytes int64
}

// Service coordinates ledger operations.
type Service struct {
	repo    RepositoryPort
	centers CostCenterPort
	cache   CacheInvalidator
	logger  *slog.Logger
	cfg     ServiceConfig
}

// NewService builds Service.
func NewService(repo RepositoryPort, centers CostCenterPort, cache CacheInvalidator, logger *slog.Logger, cfg ServiceConfig) *Service {
	return &Service{repo: repo, centers: centers, cache: cache, logger: logger, cfg: cfg}
}

// RecordExpense validates and persists an expense. When the expense tracks a
// purchased input, the linked inventory item is upserted in the same
// transaction as the expense row.
func (s *Service) RecordExpense(ctx context.Context, input ExpenseInput) (Expense, *inventory.Item, error) {
	if strings.TrimSpace(input.ItemName) == "" {
		return Expense{}, nil, ErrInvalidName
	}
	if input.Amount <= 0 {
		return Expense{}, nil, ErrInvalidAmount
	}
	if input.Quantity < 0 {
		return Expense{}, nil, ErrInvalidQuantity
	}
	if input.TrackInventory && input.Quantity <= 0 {
		return Expense{}, nil, ErrStockQuantityRequired
	}
	if err := s.checkCostCenter(ctx, input.CostCenterID); err != nil {
		return Expense{}, nil, err
	}
	receipt, err := NormalizeReceipt(input.ReceiptImage, s.cfg.ReceiptMaxBytes)
	if err != nil {
		return Expense{}, nil, err
	}

	expense := Expense{
		Date:         dateOrNow(input.Date),
		ItemName:     strings.TrimSpace(input.ItemName),
		Category:     strings.TrimSpace(input.Category),
		CostCenterID: input.CostCenterID,
		Amount:       round2(input.Amount),
		Quantity:     input.Quantity,
		Unit:         strings.TrimSpace(input.Unit),
		ReceiptImage: receipt,
		Notes:        input.Notes,
	}

	var stock *StockLink
	if input.TrackInventory {
		stock = &StockLink{
			ItemName:  expense.ItemName,
			Quantity:  expense.Quantity,
			UnitPrice: expense.UnitPrice(),
		}
	}

	inserted, item, err := s.repo.InsertExpenseWithStock(ctx, expense, stock)
	if err != nil {
		return Expense{}, nil, err
	}
	s.bumpCache(ctx)

	if s.logger != nil {
		s.logger.Info("expense recorded",
			slog.Int64("id", inserted.ID),
			slog.Int64("cost_center_id", inserted.CostCenterID),
			slog.Float64("amount", inserted.Amount),
			slog.Bool("inventory_linked", stock != nil))
	}
	return inserted, item, nil
}

// RecordRevenue validates and persists a revenue entry. TotalAmount is
// derived as Quantity x UnitPrice here and never re-validated afterwards.
func (s *Service) RecordRevenue(ctx context.Context, input RevenueInput) (Revenue, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return Revenue{}, ErrInvalidName
	}
	if input.Quantity <= 0 {
		return Revenue{}, ErrInvalidQuantity
	}
	if input.UnitPrice < 0 {
		return Revenue{}, ErrInvalidUnitPrice
	}
	if err := s.checkCostCenter(ctx, input.CostCenterID); err != nil {
		return Revenue{}, err
	}

	revenue := Revenue{
		Date:         dateOrNow(input.Date),
		CostCenterID: input.CostCenterID,
		ProductName:  strings.TrimSpace(input.ProductName),
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		TotalAmount:  round2(input.Quantity * input.UnitPrice),
	}

	inserted, err := s.repo.InsertRevenue(ctx, revenue)
	if err != nil {
		return Revenue{}, err
	}
	s.bumpCache(ctx)

	if s.logger != nil {
		s.logger.Info("revenue recorded",
			slog.Int64("id", inserted.ID),
			slog.Int64("cost_center_id", inserted.CostCenterID),
			slog.Float64("total_amount", inserted.TotalAmount))
	}
	return inserted, nil
}

// GetExpense fetches one expense.
func (s *Service) GetExpense(ctx context.Context, id int64) (Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// ListExpenses returns expenses matching the filter.
func (s *Service) ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, int, error) {
	return s.repo.ListExpenses(ctx, filter)
}

// ListRevenue returns revenue records matching the filter.
func (s *Service) ListRevenue(ctx context.Context, filter ListFilter) ([]Revenue, int, error) {
	return s.repo.ListRevenue(ctx, filter)
}

func (s *Service) checkCostCenter(ctx context.Context, id int64) error {
	if s.centers == nil {
		return nil
	}
	ok, err := s.centers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return masterdata.ErrNotFound
	}
	return nil
}

func (s *Service) bumpCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("bump metrics cache", slog.Any("error", err))
	}
}

func dateOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

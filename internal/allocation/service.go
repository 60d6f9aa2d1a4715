package allocation

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/thundernada/farm-management/internal/masterdata"
)

// CostCenterPort resolves active cost centers for splitting.
type CostCenterPort interface {
	ListActive(ctx context.Context) ([]masterdata.CostCenter, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CacheInvalidator bumps derived-metric caches after allocation writes.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// CreateInput describes a new indirect cost entry.
type CreateInput struct {
	Date     time.Time
	CostType string
	Amount   float64
	Method   Method
}

// ManualRow is one cost center share in a manual allocation submission.
type ManualRow struct {
	CostCenterID    int64
	AllocatedAmount float64
}

// Service coordinates indirect cost allocation.
type Service struct {
	repo    RepositoryPort
	centers CostCenterPort
	cache   CacheInvalidator
	logger  *slog.Logger
}

// NewService builds Service.
func NewService(repo RepositoryPort, centers CostCenterPort, cache CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, centers: centers, cache: cache, logger: logger}
}

func (s *Service) bumpCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("bump dashboard cache", slog.Any("error", err))
	}
}

// Create records an indirect cost. Equal-method costs are split across all
// active cost centers and the rows persist in the same transaction as the
// parent. Manual and proportional costs are stored unallocated; manual ones
// take rows through SubmitManualAllocations, proportional ones have no
// computation path yet.
func (s *Service) Create(ctx context.Context, input CreateInput) (Detail, error) {
	if strings.TrimSpace(input.CostType) == "" {
		return Detail{}, ErrInvalidCostType
	}
	if input.Amount <= 0 {
		return Detail{}, ErrInvalidAmount
	}
	switch input.Method {
	case MethodEqual, MethodManual, MethodProportional:
	default:
		return Detail{}, ErrInvalidMethod
	}

	cost := IndirectCost{
		Date:             input.Date,
		CostType:         strings.TrimSpace(input.CostType),
		Amount:           input.Amount,
		AllocationMethod: input.Method,
	}

	var shares []Share
	if input.Method == MethodEqual {
		centers, err := s.centers.ListActive(ctx)
		if err != nil {
			return Detail{}, err
		}
		ids := make([]int64, 0, len(centers))
		for _, c := range centers {
			ids = append(ids, c.ID)
		}
		shares, err = SplitEqual(input.Amount, ids)
		if err != nil {
			return Detail{}, err
		}
	}

	detail := Detail{IndirectCost: cost}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertIndirectCost(ctx, cost)
		if err != nil {
			return err
		}
		detail.ID = id
		if len(shares) == 0 {
			return nil
		}
		rows, err := tx.InsertAllocations(ctx, id, shares)
		if err != nil {
			return err
		}
		detail.Allocations = rows
		return nil
	})
	if err != nil {
		return Detail{}, err
	}
	s.bumpCache(ctx)

	if s.logger != nil {
		s.logger.Info("indirect cost recorded",
			slog.Int64("id", detail.ID),
			slog.String("method", string(input.Method)),
			slog.Float64("amount", input.Amount),
			slog.Int("allocations", len(detail.Allocations)))
	}
	return detail, nil
}

// SubmitManualAllocations attaches caller-provided rows to a manual-method
// indirect cost. Rows must reference distinct known cost centers and sum to
// the parent amount within epsilon.
func (s *Service) SubmitManualAllocations(ctx context.Context, indirectCostID int64, rows []ManualRow) (Detail, error) {
	detail, err := s.repo.Get(ctx, indirectCostID)
	if err != nil {
		return Detail{}, err
	}
	switch detail.AllocationMethod {
	case MethodManual:
	case MethodProportional:
		return Detail{}, ErrMethodNotImplemented
	default:
		return Detail{}, ErrMethodMismatch
	}
	if len(detail.Allocations) > 0 {
		return Detail{}, ErrAlreadyAllocated
	}
	if len(rows) == 0 {
		return Detail{}, ErrNoCostCenters
	}

	seen := make(map[int64]bool, len(rows))
	var sum float64
	shares := make([]Share, 0, len(rows))
	for _, row := range rows {
		if row.AllocatedAmount <= 0 {
			return Detail{}, ErrInvalidAmount
		}
		if seen[row.CostCenterID] {
			return Detail{}, ErrDuplicateCostCenter
		}
		seen[row.CostCenterID] = true

		ok, err := s.centers.Exists(ctx, row.CostCenterID)
		if err != nil {
			return Detail{}, err
		}
		if !ok {
			return Detail{}, masterdata.ErrNotFound
		}

		sum += row.AllocatedAmount
		shares = append(shares, Share{
			CostCenterID: row.CostCenterID,
			Amount:       round2(row.AllocatedAmount),
			Percentage:   round2(row.AllocatedAmount / detail.Amount * 100),
		})
	}
	if math.Abs(sum-detail.Amount) > amountEpsilon {
		return Detail{}, ErrRowsMismatch
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		count, err := tx.CountAllocations(ctx, indirectCostID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyAllocated
		}
		inserted, err := tx.InsertAllocations(ctx, indirectCostID, shares)
		if err != nil {
			return err
		}
		detail.Allocations = inserted
		return nil
	})
	if err != nil {
		return Detail{}, err
	}
	s.bumpCache(ctx)
	return detail, nil
}

// Get returns an indirect cost with its allocation rows.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	return s.repo.Get(ctx, id)
}

// List returns indirect costs newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]IndirectCost, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// IntegrityReport describes equal-method costs whose rows drifted from the
// parent amount.
type IntegrityReport struct {
	Checked  int
	Mismatch []int64
}

// CheckIntegrity verifies the equal-allocation sum invariant across the store.
func (s *Service) CheckIntegrity(ctx context.Context) (IntegrityReport, error) {
	details, err := s.repo.ListEqualMethodDetails(ctx)
	if err != nil {
		return IntegrityReport{}, err
	}
	report := IntegrityReport{Checked: len(details)}
	for _, d := range details {
		if !SumsToAmount(d.Allocations, d.Amount) {
			report.Mismatch = append(report.Mismatch, d.ID)
		}
	}
	return report, nil
}

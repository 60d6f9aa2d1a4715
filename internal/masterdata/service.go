package masterdata

import (
	"context"
	"log/slog"
	"strings"
)

// Service coordinates cost center operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Seed inserts the default cost center catalogue when the table is empty.
// Cost centers are static reference data and never change after this.
func (s *Service) Seed(ctx context.Context) ([]CostCenter, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadySeeded
	}
	seeded := make([]CostCenter, 0, len(DefaultCostCenters))
	for _, center := range DefaultCostCenters {
		inserted, err := s.repo.Insert(ctx, center)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, inserted)
	}
	if s.logger != nil {
		s.logger.Info("cost centers seeded", slog.Int("count", len(seeded)))
	}
	return seeded, nil
}

// EnsureSeeded seeds on first start and is a no-op afterwards.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	_, err := s.Seed(ctx)
	if err == ErrAlreadySeeded {
		return nil
	}
	return err
}

// List returns every cost center.
func (s *Service) List(ctx context.Context) ([]CostCenter, error) {
	return s.repo.List(ctx)
}

// ListActive returns cost centers that participate in allocations.
func (s *Service) ListActive(ctx context.Context) ([]CostCenter, error) {
	return s.repo.ListActive(ctx)
}

// Get fetches one cost center.
func (s *Service) Get(ctx context.Context, id int64) (CostCenter, error) {
	return s.repo.Get(ctx, id)
}

// Exists reports whether the cost center id references a known center.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindByName resolves a cost center by case-insensitive name match.
func (s *Service) FindByName(ctx context.Context, name string) (CostCenter, error) {
	centers, err := s.repo.List(ctx)
	if err != nil {
		return CostCenter{}, err
	}
	for _, c := range centers {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return CostCenter{}, ErrNotFound
}

package inventory

import "context"

// Service exposes inventory read operations.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all stock items.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Get returns one stock item by name.
func (s *Service) Get(ctx context.Context, itemName string) (Item, error) {
	return s.repo.Get(ctx, itemName)
}

// TotalStockValue sums the value of all stock on hand.
func (s *Service) TotalStockValue(ctx context.Context) (float64, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, it := range items {
		total += it.TotalValue
	}
	return total, nil
}

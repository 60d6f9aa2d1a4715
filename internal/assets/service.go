package assets

import (
	"context"
	"strings"
	"time"
)

// CreateInput describes a new asset registration.
type CreateInput struct {
	AssetName       string
	PurchaseDate    time.Time
	PurchasePrice   float64
	UsefulLifeYears int
}

// Service coordinates asset operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Create validates and registers a new asset.
func (s *Service) Create(ctx context.Context, input CreateInput) (Valuation, error) {
	if strings.TrimSpace(input.AssetName) == "" {
		return Valuation{}, ErrInvalidName
	}
	if input.PurchasePrice < 0 {
		return Valuation{}, ErrInvalidPrice
	}
	if input.UsefulLifeYears < MinUsefulLifeYears || input.UsefulLifeYears > MaxUsefulLifeYears {
		return Valuation{}, ErrInvalidLifeYears
	}
	asset := Asset{
		AssetName:       strings.TrimSpace(input.AssetName),
		PurchaseDate:    input.PurchaseDate,
		PurchasePrice:   input.PurchasePrice,
		UsefulLifeYears: input.UsefulLifeYears,
		Status:          StatusActive,
	}
	inserted, err := s.repo.Insert(ctx, asset)
	if err != nil {
		return Valuation{}, err
	}
	return ValueAt(inserted, s.now().UTC()), nil
}

// List returns assets decorated with book values as of now.
func (s *Service) List(ctx context.Context, status Status) ([]Valuation, error) {
	if status != "" && status != StatusActive && status != StatusDisposed {
		return nil, ErrInvalidStatus
	}
	list, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	valuations := make([]Valuation, 0, len(list))
	for _, asset := range list {
		valuations = append(valuations, ValueAt(asset, now))
	}
	return valuations, nil
}

// Get returns one asset with its book value as of now.
func (s *Service) Get(ctx context.Context, id int64) (Valuation, error) {
	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return Valuation{}, err
	}
	return ValueAt(asset, s.now().UTC()), nil
}

// Dispose marks an asset as out of service. Disposal only hides the asset
// from dashboard totals; the book value math is unchanged.
func (s *Service) Dispose(ctx context.Context, id int64) error {
	return s.repo.UpdateStatus(ctx, id, StatusDisposed)
}

// TotalBookValue sums the current value of active assets as of now.
func (s *Service) TotalBookValue(ctx context.Context) (float64, error) {
	valuations, err := s.List(ctx, StatusActive)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range valuations {
		total += v.CurrentValue
	}
	return round2(total), nil
}

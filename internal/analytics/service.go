package analytics

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const trendWindowMonths = 12

// AssetsPort resolves the book value of active assets.
type AssetsPort interface {
	TotalBookValue(ctx context.Context) (float64, error)
}

// Service resolves dashboard blocks with cache-aware lookups.
type Service struct {
	repo    Repository
	assets  AssetsPort
	cache   *Cache
	printer *message.Printer
}

// NewService builds Service.
func NewService(repo Repository, assets AssetsPort, cache *Cache) *Service {
	return &Service{
		repo:    repo,
		assets:  assets,
		cache:   cache,
		printer: message.NewPrinter(language.English),
	}
}

// GetKPISummary resolves the headline figures.
func (s *Service) GetKPISummary(ctx context.Context) (KPISummary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		totals, err := s.repo.Totals(ctx)
		if err != nil {
			return KPISummary{}, err
		}
		summary := KPISummary{
			TotalSpent:    totals.TotalSpent,
			TotalRevenue:  totals.TotalRevenue,
			NetProfit:     round2(totals.TotalRevenue - totals.TotalSpent),
			IndirectTotal: totals.IndirectTotal,
		}
		if s.assets != nil {
			bookValue, err := s.assets.TotalBookValue(ctx)
			if err != nil {
				return KPISummary{}, err
			}
			summary.AssetBookValue = bookValue
		}
		summary.DisplayTotalSpent = s.formatAmount(summary.TotalSpent)
		summary.DisplayTotalRevenue = s.formatAmount(summary.TotalRevenue)
		summary.DisplayNetProfit = s.formatAmount(summary.NetProfit)
		return summary, nil
	}

	var summary KPISummary
	if err := s.fetch(ctx, "dashboard:kpi", &summary, loader); err != nil {
		return KPISummary{}, err
	}
	return summary, nil
}

// GetSpendByCostCenter resolves pie-chart slices of expense totals.
func (s *Service) GetSpendByCostCenter(ctx context.Context) ([]SpendSlice, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		slices, err := s.repo.SpendByCostCenter(ctx)
		if err != nil {
			return nil, err
		}
		var total float64
		for _, slice := range slices {
			total += slice.Amount
		}
		if total > 0 {
			for i := range slices {
				slices[i].Percent = round2(slices[i].Amount / total * 100)
			}
		}
		return slices, nil
	}

	var slices []SpendSlice
	if err := s.fetch(ctx, "dashboard:spend", &slices, loader); err != nil {
		return nil, err
	}
	return slices, nil
}

// GetMonthlyTrend resolves the last 12 months of spend and revenue.
func (s *Service) GetMonthlyTrend(ctx context.Context) ([]TrendPoint, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.MonthlyTrend(ctx, trendWindowMonths)
	}

	var points []TrendPoint
	if err := s.fetch(ctx, "dashboard:trend:"+strconv.Itoa(trendWindowMonths), &points, loader); err != nil {
		return nil, err
	}
	return points, nil
}

// fetch is cache-aware and degrades to a direct load when no cache is wired.
func (s *Service) fetch(ctx context.Context, keyBase string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, keyBase)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

func (s *Service) formatAmount(v float64) string {
	return s.printer.Sprintf("%.2f", v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package analytics

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRepo struct {
	totals      TotalsRow
	totalsCalls int
	slices      []SpendSlice
	sliceCalls  int
	trend       []TrendPoint
	trendCalls  int
}

func (m *mockRepo) Totals(ctx context.Context) (TotalsRow, error) {
	m.totalsCalls++
	return m.totals, nil
}

func (m *mockRepo) SpendByCostCenter(ctx context.Context) ([]SpendSlice, error) {
	m.sliceCalls++
	return m.slices, nil
}

func (m *mockRepo) MonthlyTrend(ctx context.Context, months int) ([]TrendPoint, error) {
	m.trendCalls++
	return m.trend, nil
}

type fixedAssets struct {
	value float64
}

func (f fixedAssets) TotalBookValue(ctx context.Context) (float64, error) {
	return f.value, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, *Cache, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, fixedAssets{value: 5000}, cache)
	return svc, cache, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestGetKPISummaryCaches(t *testing.T) {
	repo := &mockRepo{totals: TotalsRow{TotalSpent: 1800, TotalRevenue: 4200, IndirectTotal: 300}}
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	summary, err := svc.GetKPISummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.NetProfit != 2400 {
		t.Fatalf("expected net profit 2400 got %.2f", summary.NetProfit)
	}
	if summary.AssetBookValue != 5000 {
		t.Fatalf("expected asset book value 5000 got %.2f", summary.AssetBookValue)
	}
	if summary.DisplayNetProfit != "2,400.00" {
		t.Fatalf("expected formatted net profit got %q", summary.DisplayNetProfit)
	}

	if _, err := svc.GetKPISummary(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.totalsCalls != 1 {
		t.Fatalf("expected single repo load, got %d", repo.totalsCalls)
	}
}

func TestBumpInvalidatesCache(t *testing.T) {
	repo := &mockRepo{totals: TotalsRow{TotalSpent: 100, TotalRevenue: 150}}
	svc, cache, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.GetKPISummary(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if _, err := svc.GetKPISummary(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.totalsCalls != 2 {
		t.Fatalf("expected reload after bump, got %d calls", repo.totalsCalls)
	}
}

func TestSpendByCostCenterPercentages(t *testing.T) {
	repo := &mockRepo{slices: []SpendSlice{
		{CostCenterID: 1, CostCenterName: "Mango", Amount: 600},
		{CostCenterID: 2, CostCenterName: "Poultry", Amount: 400},
	}}
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	slices, err := svc.GetSpendByCostCenter(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slices[0].Percent != 60 || slices[1].Percent != 40 {
		t.Fatalf("unexpected percentages: %+v", slices)
	}
}

func TestMonthlyTrendCached(t *testing.T) {
	repo := &mockRepo{trend: []TrendPoint{{Month: "2025-06", Spent: 10, Revenue: 20}}}
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		points, err := svc.GetMonthlyTrend(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) != 1 || points[0].Month != "2025-06" {
			t.Fatalf("unexpected points: %+v", points)
		}
	}
	if repo.trendCalls != 1 {
		t.Fatalf("expected single repo load, got %d", repo.trendCalls)
	}
}

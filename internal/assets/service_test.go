package assets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	assets map[int64]Asset
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{assets: make(map[int64]Asset)}
}

func (r *memoryRepo) List(ctx context.Context, status Status) ([]Asset, error) {
	var list []Asset
	for _, a := range r.assets {
		if status == "" || a.Status == status {
			list = append(list, a)
		}
	}
	return list, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return Asset{}, ErrNotFound
	}
	return a, nil
}

func (r *memoryRepo) Insert(ctx context.Context, asset Asset) (Asset, error) {
	r.nextID++
	asset.ID = r.nextID
	asset.CreatedAt = time.Now().UTC()
	r.assets[asset.ID] = asset
	return asset, nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	a, ok := r.assets[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	r.assets[id] = a
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, CreateInput{AssetName: "", PurchaseDate: date, PurchasePrice: 100, UsefulLifeYears: 5})
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Create(ctx, CreateInput{AssetName: "Tractor", PurchaseDate: date, PurchasePrice: -1, UsefulLifeYears: 5})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Create(ctx, CreateInput{AssetName: "Tractor", PurchaseDate: date, PurchasePrice: 100, UsefulLifeYears: 0})
	require.ErrorIs(t, err, ErrInvalidLifeYears)

	_, err = svc.Create(ctx, CreateInput{AssetName: "Tractor", PurchaseDate: date, PurchasePrice: 100, UsefulLifeYears: 51})
	require.ErrorIs(t, err, ErrInvalidLifeYears)
}

func TestCreateAndValue(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	purchase := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return yearsAfter(purchase, 5) })

	valuation, err := svc.Create(context.Background(), CreateInput{
		AssetName:       "Irrigation well",
		PurchaseDate:    purchase,
		PurchasePrice:   10000,
		UsefulLifeYears: 10,
	})
	require.NoError(t, err)
	require.Equal(t, StatusActive, valuation.Status)
	require.InDelta(t, 5000.00, valuation.CurrentValue, 0.01)
	require.InDelta(t, 5000.00, valuation.AccumulatedDepreciation, 0.01)
}

func TestDisposeExcludesFromBookValue(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return purchase })
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{AssetName: "Barn", PurchaseDate: purchase, PurchasePrice: 5000, UsefulLifeYears: 20})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{AssetName: "Pump", PurchaseDate: purchase, PurchasePrice: 1500, UsefulLifeYears: 5})
	require.NoError(t, err)

	total, err := svc.TotalBookValue(ctx)
	require.NoError(t, err)
	require.InDelta(t, 6500, total, 0.01)

	require.NoError(t, svc.Dispose(ctx, a.ID))

	total, err = svc.TotalBookValue(ctx)
	require.NoError(t, err)
	require.InDelta(t, 1500, total, 0.01)
}

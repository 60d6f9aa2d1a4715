package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items map[string]Item
}

func (r *memoryRepo) List(ctx context.Context) ([]Item, error) {
	var list []Item
	for _, it := range r.items {
		list = append(list, it)
	}
	return list, nil
}

func (r *memoryRepo) Get(ctx context.Context, itemName string) (Item, error) {
	it, ok := r.items[itemName]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func TestGetMissingItem(t *testing.T) {
	svc := NewService(&memoryRepo{items: map[string]Item{}})

	_, err := svc.Get(context.Background(), "compost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTotalStockValue(t *testing.T) {
	now := time.Now().UTC()
	repo := &memoryRepo{items: map[string]Item{
		"fertilizer": {ItemName: "fertilizer", Quantity: 10, UnitPrice: 50, TotalValue: 500, UpdatedAt: now},
		"feed":       {ItemName: "feed", Quantity: 4, UnitPrice: 25.5, TotalValue: 102, UpdatedAt: now},
	}}
	svc := NewService(repo)

	total, err := svc.TotalStockValue(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 602, total, 0.001)
}

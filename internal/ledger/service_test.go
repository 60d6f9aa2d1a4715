package ledger

import (
	"context"
	"encoding/base64"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thundernada/farm-management/internal/inventory"
	"github.com/thundernada/farm-management/internal/masterdata"
)

type memoryRepo struct {
	expenses []Expense
	revenues []Revenue
	stock    map[string]inventory.Item
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{stock: make(map[string]inventory.Item)}
}

func (r *memoryRepo) InsertExpenseWithStock(ctx context.Context, expense Expense, stock *StockLink) (Expense, *inventory.Item, error) {
	r.nextID++
	expense.ID = r.nextID
	expense.CreatedAt = time.Now().UTC()
	r.expenses = append(r.expenses, expense)

	var item *inventory.Item
	if stock != nil {
		it := r.stock[stock.ItemName]
		it.ItemName = stock.ItemName
		it.Quantity += stock.Quantity
		it.UnitPrice = stock.UnitPrice
		it.TotalValue = math.Round(it.Quantity*it.UnitPrice*100) / 100
		it.UpdatedAt = expense.CreatedAt
		r.stock[stock.ItemName] = it
		item = &it
	}
	return expense, item, nil
}

func (r *memoryRepo) InsertRevenue(ctx context.Context, revenue Revenue) (Revenue, error) {
	r.nextID++
	revenue.ID = r.nextID
	revenue.CreatedAt = time.Now().UTC()
	r.revenues = append(r.revenues, revenue)
	return revenue, nil
}

func (r *memoryRepo) GetExpense(ctx context.Context, id int64) (Expense, error) {
	for _, e := range r.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return Expense{}, ErrNotFound
}

func (r *memoryRepo) ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, int, error) {
	return r.expenses, len(r.expenses), nil
}

func (r *memoryRepo) ListRevenue(ctx context.Context, filter ListFilter) ([]Revenue, int, error) {
	return r.revenues, len(r.revenues), nil
}

type allowAllCenters struct{}

func (allowAllCenters) Exists(ctx context.Context, id int64) (bool, error) {
	return id > 0 && id < 100, nil
}

type countingBumper struct {
	calls int
}

func (b *countingBumper) Bump(ctx context.Context) error {
	b.calls++
	return nil
}

func newTestService(repo *memoryRepo, bumper *countingBumper) *Service {
	var cache CacheInvalidator
	if bumper != nil {
		cache = bumper
	}
	return NewService(repo, allowAllCenters{}, cache, nil, ServiceConfig{ReceiptMaxBytes: 1024})
}

func expenseDate() time.Time {
	return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
}

func TestRecordExpenseWithInventoryUpsert(t *testing.T) {
	repo := newMemoryRepo()
	bumper := &countingBumper{}
	svc := newTestService(repo, bumper)
	ctx := context.Background()

	expense, item, err := svc.RecordExpense(ctx, ExpenseInput{
		Date: expenseDate(), ItemName: "Nitrate fertilizer", Category: "direct",
		CostCenterID: 1, Amount: 500, Quantity: 10, Unit: "bag", TrackInventory: true,
	})
	require.NoError(t, err)
	require.NotZero(t, expense.ID)
	require.NotNil(t, item)
	require.InDelta(t, 10, item.Quantity, 0.001)
	require.InDelta(t, 50, item.UnitPrice, 0.001)
	require.Equal(t, 1, bumper.calls)

	// Second purchase accumulates stock for the same item.
	_, item, err = svc.RecordExpense(ctx, ExpenseInput{
		Date: expenseDate(), ItemName: "Nitrate fertilizer", Category: "direct",
		CostCenterID: 1, Amount: 300, Quantity: 5, Unit: "bag", TrackInventory: true,
	})
	require.NoError(t, err)
	require.InDelta(t, 15, item.Quantity, 0.001)
	require.InDelta(t, 60, item.UnitPrice, 0.001)
}

func TestRecordExpenseValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, _, err := svc.RecordExpense(ctx, ExpenseInput{Date: expenseDate(), ItemName: "", CostCenterID: 1, Amount: 10})
	require.ErrorIs(t, err, ErrInvalidName)

	_, _, err = svc.RecordExpense(ctx, ExpenseInput{Date: expenseDate(), ItemName: "Seed", CostCenterID: 1, Amount: 0})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.RecordExpense(ctx, ExpenseInput{Date: expenseDate(), ItemName: "Seed", CostCenterID: 1, Amount: 10, Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = svc.RecordExpense(ctx, ExpenseInput{Date: expenseDate(), ItemName: "Seed", CostCenterID: 999, Amount: 10})
	require.ErrorIs(t, err, masterdata.ErrNotFound)

	_, _, err = svc.RecordExpense(ctx, ExpenseInput{
		Date: expenseDate(), ItemName: "Seed", CostCenterID: 1, Amount: 10, TrackInventory: true,
	})
	require.ErrorIs(t, err, ErrStockQuantityRequired)
}

func TestRecordExpenseNormalizesReceipt(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, nil)

	encoded := base64.StdEncoding.EncodeToString(pngBytes)
	expense, _, err := svc.RecordExpense(context.Background(), ExpenseInput{
		Date: expenseDate(), ItemName: "Pruning labor", CostCenterID: 2, Amount: 150,
		ReceiptImage: "data:image/png;base64," + encoded,
	})
	require.NoError(t, err)
	require.Equal(t, encoded, expense.ReceiptImage)

	_, _, err = svc.RecordExpense(context.Background(), ExpenseInput{
		Date: expenseDate(), ItemName: "Pruning labor", CostCenterID: 2, Amount: 150,
		ReceiptImage: "###",
	})
	require.ErrorIs(t, err, ErrReceiptInvalid)
}

func TestRecordRevenueDerivesTotal(t *testing.T) {
	repo := newMemoryRepo()
	bumper := &countingBumper{}
	svc := newTestService(repo, bumper)

	revenue, err := svc.RecordRevenue(context.Background(), RevenueInput{
		Date: expenseDate(), CostCenterID: 3, ProductName: "Mango crates", Quantity: 12.5, UnitPrice: 80,
	})
	require.NoError(t, err)
	require.InDelta(t, 1000.00, revenue.TotalAmount, 0.001)
	require.Equal(t, 1, bumper.calls)
}

func TestRecordRevenueValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.RecordRevenue(ctx, RevenueInput{Date: expenseDate(), CostCenterID: 1, ProductName: "", Quantity: 1, UnitPrice: 1})
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.RecordRevenue(ctx, RevenueInput{Date: expenseDate(), CostCenterID: 1, ProductName: "Eggs", Quantity: 0, UnitPrice: 1})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.RecordRevenue(ctx, RevenueInput{Date: expenseDate(), CostCenterID: 1, ProductName: "Eggs", Quantity: 1, UnitPrice: -2})
	require.ErrorIs(t, err, ErrInvalidUnitPrice)
}

func TestExpenseUnitPriceZeroQuantityFallback(t *testing.T) {
	e := Expense{Amount: 120, Quantity: 0}
	require.InDelta(t, 120, e.UnitPrice(), 0.001)

	e.Quantity = 4
	require.InDelta(t, 30, e.UnitPrice(), 0.001)
}

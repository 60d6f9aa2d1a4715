package inventory

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads inventory stock from PostgreSQL.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, itemName string) (Item, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new inventory repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context) ([]Item, error) {
	query := `SELECT item_name, quantity, unit_price, total_value, updated_at
	          FROM inventory_items ORDER BY item_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ItemName, &it.Quantity, &it.UnitPrice, &it.TotalValue, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repo) Get(ctx context.Context, itemName string) (Item, error) {
	query := `SELECT item_name, quantity, unit_price, total_value, updated_at
	          FROM inventory_items WHERE item_name = $1`
	var it Item
	err := r.db.QueryRow(ctx, query, itemName).Scan(&it.ItemName, &it.Quantity, &it.UnitPrice, &it.TotalValue, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return it, err
}

// UpsertTx accumulates quantity for an item inside the caller's transaction,
// refreshing the unit price and the derived total value. The ledger uses it
// to keep the expense insert and the stock update atomic.
func UpsertTx(ctx context.Context, tx pgx.Tx, itemName string, qtyDelta, unitPrice float64) (Item, error) {
	if qtyDelta <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	query := `INSERT INTO inventory_items (item_name, quantity, unit_price, total_value, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (item_name) DO UPDATE SET
	              quantity    = inventory_items.quantity + EXCLUDED.quantity,
	              unit_price  = EXCLUDED.unit_price,
	              total_value = round((inventory_items.quantity + EXCLUDED.quantity)::numeric * EXCLUDED.unit_price::numeric, 2),
	              updated_at  = EXCLUDED.updated_at
	          RETURNING item_name, quantity, unit_price, total_value, updated_at`
	now := time.Now().UTC()
	total := math.Round(qtyDelta*unitPrice*100) / 100

	var it Item
	err := tx.QueryRow(ctx, query, itemName, qtyDelta, unitPrice, total, now).
		Scan(&it.ItemName, &it.Quantity, &it.UnitPrice, &it.TotalValue, &it.UpdatedAt)
	return it, err
}

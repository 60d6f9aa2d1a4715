package ledger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thundernada/farm-management/internal/inventory"
	"github.com/thundernada/farm-management/internal/platform/db"
)

// Repository persists ledger records in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertExpenseWithStock writes an expense and, when stock is non-nil,
// upserts the linked inventory item in the same transaction. A crash can
// not leave inventory understated relative to the expense table.
func (r *Repository) InsertExpenseWithStock(ctx context.Context, expense Expense, stock *StockLink) (Expense, *inventory.Item, error) {
	var item *inventory.Item
	now := time.Now().UTC()
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `INSERT INTO expenses (date, item_name, category, cost_center_id, amount, quantity, unit, receipt_image, notes, created_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
		if err := tx.QueryRow(ctx, query,
			expense.Date, expense.ItemName, expense.Category, expense.CostCenterID,
			expense.Amount, expense.Quantity, expense.Unit, expense.ReceiptImage,
			expense.Notes, now,
		).Scan(&expense.ID); err != nil {
			return err
		}
		if stock != nil {
			upserted, err := inventory.UpsertTx(ctx, tx, stock.ItemName, stock.Quantity, stock.UnitPrice)
			if err != nil {
				return err
			}
			item = &upserted
		}
		return nil
	})
	if err != nil {
		return Expense{}, nil, err
	}
	expense.CreatedAt = now
	return expense, item, nil
}

// InsertRevenue writes a revenue record.
func (r *Repository) InsertRevenue(ctx context.Context, revenue Revenue) (Revenue, error) {
	query := `INSERT INTO revenue (date, cost_center_id, product_name, quantity, unit_price, total_amount, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx, query,
		revenue.Date, revenue.CostCenterID, revenue.ProductName,
		revenue.Quantity, revenue.UnitPrice, revenue.TotalAmount, now,
	).Scan(&revenue.ID)
	if err != nil {
		return Revenue{}, err
	}
	revenue.CreatedAt = now
	return revenue, nil
}

// GetExpense fetches one expense.
func (r *Repository) GetExpense(ctx context.Context, id int64) (Expense, error) {
	query := `SELECT id, date, item_name, category, cost_center_id, amount, quantity, unit, receipt_image, notes, created_at
	          FROM expenses WHERE id = $1`
	var e Expense
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Date, &e.ItemName, &e.Category, &e.CostCenterID,
		&e.Amount, &e.Quantity, &e.Unit, &e.ReceiptImage, &e.Notes, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrNotFound
	}
	return e, err
}

// ListExpenses returns expenses matching the filter, newest first, with a
// total row count for pagination.
func (r *Repository) ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, int, error) {
	where, args := filterClauses(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, date, item_name, category, cost_center_id, amount, quantity, unit, receipt_image, notes, created_at
	          FROM expenses` + where + ` ORDER BY date DESC, id DESC`
	query, args = withPaging(query, args, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.ItemName, &e.Category, &e.CostCenterID,
			&e.Amount, &e.Quantity, &e.Unit, &e.ReceiptImage, &e.Notes, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}
	return expenses, total, rows.Err()
}

// ListRevenue returns revenue records matching the filter, newest first,
// with a total row count for pagination.
func (r *Repository) ListRevenue(ctx context.Context, filter ListFilter) ([]Revenue, int, error) {
	where, args := filterClauses(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM revenue`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, date, cost_center_id, product_name, quantity, unit_price, total_amount, created_at
	          FROM revenue` + where + ` ORDER BY date DESC, id DESC`
	query, args = withPaging(query, args, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var revenues []Revenue
	for rows.Next() {
		var v Revenue
		if err := rows.Scan(&v.ID, &v.Date, &v.CostCenterID, &v.ProductName,
			&v.Quantity, &v.UnitPrice, &v.TotalAmount, &v.CreatedAt); err != nil {
			return nil, 0, err
		}
		revenues = append(revenues, v)
	}
	return revenues, total, rows.Err()
}

func filterClauses(filter ListFilter) (string, []interface{}) {
	clauses := ""
	args := []interface{}{}
	and := func() string {
		if clauses == "" {
			return " WHERE "
		}
		return " AND "
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		clauses += and() + "date >= $" + itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		clauses += and() + "date <= $" + itoa(len(args))
	}
	if filter.CostCenterID != 0 {
		args = append(args, filter.CostCenterID)
		clauses += and() + "cost_center_id = $" + itoa(len(args))
	}
	return clauses, args
}

func withPaging(query string, args []interface{}, filter ListFilter) (string, []interface{}) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	args = append(args, limit)
	query += " LIMIT $" + itoa(len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + itoa(len(args))
	}
	return query, args
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

package allocation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRepository exposes transactional operations used by the service.
type TxRepository interface {
	InsertIndirectCost(ctx context.Context, cost IndirectCost) (int64, error)
	InsertAllocations(ctx context.Context, indirectCostID int64, shares []Share) ([]CostAllocation, error)
	CountAllocations(ctx context.Context, indirectCostID int64) (int, error)
}

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (Detail, error)
	List(ctx context.Context, limit, offset int) ([]IndirectCost, int, error)
	ListEqualMethodDetails(ctx context.Context) ([]Detail, error)
}

// Repository persists indirect costs and allocations in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txRepo{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *txRepo) InsertIndirectCost(ctx context.Context, cost IndirectCost) (int64, error) {
	query := `INSERT INTO indirect_costs (date, cost_type, amount, allocation_method, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.tx.QueryRow(ctx, query, cost.Date, cost.CostType, cost.Amount, string(cost.AllocationMethod), time.Now().UTC()).Scan(&id)
	return id, err
}

func (r *txRepo) InsertAllocations(ctx context.Context, indirectCostID int64, shares []Share) ([]CostAllocation, error) {
	query := `INSERT INTO cost_allocations (indirect_cost_id, cost_center_id, allocated_amount, allocation_percentage)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	rows := make([]CostAllocation, 0, len(shares))
	for _, share := range shares {
		row := CostAllocation{
			IndirectCostID:       indirectCostID,
			CostCenterID:         share.CostCenterID,
			AllocatedAmount:      share.Amount,
			AllocationPercentage: share.Percentage,
		}
		if err := r.tx.QueryRow(ctx, query, indirectCostID, share.CostCenterID, share.Amount, share.Percentage).Scan(&row.ID); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *txRepo) CountAllocations(ctx context.Context, indirectCostID int64) (int, error) {
	var count int
	err := r.tx.QueryRow(ctx, `SELECT COUNT(*) FROM cost_allocations WHERE indirect_cost_id = $1`, indirectCostID).Scan(&count)
	return count, err
}

// Get loads an indirect cost with its allocation rows.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	query := `SELECT id, date, cost_type, amount, allocation_method, created_at
	          FROM indirect_costs WHERE id = $1`
	var d Detail
	var method string
	err := r.pool.QueryRow(ctx, query, id).Scan(&d.ID, &d.Date, &d.CostType, &d.Amount, &method, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	if err != nil {
		return Detail{}, err
	}
	d.AllocationMethod = Method(method)

	d.Allocations, err = r.allocationsFor(ctx, id)
	return d, err
}

func (r *Repository) allocationsFor(ctx context.Context, indirectCostID int64) ([]CostAllocation, error) {
	query := `SELECT id, indirect_cost_id, cost_center_id, allocated_amount, allocation_percentage
	          FROM cost_allocations WHERE indirect_cost_id = $1 ORDER BY cost_center_id`
	rows, err := r.pool.Query(ctx, query, indirectCostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []CostAllocation
	for rows.Next() {
		var a CostAllocation
		if err := rows.Scan(&a.ID, &a.IndirectCostID, &a.CostCenterID, &a.AllocatedAmount, &a.AllocationPercentage); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// List returns indirect costs newest first, with a total row count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]IndirectCost, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM indirect_costs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, date, cost_type, amount, allocation_method, created_at
	          FROM indirect_costs ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var costs []IndirectCost
	for rows.Next() {
		var c IndirectCost
		var method string
		if err := rows.Scan(&c.ID, &c.Date, &c.CostType, &c.Amount, &method, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		c.AllocationMethod = Method(method)
		costs = append(costs, c)
	}
	return costs, total, rows.Err()
}

// ListEqualMethodDetails loads every equal-method indirect cost with its rows,
// used by the integrity scan job.
func (r *Repository) ListEqualMethodDetails(ctx context.Context) ([]Detail, error) {
	query := `SELECT id, date, cost_type, amount, allocation_method, created_at
	          FROM indirect_costs WHERE allocation_method = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, string(MethodEqual))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var d Detail
		var method string
		if err := rows.Scan(&d.ID, &d.Date, &d.CostType, &d.Amount, &method, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.AllocationMethod = Method(method)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range details {
		allocations, err := r.allocationsFor(ctx, details[i].ID)
		if err != nil {
			return nil, err
		}
		details[i].Allocations = allocations
	}
	return details, nil
}

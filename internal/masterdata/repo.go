package masterdata

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists cost centers in PostgreSQL.
type Repository interface {
	List(ctx context.Context) ([]CostCenter, error)
	ListActive(ctx context.Context) ([]CostCenter, error)
	Get(ctx context.Context, id int64) (CostCenter, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, center CostCenter) (CostCenter, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new cost center repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context) ([]CostCenter, error) {
	query := `SELECT id, name, category, active, created_at FROM cost_centers ORDER BY id`
	return r.scanList(ctx, query)
}

func (r *repo) ListActive(ctx context.Context) ([]CostCenter, error) {
	query := `SELECT id, name, category, active, created_at FROM cost_centers WHERE active ORDER BY id`
	return r.scanList(ctx, query)
}

func (r *repo) scanList(ctx context.Context, query string) ([]CostCenter, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centers []CostCenter
	for rows.Next() {
		var c CostCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (CostCenter, error) {
	query := `SELECT id, name, category, active, created_at FROM cost_centers WHERE id = $1`
	var c CostCenter
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Category, &c.Active, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CostCenter{}, ErrNotFound
	}
	return c, err
}

func (r *repo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cost_centers`).Scan(&count)
	return count, err
}

func (r *repo) Insert(ctx context.Context, center CostCenter) (CostCenter, error) {
	query := `INSERT INTO cost_centers (name, category, active, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, center.Name, center.Category, center.Active, now).Scan(&center.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CostCenter{}, ErrDuplicateName
		}
		return CostCenter{}, err
	}
	center.CreatedAt = now
	return center, nil
}

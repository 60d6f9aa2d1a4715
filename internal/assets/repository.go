package assets

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists assets in PostgreSQL.
type Repository interface {
	List(ctx context.Context, status Status) ([]Asset, error)
	Get(ctx context.Context, id int64) (Asset, error)
	Insert(ctx context.Context, asset Asset) (Asset, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new asset repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context, status Status) ([]Asset, error) {
	query := `SELECT id, asset_name, purchase_date, purchase_price, useful_life_years, status, created_at
	          FROM assets`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY purchase_date, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.AssetName, &a.PurchaseDate, &a.PurchasePrice, &a.UsefulLifeYears, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (Asset, error) {
	query := `SELECT id, asset_name, purchase_date, purchase_price, useful_life_years, status, created_at
	          FROM assets WHERE id = $1`
	var a Asset
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.AssetName, &a.PurchaseDate, &a.PurchasePrice, &a.UsefulLifeYears, &a.Status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Asset{}, ErrNotFound
	}
	return a, err
}

func (r *repo) Insert(ctx context.Context, asset Asset) (Asset, error) {
	query := `INSERT INTO assets (asset_name, purchase_date, purchase_price, useful_life_years, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, asset.AssetName, asset.PurchaseDate, asset.PurchasePrice, asset.UsefulLifeYears, string(asset.Status), now).Scan(&asset.ID)
	if err != nil {
		return Asset{}, err
	}
	asset.CreatedAt = now
	return asset, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE assets SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

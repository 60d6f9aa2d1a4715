package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TotalsRow carries one aggregate pass over the ledger tables.
type TotalsRow struct {
	TotalSpent    float64
	TotalRevenue  float64
	IndirectTotal float64
}

// Repository reads aggregate figures from PostgreSQL.
type Repository interface {
	Totals(ctx context.Context) (TotalsRow, error)
	SpendByCostCenter(ctx context.Context) ([]SpendSlice, error)
	MonthlyTrend(ctx context.Context, months int) ([]TrendPoint, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new analytics repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) Totals(ctx context.Context) (TotalsRow, error) {
	query := `SELECT
	    (SELECT COALESCE(SUM(amount), 0) FROM expenses),
	    (SELECT COALESCE(SUM(total_amount), 0) FROM revenue),
	    (SELECT COALESCE(SUM(amount), 0) FROM indirect_costs)`
	var row TotalsRow
	err := r.db.QueryRow(ctx, query).Scan(&row.TotalSpent, &row.TotalRevenue, &row.IndirectTotal)
	return row, err
}

func (r *repo) SpendByCostCenter(ctx context.Context) ([]SpendSlice, error) {
	query := `SELECT cc.id, cc.name, COALESCE(SUM(e.amount), 0)
	          FROM cost_centers cc
	          LEFT JOIN expenses e ON e.cost_center_id = cc.id
	          GROUP BY cc.id, cc.name
	          ORDER BY cc.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slices []SpendSlice
	for rows.Next() {
		var s SpendSlice
		if err := rows.Scan(&s.CostCenterID, &s.CostCenterName, &s.Amount); err != nil {
			return nil, err
		}
		slices = append(slices, s)
	}
	return slices, rows.Err()
}

func (r *repo) MonthlyTrend(ctx context.Context, months int) ([]TrendPoint, error) {
	query := `WITH spend AS (
	              SELECT to_char(date_trunc('month', date), 'YYYY-MM') AS month, SUM(amount) AS spent
	              FROM expenses GROUP BY 1
	          ), sales AS (
	              SELECT to_char(date_trunc('month', date), 'YYYY-MM') AS month, SUM(total_amount) AS revenue
	              FROM revenue GROUP BY 1
	          )
	          SELECT COALESCE(spend.month, sales.month) AS month,
	                 COALESCE(spend.spent, 0),
	                 COALESCE(sales.revenue, 0)
	          FROM spend FULL OUTER JOIN sales ON spend.month = sales.month
	          ORDER BY month DESC
	          LIMIT $1`
	rows, err := r.db.Query(ctx, query, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Month, &p.Spent, &p.Revenue); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Oldest first for charting.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

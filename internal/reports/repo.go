package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads report rows from PostgreSQL.
type Repository interface {
	ExpenseReportRows(ctx context.Context) ([]Row, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new report repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

// ExpenseReportRows merges expenses and revenue into one table ordered by
// date, matching the downloadable report layout.
func (r *repo) ExpenseReportRows(ctx context.Context) ([]Row, error) {
	query := `SELECT e.date, e.category, cc.name, e.item_name, e.amount, 0::float8, e.notes
	          FROM expenses e
	          JOIN cost_centers cc ON cc.id = e.cost_center_id
	          UNION ALL
	          SELECT v.date, 'revenue', cc.name, v.product_name, 0::float8, v.total_amount, ''
	          FROM revenue v
	          JOIN cost_centers cc ON cc.id = v.cost_center_id
	          ORDER BY 1, 4`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Date, &row.Category, &row.CostCenter, &row.ItemName, &row.Amount, &row.Revenue, &row.Notes); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

package analytics

// KPISummary contains the headline figures surfaced on the dashboard.
// Display values carry thousand separators for direct rendering.
type KPISummary struct {
	TotalSpent     float64 `json:"total_spent"`
	TotalRevenue   float64 `json:"total_revenue"`
	NetProfit      float64 `json:"net_profit"`
	IndirectTotal  float64 `json:"indirect_total"`
	AssetBookValue float64 `json:"asset_book_value"`

	DisplayTotalSpent   string `json:"display_total_spent"`
	DisplayTotalRevenue string `json:"display_total_revenue"`
	DisplayNetProfit    string `json:"display_net_profit"`
}

// SpendSlice is one pie-chart slice of expense totals per cost center.
type SpendSlice struct {
	CostCenterID   int64   `json:"cost_center_id"`
	CostCenterName string  `json:"cost_center_name"`
	Amount         float64 `json:"amount"`
	Percent        float64 `json:"percent"`
}

// TrendPoint is one month of spend and revenue for the trend chart.
type TrendPoint struct {
	Month   string  `json:"month"`
	Spent   float64 `json:"spent"`
	Revenue float64 `json:"revenue"`
}

// Dashboard bundles all dashboard blocks.
type Dashboard struct {
	KPI          KPISummary   `json:"kpi"`
	SpendByCC    []SpendSlice `json:"spend_by_cost_center"`
	MonthlyTrend []TrendPoint `json:"monthly_trend"`
}
